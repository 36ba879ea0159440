package services

import (
	"context"
	"errors"

	"github.com/oguzk/interntrack/internal/app/auth"
	"github.com/oguzk/interntrack/internal/app/calendar"
	"github.com/oguzk/interntrack/internal/app/models"
	"github.com/oguzk/interntrack/internal/app/models/dto"
	"github.com/oguzk/interntrack/internal/app/repositories"
	"github.com/oguzk/interntrack/internal/pkg/apperrors"
	"github.com/oguzk/interntrack/internal/pkg/helpers"
)

// ProgramService handles internship program management and calendars
type ProgramService struct {
	programRepo *repositories.ProgramRepository
	groupRepo   *repositories.GroupRepository
	userRepo    *repositories.UserRepository
}

// NewProgramService creates a new program service
func NewProgramService(programRepo *repositories.ProgramRepository, groupRepo *repositories.GroupRepository, userRepo *repositories.UserRepository) *ProgramService {
	return &ProgramService{
		programRepo: programRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
	}
}

// CreateProgram creates a new internship program with its group assignments
func (s *ProgramService) CreateProgram(ctx context.Context, req *dto.CreateProgramRequest) (*models.InternshipProgram, error) {
	startDate, err := helpers.ParseDate(req.StartDate)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid start date: " + req.StartDate)
	}
	endDate, err := helpers.ParseDate(req.EndDate)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid end date: " + req.EndDate)
	}
	if !startDate.Before(endDate) {
		return nil, apperrors.ErrProgramDateRange
	}

	if err := validateDisabledDays(req.DisabledDays); err != nil {
		return nil, err
	}

	if len(req.GroupIDs) > 0 {
		groups, err := s.groupRepo.GetByIDs(ctx, req.GroupIDs)
		if err != nil {
			return nil, err
		}
		if len(groups) != len(req.GroupIDs) {
			return nil, apperrors.ErrGroupNotFound
		}
	}

	disabledDays := req.DisabledDays
	if disabledDays == nil {
		disabledDays = []string{}
	}

	program := &models.InternshipProgram{
		Name:         req.Name,
		Description:  req.Description,
		StartDate:    startDate,
		EndDate:      endDate,
		DisabledDays: disabledDays,
		IsActive:     true,
		GroupIDs:     req.GroupIDs,
	}

	if err := s.programRepo.Create(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

// GetProgram retrieves a program the caller may access
func (s *ProgramService) GetProgram(ctx context.Context, p auth.Principal, programID int64) (*models.InternshipProgram, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccessProgram(p, program) {
		return nil, apperrors.ErrPermissionDenied
	}
	return program, nil
}

// ListPrograms retrieves all programs
func (s *ProgramService) ListPrograms(ctx context.Context) ([]*models.InternshipProgram, error) {
	return s.programRepo.GetAll(ctx)
}

// UpdateProgram applies a partial update to a program. The date range
// invariant is re-checked against the merged result.
func (s *ProgramService) UpdateProgram(ctx context.Context, programID int64, req *dto.UpdateProgramRequest) (*models.InternshipProgram, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		program.Name = *req.Name
	}
	if req.Description != nil {
		program.Description = *req.Description
	}
	if req.StartDate != nil {
		startDate, err := helpers.ParseDate(*req.StartDate)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid start date: " + *req.StartDate)
		}
		program.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := helpers.ParseDate(*req.EndDate)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid end date: " + *req.EndDate)
		}
		program.EndDate = endDate
	}
	if req.DisabledDays != nil {
		if err := validateDisabledDays(req.DisabledDays); err != nil {
			return nil, err
		}
		program.DisabledDays = req.DisabledDays
	}
	if req.IsActive != nil {
		program.IsActive = *req.IsActive
	}

	if !program.StartDate.Before(program.EndDate) {
		return nil, apperrors.ErrProgramDateRange
	}

	if err := s.programRepo.Update(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

// DeleteProgram removes a program
func (s *ProgramService) DeleteProgram(ctx context.Context, programID int64) error {
	return s.programRepo.Delete(ctx, programID)
}

// AssignGroup links a group to a program
func (s *ProgramService) AssignGroup(ctx context.Context, programID, groupID int64) error {
	if _, err := s.programRepo.GetByID(ctx, programID); err != nil {
		return err
	}
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return err
	}
	return s.programRepo.AssignGroup(ctx, programID, groupID)
}

// RemoveGroup unlinks a group from a program
func (s *ProgramService) RemoveGroup(ctx context.Context, programID, groupID int64) error {
	return s.programRepo.RemoveGroup(ctx, programID, groupID)
}

// GetProgramCalendar returns the full day-by-day calendar of a program the
// caller may access
func (s *ProgramService) GetProgramCalendar(ctx context.Context, p auth.Principal, programID int64) ([]calendar.ProgramDate, error) {
	program, err := s.GetProgram(ctx, p, programID)
	if err != nil {
		return nil, err
	}
	return calendar.GenerateProgramDates(program), nil
}

// GetMyCalendar returns the calendar of the active program covering the
// student's group
func (s *ProgramService) GetMyCalendar(ctx context.Context, studentID int64) ([]calendar.ProgramDate, error) {
	program, err := s.resolveStudentProgram(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return calendar.GenerateProgramDates(program), nil
}

func (s *ProgramService) resolveStudentProgram(ctx context.Context, studentID int64) (*models.InternshipProgram, error) {
	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.GroupID == nil {
		return nil, apperrors.ErrNoProgramForStudent
	}

	program, err := s.programRepo.GetActiveProgramByGroup(ctx, *student.GroupID)
	if err != nil {
		if errors.Is(err, apperrors.ErrProgramNotFound) {
			return nil, apperrors.ErrNoProgramForStudent
		}
		return nil, err
	}
	return program, nil
}

func validateDisabledDays(days []string) error {
	for _, day := range days {
		if _, err := helpers.ParseDate(day); err != nil {
			return apperrors.NewValidationError("invalid disabled day: " + day)
		}
	}
	return nil
}
