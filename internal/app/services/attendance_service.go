package services

import (
	"context"
	"time"

	"github.com/oguzk/interntrack/internal/app/auth"
	"github.com/oguzk/interntrack/internal/app/models"
	"github.com/oguzk/interntrack/internal/app/models/dto"
	"github.com/oguzk/interntrack/internal/app/repositories"
	"github.com/oguzk/interntrack/internal/pkg/apperrors"
	"github.com/oguzk/interntrack/internal/pkg/helpers"
)

// AttendanceService handles attendance recording and retrieval
type AttendanceService struct {
	attendanceRepo *repositories.AttendanceRepository
	userRepo       *repositories.UserRepository
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(attendanceRepo *repositories.AttendanceRepository, userRepo *repositories.UserRepository) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
	}
}

// RecordAttendance records or replaces the attendance of a student on a
// date. The caller must be allowed to access the student.
func (s *AttendanceService) RecordAttendance(ctx context.Context, p auth.Principal, req *dto.RecordAttendanceRequest) (*models.Attendance, error) {
	status := models.AttendanceStatus(req.Status)
	if !models.ValidAttendanceStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}

	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date: " + req.Date)
	}

	student, err := s.userRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccessStudent(p, student) {
		return nil, apperrors.ErrPermissionDenied
	}

	record := &models.Attendance{
		StudentID: req.StudentID,
		Date:      helpers.TruncateToDate(date),
		Status:    status,
		TeacherID: p.UserID,
	}

	if err := s.attendanceRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetStudentAttendance retrieves a student's attendance within a date range
func (s *AttendanceService) GetStudentAttendance(ctx context.Context, p auth.Principal, studentID int64, from, to time.Time) ([]*models.Attendance, error) {
	if !auth.CanAccessOwn(p, studentID) {
		student, err := s.userRepo.GetByID(ctx, studentID)
		if err != nil {
			return nil, err
		}
		if !auth.CanAccessStudent(p, student) {
			return nil, apperrors.ErrPermissionDenied
		}
	}

	return s.attendanceRepo.ListByStudent(ctx, studentID, helpers.TruncateToDate(from), helpers.TruncateToDate(to))
}

// GetGroupAttendance retrieves a group's attendance on one date
func (s *AttendanceService) GetGroupAttendance(ctx context.Context, p auth.Principal, groupID int64, date time.Time) ([]*models.Attendance, error) {
	if !auth.CanAccessGroup(p, groupID) {
		return nil, apperrors.ErrPermissionDenied
	}
	return s.attendanceRepo.ListByGroupAndDate(ctx, groupID, helpers.TruncateToDate(date))
}
