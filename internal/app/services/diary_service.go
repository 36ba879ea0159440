package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/oguzk/interntrack/internal/app/auth"
	"github.com/oguzk/interntrack/internal/app/calendar"
	"github.com/oguzk/interntrack/internal/app/models"
	"github.com/oguzk/interntrack/internal/app/models/dto"
	"github.com/oguzk/interntrack/internal/pkg/apperrors"
	"github.com/oguzk/interntrack/internal/pkg/helpers"
	"github.com/oguzk/interntrack/internal/pkg/logger"
)

// diaryStore is the diary persistence surface the service depends on
type diaryStore interface {
	Upsert(ctx context.Context, entry *models.DiaryEntry) error
	GetByID(ctx context.Context, id int64) (*models.DiaryEntry, error)
	GetByStudentAndDate(ctx context.Context, studentID int64, date time.Time) (*models.DiaryEntry, error)
	UpdateMark(ctx context.Context, entryID int64, mark int, comment *string, teacherID int64, markedAt time.Time) (*models.DiaryEntry, error)
	UpdateAttachment(ctx context.Context, entryID int64, fileURL, fileName string, fileSize int64) (*models.DiaryEntry, error)
	ListByStudent(ctx context.Context, studentID int64, offset, limit int) ([]*models.DiaryEntry, int64, error)
	ListByGroups(ctx context.Context, groupIDs []int64, offset, limit int) ([]*models.DiaryEntry, int64, error)
}

// programFinder resolves the active program covering a group
type programFinder interface {
	GetActiveProgramByGroup(ctx context.Context, groupID int64) (*models.InternshipProgram, error)
}

// userFinder loads users by id
type userFinder interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// entryNotifier dispatches marking notifications
type entryNotifier interface {
	NotifyEntryMarked(ctx context.Context, entry *models.DiaryEntry) error
}

// reportStorage persists uploaded report files
type reportStorage interface {
	SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error)
	DeleteFile(filePath string) error
}

// DiaryService handles diary entry submission, listing and marking
type DiaryService struct {
	diaryRepo   diaryStore
	programRepo programFinder
	userRepo    userFinder
	notifier    entryNotifier
	storage     reportStorage
}

// NewDiaryService creates a new diary service
func NewDiaryService(diaryRepo diaryStore, programRepo programFinder, userRepo userFinder, notifier entryNotifier, storage reportStorage) *DiaryService {
	return &DiaryService{
		diaryRepo:   diaryRepo,
		programRepo: programRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		storage:     storage,
	}
}

// SubmitEntry creates or replaces the student's diary entry for a date.
// The date must be a valid working day of the active program covering the
// student's group. Resubmission overwrites the report but never the mark.
func (s *DiaryService) SubmitEntry(ctx context.Context, studentID int64, req *dto.SubmitEntryRequest) (*models.DiaryEntry, error) {
	date, err := helpers.ParseDate(req.EntryDate)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid entry date: " + req.EntryDate)
	}
	date = helpers.TruncateToDate(date)

	program, err := s.resolveProgram(ctx, studentID)
	if err != nil {
		return nil, err
	}

	start := helpers.TruncateToDate(program.StartDate)
	end := helpers.TruncateToDate(program.EndDate)
	if date.Before(start) || date.After(end) {
		return nil, apperrors.ErrOutsideProgramPeriod
	}
	if !calendar.IsValidProgramDay(date, program) {
		return nil, apperrors.ErrDisabledProgramDay
	}

	now := time.Now()
	entry := &models.DiaryEntry{
		StudentID:   studentID,
		EntryDate:   date,
		TextReport:  req.TextReport,
		FileURL:     req.FileURL,
		FileName:    req.FileName,
		FileSize:    req.FileSize,
		IsSubmitted: true,
		SubmittedAt: &now,
	}

	if err := s.diaryRepo.Upsert(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// AttachReport stores an uploaded report file on the student's own entry.
// A previously attached file is removed from storage; marked entries keep
// their mark.
func (s *DiaryService) AttachReport(ctx context.Context, studentID, entryID int64, fileHeader *multipart.FileHeader) (*models.DiaryEntry, error) {
	entry, err := s.diaryRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.StudentID != studentID {
		return nil, apperrors.ErrPermissionDenied
	}

	fileURL, err := s.storage.SaveFileWithPath(fileHeader, "diary")
	if err != nil {
		return nil, fmt.Errorf("error saving report file: %w", err)
	}

	previous := entry.FileURL
	updated, err := s.diaryRepo.UpdateAttachment(ctx, entryID, fileURL, fileHeader.Filename, fileHeader.Size)
	if err != nil {
		if delErr := s.storage.DeleteFile(fileURL); delErr != nil {
			logger.Warn().Err(delErr).Str("fileURL", fileURL).Msg("Failed to remove orphaned report file")
		}
		return nil, err
	}

	if previous != nil && *previous != "" {
		if delErr := s.storage.DeleteFile(*previous); delErr != nil {
			logger.Warn().Err(delErr).Str("fileURL", *previous).Msg("Failed to remove replaced report file")
		}
	}

	return updated, nil
}

// GetEntry retrieves a diary entry the caller may access
func (s *DiaryService) GetEntry(ctx context.Context, p auth.Principal, entryID int64) (*models.DiaryEntry, error) {
	entry, err := s.diaryRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if auth.CanAccessOwn(p, entry.StudentID) {
		return entry, nil
	}

	student, err := s.userRepo.GetByID(ctx, entry.StudentID)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccessStudent(p, student) {
		return nil, apperrors.ErrPermissionDenied
	}
	return entry, nil
}

// GetEntryByDate retrieves the student's own entry for a date
func (s *DiaryService) GetEntryByDate(ctx context.Context, studentID int64, dateStr string) (*models.DiaryEntry, error) {
	date, err := helpers.ParseDate(dateStr)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date: " + dateStr)
	}
	return s.diaryRepo.GetByStudentAndDate(ctx, studentID, helpers.TruncateToDate(date))
}

// ListMyEntries retrieves a student's own entries, newest first
func (s *DiaryService) ListMyEntries(ctx context.Context, studentID int64, page, size int) ([]*models.DiaryEntry, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	entries, total, err := s.diaryRepo.ListByStudent(ctx, studentID, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return entries, helpers.NewPaginationInfo(total, page, size), nil
}

// ListStudentEntries retrieves a student's entries for a teacher or admin
func (s *DiaryService) ListStudentEntries(ctx context.Context, p auth.Principal, studentID int64, page, size int) ([]*models.DiaryEntry, dto.PaginationInfo, error) {
	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	if !auth.CanAccessStudent(p, student) {
		return nil, dto.PaginationInfo{}, apperrors.ErrPermissionDenied
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	entries, total, err := s.diaryRepo.ListByStudent(ctx, studentID, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return entries, helpers.NewPaginationInfo(total, page, size), nil
}

// ListGroupEntries retrieves the entries of one group the caller may access
func (s *DiaryService) ListGroupEntries(ctx context.Context, p auth.Principal, groupID int64, page, size int) ([]*models.DiaryEntry, dto.PaginationInfo, error) {
	if !auth.CanAccessGroup(p, groupID) {
		return nil, dto.PaginationInfo{}, apperrors.ErrPermissionDenied
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	entries, total, err := s.diaryRepo.ListByGroups(ctx, []int64{groupID}, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return entries, helpers.NewPaginationInfo(total, page, size), nil
}

// ListAssignedEntries retrieves the entries of all groups assigned to a
// teacher. A teacher without group assignments cannot list.
func (s *DiaryService) ListAssignedEntries(ctx context.Context, p auth.Principal, page, size int) ([]*models.DiaryEntry, dto.PaginationInfo, error) {
	if len(p.AssignedGroupIDs) == 0 {
		return nil, dto.PaginationInfo{}, apperrors.ErrTeacherHasNoGroups
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	entries, total, err := s.diaryRepo.ListByGroups(ctx, p.AssignedGroupIDs, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return entries, helpers.NewPaginationInfo(total, page, size), nil
}

// MarkEntry records a teacher's mark on a diary entry. Remarking overwrites
// the previous mark; the student is notified.
func (s *DiaryService) MarkEntry(ctx context.Context, p auth.Principal, entryID int64, req *dto.MarkEntryRequest) (*models.DiaryEntry, error) {
	if req.Mark < 0 || req.Mark > 100 {
		return nil, apperrors.ErrMarkOutOfRange
	}

	entry, err := s.diaryRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	student, err := s.userRepo.GetByID(ctx, entry.StudentID)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccessStudent(p, student) {
		return nil, apperrors.ErrPermissionDenied
	}

	marked, err := s.diaryRepo.UpdateMark(ctx, entryID, req.Mark, req.Comment, p.UserID, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.notifier.NotifyEntryMarked(ctx, marked); err != nil {
		logger.Warn().Err(err).Int64("entryID", entryID).Msg("Failed to send marking notification")
	}

	return marked, nil
}

func (s *DiaryService) resolveProgram(ctx context.Context, studentID int64) (*models.InternshipProgram, error) {
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
