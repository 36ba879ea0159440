package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oguzk/interntrack/internal/app/calendar"
	"github.com/oguzk/interntrack/internal/app/models"
	"github.com/oguzk/interntrack/internal/app/models/dto"
	"github.com/oguzk/interntrack/internal/pkg/apperrors"
	"github.com/oguzk/interntrack/internal/pkg/helpers"
	"github.com/oguzk/interntrack/internal/pkg/logger"
)

const reminderTTL = 24 * time.Hour

// notificationStore is the notification persistence surface the service
// depends on
type notificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id, userID int64) (*models.Notification, error)
	ListByUser(ctx context.Context, userID int64, opts dto.NotificationListOptions, now time.Time, offset, limit int) ([]*models.Notification, int64, error)
	MarkAsRead(ctx context.Context, id, userID int64) (bool, error)
	MarkAllAsRead(ctx context.Context, userID int64) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	Stats(ctx context.Context, userID int64, now time.Time) (*dto.NotificationStats, error)
}

// userDirectory enumerates recipients for dispatch runs
type userDirectory interface {
	GetActiveStudents(ctx context.Context) ([]*models.User, error)
	GetActiveUsersByRoles(ctx context.Context, roles []models.Role) ([]*models.User, error)
}

// submissionChecker reports whether a student submitted a diary entry on a
// date
type submissionChecker interface {
	HasSubmittedOn(ctx context.Context, studentID int64, date time.Time) (bool, error)
}

// NotificationService handles notification dispatch, listing and read state
type NotificationService struct {
	notificationRepo notificationStore
	userRepo         userDirectory
	programRepo      programFinder
	diaryRepo        submissionChecker

	now func() time.Time
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo notificationStore, userRepo userDirectory, programRepo programFinder, diaryRepo submissionChecker) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		programRepo:      programRepo,
		diaryRepo:        diaryRepo,
		now:              time.Now,
	}
}

// CreateNotification persists a single notification. Priority defaults to
// medium when unset.
func (s *NotificationService) CreateNotification(ctx context.Context, n *models.Notification) error {
	if n.Priority == "" {
		n.Priority = models.PriorityMedium
	}
	return s.notificationRepo.Create(ctx, n)
}

// NotifyEntryMarked notifies a student that a teacher marked their entry
func (s *NotificationService) NotifyEntryMarked(ctx context.Context, entry *models.DiaryEntry) error {
	if entry.Mark == nil {
		return nil
	}

	return s.CreateNotification(ctx, &models.Notification{
		UserID:   entry.StudentID,
		Type:     models.NotificationEntryMarked,
		Title:    "Diary entry marked",
		Message:  fmt.Sprintf("Your diary entry for %s received a mark of %d.", helpers.FormatDate(entry.EntryDate), *entry.Mark),
		Priority: models.PriorityMedium,
		Metadata: map[string]string{
			"entryDate": helpers.FormatDate(entry.EntryDate),
			"mark":      fmt.Sprintf("%d", *entry.Mark),
		},
	})
}

// GetUserNotifications retrieves a user's notifications, excluding expired
// ones, newest first
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID int64, opts dto.NotificationListOptions) (*dto.NotificationList, error) {
	offset, limit := helpers.CalculateOffsetLimit(opts.Page, opts.Limit)

	notifications, total, err := s.notificationRepo.ListByUser(ctx, userID, opts, s.now(), offset, limit)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []*models.Notification{}
	}

	info := helpers.NewPaginationInfo(total, opts.Page, opts.Limit)
	return &dto.NotificationList{
		Notifications: notifications,
		Total:         total,
		Page:          info.CurrentPage,
		TotalPages:    info.TotalPages,
		HasMore:       info.HasMore,
	}, nil
}

// MarkAsRead marks one of the user's notifications as read. Marking an
// already-read notification succeeds without effect.
func (s *NotificationService) MarkAsRead(ctx context.Context, id, userID int64) error {
	n, err := s.notificationRepo.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if n.IsRead {
		return nil
	}

	_, err = s.notificationRepo.MarkAsRead(ctx, id, userID)
	return err
}

// MarkAllAsRead marks all of the user's notifications as read and returns
// the count affected
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.MarkAllAsRead(ctx, userID)
}

// GetNotificationStats returns the user's notification totals
func (s *NotificationService) GetNotificationStats(ctx context.Context, userID int64) (*dto.NotificationStats, error) {
	return s.notificationRepo.Stats(ctx, userID, s.now())
}

// CleanupExpiredNotifications deletes all expired notifications and returns
// the count removed
func (s *NotificationService) CleanupExpiredNotifications(ctx context.Context) (int64, error) {
	count, err := s.notificationRepo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logger.Info().Int64("count", count).Msg("Deleted expired notifications")
	}
	return count, nil
}

// SendDiaryReminders dispatches diary reminders to active students who have
// not submitted for today or yesterday, where those dates are valid working
// days of their program. Today and yesterday are checked independently;
// failures for one student never stop the run.
func (s *NotificationService) SendDiaryReminders(ctx context.Context) (int, error) {
	students, err := s.userRepo.GetActiveStudents(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now()
	today := helpers.TruncateToDate(now)
	yesterday := today.AddDate(0, 0, -1)
	expiresAt := now.Add(reminderTTL)

	created := 0
	for _, student := range students {
		if student.GroupID == nil {
			continue
		}

		program, err := s.programRepo.GetActiveProgramByGroup(ctx, *student.GroupID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrProgramNotFound) {
				logger.Warn().Err(err).Int64("studentID", student.ID).Msg("Failed to resolve program for reminder")
			}
			continue
		}

		if s.remindIfMissing(ctx, student.ID, today, program, models.NotificationDiaryReminder, models.PriorityMedium,
			"Diary reminder", "You have not submitted your diary entry for today yet.", expiresAt) {
			created++
		}
		if s.remindIfMissing(ctx, student.ID, yesterday, program, models.NotificationDeadlineWarning, models.PriorityHigh,
			"Missing diary entry", "Your diary entry for yesterday is still missing.", expiresAt) {
			created++
		}
	}

	logger.Info().Int("count", created).Msg("Diary reminder run finished")
	return created, nil
}

func (s *NotificationService) remindIfMissing(ctx context.Context, studentID int64, date time.Time, program *models.InternshipProgram,
	notifType models.NotificationType, priority models.NotificationPriority, title, message string, expiresAt time.Time) bool {

	if !calendar.IsValidProgramDay(date, program) {
		return false
	}

	submitted, err := s.diaryRepo.HasSubmittedOn(ctx, studentID, date)
	if err != nil {
		logger.Warn().Err(err).Int64("studentID", studentID).Msg("Failed to check diary submission")
		return false
	}
	if submitted {
		return false
	}

	n := &models.Notification{
		UserID:    studentID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		Priority:  priority,
		Metadata:  map[string]string{"entryDate": helpers.FormatDate(date)},
		ExpiresAt: &expiresAt,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		logger.Warn().Err(err).Int64("studentID", studentID).Msg("Failed to create diary reminder")
		return false
	}
	return true
}

// SendSystemAnnouncement fans an announcement out to all active users of the
// requested roles. Delivery is best effort; the count of notifications
// created is returned.
func (s *NotificationService) SendSystemAnnouncement(ctx context.Context, req *dto.AnnouncementRequest) (int64, error) {
	priority := models.PriorityMedium
	if req.Priority != "" {
		priority = models.NotificationPriority(req.Priority)
		switch priority {
		case models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityUrgent:
		default:
			return 0, apperrors.NewValidationError("invalid priority: " + req.Priority)
		}
	}

	var expiresAt *time.Time
	if req.ExpiresAt != nil {
		t, err := time.Parse(time.RFC3339, *req.ExpiresAt)
		if err != nil {
			return 0, apperrors.NewValidationError("invalid expiry timestamp: " + *req.ExpiresAt)
		}
		expiresAt = &t
	}

	roles := []models.Role{models.RoleSuperAdmin, models.RoleTeacher, models.RoleStudent}
	if len(req.UserRoles) > 0 {
		roles = roles[:0]
		for _, r := range req.UserRoles {
			role := models.Role(r)
			if !models.ValidRole(role) {
				return 0, apperrors.NewValidationError("invalid role: " + r)
			}
			roles = append(roles, role)
		}
	}

	users, err := s.userRepo.GetActiveUsersByRoles(ctx, roles)
	if err != nil {
		return 0, err
	}

	var created int64
	for _, user := range users {
		n := &models.Notification{
			UserID:    user.ID,
			Type:      models.NotificationSystemAnnouncement,
			Title:     req.Title,
			Message:   req.Message,
			Priority:  priority,
			ActionURL: req.ActionURL,
			Metadata:  req.Metadata,
			ExpiresAt: expiresAt,
		}
		if err := s.notificationRepo.Create(ctx, n); err != nil {
			logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to deliver announcement")
			continue
		}
		created++
	}

	logger.Info().Int64("count", created).Str("title", req.Title).Msg("System announcement dispatched")
	return created, nil
}
