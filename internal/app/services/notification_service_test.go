package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzk/interntrack/internal/app/models"
	"github.com/oguzk/interntrack/internal/app/models/dto"
	"github.com/oguzk/interntrack/internal/pkg/apperrors"
)

func newNotificationFixture(users map[int64]*models.User) (*NotificationService, *fakeNotificationStore, *fakeDiaryStore) {
	store := newFakeNotificationStore()
	diaryStore := newFakeDiaryStore()
	programs := &fakeProgramFinder{byGroup: map[int64]*models.InternshipProgram{
		testGroupID: testProgram(),
	}}
	svc := NewNotificationService(store, &fakeUserFinder{users: users}, programs, diaryStore)
	return svc, store, diaryStore
}

func studentUsers() map[int64]*models.User {
	groupID := testGroupID
	return map[int64]*models.User{
		10: {ID: 10, Name: "Ayşe Demir", Role: models.RoleStudent, IsActive: true, GroupID: &groupID},
		11: {ID: 11, Name: "Can Yılmaz", Role: models.RoleStudent, IsActive: true, GroupID: &groupID},
	}
}

func TestSendDiaryReminders(t *testing.T) {
	svc, store, diaryStore := newNotificationFixture(studentUsers())

	// Wednesday June 11 2025; Tuesday June 10 is the previous working day
	svc.now = func() time.Time { return mustDate("2025-06-11").Add(10 * time.Hour) }

	// Student 10 submitted today but not yesterday; student 11 submitted both
	submitted := time.Now()
	diaryStore.seed(&models.DiaryEntry{StudentID: 10, EntryDate: mustDate("2025-06-11"), IsSubmitted: true, SubmittedAt: &submitted})
	diaryStore.seed(&models.DiaryEntry{StudentID: 11, EntryDate: mustDate("2025-06-11"), IsSubmitted: true, SubmittedAt: &submitted})
	diaryStore.seed(&models.DiaryEntry{StudentID: 11, EntryDate: mustDate("2025-06-10"), IsSubmitted: true, SubmittedAt: &submitted})

	created, err := svc.SendDiaryReminders(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, created)
	require.Len(t, store.notifications, 1)
	n := store.notifications[0]
	assert.Equal(t, int64(10), n.UserID)
	assert.Equal(t, models.NotificationDeadlineWarning, n.Type)
	assert.Equal(t, models.PriorityHigh, n.Priority)
	assert.Equal(t, "2025-06-10", n.Metadata["entryDate"])
	require.NotNil(t, n.ExpiresAt)
}

func TestSendDiaryRemindersNothingSubmitted(t *testing.T) {
	svc, store, _ := newNotificationFixture(studentUsers())
	svc.now = func() time.Time { return mustDate("2025-06-11").Add(10 * time.Hour) }

	created, err := svc.SendDiaryReminders(context.Background())

	require.NoError(t, err)
	// both students get a reminder for today and a warning for yesterday
	assert.Equal(t, 4, created)
	assert.Len(t, store.notifications, 4)
}

func TestSendDiaryRemindersSkipsWeekend(t *testing.T) {
	svc, store, _ := newNotificationFixture(studentUsers())

	// Monday June 9 2025; yesterday is a Sunday, no warning for it
	svc.now = func() time.Time { return mustDate("2025-06-09").Add(10 * time.Hour) }

	created, err := svc.SendDiaryReminders(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, created)
	for _, n := range store.notifications {
		assert.Equal(t, models.NotificationDiaryReminder, n.Type)
		assert.Equal(t, "2025-06-09", n.Metadata["entryDate"])
	}
}

func TestSendDiaryRemindersSkipsStudentsWithoutProgram(t *testing.T) {
	users := studentUsers()
	orphanGroup := int64(99)
	users[12] = &models.User{ID: 12, Role: models.RoleStudent, IsActive: true, GroupID: &orphanGroup}
	users[13] = &models.User{ID: 13, Role: models.RoleStudent, IsActive: true} // no group

	svc, store, _ := newNotificationFixture(users)
	svc.now = func() time.Time { return mustDate("2025-06-11").Add(10 * time.Hour) }

	created, err := svc.SendDiaryReminders(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, created)
	for _, n := range store.notifications {
		assert.NotEqual(t, int64(12), n.UserID)
		assert.NotEqual(t, int64(13), n.UserID)
	}
}

func TestSendDiaryRemindersOutsideProgram(t *testing.T) {
	svc, store, _ := newNotificationFixture(studentUsers())

	// well after the program ended
	svc.now = func() time.Time { return mustDate("2025-09-10").Add(10 * time.Hour) }

	created, err := svc.SendDiaryReminders(context.Background())

	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Empty(t, store.notifications)
}

func TestMarkAsReadIdempotent(t *testing.T) {
	svc, store, _ := newNotificationFixture(studentUsers())

	n := &models.Notification{UserID: 10, Type: models.NotificationDiaryReminder, Title: "t", Message: "m", Priority: models.PriorityMedium}
	require.NoError(t, store.Create(context.Background(), n))

	require.NoError(t, svc.MarkAsRead(context.Background(), n.ID, 10))
	assert.True(t, n.IsRead)

	// marking again succeeds without effect
	require.NoError(t, svc.MarkAsRead(context.Background(), n.ID, 10))
	assert.True(t, n.IsRead)
}

func TestMarkAsReadScopedToOwner(t *testing.T) {
	svc, store, _ := newNotificationFixture(studentUsers())

	n := &models.Notification{UserID: 10, Type: models.NotificationDiaryReminder, Title: "t", Message: "m", Priority: models.PriorityMedium}
	require.NoError(t, store.Create(context.Background(), n))

	err := svc.MarkAsRead(context.Background(), n.ID, 11)
	assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)
	assert.False(t, n.IsRead)

	err = svc.MarkAsRead(context.Background(), 404, 10)
	assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)
}

func TestMarkAllAsRead(t *testing.T) {
	svc, store, _ := newNotificationFixture(studentUsers())

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Create(context.Background(), &models.Notification{
			UserID: 10, Type: models.NotificationSystemAnnouncement, Title: "t", Message: "m", Priority: models.PriorityLow,
		}))
	}
	require.NoError(t, store.Create(context.Background(), &models.Notification{
		UserID: 11, Type: models.NotificationSystemAnnouncement, Title: "t", Message: "m", Priority: models.PriorityLow,
	}))

	count, err := svc.MarkAllAsRead(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// second call affects nothing
	count, err = svc.MarkAllAsRead(context.Background(), 10)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetUserNotificationsExcludesExpired(t *testing.T) {
	svc, store, _ := newNotificationFixture(studentUsers())
	now := mustDate("2025-06-11").Add(10 * time.Hour)
	svc.now = func() time.Time { return now }

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	require.NoError(t, store.Create(context.Background(), &models.Notification{
		UserID: 10, Type: models.NotificationDiaryReminder, Title: "expired", Message: "m", Priority: models.PriorityMedium, ExpiresAt: &past,
	}))
	require.NoError(t, store.Create(context.Background(), &models.Notification{
		UserID: 10, Type: models.NotificationDiaryReminder, Title: "active", Message: "m", Priority: models.PriorityMedium, ExpiresAt: &future,
	}))
	require.NoError(t, store.Create(context.Background(), &models.Notification{
		UserID: 10, Type: models.NotificationSystemAnnouncement, Title: "no expiry", Message: "m", Priority: models.PriorityMedium,
	}))

	list, err := svc.GetUserNotifications(context.Background(), 10, dto.NotificationListOptions{Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	for _, n := range list.Notifications {
		assert.NotEqual(t, "expired", n.Title)
	}
}

func TestCleanupExpiredNotifications(t *testing.T) {
	svc, store, _ := newNotificationFixture(studentUsers())
	now := mustDate("2025-06-11").Add(10 * time.Hour)
	svc.now = func() time.Time { return now }

	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)
	require.NoError(t, store.Create(context.Background(), &models.Notification{UserID: 10, Type: models.NotificationDiaryReminder, Title: "a", Message: "m", Priority: models.PriorityLow, ExpiresAt: &past}))
	require.NoError(t, store.Create(context.Background(), &models.Notification{UserID: 11, Type: models.NotificationDiaryReminder, Title: "b", Message: "m", Priority: models.PriorityLow, ExpiresAt: &future}))

	count, err := svc.CleanupExpiredNotifications(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Len(t, store.notifications, 1)
}

func TestSendSystemAnnouncement(t *testing.T) {
	users := studentUsers()
	users[1] = &models.User{ID: 1, Role: models.RoleSuperAdmin, IsActive: true}
	users[20] = &models.User{ID: 20, Role: models.RoleTeacher, IsActive: true}
	users[21] = &models.User{ID: 21, Role: models.RoleTeacher, IsActive: false} // disabled, skipped

	svc, store, _ := newNotificationFixture(users)

	created, err := svc.SendSystemAnnouncement(context.Background(), &dto.AnnouncementRequest{
		Title:     "Maintenance window",
		Message:   "The portal will be unavailable on Saturday night.",
		UserRoles: []string{"teacher", "student"},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), created)
	for _, n := range store.notifications {
		assert.Equal(t, models.NotificationSystemAnnouncement, n.Type)
		assert.Equal(t, models.PriorityMedium, n.Priority)
		assert.NotEqual(t, int64(1), n.UserID)
		assert.NotEqual(t, int64(21), n.UserID)
	}
}

func TestSendSystemAnnouncementAllRolesByDefault(t *testing.T) {
	users := studentUsers()
	users[1] = &models.User{ID: 1, Role: models.RoleSuperAdmin, IsActive: true}

	svc, _, _ := newNotificationFixture(users)

	created, err := svc.SendSystemAnnouncement(context.Background(), &dto.AnnouncementRequest{
		Title: "Welcome", Message: "New term starts Monday.",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), created)
}

func TestSendSystemAnnouncementBestEffort(t *testing.T) {
	svc, store, _ := newNotificationFixture(studentUsers())
	store.failForUser = 10

	created, err := svc.SendSystemAnnouncement(context.Background(), &dto.AnnouncementRequest{
		Title: "t", Message: "m",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), created)
	require.Len(t, store.notifications, 1)
	assert.Equal(t, int64(11), store.notifications[0].UserID)
}

func TestSendSystemAnnouncementValidation(t *testing.T) {
	svc, _, _ := newNotificationFixture(studentUsers())

	_, err := svc.SendSystemAnnouncement(context.Background(), &dto.AnnouncementRequest{
		Title: "t", Message: "m", Priority: "critical",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.SendSystemAnnouncement(context.Background(), &dto.AnnouncementRequest{
		Title: "t", Message: "m", UserRoles: []string{"principal"},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestNotifyEntryMarked(t *testing.T) {
	svc, store, _ := newNotificationFixture(studentUsers())

	mark := 85
	err := svc.NotifyEntryMarked(context.Background(), &models.DiaryEntry{
		ID: 1, StudentID: 10, EntryDate: mustDate("2025-06-04"), Mark: &mark,
	})

	require.NoError(t, err)
	require.Len(t, store.notifications, 1)
	n := store.notifications[0]
	assert.Equal(t, models.NotificationEntryMarked, n.Type)
	assert.Equal(t, int64(10), n.UserID)
	assert.Equal(t, "85", n.Metadata["mark"])
	assert.Equal(t, "2025-06-04", n.Metadata["entryDate"])
}
