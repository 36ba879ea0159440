package services

import (
	"context"
	"mime/multipart"
	"sort"
	"time"

	"github.com/oguzk/interntrack/internal/app/models"
	"github.com/oguzk/interntrack/internal/app/models/dto"
	"github.com/oguzk/interntrack/internal/pkg/apperrors"
	"github.com/oguzk/interntrack/internal/pkg/helpers"
)

// fakeDiaryStore is an in-memory diaryStore and submissionChecker
type fakeDiaryStore struct {
	nextID  int64
	entries map[int64]*models.DiaryEntry
}

func newFakeDiaryStore() *fakeDiaryStore {
	return &fakeDiaryStore{nextID: 1, entries: make(map[int64]*models.DiaryEntry)}
}

func (f *fakeDiaryStore) seed(entry *models.DiaryEntry) *models.DiaryEntry {
	entry.ID = f.nextID
	f.nextID++
	f.entries[entry.ID] = entry
	return entry
}

func (f *fakeDiaryStore) find(studentID int64, date time.Time) *models.DiaryEntry {
	for _, e := range f.entries {
		if e.StudentID == studentID && e.EntryDate.Equal(date) {
			return e
		}
	}
	return nil
}

func (f *fakeDiaryStore) Upsert(_ context.Context, entry *models.DiaryEntry) error {
	if existing := f.find(entry.StudentID, entry.EntryDate); existing != nil {
		existing.TextReport = entry.TextReport
		existing.FileURL = entry.FileURL
		existing.FileName = entry.FileName
		existing.FileSize = entry.FileSize
		existing.IsSubmitted = entry.IsSubmitted
		existing.SubmittedAt = entry.SubmittedAt
		*entry = *existing
		return nil
	}
	f.seed(entry)
	return nil
}

func (f *fakeDiaryStore) GetByID(_ context.Context, id int64) (*models.DiaryEntry, error) {
	entry, ok := f.entries[id]
	if !ok {
		return nil, apperrors.ErrDiaryEntryNotFound
	}
	return entry, nil
}

func (f *fakeDiaryStore) GetByStudentAndDate(_ context.Context, studentID int64, date time.Time) (*models.DiaryEntry, error) {
	if entry := f.find(studentID, date); entry != nil {
		return entry, nil
	}
	return nil, apperrors.ErrDiaryEntryNotFound
}

func (f *fakeDiaryStore) HasSubmittedOn(_ context.Context, studentID int64, date time.Time) (bool, error) {
	entry := f.find(studentID, date)
	return entry != nil && entry.IsSubmitted, nil
}

func (f *fakeDiaryStore) UpdateMark(_ context.Context, entryID int64, mark int, comment *string, teacherID int64, markedAt time.Time) (*models.DiaryEntry, error) {
	entry, ok := f.entries[entryID]
	if !ok {
		return nil, apperrors.ErrDiaryEntryNotFound
	}
	entry.Mark = &mark
	entry.TeacherComment = comment
	entry.TeacherID = &teacherID
	entry.MarkedAt = &markedAt
	return entry, nil
}

func (f *fakeDiaryStore) UpdateAttachment(_ context.Context, entryID int64, fileURL, fileName string, fileSize int64) (*models.DiaryEntry, error) {
	entry, ok := f.entries[entryID]
	if !ok {
		return nil, apperrors.ErrDiaryEntryNotFound
	}
	entry.FileURL = &fileURL
	entry.FileName = &fileName
	entry.FileSize = &fileSize
	return entry, nil
}

func (f *fakeDiaryStore) ListByStudent(_ context.Context, studentID int64, offset, limit int) ([]*models.DiaryEntry, int64, error) {
	var matched []*models.DiaryEntry
	for _, e := range f.entries {
		if e.StudentID == studentID {
			matched = append(matched, e)
		}
	}
	return paginateEntries(matched, offset, limit)
}

func (f *fakeDiaryStore) ListByGroups(_ context.Context, groupIDs []int64, offset, limit int) ([]*models.DiaryEntry, int64, error) {
	var matched []*models.DiaryEntry
	for _, e := range f.entries {
		if e.Student == nil || e.Student.GroupID == nil {
			continue
		}
		for _, id := range groupIDs {
			if *e.Student.GroupID == id {
				matched = append(matched, e)
				break
			}
		}
	}
	return paginateEntries(matched, offset, limit)
}

func paginateEntries(entries []*models.DiaryEntry, offset, limit int) ([]*models.DiaryEntry, int64, error) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].EntryDate.After(entries[j].EntryDate) })
	total := int64(len(entries))
	if offset >= len(entries) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(entries) {
		end = len(entries)
	}
	return entries[offset:end], total, nil
}

// fakeProgramFinder maps group ids to their active program
type fakeProgramFinder struct {
	byGroup map[int64]*models.InternshipProgram
}

func (f *fakeProgramFinder) GetActiveProgramByGroup(_ context.Context, groupID int64) (*models.InternshipProgram, error) {
	program, ok := f.byGroup[groupID]
	if !ok {
		return nil, apperrors.ErrProgramNotFound
	}
	return program, nil
}

// fakeUserFinder serves users by id and role-based listings
type fakeUserFinder struct {
	users map[int64]*models.User
}

func (f *fakeUserFinder) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserFinder) GetActiveStudents(_ context.Context) ([]*models.User, error) {
	return f.activeByRoles([]models.Role{models.RoleStudent}), nil
}

func (f *fakeUserFinder) GetActiveUsersByRoles(_ context.Context, roles []models.Role) ([]*models.User, error) {
	return f.activeByRoles(roles), nil
}

func (f *fakeUserFinder) activeByRoles(roles []models.Role) []*models.User {
	var matched []*models.User
	for _, u := range f.users {
		if !u.IsActive {
			continue
		}
		for _, r := range roles {
			if u.Role == r {
				matched = append(matched, u)
				break
			}
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched
}

// fakeNotifier records marking notifications
type fakeNotifier struct {
	marked []*models.DiaryEntry
}

func (f *fakeNotifier) NotifyEntryMarked(_ context.Context, entry *models.DiaryEntry) error {
	f.marked = append(f.marked, entry)
	return nil
}

// fakeNotificationStore is an in-memory notificationStore
type fakeNotificationStore struct {
	nextID        int64
	notifications []*models.Notification
	failForUser   int64 // Create fails for this user id when non-zero
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{nextID: 1}
}

func (f *fakeNotificationStore) Create(_ context.Context, n *models.Notification) error {
	if f.failForUser != 0 && n.UserID == f.failForUser {
		return apperrors.ErrBadRequest
	}
	n.ID = f.nextID
	f.nextID++
	n.CreatedAt = time.Now()
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeNotificationStore) GetByID(_ context.Context, id, userID int64) (*models.Notification, error) {
	for _, n := range f.notifications {
		if n.ID == id && n.UserID == userID {
			return n, nil
		}
	}
	return nil, apperrors.ErrNotificationNotFound
}

func (f *fakeNotificationStore) ListByUser(_ context.Context, userID int64, opts dto.NotificationListOptions, now time.Time, offset, limit int) ([]*models.Notification, int64, error) {
	var matched []*models.Notification
	for _, n := range f.notifications {
		if n.UserID != userID {
			continue
		}
		if n.ExpiresAt != nil && !n.ExpiresAt.After(now) {
			continue
		}
		if opts.UnreadOnly && n.IsRead {
			continue
		}
		matched = append(matched, n)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeNotificationStore) MarkAsRead(_ context.Context, id, userID int64) (bool, error) {
	for _, n := range f.notifications {
		if n.ID == id && n.UserID == userID && !n.IsRead {
			n.IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationStore) MarkAllAsRead(_ context.Context, userID int64) (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var kept []*models.Notification
	var deleted int64
	for _, n := range f.notifications {
		if n.ExpiresAt != nil && n.ExpiresAt.Before(now) {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	f.notifications = kept
	return deleted, nil
}

func (f *fakeNotificationStore) Stats(_ context.Context, userID int64, now time.Time) (*dto.NotificationStats, error) {
	stats := &dto.NotificationStats{ByType: make(map[string]int64)}
	for _, n := range f.notifications {
		if n.UserID != userID {
			continue
		}
		if n.ExpiresAt != nil && !n.ExpiresAt.After(now) {
			continue
		}
		stats.Total++
		stats.ByType[string(n.Type)]++
		if !n.IsRead {
			stats.Unread++
		}
	}
	return stats, nil
}

// fakeStorage is an in-memory reportStorage
type fakeStorage struct {
	saved   []string
	deleted []string
}

func (f *fakeStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error) {
	url := "/uploads/" + path + "/" + fileHeader.Filename
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeStorage) DeleteFile(filePath string) error {
	f.deleted = append(f.deleted, filePath)
	return nil
}

func mustDate(s string) time.Time {
	t, err := helpers.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptrInt64(v int64) *int64 { return &v }
