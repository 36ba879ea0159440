package services

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzk/interntrack/internal/app/auth"
	"github.com/oguzk/interntrack/internal/app/models"
	"github.com/oguzk/interntrack/internal/app/models/dto"
	"github.com/oguzk/interntrack/internal/pkg/apperrors"
)

const (
	testStudentID = int64(10)
	testTeacherID = int64(20)
	testGroupID   = int64(3)
)

// June 2025 program: June 2 (Mon) through June 30 (Mon), June 16 disabled
func testProgram() *models.InternshipProgram {
	return &models.InternshipProgram{
		ID:           1,
		Name:         "Summer Internship 2025",
		StartDate:    mustDate("2025-06-02"),
		EndDate:      mustDate("2025-06-30"),
		DisabledDays: []string{"2025-06-16"},
		IsActive:     true,
		GroupIDs:     []int64{testGroupID},
	}
}

func newDiaryFixture() (*DiaryService, *fakeDiaryStore, *fakeNotifier) {
	groupID := testGroupID
	diaryStore := newFakeDiaryStore()
	notifier := &fakeNotifier{}
	users := &fakeUserFinder{users: map[int64]*models.User{
		testStudentID: {ID: testStudentID, Name: "Ayşe Demir", Role: models.RoleStudent, IsActive: true, GroupID: &groupID},
		testTeacherID: {ID: testTeacherID, Name: "Mehmet Kaya", Role: models.RoleTeacher, IsActive: true},
	}}
	programs := &fakeProgramFinder{byGroup: map[int64]*models.InternshipProgram{
		testGroupID: testProgram(),
	}}
	return NewDiaryService(diaryStore, programs, users, notifier, &fakeStorage{}), diaryStore, notifier
}

func TestSubmitEntryOnValidDay(t *testing.T) {
	svc, store, _ := newDiaryFixture()

	entry, err := svc.SubmitEntry(context.Background(), testStudentID, &dto.SubmitEntryRequest{
		EntryDate:  "2025-06-02",
		TextReport: "Set up the development environment.",
	})

	require.NoError(t, err)
	assert.True(t, entry.IsSubmitted)
	assert.NotNil(t, entry.SubmittedAt)
	assert.Equal(t, testStudentID, entry.StudentID)
	assert.Nil(t, entry.Mark)
	assert.Len(t, store.entries, 1)
}

func TestSubmitEntryOutsideProgramPeriod(t *testing.T) {
	svc, _, _ := newDiaryFixture()

	for _, date := range []string{"2025-05-30", "2025-07-01"} {
		_, err := svc.SubmitEntry(context.Background(), testStudentID, &dto.SubmitEntryRequest{
			EntryDate:  date,
			TextReport: "out of range",
		})
		assert.ErrorIs(t, err, apperrors.ErrOutsideProgramPeriod, "date %s", date)
	}
}

func TestSubmitEntryOnWeekend(t *testing.T) {
	svc, _, _ := newDiaryFixture()

	// June 7 2025 is a Saturday, June 8 a Sunday
	for _, date := range []string{"2025-06-07", "2025-06-08"} {
		_, err := svc.SubmitEntry(context.Background(), testStudentID, &dto.SubmitEntryRequest{
			EntryDate:  date,
			TextReport: "weekend work",
		})
		assert.ErrorIs(t, err, apperrors.ErrDisabledProgramDay, "date %s", date)
	}
}

func TestSubmitEntryOnDisabledDay(t *testing.T) {
	svc, _, _ := newDiaryFixture()

	_, err := svc.SubmitEntry(context.Background(), testStudentID, &dto.SubmitEntryRequest{
		EntryDate:  "2025-06-16",
		TextReport: "holiday",
	})

	assert.ErrorIs(t, err, apperrors.ErrDisabledProgramDay)
}

func TestSubmitEntryWithoutProgram(t *testing.T) {
	groupID := int64(99) // group with no active program
	diaryStore := newFakeDiaryStore()
	users := &fakeUserFinder{users: map[int64]*models.User{
		testStudentID: {ID: testStudentID, Role: models.RoleStudent, IsActive: true, GroupID: &groupID},
		11:            {ID: 11, Role: models.RoleStudent, IsActive: true}, // no group
	}}
	programs := &fakeProgramFinder{byGroup: map[int64]*models.InternshipProgram{}}
	svc := NewDiaryService(diaryStore, programs, users, &fakeNotifier{}, &fakeStorage{})

	_, err := svc.SubmitEntry(context.Background(), testStudentID, &dto.SubmitEntryRequest{
		EntryDate: "2025-06-02", TextReport: "x",
	})
	assert.ErrorIs(t, err, apperrors.ErrNoProgramForStudent)

	_, err = svc.SubmitEntry(context.Background(), 11, &dto.SubmitEntryRequest{
		EntryDate: "2025-06-02", TextReport: "x",
	})
	assert.ErrorIs(t, err, apperrors.ErrNoProgramForStudent)
}

func TestSubmitEntryInvalidDate(t *testing.T) {
	svc, _, _ := newDiaryFixture()

	_, err := svc.SubmitEntry(context.Background(), testStudentID, &dto.SubmitEntryRequest{
		EntryDate: "02/06/2025", TextReport: "x",
	})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestResubmissionPreservesMark(t *testing.T) {
	svc, store, _ := newDiaryFixture()

	first, err := svc.SubmitEntry(context.Background(), testStudentID, &dto.SubmitEntryRequest{
		EntryDate:  "2025-06-03",
		TextReport: "first version",
	})
	require.NoError(t, err)

	mark := 90
	store.entries[first.ID].Mark = &mark

	second, err := svc.SubmitEntry(context.Background(), testStudentID, &dto.SubmitEntryRequest{
		EntryDate:  "2025-06-03",
		TextReport: "revised version",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "revised version", second.TextReport)
	require.NotNil(t, second.Mark)
	assert.Equal(t, 90, *second.Mark)
	assert.Len(t, store.entries, 1)
}

func TestMarkEntry(t *testing.T) {
	svc, store, notifier := newDiaryFixture()
	groupID := testGroupID

	entry := store.seed(&models.DiaryEntry{
		StudentID:   testStudentID,
		EntryDate:   mustDate("2025-06-04"),
		TextReport:  "report",
		IsSubmitted: true,
		Student:     &models.User{ID: testStudentID, Role: models.RoleStudent, GroupID: &groupID},
	})

	teacher := auth.NewTeacherPrincipal(testTeacherID, []int64{testGroupID})
	comment := "Good progress"

	marked, err := svc.MarkEntry(context.Background(), teacher, entry.ID, &dto.MarkEntryRequest{
		Mark:    85,
		Comment: &comment,
	})

	require.NoError(t, err)
	require.NotNil(t, marked.Mark)
	assert.Equal(t, 85, *marked.Mark)
	assert.Equal(t, &comment, marked.TeacherComment)
	require.NotNil(t, marked.TeacherID)
	assert.Equal(t, testTeacherID, *marked.TeacherID)
	assert.NotNil(t, marked.MarkedAt)
	require.Len(t, notifier.marked, 1)
	assert.Equal(t, entry.ID, notifier.marked[0].ID)
}

func TestMarkEntryOutOfRange(t *testing.T) {
	svc, _, _ := newDiaryFixture()
	teacher := auth.NewTeacherPrincipal(testTeacherID, []int64{testGroupID})

	for _, mark := range []int{-1, 101} {
		_, err := svc.MarkEntry(context.Background(), teacher, 1, &dto.MarkEntryRequest{Mark: mark})
		assert.ErrorIs(t, err, apperrors.ErrMarkOutOfRange, "mark %d", mark)
	}
}

func TestMarkEntryForeignGroup(t *testing.T) {
	svc, store, notifier := newDiaryFixture()

	entry := store.seed(&models.DiaryEntry{
		StudentID:   testStudentID,
		EntryDate:   mustDate("2025-06-04"),
		IsSubmitted: true,
	})

	outsider := auth.NewTeacherPrincipal(99, []int64{42})
	_, err := svc.MarkEntry(context.Background(), outsider, entry.ID, &dto.MarkEntryRequest{Mark: 50})

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Empty(t, notifier.marked)
}

func TestRemarkOverwritesPreviousMark(t *testing.T) {
	svc, store, _ := newDiaryFixture()

	old := 40
	yesterday := time.Now().Add(-24 * time.Hour)
	entry := store.seed(&models.DiaryEntry{
		StudentID:   testStudentID,
		EntryDate:   mustDate("2025-06-05"),
		IsSubmitted: true,
		Mark:        &old,
		MarkedAt:    &yesterday,
	})

	teacher := auth.NewTeacherPrincipal(testTeacherID, []int64{testGroupID})
	marked, err := svc.MarkEntry(context.Background(), teacher, entry.ID, &dto.MarkEntryRequest{Mark: 75})

	require.NoError(t, err)
	assert.Equal(t, 75, *marked.Mark)
	assert.True(t, marked.MarkedAt.After(yesterday))
}

func TestMarkEntryNotFound(t *testing.T) {
	svc, _, _ := newDiaryFixture()
	teacher := auth.NewTeacherPrincipal(testTeacherID, []int64{testGroupID})

	_, err := svc.MarkEntry(context.Background(), teacher, 404, &dto.MarkEntryRequest{Mark: 50})

	assert.ErrorIs(t, err, apperrors.ErrDiaryEntryNotFound)
}

func TestListAssignedEntriesWithoutGroups(t *testing.T) {
	svc, _, _ := newDiaryFixture()
	teacher := auth.NewTeacherPrincipal(testTeacherID, nil)

	_, _, err := svc.ListAssignedEntries(context.Background(), teacher, 1, 20)

	assert.ErrorIs(t, err, apperrors.ErrTeacherHasNoGroups)
}

func TestAttachReport(t *testing.T) {
	groupID := testGroupID
	store := newFakeDiaryStore()
	storage := &fakeStorage{}
	users := &fakeUserFinder{users: map[int64]*models.User{
		testStudentID: {ID: testStudentID, Role: models.RoleStudent, IsActive: true, GroupID: &groupID},
	}}
	programs := &fakeProgramFinder{byGroup: map[int64]*models.InternshipProgram{testGroupID: testProgram()}}
	svc := NewDiaryService(store, programs, users, &fakeNotifier{}, storage)

	entry := store.seed(&models.DiaryEntry{
		StudentID:   testStudentID,
		EntryDate:   mustDate("2025-06-05"),
		IsSubmitted: true,
	})

	header := &multipart.FileHeader{Filename: "report.pdf", Size: 2048}
	updated, err := svc.AttachReport(context.Background(), testStudentID, entry.ID, header)
	require.NoError(t, err)
	require.NotNil(t, updated.FileURL)
	assert.Equal(t, "/uploads/diary/report.pdf", *updated.FileURL)
	assert.Equal(t, "report.pdf", *updated.FileName)
	assert.Equal(t, int64(2048), *updated.FileSize)
	assert.Len(t, storage.saved, 1)
	assert.Empty(t, storage.deleted)

	// replacing the file removes the previous one from storage
	replacement := &multipart.FileHeader{Filename: "report-v2.pdf", Size: 4096}
	_, err = svc.AttachReport(context.Background(), testStudentID, entry.ID, replacement)
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/diary/report.pdf"}, storage.deleted)

	// only the owning student may attach
	_, err = svc.AttachReport(context.Background(), 55, entry.ID, header)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestGetEntryAccess(t *testing.T) {
	svc, store, _ := newDiaryFixture()

	entry := store.seed(&models.DiaryEntry{
		StudentID:   testStudentID,
		EntryDate:   mustDate("2025-06-06"),
		IsSubmitted: true,
	})

	owner := auth.NewStudentPrincipal(testStudentID, ptrInt64(testGroupID))
	got, err := svc.GetEntry(context.Background(), owner, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, got.ID)

	other := auth.NewStudentPrincipal(55, ptrInt64(testGroupID))
	_, err = svc.GetEntry(context.Background(), other, entry.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	admin := auth.NewSuperAdminPrincipal(1)
	_, err = svc.GetEntry(context.Background(), admin, entry.ID)
	assert.NoError(t, err)
}
