package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzk/interntrack/internal/app/models"
	"github.com/oguzk/interntrack/internal/pkg/apperrors"
)

const diaryColumns = `id, student_id, entry_date, text_report, file_url, file_name, file_size,
	is_submitted, submitted_at, mark, teacher_comment, marked_at, teacher_id, created_at, updated_at`

// DiaryRepository handles database operations for diary entries
type DiaryRepository struct {
	db *pgxpool.Pool
}

// NewDiaryRepository creates a new diary repository
func NewDiaryRepository(db *pgxpool.Pool) *DiaryRepository {
	return &DiaryRepository{
		db: db,
	}
}

func scanEntry(row pgx.Row) (*models.DiaryEntry, error) {
	var entry models.DiaryEntry
	err := row.Scan(
		&entry.ID,
		&entry.StudentID,
		&entry.EntryDate,
		&entry.TextReport,
		&entry.FileURL,
		&entry.FileName,
		&entry.FileSize,
		&entry.IsSubmitted,
		&entry.SubmittedAt,
		&entry.Mark,
		&entry.TeacherComment,
		&entry.MarkedAt,
		&entry.TeacherID,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDiaryEntryNotFound
		}
		return nil, fmt.Errorf("error scanning diary entry: %w", err)
	}
	return &entry, nil
}

// Upsert creates or fully overwrites the entry for (student_id, entry_date).
// The mark fields are left untouched on conflict: marking and submission are
// independent axes.
func (r *DiaryRepository) Upsert(ctx context.Context, entry *models.DiaryEntry) error {
	query := `
		INSERT INTO diary_entries
			(student_id, entry_date, text_report, file_url, file_name, file_size, is_submitted, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7)
		ON CONFLICT (student_id, entry_date) DO UPDATE
		SET text_report = EXCLUDED.text_report,
			file_url = EXCLUDED.file_url,
			file_name = EXCLUDED.file_name,
			file_size = EXCLUDED.file_size,
			is_submitted = TRUE,
			submitted_at = EXCLUDED.submitted_at,
			updated_at = NOW()
		RETURNING ` + diaryColumns

	updated, err := scanEntry(r.db.QueryRow(ctx, query,
		entry.StudentID, entry.EntryDate, entry.TextReport,
		entry.FileURL, entry.FileName, entry.FileSize, entry.SubmittedAt))
	if err != nil {
		return fmt.Errorf("error upserting diary entry: %w", err)
	}

	*entry = *updated
	return nil
}

// GetByID retrieves a diary entry by ID
func (r *DiaryRepository) GetByID(ctx context.Context, id int64) (*models.DiaryEntry, error) {
	query := `SELECT ` + diaryColumns + ` FROM diary_entries WHERE id = $1`
	return scanEntry(r.db.QueryRow(ctx, query, id))
}

// GetByStudentAndDate retrieves the entry for a (student, date) pair
func (r *DiaryRepository) GetByStudentAndDate(ctx context.Context, studentID int64, date time.Time) (*models.DiaryEntry, error) {
	query := `SELECT ` + diaryColumns + ` FROM diary_entries WHERE student_id = $1 AND entry_date = $2`
	return scanEntry(r.db.QueryRow(ctx, query, studentID, date))
}

// HasSubmittedOn reports whether a submitted entry exists for the date
func (r *DiaryRepository) HasSubmittedOn(ctx context.Context, studentID int64, date time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM diary_entries
			WHERE student_id = $1 AND entry_date = $2 AND is_submitted = TRUE
		)`, studentID, date).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking diary submission: %w", err)
	}
	return exists, nil
}

// UpdateMark overwrites the marking fields of an entry
func (r *DiaryRepository) UpdateMark(ctx context.Context, entryID int64, mark int, comment *string, teacherID int64, markedAt time.Time) (*models.DiaryEntry, error) {
	query := `
		UPDATE diary_entries
		SET mark = $1, teacher_comment = $2, marked_at = $3, teacher_id = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING ` + diaryColumns

	entry, err := scanEntry(r.db.QueryRow(ctx, query, mark, comment, markedAt, teacherID, entryID))
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateAttachment overwrites the report file fields of an entry
func (r *DiaryRepository) UpdateAttachment(ctx context.Context, entryID int64, fileURL, fileName string, fileSize int64) (*models.DiaryEntry, error) {
	query := `
		UPDATE diary_entries
		SET file_url = $1, file_name = $2, file_size = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + diaryColumns

	entry, err := scanEntry(r.db.QueryRow(ctx, query, fileURL, fileName, fileSize, entryID))
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ListByStudent retrieves a student's entries, newest first, paginated
func (r *DiaryRepository) ListByStudent(ctx context.Context, studentID int64, offset, limit int) ([]*models.DiaryEntry, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM diary_entries WHERE student_id = $1`, studentID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting diary entries: %w", err)
	}

	query := `SELECT ` + diaryColumns + ` FROM diary_entries
		WHERE student_id = $1
		ORDER BY entry_date DESC
		OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(ctx, query, studentID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing diary entries: %w", err)
	}
	defer rows.Close()

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// ListByGroups retrieves entries of students belonging to the given groups,
// newest first, paginated
func (r *DiaryRepository) ListByGroups(ctx context.Context, groupIDs []int64, offset, limit int) ([]*models.DiaryEntry, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM diary_entries d
		JOIN users u ON u.id = d.student_id
		WHERE u.group_id = ANY($1)`, groupIDs).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting group diary entries: %w", err)
	}

	query := `
		SELECT d.id, d.student_id, d.entry_date, d.text_report, d.file_url, d.file_name, d.file_size,
			d.is_submitted, d.submitted_at, d.mark, d.teacher_comment, d.marked_at, d.teacher_id,
			d.created_at, d.updated_at
		FROM diary_entries d
		JOIN users u ON u.id = d.student_id
		WHERE u.group_id = ANY($1)
		ORDER BY d.entry_date DESC, d.student_id
		OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(ctx, query, groupIDs, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing group diary entries: %w", err)
	}
	defer rows.Close()

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func collectEntries(rows pgx.Rows) ([]*models.DiaryEntry, error) {
	var entries []*models.DiaryEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
