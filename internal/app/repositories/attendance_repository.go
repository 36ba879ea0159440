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

const attendanceColumns = `id, student_id, date, status, teacher_id, created_at, updated_at`

// AttendanceRepository handles database operations for attendance records
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
	}
}

func scanAttendance(row pgx.Row) (*models.Attendance, error) {
	var a models.Attendance
	err := row.Scan(
		&a.ID,
		&a.StudentID,
		&a.Date,
		&a.Status,
		&a.TeacherID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("error scanning attendance: %w", err)
	}
	return &a, nil
}

// Upsert inserts or replaces the attendance record for (student, date)
func (r *AttendanceRepository) Upsert(ctx context.Context, a *models.Attendance) error {
	query := `
		INSERT INTO attendance (student_id, date, status, teacher_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (student_id, date) DO UPDATE SET
			status = EXCLUDED.status,
			teacher_id = EXCLUDED.teacher_id,
			updated_at = NOW()
		RETURNING ` + attendanceColumns

	updated, err := scanAttendance(r.db.QueryRow(ctx, query,
		a.StudentID, a.Date, a.Status, a.TeacherID))
	if err != nil {
		return fmt.Errorf("error upserting attendance: %w", err)
	}

	*a = *updated
	return nil
}

// ListByStudent retrieves a student's attendance records within a date range, oldest first
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID int64, from, to time.Time) ([]*models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance
		WHERE student_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC`

	rows, err := r.db.Query(ctx, query, studentID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error listing attendance: %w", err)
	}
	defer rows.Close()

	return collectAttendance(rows)
}

// ListByGroupAndDate retrieves all attendance records for students of a group on one date
func (r *AttendanceRepository) ListByGroupAndDate(ctx context.Context, groupID int64, date time.Time) ([]*models.Attendance, error) {
	query := `
		SELECT a.id, a.student_id, a.date, a.status, a.teacher_id, a.created_at, a.updated_at
		FROM attendance a
		JOIN users u ON u.id = a.student_id
		WHERE u.group_id = $1 AND a.date = $2
		ORDER BY a.student_id ASC`

	rows, err := r.db.Query(ctx, query, groupID, date)
	if err != nil {
		return nil, fmt.Errorf("error listing group attendance: %w", err)
	}
	defer rows.Close()

	return collectAttendance(rows)
}

func collectAttendance(rows pgx.Rows) ([]*models.Attendance, error) {
	var records []*models.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
