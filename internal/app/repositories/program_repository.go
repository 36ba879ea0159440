package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzk/interntrack/internal/app/models"
	"github.com/oguzk/interntrack/internal/pkg/apperrors"
)

const programColumns = `id, name, description, start_date, end_date, disabled_days,
	is_active, created_at, updated_at`

// ProgramRepository handles database operations for internship programs and
// the program_groups junction
type ProgramRepository struct {
	db *pgxpool.Pool
}

// NewProgramRepository creates a new program repository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{
		db: db,
	}
}

func scanProgram(row pgx.Row) (*models.InternshipProgram, error) {
	var program models.InternshipProgram
	err := row.Scan(
		&program.ID,
		&program.Name,
		&program.Description,
		&program.StartDate,
		&program.EndDate,
		&program.DisabledDays,
		&program.IsActive,
		&program.CreatedAt,
		&program.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProgramNotFound
		}
		return nil, fmt.Errorf("error scanning program: %w", err)
	}
	return &program, nil
}

// loadGroupIDs populates the program's assigned group IDs from the junction
func (r *ProgramRepository) loadGroupIDs(ctx context.Context, program *models.InternshipProgram) error {
	rows, err := r.db.Query(ctx,
		`SELECT group_id FROM program_groups WHERE program_id = $1 ORDER BY group_id`, program.ID)
	if err != nil {
		return fmt.Errorf("error retrieving program groups: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		program.GroupIDs = append(program.GroupIDs, id)
	}
	return rows.Err()
}

// Create creates a new program together with its group assignments
func (r *ProgramRepository) Create(ctx context.Context, program *models.InternshipProgram) error {
	query := `
		INSERT INTO internship_programs (name, description, start_date, end_date, disabled_days, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		program.Name, program.Description, program.StartDate, program.EndDate,
		program.DisabledDays, program.IsActive,
	).Scan(&program.ID, &program.CreatedAt, &program.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating program: %w", err)
	}

	for _, groupID := range program.GroupIDs {
		if err := r.AssignGroup(ctx, program.ID, groupID); err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves a program by ID with its group assignments
func (r *ProgramRepository) GetByID(ctx context.Context, id int64) (*models.InternshipProgram, error) {
	query := `SELECT ` + programColumns + ` FROM internship_programs WHERE id = $1`

	program, err := scanProgram(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	if err := r.loadGroupIDs(ctx, program); err != nil {
		return nil, err
	}

	return program, nil
}

// GetAll retrieves all programs with their group assignments
func (r *ProgramRepository) GetAll(ctx context.Context) ([]*models.InternshipProgram, error) {
	query := `SELECT ` + programColumns + ` FROM internship_programs ORDER BY start_date DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving programs: %w", err)
	}
	defer rows.Close()

	var programs []*models.InternshipProgram
	for rows.Next() {
		program, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		programs = append(programs, program)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, program := range programs {
		if err := r.loadGroupIDs(ctx, program); err != nil {
			return nil, err
		}
	}

	return programs, nil
}

// GetActiveProgramByGroup retrieves the active program assigned to a group.
// When several match, the most recently started wins.
func (r *ProgramRepository) GetActiveProgramByGroup(ctx context.Context, groupID int64) (*models.InternshipProgram, error) {
	query := `
		SELECT p.id, p.name, p.description, p.start_date, p.end_date, p.disabled_days,
			p.is_active, p.created_at, p.updated_at
		FROM internship_programs p
		JOIN program_groups pg ON pg.program_id = p.id
		WHERE pg.group_id = $1 AND p.is_active = TRUE
		ORDER BY p.start_date DESC
		LIMIT 1
	`

	program, err := scanProgram(r.db.QueryRow(ctx, query, groupID))
	if err != nil {
		return nil, err
	}

	if err := r.loadGroupIDs(ctx, program); err != nil {
		return nil, err
	}

	return program, nil
}

// Update updates an existing program
func (r *ProgramRepository) Update(ctx context.Context, program *models.InternshipProgram) error {
	query := `
		UPDATE internship_programs
		SET name = $1, description = $2, start_date = $3, end_date = $4,
			disabled_days = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		program.Name, program.Description, program.StartDate, program.EndDate,
		program.DisabledDays, program.IsActive, program.ID)
	if err != nil {
		return fmt.Errorf("error updating program: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}

	return nil
}

// Delete deletes a program by ID
func (r *ProgramRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM internship_programs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting program: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}
	return nil
}

// AssignGroup links a group to a program. Assigning twice is a no-op.
func (r *ProgramRepository) AssignGroup(ctx context.Context, programID, groupID int64) error {
	query := `
		INSERT INTO program_groups (program_id, group_id)
		VALUES ($1, $2)
		ON CONFLICT (program_id, group_id) DO NOTHING
	`

	if _, err := r.db.Exec(ctx, query, programID, groupID); err != nil {
		return fmt.Errorf("error assigning group to program: %w", err)
	}
	return nil
}

// RemoveGroup unlinks a group from a program
func (r *ProgramRepository) RemoveGroup(ctx context.Context, programID, groupID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM program_groups WHERE program_id = $1 AND group_id = $2`, programID, groupID)
	if err != nil {
		return fmt.Errorf("error removing group from program: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
