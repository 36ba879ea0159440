package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzk/interntrack/internal/app/models"
	"github.com/oguzk/interntrack/internal/pkg/apperrors"
	"github.com/oguzk/interntrack/internal/pkg/dberrors"
)

// GroupRepository handles database operations for groups and the
// teacher_groups junction
type GroupRepository struct {
	db *pgxpool.Pool
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{
		db: db,
	}
}

// Create creates a new group
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	query := `
		INSERT INTO groups (name, description, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, group.Name, group.Description, group.IsActive).
		Scan(&group.ID, &group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "groups_name_key") {
			return apperrors.ErrGroupNameExists
		}
		return fmt.Errorf("error creating group: %w", err)
	}

	return nil
}

// GetByID retrieves a group by ID
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM groups
		WHERE id = $1
	`

	var group models.Group
	err := r.db.QueryRow(ctx, query, id).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.IsActive,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("error retrieving group: %w", err)
	}

	return &group, nil
}

// GetAll retrieves all groups
func (r *GroupRepository) GetAll(ctx context.Context) ([]*models.Group, error) {
	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM groups
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		var group models.Group
		if err := rows.Scan(
			&group.ID,
			&group.Name,
			&group.Description,
			&group.IsActive,
			&group.CreatedAt,
			&group.UpdatedAt,
		); err != nil {
			return nil, err
		}
		groups = append(groups, &group)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}

// GetByIDs retrieves the groups with the given IDs
func (r *GroupRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Group, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM groups
		WHERE id = ANY($1)
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("error retrieving groups by ids: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		var group models.Group
		if err := rows.Scan(
			&group.ID,
			&group.Name,
			&group.Description,
			&group.IsActive,
			&group.CreatedAt,
			&group.UpdatedAt,
		); err != nil {
			return nil, err
		}
		groups = append(groups, &group)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}

// Update updates an existing group
func (r *GroupRepository) Update(ctx context.Context, group *models.Group) error {
	query := `
		UPDATE groups
		SET name = $1, description = $2, is_active = $3, updated_at = NOW()
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query, group.Name, group.Description, group.IsActive, group.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "groups_name_key") {
			return apperrors.ErrGroupNameExists
		}
		return fmt.Errorf("error updating group: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGroupNotFound
	}

	return nil
}

// Delete deletes a group by ID
func (r *GroupRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting group: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGroupNotFound
	}
	return nil
}

// AssignTeacher links a teacher to a group. Assigning twice is a no-op.
func (r *GroupRepository) AssignTeacher(ctx context.Context, groupID, teacherID int64) error {
	query := `
		INSERT INTO teacher_groups (teacher_id, group_id)
		VALUES ($1, $2)
		ON CONFLICT (teacher_id, group_id) DO NOTHING
	`

	if _, err := r.db.Exec(ctx, query, teacherID, groupID); err != nil {
		return fmt.Errorf("error assigning teacher to group: %w", err)
	}
	return nil
}

// RemoveTeacher unlinks a teacher from a group
func (r *GroupRepository) RemoveTeacher(ctx context.Context, groupID, teacherID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM teacher_groups WHERE teacher_id = $1 AND group_id = $2`, teacherID, groupID)
	if err != nil {
		return fmt.Errorf("error removing teacher from group: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// GetTeacherGroupIDs retrieves the IDs of the groups assigned to a teacher
func (r *GroupRepository) GetTeacherGroupIDs(ctx context.Context, teacherID int64) ([]int64, error) {
	query := `SELECT group_id FROM teacher_groups WHERE teacher_id = $1 ORDER BY group_id`

	rows, err := r.db.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving teacher groups: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
