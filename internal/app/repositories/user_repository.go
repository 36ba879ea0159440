package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzk/interntrack/internal/app/models"
	"github.com/oguzk/interntrack/internal/app/models/dto"
	"github.com/oguzk/interntrack/internal/pkg/apperrors"
	"github.com/oguzk/interntrack/internal/pkg/dberrors"
)

const userColumns = `id, name, email, password, role, is_active, last_login, profile_image,
	group_id, password_reset_token, password_reset_expiry, created_at, updated_at`

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.IsActive,
		&user.LastLogin,
		&user.ProfileImage,
		&user.GroupID,
		&user.PasswordResetToken,
		&user.PasswordResetExpiry,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	return &user, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, password, role, is_active, group_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		user.Name, user.Email, user.Password, user.Role, user.IsActive, user.GroupID,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

// GetByPasswordResetToken retrieves a user by a pending reset token
func (r *UserRepository) GetByPasswordResetToken(ctx context.Context, token string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE password_reset_token = $1`
	return scanUser(r.db.QueryRow(ctx, query, token))
}

// List retrieves users matching the filter, paginated
func (r *UserRepository) List(ctx context.Context, filter dto.UserFilter, offset, limit int) ([]*models.User, int64, error) {
	where := ` WHERE ($1 = '' OR role = $1) AND ($2::bigint IS NULL OR group_id = $2)`

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, filter.Role, filter.GroupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting users: %w", err)
	}

	query := `SELECT ` + userColumns + ` FROM users` + where + `
		ORDER BY created_at DESC
		OFFSET $3 LIMIT $4`

	rows, err := r.db.Query(ctx, query, filter.Role, filter.GroupID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users, err := collectUsers(rows)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func collectUsers(rows pgx.Rows) ([]*models.User, error) {
	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// GetStudentsByGroup retrieves all students in a group
func (r *UserRepository) GetStudentsByGroup(ctx context.Context, groupID int64) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE role = $1 AND group_id = $2
		ORDER BY name`

	rows, err := r.db.Query(ctx, query, models.RoleStudent, groupID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving group students: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// GetActiveStudents retrieves all active students
func (r *UserRepository) GetActiveStudents(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE role = $1 AND is_active = TRUE
		ORDER BY id`

	rows, err := r.db.Query(ctx, query, models.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("error retrieving active students: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// GetActiveUsersByRoles retrieves all active users with one of the given roles
func (r *UserRepository) GetActiveUsersByRoles(ctx context.Context, roles []models.Role) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE is_active = TRUE AND role = ANY($1)
		ORDER BY id`

	rows, err := r.db.Query(ctx, query, roles)
	if err != nil {
		return nil, fmt.Errorf("error retrieving users by roles: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// Update updates an existing user's mutable fields
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, role = $3, group_id = $4, is_active = $5,
			profile_image = $6, updated_at = NOW()
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		user.Name, user.Email, user.Role, user.GroupID, user.IsActive, user.ProfileImage, user.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating user: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdatePassword updates a user's password hash and clears any reset token
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	query := `
		UPDATE users
		SET password = $1, password_reset_token = NULL, password_reset_expiry = NULL, updated_at = NOW()
		WHERE id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// SetPasswordResetToken stores a pending reset token with expiry
func (r *UserRepository) SetPasswordResetToken(ctx context.Context, userID int64, token string, expiry time.Time) error {
	query := `
		UPDATE users
		SET password_reset_token = $1, password_reset_expiry = $2, updated_at = NOW()
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, token, expiry, userID)
	if err != nil {
		return fmt.Errorf("error setting password reset token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin stamps the user's last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}

// SetActive toggles the user's active flag
func (r *UserRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, userID)
	if err != nil {
		return fmt.Errorf("error toggling user active flag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Delete hard-deletes a user
func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
