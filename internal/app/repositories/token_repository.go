package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzk/interntrack/internal/pkg/apperrors"
)

// RefreshToken is a stored refresh token row
type RefreshToken struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TokenRepository handles database operations for refresh tokens
type TokenRepository struct {
	db *pgxpool.Pool
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
	}
}

// Save stores a refresh token for a user
func (r *TokenRepository) Save(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
	`

	if _, err := r.db.Exec(ctx, query, userID, token, expiresAt); err != nil {
		return fmt.Errorf("error saving refresh token: %w", err)
	}
	return nil
}

// Get retrieves an unexpired refresh token
func (r *TokenRepository) Get(ctx context.Context, token string, now time.Time) (*RefreshToken, error) {
	query := `
		SELECT id, user_id, token, expires_at, created_at
		FROM refresh_tokens
		WHERE token = $1 AND expires_at > $2
	`

	var rt RefreshToken
	err := r.db.QueryRow(ctx, query, token, now).Scan(&rt.ID, &rt.UserID, &rt.Token, &rt.ExpiresAt, &rt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("error getting refresh token: %w", err)
	}
	return &rt, nil
}

// Delete removes a single refresh token
func (r *TokenRepository) Delete(ctx context.Context, token string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE token = $1`, token); err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}
	return nil
}

// DeleteForUser removes all refresh tokens belonging to a user
func (r *TokenRepository) DeleteForUser(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("error deleting user refresh tokens: %w", err)
	}
	return nil
}

// DeleteExpired removes all expired refresh tokens and returns the count deleted
func (r *TokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("error deleting expired refresh tokens: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
