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
)

const notificationColumns = `id, user_id, type, title, message, priority, is_read,
	action_url, metadata, expires_at, created_at`

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
	}
}

func scanNotification(row pgx.Row) (*models.Notification, error) {
	var n models.Notification
	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Type,
		&n.Title,
		&n.Message,
		&n.Priority,
		&n.IsRead,
		&n.ActionURL,
		&n.Metadata,
		&n.ExpiresAt,
		&n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("error scanning notification: %w", err)
	}
	return &n, nil
}

// Create inserts a notification row. No dedup is performed here: identical
// payloads produce distinct rows.
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (user_id, type, title, message, priority, is_read, action_url, metadata, expires_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		n.UserID, n.Type, n.Title, n.Message, n.Priority, n.ActionURL, n.Metadata, n.ExpiresAt,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}

	return nil
}

// GetByID retrieves a notification scoped to the owning user
func (r *NotificationRepository) GetByID(ctx context.Context, id, userID int64) (*models.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1 AND user_id = $2`

	n, err := scanNotification(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		return nil, err
	}
	return n, nil
}

// ListByUser retrieves a user's notifications, excluding expired rows,
// newest first, paginated
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, opts dto.NotificationListOptions, now time.Time, offset, limit int) ([]*models.Notification, int64, error) {
	where := ` WHERE user_id = $1
		AND (expires_at IS NULL OR expires_at > $2)
		AND ($3 = FALSE OR is_read = FALSE)`

	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications`+where, userID, now, opts.UnreadOnly).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting notifications: %w", err)
	}

	query := `SELECT ` + notificationColumns + ` FROM notifications` + where + `
		ORDER BY created_at DESC
		OFFSET $4 LIMIT $5`

	rows, err := r.db.Query(ctx, query, userID, now, opts.UnreadOnly, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, err
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// MarkAsRead flips a single notification to read, scoped to the owning user.
// Returns false when no unread row matched.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, id, userID int64) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE id = $1 AND user_id = $2 AND is_read = FALSE`, id, userID)
	if err != nil {
		return false, fmt.Errorf("error marking notification read: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// MarkAllAsRead flips all of a user's unread notifications to read and
// returns the count affected
func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return 0, fmt.Errorf("error marking all notifications read: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// DeleteExpired removes all rows with expires_at strictly in the past and
// returns the count deleted
func (r *NotificationRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM notifications WHERE expires_at IS NOT NULL AND expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("error deleting expired notifications: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// Stats returns the user's notification totals, excluding expired rows
func (r *NotificationRepository) Stats(ctx context.Context, userID int64, now time.Time) (*dto.NotificationStats, error) {
	stats := &dto.NotificationStats{ByType: make(map[string]int64)}

	query := `
		SELECT type, COUNT(*), COUNT(*) FILTER (WHERE is_read = FALSE)
		FROM notifications
		WHERE user_id = $1 AND (expires_at IS NULL OR expires_at > $2)
		GROUP BY type
	`

	rows, err := r.db.Query(ctx, query, userID, now)
	if err != nil {
		return nil, fmt.Errorf("error computing notification stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var notifType string
		var count, unread int64
		if err := rows.Scan(&notifType, &count, &unread); err != nil {
			return nil, err
		}
		stats.ByType[notifType] = count
		stats.Total += count
		stats.Unread += unread
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
