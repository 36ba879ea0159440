package models

import (
	"time"
)

// Notification defines the notification model based on the 'notifications' table.
// Rows are created by the dispatcher, mutated only by read-state transitions
// and destroyed by expiry cleanup.
type Notification struct {
	ID        int64                `json:"id" db:"id"`
	UserID    int64                `json:"userId" db:"user_id"`
	Type      NotificationType     `json:"type" db:"type"`
	Title     string               `json:"title" db:"title"`
	Message   string               `json:"message" db:"message"`
	Priority  NotificationPriority `json:"priority" db:"priority"`
	IsRead    bool                 `json:"isRead" db:"is_read"`
	ActionURL *string              `json:"actionUrl,omitempty" db:"action_url"`
	Metadata  map[string]string    `json:"metadata,omitempty" db:"metadata"`
	ExpiresAt *time.Time           `json:"expiresAt,omitempty" db:"expires_at"`
	CreatedAt time.Time            `json:"createdAt" db:"created_at"`
}
