package dto

import (
	"github.com/oguzk/interntrack/internal/app/models"
)

// NotificationListOptions carries listing options for a user's notifications
type NotificationListOptions struct {
	Page       int
	Limit      int
	UnreadOnly bool
}

// NotificationList is the paginated result of a notification listing
type NotificationList struct {
	Notifications []*models.Notification `json:"notifications"`
	Total         int64                  `json:"total"`
	Page          int                    `json:"page"`
	TotalPages    int                    `json:"totalPages"`
	HasMore       bool                   `json:"hasMore"`
}

// NotificationStats summarises a user's notification state
type NotificationStats struct {
	Total  int64            `json:"total"`
	Unread int64            `json:"unread"`
	ByType map[string]int64 `json:"byType"`
}

// AnnouncementRequest represents a system announcement fan-out request.
// Empty UserRoles targets all roles.
type AnnouncementRequest struct {
	Title     string            `json:"title" binding:"required"`
	Message   string            `json:"message" binding:"required"`
	Priority  string            `json:"priority,omitempty" enums:"low,medium,high,urgent"`
	UserRoles []string          `json:"userRoles,omitempty"`
	ActionURL *string           `json:"actionUrl,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	ExpiresAt *string           `json:"expiresAt,omitempty" example:"2025-07-01T00:00:00Z"`
}
