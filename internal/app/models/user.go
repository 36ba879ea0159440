package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID                  int64      `json:"id" db:"id" example:"1"`                                            // Unique identifier for the user
	Name                string     `json:"name" db:"name" example:"Ayşe Demir"`                               // User's full name
	Email               string     `json:"email" db:"email" example:"ayse@example.edu"`                       // User's email address (unique)
	Password            string     `json:"-" db:"password"`                                                   // User's hashed password (excluded from JSON)
	Role                Role       `json:"role" db:"role" example:"student"`                                  // User's role (super_admin, teacher or student)
	IsActive            bool       `json:"isActive" db:"is_active" example:"true"`                            // Whether the user account is active
	LastLogin           *time.Time `json:"lastLogin,omitempty" db:"last_login"`                               // Timestamp of the last login (nullable)
	ProfileImage        *string    `json:"profileImage,omitempty" db:"profile_image"`                         // URL of the user's profile image (nullable)
	GroupID             *int64     `json:"groupId,omitempty" db:"group_id" example:"3"`                       // Primary group; meaningful for students only
	PasswordResetToken  *string    `json:"-" db:"password_reset_token"`                                       // Pending password reset token (nullable)
	PasswordResetExpiry *time.Time `json:"-" db:"password_reset_expiry"`                                      // Reset token expiry (nullable)
	CreatedAt           time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`          // Timestamp when the user was created
	UpdatedAt           time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`          // Timestamp when the user was last updated

	Group *Group `json:"group,omitempty"` // Relation, no db tag
}

// Group defines the group model based on the 'groups' table
type Group struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"` // Unique
	Description string    `json:"description" db:"description"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
