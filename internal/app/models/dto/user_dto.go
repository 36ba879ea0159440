package dto

// CreateUserRequest represents an admin user creation request
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required" example:"Ayşe Demir"`
	Email    string `json:"email" binding:"required,email" example:"ayse@example.edu"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required" example:"student" enums:"super_admin,teacher,student"`
	GroupID  *int64 `json:"groupId,omitempty" example:"3"`
}

// UpdateUserRequest represents an admin user update request
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Role     *string `json:"role,omitempty" enums:"super_admin,teacher,student"`
	GroupID  *int64  `json:"groupId,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// SetActiveRequest enables or disables a user account
type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// UserFilter carries optional listing filters for users
type UserFilter struct {
	Role    string
	GroupID *int64
}
