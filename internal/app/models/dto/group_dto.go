package dto

// CreateGroupRequest represents a group creation request
type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required" example:"Software Interns 2025"`
	Description string `json:"description"`
}

// UpdateGroupRequest represents a group update request
type UpdateGroupRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// AssignTeacherRequest links a teacher to a group
type AssignTeacherRequest struct {
	TeacherID int64 `json:"teacherId" binding:"required" example:"7"`
}
