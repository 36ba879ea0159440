package dto

// CreateProgramRequest represents a program creation request.
// Dates and DisabledDays use ISO calendar dates (YYYY-MM-DD).
type CreateProgramRequest struct {
	Name         string   `json:"name" binding:"required" example:"Summer Internship 2025"`
	Description  string   `json:"description"`
	StartDate    string   `json:"startDate" binding:"required" example:"2025-06-02"`
	EndDate      string   `json:"endDate" binding:"required" example:"2025-08-29"`
	DisabledDays []string `json:"disabledDays,omitempty" example:"2025-07-15"`
	GroupIDs     []int64  `json:"groupIds,omitempty"`
}

// UpdateProgramRequest represents a program update request
type UpdateProgramRequest struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	StartDate    *string  `json:"startDate,omitempty"`
	EndDate      *string  `json:"endDate,omitempty"`
	DisabledDays []string `json:"disabledDays,omitempty"`
	IsActive     *bool    `json:"isActive,omitempty"`
}

// AssignGroupRequest links a group to a program
type AssignGroupRequest struct {
	GroupID int64 `json:"groupId" binding:"required" example:"3"`
}
