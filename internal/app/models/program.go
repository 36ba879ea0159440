package models

import (
	"time"
)

// InternshipProgram defines the program model based on the 'internship_programs' table.
// DisabledDays holds literal ISO calendar dates (YYYY-MM-DD); weekends are
// excluded by the calendar rules independently of this list.
type InternshipProgram struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	StartDate    time.Time `json:"startDate" db:"start_date"` // Invariant: StartDate < EndDate
	EndDate      time.Time `json:"endDate" db:"end_date"`
	DisabledDays []string  `json:"disabledDays" db:"disabled_days"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// GroupIDs are the groups assigned to this program via the
	// program_groups junction; loaded alongside the row.
	GroupIDs []int64 `json:"groupIds,omitempty"`
}

// HasGroup reports whether the program is assigned to the given group.
func (p *InternshipProgram) HasGroup(groupID int64) bool {
	for _, id := range p.GroupIDs {
		if id == groupID {
			return true
		}
	}
	return false
}
