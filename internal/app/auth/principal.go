package auth

import (
	"github.com/oguzk/interntrack/internal/app/models"
)

// Principal is the authenticated actor evaluated by the access predicates.
// Role determines which of the group fields is meaningful: teachers carry
// their assigned-group set, students their single primary group.
type Principal struct {
	UserID           int64
	Role             models.Role
	AssignedGroupIDs []int64 // Teachers: groups linked via teacher_groups
	GroupID          *int64  // Students: primary group
}

// NewSuperAdminPrincipal builds a principal with unrestricted resource access.
func NewSuperAdminPrincipal(userID int64) Principal {
	return Principal{UserID: userID, Role: models.RoleSuperAdmin}
}

// NewTeacherPrincipal builds a teacher principal scoped to the given groups.
func NewTeacherPrincipal(userID int64, assignedGroupIDs []int64) Principal {
	return Principal{UserID: userID, Role: models.RoleTeacher, AssignedGroupIDs: assignedGroupIDs}
}

// NewStudentPrincipal builds a student principal owning a single group.
func NewStudentPrincipal(userID int64, groupID *int64) Principal {
	return Principal{UserID: userID, Role: models.RoleStudent, GroupID: groupID}
}

// HasAssignedGroup reports whether the principal's assigned-group set
// contains the given group.
func (p Principal) HasAssignedGroup(groupID int64) bool {
	for _, id := range p.AssignedGroupIDs {
		if id == groupID {
			return true
		}
	}
	return false
}
