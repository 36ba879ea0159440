// Package auth holds the access predicates deciding whether a principal may
// act on a resource. The predicates are pure: they take snapshots already
// loaded by the caller, perform no store access, and express denial as a
// plain false for the HTTP surface to map to 403.
package auth

import (
	"github.com/oguzk/interntrack/internal/app/models"
)

// CanAccessGroup decides whether the principal may act on the given group.
// Super admins always pass; teachers pass only for groups in their assigned
// set; students never pass for arbitrary groups. Existence of the group is
// not validated here.
func CanAccessGroup(p Principal, groupID int64) bool {
	switch p.Role {
	case models.RoleSuperAdmin:
		return true
	case models.RoleTeacher:
		return p.HasAssignedGroup(groupID)
	default:
		return false
	}
}

// CanAccessStudent decides whether the principal may act on the given
// student's resources. A student without a group is reachable only by super
// admins; a teacher with no assigned groups is authorized for nothing.
func CanAccessStudent(p Principal, student *models.User) bool {
	if p.Role == models.RoleSuperAdmin {
		return true
	}
	if student == nil || student.GroupID == nil {
		return false
	}
	return CanAccessGroup(p, *student.GroupID)
}

// CanAccessProgram decides whether the principal may act on the given
// program, by intersecting the program's group affiliations with the
// principal's assigned set.
func CanAccessProgram(p Principal, program *models.InternshipProgram) bool {
	if p.Role == models.RoleSuperAdmin {
		return true
	}
	if program == nil {
		return false
	}
	for _, groupID := range program.GroupIDs {
		if CanAccessGroup(p, groupID) {
			return true
		}
	}
	return false
}

// CanAccessOwn decides whether the principal is the given user. Used for
// self-scoped resources such as notifications and profile data.
func CanAccessOwn(p Principal, userID int64) bool {
	return p.UserID == userID
}
