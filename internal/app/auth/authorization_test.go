package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oguzk/interntrack/internal/app/models"
)

func groupID(id int64) *int64 { return &id }

func TestCanAccessGroup_SuperAdmin(t *testing.T) {
	admin := NewSuperAdminPrincipal(1)

	// Existence of the group is not this predicate's concern
	for _, id := range []int64{1, 42, 99999} {
		assert.True(t, CanAccessGroup(admin, id))
	}
}

func TestCanAccessGroup_Teacher(t *testing.T) {
	teacher := NewTeacherPrincipal(2, []int64{10, 20})

	assert.True(t, CanAccessGroup(teacher, 10))
	assert.True(t, CanAccessGroup(teacher, 20))
	assert.False(t, CanAccessGroup(teacher, 30))
}

func TestCanAccessGroup_TeacherWithoutGroups(t *testing.T) {
	teacher := NewTeacherPrincipal(2, nil)

	for _, id := range []int64{1, 10, 20} {
		assert.False(t, CanAccessGroup(teacher, id))
	}
}

func TestCanAccessGroup_Student(t *testing.T) {
	student := NewStudentPrincipal(3, groupID(10))

	// Students never pass the group predicate, not even for their own group
	assert.False(t, CanAccessGroup(student, 10))
	assert.False(t, CanAccessGroup(student, 20))
}

func TestCanAccessStudent(t *testing.T) {
	inGroup := &models.User{ID: 5, Role: models.RoleStudent, GroupID: groupID(10)}
	noGroup := &models.User{ID: 6, Role: models.RoleStudent}

	tests := []struct {
		name      string
		principal Principal
		student   *models.User
		want      bool
	}{
		{name: "super admin any student", principal: NewSuperAdminPrincipal(1), student: inGroup, want: true},
		{name: "super admin ungrouped student", principal: NewSuperAdminPrincipal(1), student: noGroup, want: true},
		{name: "teacher assigned group", principal: NewTeacherPrincipal(2, []int64{10}), student: inGroup, want: true},
		{name: "teacher other group", principal: NewTeacherPrincipal(2, []int64{20}), student: inGroup, want: false},
		{name: "teacher no groups", principal: NewTeacherPrincipal(2, nil), student: inGroup, want: false},
		{name: "teacher ungrouped student", principal: NewTeacherPrincipal(2, []int64{10}), student: noGroup, want: false},
		{name: "nil student", principal: NewTeacherPrincipal(2, []int64{10}), student: nil, want: false},
		{name: "student principal", principal: NewStudentPrincipal(5, groupID(10)), student: inGroup, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccessStudent(tt.principal, tt.student))
		})
	}
}

func TestCanAccessProgram(t *testing.T) {
	program := &models.InternshipProgram{ID: 1, GroupIDs: []int64{10, 30}}
	orphan := &models.InternshipProgram{ID: 2}

	tests := []struct {
		name      string
		principal Principal
		program   *models.InternshipProgram
		want      bool
	}{
		{name: "super admin", principal: NewSuperAdminPrincipal(1), program: program, want: true},
		{name: "super admin orphan program", principal: NewSuperAdminPrincipal(1), program: orphan, want: true},
		{name: "teacher intersecting set", principal: NewTeacherPrincipal(2, []int64{30, 40}), program: program, want: true},
		{name: "teacher disjoint set", principal: NewTeacherPrincipal(2, []int64{40}), program: program, want: false},
		{name: "teacher orphan program", principal: NewTeacherPrincipal(2, []int64{10}), program: orphan, want: false},
		{name: "nil program", principal: NewTeacherPrincipal(2, []int64{10}), program: nil, want: false},
		{name: "student", principal: NewStudentPrincipal(3, groupID(10)), program: program, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccessProgram(tt.principal, tt.program))
		})
	}
}
