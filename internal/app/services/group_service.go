package services

import (
	"context"

	"github.com/oguzk/interntrack/internal/app/auth"
	"github.com/oguzk/interntrack/internal/app/models"
	"github.com/oguzk/interntrack/internal/app/models/dto"
	"github.com/oguzk/interntrack/internal/app/repositories"
	"github.com/oguzk/interntrack/internal/pkg/apperrors"
)

// GroupService handles group management
type GroupService struct {
	groupRepo *repositories.GroupRepository
	userRepo  *repositories.UserRepository
}

// NewGroupService creates a new group service
func NewGroupService(groupRepo *repositories.GroupRepository, userRepo *repositories.UserRepository) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

// CreateGroup creates a new group
func (s *GroupService) CreateGroup(ctx context.Context, req *dto.CreateGroupRequest) (*models.Group, error) {
	group := &models.Group{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}

	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// GetGroup retrieves a group the caller may access
func (s *GroupService) GetGroup(ctx context.Context, p auth.Principal, groupID int64) (*models.Group, error) {
	if !auth.CanAccessGroup(p, groupID) {
		return nil, apperrors.ErrPermissionDenied
	}
	return s.groupRepo.GetByID(ctx, groupID)
}

// ListGroups retrieves all groups
func (s *GroupService) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return s.groupRepo.GetAll(ctx)
}

// GetMyGroups retrieves the groups assigned to a teacher principal.
// A teacher with no assignments gets an empty list, not an error.
func (s *GroupService) GetMyGroups(ctx context.Context, p auth.Principal) ([]*models.Group, error) {
	if len(p.AssignedGroupIDs) == 0 {
		return []*models.Group{}, nil
	}
	return s.groupRepo.GetByIDs(ctx, p.AssignedGroupIDs)
}

// UpdateGroup applies a partial update to a group
func (s *GroupService) UpdateGroup(ctx context.Context, groupID int64, req *dto.UpdateGroupRequest) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.Description != nil {
		group.Description = *req.Description
	}
	if req.IsActive != nil {
		group.IsActive = *req.IsActive
	}

	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteGroup removes a group
func (s *GroupService) DeleteGroup(ctx context.Context, groupID int64) error {
	return s.groupRepo.Delete(ctx, groupID)
}

// AssignTeacher links a teacher to a group. The target user must hold the
// teacher role.
func (s *GroupService) AssignTeacher(ctx context.Context, groupID, teacherID int64) error {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, teacherID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleTeacher {
		return apperrors.NewValidationError("user is not a teacher")
	}

	return s.groupRepo.AssignTeacher(ctx, groupID, teacherID)
}

// RemoveTeacher unlinks a teacher from a group
func (s *GroupService) RemoveTeacher(ctx context.Context, groupID, teacherID int64) error {
	return s.groupRepo.RemoveTeacher(ctx, groupID, teacherID)
}
