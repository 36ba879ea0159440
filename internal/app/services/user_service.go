package services

import (
	"context"

	"github.com/oguzk/interntrack/internal/app/auth"
	"github.com/oguzk/interntrack/internal/app/models"
	"github.com/oguzk/interntrack/internal/app/models/dto"
	"github.com/oguzk/interntrack/internal/app/repositories"
	"github.com/oguzk/interntrack/internal/pkg/apperrors"
	pkgauth "github.com/oguzk/interntrack/internal/pkg/auth"
	"github.com/oguzk/interntrack/internal/pkg/helpers"
)

// UserService handles user management and principal resolution
type UserService struct {
	userRepo  *repositories.UserRepository
	groupRepo *repositories.GroupRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo *repositories.UserRepository, groupRepo *repositories.GroupRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		groupRepo: groupRepo,
	}
}

// ResolvePrincipal builds the access principal for an authenticated user.
// Teachers carry their assigned group ids, students their own group.
func (s *UserService) ResolvePrincipal(ctx context.Context, userID int64, role models.Role) (auth.Principal, error) {
	switch role {
	case models.RoleSuperAdmin:
		return auth.NewSuperAdminPrincipal(userID), nil
	case models.RoleTeacher:
		groupIDs, err := s.groupRepo.GetTeacherGroupIDs(ctx, userID)
		if err != nil {
			return auth.Principal{}, err
		}
		return auth.NewTeacherPrincipal(userID, groupIDs), nil
	case models.RoleStudent:
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return auth.Principal{}, err
		}
		return auth.NewStudentPrincipal(userID, user.GroupID), nil
	}
	return auth.Principal{}, apperrors.ErrPermissionDenied
}

// CreateUser creates a new user account
func (s *UserService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	role := models.Role(req.Role)
	if !models.ValidRole(role) {
		return nil, apperrors.NewValidationError("invalid role: " + req.Role)
	}

	if req.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *req.GroupID); err != nil {
			return nil, err
		}
	}

	hash, err := pkgauth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     role,
		IsActive: true,
		GroupID:  req.GroupID,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user subject to the caller's access rights: admins see
// everyone, users see themselves, teachers see students of assigned groups
func (s *UserService) GetUser(ctx context.Context, p auth.Principal, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if auth.CanAccessOwn(p, userID) {
		return user, nil
	}
	if user.Role == models.RoleStudent && auth.CanAccessStudent(p, user) {
		return user, nil
	}
	return nil, apperrors.ErrPermissionDenied
}

// ListUsers retrieves users with optional role and group filters
func (s *UserService) ListUsers(ctx context.Context, filter dto.UserFilter, page, size int) ([]*models.User, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	users, total, err := s.userRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return users, helpers.NewPaginationInfo(total, page, size), nil
}

// GetGroupStudents retrieves the students of a group the caller may access
func (s *UserService) GetGroupStudents(ctx context.Context, p auth.Principal, groupID int64) ([]*models.User, error) {
	if !auth.CanAccessGroup(p, groupID) {
		return nil, apperrors.ErrPermissionDenied
	}
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	return s.userRepo.GetStudentsByGroup(ctx, groupID)
}

// UpdateUser applies a partial update to a user
func (s *UserService) UpdateUser(ctx context.Context, userID int64, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		role := models.Role(*req.Role)
		if !models.ValidRole(role) {
			return nil, apperrors.NewValidationError("invalid role: " + *req.Role)
		}
		user.Role = role
	}
	if req.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *req.GroupID); err != nil {
			return nil, err
		}
		user.GroupID = req.GroupID
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetUserActive enables or disables a user account
func (s *UserService) SetUserActive(ctx context.Context, userID int64, active bool) error {
	return s.userRepo.SetActive(ctx, userID, active)
}

// DeleteUser removes a user account. Super admin accounts cannot be deleted.
func (s *UserService) DeleteUser(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.Role == models.RoleSuperAdmin {
		return apperrors.ErrSuperAdminDelete
	}

	return s.userRepo.Delete(ctx, userID)
}
