// Package services contains the business logic of the application.
// Services sit between controllers and repositories: they enforce the
// domain rules (calendar eligibility, role based access, notification
// dispatch) and translate failures into the shared error vocabulary.
package services

import (
	"github.com/oguzk/interntrack/internal/app/repositories"
	"github.com/oguzk/interntrack/internal/pkg/auth"
	"github.com/oguzk/interntrack/internal/pkg/filestorage"
)

// Services holds all the service instances
type Services struct {
	AuthService         *AuthService
	UserService         *UserService
	GroupService        *GroupService
	ProgramService      *ProgramService
	DiaryService        *DiaryService
	NotificationService *NotificationService
	AttendanceService   *AttendanceService
}

// NewServices initializes all services
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, storage filestorage.FileStorage) *Services {
	notificationService := NewNotificationService(
		repos.NotificationRepository,
		repos.UserRepository,
		repos.ProgramRepository,
		repos.DiaryRepository,
	)

	return &Services{
		AuthService:         NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService),
		UserService:         NewUserService(repos.UserRepository, repos.GroupRepository),
		GroupService:        NewGroupService(repos.GroupRepository, repos.UserRepository),
		ProgramService:      NewProgramService(repos.ProgramRepository, repos.GroupRepository, repos.UserRepository),
		DiaryService:        NewDiaryService(repos.DiaryRepository, repos.ProgramRepository, repos.UserRepository, notificationService, storage),
		NotificationService: notificationService,
		AttendanceService:   NewAttendanceService(repos.AttendanceRepository, repos.UserRepository),
	}
}
