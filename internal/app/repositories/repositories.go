package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	GroupRepository        *GroupRepository
	ProgramRepository      *ProgramRepository
	DiaryRepository        *DiaryRepository
	NotificationRepository *NotificationRepository
	AttendanceRepository   *AttendanceRepository
	TokenRepository        *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		GroupRepository:        NewGroupRepository(db),
		ProgramRepository:      NewProgramRepository(db),
		DiaryRepository:        NewDiaryRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		AttendanceRepository:   NewAttendanceRepository(db),
		TokenRepository:        NewTokenRepository(db),
	}
}
