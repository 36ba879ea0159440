package seed

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/oguzk/interntrack/internal/app/models"
	appRepos "github.com/oguzk/interntrack/internal/app/repositories"
	"github.com/oguzk/interntrack/internal/pkg/apperrors"
	pkgAuth "github.com/oguzk/interntrack/internal/pkg/auth"
)

const (
	defaultAdminEmail = "admin@interntrack.app"
	sampleGroupName   = "Internship Group A"
	sampleProgramName = "Summer Internship"
)

// CreateDefaultData ensures a super admin account exists so a fresh
// deployment can be administered, plus a sample group and program for
// first exploration. All steps are idempotent.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	var finalErr error

	if err := seedSuperAdmin(ctx, appRepos.NewUserRepository(dbPool), lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := seedSampleProgram(ctx, dbPool, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func seedSuperAdmin(ctx context.Context, userRepo *appRepos.UserRepository, lgr zerolog.Logger) error {
	_, err := userRepo.GetByEmail(ctx, defaultAdminEmail)
	if err == nil {
		lgr.Debug().Msg("Super admin account already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		lgr.Error().Err(err).Msg("Error checking for super admin account")
		return err
	}

	// Delivery of the initial password is the operator's concern
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123!"
		lgr.Warn().Msg("SEED_ADMIN_PASSWORD not set, seeding super admin with the default password")
	}

	hashed, err := pkgAuth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing super admin password")
		return err
	}

	admin := &appModels.User{
		Name:     "System Administrator",
		Email:    defaultAdminEmail,
		Password: hashed,
		Role:     appModels.RoleSuperAdmin,
		IsActive: true,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating super admin account")
		return err
	}

	lgr.Info().Int64("adminID", admin.ID).Str("email", defaultAdminEmail).Msg("Default super admin created")
	return nil
}

func seedSampleProgram(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	groupRepo := appRepos.NewGroupRepository(dbPool)
	programRepo := appRepos.NewProgramRepository(dbPool)

	group := &appModels.Group{
		Name:        sampleGroupName,
		Description: "Sample group created on first startup",
		IsActive:    true,
	}
	if err := groupRepo.Create(ctx, group); err != nil {
		if errors.Is(err, apperrors.ErrGroupNameExists) {
			lgr.Debug().Msg("Sample group already exists, skipping seed")
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating sample group")
		return err
	}

	start := time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour)
	program := &appModels.InternshipProgram{
		Name:         sampleProgramName,
		Description:  "Sample internship program created on first startup",
		StartDate:    start,
		EndDate:      start.AddDate(0, 2, 0),
		DisabledDays: []string{},
		IsActive:     true,
	}
	if err := programRepo.Create(ctx, program); err != nil {
		lgr.Error().Err(err).Msg("Error creating sample program")
		return err
	}
	if err := programRepo.AssignGroup(ctx, program.ID, group.ID); err != nil {
		lgr.Error().Err(err).Msg("Error assigning sample group to sample program")
		return err
	}

	lgr.Info().Int64("groupID", group.ID).Int64("programID", program.ID).Msg("Sample group and program created")
	return nil
}
