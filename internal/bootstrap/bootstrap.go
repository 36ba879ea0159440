// Package bootstrap assembles the application: configuration, logging,
// database, repositories, services, controllers and the HTTP router.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/oguzk/interntrack/internal/app/controllers"
	appMigrations "github.com/oguzk/interntrack/internal/app/migrations"
	appRepos "github.com/oguzk/interntrack/internal/app/repositories"
	appRoutes "github.com/oguzk/interntrack/internal/app/routes"
	appServices "github.com/oguzk/interntrack/internal/app/services"
	"github.com/oguzk/interntrack/internal/config"
	"github.com/oguzk/interntrack/internal/db"
	appMiddleware "github.com/oguzk/interntrack/internal/middleware"
	pkgAuth "github.com/oguzk/interntrack/internal/pkg/auth"
	"github.com/oguzk/interntrack/internal/pkg/filestorage"
	"github.com/oguzk/interntrack/internal/pkg/helpers"
	"github.com/oguzk/interntrack/internal/pkg/logger"
	"github.com/oguzk/interntrack/internal/scheduler"
	"github.com/oguzk/interntrack/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services               *appServices.Services
	AuthController         *appControllers.AuthController
	UserController         *appControllers.UserController
	GroupController        *appControllers.GroupController
	ProgramController      *appControllers.ProgramController
	DiaryController        *appControllers.DiaryController
	NotificationController *appControllers.NotificationController
	AttendanceController   *appControllers.AttendanceController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	FileStorage            *filestorage.LocalStorage
	Scheduler              *scheduler.Scheduler
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Startup proceeds; the seed only provides the initial admin account
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// The base URL must match the static file serving endpoint
	baseURL := "http://localhost:" + cfg.Server.Port
	fileStorageBaseURL := baseURL + "/uploads"
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, deps.FileStorage)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Services.UserService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService, deps.Services.UserService, lgr)
	deps.UserController = appControllers.NewUserController(deps.Services.UserService, lgr)
	deps.GroupController = appControllers.NewGroupController(deps.Services.GroupService, deps.Services.UserService, lgr)
	deps.ProgramController = appControllers.NewProgramController(deps.Services.ProgramService, lgr)
	deps.DiaryController = appControllers.NewDiaryController(deps.Services.DiaryService, lgr)
	deps.NotificationController = appControllers.NewNotificationController(deps.Services.NotificationService, lgr)
	deps.AttendanceController = appControllers.NewAttendanceController(deps.Services.AttendanceService, lgr)

	if cfg.Scheduler.Enabled {
		deps.Scheduler, err = scheduler.New(deps.Services.NotificationService, deps.Services.AuthService, cfg.Scheduler)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to initialize scheduler")
			return nil, fmt.Errorf("failed to initialize scheduler: %w", err)
		}
	} else {
		lgr.Info().Msg("Scheduler disabled by configuration")
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.GroupController,
		deps.ProgramController,
		deps.DiaryController,
		deps.NotificationController,
		deps.AttendanceController,
		deps.AuthMiddleware,
	)

	// Liveness endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
