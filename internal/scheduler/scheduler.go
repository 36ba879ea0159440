// Package scheduler runs the periodic background jobs: diary reminder
// dispatch and expired notification cleanup.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/oguzk/interntrack/internal/app/services"
	"github.com/oguzk/interntrack/internal/config"
	"github.com/oguzk/interntrack/internal/pkg/helpers"
	"github.com/oguzk/interntrack/internal/pkg/logger"
)

const defaultCleanupInterval = time.Hour

// Scheduler owns the cron instance and its job wiring
type Scheduler struct {
	cron                *cron.Cron
	notificationService *services.NotificationService
	authService         *services.AuthService
	cfg                 config.SchedulerConfig
}

// New creates a scheduler with the reminder and cleanup jobs registered
func New(notificationService *services.NotificationService, authService *services.AuthService, cfg config.SchedulerConfig) (*Scheduler, error) {
	s := &Scheduler{
		cron:                cron.New(),
		notificationService: notificationService,
		authService:         authService,
		cfg:                 cfg,
	}

	if _, err := s.cron.AddFunc(cfg.ReminderSpec, s.runReminders); err != nil {
		return nil, err
	}

	cleanupSpec := "@every " + helpers.ParseDuration(cfg.CleanupInterval, defaultCleanupInterval).String()
	if _, err := s.cron.AddFunc(cleanupSpec, s.runCleanup); err != nil {
		return nil, err
	}

	return s, nil
}

// Start launches the cron loop in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info().
		Str("reminderSpec", s.cfg.ReminderSpec).
		Str("cleanupInterval", s.cfg.CleanupInterval).
		Msg("Scheduler started")
}

// Stop stops the cron loop and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Scheduler stopped")
}

func (s *Scheduler) runReminders() {
	created, err := s.notificationService.SendDiaryReminders(context.Background())
	if err != nil {
		logger.Error().Err(err).Msg("Diary reminder job failed")
		return
	}
	logger.Info().Int("created", created).Msg("Diary reminder job completed")
}

func (s *Scheduler) runCleanup() {
	deleted, err := s.notificationService.CleanupExpiredNotifications(context.Background())
	if err != nil {
		logger.Error().Err(err).Msg("Notification cleanup job failed")
	} else {
		logger.Debug().Int64("deleted", deleted).Msg("Notification cleanup job completed")
	}

	purged, err := s.authService.CleanupExpiredRefreshTokens(context.Background())
	if err != nil {
		logger.Error().Err(err).Msg("Refresh token cleanup job failed")
	} else {
		logger.Debug().Int64("deleted", purged).Msg("Refresh token cleanup job completed")
	}
}
