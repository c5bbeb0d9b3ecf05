// Package scheduler runs the daily license expiry job.
package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/toh-yonetim/dashboard/internal/config"
	"github.com/toh-yonetim/dashboard/internal/discord"
	prommetrics "github.com/toh-yonetim/dashboard/internal/metrics"
	"github.com/toh-yonetim/dashboard/internal/models"
	"github.com/toh-yonetim/dashboard/pkg/logger"
)

const licenseExpiryJob = "license_expiry"

// LicenseExpirer moves overdue licenses to expired.
type LicenseExpirer interface {
	ExpireDue(ctx context.Context, now time.Time) ([]models.License, error)
}

// Notifier delivers action logs without blocking the caller.
type Notifier interface {
	Notify(l discord.Log)
}

// Service handles job scheduling.
type Service struct {
	config   *config.SchedulerConfig
	licenses LicenseExpirer
	notifier Notifier
	log      *logger.Logger
	cron     *cron.Cron
	now      func() time.Time
}

// NewService creates a new scheduler service.
func NewService(
	cfg *config.SchedulerConfig,
	licenses LicenseExpirer,
	notifier Notifier,
	log *logger.Logger,
) *Service {
	return &Service{
		config:   cfg,
		licenses: licenses,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Start initializes and starts the cron scheduler.
func (s *Service) Start() error {
	if !s.config.Enabled {
		s.log.Info().Msg("Scheduler is disabled in configuration")
		return nil
	}

	location, err := s.config.GetLocation()
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", s.config.Timezone, err)
	}

	s.cron = cron.New(cron.WithLocation(location))

	cronExpr, err := s.buildCronExpression()
	if err != nil {
		return fmt.Errorf("failed to build cron expression: %w", err)
	}

	_, err = s.cron.AddFunc(cronExpr, func() {
		s.RunLicenseExpiry(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to register license expiry job: %w", err)
	}

	s.cron.Start()

	entries := s.cron.Entries()
	nextRun := ""
	if len(entries) > 0 {
		nextRun = entries[0].Next.Format(time.RFC3339)
	}

	s.log.Info().
		Str("schedule", cronExpr).
		Str("timezone", s.config.Timezone).
		Str("time", s.config.Time).
		Str("next_run", nextRun).
		Msg("Scheduler started successfully")

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Service) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.log.Info().Msg("Scheduler stopped")
	}
}

// buildCronExpression generates a daily cron expression from "HH:MM".
func (s *Service) buildCronExpression() (string, error) {
	parts := strings.Split(s.config.Time, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time format %q, expected HH:MM", s.config.Time)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour %q", parts[0])
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute %q", parts[1])
	}

	// minute hour day month weekday
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}

// RunLicenseExpiry executes the license expiry job once.
func (s *Service) RunLicenseExpiry(ctx context.Context) {
	start := time.Now()

	defer func() {
		prommetrics.ObserveSchedulerJobDuration(time.Since(start).Seconds())
		prommetrics.SetSchedulerLastRun()
	}()

	s.log.Info().Msg("Running license expiry job")

	expired, err := s.licenses.ExpireDue(ctx, s.now())
	if err != nil {
		s.log.Error().
			Err(err).
			Dur("duration", time.Since(start)).
			Msg("License expiry job failed")
		prommetrics.RecordSchedulerJobRun(licenseExpiryJob, "error")
		return
	}
	prommetrics.RecordSchedulerJobRun(licenseExpiryJob, "success")

	if len(expired) == 0 {
		s.log.Debug().Msg("No licenses to expire")
		return
	}

	s.notifier.Notify(expiryLog(expired))

	s.log.Info().
		Int("expired", len(expired)).
		Dur("duration", time.Since(start)).
		Msg("License expiry job completed successfully")
}

func expiryLog(expired []models.License) discord.Log {
	lines := make([]string, len(expired))
	for i, l := range expired {
		lines[i] = fmt.Sprintf("%s - %s", l.UserName, l.LicenseType)
	}
	return discord.Log{
		Title:       "⌛ Lisans Süresi Doldu",
		Description: strings.Join(lines, "\n"),
		Color:       discord.ColorOrange,
		Fields: []discord.Field{
			{Name: "Sona Eren Lisans", Value: strconv.Itoa(len(expired)), Inline: true},
		},
	}
}
