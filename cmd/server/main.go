// Command server runs the management dashboard API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/toh-yonetim/dashboard/internal/api"
	"github.com/toh-yonetim/dashboard/internal/api/dashboard"
	"github.com/toh-yonetim/dashboard/internal/cache"
	"github.com/toh-yonetim/dashboard/internal/config"
	"github.com/toh-yonetim/dashboard/internal/discord"
	"github.com/toh-yonetim/dashboard/internal/eligibility"
	"github.com/toh-yonetim/dashboard/internal/habbo"
	"github.com/toh-yonetim/dashboard/internal/repository"
	"github.com/toh-yonetim/dashboard/internal/service/auth"
	"github.com/toh-yonetim/dashboard/internal/service/license"
	"github.com/toh-yonetim/dashboard/internal/service/promotion"
	"github.com/toh-yonetim/dashboard/internal/service/salary"
	"github.com/toh-yonetim/dashboard/internal/service/scheduler"
	"github.com/toh-yonetim/dashboard/internal/service/training"
	"github.com/toh-yonetim/dashboard/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	appLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)

	if err := run(cfg, appLog); err != nil {
		appLog.Fatal().Err(err).Msg("Server stopped with error")
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx := context.Background()

	tables, err := eligibility.LoadFile(cfg.Eligibility.TablesPath)
	if err != nil {
		return fmt.Errorf("failed to load eligibility tables: %w", err)
	}

	if err := repository.Migrate(cfg.Database.Postgres.URL(), log); err != nil {
		return err
	}
	db, err := repository.NewDB(&cfg.Database.Postgres, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		}
	}()

	redisCache, err := cache.NewRedis(ctx, &cfg.Database.Redis)
	if err != nil {
		return err
	}
	defer func() {
		if err := redisCache.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}()
	log.Info().Str("addr", cfg.Database.Redis.Addr()).Msg("Connected to Redis")

	// Dates shown to members follow the scheduler timezone.
	location, err := cfg.Scheduler.GetLocation()
	if err != nil {
		location = time.UTC
	}

	notifier := discord.NewClient(&cfg.Discord, log)
	defer notifier.Close()

	profiles := habbo.NewClient(&cfg.Habbo, redisCache, log)

	licenseService := license.NewService(repository.NewLicenseRepository(db), notifier, location, log)
	trainingService := training.NewService(repository.NewTrainingRepository(db), notifier, location, log)
	authService := auth.NewService(repository.NewAccountRepository(db), redisCache, profiles, notifier, &cfg.Auth, log)

	handler := dashboard.NewHandler(dashboard.Services{
		Tables:    tables,
		Promotion: promotion.NewService(tables, notifier, log),
		Salary:    salary.NewService(tables, notifier, log),
		Auth:      authService,
		Licenses:  licenseService,
		Trainings: trainingService,
		Profiles:  profiles,
		Health: map[string]dashboard.HealthCheck{
			"database": func(context.Context) error { return db.Health() },
			"redis":    redisCache.Health,
		},
	}, log)

	sched := scheduler.NewService(&cfg.Scheduler, licenseService, notifier, log)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()
	// Catch up on licenses that expired while the server was down.
	sched.RunLicenseExpiry(ctx)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(log))
	handler.RegisterRoutes(router)
	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("environment", cfg.Server.Environment).Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	log.Info().Msg("Server stopped")
	return nil
}
