package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/fairwaylab/studio_scheduler/internal/app"
	"github.com/fairwaylab/studio_scheduler/internal/config"
	"github.com/fairwaylab/studio_scheduler/internal/controller/httpapi"
	"github.com/fairwaylab/studio_scheduler/internal/model"
	"github.com/fairwaylab/studio_scheduler/internal/quota"
	"github.com/fairwaylab/studio_scheduler/internal/repository"
	"github.com/fairwaylab/studio_scheduler/internal/schedule"
	"github.com/fairwaylab/studio_scheduler/internal/service"
	"github.com/fairwaylab/studio_scheduler/internal/store"
)

const migrationsPath = "migrations"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, migrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	memberRepo := repository.NewMemberRepository(pool)
	periodRepo := repository.NewPeriodRepository(pool)
	templateRepo := repository.NewTemplateRepository(pool)
	instanceRepo := repository.NewInstanceRepository(pool)

	var bookingRepo store.BookingRepository
	switch cfg.BookingBackend {
	case "postgres":
		bookingRepo = repository.NewBookingRepository(pool)
	default:
		bookingRepo, err = store.NewFileStore(cfg.BookingFilePath, logger)
		if err != nil {
			logger.Fatal("Failed to open booking file store", zap.Error(err))
		}
	}

	quotas := quota.Quotas{
		model.TierPro:     cfg.QuotaPro,
		model.TierAmateur: cfg.QuotaAmateur,
	}

	bookingService := service.NewBookingService(bookingRepo, memberRepo, schedule.WeeklyTable, quotas, logger)
	generatorService := service.NewGeneratorService(
		repository.NewGeneratorStore(pool, periodRepo, templateRepo, instanceRepo),
		logger,
	)

	maintenance := app.NewMaintenance(generatorService, logger)
	maintenance.Start(ctx)
	defer maintenance.Stop()

	server := httpapi.NewServer(
		bookingService,
		generatorService,
		periodRepo,
		templateRepo,
		instanceRepo,
		cfg.AdminToken,
		logger,
	)

	go func() {
		logger.Info("Starting HTTP server",
			zap.String("addr", cfg.ListenAddr),
			zap.String("environment", cfg.Environment),
			zap.String("booking_backend", cfg.BookingBackend),
		)
		if err := server.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", zap.Error(err))
		os.Exit(1)
	}
}
