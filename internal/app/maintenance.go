package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fairwaylab/studio_scheduler/internal/service"
)

// Maintenance runs the periodic housekeeping tasks. Currently that is the
// orphaned-instance cleanup: once at startup, then every 24 hours.
type Maintenance struct {
	generator *service.GeneratorService
	logger    *zap.Logger
	interval  time.Duration
	stopChan  chan struct{}
}

func NewMaintenance(generator *service.GeneratorService, logger *zap.Logger) *Maintenance {
	return &Maintenance{
		generator: generator,
		logger:    logger,
		interval:  24 * time.Hour,
		stopChan:  make(chan struct{}),
	}
}

// Start launches the background loop.
func (m *Maintenance) Start(ctx context.Context) {
	m.logger.Info("Starting maintenance loop")
	go m.run(ctx)
}

// Stop halts the background loop.
func (m *Maintenance) Stop() {
	m.logger.Info("Stopping maintenance loop")
	close(m.stopChan)
}

func (m *Maintenance) run(ctx context.Context) {
	m.cleanup(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanup(ctx)
		case <-m.stopChan:
			m.logger.Info("Maintenance loop stopped")
			return
		case <-ctx.Done():
			m.logger.Info("Maintenance loop cancelled")
			return
		}
	}
}

func (m *Maintenance) cleanup(ctx context.Context) {
	removed, err := m.generator.CleanupOrphans(ctx)
	if err != nil {
		m.logger.Error("Orphan cleanup failed", zap.Error(err))
		return
	}

	m.logger.Info("Orphan cleanup completed", zap.Int64("removed", removed))
}
