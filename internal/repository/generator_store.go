package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairwaylab/studio_scheduler/internal/model"
)

// GeneratorStore bundles the repositories the instance generator touches and
// gives its replace a transactional boundary.
type GeneratorStore struct {
	pool      *pgxpool.Pool
	periods   *PeriodRepository
	templates *TemplateRepository
	instances *InstanceRepository
}

func NewGeneratorStore(
	pool *pgxpool.Pool,
	periods *PeriodRepository,
	templates *TemplateRepository,
	instances *InstanceRepository,
) *GeneratorStore {
	return &GeneratorStore{
		pool:      pool,
		periods:   periods,
		templates: templates,
		instances: instances,
	}
}

func (s *GeneratorStore) GetPeriod(ctx context.Context, id int64) (*model.SchedulePeriod, error) {
	return s.periods.GetByID(ctx, id)
}

func (s *GeneratorStore) GetEntries(ctx context.Context, templateID int64) ([]*model.TemplateEntry, error) {
	return s.templates.GetEntries(ctx, templateID)
}

// ReplaceInstances deletes and reinserts a period's instances inside one
// transaction, so a failed insert never leaves the period empty.
func (s *GeneratorStore) ReplaceInstances(ctx context.Context, periodID int64, instances []*model.LiveInstance) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := s.instances.DeleteByPeriod(ctx, tx, periodID); err != nil {
		return err
	}
	if err := s.instances.InsertBatch(ctx, tx, instances); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (s *GeneratorStore) DeleteOrphans(ctx context.Context) (int64, error) {
	return s.instances.DeleteOrphans(ctx)
}
