package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairwaylab/studio_scheduler/internal/model"
	"github.com/fairwaylab/studio_scheduler/internal/repository/base"
)

type InstanceRepository struct {
	pool *pgxpool.Pool
}

func NewInstanceRepository(pool *pgxpool.Pool) *InstanceRepository {
	return &InstanceRepository{pool: pool}
}

// DeleteByPeriod removes every instance of one period. Runs on the supplied
// querier so regeneration can hold delete and insert in one transaction.
func (r *InstanceRepository) DeleteByPeriod(ctx context.Context, db base.DB, periodID int64) (int64, error) {
	result, err := db.Exec(ctx, `DELETE FROM live_schedule_instances WHERE period_id = $1`, periodID)
	if err != nil {
		return 0, fmt.Errorf("delete instances for period: %w", err)
	}
	return result.RowsAffected(), nil
}

// InsertBatch inserts the generated instances on the supplied querier.
func (r *InstanceRepository) InsertBatch(ctx context.Context, db base.DB, instances []*model.LiveInstance) error {
	query := `
		INSERT INTO live_schedule_instances
			(period_id, template_entry_id, class_date, start_hour, start_minute,
			 duration_minutes, class_name, tier, max_participants, is_cancelled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	for _, inst := range instances {
		err := db.QueryRow(
			ctx, query,
			inst.PeriodID,
			inst.TemplateEntryID,
			inst.ClassDate,
			inst.StartHour,
			inst.StartMinute,
			inst.DurationMinutes,
			inst.ClassName,
			inst.Tier,
			inst.MaxParticipants,
			inst.IsCancelled,
		).Scan(&inst.ID, &inst.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert instance: %w", err)
		}
	}

	return nil
}

// GetByPeriod returns a period's instances in calendar order.
func (r *InstanceRepository) GetByPeriod(ctx context.Context, periodID int64) ([]*model.LiveInstance, error) {
	query := `
		SELECT id, period_id, template_entry_id, class_date, start_hour, start_minute,
		       duration_minutes, class_name, tier, max_participants, is_cancelled, created_at
		FROM live_schedule_instances
		WHERE period_id = $1
		ORDER BY class_date, start_hour, start_minute
	`

	rows, err := r.pool.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("get instances for period: %w", err)
	}
	defer rows.Close()

	var instances []*model.LiveInstance
	for rows.Next() {
		var inst model.LiveInstance
		err := rows.Scan(
			&inst.ID,
			&inst.PeriodID,
			&inst.TemplateEntryID,
			&inst.ClassDate,
			&inst.StartHour,
			&inst.StartMinute,
			&inst.DurationMinutes,
			&inst.ClassName,
			&inst.Tier,
			&inst.MaxParticipants,
			&inst.IsCancelled,
			&inst.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan instance: %w", err)
		}
		instances = append(instances, &inst)
	}

	return instances, nil
}

// SetCancelled flips the cancellation flag on one instance.
func (r *InstanceRepository) SetCancelled(ctx context.Context, id int64, cancelled bool) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE live_schedule_instances SET is_cancelled = $1 WHERE id = $2`, cancelled, id)
	if err != nil {
		return fmt.Errorf("set instance cancelled: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("instance %d: %w", id, base.ErrNotFound)
	}

	return nil
}

// DeleteOrphans removes instances whose period is inactive or gone.
func (r *InstanceRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM live_schedule_instances i
		WHERE NOT EXISTS (
			SELECT 1 FROM schedule_periods p
			WHERE p.id = i.period_id AND p.is_active
		)
	`

	result, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("delete orphaned instances: %w", err)
	}

	return result.RowsAffected(), nil
}
