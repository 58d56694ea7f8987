package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairwaylab/studio_scheduler/internal/model"
	"github.com/fairwaylab/studio_scheduler/internal/repository/base"
)

type PeriodRepository struct {
	pool *pgxpool.Pool
}

func NewPeriodRepository(pool *pgxpool.Pool) *PeriodRepository {
	return &PeriodRepository{pool: pool}
}

// Create inserts a new schedule period.
func (r *PeriodRepository) Create(ctx context.Context, p *model.SchedulePeriod) error {
	query := `
		INSERT INTO schedule_periods (template_id, name, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		p.TemplateID,
		p.Name,
		p.StartDate,
		p.EndDate,
		p.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create period: %w", err)
	}

	return nil
}

// GetByID returns the period or (nil, nil) when it does not exist.
func (r *PeriodRepository) GetByID(ctx context.Context, id int64) (*model.SchedulePeriod, error) {
	query := `
		SELECT id, template_id, name, start_date, end_date, is_active, created_at, updated_at
		FROM schedule_periods
		WHERE id = $1
	`

	var p model.SchedulePeriod
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.TemplateID,
		&p.Name,
		&p.StartDate,
		&p.EndDate,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get period by id: %w", err)
	}

	return &p, nil
}

// GetAll returns every period, newest first.
func (r *PeriodRepository) GetAll(ctx context.Context) ([]*model.SchedulePeriod, error) {
	query := `
		SELECT id, template_id, name, start_date, end_date, is_active, created_at, updated_at
		FROM schedule_periods
		ORDER BY start_date DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get periods: %w", err)
	}
	defer rows.Close()

	var periods []*model.SchedulePeriod
	for rows.Next() {
		var p model.SchedulePeriod
		err := rows.Scan(
			&p.ID,
			&p.TemplateID,
			&p.Name,
			&p.StartDate,
			&p.EndDate,
			&p.IsActive,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan period: %w", err)
		}
		periods = append(periods, &p)
	}

	return periods, nil
}

// SetActive flips the active flag.
func (r *PeriodRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query := `
		UPDATE schedule_periods
		SET is_active = $1, updated_at = now()
		WHERE id = $2
	`

	result, err := r.pool.Exec(ctx, query, active, id)
	if err != nil {
		return fmt.Errorf("set period active: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("period %d: %w", id, base.ErrNotFound)
	}

	return nil
}

// Delete removes the period; live instances cascade.
func (r *PeriodRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM schedule_periods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete period: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("period %d: %w", id, base.ErrNotFound)
	}

	return nil
}
