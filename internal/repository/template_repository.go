package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairwaylab/studio_scheduler/internal/model"
	"github.com/fairwaylab/studio_scheduler/internal/repository/base"
)

type TemplateRepository struct {
	pool *pgxpool.Pool
}

func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{pool: pool}
}

// Create inserts a new template with a fresh group id.
func (r *TemplateRepository) Create(ctx context.Context, t *model.ScheduleTemplate) error {
	if t.GroupID == uuid.Nil {
		t.GroupID = uuid.New()
	}

	query := `
		INSERT INTO schedule_templates (group_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, t.GroupID, t.Name).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create template: %w", err)
	}

	return nil
}

// GetByID returns the template or (nil, nil) when it does not exist.
func (r *TemplateRepository) GetByID(ctx context.Context, id int64) (*model.ScheduleTemplate, error) {
	query := `
		SELECT id, group_id, name, created_at, updated_at
		FROM schedule_templates
		WHERE id = $1
	`

	var t model.ScheduleTemplate
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.GroupID,
		&t.Name,
		&t.CreatedAt,
		&t.UpdatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get template by id: %w", err)
	}

	return &t, nil
}

// GetAll returns every template.
func (r *TemplateRepository) GetAll(ctx context.Context) ([]*model.ScheduleTemplate, error) {
	query := `
		SELECT id, group_id, name, created_at, updated_at
		FROM schedule_templates
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get templates: %w", err)
	}
	defer rows.Close()

	var templates []*model.ScheduleTemplate
	for rows.Next() {
		var t model.ScheduleTemplate
		if err := rows.Scan(&t.ID, &t.GroupID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, &t)
	}

	return templates, nil
}

// Delete removes the template; entries cascade.
func (r *TemplateRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM schedule_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("template %d: %w", id, base.ErrNotFound)
	}

	return nil
}

// CreateEntry inserts one recurring weekly entry.
func (r *TemplateRepository) CreateEntry(ctx context.Context, e *model.TemplateEntry) error {
	query := `
		INSERT INTO schedule_template_entries
			(template_id, weekday, start_hour, start_minute, duration_minutes, class_name, tier, max_participants)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		e.TemplateID,
		e.Weekday,
		e.StartHour,
		e.StartMinute,
		e.DurationMinutes,
		e.ClassName,
		e.Tier,
		e.MaxParticipants,
	).Scan(&e.ID, &e.CreatedAt)

	if err != nil {
		return fmt.Errorf("create template entry: %w", err)
	}

	return nil
}

// GetEntries returns the template's entries ordered by weekday and start time.
func (r *TemplateRepository) GetEntries(ctx context.Context, templateID int64) ([]*model.TemplateEntry, error) {
	query := `
		SELECT id, template_id, weekday, start_hour, start_minute, duration_minutes,
		       class_name, tier, max_participants, created_at
		FROM schedule_template_entries
		WHERE template_id = $1
		ORDER BY weekday, start_hour, start_minute
	`

	rows, err := r.pool.Query(ctx, query, templateID)
	if err != nil {
		return nil, fmt.Errorf("get template entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.TemplateEntry
	for rows.Next() {
		var e model.TemplateEntry
		err := rows.Scan(
			&e.ID,
			&e.TemplateID,
			&e.Weekday,
			&e.StartHour,
			&e.StartMinute,
			&e.DurationMinutes,
			&e.ClassName,
			&e.Tier,
			&e.MaxParticipants,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan template entry: %w", err)
		}
		entries = append(entries, &e)
	}

	return entries, nil
}

// DeleteEntry removes one entry.
func (r *TemplateRepository) DeleteEntry(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM schedule_template_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("template entry %d: %w", id, base.ErrNotFound)
	}

	return nil
}
