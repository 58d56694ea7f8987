package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairwaylab/studio_scheduler/internal/model"
	"github.com/fairwaylab/studio_scheduler/internal/repository/base"
)

type MemberRepository struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

// Create inserts a new member.
func (r *MemberRepository) Create(ctx context.Context, m *model.Member) error {
	query := `
		INSERT INTO members (id, display_name, language, plan_tier, plan_anchor)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		m.ID,
		m.DisplayName,
		m.Language,
		m.PlanTier,
		m.PlanAnchor,
	).Scan(&m.CreatedAt)

	if err != nil {
		return fmt.Errorf("create member: %w", err)
	}

	return nil
}

// GetByID returns the member or (nil, nil) when unknown.
func (r *MemberRepository) GetByID(ctx context.Context, id string) (*model.Member, error) {
	query := `
		SELECT id, display_name, language, plan_tier, plan_anchor, created_at
		FROM members
		WHERE id = $1
	`

	var m model.Member
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID,
		&m.DisplayName,
		&m.Language,
		&m.PlanTier,
		&m.PlanAnchor,
		&m.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get member by id: %w", err)
	}

	return &m, nil
}

// UpdatePlan changes a member's plan tier and resets the quota anchor.
func (r *MemberRepository) UpdatePlan(ctx context.Context, id string, tier model.Tier) error {
	query := `
		UPDATE members
		SET plan_tier = $1, plan_anchor = now()
		WHERE id = $2
	`

	result, err := r.pool.Exec(ctx, query, tier, id)
	if err != nil {
		return fmt.Errorf("update member plan: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("member %s: %w", id, base.ErrNotFound)
	}

	return nil
}
