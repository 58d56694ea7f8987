package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairwaylab/studio_scheduler/internal/model"
	"github.com/fairwaylab/studio_scheduler/internal/store"
)

// BookingRepository is the Postgres implementation of store.BookingRepository.
// Unlike the file store it uses keyed upserts instead of wholesale rewrites.
type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

var _ store.BookingRepository = (*BookingRepository)(nil)

func (r *BookingRepository) List(ctx context.Context) ([]*model.Booking, error) {
	query := `
		SELECT id, member_id, class_date, weekday, hour, class_name, tier, created_at
		FROM bookings
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		var b model.Booking
		err := rows.Scan(
			&b.ID,
			&b.MemberID,
			&b.ClassDate,
			&b.Weekday,
			&b.Hour,
			&b.ClassName,
			&b.Tier,
			&b.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, nil
}

func (r *BookingRepository) Put(ctx context.Context, b *model.Booking) error {
	query := `
		INSERT INTO bookings (id, member_id, class_date, weekday, hour, class_name, tier, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			member_id = EXCLUDED.member_id,
			class_date = EXCLUDED.class_date,
			weekday = EXCLUDED.weekday,
			hour = EXCLUDED.hour,
			class_name = EXCLUDED.class_name,
			tier = EXCLUDED.tier
	`

	_, err := r.pool.Exec(
		ctx, query,
		b.ID,
		b.MemberID,
		b.ClassDate,
		b.Weekday,
		b.Hour,
		b.ClassName,
		b.Tier,
		b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("put booking: %w", err)
	}

	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	if result.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}
