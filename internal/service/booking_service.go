package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fairwaylab/studio_scheduler/internal/model"
	"github.com/fairwaylab/studio_scheduler/internal/quota"
	"github.com/fairwaylab/studio_scheduler/internal/schedule"
	"github.com/fairwaylab/studio_scheduler/internal/store"
)

// MemberDirectory resolves portal members.
type MemberDirectory interface {
	GetByID(ctx context.Context, id string) (*model.Member, error)
}

// BookingService owns the booking lifecycle. Double-booking, capacity and
// quota checks all live here so there is exactly one authoritative check.
type BookingService struct {
	repo    store.BookingRepository
	members MemberDirectory
	table   []schedule.Entry
	quotas  quota.Quotas
	logger  *zap.Logger
	now     func() time.Time
}

func NewBookingService(
	repo store.BookingRepository,
	members MemberDirectory,
	table []schedule.Entry,
	quotas quota.Quotas,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:    repo,
		members: members,
		table:   table,
		quotas:  quotas,
		logger:  logger,
		now:     time.Now,
	}
}

// SetNow overrides the clock; tests only.
func (s *BookingService) SetNow(now func() time.Time) {
	s.now = now
}

// Availability expands the weekly table over the visible 14-day window with
// current booking counts attached.
func (s *BookingService) Availability(ctx context.Context) ([]schedule.Occurrence, error) {
	bookings, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return schedule.Expand(s.table, bookings, s.now()), nil
}

// Book reserves one occurrence for a member. Failure reasons are the typed
// errors in this package.
func (s *BookingService) Book(ctx context.Context, memberID string, weekOffset, dayOffset, hour int) (*model.Booking, error) {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	bookings, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	now := s.now()
	occ, err := schedule.OccurrenceAt(s.table, bookings, now, weekOffset, dayOffset, hour)
	if err != nil {
		return nil, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if occ.Date.Before(today) {
		return nil, ErrPastOccurrence
	}

	for _, b := range bookings {
		if b.MemberID == memberID && b.SameSlot(occ.Date, occ.Weekday, occ.Hour) {
			return nil, ErrAlreadyBooked
		}
	}
	if occ.Full() {
		return nil, ErrClassFull
	}

	if info := quota.Calculate(s.quotas, member, bookings, now); info != nil && info.AtLimit {
		return nil, ErrQuotaExceeded
	}

	booking := &model.Booking{
		ID:        uuid.NewString(),
		MemberID:  memberID,
		ClassDate: occ.Date,
		Weekday:   occ.Weekday,
		Hour:      occ.Hour,
		ClassName: occ.ClassName,
		Tier:      occ.Tier,
		CreatedAt: now,
	}

	if err := s.repo.Put(ctx, booking); err != nil {
		return nil, fmt.Errorf("store booking: %w", err)
	}

	s.logger.Info("Class booked",
		zap.String("booking_id", booking.ID),
		zap.String("member_id", memberID),
		zap.String("class", booking.ClassName),
		zap.Time("class_date", booking.ClassDate),
		zap.Int("hour", booking.Hour),
	)

	return booking, nil
}

// Cancel removes a booking. Unknown ids return ErrBookingNotFound.
func (s *BookingService) Cancel(ctx context.Context, bookingID string) error {
	err := s.repo.Delete(ctx, bookingID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	s.logger.Info("Booking cancelled", zap.String("booking_id", bookingID))
	return nil
}

// MemberBookings returns all of a member's bookings in storage order.
func (s *BookingService) MemberBookings(ctx context.Context, memberID string) ([]*model.Booking, error) {
	bookings, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	var out []*model.Booking
	for _, b := range bookings {
		if b.MemberID == memberID {
			out = append(out, b)
		}
	}
	return out, nil
}

// UpcomingBookings returns the member's bookings dated today or later.
func (s *BookingService) UpcomingBookings(ctx context.Context, memberID string) ([]*model.Booking, error) {
	bookings, err := s.MemberBookings(ctx, memberID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var out []*model.Booking
	for _, b := range bookings {
		if !b.ClassDate.Before(today) {
			out = append(out, b)
		}
	}
	return out, nil
}

// SessionLimits reports the member's quota standing for the current period.
// Returns (nil, nil) when the member is unknown: no applicable limit.
func (s *BookingService) SessionLimits(ctx context.Context, memberID string) (*quota.LimitInfo, error) {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	if member == nil {
		return nil, nil
	}

	bookings, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return quota.Calculate(s.quotas, member, bookings, s.now()), nil
}

// GetBooking resolves one booking by id, (nil, nil) when unknown.
func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (*model.Booking, error) {
	bookings, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	for _, b := range bookings {
		if b.ID == bookingID {
			return b, nil
		}
	}
	return nil, nil
}
