// Package store persists the portal booking set behind a small repository
// interface so the booking logic can target a local file or Postgres without
// change.
package store

import (
	"context"
	"errors"

	"github.com/fairwaylab/studio_scheduler/internal/model"
)

// ErrNotFound is returned by Delete when no booking matches the id.
var ErrNotFound = errors.New("booking not found")

// BookingRepository holds the confirmed booking set.
type BookingRepository interface {
	// List returns every booking, in storage order.
	List(ctx context.Context) ([]*model.Booking, error)
	// Put appends or replaces the booking with the same id.
	Put(ctx context.Context, b *model.Booking) error
	// Delete removes the booking with the given id.
	Delete(ctx context.Context, id string) error
}

// MemoryStore is a map-backed repository used by tests and as the base for
// the file store's in-process state.
type MemoryStore struct {
	order    []string
	bookings map[string]*model.Booking
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{bookings: make(map[string]*model.Booking)}
}

func (s *MemoryStore) List(ctx context.Context) ([]*model.Booking, error) {
	out := make([]*model.Booking, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.bookings[id])
	}
	return out, nil
}

func (s *MemoryStore) Put(ctx context.Context, b *model.Booking) error {
	if _, ok := s.bookings[b.ID]; !ok {
		s.order = append(s.order, b.ID)
	}
	s.bookings[b.ID] = b
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(s.bookings, id)
	for i, got := range s.order {
		if got == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
