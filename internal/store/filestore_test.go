package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/fairwaylab/studio_scheduler/internal/model"
)

func testBooking(id, memberID string) *model.Booking {
	return &model.Booking{
		ID:        id,
		MemberID:  memberID,
		ClassDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Weekday:   1,
		Hour:      12,
		ClassName: "STRENGTH",
		Tier:      model.TierPro,
		CreatedAt: time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC),
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bookings.json")

	s, err := NewFileStore(path, zap.NewNop())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := s.Put(ctx, testBooking("b1", "m1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, testBooking("b2", "m2")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// A fresh store over the same file must see the persisted set.
	reopened, err := NewFileStore(path, zap.NewNop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := reopened.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("reopened store holds %d bookings, want 2", len(got))
	}
	if got[0].ID != "b1" || got[1].ID != "b2" {
		t.Fatalf("storage order lost: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bookings.json")

	s, err := NewFileStore(path, zap.NewNop())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := s.Put(ctx, testBooking("b1", "m1")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := s.Delete(ctx, "b1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "b1"); err != ErrNotFound {
		t.Fatalf("second delete = %v, want ErrNotFound", err)
	}

	reopened, err := NewFileStore(path, zap.NewNop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, _ := reopened.List(ctx)
	if len(got) != 0 {
		t.Fatalf("deleted booking survived the rewrite: %d left", len(got))
	}
}

func TestFileStoreCorruptFileFailsClosed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := NewFileStore(path, zap.NewNop())
	if err != nil {
		t.Fatalf("corrupt file must not be fatal, got %v", err)
	}
	got, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("corrupt file yielded %d bookings, want empty set", len(got))
	}
}

func TestFileStoreMissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "bookings.json")

	s, err := NewFileStore(path, zap.NewNop())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := s.Put(context.Background(), testBooking("b1", "m1")); err != nil {
		t.Fatalf("Put must create parent directories: %v", err)
	}
}
