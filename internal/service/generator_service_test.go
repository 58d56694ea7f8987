package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/fairwaylab/studio_scheduler/internal/model"
)

type fakeGeneratorStore struct {
	periods   map[int64]*model.SchedulePeriod
	entries   map[int64][]*model.TemplateEntry
	instances map[int64][]*model.LiveInstance
	replaces  int
}

func newFakeGeneratorStore() *fakeGeneratorStore {
	return &fakeGeneratorStore{
		periods:   map[int64]*model.SchedulePeriod{},
		entries:   map[int64][]*model.TemplateEntry{},
		instances: map[int64][]*model.LiveInstance{},
	}
}

func (f *fakeGeneratorStore) GetPeriod(ctx context.Context, id int64) (*model.SchedulePeriod, error) {
	return f.periods[id], nil
}

func (f *fakeGeneratorStore) GetEntries(ctx context.Context, templateID int64) ([]*model.TemplateEntry, error) {
	return f.entries[templateID], nil
}

func (f *fakeGeneratorStore) ReplaceInstances(ctx context.Context, periodID int64, instances []*model.LiveInstance) error {
	f.replaces++
	f.instances[periodID] = instances
	return nil
}

func (f *fakeGeneratorStore) DeleteOrphans(ctx context.Context) (int64, error) {
	var removed int64
	for id, insts := range f.instances {
		p := f.periods[id]
		if p == nil || !p.IsActive {
			removed += int64(len(insts))
			delete(f.instances, id)
		}
	}
	return removed, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedPeriod(f *fakeGeneratorStore) *model.SchedulePeriod {
	period := &model.SchedulePeriod{
		ID:         1,
		TemplateID: 10,
		Name:       "Spring block",
		StartDate:  day(2026, 3, 2),  // Monday
		EndDate:    day(2026, 3, 15), // Sunday, two full weeks
		IsActive:   true,
	}
	f.periods[1] = period
	f.entries[10] = []*model.TemplateEntry{
		{ID: 100, TemplateID: 10, Weekday: 1, StartHour: 12, DurationMinutes: 60,
			ClassName: "STRENGTH", Tier: model.TierPro, MaxParticipants: 4},
		{ID: 101, TemplateID: 10, Weekday: 4, StartHour: 9, StartMinute: 30, DurationMinutes: 90,
			ClassName: "SWING MECHANICS", Tier: model.TierAmateur, MaxParticipants: 6},
	}
	return period
}

func TestBuildInstances(t *testing.T) {
	f := newFakeGeneratorStore()
	period := seedPeriod(f)

	instances := BuildInstances(period, f.entries[10])

	// Two weeks, one Monday entry and one Thursday entry each.
	if len(instances) != 4 {
		t.Fatalf("built %d instances, want 4", len(instances))
	}

	wantDates := map[string]bool{
		"2026-03-02/100": true, "2026-03-09/100": true,
		"2026-03-05/101": true, "2026-03-12/101": true,
	}
	for _, inst := range instances {
		key := fmt.Sprintf("%s/%d", inst.ClassDate.Format("2006-01-02"), inst.TemplateEntryID)
		if !wantDates[key] {
			t.Errorf("unexpected instance %s", key)
		}
		delete(wantDates, key)
		if inst.IsCancelled {
			t.Errorf("instance %s born cancelled", key)
		}
	}
	if len(wantDates) != 0 {
		t.Errorf("missing instances: %v", wantDates)
	}
}

func TestBuildInstancesInclusiveBounds(t *testing.T) {
	// Single-day period whose only day matches the entry's weekday.
	period := &model.SchedulePeriod{
		ID: 2, TemplateID: 10,
		StartDate: day(2026, 3, 2),
		EndDate:   day(2026, 3, 2),
	}
	entries := []*model.TemplateEntry{
		{ID: 100, Weekday: 1, StartHour: 12, DurationMinutes: 60, ClassName: "STRENGTH"},
	}

	instances := BuildInstances(period, entries)
	if len(instances) != 1 {
		t.Fatalf("single-day period built %d instances, want 1", len(instances))
	}
}

func TestGenerateForPeriod(t *testing.T) {
	ctx := context.Background()
	f := newFakeGeneratorStore()
	seedPeriod(f)
	s := NewGeneratorService(f, zap.NewNop())

	count, err := s.GenerateForPeriod(ctx, 1)
	if err != nil {
		t.Fatalf("GenerateForPeriod: %v", err)
	}
	if count != 4 {
		t.Fatalf("generated %d instances, want 4", count)
	}

	// Re-running with no template change must converge to the same set.
	count2, err := s.GenerateForPeriod(ctx, 1)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if count2 != count || len(f.instances[1]) != count {
		t.Fatalf("second run left %d instances, want %d", len(f.instances[1]), count)
	}
	if f.replaces != 2 {
		t.Fatalf("replace invoked %d times, want 2", f.replaces)
	}
}

func TestGenerateForPeriodValidation(t *testing.T) {
	ctx := context.Background()
	f := newFakeGeneratorStore()
	s := NewGeneratorService(f, zap.NewNop())

	if _, err := s.GenerateForPeriod(ctx, 99); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("missing period: got %v, want descriptive not-found error", err)
	}

	f.periods[2] = &model.SchedulePeriod{ID: 2, TemplateID: 20,
		StartDate: day(2026, 3, 2), EndDate: day(2026, 3, 8)}
	if _, err := s.GenerateForPeriod(ctx, 2); err == nil || !strings.Contains(err.Error(), "no template entries") {
		t.Fatalf("empty template: got %v, want descriptive error", err)
	}
	if f.replaces != 0 {
		t.Fatalf("replace ran despite validation failure")
	}
}

func TestCleanupOrphans(t *testing.T) {
	ctx := context.Background()
	f := newFakeGeneratorStore()
	seedPeriod(f)
	s := NewGeneratorService(f, zap.NewNop())

	if _, err := s.GenerateForPeriod(ctx, 1); err != nil {
		t.Fatal(err)
	}

	// Deactivate the period; its instances are now orphans.
	f.periods[1].IsActive = false

	removed, err := s.CleanupOrphans(ctx)
	if err != nil {
		t.Fatalf("CleanupOrphans: %v", err)
	}
	if removed != 4 {
		t.Fatalf("removed %d instances, want 4", removed)
	}
	if len(f.instances[1]) != 0 {
		t.Fatalf("orphans survived cleanup")
	}
}
