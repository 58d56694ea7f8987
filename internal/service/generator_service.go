package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fairwaylab/studio_scheduler/internal/model"
)

// GeneratorStore is the persistence surface the instance generator needs.
// ReplaceInstances must hold the delete and insert in one transaction.
type GeneratorStore interface {
	GetPeriod(ctx context.Context, id int64) (*model.SchedulePeriod, error)
	GetEntries(ctx context.Context, templateID int64) ([]*model.TemplateEntry, error)
	ReplaceInstances(ctx context.Context, periodID int64, instances []*model.LiveInstance) error
	DeleteOrphans(ctx context.Context) (int64, error)
}

// GeneratorService materializes live class instances for schedule periods.
type GeneratorService struct {
	store  GeneratorStore
	logger *zap.Logger
}

func NewGeneratorService(store GeneratorStore, logger *zap.Logger) *GeneratorService {
	return &GeneratorService{store: store, logger: logger}
}

// GenerateForPeriod (re)materializes every instance for the period's date
// range from its template entries. The replace is a full delete-then-insert;
// re-running with an unchanged template yields the same final set.
func (s *GeneratorService) GenerateForPeriod(ctx context.Context, periodID int64) (int, error) {
	period, err := s.store.GetPeriod(ctx, periodID)
	if err != nil {
		return 0, fmt.Errorf("get period: %w", err)
	}
	if period == nil {
		return 0, fmt.Errorf("schedule period %d not found", periodID)
	}

	entries, err := s.store.GetEntries(ctx, period.TemplateID)
	if err != nil {
		return 0, fmt.Errorf("get template entries: %w", err)
	}
	if len(entries) == 0 {
		return 0, fmt.Errorf("schedule period %d has no template entries", periodID)
	}

	instances := BuildInstances(period, entries)

	if err := s.store.ReplaceInstances(ctx, periodID, instances); err != nil {
		return 0, fmt.Errorf("replace instances: %w", err)
	}

	s.logger.Info("Schedule instances generated",
		zap.Int64("period_id", periodID),
		zap.Int("instances", len(instances)),
	)

	return len(instances), nil
}

// BuildInstances expands template entries onto every date from the period's
// start to its end, both inclusive. Weekdays use the Sunday=0..Saturday=6
// mapping; instances start out not cancelled.
func BuildInstances(period *model.SchedulePeriod, entries []*model.TemplateEntry) []*model.LiveInstance {
	byWeekday := make(map[int][]*model.TemplateEntry)
	for _, e := range entries {
		byWeekday[e.Weekday] = append(byWeekday[e.Weekday], e)
	}

	var instances []*model.LiveInstance
	for date := period.StartDate; !date.After(period.EndDate); date = date.AddDate(0, 0, 1) {
		for _, e := range byWeekday[int(date.Weekday())] {
			instances = append(instances, &model.LiveInstance{
				PeriodID:        period.ID,
				TemplateEntryID: e.ID,
				ClassDate:       date,
				StartHour:       e.StartHour,
				StartMinute:     e.StartMinute,
				DurationMinutes: e.DurationMinutes,
				ClassName:       e.ClassName,
				Tier:            e.Tier,
				MaxParticipants: e.MaxParticipants,
				IsCancelled:     false,
			})
		}
	}
	return instances
}

// CleanupOrphans removes instances whose period became inactive or was
// deleted, and returns the removed row count.
func (s *GeneratorService) CleanupOrphans(ctx context.Context) (int64, error) {
	removed, err := s.store.DeleteOrphans(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete orphans: %w", err)
	}

	if removed > 0 {
		s.logger.Info("Orphaned instances removed", zap.Int64("count", removed))
	}

	return removed, nil
}
