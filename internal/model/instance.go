package model

import "time"

// LiveInstance is the materialized expansion of one template entry onto one
// class date within a period. Instances are bulk-deleted and regenerated
// whenever their period is (re)activated.
type LiveInstance struct {
	ID              int64     `json:"id"`
	PeriodID        int64     `json:"period_id"`
	TemplateEntryID int64     `json:"template_entry_id"`
	ClassDate       time.Time `json:"class_date"`
	StartHour       int       `json:"start_hour"`
	StartMinute     int       `json:"start_minute"`
	DurationMinutes int       `json:"duration_minutes"`
	ClassName       string    `json:"class_name"`
	Tier            Tier      `json:"tier"`
	MaxParticipants int       `json:"max_participants"`
	IsCancelled     bool      `json:"is_cancelled"`
	CreatedAt       time.Time `json:"created_at"`
}
