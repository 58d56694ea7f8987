package model

import "time"

// SchedulePeriod binds a template to a concrete date range. Activating a
// period triggers regeneration of its live instances.
type SchedulePeriod struct {
	ID         int64     `json:"id"`
	TemplateID int64     `json:"template_id"`
	Name       string    `json:"name"`
	StartDate  time.Time `json:"start_date"` // inclusive
	EndDate    time.Time `json:"end_date"`   // inclusive
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
