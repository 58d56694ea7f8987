package model

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleTemplate groups the recurring weekly entries an administrator
// authors for one schedule revision.
type ScheduleTemplate struct {
	ID        int64     `json:"id"`
	GroupID   uuid.UUID `json:"group_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TemplateEntry is one recurring weekly slot inside a template.
type TemplateEntry struct {
	ID              int64     `json:"id"`
	TemplateID      int64     `json:"template_id"`
	Weekday         int       `json:"weekday"`    // 0 = Sunday .. 6 = Saturday
	StartHour       int       `json:"start_hour"` // 0-23
	StartMinute     int       `json:"start_minute"`
	DurationMinutes int       `json:"duration_minutes"`
	ClassName       string    `json:"class_name"`
	Tier            Tier      `json:"tier"`
	MaxParticipants int       `json:"max_participants"`
	CreatedAt       time.Time `json:"created_at"`
}
