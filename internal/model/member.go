package model

import "time"

// Member is a portal identity with an active coaching plan.
type Member struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Language    string    `json:"language"` // "en" or "zh-TW"
	PlanTier    Tier      `json:"plan_tier"`
	PlanAnchor  time.Time `json:"plan_anchor"` // reference date for quota periods
	CreatedAt   time.Time `json:"created_at"`
}
