package models

// CoachContext is everything the coach prompt is built from.
type CoachContext struct {
	Profile   *Profile          `json:"profile"`
	Plan      *Week             `json:"plan,omitempty"` // Effective week: permanent plan with any active exception overlaid
	Permanent *WeeklyPlan       `json:"permanent,omitempty"`
	Exception *WeeklyPlan       `json:"exception,omitempty"`
	History   []*CalendarAction `json:"history"` // Completed days in the lookback window
	Catalog   []string          `json:"catalog"`
	Today     DayStatus         `json:"today"`
}
