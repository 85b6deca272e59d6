package models

import "time"

// CalendarState is the day-level override recorded for a date.
type CalendarState string

const (
	// CalendarCompleted is written only when a workout session finishes.
	CalendarCompleted CalendarState = "completed"
	// CalendarForcedRest marks a date as rest regardless of the plan.
	CalendarForcedRest CalendarState = "forced_rest"
)

// CalendarAction is one per-date override; (user_id, fecha) is unique.
type CalendarAction struct {
	ID        uint          `json:"id" gorm:"primarykey"`
	UserID    string        `json:"user_id" gorm:"uniqueIndex:idx_calendar_user_fecha;not null"`
	Fecha     string        `json:"fecha" gorm:"type:varchar(10);uniqueIndex:idx_calendar_user_fecha;not null"` // YYYY-MM-DD
	Estado    CalendarState `json:"estado" gorm:"type:varchar(32);not null"`
	Nota      string        `json:"nota" gorm:"type:text"`
	CreatedAt time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the CalendarAction model.
func (CalendarAction) TableName() string {
	return "calendario_acciones"
}

// DayKind is the resolved training status of a date.
type DayKind string

const (
	DayCompleted   DayKind = "completed"    // Calendar action says the user trained
	DayForcedRest  DayKind = "forced_rest"  // Calendar action forces rest
	DayBlocked     DayKind = "blocked"      // Weekday is in the unavailable set
	DayTraining    DayKind = "training"     // Plan has a non-rest entry
	DayPlannedRest DayKind = "planned_rest" // No entry, rest title or no exercises
)

// DayStatus is the outcome of resolving one date against calendar, profile and plans.
type DayStatus struct {
	Date    string    `json:"date"`
	Weekday string    `json:"weekday"`
	Kind    DayKind   `json:"kind"`
	Source  PlanKind  `json:"source,omitempty"` // Plan that supplied Entry, if any
	Entry   *DayEntry `json:"entry,omitempty"`
	Note    string    `json:"note,omitempty"`
}

// IsTraining reports whether the day counts as a training day for nutrition purposes.
func (s DayStatus) IsTraining() bool {
	return s.Kind == DayCompleted || s.Kind == DayTraining
}
