package models

import "time"

// RoutineSource says where a workout routine came from.
type RoutineSource string

const (
	RoutineFromPlan RoutineSource = "plan"
	RoutineCustom   RoutineSource = "custom"
)

// Routine is the exercise list a workout session runs through.
type Routine struct {
	Titulo     string         `json:"titulo"`
	Source     RoutineSource  `json:"source"`
	Ejercicios []ExerciseSpec `json:"ejercicios"`
}

// SetEntry is one set the user filled in during a session.
type SetEntry struct {
	Kg   float64 `json:"kg"`
	Reps float64 `json:"reps"`
}

// WorkoutSession is the single active workout of a user.
type WorkoutSession struct {
	ID        string                `json:"id"`
	UserID    string                `json:"user_id"`
	Routine   Routine               `json:"routine"`
	StartedAt time.Time             `json:"started_at"`
	Sets      map[string][]SetEntry `json:"sets"` // Keyed by exercise name
}

// Elapsed is derived from the start timestamp.
func (s *WorkoutSession) Elapsed(now time.Time) time.Duration {
	if s == nil {
		return 0
	}
	return now.Sub(s.StartedAt)
}

// SessionSummary is returned when a session finishes.
type SessionSummary struct {
	SessionID     string        `json:"session_id"`
	Fecha         string        `json:"fecha"`
	Duration      time.Duration `json:"duration"`
	SetsSaved     int           `json:"sets_saved"`
	MarkedTrained bool          `json:"marked_trained"`
}
