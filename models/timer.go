package models

import "time"

// TimerPhase is the rest timer's state machine position.
type TimerPhase string

const (
	TimerIdle    TimerPhase = "idle"
	TimerRunning TimerPhase = "running"
)

// TimerSnapshot is a point-in-time view of a rest timer.
type TimerSnapshot struct {
	Phase          TimerPhase `json:"phase"`
	EndTimestamp   time.Time  `json:"end_timestamp,omitempty"`
	RemainingMs    int64      `json:"remaining_ms"`
	NotificationID string     `json:"notification_id,omitempty"`
}
