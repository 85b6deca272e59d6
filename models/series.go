package models

import "time"

// SeriesLog is one logged set, keyed by (user, exercise name, date).
type SeriesLog struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	UserID     string    `json:"user_id" gorm:"index:idx_series_user_ejercicio;not null"`
	Fecha      string    `json:"fecha" gorm:"type:varchar(10);index"` // YYYY-MM-DD
	Ejercicio  string    `json:"ejercicio" gorm:"index:idx_series_user_ejercicio;not null"`
	SerieIndex int       `json:"serie_index"`
	Kg         float64   `json:"kg"`
	Reps       float64   `json:"reps"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the SeriesLog model.
func (SeriesLog) TableName() string {
	return "historial_series"
}

// ExerciseStats summarizes the historical series of one exercise.
type ExerciseStats struct {
	Ejercicio string         `json:"ejercicio"`
	PRKg      float64        `json:"pr_kg"`
	Max1RM    int            `json:"max_1rm"`
	Daily     []DailyBest1RM `json:"daily"` // Oldest first, at most the last 10 dates
}

// DailyBest1RM is the best estimated one-rep max logged on a date.
type DailyBest1RM struct {
	Fecha string `json:"fecha"`
	RM    int    `json:"rm"`
}
