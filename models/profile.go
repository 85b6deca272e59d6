package models

import (
	"strings"
	"time"
)

// Goal is the user's primary body-composition goal.
type Goal string

const (
	GoalDefinition    Goal = "definicion"
	GoalRecomposition Goal = "recomposicion"
	GoalVolume        Goal = "volumen"
)

// ActivityLevel is the user's self-reported daily activity.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentario"
	ActivityLight      ActivityLevel = "ligero"
	ActivityModerate   ActivityLevel = "moderado"
	ActivityActive     ActivityLevel = "activo"
	ActivityVeryActive ActivityLevel = "muy_activo"
)

var activityAliases = map[string]ActivityLevel{
	"sedentary":   ActivitySedentary,
	"light":       ActivityLight,
	"moderate":    ActivityModerate,
	"active":      ActivityActive,
	"very_active": ActivityVeryActive,
}

var goalAliases = map[string]Goal{
	"definition":    GoalDefinition,
	"recomposition": GoalRecomposition,
	"bulk":          GoalVolume,
	"volume":        GoalVolume,
}

// ParseActivityLevel maps stored or English activity names to an ActivityLevel.
// Unrecognized values are returned as-is so callers can apply their own default.
func ParseActivityLevel(s string) ActivityLevel {
	key := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := activityAliases[key]; ok {
		return alias
	}
	return ActivityLevel(key)
}

// ParseGoal maps stored or English goal names to a Goal.
func ParseGoal(s string) Goal {
	key := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := goalAliases[key]; ok {
		return alias
	}
	return Goal(key)
}

// Profile holds per-user attributes. Rows are created on first access and never hard-deleted.
type Profile struct {
	ID               uint          `json:"id" gorm:"primarykey"`
	UserID           string        `json:"user_id" gorm:"uniqueIndex;not null"`
	Nombre           string        `json:"nombre"`
	Edad             int           `json:"edad"`
	Altura           int           `json:"altura"` // cm
	Sexo             string        `json:"sexo"`
	Objetivo         Goal          `json:"objetivo" gorm:"type:varchar(32);default:'recomposicion'"`
	NivelActividad   ActivityLevel `json:"nivel_actividad" gorm:"type:varchar(32);default:'moderado'"`
	DiasNoDisponible string        `json:"dias_no_disponibles" gorm:"column:dias_no_disponibles"` // comma-joined weekday names
	Lesiones         string        `json:"lesiones" gorm:"type:text"`
	MetaKcal         float64       `json:"meta_kcal"`
	MetaProteinas    float64       `json:"meta_proteinas"`
	MetaCarbos       float64       `json:"meta_carbos"`
	MetaGrasas       float64       `json:"meta_grasas"`
	CreatedAt        time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Profile model.
func (Profile) TableName() string {
	return "perfil"
}

// NewDefaultProfile returns the profile created on a user's first sign-in.
func NewDefaultProfile(userID string) *Profile {
	return &Profile{
		UserID:         userID,
		Objetivo:       GoalRecomposition,
		NivelActividad: ActivityModerate,
	}
}

// UnavailableDays returns the normalized weekday names the user cannot train.
func (p *Profile) UnavailableDays() []string {
	if p == nil || strings.TrimSpace(p.DiasNoDisponible) == "" {
		return nil
	}
	var days []string
	for _, part := range strings.Split(p.DiasNoDisponible, ",") {
		if day := NormalizeWeekday(part); day != "" {
			days = append(days, day)
		}
	}
	return days
}

// IsUnavailable reports whether weekday is in the user's unavailable-days set.
func (p *Profile) IsUnavailable(weekday string) bool {
	for _, d := range p.UnavailableDays() {
		if d == weekday {
			return true
		}
	}
	return false
}

// HasManualTargets reports whether the user overrode the computed macro targets.
func (p *Profile) HasManualTargets() bool {
	return p != nil && p.MetaKcal > 0
}
