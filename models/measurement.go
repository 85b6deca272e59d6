package models

import "time"

// Default body composition used when a user has no measurement yet.
const (
	DefaultWeightKg   = 78.0
	DefaultBodyFatPct = 20.0
)

// Measurement is one body-composition entry.
type Measurement struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	UserID      string    `json:"user_id" gorm:"index;not null"`
	Fecha       time.Time `json:"fecha" gorm:"index"`
	Peso        float64   `json:"peso"`
	GrasaPorc   *float64  `json:"grasa_porc,omitempty"`
	GrasaKg     *float64  `json:"grasa_kg,omitempty"`
	MusculoKg   *float64  `json:"musculo_kg,omitempty"`
	MusculoPorc *float64  `json:"musculo_porc,omitempty"`
}

// TableName specifies the table name for the Measurement model.
func (Measurement) TableName() string {
	return "mediciones"
}

// BodyComposition is the weight and body fat the calculator works from.
type BodyComposition struct {
	WeightKg   float64 `json:"weight_kg"`
	BodyFatPct float64 `json:"body_fat_pct"`
}

// Composition returns the measurement's weight and body fat, falling back to defaults.
func (m *Measurement) Composition() BodyComposition {
	bc := BodyComposition{WeightKg: DefaultWeightKg, BodyFatPct: DefaultBodyFatPct}
	if m == nil {
		return bc
	}
	if m.Peso > 0 {
		bc.WeightKg = m.Peso
	}
	if m.GrasaPorc != nil && *m.GrasaPorc > 0 {
		bc.BodyFatPct = *m.GrasaPorc
	}
	return bc
}
