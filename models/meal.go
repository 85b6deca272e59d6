package models

import (
	"time"

	"gorm.io/datatypes"
)

// Macros is an energy/macronutrient amount, either per 100 g or absolute.
type Macros struct {
	Kcal float64 `json:"kcal"`
	P    float64 `json:"p"`
	C    float64 `json:"c"`
	F    float64 `json:"f"`
}

// Meal is one logged food entry.
type Meal struct {
	ID          uint                       `json:"id" gorm:"primarykey"`
	UserID      string                     `json:"user_id" gorm:"index;not null"`
	Nombre      string                     `json:"nombre" gorm:"index"`
	Cantidad    float64                    `json:"cantidad"` // grams eaten
	PesoPorcion float64                    `json:"peso_porcion"`
	Unidad      string                     `json:"unidad" gorm:"default:'g'"`
	DatosBase   datatypes.JSONType[Macros] `json:"datos_base"` // per 100 g
	Calorias    float64                    `json:"calorias"`
	Proteinas   float64                    `json:"proteinas"`
	Carbos      float64                    `json:"carbos"`
	Grasas      float64                    `json:"grasas"`
	CreatedAt   time.Time                  `json:"created_at" gorm:"autoCreateTime;index"`
}

// TableName specifies the table name for the Meal model.
func (Meal) TableName() string {
	return "comidas"
}

// FoodProduct is a product returned by the barcode lookup.
type FoodProduct struct {
	Barcode     string  `json:"barcode"`
	Nombre      string  `json:"nombre"`
	PesoPorcion float64 `json:"peso_porcion,omitempty"`
	Cantidad    float64 `json:"cantidad"`
	Macros100g  Macros  `json:"macros_100g"`
}

// DailyNutrition pairs the day's targets with what has been eaten.
type DailyNutrition struct {
	Date     string           `json:"date"`
	Targets  NutritionTargets `json:"targets"`
	Consumed Macros           `json:"consumed"`
	Meals    []*Meal          `json:"meals"`
}
