package models

// CatalogExercise is one canonical exercise name in the reference catalog.
type CatalogExercise struct {
	ID      uint   `json:"id" gorm:"primarykey"`
	Nombre  string `json:"nombre" gorm:"uniqueIndex;not null"`
	Musculo string `json:"musculo" gorm:"index"`
}

// TableName specifies the table name for the CatalogExercise model.
func (CatalogExercise) TableName() string {
	return "catalogo_ejercicios"
}
