package repository

import (
	"fmt"
	"log"

	"github.com/samuelurones28/Proyecto/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogRepository reads the reference catalog of canonical exercise names.
type CatalogRepository interface {
	List() ([]*models.CatalogExercise, error)
	Names() ([]string, error)
	Seed(entries []models.CatalogExercise) error
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new instance of CatalogRepository.
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// List returns every catalog entry ordered by name.
func (r *catalogRepository) List() ([]*models.CatalogExercise, error) {
	var entries []*models.CatalogExercise
	if err := r.db.Order("nombre asc").Find(&entries).Error; err != nil {
		log.Printf("ERROR: [CatalogRepository] Failed to list catalog: %v", err)
		return nil, fmt.Errorf("failed to list exercise catalog: %w", err)
	}
	return entries, nil
}

// Names returns the canonical names in catalog order.
func (r *catalogRepository) Names() ([]string, error) {
	var names []string
	if err := r.db.Model(&models.CatalogExercise{}).Order("nombre asc").Pluck("nombre", &names).Error; err != nil {
		log.Printf("ERROR: [CatalogRepository] Failed to load catalog names: %v", err)
		return nil, fmt.Errorf("failed to load exercise catalog names: %w", err)
	}
	return names, nil
}

// Seed inserts entries whose name is not in the catalog yet.
func (r *catalogRepository) Seed(entries []models.CatalogExercise) error {
	if len(entries) == 0 {
		return nil
	}
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "nombre"}},
		DoNothing: true,
	}).Create(&entries)
	if res.Error != nil {
		log.Printf("ERROR: [CatalogRepository] Failed to seed catalog: %v", res.Error)
		return fmt.Errorf("failed to seed exercise catalog: %w", res.Error)
	}
	log.Printf("INFO: [CatalogRepository] Seeded %d new catalog entries.", res.RowsAffected)
	return nil
}
