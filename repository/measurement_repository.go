package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/samuelurones28/Proyecto/models"

	"gorm.io/gorm"
)

// MeasurementRepository stores body-composition measurements.
type MeasurementRepository interface {
	Create(m *models.Measurement) error
	Latest(userID string) (*models.Measurement, error)
	List(userID string, limit int) ([]*models.Measurement, error)
}

type measurementRepository struct {
	db *gorm.DB
}

// NewMeasurementRepository creates a new instance of MeasurementRepository.
func NewMeasurementRepository(db *gorm.DB) MeasurementRepository {
	return &measurementRepository{db: db}
}

func (r *measurementRepository) Create(m *models.Measurement) error {
	if err := r.db.Create(m).Error; err != nil {
		log.Printf("ERROR: [MeasurementRepository] Failed to create measurement for userID %s: %v", m.UserID, err)
		return fmt.Errorf("failed to create measurement: %w", err)
	}
	return nil
}

// Latest returns the newest measurement, or nil when the user has none.
func (r *measurementRepository) Latest(userID string) (*models.Measurement, error) {
	var m models.Measurement
	err := r.db.Where("user_id = ?", userID).Order("fecha desc, id desc").First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("ERROR: [MeasurementRepository] Failed to fetch latest measurement for userID %s: %v", userID, err)
		return nil, fmt.Errorf("failed to fetch latest measurement: %w", err)
	}
	return &m, nil
}

// List returns measurements newest first.
func (r *measurementRepository) List(userID string, limit int) ([]*models.Measurement, error) {
	var out []*models.Measurement
	q := r.db.Where("user_id = ?", userID).Order("fecha desc, id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		log.Printf("ERROR: [MeasurementRepository] Failed to list measurements for userID %s: %v", userID, err)
		return nil, fmt.Errorf("failed to list measurements: %w", err)
	}
	return out, nil
}
