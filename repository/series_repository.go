package repository

import (
	"fmt"
	"log"

	"github.com/samuelurones28/Proyecto/models"

	"gorm.io/gorm"
)

// SeriesRepository stores logged sets keyed by exact exercise name.
type SeriesRepository interface {
	CreateBatch(logs []*models.SeriesLog) error
	LatestForExercise(userID, ejercicio string) ([]*models.SeriesLog, error)
	ListForExercise(userID, ejercicio string) ([]*models.SeriesLog, error)
	DeleteByDate(userID, fecha string) error
	DeleteBatch(logs []*models.SeriesLog) error
}

type seriesRepository struct {
	db *gorm.DB
}

// NewSeriesRepository creates a new instance of SeriesRepository.
func NewSeriesRepository(db *gorm.DB) SeriesRepository {
	return &seriesRepository{db: db}
}

// CreateBatch inserts all logs in one transaction.
func (r *seriesRepository) CreateBatch(logs []*models.SeriesLog) error {
	if len(logs) == 0 {
		return nil
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&logs).Error
	})
	if err != nil {
		log.Printf("ERROR: [SeriesRepository] Failed to save %d series: %v", len(logs), err)
		return fmt.Errorf("failed to save series: %w", err)
	}
	log.Printf("INFO: [SeriesRepository] Saved %d series for userID %s.", len(logs), logs[0].UserID)
	return nil
}

// LatestForExercise returns the sets of the most recent date the exercise was logged, in set order.
func (r *seriesRepository) LatestForExercise(userID, ejercicio string) ([]*models.SeriesLog, error) {
	var last models.SeriesLog
	err := r.db.Where("user_id = ? AND ejercicio = ?", userID, ejercicio).
		Order("fecha desc").
		Limit(1).
		Find(&last).Error
	if err != nil {
		log.Printf("ERROR: [SeriesRepository] Failed to find last session of %s for userID %s: %v", ejercicio, userID, err)
		return nil, fmt.Errorf("failed to find last session of %s: %w", ejercicio, err)
	}
	if last.ID == 0 {
		return []*models.SeriesLog{}, nil
	}
	latest := last.Fecha
	var logs []*models.SeriesLog
	err = r.db.Where("user_id = ? AND ejercicio = ? AND fecha = ?", userID, ejercicio, latest).
		Order("serie_index asc").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load series of %s on %s: %w", ejercicio, latest, err)
	}
	return logs, nil
}

// ListForExercise returns every logged set of the exercise, oldest first.
func (r *seriesRepository) ListForExercise(userID, ejercicio string) ([]*models.SeriesLog, error) {
	var logs []*models.SeriesLog
	err := r.db.Where("user_id = ? AND ejercicio = ?", userID, ejercicio).
		Order("fecha asc, serie_index asc").
		Find(&logs).Error
	if err != nil {
		log.Printf("ERROR: [SeriesRepository] Failed to list series of %s for userID %s: %v", ejercicio, userID, err)
		return nil, fmt.Errorf("failed to list series of %s: %w", ejercicio, err)
	}
	return logs, nil
}

// DeleteByDate removes every set logged on a date.
func (r *seriesRepository) DeleteByDate(userID, fecha string) error {
	res := r.db.Where("user_id = ? AND fecha = ?", userID, fecha).Delete(&models.SeriesLog{})
	if res.Error != nil {
		log.Printf("ERROR: [SeriesRepository] Failed to delete series for userID %s on %s: %v", userID, fecha, res.Error)
		return fmt.Errorf("failed to delete series on %s: %w", fecha, res.Error)
	}
	log.Printf("INFO: [SeriesRepository] Deleted %d series for userID %s on %s.", res.RowsAffected, userID, fecha)
	return nil
}

// DeleteBatch removes exactly the given logs by primary key.
func (r *seriesRepository) DeleteBatch(logs []*models.SeriesLog) error {
	ids := make([]uint, 0, len(logs))
	for _, l := range logs {
		if l.ID != 0 {
			ids = append(ids, l.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.Delete(&models.SeriesLog{}, ids).Error; err != nil {
		log.Printf("ERROR: [SeriesRepository] Failed to delete %d series: %v", len(ids), err)
		return fmt.Errorf("failed to delete series: %w", err)
	}
	return nil
}
