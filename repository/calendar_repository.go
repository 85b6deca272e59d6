package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/samuelurones28/Proyecto/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CalendarRepository stores per-date calendar actions keyed by (user_id, fecha).
type CalendarRepository interface {
	Upsert(action *models.CalendarAction) error
	GetByDate(userID, fecha string) (*models.CalendarAction, error)
	ListRange(userID, from, to string, state models.CalendarState) ([]*models.CalendarAction, error)
	Delete(userID, fecha string) error
}

type calendarRepository struct {
	db *gorm.DB
}

// NewCalendarRepository creates a new instance of CalendarRepository.
func NewCalendarRepository(db *gorm.DB) CalendarRepository {
	return &calendarRepository{db: db}
}

// Upsert inserts the action or replaces estado and nota of the existing row for the same date.
func (r *calendarRepository) Upsert(action *models.CalendarAction) error {
	if action == nil || action.UserID == "" || action.Fecha == "" {
		log.Printf("ERROR: [CalendarRepository] Upsert: user and date are required")
		return errors.New("calendar action requires user and date")
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "fecha"}},
		DoUpdates: clause.AssignmentColumns([]string{"estado", "nota", "updated_at"}),
	}).Create(action).Error
	if err != nil {
		log.Printf("ERROR: [CalendarRepository] Failed to upsert %s for userID %s on %s: %v", action.Estado, action.UserID, action.Fecha, err)
		return fmt.Errorf("failed to upsert calendar action for %s: %w", action.Fecha, err)
	}
	log.Printf("INFO: [CalendarRepository] Upserted %s for userID %s on %s.", action.Estado, action.UserID, action.Fecha)
	return nil
}

// GetByDate returns the action for a date, or nil when there is none.
func (r *calendarRepository) GetByDate(userID, fecha string) (*models.CalendarAction, error) {
	var action models.CalendarAction
	err := r.db.Where("user_id = ? AND fecha = ?", userID, fecha).First(&action).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("ERROR: [CalendarRepository] Failed to fetch action for userID %s on %s: %v", userID, fecha, err)
		return nil, fmt.Errorf("failed to fetch calendar action for %s: %w", fecha, err)
	}
	return &action, nil
}

// ListRange returns actions with from <= fecha <= to, newest first. Empty bounds and state are not filtered.
func (r *calendarRepository) ListRange(userID, from, to string, state models.CalendarState) ([]*models.CalendarAction, error) {
	q := r.db.Where("user_id = ?", userID)
	if from != "" {
		q = q.Where("fecha >= ?", from)
	}
	if to != "" {
		q = q.Where("fecha <= ?", to)
	}
	if state != "" {
		q = q.Where("estado = ?", state)
	}
	var actions []*models.CalendarAction
	if err := q.Order("fecha desc").Find(&actions).Error; err != nil {
		log.Printf("ERROR: [CalendarRepository] Failed to list actions for userID %s: %v", userID, err)
		return nil, fmt.Errorf("failed to list calendar actions: %w", err)
	}
	return actions, nil
}

// Delete removes the action for a date. Deleting a missing row is not an error.
func (r *calendarRepository) Delete(userID, fecha string) error {
	err := r.db.Where("user_id = ? AND fecha = ?", userID, fecha).Delete(&models.CalendarAction{}).Error
	if err != nil {
		log.Printf("ERROR: [CalendarRepository] Failed to delete action for userID %s on %s: %v", userID, fecha, err)
		return fmt.Errorf("failed to delete calendar action for %s: %w", fecha, err)
	}
	log.Printf("INFO: [CalendarRepository] Cleared action for userID %s on %s.", userID, fecha)
	return nil
}
