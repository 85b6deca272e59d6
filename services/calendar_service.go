package services

import (
	"fmt"
	"log"
	"time"

	"github.com/samuelurones28/Proyecto/models"
	"github.com/samuelurones28/Proyecto/repository"
	"github.com/samuelurones28/Proyecto/utils"
)

// CalendarService manages day-level overrides outside the coach command flow.
type CalendarService interface {
	RecordCompleted(userID string, date time.Time, note string) error
	ClearAction(userID, fecha string) (*models.CalendarAction, error)
	ListActions(userID, from, to string) ([]*models.CalendarAction, error)
}

type calendarService struct {
	calendarRepo repository.CalendarRepository
	seriesRepo   repository.SeriesRepository
}

// NewCalendarService creates a new instance of CalendarService.
func NewCalendarService(calendarRepo repository.CalendarRepository, seriesRepo repository.SeriesRepository) CalendarService {
	return &calendarService{calendarRepo: calendarRepo, seriesRepo: seriesRepo}
}

// RecordCompleted marks a date as trained. Only the workout finish flow calls it.
func (s *calendarService) RecordCompleted(userID string, date time.Time, note string) error {
	action := &models.CalendarAction{
		UserID: userID,
		Fecha:  utils.FormatDate(date),
		Estado: models.CalendarCompleted,
		Nota:   note,
	}
	if err := s.calendarRepo.Upsert(action); err != nil {
		return fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return nil
}

// ClearAction removes a date's override. Clearing a completed day also drops its logged series.
func (s *calendarService) ClearAction(userID, fecha string) (*models.CalendarAction, error) {
	day, ok := utils.SanitizeISODate(fecha)
	if !ok {
		return nil, fmt.Errorf("%w: invalid date %q", models.ErrValidation, fecha)
	}
	action, err := s.calendarRepo.GetByDate(userID, day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	if action == nil {
		return nil, fmt.Errorf("%w: no calendar action on %s", models.ErrNotFound, day)
	}
	if action.Estado == models.CalendarCompleted {
		if err := s.seriesRepo.DeleteByDate(userID, day); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
		}
	}
	if err := s.calendarRepo.Delete(userID, day); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	log.Printf("INFO: [CalendarService] Cleared %s on %s for userID %s.", action.Estado, day, userID)
	return action, nil
}

func (s *calendarService) ListActions(userID, from, to string) ([]*models.CalendarAction, error) {
	actions, err := s.calendarRepo.ListRange(userID, from, to, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return actions, nil
}
