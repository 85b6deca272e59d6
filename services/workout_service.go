package services

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/samuelurones28/Proyecto/models"
	"github.com/samuelurones28/Proyecto/repository"
	"github.com/samuelurones28/Proyecto/utils"
)

// WorkoutService owns each user's single active workout session.
type WorkoutService interface {
	Start(userID string, routine models.Routine, confirmDiscard bool) (*models.WorkoutSession, error)
	Current(userID string) (*models.WorkoutSession, error)
	LogSets(userID, exercise string, sets []models.SetEntry) (*models.WorkoutSession, error)
	Finish(userID string, save bool) (*models.SessionSummary, error)
	Discard(userID string) error
}

type workoutService struct {
	sessions   repository.SessionRepository
	seriesRepo repository.SeriesRepository
	calendar   CalendarService
	clock      Clock
}

// NewWorkoutService creates a new instance of WorkoutService.
func NewWorkoutService(sessions repository.SessionRepository, seriesRepo repository.SeriesRepository, calendar CalendarService, clock Clock) WorkoutService {
	if clock == nil {
		clock = SystemClock()
	}
	return &workoutService{sessions: sessions, seriesRepo: seriesRepo, calendar: calendar, clock: clock}
}

// Start begins a session. An active session is only replaced when confirmDiscard is set.
func (s *workoutService) Start(userID string, routine models.Routine, confirmDiscard bool) (*models.WorkoutSession, error) {
	if existing, ok := s.sessions.Get(userID); ok {
		if !confirmDiscard {
			return existing, models.ErrSessionActive
		}
		log.Printf("INFO: [WorkoutService] Discarding session %s for userID %s to start a new one.", existing.ID, userID)
	}
	if len(routine.Ejercicios) == 0 {
		return nil, fmt.Errorf("%w: routine has no exercises", models.ErrValidation)
	}
	if routine.Source == "" {
		routine.Source = models.RoutineCustom
	}
	session := &models.WorkoutSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Routine:   routine,
		StartedAt: s.clock.Now(),
		Sets:      make(map[string][]models.SetEntry),
	}
	s.sessions.Put(session)
	log.Printf("INFO: [WorkoutService] Started session %s (%s, %d exercises) for userID %s.", session.ID, routine.Source, len(routine.Ejercicios), userID)
	return session, nil
}

func (s *workoutService) Current(userID string) (*models.WorkoutSession, error) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return nil, models.ErrNoActiveSession
	}
	return session, nil
}

// LogSets replaces the sets entered so far for one exercise of the active session.
func (s *workoutService) LogSets(userID, exercise string, sets []models.SetEntry) (*models.WorkoutSession, error) {
	name := strings.TrimSpace(exercise)
	if name == "" {
		return nil, fmt.Errorf("%w: exercise name is empty", models.ErrValidation)
	}
	for _, set := range sets {
		if isEmptySet(set) {
			continue
		}
		if err := utils.RepsRange.Check(set.Reps); err != nil {
			return nil, err
		}
		if err := utils.LiftWeightRange.Check(set.Kg); err != nil {
			return nil, err
		}
	}
	entries := append([]models.SetEntry(nil), sets...)
	session, ok := s.sessions.Update(userID, func(session *models.WorkoutSession) {
		if session.Sets == nil {
			session.Sets = make(map[string][]models.SetEntry)
		}
		session.Sets[name] = entries
	})
	if !ok {
		return nil, models.ErrNoActiveSession
	}
	return session, nil
}

func isEmptySet(set models.SetEntry) bool {
	return set.Reps <= 0
}

// Finish ends the session. With save, non-empty sets go to the series history and a
// plan routine marks today as completed. The session is kept if persisting fails.
func (s *workoutService) Finish(userID string, save bool) (*models.SessionSummary, error) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return nil, models.ErrNoActiveSession
	}
	now := s.clock.Now()
	summary := &models.SessionSummary{
		SessionID: session.ID,
		Fecha:     utils.FormatDate(now),
		Duration:  session.Elapsed(now),
	}
	if !save {
		s.sessions.Delete(userID)
		return summary, nil
	}

	logs := seriesFromSession(session, summary.Fecha)
	if len(logs) > 0 {
		if err := s.seriesRepo.CreateBatch(logs); err != nil {
			return nil, fmt.Errorf("%w: save series: %v", models.ErrPersistence, err)
		}
	}
	summary.SetsSaved = len(logs)

	if session.Routine.Source == models.RoutineFromPlan {
		if err := s.calendar.RecordCompleted(userID, now, session.Routine.Titulo); err != nil {
			// Undo the series so a retry does not log the same sets twice.
			if delErr := s.seriesRepo.DeleteBatch(logs); delErr != nil {
				log.Printf("ERROR: [WorkoutService] Failed to roll back series of session %s: %v", session.ID, delErr)
			}
			return nil, err
		}
		summary.MarkedTrained = true
	}
	s.sessions.Delete(userID)
	log.Printf("INFO: [WorkoutService] Finished session %s for userID %s: %d sets saved.", session.ID, userID, summary.SetsSaved)
	return summary, nil
}

// seriesFromSession flattens sets in routine order, then any exercises added ad hoc.
func seriesFromSession(session *models.WorkoutSession, fecha string) []*models.SeriesLog {
	var (
		logs  []*models.SeriesLog
		order []string
		done  = make(map[string]bool)
	)
	for _, ex := range session.Routine.Ejercicios {
		if !done[ex.Nombre] {
			order = append(order, ex.Nombre)
			done[ex.Nombre] = true
		}
	}
	var extra []string
	for name := range session.Sets {
		if !done[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	order = append(order, extra...)

	for _, name := range order {
		index := 0
		for _, set := range session.Sets[name] {
			if isEmptySet(set) {
				continue
			}
			index++
			logs = append(logs, &models.SeriesLog{
				UserID:     session.UserID,
				Fecha:      fecha,
				Ejercicio:  name,
				SerieIndex: index,
				Kg:         set.Kg,
				Reps:       set.Reps,
			})
		}
	}
	return logs
}

func (s *workoutService) Discard(userID string) error {
	if _, ok := s.sessions.Get(userID); !ok {
		return models.ErrNoActiveSession
	}
	s.sessions.Delete(userID)
	return nil
}
