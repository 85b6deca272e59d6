package repository

import (
	"sync"

	"github.com/samuelurones28/Proyecto/models"
)

// SessionRepository holds each user's single active workout session in memory.
type SessionRepository interface {
	Get(userID string) (*models.WorkoutSession, bool)
	Put(session *models.WorkoutSession)
	Update(userID string, fn func(session *models.WorkoutSession)) (*models.WorkoutSession, bool)
	Delete(userID string)
}

type sessionRepository struct {
	sessions map[string]*models.WorkoutSession
	mu       sync.RWMutex
}

// NewSessionRepository creates an empty in-memory session store.
func NewSessionRepository() SessionRepository {
	return &sessionRepository{sessions: make(map[string]*models.WorkoutSession)}
}

// Get returns a copy of the user's session so callers cannot mutate the store.
func (r *sessionRepository) Get(userID string) (*models.WorkoutSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[userID]
	if !ok {
		return nil, false
	}
	return cloneSession(s), true
}

func (r *sessionRepository) Put(session *models.WorkoutSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.UserID] = cloneSession(session)
}

// Update applies fn to the stored session while holding the lock and returns a copy of the result.
func (r *sessionRepository) Update(userID string, fn func(session *models.WorkoutSession)) (*models.WorkoutSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[userID]
	if !ok {
		return nil, false
	}
	fn(s)
	return cloneSession(s), true
}

func (r *sessionRepository) Delete(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
}

func cloneSession(s *models.WorkoutSession) *models.WorkoutSession {
	c := *s
	c.Routine.Ejercicios = append([]models.ExerciseSpec(nil), s.Routine.Ejercicios...)
	c.Sets = make(map[string][]models.SetEntry, len(s.Sets))
	for name, sets := range s.Sets {
		c.Sets[name] = append([]models.SetEntry(nil), sets...)
	}
	return &c
}
