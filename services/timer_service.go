package services

import (
	"log"
	"sync"
	"time"

	"github.com/samuelurones28/Proyecto/config"
	"github.com/samuelurones28/Proyecto/models"
)

// TimerService keeps one rest timer per user.
type TimerService interface {
	Start(userID string, seconds int) (models.TimerSnapshot, error)
	Adjust(userID string, deltaSeconds int) (models.TimerSnapshot, error)
	Resume(userID string) models.TimerSnapshot
	Background(userID string)
	Stop(userID string) models.TimerSnapshot
	Snapshot(userID string) models.TimerSnapshot
}

type timerService struct {
	mu       sync.Mutex
	timers   map[string]*RestTimer
	clock    Clock
	notifier Notifier
	cfg      config.TimerConfig
}

// NewTimerService creates a new instance of TimerService.
func NewTimerService(clock Clock, notifier Notifier, cfg config.TimerConfig) TimerService {
	if cfg.DefaultRestSeconds <= 0 {
		cfg.DefaultRestSeconds = 60
	}
	return &timerService{
		timers:   make(map[string]*RestTimer),
		clock:    clock,
		notifier: notifier,
		cfg:      cfg,
	}
}

func (s *timerService) timerFor(userID string) *RestTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.timers[userID]
	if !ok {
		t = NewRestTimer(s.clock, s.notifier, s.cfg.TickInterval)
		t.OnExpire = func(foreground bool) {
			log.Printf("INFO: [TimerService] Rest timer for userID %s expired (foreground=%t).", userID, foreground)
		}
		s.timers[userID] = t
	}
	return t
}

// Start begins a rest countdown. Non-positive seconds fall back to the configured default.
func (s *timerService) Start(userID string, seconds int) (models.TimerSnapshot, error) {
	if seconds <= 0 {
		seconds = s.cfg.DefaultRestSeconds
	}
	return s.timerFor(userID).Start(time.Duration(seconds) * time.Second)
}

func (s *timerService) Adjust(userID string, deltaSeconds int) (models.TimerSnapshot, error) {
	return s.timerFor(userID).Adjust(time.Duration(deltaSeconds) * time.Second)
}

func (s *timerService) Resume(userID string) models.TimerSnapshot {
	return s.timerFor(userID).Resume()
}

func (s *timerService) Background(userID string) {
	s.timerFor(userID).Background()
}

func (s *timerService) Stop(userID string) models.TimerSnapshot {
	return s.timerFor(userID).Stop()
}

func (s *timerService) Snapshot(userID string) models.TimerSnapshot {
	return s.timerFor(userID).Snapshot()
}
