package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/samuelurones28/Proyecto/models"
)

// RestNotificationBody is the text of the notification shown when rest is over.
const RestNotificationBody = "¡Descanso terminado! A por la siguiente serie 💪"

// RestTimer is a countdown anchored to an absolute end timestamp.
// Remaining time is always recomputed from the clock, never decremented, and at most
// one notification handle is live: every change to the end timestamp cancels the old handle first.
type RestTimer struct {
	mu         sync.Mutex
	clock      Clock
	notifier   Notifier
	tick       time.Duration
	phase      models.TimerPhase
	end        time.Time
	handle     string
	stopTick   chan struct{}
	foreground bool

	// OnExpire runs after the timer expires; foreground says whether a haptic cue applies.
	OnExpire func(foreground bool)
	// OnTick receives the recomputed remaining time from the refresh loop.
	OnTick func(remaining time.Duration)
}

// NewRestTimer creates an idle timer. A non-positive tick disables the refresh loop.
func NewRestTimer(clock Clock, notifier Notifier, tick time.Duration) *RestTimer {
	if clock == nil {
		clock = SystemClock()
	}
	return &RestTimer{clock: clock, notifier: notifier, tick: tick, phase: models.TimerIdle, foreground: true}
}

// Start begins a countdown of d, replacing any countdown already running.
func (t *RestTimer) Start(d time.Duration) (models.TimerSnapshot, error) {
	if d <= 0 {
		return models.TimerSnapshot{}, fmt.Errorf("%w: rest duration must be positive", models.ErrValidation)
	}
	t.mu.Lock()
	t.cancelLocked()
	t.end = t.clock.Now().Add(d)
	if err := t.scheduleLocked(d); err != nil {
		t.resetLocked()
		t.mu.Unlock()
		return models.TimerSnapshot{}, err
	}
	t.phase = models.TimerRunning
	t.startTickLocked()
	snap := t.snapshotLocked(t.clock.Now())
	t.mu.Unlock()
	return snap, nil
}

// Adjust moves the end timestamp by delta. When nothing remains afterwards the timer expires at once.
func (t *RestTimer) Adjust(delta time.Duration) (models.TimerSnapshot, error) {
	t.mu.Lock()
	if t.phase != models.TimerRunning {
		t.mu.Unlock()
		return models.TimerSnapshot{}, models.ErrTimerNotRunning
	}
	t.cancelLocked()
	t.end = t.end.Add(delta)
	now := t.clock.Now()
	remaining := t.end.Sub(now)
	if remaining <= 0 {
		fg := t.expireLocked()
		snap := t.snapshotLocked(now)
		t.mu.Unlock()
		t.notifyExpired(fg)
		return snap, nil
	}
	if err := t.scheduleLocked(remaining); err != nil {
		t.stopTickLocked()
		t.resetLocked()
		t.mu.Unlock()
		return models.TimerSnapshot{}, err
	}
	snap := t.snapshotLocked(now)
	t.mu.Unlock()
	return snap, nil
}

// Resume marks the process as foregrounded and reconciles against the clock immediately.
func (t *RestTimer) Resume() models.TimerSnapshot {
	t.mu.Lock()
	t.foreground = true
	t.mu.Unlock()
	return t.Snapshot()
}

// Background marks the process as not in the foreground. The countdown keeps its end timestamp.
func (t *RestTimer) Background() {
	t.mu.Lock()
	t.foreground = false
	t.mu.Unlock()
}

// Stop cancels the countdown and its notification.
func (t *RestTimer) Stop() models.TimerSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
	t.stopTickLocked()
	t.resetLocked()
	return t.snapshotLocked(t.clock.Now())
}

// Snapshot recomputes the remaining time, expiring the timer if it has run out.
func (t *RestTimer) Snapshot() models.TimerSnapshot {
	t.mu.Lock()
	now := t.clock.Now()
	if t.phase == models.TimerRunning && !t.end.After(now) {
		fg := t.expireLocked()
		snap := t.snapshotLocked(now)
		t.mu.Unlock()
		t.notifyExpired(fg)
		return snap
	}
	snap := t.snapshotLocked(now)
	t.mu.Unlock()
	return snap
}

func (t *RestTimer) snapshotLocked(now time.Time) models.TimerSnapshot {
	if t.phase != models.TimerRunning {
		return models.TimerSnapshot{Phase: models.TimerIdle}
	}
	remaining := t.end.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	return models.TimerSnapshot{
		Phase:          t.phase,
		EndTimestamp:   t.end,
		RemainingMs:    remaining.Milliseconds(),
		NotificationID: t.handle,
	}
}

func (t *RestTimer) scheduleLocked(d time.Duration) error {
	if t.notifier == nil {
		return nil
	}
	handle, err := t.notifier.Schedule(RestNotificationBody, d)
	if err != nil {
		return fmt.Errorf("failed to schedule rest notification: %w", err)
	}
	t.handle = handle
	return nil
}

func (t *RestTimer) cancelLocked() {
	if t.handle != "" && t.notifier != nil {
		t.notifier.Cancel(t.handle)
	}
	t.handle = ""
}

// expireLocked moves to idle. The notification has fired or is about to, so its handle is only forgotten.
func (t *RestTimer) expireLocked() bool {
	t.stopTickLocked()
	t.handle = ""
	t.resetLocked()
	return t.foreground
}

func (t *RestTimer) resetLocked() {
	t.phase = models.TimerIdle
	t.end = time.Time{}
}

func (t *RestTimer) notifyExpired(foreground bool) {
	if foreground {
		log.Println("INFO: [RestTimer] Rest finished while in foreground, triggering haptic cue.")
	}
	if t.OnExpire != nil {
		t.OnExpire(foreground)
	}
}

func (t *RestTimer) startTickLocked() {
	t.stopTickLocked()
	if t.tick <= 0 {
		return
	}
	stop := make(chan struct{})
	t.stopTick = stop
	go t.tickLoop(stop)
}

func (t *RestTimer) stopTickLocked() {
	if t.stopTick != nil {
		close(t.stopTick)
		t.stopTick = nil
	}
}

func (t *RestTimer) tickLoop(stop chan struct{}) {
	ticker := time.NewTicker(t.tick)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.mu.Lock()
			if t.stopTick != stop {
				t.mu.Unlock()
				return
			}
			t.mu.Unlock()
			snap := t.Snapshot()
			if snap.Phase != models.TimerRunning {
				return
			}
			if t.OnTick != nil {
				t.OnTick(time.Duration(snap.RemainingMs) * time.Millisecond)
			}
		}
	}
}
