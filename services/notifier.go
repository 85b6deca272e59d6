package services

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notifier schedules one-shot local notifications.
type Notifier interface {
	Schedule(body string, delay time.Duration) (string, error)
	Cancel(handle string)
}

// LocalNotifier fires notifications in-process with time.AfterFunc.
type LocalNotifier struct {
	mu      sync.Mutex
	pending map[string]*time.Timer
	onFire  func(handle, body string)
}

// NewLocalNotifier creates a notifier. onFire may be nil, in which case fired notifications are only logged.
func NewLocalNotifier(onFire func(handle, body string)) *LocalNotifier {
	return &LocalNotifier{pending: make(map[string]*time.Timer), onFire: onFire}
}

func (n *LocalNotifier) Schedule(body string, delay time.Duration) (string, error) {
	handle := uuid.NewString()
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending[handle] = time.AfterFunc(delay, func() { n.fire(handle, body) })
	return handle, nil
}

func (n *LocalNotifier) fire(handle, body string) {
	n.mu.Lock()
	_, live := n.pending[handle]
	delete(n.pending, handle)
	n.mu.Unlock()
	if !live {
		return
	}
	log.Printf("INFO: [Notifier] Notification %s fired: %s", handle, body)
	if n.onFire != nil {
		n.onFire(handle, body)
	}
}

func (n *LocalNotifier) Cancel(handle string) {
	if handle == "" {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if t, ok := n.pending[handle]; ok {
		t.Stop()
		delete(n.pending, handle)
	}
}

// Pending returns how many notifications are scheduled and not yet fired or cancelled.
func (n *LocalNotifier) Pending() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.pending)
}
