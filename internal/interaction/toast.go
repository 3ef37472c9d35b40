package interaction

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

const (
	DefaultToastDuration = 3000 * time.Millisecond
	DefaultMaxToasts     = 5
)

// TickFunc schedules a message after d. It has the signature of tea.Tick so
// tests can substitute a synchronous clock.
type TickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Toast is a short-lived notification.
type Toast struct {
	ID        string
	Message   string
	CreatedAt time.Time
}

// ToastExpiredMsg is delivered when a toast's timer fires.
type ToastExpiredMsg struct {
	ID string
}

// Toasts is the ordered set of live toasts. Each toast owns one expiry timer;
// removing the toast early invalidates it, so a late expiry is ignored.
type Toasts struct {
	items    []Toast
	timers   map[string]struct{}
	duration time.Duration
	max      int
	tick     TickFunc
	now      func() time.Time
	newID    func() string
}

// NewToasts creates an empty set. Non-positive arguments select the defaults.
func NewToasts(duration time.Duration, max int) *Toasts {
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	if max <= 0 {
		max = DefaultMaxToasts
	}
	return &Toasts{
		timers:   make(map[string]struct{}),
		duration: duration,
		max:      max,
		tick:     tea.Tick,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Show appends a toast and returns its ID with the command that expires it.
// When the cap is reached the oldest toast is dropped first.
func (t *Toasts) Show(message string) (string, tea.Cmd) {
	for len(t.items) >= t.max {
		t.Remove(t.items[0].ID)
	}

	id := t.newID()
	t.items = append(t.items, Toast{ID: id, Message: message, CreatedAt: t.now()})
	t.timers[id] = struct{}{}

	return id, t.tick(t.duration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// Remove deletes a toast and cancels its timer. It reports false when the
// toast was already gone.
func (t *Toasts) Remove(id string) bool {
	delete(t.timers, id)
	for i, item := range t.items {
		if item.ID == id {
			t.items = append(t.items[:i:i], t.items[i+1:]...)
			return true
		}
	}
	return false
}

// Expire handles a timer firing. Stale timers are ignored.
func (t *Toasts) Expire(msg ToastExpiredMsg) bool {
	if _, live := t.timers[msg.ID]; !live {
		return false
	}
	return t.Remove(msg.ID)
}

// Items returns the live toasts in display order.
func (t *Toasts) Items() []Toast {
	return append([]Toast(nil), t.items...)
}

func (t *Toasts) Len() int { return len(t.items) }

// Pending is the number of armed timers. It always equals Len.
func (t *Toasts) Pending() int { return len(t.timers) }

func (t *Toasts) Duration() time.Duration { return t.duration }
