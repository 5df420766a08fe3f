package core

import (
	"sync"
	"time"
)

// ToastDuration is how long a toast stays visible after its latest Show.
const ToastDuration = 4 * time.Second

// ToastColor tags a toast's severity.
type ToastColor string

const (
	ToastGreen ToastColor = "green"
	ToastRed   ToastColor = "red"
	ToastBlue  ToastColor = "blue"
)

// Class returns the background utility class for the colour.
func (c ToastColor) Class() string {
	return "bg-" + string(c) + "-600"
}

// ToastView is what the toast element currently shows.
type ToastView struct {
	Visible   bool       `json:"visible"`
	Message   string     `json:"message,omitempty"`
	Color     ToastColor `json:"color,omitempty"`
	ExpiresAt time.Time  `json:"expires_at,omitempty"`
}

// Timer is the part of *time.Timer the toaster needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it once adapted.
type AfterFunc func(d time.Duration, f func()) Timer

// Toaster shows one transient message at a time. A new Show replaces the
// text and colour and restarts the hide timer; nothing is queued.
type Toaster struct {
	mu       sync.Mutex
	view     ToastView
	seq      uint64
	timer    Timer
	duration time.Duration
	now      func() time.Time
	after    AfterFunc
}

// NewToaster returns a toaster using the wall clock and ToastDuration.
func NewToaster() *Toaster {
	return NewToasterWithClock(ToastDuration, time.Now, func(d time.Duration, f func()) Timer {
		return time.AfterFunc(d, f)
	})
}

// NewToasterWithClock returns a toaster driven by the given clock and scheduler.
func NewToasterWithClock(d time.Duration, now func() time.Time, after AfterFunc) *Toaster {
	return &Toaster{duration: d, now: now, after: after}
}

// Show displays message in color and (re)starts the hide timer.
func (t *Toaster) Show(message string, color ToastColor) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.seq++
	seq := t.seq

	t.view = ToastView{
		Visible:   true,
		Message:   message,
		Color:     color,
		ExpiresAt: t.now().Add(t.duration),
	}
	t.timer = t.after(t.duration, func() { t.hide(seq) })
}

// hide clears the toast unless a newer Show happened after the timer was
// armed. A stopped timer that fired anyway is ignored the same way.
func (t *Toaster) hide(seq uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if seq != t.seq || !t.view.Visible {
		return
	}
	t.view.Visible = false
	t.timer = nil
}

// View returns the current toast state.
func (t *Toaster) View() ToastView {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view
}

// Close stops any pending timer and hides the toast.
func (t *Toaster) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.seq++
	t.view.Visible = false
}
