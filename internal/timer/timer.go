// Package timer implements the pomodoro-style focus timer: a
// work/short-break/long-break cycle driven by a one-second tick. The
// recurring tick is the one leak-prone resource in the application, so
// every exit path (pause, reset, mode switch, shutdown, completion)
// stops it.
package timer

import (
	"sync"
	"time"

	appLog "chronofy/internal/log"
)

type Mode string

const (
	ModeWork       Mode = "work"
	ModeShortBreak Mode = "shortBreak"
	ModeLongBreak  Mode = "longBreak"
)

// pomodorosPerLongBreak is how many completed work sessions earn the
// long break.
const pomodorosPerLongBreak = 4

// Timer is a single focus timer. All methods are safe for concurrent
// use by HTTP handlers.
type Timer struct {
	mu        sync.Mutex
	durations map[Mode]time.Duration
	mode      Mode
	remaining time.Duration
	active    bool
	pomodoros int

	ticker *time.Ticker
	quit   chan struct{}
}

// New builds an idle timer in work mode. Non-positive durations get the
// classic 25/5/15 minute defaults.
func New(work, shortBreak, longBreak time.Duration) *Timer {
	if work <= 0 {
		work = 25 * time.Minute
	}
	if shortBreak <= 0 {
		shortBreak = 5 * time.Minute
	}
	if longBreak <= 0 {
		longBreak = 15 * time.Minute
	}
	return &Timer{
		durations: map[Mode]time.Duration{
			ModeWork:       work,
			ModeShortBreak: shortBreak,
			ModeLongBreak:  longBreak,
		},
		mode:      ModeWork,
		remaining: work,
	}
}

// Snapshot is the externally visible timer state.
type Snapshot struct {
	Mode             Mode `json:"mode"`
	RemainingSeconds int  `json:"remaining_seconds"`
	Active           bool `json:"active"`
	Pomodoros        int  `json:"pomodoros"`
	DurationSeconds  int  `json:"duration_seconds"`
}

// Snapshot returns the current state.
func (t *Timer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{
		Mode:             t.mode,
		RemainingSeconds: int(t.remaining / time.Second),
		Active:           t.active,
		Pomodoros:        t.pomodoros,
		DurationSeconds:  int(t.durations[t.mode] / time.Second),
	}
}

// Start begins (or resumes) the countdown. Starting an already running
// timer is a no-op.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active {
		return
	}
	t.active = true
	t.ticker = time.NewTicker(time.Second)
	t.quit = make(chan struct{})
	go t.loop(t.ticker, t.quit)
}

// Pause halts the countdown, keeping the remaining time.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopTickLocked()
}

// Reset halts the countdown and restores the full duration of the
// current mode.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopTickLocked()
	t.remaining = t.durations[t.mode]
}

// SwitchMode halts the countdown and moves to the given mode with its
// full duration. Unknown modes are ignored.
func (t *Timer) SwitchMode(m Mode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	d, ok := t.durations[m]
	if !ok {
		return
	}
	t.stopTickLocked()
	t.mode = m
	t.remaining = d
}

// Stop shuts the timer down entirely.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopTickLocked()
}

func (t *Timer) loop(ticker *time.Ticker, quit chan struct{}) {
	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			t.tick(time.Second)
		}
	}
}

// tick advances the countdown. Split out from the goroutine so tests
// can drive the timer without waiting on a real clock.
func (t *Timer) tick(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active {
		return
	}
	t.remaining -= d
	if t.remaining > 0 {
		return
	}
	t.completeLocked()
}

// completeLocked handles an expired countdown: a finished work session
// counts a pomodoro and earns a break (long every 4th); a finished
// break returns to work. The timer is left idle in the next mode.
func (t *Timer) completeLocked() {
	t.stopTickLocked()

	next := ModeWork
	if t.mode == ModeWork {
		t.pomodoros++
		if t.pomodoros%pomodorosPerLongBreak == 0 {
			next = ModeLongBreak
		} else {
			next = ModeShortBreak
		}
	}
	t.mode = next
	t.remaining = t.durations[next]

	appLog.Info("focus session complete", "next_mode", string(next), "pomodoros", t.pomodoros)
}

// stopTickLocked releases the recurring tick. Safe to call when the
// timer is already idle.
func (t *Timer) stopTickLocked() {
	if t.ticker != nil {
		t.ticker.Stop()
		t.ticker = nil
	}
	if t.quit != nil {
		close(t.quit)
		t.quit = nil
	}
	t.active = false
}
