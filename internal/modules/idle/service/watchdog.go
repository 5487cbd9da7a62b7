package service

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"worktime/internal/modules/idle/domain"
	"worktime/internal/platform/clock"
)

// Watchdog flips to idle once no activity has been seen for the threshold.
// Idle is sticky: activity while idle is ignored until ResetIdle.
type Watchdog struct {
	clock     clock.Clock
	threshold time.Duration
	logger    *slog.Logger

	mu         sync.Mutex
	idle       bool
	lastActive time.Time
	timer      clock.Timer
	gen        uint64
	closed     bool
	onIdle     func(domain.State)
}

type Option func(*Watchdog)

func WithThreshold(d time.Duration) Option {
	return func(w *Watchdog) {
		if d > 0 {
			w.threshold = d
		}
	}
}

// WithOnIdle registers a callback run, outside the watchdog lock, when the
// user becomes idle.
func WithOnIdle(fn func(domain.State)) Option {
	return func(w *Watchdog) { w.onIdle = fn }
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Watchdog) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatchdog starts active with the timer armed.
func NewWatchdog(clk clock.Clock, opts ...Option) *Watchdog {
	w := &Watchdog{
		clock:     clk,
		threshold: domain.Threshold,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.mu.Lock()
	w.lastActive = clk.Now()
	w.armLocked()
	w.mu.Unlock()
	return w
}

// Activity records user input and re-arms the timer. Unknown kinds are
// ignored. It reports whether the activity was counted.
func (w *Watchdog) Activity(kind domain.ActivityKind) bool {
	if !kind.Valid() {
		w.logger.Debug("ignoring unknown activity", "kind", kind)
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || w.idle {
		return false
	}
	w.lastActive = w.clock.Now()
	w.armLocked()
	return true
}

func (w *Watchdog) ResetIdle() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.idle = false
	w.lastActive = w.clock.Now()
	w.armLocked()
}

func (w *Watchdog) State() domain.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return domain.State{Idle: w.idle, LastActive: w.lastActive}
}

func (w *Watchdog) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	w.cancelLocked()
}

func (w *Watchdog) armLocked() {
	w.cancelLocked()
	gen := w.gen
	w.timer = w.clock.AfterFunc(w.threshold, func() { w.fire(gen) })
}

func (w *Watchdog) cancelLocked() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.gen++
}

func (w *Watchdog) fire(gen uint64) {
	w.mu.Lock()
	if w.closed || gen != w.gen || w.idle {
		w.mu.Unlock()
		return
	}
	w.idle = true
	w.timer = nil
	state := domain.State{Idle: true, LastActive: w.lastActive}
	onIdle := w.onIdle
	w.mu.Unlock()

	w.logger.Info("user idle", "last_active", state.LastActive)
	if onIdle != nil {
		onIdle(state)
	}
}
