package service_test

import (
	"testing"
	"time"

	"worktime/internal/modules/idle/domain"
	"worktime/internal/modules/idle/service"
	"worktime/internal/platform/clock/clocktest"
)

var start = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

func TestWatchdogGoesIdleAfterThreshold(t *testing.T) {
	t.Parallel()
	clk := clocktest.New(start)
	var fired []domain.State
	w := service.NewWatchdog(clk, service.WithOnIdle(func(s domain.State) { fired = append(fired, s) }))
	defer w.Close()

	clk.Advance(domain.Threshold - time.Millisecond)
	if w.State().Idle {
		t.Fatalf("must not be idle before the threshold")
	}
	clk.Advance(time.Millisecond)
	state := w.State()
	if !state.Idle || !state.LastActive.Equal(start) {
		t.Fatalf("expected idle with last active at construction, got %+v", state)
	}
	if len(fired) != 1 || !fired[0].LastActive.Equal(start) {
		t.Fatalf("expected one idle callback, got %+v", fired)
	}
}

func TestActivityPostponesIdle(t *testing.T) {
	t.Parallel()
	clk := clocktest.New(start)
	w := service.NewWatchdog(clk)
	defer w.Close()

	clk.Advance(9 * time.Minute)
	w.Activity(domain.ActivityPointerMove)
	clk.Advance(9 * time.Minute)
	if w.State().Idle {
		t.Fatalf("activity should have re-armed the timer")
	}
	if clk.Pending() != 1 {
		t.Fatalf("expected exactly one idle timer, got %d", clk.Pending())
	}
	clk.Advance(time.Minute)
	state := w.State()
	if !state.Idle || !state.LastActive.Equal(start.Add(9*time.Minute)) {
		t.Fatalf("unexpected state %+v", state)
	}
}

func TestUnknownActivityDoesNotPostponeIdle(t *testing.T) {
	t.Parallel()
	clk := clocktest.New(start)
	w := service.NewWatchdog(clk)
	defer w.Close()

	clk.Advance(9 * time.Minute)
	if w.Activity("window_focus") {
		t.Fatalf("unknown kind must not count as activity")
	}
	clk.Advance(time.Minute)
	state := w.State()
	if !state.Idle || !state.LastActive.Equal(start) {
		t.Fatalf("expected idle from construction time, got %+v", state)
	}
}

func TestIdleIsStickyUntilReset(t *testing.T) {
	t.Parallel()
	clk := clocktest.New(start)
	w := service.NewWatchdog(clk)
	defer w.Close()

	clk.Advance(domain.Threshold)
	idleSince := w.State().LastActive
	for _, kind := range []domain.ActivityKind{domain.ActivityClick, domain.ActivityKeyPress, domain.ActivityScroll} {
		clk.Advance(time.Minute)
		w.Activity(kind)
		state := w.State()
		if !state.Idle || !state.LastActive.Equal(idleSince) {
			t.Fatalf("activity while idle must be ignored, got %+v", state)
		}
	}

	w.ResetIdle()
	state := w.State()
	if state.Idle || !state.LastActive.Equal(clk.Now()) {
		t.Fatalf("reset should clear idle and stamp now, got %+v", state)
	}
	clk.Advance(domain.Threshold)
	if !w.State().Idle {
		t.Fatalf("reset should re-arm the timer")
	}
}

func TestCloseStopsTimerAndIgnoresActivity(t *testing.T) {
	t.Parallel()
	clk := clocktest.New(start)
	w := service.NewWatchdog(clk, service.WithThreshold(time.Minute))
	w.Close()
	if clk.Pending() != 0 {
		t.Fatalf("close should cancel the timer")
	}
	w.Activity(domain.ActivityClick)
	clk.Advance(time.Hour)
	if w.State().Idle || clk.Pending() != 0 {
		t.Fatalf("closed watchdog must stay inert")
	}
}
