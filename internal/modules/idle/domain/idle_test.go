package domain_test

import (
	"testing"
	"time"

	"worktime/internal/modules/idle/domain"
)

func TestParseResolution(t *testing.T) {
	t.Parallel()
	for raw, want := range map[string]domain.Resolution{"resume": domain.ResolutionResume, " STOP ": domain.ResolutionStop, "discard": domain.ResolutionDiscard} {
		got, err := domain.ParseResolution(raw)
		if err != nil || got != want {
			t.Fatalf("ParseResolution(%q) = %q, %v", raw, got, err)
		}
	}
	if _, err := domain.ParseResolution("snooze"); err == nil {
		t.Fatalf("unknown resolution must fail")
	}
}

func TestActivityKindValid(t *testing.T) {
	t.Parallel()
	for _, kind := range []domain.ActivityKind{domain.ActivityPointerMove, domain.ActivityClick, domain.ActivityKeyPress, domain.ActivityScroll} {
		if !kind.Valid() {
			t.Fatalf("%q should be valid", kind)
		}
	}
	for _, kind := range []domain.ActivityKind{"", "focus", "KEY_PRESS"} {
		if kind.Valid() {
			t.Fatalf("%q should be rejected", kind)
		}
	}
}

func TestIdleFor(t *testing.T) {
	t.Parallel()
	last := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	state := domain.State{Idle: true, LastActive: last}
	if got := state.IdleFor(last.Add(12 * time.Minute)); got != 12*time.Minute {
		t.Fatalf("expected 12m, got %s", got)
	}
	if got := state.IdleFor(last.Add(-time.Minute)); got != 0 {
		t.Fatalf("expected 0 for clock skew, got %s", got)
	}
	if domain.Threshold != 10*time.Minute {
		t.Fatalf("threshold must be ten minutes")
	}
}
