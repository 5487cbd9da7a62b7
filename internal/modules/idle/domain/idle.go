package domain

import (
	"fmt"
	"strings"
	"time"
)

// Threshold is the inactivity window after which the user counts as idle.
const Threshold = 600_000 * time.Millisecond

type ActivityKind string

const (
	ActivityPointerMove ActivityKind = "pointer_move"
	ActivityClick       ActivityKind = "click"
	ActivityKeyPress    ActivityKind = "key_press"
	ActivityScroll      ActivityKind = "scroll"
)

func (k ActivityKind) Valid() bool {
	switch k {
	case ActivityPointerMove, ActivityClick, ActivityKeyPress, ActivityScroll:
		return true
	}
	return false
}

type State struct {
	Idle       bool
	LastActive time.Time
}

// IdleFor is how long the user has been away as of now.
func (s State) IdleFor(now time.Time) time.Duration {
	if now.Before(s.LastActive) {
		return 0
	}
	return now.Sub(s.LastActive)
}

type Resolution string

const (
	ResolutionResume  Resolution = "resume"
	ResolutionStop    Resolution = "stop"
	ResolutionDiscard Resolution = "discard"
)

func ParseResolution(raw string) (Resolution, error) {
	switch r := Resolution(strings.ToLower(strings.TrimSpace(raw))); r {
	case ResolutionResume, ResolutionStop, ResolutionDiscard:
		return r, nil
	default:
		return "", fmt.Errorf("unknown idle resolution %q", raw)
	}
}
