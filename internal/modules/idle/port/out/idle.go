package out

import (
	"context"
	"time"
)

// StopResult mirrors what the tracker did when asked to stop.
type StopResult struct {
	Recorded  bool
	Discarded bool
	SessionID string
}

// Tracker is the slice of the session tracker the idle resolution drives.
type Tracker interface {
	StopAt(ctx context.Context, at time.Time) (StopResult, error)
	Discard(ctx context.Context) (bool, error)
}
