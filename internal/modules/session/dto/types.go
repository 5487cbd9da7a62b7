package dto

import "time"

type StartInput struct {
	Title         string
	Description   string
	OffsetMinutes int
}

type SessionOutput struct {
	ID              string
	Title           string
	Description     string
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds int64
	Active          bool
}

// StopOutput reports how the active session ended. Recorded is false when
// nothing was active or the session was discarded because the stop time
// preceded its start.
type StopOutput struct {
	Recorded  bool
	Discarded bool
	Session   SessionOutput
}

type UpdateInput struct {
	ID          string
	Title       string
	Description string
	StartedAt   time.Time
	EndedAt     time.Time
}

type ImportOutput struct {
	Imported int
	Skipped  int
}

// StatusOutput describes the tracker now. TotalSecondsToday counts completed
// sessions started today plus ElapsedSeconds while tracking.
type StatusOutput struct {
	Tracking          bool
	Active            SessionOutput
	ElapsedSeconds    int64
	TodaySessions     []SessionOutput
	TotalSecondsToday int64
}
