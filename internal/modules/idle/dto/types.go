package dto

import "time"

type StateOutput struct {
	Idle       bool
	LastActive time.Time
	IdleFor    time.Duration
}

type ResolveOutput struct {
	Resolution string
	Recorded   bool
	Discarded  bool
	SessionID  string
}
