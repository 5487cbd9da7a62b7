package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	MaxStartOffsetMinutes = 180
	UntitledTitle         = "Untitled"
)

// WorkSession is stored and exchanged as JSON with millisecond timestamps.
// EndTime is nil exactly while the session is active.
type WorkSession struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	StartTime       int64  `json:"startTime"`
	EndTime         *int64 `json:"endTime,omitempty"`
	DurationSeconds int64  `json:"durationSeconds"`
}

func (s WorkSession) IsActive() bool {
	return s.EndTime == nil
}

func (s WorkSession) StartedAt() time.Time {
	return time.UnixMilli(s.StartTime)
}

func (s WorkSession) EndedAt() (time.Time, bool) {
	if s.EndTime == nil {
		return time.Time{}, false
	}
	return time.UnixMilli(*s.EndTime), true
}

// Seal returns the completed copy of s ending at endMs. It reports false
// when endMs precedes the start, in which case the session must be discarded.
func (s WorkSession) Seal(endMs int64) (WorkSession, bool) {
	if endMs < s.StartTime {
		return WorkSession{}, false
	}
	end := endMs
	s.EndTime = &end
	s.DurationSeconds = ElapsedSeconds(s.StartTime, endMs)
	return s, true
}

func (s WorkSession) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("session id is required")
	}
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("session title is required")
	}
	if s.EndTime != nil && *s.EndTime < s.StartTime {
		return fmt.Errorf("session end precedes its start")
	}
	if s.DurationSeconds < 0 {
		return fmt.Errorf("session duration must be non-negative")
	}
	return nil
}

// ElapsedSeconds is floor((nowMs-startMs)/1000), never negative.
func ElapsedSeconds(startMs, nowMs int64) int64 {
	if nowMs <= startMs {
		return 0
	}
	return (nowMs - startMs) / 1000
}

func ClampOffset(minutes int) int {
	if minutes < 0 {
		return 0
	}
	if minutes > MaxStartOffsetMinutes {
		return MaxStartOffsetMinutes
	}
	return minutes
}

// SortNewestFirst orders by StartTime descending, keeping the relative order
// of equal start times.
func SortNewestFirst(list []WorkSession) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].StartTime > list[j].StartTime
	})
}

func IsSortedNewestFirst(list []WorkSession) bool {
	for i := 1; i < len(list); i++ {
		if list[i-1].StartTime < list[i].StartTime {
			return false
		}
	}
	return true
}

func IndexByID(list []WorkSession, id string) int {
	for i, s := range list {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// InRange returns the sessions with startMs <= StartTime < endMs, newest first.
func InRange(list []WorkSession, startMs, endMs int64) []WorkSession {
	out := make([]WorkSession, 0)
	for _, s := range list {
		if s.StartTime >= startMs && s.StartTime < endMs {
			out = append(out, s)
		}
	}
	SortNewestFirst(out)
	return out
}

// Insert places s into a newest-first list at the position that keeps the
// order. A session newer than every entry lands at the head.
func Insert(list []WorkSession, s WorkSession) []WorkSession {
	idx := sort.Search(len(list), func(i int) bool {
		return list[i].StartTime <= s.StartTime
	})
	out := make([]WorkSession, 0, len(list)+1)
	out = append(out, list[:idx]...)
	out = append(out, s)
	out = append(out, list[idx:]...)
	return out
}

func TotalSeconds(list []WorkSession) int64 {
	var total int64
	for _, s := range list {
		total += s.DurationSeconds
	}
	return total
}

func Clone(list []WorkSession) []WorkSession {
	out := make([]WorkSession, len(list))
	for i, s := range list {
		out[i] = s.copy()
	}
	return out
}

func (s WorkSession) copy() WorkSession {
	if s.EndTime != nil {
		end := *s.EndTime
		s.EndTime = &end
	}
	return s
}
