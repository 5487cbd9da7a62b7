// Package timefmt renders durations and clock times for the CLI and TUI.
package timefmt

import (
	"fmt"
	"time"
)

// Clock renders seconds as HH:MM:SS. Hours grow past two digits as needed.
func Clock(totalSeconds int64) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Duration renders seconds as "1h 5m", or "5m" under an hour.
func Duration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// TimeOfDay renders t in loc using "24" (15:04) or "12" (3:04 PM) style.
func TimeOfDay(t time.Time, format string, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	if format == "12" {
		return t.Format("3:04 PM")
	}
	return t.Format("15:04")
}

// DateTime renders a full local timestamp used in listings.
func DateTime(t time.Time, format string, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("2006-01-02") + " " + TimeOfDay(t, format, nil)
}
