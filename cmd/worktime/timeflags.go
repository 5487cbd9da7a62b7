package main

import (
	"fmt"
	"strings"
	"time"

	sessiondomain "worktime/internal/modules/session/domain"
)

var dateTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseTime reads a flag value in loc. RFC 3339 carries its own offset; a
// bare HH:MM is taken on the day of now.
func parseTime(raw string, loc *time.Location, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.ParseInLocation("15:04", raw, loc); err == nil {
		day := now.In(loc)
		return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q (want YYYY-MM-DD, YYYY-MM-DD HH:MM, HH:MM or RFC 3339)", raw)
}

func clampOffset(minutes int) int {
	return sessiondomain.ClampOffset(minutes)
}
