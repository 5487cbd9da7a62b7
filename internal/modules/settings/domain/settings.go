package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	TimeFormat12 = "12"
	TimeFormat24 = "24"

	DefaultTimezone    = "Local"
	DefaultTargetHours = 8.0
	MinTargetHours     = 1.0
	MaxTargetHours     = 24.0
)

type AppSettings struct {
	Timezone    string  `json:"timezone"`
	TimeFormat  string  `json:"timeFormat"`
	TargetHours float64 `json:"targetHours"`
}

// Patch carries the fields a caller wants to change; nil fields are kept.
type Patch struct {
	Timezone    *string
	TimeFormat  *string
	TargetHours *float64
}

func Defaults() AppSettings {
	return AppSettings{Timezone: DefaultTimezone, TimeFormat: TimeFormat24, TargetHours: DefaultTargetHours}
}

func (s AppSettings) Apply(p Patch) AppSettings {
	if p.Timezone != nil {
		s.Timezone = strings.TrimSpace(*p.Timezone)
	}
	if p.TimeFormat != nil {
		s.TimeFormat = strings.TrimSpace(*p.TimeFormat)
	}
	if p.TargetHours != nil {
		s.TargetHours = *p.TargetHours
	}
	return s
}

func (s AppSettings) Validate() error {
	if s.TimeFormat != TimeFormat12 && s.TimeFormat != TimeFormat24 {
		return fmt.Errorf("time format must be 12 or 24, got %q", s.TimeFormat)
	}
	if math.IsNaN(s.TargetHours) || s.TargetHours < MinTargetHours || s.TargetHours > MaxTargetHours {
		return fmt.Errorf("target hours must be between %g and %g", MinTargetHours, MaxTargetHours)
	}
	if _, err := s.Location(); err != nil {
		return err
	}
	return nil
}

// Sanitize replaces every invalid field with its default.
func (s AppSettings) Sanitize() AppSettings {
	d := Defaults()
	if s.TimeFormat != TimeFormat12 && s.TimeFormat != TimeFormat24 {
		s.TimeFormat = d.TimeFormat
	}
	if math.IsNaN(s.TargetHours) || s.TargetHours < MinTargetHours || s.TargetHours > MaxTargetHours {
		s.TargetHours = d.TargetHours
	}
	if _, err := s.Location(); err != nil {
		s.Timezone = d.Timezone
	}
	return s
}

// Location resolves the timezone. Empty and "Local" mean the process zone.
func (s AppSettings) Location() (*time.Location, error) {
	switch s.Timezone {
	case "", DefaultTimezone:
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// Progress is the share of the daily target reached, as a whole percentage
// capped at 100.
func Progress(totalSeconds int64, targetHours float64) int {
	if targetHours <= 0 || totalSeconds <= 0 {
		return 0
	}
	hours := float64(totalSeconds) / 3600
	pct := math.Round(hours / targetHours * 100)
	if pct > 100 {
		return 100
	}
	return int(pct)
}
