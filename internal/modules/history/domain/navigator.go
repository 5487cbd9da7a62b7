package domain

import (
	"fmt"
	"strings"
	"time"
)

type Mode string

const (
	ModeYear  Mode = "year"
	ModeMonth Mode = "month"
	ModeWeek  Mode = "week"
	ModeDay   Mode = "day"
)

func ParseMode(raw string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(raw))); m {
	case ModeYear, ModeMonth, ModeWeek, ModeDay:
		return m, nil
	default:
		return "", fmt.Errorf("unknown view %q", raw)
	}
}

// Navigator is the history view cursor: what granularity is shown and
// which date anchors it.
type Navigator struct {
	Mode Mode
	Date time.Time
}

func NewNavigator(now time.Time) Navigator {
	return Navigator{Mode: ModeMonth, Date: now}
}

// ChangeDate moves the anchor by delta units of the current mode. Month and
// year shifts normalize overflowing days the way time.AddDate does.
func (n Navigator) ChangeDate(delta int) Navigator {
	switch n.Mode {
	case ModeYear:
		n.Date = n.Date.AddDate(delta, 0, 0)
	case ModeMonth:
		n.Date = n.Date.AddDate(0, delta, 0)
	case ModeWeek:
		n.Date = n.Date.AddDate(0, 0, 7*delta)
	default:
		n.Date = n.Date.AddDate(0, 0, delta)
	}
	return n
}

// JumpToToday anchors on now and switches to the day view, except from the
// year view which is kept.
func (n Navigator) JumpToToday(now time.Time) Navigator {
	n.Date = now
	if n.Mode != ModeYear {
		n.Mode = ModeDay
	}
	return n
}

func (n Navigator) SelectDay(date time.Time) Navigator {
	n.Date = date
	n.Mode = ModeDay
	return n
}

// SelectMonth opens month index (0 = January) of the anchor's year.
func (n Navigator) SelectMonth(index int) Navigator {
	d := n.Date
	n.Date = time.Date(d.Year(), time.Month(index+1), d.Day(), d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())
	n.Mode = ModeMonth
	return n
}

func (n Navigator) SetMode(mode Mode) Navigator {
	n.Mode = mode
	return n
}

// Range is the span the current view covers, as [start, end).
func (n Navigator) Range() (time.Time, time.Time) {
	d := n.Date
	loc := d.Location()
	switch n.Mode {
	case ModeYear:
		return time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, loc), time.Date(d.Year()+1, time.January, 1, 0, 0, 0, 0, loc)
	case ModeMonth:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, loc), time.Date(d.Year(), d.Month()+1, 1, 0, 0, 0, 0, loc)
	case ModeWeek:
		start := WeekStart(d)
		return start, time.Date(start.Year(), start.Month(), start.Day()+DaysInWeek, 0, 0, 0, 0, loc)
	default:
		return DayRange(d)
	}
}

// FetchRange is the span of entries BuildReport needs. The month view
// reaches into the neighbouring months for its padding cells.
func (n Navigator) FetchRange() (time.Time, time.Time) {
	if n.Mode == ModeMonth {
		return GridRange(n.Date)
	}
	return n.Range()
}

func (n Navigator) Label() string {
	d := n.Date
	switch n.Mode {
	case ModeYear:
		return d.Format("2006")
	case ModeMonth:
		return d.Format("January 2006")
	case ModeWeek:
		start := WeekStart(d)
		end := start.AddDate(0, 0, DaysInWeek-1)
		return start.Format("Jan 2") + " – " + end.Format("Jan 2, 2006")
	default:
		return d.Format("Mon, Jan 2 2006")
	}
}
