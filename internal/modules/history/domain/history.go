package domain

import (
	"sort"
	"time"

	"worktime/internal/platform/clock"
)

const (
	DayLength  = 86_400_000 * time.Millisecond
	GridCells  = 42
	DaysInWeek = 7
)

// Entry is a session as seen by the aggregator. Active entries have no End.
type Entry struct {
	ID              string
	Title           string
	Start           time.Time
	End             time.Time
	DurationSeconds int64
	Active          bool
}

// Bucket holds the entries whose start falls in [Start, End).
type Bucket struct {
	Start        time.Time
	End          time.Time
	Entries      []Entry
	TotalSeconds int64
}

type Cell struct {
	Bucket
	InMonth bool
}

func DayRange(t time.Time) (time.Time, time.Time) {
	start := clock.StartOfDay(t)
	return start, start.Add(DayLength)
}

// Collect attributes entries to [start, end) by start instant only.
func Collect(entries []Entry, start, end time.Time) Bucket {
	b := Bucket{Start: start, End: end, Entries: []Entry{}}
	for _, e := range entries {
		if e.Start.Before(start) || !e.Start.Before(end) {
			continue
		}
		b.Entries = append(b.Entries, e)
		b.TotalSeconds += e.DurationSeconds
	}
	sort.SliceStable(b.Entries, func(i, j int) bool {
		return b.Entries[i].Start.After(b.Entries[j].Start)
	})
	return b
}

func Day(entries []Entry, t time.Time) Bucket {
	start, end := DayRange(t)
	return Collect(entries, start, end)
}

// WeekStart is midnight of the most recent Sunday on or before t.
func WeekStart(t time.Time) time.Time {
	d := clock.StartOfDay(t)
	return time.Date(d.Year(), d.Month(), d.Day()-int(d.Weekday()), 0, 0, 0, 0, d.Location())
}

func Week(entries []Entry, t time.Time) []Bucket {
	start := WeekStart(t)
	days := make([]Bucket, 0, DaysInWeek)
	for i := 0; i < DaysInWeek; i++ {
		day := time.Date(start.Year(), start.Month(), start.Day()+i, 0, 0, 0, 0, start.Location())
		days = append(days, Day(entries, day))
	}
	return days
}

// MonthGrid lays the month of t out on a Sunday-first 6x7 grid. Cells
// outside the month pad both ends and have InMonth false.
func MonthGrid(entries []Entry, t time.Time) []Cell {
	loc := t.Location()
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	daysInMonth := time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, loc).Day()
	lead := int(first.Weekday())

	cells := make([]Cell, 0, GridCells)
	for i := lead; i > 0; i-- {
		cells = append(cells, dayCell(entries, time.Date(t.Year(), t.Month(), 1-i, 0, 0, 0, 0, loc), false))
	}
	for d := 1; d <= daysInMonth; d++ {
		cells = append(cells, dayCell(entries, time.Date(t.Year(), t.Month(), d, 0, 0, 0, 0, loc), true))
	}
	for d := 1; len(cells) < GridCells; d++ {
		cells = append(cells, dayCell(entries, time.Date(t.Year(), t.Month()+1, d, 0, 0, 0, 0, loc), false))
	}
	return cells
}

// GridRange is the span covered by the month grid of t, padding included.
func GridRange(t time.Time) (time.Time, time.Time) {
	loc := t.Location()
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	start := time.Date(t.Year(), t.Month(), 1-int(first.Weekday()), 0, 0, 0, 0, loc)
	return start, time.Date(start.Year(), start.Month(), start.Day()+GridCells, 0, 0, 0, 0, loc)
}

func dayCell(entries []Entry, day time.Time, inMonth bool) Cell {
	return Cell{Bucket: Day(entries, day), InMonth: inMonth}
}

// YearMonths returns one bucket per month of t's year. Each bucket ends at
// 23:59:59 of the month's last day, so the final second is not counted.
func YearMonths(entries []Entry, t time.Time) []Bucket {
	loc := t.Location()
	months := make([]Bucket, 0, 12)
	for m := time.January; m <= time.December; m++ {
		start := time.Date(t.Year(), m, 1, 0, 0, 0, 0, loc)
		end := time.Date(t.Year(), m+1, 0, 23, 59, 59, 0, loc)
		months = append(months, Collect(entries, start, end))
	}
	return months
}

// Block places an entry on the 24h strip of a day, in percent.
type Block struct {
	Entry
	Left  float64
	Width float64
}

// Timeline lays out the entries, plus the active one when given, across
// the local day of now. The active block runs until now.
func Timeline(entries []Entry, active *Entry, now time.Time) []Block {
	dayStart := clock.StartOfDay(now)
	all := make([]Entry, 0, len(entries)+1)
	if active != nil {
		a := *active
		a.Active = true
		a.End = now
		all = append(all, a)
	}
	all = append(all, entries...)

	total := float64(DayLength)
	blocks := make([]Block, 0, len(all))
	for _, e := range all {
		end := e.End
		if e.Active {
			end = now
		}
		startRel := e.Start.Sub(dayStart)
		if startRel < 0 {
			startRel = 0
		}
		endRel := end.Sub(dayStart)
		left := float64(startRel) / total * 100
		width := float64(endRel-startRel) / total * 100
		blocks = append(blocks, Block{
			Entry: e,
			Left:  clamp(left, 0, 100),
			Width: max(0.5, min(100-left, width)),
		})
	}
	return blocks
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}

// Report is everything a history view renders for one navigator position.
type Report struct {
	Mode         Mode
	Label        string
	Start        time.Time
	End          time.Time
	Cells        []Cell
	Entries      []Entry
	TotalSeconds int64
}

// BuildReport aggregates entries for the view n points at. entries must
// cover n.FetchRange().
func BuildReport(entries []Entry, n Navigator) Report {
	start, end := n.Range()
	inView := Collect(entries, start, end)
	r := Report{
		Mode:         n.Mode,
		Label:        n.Label(),
		Start:        start,
		End:          end,
		Entries:      inView.Entries,
		TotalSeconds: inView.TotalSeconds,
	}
	switch n.Mode {
	case ModeWeek:
		for _, b := range Week(entries, n.Date) {
			r.Cells = append(r.Cells, Cell{Bucket: b, InMonth: true})
		}
	case ModeMonth:
		r.Cells = MonthGrid(entries, n.Date)
	case ModeYear:
		for _, b := range YearMonths(entries, n.Date) {
			r.Cells = append(r.Cells, Cell{Bucket: b, InMonth: true})
		}
	}
	return r
}
