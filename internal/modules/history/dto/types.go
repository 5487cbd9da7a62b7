package dto

import "time"

type ReportInput struct {
	View     string
	Date     time.Time
	Shift    int
	Location *time.Location
}

type EntryOutput struct {
	ID              string
	Title           string
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds int64
	Active          bool
}

type CellOutput struct {
	Start        time.Time
	End          time.Time
	TotalSeconds int64
	Sessions     int
	InMonth      bool
}

type ReportOutput struct {
	View         string
	Label        string
	Date         time.Time
	Start        time.Time
	End          time.Time
	Cells        []CellOutput
	Entries      []EntryOutput
	TotalSeconds int64
}

type BlockOutput struct {
	Entry EntryOutput
	Left  float64
	Width float64
}

const (
	ActionShift       = "shift"
	ActionToday       = "today"
	ActionSelectDay   = "select_day"
	ActionSelectMonth = "select_month"
	ActionView        = "view"
)

// NavigateInput moves the cursor described by View and Date. Delta is
// used by shift, Day by select_day, Month (0 = January) by select_month
// and Target by view.
type NavigateInput struct {
	View     string
	Date     time.Time
	Action   string
	Delta    int
	Day      time.Time
	Month    int
	Target   string
	Location *time.Location
}
