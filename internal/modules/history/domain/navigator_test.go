package domain_test

import (
	"testing"
	"time"

	"worktime/internal/modules/history/domain"
)

func TestNavigatorChangeDate(t *testing.T) {
	t.Parallel()
	base := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		mode  domain.Mode
		delta int
		want  time.Time
	}{
		{domain.ModeYear, 1, time.Date(2027, 10, 14, 10, 0, 0, 0, time.UTC)},
		{domain.ModeMonth, -1, time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)},
		{domain.ModeWeek, 2, time.Date(2026, 10, 28, 10, 0, 0, 0, time.UTC)},
		{domain.ModeDay, -14, time.Date(2026, 9, 30, 10, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got := domain.Navigator{Mode: tc.mode, Date: base}.ChangeDate(tc.delta)
		if !got.Date.Equal(tc.want) || got.Mode != tc.mode {
			t.Fatalf("%s %+d: got %s, want %s", tc.mode, tc.delta, got.Date, tc.want)
		}
	}
	overflow := domain.Navigator{Mode: domain.ModeMonth, Date: time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC)}.ChangeDate(1)
	if !overflow.Date.Equal(time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Oct 31 + 1 month should normalize to Dec 1, got %s", overflow.Date)
	}
}

func TestNavigatorJumpsAndSelections(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	old := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	n := domain.NewNavigator(old)
	if n.Mode != domain.ModeMonth {
		t.Fatalf("default mode should be month")
	}
	if j := n.JumpToToday(now); j.Mode != domain.ModeDay || !j.Date.Equal(now) {
		t.Fatalf("jump from month should show today, got %+v", j)
	}
	if j := n.SetMode(domain.ModeYear).JumpToToday(now); j.Mode != domain.ModeYear || !j.Date.Equal(now) {
		t.Fatalf("jump from year should stay in year view, got %+v", j)
	}
	if s := n.SetMode(domain.ModeWeek).SelectDay(now); s.Mode != domain.ModeDay || !s.Date.Equal(now) {
		t.Fatalf("select day should open day view, got %+v", s)
	}
	m := domain.Navigator{Mode: domain.ModeYear, Date: now}.SelectMonth(1)
	if m.Mode != domain.ModeMonth || m.Date.Month() != time.February || m.Date.Year() != 2026 {
		t.Fatalf("select month should open February 2026, got %+v", m)
	}
}

func TestNavigatorLabelsAndRange(t *testing.T) {
	t.Parallel()
	d := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	labels := map[domain.Mode]string{
		domain.ModeYear:  "2026",
		domain.ModeMonth: "October 2026",
		domain.ModeWeek:  "Oct 11 – Oct 17, 2026",
		domain.ModeDay:   "Wed, Oct 14 2026",
	}
	for mode, want := range labels {
		if got := (domain.Navigator{Mode: mode, Date: d}).Label(); got != want {
			t.Fatalf("%s label = %q, want %q", mode, got, want)
		}
	}
	start, end := domain.Navigator{Mode: domain.ModeWeek, Date: d}.Range()
	if !start.Equal(time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC)) || !end.Equal(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected week range %s - %s", start, end)
	}
	if _, err := domain.ParseMode("decade"); err == nil {
		t.Fatalf("unknown mode must fail")
	}
}
