package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	historydto "worktime/internal/modules/history/dto"
	"worktime/internal/platform/timefmt"
	"worktime/internal/ui/theme"
)

// Model renders one history report. Navigation calls belong to the root
// model; this view only tracks which cell the cursor is on.
type Model struct {
	report      historydto.ReportOutput
	cursor      int
	targetHours float64
	timeFormat  string
	loc         *time.Location
	now         time.Time
	width       int
	height      int
}

func New() Model { return Model{} }

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetReport swaps in a new report. The cursor lands on the cell holding
// the report's anchor date when there is one.
func (m *Model) SetReport(r historydto.ReportOutput, targetHours float64, format string, loc *time.Location, now time.Time) {
	m.report = r
	m.targetHours = targetHours
	m.timeFormat = format
	m.loc = loc
	m.now = now
	m.cursor = 0
	for i, c := range r.Cells {
		if !r.Date.Before(c.Start) && r.Date.Before(c.End) {
			m.cursor = i
			break
		}
	}
}

func (m Model) Report() historydto.ReportOutput { return m.report }

// MoveCursor moves the cell cursor by delta, staying inside the report.
func (m *Model) MoveCursor(delta int) {
	if len(m.report.Cells) == 0 {
		return
	}
	m.cursor = min(len(m.report.Cells)-1, max(0, m.cursor+delta))
}

// Selected returns the cell under the cursor and its index.
func (m Model) Selected() (historydto.CellOutput, int, bool) {
	if m.cursor < 0 || m.cursor >= len(m.report.Cells) {
		return historydto.CellOutput{}, 0, false
	}
	return m.report.Cells[m.cursor], m.cursor, true
}

func (m Model) View() string {
	r := m.report
	header := theme.Title.Render(r.Label) + "  " +
		theme.Muted.Render("total ") + timefmt.Duration(r.TotalSeconds) +
		theme.Muted.Render(fmt.Sprintf("  %d sessions", len(r.Entries)))

	var body string
	switch r.View {
	case "month":
		body = m.renderMonth()
	case "week":
		body = m.renderRows(func(c historydto.CellOutput) string {
			return c.Start.In(m.location()).Format("Mon Jan 2")
		})
	case "year":
		body = m.renderRows(func(c historydto.CellOutput) string {
			return c.Start.In(m.location()).Format("January")
		})
	default:
		body = m.renderEntries()
	}

	hint := theme.Muted.Render("d/w/m/y: view  ←/→: prev/next  ↑/↓: move  enter: open  t: today")
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", hint)
}

func (m Model) location() *time.Location {
	if m.loc == nil {
		return time.Local
	}
	return m.loc
}

func (m Model) renderMonth() string {
	cellW := max(9, (m.width-2)/7)
	cell := lipgloss.NewStyle().Width(cellW)

	var rows []string
	names := make([]string, 7)
	for i, d := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		names[i] = cell.Render(theme.Muted.Render(d))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, names...))

	today := m.now.In(m.location())
	for week := 0; week*7 < len(m.report.Cells); week++ {
		parts := make([]string, 0, 7)
		for i := week * 7; i < min(len(m.report.Cells), week*7+7); i++ {
			c := m.report.Cells[i]
			day := c.Start.In(m.location())
			num := theme.Muted.Render(fmt.Sprintf("%2d", day.Day()))
			switch {
			case !c.InMonth:
				num = theme.CellOutside.Render(fmt.Sprintf("%2d", day.Day()))
			case sameDay(day, today):
				num = theme.CellToday.Render(fmt.Sprintf("%2d", day.Day()))
			}
			total := ""
			if c.TotalSeconds > 0 {
				total = theme.Heat(c.TotalSeconds, m.targetHours).Render(timefmt.Duration(c.TotalSeconds))
			}
			text := num + " " + total
			if i == m.cursor {
				text = lipgloss.NewStyle().Reverse(true).Render(fmt.Sprintf("%2d", day.Day())) + " " + total
			}
			parts = append(parts, cell.Render(text))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderRows(label func(historydto.CellOutput) string) string {
	var peak int64 = 1
	for _, c := range m.report.Cells {
		peak = max(peak, c.TotalSeconds)
	}
	barW := max(10, m.width-40)

	var sb strings.Builder
	for i, c := range m.report.Cells {
		marker := "  "
		if i == m.cursor {
			marker = theme.Hot.Render("▸ ")
		}
		filled := int(c.TotalSeconds * int64(barW) / peak)
		bar := theme.Heat(c.TotalSeconds, m.targetHours).Render(strings.Repeat("█", filled))
		sb.WriteString(fmt.Sprintf("%s%-12s %8s %3d  %s\n", marker, label(c), timefmt.Duration(c.TotalSeconds), c.Sessions, bar))
	}
	return sb.String()
}

func (m Model) renderEntries() string {
	if len(m.report.Entries) == 0 {
		return theme.Muted.Render("no sessions")
	}
	var sb strings.Builder
	for _, e := range m.report.Entries {
		span := timefmt.TimeOfDay(e.StartedAt, m.timeFormat, m.loc) + " - " + timefmt.TimeOfDay(e.EndedAt, m.timeFormat, m.loc)
		sb.WriteString(fmt.Sprintf("%-17s %8s  %s\n", span, timefmt.Duration(e.DurationSeconds), e.Title))
	}
	return sb.String()
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
