package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	historydto "worktime/internal/modules/history/dto"
	sessiondto "worktime/internal/modules/session/dto"
	settingsdto "worktime/internal/modules/settings/dto"
	"worktime/internal/platform/timefmt"
	"worktime/internal/ui/theme"
)

// Snapshot is everything the tracker tab renders. The root model refreshes
// it once per tick.
type Snapshot struct {
	Status     sessiondto.StatusOutput
	Progress   settingsdto.ProgressOutput
	Timeline   []historydto.BlockOutput
	TimeFormat string
	Location   *time.Location
}

const progressWidth = 30

type Model struct {
	snap   Snapshot
	list   viewport.Model
	width  int
	height int
}

func New() Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Foreground(theme.Text)
	return Model{list: vp}
}

func (m *Model) SetSnapshot(s Snapshot) {
	m.snap = s
	m.list.SetContent(m.renderList())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.Width = max(0, m.width-4)
		m.list.Height = max(1, m.height-lipgloss.Height(m.renderHeader())-2)
		m.list.SetContent(m.renderList())
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	header := m.renderHeader()
	list := theme.Pane.Width(max(10, m.width-2)).Render(m.list.View())
	return lipgloss.JoinVertical(lipgloss.Left, header, list)
}

func (m Model) renderHeader() string {
	s := m.snap.Status
	var sb strings.Builder
	if s.Tracking {
		sb.WriteString(theme.Running.Render("● "+s.Active.Title) + "  ")
		sb.WriteString(theme.Muted.Render("since " + timefmt.TimeOfDay(s.Active.StartedAt, m.snap.TimeFormat, m.snap.Location)))
		if s.Active.Description != "" {
			sb.WriteString("\n" + theme.Muted.Render(s.Active.Description))
		}
	} else {
		sb.WriteString(theme.Muted.Render("○ not tracking  (s to start)"))
	}
	sb.WriteString("\n\n" + theme.BigClock.Render(timefmt.Clock(s.ElapsedSeconds)) + "\n\n")

	p := m.snap.Progress
	sb.WriteString(theme.Muted.Render("today  ") + timefmt.Duration(s.TotalSecondsToday) + "  ")
	sb.WriteString(ProgressBar(p.Percent, progressWidth) + "  ")
	sb.WriteString(fmt.Sprintf("%d%% of %gh", p.Percent, p.TargetHours) + "\n\n")

	stripW := max(24, m.width-4)
	sb.WriteString(RenderStrip(m.snap.Timeline, stripW) + "\n")
	sb.WriteString(theme.Muted.Render(stripAxis(stripW)))
	return sb.String()
}

func (m Model) renderList() string {
	sessions := m.snap.Status.TodaySessions
	if len(sessions) == 0 {
		return theme.Muted.Render("no sessions recorded today")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Today") + "\n")
	for _, s := range sessions {
		span := timefmt.TimeOfDay(s.StartedAt, m.snap.TimeFormat, m.snap.Location) + " - " +
			timefmt.TimeOfDay(s.EndedAt, m.snap.TimeFormat, m.snap.Location)
		sb.WriteString(fmt.Sprintf("%-17s %8s  %s\n", span, timefmt.Duration(s.DurationSeconds), s.Title))
	}
	return sb.String()
}

// ProgressBar draws percent of width cells as filled.
func ProgressBar(percent, width int) string {
	filled := min(width, max(0, percent*width/100))
	return theme.BarFilled.Render(strings.Repeat("█", filled)) +
		theme.BarEmpty.Render(strings.Repeat("░", width-filled))
}

type cellKind byte

const (
	cellEmpty cellKind = iota
	cellDone
	cellActive
)

// stripCells maps the percent blocks of a day onto width character cells.
// A cell is marked when any block overlaps it; active wins over done.
func stripCells(blocks []historydto.BlockOutput, width int) []cellKind {
	cells := make([]cellKind, width)
	if width == 0 {
		return cells
	}
	step := 100 / float64(width)
	for _, b := range blocks {
		first := int(b.Left / step)
		last := int((b.Left + b.Width) / step)
		if float64(last)*step == b.Left+b.Width && last > first {
			last--
		}
		kind := cellDone
		if b.Entry.Active {
			kind = cellActive
		}
		for i := max(0, first); i <= min(width-1, last); i++ {
			if cells[i] < kind {
				cells[i] = kind
			}
		}
	}
	return cells
}

func RenderStrip(blocks []historydto.BlockOutput, width int) string {
	var sb strings.Builder
	for _, c := range stripCells(blocks, width) {
		switch c {
		case cellActive:
			sb.WriteString(theme.BlockActive.Render("█"))
		case cellDone:
			sb.WriteString(theme.BlockDone.Render("█"))
		default:
			sb.WriteString(theme.BlockEmpty.Render("▁"))
		}
	}
	return sb.String()
}

// stripAxis labels 0, 6, 12, 18 and 24 under a strip of the given width.
func stripAxis(width int) string {
	axis := []byte(strings.Repeat(" ", width))
	for h := 0; h <= 24; h += 6 {
		label := fmt.Sprintf("%d", h)
		pos := h * width / 24
		if pos+len(label) > width {
			pos = width - len(label)
		}
		copy(axis[pos:], label)
	}
	return string(axis)
}
