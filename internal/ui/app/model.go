package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	historydto "worktime/internal/modules/history/dto"
	idledomain "worktime/internal/modules/idle/domain"
	idledto "worktime/internal/modules/idle/dto"
	sessiondto "worktime/internal/modules/session/dto"
	settingsdto "worktime/internal/modules/settings/dto"
	"worktime/internal/ui/components"
	"worktime/internal/ui/theme"
	historyview "worktime/internal/ui/views/history"
	trackerview "worktime/internal/ui/views/tracker"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type sessionPort interface {
	Start(ctx context.Context, title, description string, offsetMinutes int) (sessiondto.SessionOutput, error)
	Stop(ctx context.Context) (sessiondto.StopOutput, error)
	Discard(ctx context.Context) (bool, error)
	Status(ctx context.Context, loc *time.Location) (sessiondto.StatusOutput, error)
}

type settingsPort interface {
	Show(ctx context.Context) (settingsdto.SettingsOutput, error)
	Progress(ctx context.Context, totalSeconds int64) (settingsdto.ProgressOutput, error)
}

type historyPort interface {
	Report(ctx context.Context, view string, date time.Time, shift int, loc *time.Location) (historydto.ReportOutput, error)
	Shift(ctx context.Context, cur historydto.ReportOutput, delta int, loc *time.Location) (historydto.ReportOutput, error)
	Today(ctx context.Context, cur historydto.ReportOutput, loc *time.Location) (historydto.ReportOutput, error)
	SelectDay(ctx context.Context, cur historydto.ReportOutput, day time.Time, loc *time.Location) (historydto.ReportOutput, error)
	SelectMonth(ctx context.Context, cur historydto.ReportOutput, month int, loc *time.Location) (historydto.ReportOutput, error)
	SetView(ctx context.Context, cur historydto.ReportOutput, view string, loc *time.Location) (historydto.ReportOutput, error)
	Timeline(ctx context.Context, loc *time.Location) ([]historydto.BlockOutput, error)
}

type idlePort interface {
	Activity(kind string)
	State(ctx context.Context) idledto.StateOutput
	Resume(ctx context.Context) (idledto.ResolveOutput, error)
	Stop(ctx context.Context) (idledto.ResolveOutput, error)
	Discard(ctx context.Context) (idledto.ResolveOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTracker tabID = iota
	tabHistory
	tabCount
)

var tabLabels = [tabCount]string{"Tracker", "History"}

// RefreshInterval paces the elapsed clock, the timeline and the idle poll.
const RefreshInterval = time.Second

// ─── async messages ───────────────────────────────────────────────────────────

type tickMsg time.Time

type refreshedMsg struct {
	status   sessiondto.StatusOutput
	settings settingsdto.SettingsOutput
	progress settingsdto.ProgressOutput
	timeline []historydto.BlockOutput
	idle     idledto.StateOutput
	now      time.Time
	err      error
}

type reportLoadedMsg struct {
	report historydto.ReportOutput
	err    error
}

// actionDoneMsg ends a user action. A non-empty note replaces the status line.
type actionDoneMsg struct {
	note string
	err  error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Quit    key.Binding
	Start   key.Binding
	Stop    key.Binding
	Discard key.Binding
	Views   key.Binding
	Shift   key.Binding
	Move    key.Binding
	Open    key.Binding
	Today   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start session")),
		Stop:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop session")),
		Discard: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "discard session")),
		Views:   key.NewBinding(key.WithKeys("d", "w", "m", "y"), key.WithHelp("d/w/m/y", "history view")),
		Shift:   key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "prev/next period")),
		Move:    key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "move cursor")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open day/month")),
		Today:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Stop, k.Discard},
		{k.Views, k.Shift, k.Move, k.Open, k.Today},
		{k.Tab, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes tabs, owns the start form,
// the discard confirmation and the idle prompt, and forwards every key and
// mouse message to the idle watchdog.
type Model struct {
	session  sessionPort
	settings settingsPort
	history  historyPort
	idle     idlePort

	tracker trackerview.Model
	hist    historyview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	form      components.StartForm
	confirm   components.Confirm

	status    sessiondto.StatusOutput
	prefs     settingsdto.SettingsOutput
	loc       *time.Location
	idleState idledto.StateOutput
	now       time.Time
	note      string
	width     int
	height    int
}

func NewModel(session sessionPort, settings settingsPort, history historyPort, idle idlePort) Model {
	return Model{
		session:  session,
		settings: settings,
		history:  history,
		idle:     idle,
		tracker:  trackerview.New(),
		hist:     historyview.New(),
		keys:     defaultKeys(),
		help:     help.New(),
		form:     components.NewStartForm(),
		loc:      time.Local,
		note:     "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.loadReportCmd(), tickCmd())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.idle.Activity(string(idledomain.ActivityKeyPress))
	case tea.MouseMsg:
		m.idle.Activity(string(mouseActivity(msg)))
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		m.form.SetWidth(min(m.width-4, 72))
		m.tracker, _ = m.tracker.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height - 3})
		m.hist.SetSize(m.width, m.height-3)
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.refreshCmd(), tickCmd())

	case refreshedMsg:
		return m.applyRefresh(msg)

	case reportLoadedMsg:
		if msg.err != nil {
			m.note = "history: " + msg.err.Error()
			return m, nil
		}
		m.hist.SetReport(msg.report, m.prefs.TargetHours, m.prefs.TimeFormat, m.loc, m.now)
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.note = msg.err.Error()
		} else if msg.note != "" {
			m.note = msg.note
		}
		return m, tea.Batch(m.refreshCmd(), m.reloadReportCmd())

	case components.StartSubmitMsg:
		return m, m.startCmd(msg)

	case components.StartCancelMsg:
		m.note = "ready"
		return m, nil

	case components.ConfirmMsg:
		if msg.Action == "discard" && msg.OK {
			return m, m.discardCmd()
		}
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok && m.idlePrompt() {
		return m.handleIdleKey(k)
	}
	if m.form.Visible() {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	if m.confirm.Visible() {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}

	if m.activeTab == tabTracker {
		var cmd tea.Cmd
		m.tracker, cmd = m.tracker.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleIdleKey resolves the idle prompt. Other keys are swallowed until
// the user picks an answer.
func (m Model) handleIdleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		return m, m.resolveIdleCmd(m.idle.Resume)
	case "s":
		return m, m.resolveIdleCmd(m.idle.Stop)
	case "d":
		return m, m.resolveIdleCmd(m.idle.Discard)
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if msg.String() == "?" || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		m.activeTab = (m.activeTab + 1) % tabCount
		return m, nil
	case "shift+tab":
		m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		return m, nil
	case "?":
		m.showHelp = true
		return m, nil
	}

	if m.activeTab == tabHistory {
		return m.handleHistoryKey(msg)
	}

	switch msg.String() {
	case "s":
		if m.status.Tracking {
			m.note = "a session is already running"
			return m, nil
		}
		return m, m.form.Open()
	case "x":
		return m, m.stopCmd()
	case "d":
		if !m.status.Tracking {
			m.note = "nothing to discard"
			return m, nil
		}
		m.confirm.Ask("discard", "Discard \""+m.status.Active.Title+"\" without recording it?")
		return m, nil
	}
	var cmd tea.Cmd
	m.tracker, cmd = m.tracker.Update(msg)
	return m, cmd
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cur := m.hist.Report()
	switch msg.String() {
	case "d":
		return m, m.navigateCmd(func(ctx context.Context) (historydto.ReportOutput, error) {
			return m.history.SetView(ctx, cur, "day", m.loc)
		})
	case "w":
		return m, m.navigateCmd(func(ctx context.Context) (historydto.ReportOutput, error) {
			return m.history.SetView(ctx, cur, "week", m.loc)
		})
	case "m":
		return m, m.navigateCmd(func(ctx context.Context) (historydto.ReportOutput, error) {
			return m.history.SetView(ctx, cur, "month", m.loc)
		})
	case "y":
		return m, m.navigateCmd(func(ctx context.Context) (historydto.ReportOutput, error) {
			return m.history.SetView(ctx, cur, "year", m.loc)
		})
	case "left", "right":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		return m, m.navigateCmd(func(ctx context.Context) (historydto.ReportOutput, error) {
			return m.history.Shift(ctx, cur, delta, m.loc)
		})
	case "t":
		return m, m.navigateCmd(func(ctx context.Context) (historydto.ReportOutput, error) {
			return m.history.Today(ctx, cur, m.loc)
		})
	case "up":
		m.hist.MoveCursor(-m.cursorStep())
	case "down":
		m.hist.MoveCursor(m.cursorStep())
	case "enter":
		cell, index, ok := m.hist.Selected()
		if !ok {
			return m, nil
		}
		if cur.View == "year" {
			return m, m.navigateCmd(func(ctx context.Context) (historydto.ReportOutput, error) {
				return m.history.SelectMonth(ctx, cur, index, m.loc)
			})
		}
		return m, m.navigateCmd(func(ctx context.Context) (historydto.ReportOutput, error) {
			return m.history.SelectDay(ctx, cur, cell.Start, m.loc)
		})
	}
	return m, nil
}

// cursorStep moves a whole week at a time on the month grid.
func (m Model) cursorStep() int {
	if m.hist.Report().View == "month" {
		return 7
	}
	return 1
}

func (m Model) applyRefresh(msg refreshedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.note = msg.err.Error()
		return m, nil
	}
	prevLoc, prevFormat, prevTarget := m.loc, m.prefs.TimeFormat, m.prefs.TargetHours
	m.status = msg.status
	m.prefs = msg.settings
	m.loc = locationOf(msg.settings)
	m.idleState = msg.idle
	m.now = msg.now
	m.tracker.SetSnapshot(trackerview.Snapshot{
		Status:     msg.status,
		Progress:   msg.progress,
		Timeline:   msg.timeline,
		TimeFormat: msg.settings.TimeFormat,
		Location:   m.loc,
	})
	if msg.idle.Idle && !msg.status.Tracking {
		// Nothing to resolve; clear the flag so the next session starts fresh.
		return m, m.resolveIdleCmd(m.idle.Resume)
	}
	if m.loc.String() != prevLoc.String() || prevFormat != m.prefs.TimeFormat || prevTarget != m.prefs.TargetHours {
		return m, m.reloadReportCmd()
	}
	return m, nil
}

func (m Model) idlePrompt() bool {
	return m.idleState.Idle && m.status.Tracking
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(1, m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar))

	var content string
	switch {
	case m.idlePrompt():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center,
			components.IdleView(m.idleState.LastActive, m.idleState.IdleFor, m.status.Active.Title, m.prefs.TimeFormat, m.loc))
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.form.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.form.View())
	case m.confirm.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.confirm.View())
	case m.activeTab == tabHistory:
		content = m.hist.View()
	default:
		content = m.tracker.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	bar := "worktime  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.note
	if m.status.Tracking {
		left = theme.Running.Render("● "+m.status.Active.Title) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  q:quit")
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func mouseActivity(msg tea.MouseMsg) idledomain.ActivityKind {
	ev := tea.MouseEvent(msg)
	switch {
	case ev.IsWheel():
		return idledomain.ActivityScroll
	case ev.Action == tea.MouseActionMotion:
		return idledomain.ActivityPointerMove
	default:
		return idledomain.ActivityClick
	}
}

func locationOf(prefs settingsdto.SettingsOutput) *time.Location {
	if prefs.Location == nil {
		return time.Local
	}
	return prefs.Location
}

func tickCmd() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		prefs, err := m.settings.Show(ctx)
		if err != nil {
			return refreshedMsg{err: fmt.Errorf("settings: %w", err)}
		}
		status, err := m.session.Status(ctx, locationOf(prefs))
		if err != nil {
			return refreshedMsg{err: fmt.Errorf("status: %w", err)}
		}
		progress, err := m.settings.Progress(ctx, status.TotalSecondsToday)
		if err != nil {
			return refreshedMsg{err: fmt.Errorf("progress: %w", err)}
		}
		timeline, err := m.history.Timeline(ctx, locationOf(prefs))
		if err != nil {
			return refreshedMsg{err: fmt.Errorf("timeline: %w", err)}
		}
		state := m.idle.State(ctx)
		return refreshedMsg{
			status:   status,
			settings: prefs,
			progress: progress,
			timeline: timeline,
			idle:     state,
			now:      time.Now(),
		}
	}
}

func (m Model) loadReportCmd() tea.Cmd {
	return func() tea.Msg {
		r, err := m.history.Report(context.Background(), "month", time.Time{}, 0, m.loc)
		return reportLoadedMsg{report: r, err: err}
	}
}

// reloadReportCmd rebuilds the report the history tab is showing.
func (m Model) reloadReportCmd() tea.Cmd {
	cur := m.hist.Report()
	if cur.View == "" {
		return m.loadReportCmd()
	}
	return func() tea.Msg {
		r, err := m.history.Report(context.Background(), cur.View, cur.Date.In(m.loc), 0, m.loc)
		return reportLoadedMsg{report: r, err: err}
	}
}

func (m Model) navigateCmd(nav func(ctx context.Context) (historydto.ReportOutput, error)) tea.Cmd {
	return func() tea.Msg {
		r, err := nav(context.Background())
		return reportLoadedMsg{report: r, err: err}
	}
}

func (m Model) startCmd(in components.StartSubmitMsg) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Start(context.Background(), in.Title, in.Description, in.OffsetMinutes)
		if err != nil {
			return actionDoneMsg{err: fmt.Errorf("start: %w", err)}
		}
		return actionDoneMsg{note: "started: " + out.Title}
	}
}

func (m Model) stopCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Stop(context.Background())
		switch {
		case err != nil:
			return actionDoneMsg{err: fmt.Errorf("stop: %w", err)}
		case out.Recorded:
			return actionDoneMsg{note: fmt.Sprintf("recorded %q (%ds)", out.Session.Title, out.Session.DurationSeconds)}
		case out.Discarded:
			return actionDoneMsg{note: "session discarded"}
		default:
			return actionDoneMsg{note: "no active session"}
		}
	}
}

func (m Model) discardCmd() tea.Cmd {
	return func() tea.Msg {
		ok, err := m.session.Discard(context.Background())
		if err != nil {
			return actionDoneMsg{err: fmt.Errorf("discard: %w", err)}
		}
		if !ok {
			return actionDoneMsg{note: "no active session"}
		}
		return actionDoneMsg{note: "session discarded"}
	}
}

func (m Model) resolveIdleCmd(resolve func(ctx context.Context) (idledto.ResolveOutput, error)) tea.Cmd {
	return func() tea.Msg {
		out, err := resolve(context.Background())
		if err != nil {
			return actionDoneMsg{err: fmt.Errorf("idle: %w", err)}
		}
		switch {
		case out.Recorded:
			return actionDoneMsg{note: "stopped at last activity"}
		case out.Discarded:
			return actionDoneMsg{note: "idle session discarded"}
		default:
			return actionDoneMsg{}
		}
	}
}
