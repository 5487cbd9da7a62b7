package app

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	historydto "worktime/internal/modules/history/dto"
	idledto "worktime/internal/modules/idle/dto"
	sessiondto "worktime/internal/modules/session/dto"
	settingsdto "worktime/internal/modules/settings/dto"
	"worktime/internal/ui/components"
)

type fakeSession struct {
	status    sessiondto.StatusOutput
	statusLoc *time.Location
	started   []components.StartSubmitMsg
	stops     int
}

func (f *fakeSession) Start(_ context.Context, title, description string, offset int) (sessiondto.SessionOutput, error) {
	f.started = append(f.started, components.StartSubmitMsg{Title: title, Description: description, OffsetMinutes: offset})
	return sessiondto.SessionOutput{Title: title, Active: true}, nil
}
func (f *fakeSession) Stop(context.Context) (sessiondto.StopOutput, error) {
	f.stops++
	return sessiondto.StopOutput{}, nil
}
func (f *fakeSession) Discard(context.Context) (bool, error) { return false, nil }
func (f *fakeSession) Status(_ context.Context, loc *time.Location) (sessiondto.StatusOutput, error) {
	f.statusLoc = loc
	return f.status, nil
}

type fakeSettings struct{}

func (fakeSettings) Show(context.Context) (settingsdto.SettingsOutput, error) {
	return settingsdto.SettingsOutput{Timezone: "UTC", TimeFormat: "24", TargetHours: 8, Location: time.UTC}, nil
}
func (fakeSettings) Progress(_ context.Context, total int64) (settingsdto.ProgressOutput, error) {
	return settingsdto.ProgressOutput{TotalSeconds: total, TargetHours: 8}, nil
}

type fakeHistory struct{ views []string }

func (f *fakeHistory) Report(_ context.Context, view string, date time.Time, _ int, _ *time.Location) (historydto.ReportOutput, error) {
	f.views = append(f.views, view)
	return historydto.ReportOutput{View: view, Date: date}, nil
}
func (f *fakeHistory) Shift(_ context.Context, cur historydto.ReportOutput, _ int, _ *time.Location) (historydto.ReportOutput, error) {
	return cur, nil
}
func (f *fakeHistory) Today(_ context.Context, cur historydto.ReportOutput, _ *time.Location) (historydto.ReportOutput, error) {
	return cur, nil
}
func (f *fakeHistory) SelectDay(_ context.Context, cur historydto.ReportOutput, _ time.Time, _ *time.Location) (historydto.ReportOutput, error) {
	cur.View = "day"
	return cur, nil
}
func (f *fakeHistory) SelectMonth(_ context.Context, cur historydto.ReportOutput, _ int, _ *time.Location) (historydto.ReportOutput, error) {
	cur.View = "month"
	return cur, nil
}
func (f *fakeHistory) SetView(_ context.Context, cur historydto.ReportOutput, view string, _ *time.Location) (historydto.ReportOutput, error) {
	f.views = append(f.views, view)
	cur.View = view
	return cur, nil
}
func (f *fakeHistory) Timeline(context.Context, *time.Location) ([]historydto.BlockOutput, error) {
	return nil, nil
}

type fakeIdle struct {
	state    idledto.StateOutput
	activity []string
	resolved []string
}

func (f *fakeIdle) Activity(kind string) { f.activity = append(f.activity, kind) }
func (f *fakeIdle) State(context.Context) idledto.StateOutput { return f.state }
func (f *fakeIdle) Resume(context.Context) (idledto.ResolveOutput, error) {
	f.resolved = append(f.resolved, "resume")
	f.state.Idle = false
	return idledto.ResolveOutput{Resolution: "resume"}, nil
}
func (f *fakeIdle) Stop(context.Context) (idledto.ResolveOutput, error) {
	f.resolved = append(f.resolved, "stop")
	return idledto.ResolveOutput{Resolution: "stop", Recorded: true}, nil
}
func (f *fakeIdle) Discard(context.Context) (idledto.ResolveOutput, error) {
	f.resolved = append(f.resolved, "discard")
	return idledto.ResolveOutput{Resolution: "discard", Discarded: true}, nil
}

type fixture struct {
	session *fakeSession
	history *fakeHistory
	idle    *fakeIdle
}

func newFixture() (Model, *fixture) {
	f := &fixture{session: &fakeSession{}, history: &fakeHistory{}, idle: &fakeIdle{}}
	return NewModel(f.session, fakeSettings{}, f.history, f.idle), f
}

// step feeds msg to m and runs the returned command once, feeding its
// message back. Batches are not expanded.
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd == nil {
		return m
	}
	if out := cmd(); out != nil {
		if _, isBatch := out.(tea.BatchMsg); !isBatch {
			next, _ = m.Update(out)
			m = next.(Model)
		}
	}
	return m
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInputIsReportedToTheWatchdog(t *testing.T) {
	t.Parallel()
	m, f := newFixture()
	m = step(t, m, keyMsg("?"))
	m = step(t, m, tea.MouseMsg{Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	m = step(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	_ = step(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	want := []string{"key_press", "pointer_move", "scroll", "click"}
	if len(f.idle.activity) != len(want) {
		t.Fatalf("activity = %v, want %v", f.idle.activity, want)
	}
	for i := range want {
		if f.idle.activity[i] != want[i] {
			t.Fatalf("activity = %v, want %v", f.idle.activity, want)
		}
	}
}

func TestIdlePromptStopsAtLastActivity(t *testing.T) {
	t.Parallel()
	m, f := newFixture()
	f.session.status = sessiondto.StatusOutput{Tracking: true, Active: sessiondto.SessionOutput{Title: "Focus"}}
	f.idle.state = idledto.StateOutput{Idle: true, LastActive: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)}

	m = step(t, m, m.refreshCmd()())
	if !m.idlePrompt() {
		t.Fatalf("idle prompt should be showing")
	}
	// Tracker keys are swallowed while the prompt is up.
	m = step(t, m, keyMsg("x"))
	if f.session.stops != 0 {
		t.Fatalf("x must not reach the tracker while idle")
	}
	_ = step(t, m, keyMsg("s"))
	if len(f.idle.resolved) != 1 || f.idle.resolved[0] != "stop" {
		t.Fatalf("resolved = %v, want [stop]", f.idle.resolved)
	}
}

func TestRefreshUsesSettingsZoneAndTodayTotal(t *testing.T) {
	t.Parallel()
	m, f := newFixture()
	f.session.status = sessiondto.StatusOutput{Tracking: true, ElapsedSeconds: 30, TotalSecondsToday: 90}

	msg, ok := m.refreshCmd()().(refreshedMsg)
	if !ok || msg.err != nil {
		t.Fatalf("unexpected refresh result %+v", msg)
	}
	if f.session.statusLoc != time.UTC {
		t.Fatalf("status asked in %v, want the settings zone UTC", f.session.statusLoc)
	}
	if msg.progress.TotalSeconds != 90 {
		t.Fatalf("progress total = %d, want 90", msg.progress.TotalSeconds)
	}
}

func TestIdleWithoutSessionResetsSilently(t *testing.T) {
	t.Parallel()
	m, f := newFixture()
	f.idle.state = idledto.StateOutput{Idle: true}

	m = step(t, m, m.refreshCmd()())
	if m.idlePrompt() {
		t.Fatalf("no prompt without a running session")
	}
	if len(f.idle.resolved) != 1 || f.idle.resolved[0] != "resume" {
		t.Fatalf("resolved = %v, want [resume]", f.idle.resolved)
	}
}

func TestStartFormSubmitsClampedOffset(t *testing.T) {
	t.Parallel()
	m, f := newFixture()
	// Form keys go through send: the text inputs return cursor blink
	// commands that would block.
	m, _ = send(m, keyMsg("s"))
	if !m.form.Visible() {
		t.Fatalf("s should open the start form")
	}
	m, _ = send(m, keyMsg("Deep work"))
	m, _ = send(m, keyMsg("tab"))
	m, _ = send(m, keyMsg("tab"))
	m, _ = send(m, keyMsg("500"))
	m, cmd := send(m, keyMsg("enter"))
	if m.form.Visible() || cmd == nil {
		t.Fatalf("form should close and submit on enter")
	}
	submit, ok := cmd().(components.StartSubmitMsg)
	if !ok || submit.OffsetMinutes != 180 {
		t.Fatalf("unexpected submit %+v", submit)
	}
	_ = step(t, m, submit)
	if len(f.session.started) != 1 || f.session.started[0].Title != "Deep work" {
		t.Fatalf("started = %+v", f.session.started)
	}
}

func TestHistoryKeysSwitchViews(t *testing.T) {
	t.Parallel()
	m, f := newFixture()
	m = step(t, m, m.loadReportCmd()())
	m = step(t, m, keyMsg("tab"))
	m = step(t, m, keyMsg("w"))
	if got := m.hist.Report().View; got != "week" {
		t.Fatalf("view = %q, want week", got)
	}
	m = step(t, m, keyMsg("y"))
	_ = step(t, m, keyMsg("enter"))
	if f.history.views[0] != "month" {
		t.Fatalf("history should open on the month view, got %v", f.history.views)
	}
}
