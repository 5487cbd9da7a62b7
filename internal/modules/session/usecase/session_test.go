package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	sessionhandler "worktime/internal/modules/session/adapter/in"
	sessionout "worktime/internal/modules/session/adapter/out"
	sessionin "worktime/internal/modules/session/port/in"
	"worktime/internal/modules/session/service"
	"worktime/internal/modules/session/usecase"
	"worktime/internal/platform/clock/clocktest"
	apperrors "worktime/internal/platform/errors"
	"worktime/internal/platform/kv"
)

type fakeID struct{ n int }

func (f *fakeID) New() string {
	f.n++
	return []string{"sess-1", "sess-2", "sess-3", "sess-4"}[f.n-1]
}

func newInteractor(t *testing.T, now time.Time) (*clocktest.Fake, *usecaseUnderTest) {
	t.Helper()
	clk := clocktest.New(now)
	repo := sessionout.NewKVSessionStore(kv.NewMemoryStore())
	svc := service.NewSessionService(clk, &fakeID{}, repo, repo, nil)
	if err := svc.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	t.Cleanup(svc.Close)
	uc := usecase.NewInteractor(svc, clk)
	return clk, &usecaseUnderTest{uc: uc, cli: sessionhandler.NewCLIHandler(uc)}
}

type usecaseUnderTest struct {
	uc  sessionin.Usecase
	cli sessionhandler.CLIHandler
}

func TestLifecycleStatusAndToday(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk, sut := newInteractor(t, time.Date(2026, 10, 14, 23, 50, 0, 0, time.Local))

	start, err := sut.cli.Start(ctx, "Write report", "quarterly", 5)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !start.Active || start.ID != "sess-1" {
		t.Fatalf("unexpected start output %+v", start)
	}

	clk.Advance(2 * time.Second)
	status, err := sut.uc.Status(ctx, nil)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.Tracking || status.Active.Title != "Write report" || status.ElapsedSeconds != 302 {
		t.Fatalf("unexpected status %+v", status)
	}
	if len(status.TodaySessions) != 0 {
		t.Fatalf("active session must not count as completed today")
	}
	if status.TotalSecondsToday != 302 {
		t.Fatalf("today total must include the running session, got %d", status.TotalSecondsToday)
	}

	stop, err := sut.cli.Stop(ctx)
	if err != nil || !stop.Recorded {
		t.Fatalf("stop: %+v err=%v", stop, err)
	}
	if stop.Session.DurationSeconds != 302 || stop.Session.EndedAt.IsZero() {
		t.Fatalf("unexpected stop output %+v", stop.Session)
	}

	status, _ = sut.uc.Status(ctx, nil)
	if status.Tracking || len(status.TodaySessions) != 1 || status.TotalSecondsToday != 302 {
		t.Fatalf("expected one session today, got %+v", status)
	}

	clk.Advance(15 * time.Minute)
	status, _ = sut.uc.Status(ctx, nil)
	if len(status.TodaySessions) != 0 || status.TotalSecondsToday != 0 {
		t.Fatalf("yesterday's session must drop out of today, got %+v", status)
	}
}

func TestTodayTotalAddsRunningSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk, sut := newInteractor(t, time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))
	if _, err := sut.cli.Start(ctx, "a", "", 0); err != nil {
		t.Fatalf("start a: %v", err)
	}
	clk.Advance(time.Minute)
	if _, err := sut.cli.Stop(ctx); err != nil {
		t.Fatalf("stop a: %v", err)
	}
	if _, err := sut.cli.Start(ctx, "b", "", 0); err != nil {
		t.Fatalf("start b: %v", err)
	}
	clk.Advance(30 * time.Second)

	status, err := sut.uc.Status(ctx, nil)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.Tracking || status.ElapsedSeconds != 30 || status.TotalSecondsToday != 90 {
		t.Fatalf("expected 60+30 seconds today while tracking, got %+v", status)
	}
	if len(status.TodaySessions) != 1 {
		t.Fatalf("only completed sessions are listed, got %d", len(status.TodaySessions))
	}
}

func TestStatusUsesRequestedLocation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	// 22:30 UTC on the 14th is already the 15th in Tokyo.
	clk, sut := newInteractor(t, time.Date(2026, 10, 14, 22, 30, 0, 0, time.UTC))
	if _, err := sut.cli.Start(ctx, "late", "", 0); err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.Advance(10 * time.Minute)
	if _, err := sut.cli.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}

	if status, _ := sut.uc.Status(ctx, time.UTC); len(status.TodaySessions) != 1 || status.TotalSecondsToday != 600 {
		t.Fatalf("expected the session today in UTC, got %+v", status)
	}
	tokyo := time.FixedZone("JST", 9*3600)
	clk.Advance(2 * time.Hour)
	// 00:40 UTC on the 15th.
	if status, _ := sut.uc.Status(ctx, tokyo); len(status.TodaySessions) != 1 {
		t.Fatalf("expected the session today in JST, got %+v", status)
	}
	if status, _ := sut.uc.Status(ctx, time.UTC); len(status.TodaySessions) != 0 {
		t.Fatalf("session belongs to yesterday in UTC, got %+v", status)
	}
}

func TestStopAtBeforeStartReportsDiscard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, sut := newInteractor(t, time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))
	start, err := sut.cli.Start(ctx, "Plan", "", 0)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	out, err := sut.uc.StopAt(ctx, start.StartedAt.Add(-time.Second))
	if err != nil {
		t.Fatalf("stop at: %v", err)
	}
	if out.Recorded || !out.Discarded || out.Session.ID != start.ID {
		t.Fatalf("expected discard report, got %+v", out)
	}
	if list, _ := sut.cli.List(ctx); len(list) != 0 {
		t.Fatalf("discarded session must not be recorded")
	}
}

func TestEditAppliesPartialFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk, sut := newInteractor(t, time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))
	if _, err := sut.cli.Start(ctx, "Draft", "first pass", 0); err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.Advance(10 * time.Minute)
	if _, err := sut.cli.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}

	title := "Final draft"
	end := time.Date(2026, 10, 14, 9, 45, 30, 0, time.UTC)
	edited, err := sut.cli.Edit(ctx, "sess-1", &title, nil, nil, &end)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.Title != "Final draft" || edited.Description != "first pass" || edited.DurationSeconds != 45*60+30 {
		t.Fatalf("unexpected edited session %+v", edited)
	}

	early := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	if _, err := sut.cli.Edit(ctx, "sess-1", nil, nil, nil, &early); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("end before start must fail, got %v", err)
	}
	if _, err := sut.cli.Edit(ctx, "nope", &title, nil, nil, nil); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown id must be not found, got %v", err)
	}
}

func TestListRangeAndImportCounts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, sut := newInteractor(t, time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))
	payload := []byte(`[
		{"id":"x","title":"Mon","startTime":1791882000000,"endTime":1791885600000,"durationSeconds":3600},
		{"id":"y","title":"Tue","startTime":1791968400000,"durationSeconds":1800},
		{"id":"x","title":"dup","startTime":1791882000000,"durationSeconds":1}
	]`)
	out, err := sut.cli.Import(ctx, payload)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if out.Imported != 2 || out.Skipped != 1 {
		t.Fatalf("unexpected import counts %+v", out)
	}
	from := time.UnixMilli(1791968400000)
	ranged, err := sut.cli.ListRange(ctx, from, from.Add(time.Hour))
	if err != nil || len(ranged) != 1 || ranged[0].ID != "y" {
		t.Fatalf("expected only y in range, got %+v err=%v", ranged, err)
	}
	if _, err := sut.cli.ListRange(ctx, from, from.Add(-time.Hour)); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("inverted range must fail, got %v", err)
	}
	if _, err := sut.cli.Import(ctx, []byte(`{}`)); !errors.Is(err, apperrors.ErrMalformedImport) {
		t.Fatalf("expected malformed import, got %v", err)
	}
	exported, err := sut.cli.Export(ctx)
	if err != nil || len(exported) == 0 {
		t.Fatalf("export: %v", err)
	}
	if ok, err := sut.cli.Delete(ctx, "x"); err != nil || !ok {
		t.Fatalf("delete: ok=%t err=%v", ok, err)
	}
	if discarded, err := sut.cli.Discard(ctx); err != nil || discarded {
		t.Fatalf("discard with nothing active should be a no-op")
	}
}
