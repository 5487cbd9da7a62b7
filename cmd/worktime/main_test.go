package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func run(t *testing.T, dataDir string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--data-dir", dataDir}, args...))
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("worktime %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestTrackExportImportCycle(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	if out := run(t, dir, "start", "Write", "docs", "--offset", "5"); !strings.Contains(out, `started "Write docs"`) {
		t.Fatalf("unexpected start output %q", out)
	}
	// A second process sees the session persisted by the first.
	if out := run(t, dir, "status"); !strings.Contains(out, `tracking "Write docs"`) {
		t.Fatalf("unexpected status output %q", out)
	}
	if out := run(t, dir, "stop"); !strings.Contains(out, `recorded "Write docs": 00:05:`) {
		t.Fatalf("unexpected stop output %q", out)
	}
	if out := run(t, dir, "stop"); !strings.Contains(out, "no active session") {
		t.Fatalf("second stop should be a no-op, got %q", out)
	}

	exported := filepath.Join(t.TempDir(), "sessions.json")
	run(t, dir, "export", "--out", exported)
	raw, err := os.ReadFile(exported)
	if err != nil || !strings.Contains(string(raw), `"title": "Write docs"`) {
		t.Fatalf("unexpected export %s err=%v", raw, err)
	}

	other := t.TempDir()
	if out := run(t, other, "import", exported); !strings.Contains(out, "imported 1, skipped 0") {
		t.Fatalf("unexpected import output %q", out)
	}
	if out := run(t, other, "import", exported); !strings.Contains(out, "imported 0, skipped 1") {
		t.Fatalf("re-import should skip everything, got %q", out)
	}
	if out := run(t, other, "list"); !strings.Contains(out, "Write docs") {
		t.Fatalf("imported session missing from list: %q", out)
	}
}

func TestSettingsAndConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if out := run(t, dir, "settings", "set", "target-hours", "6"); !strings.Contains(out, "target hours: 6") {
		t.Fatalf("unexpected settings output %q", out)
	}
	if out := run(t, dir, "settings", "show"); !strings.Contains(out, "target hours: 6") || !strings.Contains(out, "timezone:     Local") {
		t.Fatalf("settings did not persist: %q", out)
	}
	out := run(t, dir, "config", "show")
	if !strings.Contains(out, "driver: file") || !strings.Contains(out, filepath.Join(dir, "store.json")) {
		t.Fatalf("unexpected config %q", out)
	}
}

func TestReportWritesNote(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	run(t, dir, "start", "Review")
	run(t, dir, "stop")

	note := filepath.Join(t.TempDir(), "today.md")
	if err := os.WriteFile(note, []byte("# Journal\n\nkept by hand\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := run(t, dir, "report", "--view", "day", "--note", note)
	if !strings.Contains(out, "1 sessions") {
		t.Fatalf("unexpected report output %q", out)
	}
	raw, err := os.ReadFile(note)
	if err != nil {
		t.Fatal(err)
	}
	body := string(raw)
	for _, want := range []string{"worktime_view: day", "kept by hand", "<!-- worktime:report:begin -->", "| Review |"} {
		if !strings.Contains(body, want) {
			t.Fatalf("note is missing %q:\n%s", want, body)
		}
	}
}

func TestParseTime(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("X", 2*3600)
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, loc)
	cases := map[string]time.Time{
		"2026-10-01":            time.Date(2026, 10, 1, 0, 0, 0, 0, loc),
		"2026-10-01 09:30":      time.Date(2026, 10, 1, 9, 30, 0, 0, loc),
		"2026-10-01T09:30":      time.Date(2026, 10, 1, 9, 30, 0, 0, loc),
		"08:15":                 time.Date(2026, 10, 14, 8, 15, 0, 0, loc),
		"2026-10-01T09:30:00Z":  time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC),
		" 2026-10-01 09:30:15 ": time.Date(2026, 10, 1, 9, 30, 15, 0, loc),
	}
	for in, want := range cases {
		got, err := parseTime(in, loc, now)
		if err != nil || !got.Equal(want) {
			t.Fatalf("parseTime(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := parseTime("yesterday", loc, now); err == nil {
		t.Fatalf("expected an error for free text")
	}
	if got := exportFileName(now); got != "worktime-2026-10-14.json" {
		t.Fatalf("unexpected export name %q", got)
	}
	if clampOffset(500) != 180 || clampOffset(-3) != 0 {
		t.Fatalf("offsets should clamp into 0..180")
	}
}
