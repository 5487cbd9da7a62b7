package components

import (
	"strings"
	"time"

	"worktime/internal/platform/timefmt"
	"worktime/internal/ui/theme"
)

// IdleView renders the prompt shown once the watchdog flags the user idle.
// Key handling stays with the caller so resolution goes through its ports.
func IdleView(lastActive time.Time, idleFor time.Duration, title, format string, loc *time.Location) string {
	var sb strings.Builder
	sb.WriteString(theme.Hot.Render("Are you still there?") + "\n\n")
	if title != "" {
		sb.WriteString(theme.Muted.Render("session  ") + title + "\n")
	}
	sb.WriteString(theme.Muted.Render("idle     ") + timefmt.Clock(int64(idleFor/time.Second)) + "\n")
	sb.WriteString(theme.Muted.Render("since    ") + timefmt.TimeOfDay(lastActive, format, loc) + "\n\n")
	sb.WriteString(theme.Running.Render("r") + " resume   ")
	sb.WriteString(theme.Hot.Render("s") + " stop at " + timefmt.TimeOfDay(lastActive, format, loc) + "   ")
	sb.WriteString(theme.Danger.Render("d") + " discard")
	return theme.Modal.Render(sb.String())
}
