package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha.
var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Overlay0 = lipgloss.Color("#6c7086")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Yellow   = lipgloss.Color("#f9e2af")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(0, 1)

	PaneActive = Pane.BorderForeground(Lavender)

	Modal = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Peach).
		Background(Mantle).
		Foreground(Text).
		Padding(1, 2)

	Title   = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted   = lipgloss.NewStyle().Foreground(Subtext0)
	Hot     = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Running = lipgloss.NewStyle().Foreground(Green).Bold(true)
	Danger  = lipgloss.NewStyle().Foreground(Red).Bold(true)

	// BigClock renders the elapsed timer on the tracker tab.
	BigClock = lipgloss.NewStyle().Foreground(Text).Bold(true).Padding(0, 1)

	BarFilled = lipgloss.NewStyle().Foreground(Green)
	BarEmpty  = lipgloss.NewStyle().Foreground(Surface1)

	BlockDone   = lipgloss.NewStyle().Foreground(Sapphire)
	BlockActive = lipgloss.NewStyle().Foreground(Green)
	BlockEmpty  = lipgloss.NewStyle().Foreground(Surface0)

	CellOutside = lipgloss.NewStyle().Foreground(Overlay0)
	CellToday   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
)

// Heat picks a foreground for a day total relative to the daily target.
func Heat(totalSeconds int64, targetHours float64) lipgloss.Style {
	if totalSeconds <= 0 || targetHours <= 0 {
		return Muted
	}
	ratio := float64(totalSeconds) / (targetHours * 3600)
	switch {
	case ratio >= 1:
		return lipgloss.NewStyle().Foreground(Green).Bold(true)
	case ratio >= 0.5:
		return lipgloss.NewStyle().Foreground(Yellow)
	default:
		return lipgloss.NewStyle().Foreground(Peach)
	}
}
