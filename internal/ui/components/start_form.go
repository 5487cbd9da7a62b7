package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondomain "worktime/internal/modules/session/domain"
	"worktime/internal/ui/theme"
)

// StartSubmitMsg is emitted when the user confirms the start form.
type StartSubmitMsg struct {
	Title         string
	Description   string
	OffsetMinutes int
}

// StartCancelMsg is emitted when the user presses esc.
type StartCancelMsg struct{}

const (
	fieldTitle = iota
	fieldDescription
	fieldOffset
	fieldCount
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(theme.Subtext0).Width(13)
	hintStyle  = lipgloss.NewStyle().Foreground(theme.Overlay0)
)

// StartForm collects the title, description and back-dating offset of a
// new session. Tab and shift+tab move between fields.
type StartForm struct {
	inputs  [fieldCount]textinput.Model
	focus   int
	visible bool
	err     string
	width   int
}

func NewStartForm() StartForm {
	var f StartForm

	title := textinput.New()
	title.Placeholder = "what are you working on?"
	title.CharLimit = 200
	f.inputs[fieldTitle] = title

	desc := textinput.New()
	desc.Placeholder = "optional"
	desc.CharLimit = 1000
	f.inputs[fieldDescription] = desc

	offset := textinput.New()
	offset.Placeholder = "0"
	offset.CharLimit = 3
	offset.Validate = func(s string) error {
		if s == "" {
			return nil
		}
		_, err := strconv.Atoi(s)
		return err
	}
	f.inputs[fieldOffset] = offset
	return f
}

func (f StartForm) Visible() bool { return f.visible }

// Open shows the form with cleared fields and focuses the title.
func (f *StartForm) Open() tea.Cmd {
	f.visible = true
	f.err = ""
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = fieldTitle
	return f.inputs[fieldTitle].Focus()
}

func (f *StartForm) SetWidth(w int) { f.width = w }

func (f *StartForm) close() {
	f.visible = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

func (f *StartForm) move(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.inputs[f.focus].Focus()
}

func (f StartForm) Update(msg tea.Msg) (StartForm, tea.Cmd) {
	if !f.visible {
		return f, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			f.close()
			return f, func() tea.Msg { return StartCancelMsg{} }
		case "tab", "down":
			return f, f.move(1)
		case "shift+tab", "up":
			return f, f.move(-1)
		case "enter":
			title := strings.TrimSpace(f.inputs[fieldTitle].Value())
			if title == "" {
				f.err = "title is required"
				return f, nil
			}
			submit := StartSubmitMsg{
				Title:         title,
				Description:   strings.TrimSpace(f.inputs[fieldDescription].Value()),
				OffsetMinutes: ParseOffset(f.inputs[fieldOffset].Value()),
			}
			f.close()
			return f, func() tea.Msg { return submit }
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// ParseOffset reads a minutes value and clamps it into the allowed
// back-dating window. Anything unparsable counts as zero.
func ParseOffset(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return sessiondomain.ClampOffset(n)
}

func (f StartForm) View() string {
	if !f.visible {
		return ""
	}
	labels := [fieldCount]string{"Title", "Description", "Started ago"}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Start session") + "\n\n")
	for i, in := range f.inputs {
		label := labelStyle.Render(labels[i])
		if i == f.focus {
			label = labelStyle.Foreground(theme.Lavender).Render(labels[i])
		}
		line := label + " " + in.View()
		if i == fieldOffset {
			line += hintStyle.Render(" min (0-" + strconv.Itoa(sessiondomain.MaxStartOffsetMinutes) + ")")
		}
		sb.WriteString(line + "\n")
	}
	if f.err != "" {
		sb.WriteString("\n" + theme.Danger.Render(f.err) + "\n")
	}
	sb.WriteString("\n" + hintStyle.Render("tab: next field  enter: start  esc: cancel"))

	w := f.width
	if w < 20 {
		w = 64
	}
	return theme.Modal.Width(w - 2).Render(sb.String())
}
