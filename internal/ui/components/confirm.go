package components

import (
	tea "github.com/charmbracelet/bubbletea"

	"worktime/internal/ui/theme"
)

// ConfirmMsg carries the answer to a Confirm prompt.
type ConfirmMsg struct {
	Action string
	OK     bool
}

// Confirm is a y/n prompt. Any key other than y answers no.
type Confirm struct {
	action  string
	prompt  string
	visible bool
}

func (c Confirm) Visible() bool { return c.visible }

func (c *Confirm) Ask(action, prompt string) {
	c.action = action
	c.prompt = prompt
	c.visible = true
}

func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	if !c.visible {
		return c, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	answer := ConfirmMsg{Action: c.action, OK: key.String() == "y" || key.String() == "Y"}
	c.visible = false
	return c, func() tea.Msg { return answer }
}

func (c Confirm) View() string {
	if !c.visible {
		return ""
	}
	return theme.Modal.Render(theme.Hot.Render(c.prompt) + "\n\n" + theme.Muted.Render("y: yes  any other key: no"))
}
