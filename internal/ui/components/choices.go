package components

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdash/internal/ui/theme"
)

// ChoiceMsg reports the option the player picked.
type ChoiceMsg struct {
	Index int
}

// ChoiceList is a row of answer buttons. Number keys pick directly;
// arrows move the highlight and enter picks it.
type ChoiceList struct {
	Options  []string
	Selected int
}

// NewChoiceList creates a choice list with the first option highlighted.
func NewChoiceList(options []string) ChoiceList {
	return ChoiceList{Options: options}
}

// Update handles keyboard selection.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Options) == 0 {
		return c, nil
	}

	switch key := kmsg.String(); key {
	case "left", "up", "h", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "right", "down", "l", "j", "tab":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter", "space":
		return c, pick(c.Selected)
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(c.Options) {
			c.Selected = n - 1
			return c, pick(c.Selected)
		}
	}
	return c, nil
}

func pick(i int) tea.Cmd {
	return func() tea.Msg { return ChoiceMsg{Index: i} }
}

// View renders the options side by side.
func (c ChoiceList) View() string {
	buttons := make([]string, 0, len(c.Options))
	for i, opt := range c.Options {
		label := fmt.Sprintf("%d  %s", i+1, opt)
		style := lipgloss.NewStyle().
			Padding(0, 2).
			Margin(0, 1).
			Border(lipgloss.RoundedBorder())
		if i == c.Selected {
			style = style.
				Bold(true).
				Foreground(theme.Primary).
				BorderForeground(theme.Primary)
		} else {
			style = style.
				Foreground(theme.Text).
				BorderForeground(theme.Border)
		}
		buttons = append(buttons, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}
