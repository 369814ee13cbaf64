package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput wraps bubbles/textinput for single-line entry such as
// usernames.
type TextInput struct {
	Model        textinput.Model
	AlphaNumeric bool
}

// NewTextInput creates a focused text input. limit caps the rune count
// when positive.
func NewTextInput(placeholder string, alphaNumeric bool, limit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if limit > 0 {
		ti.CharLimit = limit
	}

	return TextInput{
		Model:        ti,
		AlphaNumeric: alphaNumeric,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. With AlphaNumeric set, single printable keys
// outside [A-Za-z0-9] are dropped.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.AlphaNumeric {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok {
			if key := kmsg.String(); len(key) == 1 && !isAlphaNumeric(key[0]) {
				return t, nil
			}
			if kmsg.String() == "space" {
				return t, nil
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	return t.Model.View()
}

// Value returns the trimmed input value.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// Reset clears the input.
func (t *TextInput) Reset() {
	t.Model.Reset()
}

func isAlphaNumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
