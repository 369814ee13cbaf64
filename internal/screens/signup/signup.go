package signup

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdash/internal/profile"
	"github.com/abhisek/mathdash/internal/router"
	"github.com/abhisek/mathdash/internal/screen"
	"github.com/abhisek/mathdash/internal/ui/components"
	"github.com/abhisek/mathdash/internal/ui/layout"
	"github.com/abhisek/mathdash/internal/ui/theme"
)

// Creator registers new users.
type Creator interface {
	CreateUser(ctx context.Context, name string) error
}

// SignupScreen creates a new player and returns to the login screen.
type SignupScreen struct {
	creator    Creator
	onCreated  func(name string)
	inactivity int
	input      components.TextInput
	created    string
	errMsg     string
}

var _ screen.Screen = (*SignupScreen)(nil)
var _ screen.KeyHintProvider = (*SignupScreen)(nil)

// New creates a SignupScreen. onCreated, if set, receives the new
// username when the player confirms the welcome message. inactivityDays
// is quoted in that message.
func New(creator Creator, inactivityDays int, onCreated func(name string)) *SignupScreen {
	return &SignupScreen{
		creator:    creator,
		onCreated:  onCreated,
		inactivity: inactivityDays,
		input:      components.NewTextInput("3-15 letters or digits", true, profile.MaxUsernameLength),
	}
}

func (s *SignupScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *SignupScreen) Title() string {
	return "New Player"
}

func (s *SignupScreen) KeyHints() []layout.KeyHint {
	if s.created != "" {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Back to log in"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Create"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SignupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		if s.created != "" {
			return s, s.done()
		}
		return s.submit()
	}

	if s.created != "" {
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SignupScreen) submit() (screen.Screen, tea.Cmd) {
	s.errMsg = ""
	name := s.input.Value()
	if err := s.creator.CreateUser(context.Background(), name); err != nil {
		s.errMsg = profile.Message(err)
		return s, nil
	}
	s.created = name
	return s, nil
}

func (s *SignupScreen) done() tea.Cmd {
	if s.onCreated != nil {
		s.onCreated(s.created)
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *SignupScreen) View(width, height int) string {
	var b strings.Builder

	if s.created != "" {
		b.WriteString(theme.Title.Render(fmt.Sprintf("Welcome, %s!", s.created)))
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Render("Your account has been created."))
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf(
			"If you do not play for %d days or more, this username will be archived.", s.inactivity)))
	} else {
		b.WriteString(theme.Title.Render("Pick a username"))
		b.WriteString("\n\n")
		b.WriteString(s.input.View())
		if s.errMsg != "" {
			b.WriteString("\n\n")
			b.WriteString(theme.ErrorText.Render(s.errMsg))
		}
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 3).
		Width(min(width-4, 56)).
		Render(b.String())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
