package login

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdash/internal/profile"
	"github.com/abhisek/mathdash/internal/router"
	"github.com/abhisek/mathdash/internal/screen"
	"github.com/abhisek/mathdash/internal/screens/nav"
	"github.com/abhisek/mathdash/internal/ui/components"
	"github.com/abhisek/mathdash/internal/ui/layout"
	"github.com/abhisek/mathdash/internal/ui/theme"
)

// Profiles is the part of profile.Service the login screen needs.
type Profiles interface {
	Login(ctx context.Context, name string) error
	Users(ctx context.Context) ([]profile.Entry, error)
}

// LoginScreen asks for a username and logs it in.
type LoginScreen struct {
	profiles Profiles
	signup   func(prefill func(string)) screen.Screen
	input    components.TextInput
	players  []string
	errMsg   string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen. signup builds the account creation screen;
// it receives a callback that fills in the created username on return.
func New(profiles Profiles, signup func(prefill func(string)) screen.Screen) *LoginScreen {
	return &LoginScreen{
		profiles: profiles,
		signup:   signup,
		input:    components.NewTextInput("username", true, profile.MaxUsernameLength),
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	s.loadPlayers()
	return s.input.Init()
}

func (s *LoginScreen) Title() string {
	return "Log In"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Log in"},
		{Key: "Tab", Description: "New player"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// loadPlayers lists active usernames as a reminder under the input.
func (s *LoginScreen) loadPlayers() {
	entries, err := s.profiles.Users(context.Background())
	if err != nil {
		s.errMsg = profile.Message(err)
		return
	}
	s.players = s.players[:0]
	for _, e := range entries {
		if !e.Archived {
			s.players = append(s.players, e.Name)
		}
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			return s.submit()
		case "tab":
			s.errMsg = ""
			next := s.signup(s.prefill)
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *LoginScreen) submit() (screen.Screen, tea.Cmd) {
	s.errMsg = ""
	if err := s.profiles.Login(context.Background(), s.input.Value()); err != nil {
		s.errMsg = profile.Message(err)
		// Archival happens during login, so the list may have shrunk.
		s.loadPlayers()
		return s, nil
	}
	return s, nav.To(nav.ModeSelect)
}

// prefill sets the input, used after a successful signup.
func (s *LoginScreen) prefill(name string) {
	s.input.Model.SetValue(name)
	s.input.Model.CursorEnd()
	s.loadPlayers()
}

func (s *LoginScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Who's playing?"))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	if s.errMsg != "" {
		b.WriteString(theme.ErrorText.Render(s.errMsg))
		b.WriteString("\n\n")
	}

	if len(s.players) > 0 {
		b.WriteString(theme.Hint.Render("Players: " + strings.Join(s.players, ", ")))
	} else {
		b.WriteString(theme.Hint.Render("No players yet. Press Tab to create one."))
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 3).
		Width(min(width-4, 56)).
		Render(b.String())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
