package modeselect

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdash/internal/problemgen"
	"github.com/abhisek/mathdash/internal/profile"
	"github.com/abhisek/mathdash/internal/screen"
	"github.com/abhisek/mathdash/internal/screens/nav"
	"github.com/abhisek/mathdash/internal/ui/components"
	"github.com/abhisek/mathdash/internal/ui/layout"
	"github.com/abhisek/mathdash/internal/ui/theme"
)

// Profiles is the part of profile.Service the mode select screen needs.
type Profiles interface {
	CurrentUser(ctx context.Context) (string, profile.UserProfile, error)
	Mode(ctx context.Context) (problemgen.Category, error)
	SelectMode(ctx context.Context, cat problemgen.Category) error
	Logout(ctx context.Context) error
}

// ModeSelectScreen lists the categories and starts a round in the chosen one.
type ModeSelectScreen struct {
	profiles  Profiles
	navigator nav.Recorder
	menu      components.Menu
	user      string
	errMsg    string
}

var _ screen.Screen = (*ModeSelectScreen)(nil)
var _ screen.KeyHintProvider = (*ModeSelectScreen)(nil)

// New creates a ModeSelectScreen.
func New(profiles Profiles) *ModeSelectScreen {
	s := &ModeSelectScreen{profiles: profiles}

	cats := problemgen.Categories()
	items := make([]components.MenuItem, len(cats))
	for i, c := range cats {
		items[i] = components.MenuItem{
			Label:  c.Label,
			Action: s.choose(c.Category),
		}
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *ModeSelectScreen) Init() tea.Cmd {
	ctx := context.Background()

	name, _, err := s.profiles.CurrentUser(ctx)
	if err != nil {
		s.navigator.GoToLogin()
		return s.navigator.Take()
	}
	s.user = name

	// Start on the last mode played, if any.
	if mode, err := s.profiles.Mode(ctx); err == nil {
		for i, c := range problemgen.Categories() {
			if c.Category == mode {
				s.menu.Selected = i
			}
		}
	}
	return nil
}

func (s *ModeSelectScreen) Title() string {
	return "Choose a Mode"
}

func (s *ModeSelectScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Play"},
		{Key: "Esc", Description: "Log out"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *ModeSelectScreen) choose(cat problemgen.Category) func() tea.Cmd {
	return func() tea.Cmd {
		if err := s.profiles.SelectMode(context.Background(), cat); err != nil {
			s.errMsg = profile.Message(err)
			return nil
		}
		s.navigator.GoToGame()
		return s.navigator.Take()
	}
}

func (s *ModeSelectScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		if err := s.profiles.Logout(context.Background()); err != nil {
			s.errMsg = profile.Message(err)
			return s, nil
		}
		s.navigator.GoToLogin()
		return s, s.navigator.Take()
	}

	s.errMsg = ""
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ModeSelectScreen) View(width, height int) string {
	var b strings.Builder

	greeting := "Pick a mode"
	if s.user != "" {
		greeting = "Pick a mode, " + s.user
	}
	b.WriteString(theme.Title.Render(greeting))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
