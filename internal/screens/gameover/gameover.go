package gameover

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdash/internal/game"
	"github.com/abhisek/mathdash/internal/profile"
	"github.com/abhisek/mathdash/internal/screen"
	"github.com/abhisek/mathdash/internal/screens/nav"
	"github.com/abhisek/mathdash/internal/ui/components"
	"github.com/abhisek/mathdash/internal/ui/layout"
	"github.com/abhisek/mathdash/internal/ui/theme"
)

// GameOverScreen displays the result of a finished round.
type GameOverScreen struct {
	result  game.Result
	saveErr error
	menu    components.Menu
}

var _ screen.Screen = (*GameOverScreen)(nil)
var _ screen.KeyHintProvider = (*GameOverScreen)(nil)

// New creates a GameOverScreen. saveErr is the error, if any, from
// committing the score.
func New(result game.Result, saveErr error) *GameOverScreen {
	return &GameOverScreen{
		result:  result,
		saveErr: saveErr,
		menu: components.NewMenu([]components.MenuItem{
			{Label: "Play again", Action: func() tea.Cmd { return nav.To(nav.Game) }},
			{Label: "Change mode", Action: func() tea.Cmd { return nav.To(nav.ModeSelect) }},
		}),
	}
}

func (s *GameOverScreen) Init() tea.Cmd {
	return nil
}

func (s *GameOverScreen) Title() string {
	return "Time's Up"
}

func (s *GameOverScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Modes"},
	}
}

func (s *GameOverScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return s, nav.To(nav.ModeSelect)
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *GameOverScreen) View(width, height int) string {
	res := s.result
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	b.WriteString(center(theme.Title, "Time's up!"))
	b.WriteString("\n\n")

	b.WriteString(center(theme.Score, fmt.Sprintf("Score %d", res.Score)))
	b.WriteString("\n")
	b.WriteString(center(theme.Level, fmt.Sprintf("Reached level %d", res.Level)))
	b.WriteString("\n\n")

	switch {
	case s.saveErr != nil:
		b.WriteString(center(theme.ErrorText, "Your score could not be saved. "+profile.Message(s.saveErr)))
	case res.NewHighScore:
		b.WriteString(center(theme.Correct, fmt.Sprintf("New high score! (was %d)", res.PreviousHigh)))
	default:
		b.WriteString(center(theme.Hint, fmt.Sprintf("High score: %d", res.PreviousHigh)))
	}
	b.WriteString("\n\n")

	mode := res.Mode.Label()
	stats := fmt.Sprintf("Mode: %s        Answered: %d        Correct: %d        Accuracy: %.0f%%",
		mode, res.Answered, res.Correct, res.Accuracy()*100)
	b.WriteString(center(theme.Body, stats))
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))
	return b.String()
}
