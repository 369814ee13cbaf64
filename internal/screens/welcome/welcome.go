package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdash/internal/router"
	"github.com/abhisek/mathdash/internal/screen"
	"github.com/abhisek/mathdash/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 500 * time.Millisecond
	taglineAt    = 1200 * time.Millisecond
	totalDur     = 2000 * time.Millisecond
)

// operators scroll across the top of the splash, one highlighted per tick.
var operators = []string{"+", "−", "×", "÷", "½", "∠"}

type tickMsg time.Time

// WelcomeScreen shows a splash animation and hands over to the screen
// produced by next on the first key press.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by next.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		// Any key skips the rest of the animation.
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, w.renderOperators())

	if w.elapsed >= bannerAt {
		sections = append(sections, "", RenderBanner(width))
	}

	if w.elapsed >= taglineAt {
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Sixty seconds. How far can you go?")
		hint := theme.Hint.Render("press any key to continue")
		sections = append(sections, "", tagline, "", hint)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (w *WelcomeScreen) renderOperators() string {
	lit := w.tickCount % len(operators)
	parts := make([]string, len(operators))
	for i, op := range operators {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if i == lit {
			style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
		}
		parts[i] = style.Render(op)
	}
	return strings.Join(parts, "   ")
}
