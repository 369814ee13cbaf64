package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdash/internal/ui/components"
	"github.com/abhisek/mathdash/internal/ui/theme"
)

// angleRadius is the ray length of the angle drawing, in rows.
const angleRadius = 6

func (s *GameScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.session.Problem == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Getting ready..."))
	}

	var b strings.Builder

	b.WriteString(s.renderHUD(width))
	b.WriteString("\n")
	b.WriteString(components.NewTimerBar(s.timer, s.engine.RoundSeconds(), width-4).View())
	b.WriteString("\n\n")

	body := []string{s.renderProblem(), "", s.list.View()}
	if fb := s.renderFeedback(); fb != "" {
		body = append(body, "", fb)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width-4, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, body...)))

	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

func (s *GameScreen) renderHUD(width int) string {
	left := theme.Score.Render(fmt.Sprintf("Score %d", s.score)) +
		"   " +
		theme.Level.Render(fmt.Sprintf("Level %d", s.level))

	right := theme.Hint.Render(fmt.Sprintf("Best %d", s.session.HighScore))

	gap := max(width-4-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (s *GameScreen) renderProblem() string {
	if s.visual != nil {
		canvas := lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Render(components.AngleCanvas(s.visual.Degrees, angleRadius))
		return lipgloss.JoinVertical(lipgloss.Center,
			canvas, "", theme.Body.Render("What kind of angle is this?"))
	}
	return theme.Prompt.Render(s.prompt + " = ?")
}

func (s *GameScreen) renderFeedback() string {
	if s.last == nil {
		return ""
	}
	if s.last.Correct {
		msg := "Correct!"
		if s.last.LevelUp {
			msg = fmt.Sprintf("Correct! Level %d!", s.level)
		}
		return theme.Correct.Render(msg)
	}
	return theme.Incorrect.Render("Not quite. The answer was " + s.last.Answer + ".")
}

func renderError(width, height int, msg string) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.ErrorText.Render(msg),
		"",
		theme.Hint.Render("press any key to continue"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
