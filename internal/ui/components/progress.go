package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdash/internal/ui/theme"
)

// lowTimeSeconds is when the timer switches to its warning colors.
const lowTimeSeconds = 10

// TimerBar shows the seconds left in a round as a draining bar.
type TimerBar struct {
	Remaining int
	Total     int
	Width     int
}

// NewTimerBar creates a timer bar.
func NewTimerBar(remaining, total, width int) TimerBar {
	return TimerBar{
		Remaining: remaining,
		Total:     total,
		Width:     width,
	}
}

// Low reports whether the round is about to run out.
func (t TimerBar) Low() bool {
	return t.Remaining <= lowTimeSeconds
}

// Filled returns how many cells of a bar of barWidth are filled.
func (t TimerBar) Filled(barWidth int) int {
	if t.Total <= 0 || barWidth <= 0 {
		return 0
	}
	filled := barWidth * t.Remaining / t.Total
	return min(max(filled, 0), barWidth)
}

// View renders the bar followed by the remaining seconds.
func (t TimerBar) View() string {
	label := fmt.Sprintf("  %2ds", t.Remaining)
	barWidth := max(t.Width-lipgloss.Width(label), 4)
	filled := t.Filled(barWidth)

	fill, text := theme.ProgressFilled, theme.Timer
	if t.Low() {
		fill, text = theme.ProgressLow, theme.TimerLow
	}

	return fill.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		text.Render(label)
}
