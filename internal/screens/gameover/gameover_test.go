package gameover

import (
	"errors"
	"fmt"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathdash/internal/game"
	"github.com/abhisek/mathdash/internal/problemgen"
	"github.com/abhisek/mathdash/internal/profile"
	"github.com/abhisek/mathdash/internal/screens/nav"
)

func result(newHigh bool) game.Result {
	return game.Result{
		User:         "Ann",
		Mode:         problemgen.CategoryAdd,
		Score:        12,
		Level:        2,
		PreviousHigh: 10,
		NewHighScore: newHigh,
		Answered:     16,
		Correct:      12,
		Duration:     time.Minute,
	}
}

func TestViewNewHighScore(t *testing.T) {
	view := New(result(true), nil).View(100, 30)
	assert.Contains(t, view, "Score 12")
	assert.Contains(t, view, "Reached level 2")
	assert.Contains(t, view, "New high score! (was 10)")
	assert.Contains(t, view, "Accuracy: 75%")
	assert.Contains(t, view, "Addition")
}

func TestViewKeepsHighScore(t *testing.T) {
	res := result(false)
	res.Score = 3
	view := New(res, nil).View(100, 30)
	assert.Contains(t, view, "High score: 10")
	assert.NotContains(t, view, "New high score")
}

func TestViewSaveError(t *testing.T) {
	err := fmt.Errorf("finish round: %w", &profile.StorageError{Op: "save", Err: errors.New("disk full")})
	view := New(result(true), err).View(140, 30)
	assert.Contains(t, view, "Your score could not be saved.")
	assert.NotContains(t, view, "New high score")
}

func TestMenuNavigation(t *testing.T) {
	s := New(result(false), nil)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, nav.GoToMsg{Target: nav.Game}, cmd())

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, nav.GoToMsg{Target: nav.ModeSelect}, cmd())

	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, nav.GoToMsg{Target: nav.ModeSelect}, cmd())
}
