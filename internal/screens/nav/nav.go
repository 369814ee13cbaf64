// Package nav carries navigation requests from screens to the app model.
// Screens name where to go; the app builds the screen and resets the
// router onto it, so screens never import each other in a cycle.
package nav

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathdash/internal/game"
)

// Target names a top-level screen.
type Target int

const (
	Login Target = iota
	ModeSelect
	Game
)

func (t Target) String() string {
	switch t {
	case Login:
		return "login"
	case ModeSelect:
		return "mode-select"
	case Game:
		return "game"
	default:
		return "unknown"
	}
}

// GoToMsg asks the app to replace the screen stack with Target.
type GoToMsg struct {
	Target Target
}

// PlayerChangedMsg asks the app to reload the header's player details.
type PlayerChangedMsg struct{}

// To returns a command that emits GoToMsg for t.
func To(t Target) tea.Cmd {
	return func() tea.Msg { return GoToMsg{Target: t} }
}

// PlayerChanged returns a command that emits PlayerChangedMsg.
func PlayerChanged() tea.Cmd {
	return func() tea.Msg { return PlayerChangedMsg{} }
}

// Recorder implements game.Navigator for a screen. The game engine and the
// mode select screen call it synchronously; the screen hands the pending
// command to bubbletea with Take.
type Recorder struct {
	pending tea.Cmd
}

var _ game.Navigator = (*Recorder)(nil)

func (r *Recorder) GoToLogin()      { r.pending = To(Login) }
func (r *Recorder) GoToModeSelect() { r.pending = To(ModeSelect) }
func (r *Recorder) GoToGame()       { r.pending = To(Game) }

// Take returns the last requested transition, if any, and clears it.
func (r *Recorder) Take() tea.Cmd {
	cmd := r.pending
	r.pending = nil
	return cmd
}
