package play

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathdash/internal/game"
	"github.com/abhisek/mathdash/internal/problemgen"
	"github.com/abhisek/mathdash/internal/profile"
	"github.com/abhisek/mathdash/internal/router"
	"github.com/abhisek/mathdash/internal/screen"
	"github.com/abhisek/mathdash/internal/screens/gameover"
	"github.com/abhisek/mathdash/internal/screens/nav"
	"github.com/abhisek/mathdash/internal/ui/components"
	"github.com/abhisek/mathdash/internal/ui/layout"
)

// tickMsg is the one-second round clock. It carries the session ID so a
// tick scheduled by an earlier round is ignored.
type tickMsg struct {
	session string
}

func tick(session string) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{session: session}
	})
}

// GameScreen runs one timed round. It renders what the engine reports
// through the game.Observer methods and feeds key presses and clock ticks
// back into the engine.
type GameScreen struct {
	engine  *game.Engine
	nav     nav.Recorder
	session game.Session

	prompt  string
	visual  *problemgen.Visual
	choices []problemgen.Choice
	list    components.ChoiceList
	score   int
	level   int
	timer   int
	last    *game.Outcome

	errMsg  string
	onError tea.Cmd
}

var _ screen.Screen = (*GameScreen)(nil)
var _ screen.KeyHintProvider = (*GameScreen)(nil)
var _ game.Observer = (*GameScreen)(nil)

// New creates a GameScreen. opts configure the engine; the screen adds
// itself as observer and navigator.
func New(profiles game.Profiles, problems game.Problems, opts ...game.Option) *GameScreen {
	s := &GameScreen{}
	opts = append(opts, game.WithObserver(s), game.WithNavigator(&s.nav))
	s.engine = game.NewEngine(profiles, problems, opts...)
	return s
}

func (s *GameScreen) Init() tea.Cmd {
	sess, err := s.engine.Start(context.Background())
	if err != nil {
		return s.fail(err)
	}
	s.session = sess
	return tick(sess.ID)
}

func (s *GameScreen) Title() string {
	if s.session.Mode != "" {
		return s.session.Mode.Label()
	}
	return "Game"
}

func (s *GameScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-3", Description: "Answer"},
		{Key: "←→", Description: "Move"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Esc", Description: "Quit round"},
	}
}

// fail shows err and remembers where the engine asked to go next.
func (s *GameScreen) fail(err error) tea.Cmd {
	s.errMsg = profile.Message(err)
	s.onError = s.nav.Take()
	if s.onError == nil {
		s.onError = nav.To(nav.ModeSelect)
	}
	return nil
}

func (s *GameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s.handleTick(msg)

	case components.ChoiceMsg:
		return s.handleChoice(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *GameScreen) handleTick(msg tickMsg) (screen.Screen, tea.Cmd) {
	if msg.session != s.session.ID || s.session.State != game.StatePlaying {
		return s, nil
	}

	sess, err := s.engine.Tick(s.session)
	if err != nil {
		return s, s.fail(err)
	}
	s.session = sess

	if sess.State != game.StateEnded {
		return s, tick(sess.ID)
	}
	return s, s.finish()
}

// finish commits the round and swaps in the game over screen. A failed
// commit is shown there; the result itself is still valid.
func (s *GameScreen) finish() tea.Cmd {
	res, err := s.engine.Finish(context.Background(), s.session)
	over := gameover.New(res, err)
	return tea.Batch(
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: over} },
		nav.PlayerChanged(),
	)
}

func (s *GameScreen) handleChoice(msg components.ChoiceMsg) (screen.Screen, tea.Cmd) {
	if s.session.State != game.StatePlaying || msg.Index < 0 || msg.Index >= len(s.choices) {
		return s, nil
	}

	sess, out, err := s.engine.Submit(s.session, s.choices[msg.Index].Value)
	s.session = sess
	if err != nil {
		return s, s.fail(err)
	}
	s.last = &out
	return s, nil
}

func (s *GameScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, s.onError
	}

	if msg.String() == "esc" {
		s.session = s.engine.Abandon(s.session)
		return s, nav.To(nav.ModeSelect)
	}

	if s.session.State != game.StatePlaying {
		return s, nil
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *GameScreen) RenderProblem(prompt string, visual *problemgen.Visual) {
	s.prompt = prompt
	s.visual = visual
}

func (s *GameScreen) RenderChoices(choices []problemgen.Choice) {
	s.choices = choices
	labels := make([]string, len(choices))
	for i, c := range choices {
		labels[i] = c.Label
	}
	s.list = components.NewChoiceList(labels)
}

func (s *GameScreen) RenderScore(score int)   { s.score = score }
func (s *GameScreen) RenderLevel(level int)   { s.level = level }
func (s *GameScreen) RenderTimer(seconds int) { s.timer = seconds }
