package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathdash/internal/problemgen"
	"github.com/abhisek/mathdash/internal/profile"
)

// ErrNotPlaying is returned when a transition is applied to a session in
// the wrong state.
var ErrNotPlaying = errors.New("session is not in a playable state")

// Profiles is the part of profile.Service the engine needs.
type Profiles interface {
	CurrentUser(ctx context.Context) (string, profile.UserProfile, error)
	Mode(ctx context.Context) (problemgen.Category, error)
	CommitScore(ctx context.Context, name string, score int) (bool, error)
}

// Problems produces the next problem for a category and level.
// *problemgen.Dispatcher satisfies it.
type Problems interface {
	Next(cat problemgen.Category, level int) (*problemgen.Problem, error)
}

// Observer is told about every visible change of a round.
type Observer interface {
	RenderProblem(prompt string, visual *problemgen.Visual)
	RenderChoices(choices []problemgen.Choice)
	RenderScore(score int)
	RenderLevel(level int)
	RenderTimer(seconds int)
}

// Navigator moves the player between screens.
type Navigator interface {
	GoToLogin()
	GoToModeSelect()
	GoToGame()
}

// NopObserver ignores every render call.
type NopObserver struct{}

func (NopObserver) RenderProblem(string, *problemgen.Visual) {}
func (NopObserver) RenderChoices([]problemgen.Choice)        {}
func (NopObserver) RenderScore(int)                          {}
func (NopObserver) RenderLevel(int)                          {}
func (NopObserver) RenderTimer(int)                          {}

// NopNavigator ignores every navigation request.
type NopNavigator struct{}

func (NopNavigator) GoToLogin()      {}
func (NopNavigator) GoToModeSelect() {}
func (NopNavigator) GoToGame()       {}

// Engine drives rounds. It holds no per-round state; sessions are values
// passed in and returned by each transition.
type Engine struct {
	profiles  Profiles
	problems  Problems
	observer  Observer
	navigator Navigator
	seconds   int
	now       func() time.Time
	log       *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver sets the render target.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithNavigator sets the screen navigator.
func WithNavigator(n Navigator) Option {
	return func(e *Engine) { e.navigator = n }
}

// WithRoundSeconds overrides the round length.
func WithRoundSeconds(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.seconds = n
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the logger for round events.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine creates an Engine.
func NewEngine(profiles Profiles, problems Problems, opts ...Option) *Engine {
	e := &Engine{
		profiles:  profiles,
		problems:  problems,
		observer:  NopObserver{},
		navigator: NopNavigator{},
		seconds:   DefaultRoundSeconds,
		now:       time.Now,
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RoundSeconds returns the configured round length.
func (e *Engine) RoundSeconds() int {
	return e.seconds
}

// Start begins a round for the logged-in user in the selected mode.
// Without a valid user the navigator is sent to login; without a mode it
// is sent to mode select. Either way the returned session is idle.
func (e *Engine) Start(ctx context.Context) (Session, error) {
	user, p, err := e.profiles.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, profile.ErrNoActiveSession) {
			e.navigator.GoToLogin()
		}
		return Session{}, fmt.Errorf("start round: %w", err)
	}

	mode, err := e.profiles.Mode(ctx)
	if err != nil {
		if errors.Is(err, profile.ErrNoModeSelected) {
			e.navigator.GoToModeSelect()
		}
		return Session{}, fmt.Errorf("start round: %w", err)
	}

	s := Session{
		ID:            uuid.New().String(),
		User:          user,
		HighScore:     p.HighScore,
		Mode:          mode,
		State:         StateLoading,
		Level:         LevelFor(0),
		TimeRemaining: e.seconds,
		StartedAt:     e.now(),
	}

	problem, err := e.problems.Next(mode, s.Level)
	if err != nil {
		return e.abort(s, err)
	}
	s.Problem = problem
	s.State = StatePlaying

	e.log.Info("round started", "session", s.ID, "user", s.User, "mode", s.Mode)

	e.renderProblem(s)
	e.observer.RenderScore(s.Score)
	e.observer.RenderLevel(s.Level)
	e.observer.RenderTimer(s.TimeRemaining)
	return s, nil
}

// Submit answers the current problem with value and moves on to a new
// problem whether or not the answer was right.
func (e *Engine) Submit(s Session, value string) (Session, Outcome, error) {
	if s.State != StatePlaying || s.Problem == nil {
		return s, Outcome{}, fmt.Errorf("submit answer: %w", ErrNotPlaying)
	}

	out := Outcome{
		Correct: problemgen.CheckAnswer(value, s.Problem),
		Answer:  s.Problem.Answer,
	}

	s.Answered++
	if out.Correct {
		s.Correct++
		s.Score++
		e.observer.RenderScore(s.Score)
	}
	if level := LevelFor(s.Score); level != s.Level {
		s.Level = level
		out.LevelUp = true
		e.observer.RenderLevel(s.Level)
	}

	problem, err := e.problems.Next(s.Mode, s.Level)
	if err != nil {
		s, err = e.abort(s, err)
		return s, out, err
	}
	s.Problem = problem
	e.renderProblem(s)
	return s, out, nil
}

// Tick advances the round clock by one second. The session ends when the
// clock reaches zero.
func (e *Engine) Tick(s Session) (Session, error) {
	if s.State != StatePlaying {
		return s, fmt.Errorf("tick: %w", ErrNotPlaying)
	}

	s.TimeRemaining--
	if s.TimeRemaining <= 0 {
		s.TimeRemaining = 0
		s.State = StateEnded
		s.Problem = nil
	}
	e.observer.RenderTimer(s.TimeRemaining)
	return s, nil
}

// Finish commits the score of an ended round and returns its summary.
func (e *Engine) Finish(ctx context.Context, s Session) (Result, error) {
	if s.State != StateEnded {
		return Result{}, fmt.Errorf("finish round: %w", ErrNotPlaying)
	}

	res := Result{
		SessionID:    s.ID,
		User:         s.User,
		Mode:         s.Mode,
		Score:        s.Score,
		Level:        s.Level,
		PreviousHigh: s.HighScore,
		Answered:     s.Answered,
		Correct:      s.Correct,
		Duration:     e.now().Sub(s.StartedAt),
	}

	raised, err := e.profiles.CommitScore(ctx, s.User, s.Score)
	if err != nil {
		e.log.Error("commit score failed", "session", s.ID, "user", s.User, "err", err)
		return res, fmt.Errorf("finish round: %w", err)
	}
	res.NewHighScore = raised

	e.log.Info("round finished", "session", s.ID, "user", s.User, "score", s.Score, "new_high", raised)
	return res, nil
}

// Abandon drops s without committing anything and returns an idle session.
func (e *Engine) Abandon(s Session) Session {
	if s.State != StateIdle {
		e.log.Info("round abandoned", "session", s.ID, "user", s.User, "score", s.Score)
	}
	return Session{}
}

// abort ends a round that can no longer produce problems.
func (e *Engine) abort(s Session, err error) (Session, error) {
	e.log.Error("problem generation failed", "session", s.ID, "mode", s.Mode, "level", s.Level, "err", err)
	e.Abandon(s)
	e.navigator.GoToModeSelect()
	return Session{}, fmt.Errorf("next problem: %w", err)
}

func (e *Engine) renderProblem(s Session) {
	e.observer.RenderProblem(s.Problem.Prompt, s.Problem.Visual)
	e.observer.RenderChoices(s.Problem.Choices)
}
