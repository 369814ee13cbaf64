package game

import (
	"time"

	"github.com/abhisek/mathdash/internal/problemgen"
)

// State is the phase of a round.
type State int

const (
	StateIdle    State = iota // No round in progress
	StateLoading              // User and mode resolved, first problem pending
	StatePlaying              // Accepting answers and ticks
	StateEnded                // Timer ran out, score not yet committed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StateEnded:
		return "ended"
	}
	return "unknown"
}

// PointsPerLevel is how many correct answers raise the level by one.
const PointsPerLevel = 10

// DefaultRoundSeconds is the length of a round.
const DefaultRoundSeconds = 60

// LevelFor returns the level reached with score points.
func LevelFor(score int) int {
	return 1 + score/PointsPerLevel
}

// Session is one round. It is passed by value through the Engine's
// transition functions; the zero value is an idle session.
type Session struct {
	// ID identifies the round in logs.
	ID string

	// User is the player's name and HighScore their best before this round.
	User      string
	HighScore int

	Mode  problemgen.Category
	State State

	Score         int
	Level         int
	TimeRemaining int

	// Problem is the question currently on screen.
	Problem *problemgen.Problem

	// Answered and Correct count submissions this round.
	Answered int
	Correct  int

	StartedAt time.Time
}

// Outcome describes the effect of one submitted answer.
type Outcome struct {
	Correct bool

	// Answer is the correct answer to the problem that was just answered.
	Answer string

	// LevelUp is set when this answer raised the level.
	LevelUp bool
}

// Result is the summary of a finished round.
type Result struct {
	SessionID    string
	User         string
	Mode         problemgen.Category
	Score        int
	Level        int
	PreviousHigh int
	NewHighScore bool
	Answered     int
	Correct      int
	Duration     time.Duration
}

// Accuracy returns the fraction of answers that were correct.
func (r Result) Accuracy() float64 {
	if r.Answered == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Answered)
}
