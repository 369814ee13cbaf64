// Package logging sets up the process logger. The TUI owns the terminal,
// so logs go to a file unless stderr is requested explicitly.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Stderr is the log file value that selects standard error.
const Stderr = "-"

// Open returns a text logger writing to path. An empty path uses
// DefaultPath. The returned closer must be called on exit.
func Open(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if path == Stderr {
		return newLogger(os.Stderr, level), nopCloser{}, nil
	}

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(f, level), f, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// DefaultPath returns $XDG_STATE_HOME/mathdash/mathdash.log, falling back
// to ~/.local/state/mathdash/mathdash.log.
func DefaultPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "mathdash", "mathdash.log"), nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
