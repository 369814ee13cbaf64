package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/abhisek/mathdash/internal/problemgen"
	"github.com/abhisek/mathdash/internal/store"
)

const (
	// DefaultKey is the KV key holding the record.
	DefaultKey = "math_game_data"

	// ModeKey is the KV key holding the selected category.
	ModeKey = "math_game_currentMode"

	// DefaultInactivity is how long a user may go without logging in
	// before the next login attempt archives them.
	DefaultInactivity = 7 * 24 * time.Hour

	MinUsernameLength = 3
	MaxUsernameLength = 15
)

var usernameCharset = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// Service owns the persisted record. Every operation reads the record,
// applies its change and writes it back; nothing is cached between calls.
type Service struct {
	kv         store.KV
	key        string
	now        func() time.Time
	inactivity time.Duration
	log        *slog.Logger

	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithKey overrides the KV key of the record.
func WithKey(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.key = key
		}
	}
}

// WithInactivity overrides the archival threshold.
func WithInactivity(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.inactivity = d
		}
	}
}

// WithLogger sets the logger for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService creates a Service over kv.
func NewService(kv store.KV, opts ...Option) *Service {
	s := &Service{
		kv:         kv,
		key:        DefaultKey,
		now:        time.Now,
		inactivity: DefaultInactivity,
		log:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateUsername trims name and checks it is 3-15 ASCII letters or digits.
func ValidateUsername(name string) (string, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return "", &UsernameError{Name: name, Reason: reasonEmpty}
	case utf8.RuneCountInString(name) < MinUsernameLength || utf8.RuneCountInString(name) > MaxUsernameLength:
		return "", &UsernameError{Name: name, Reason: reasonLength}
	case !usernameCharset.MatchString(name):
		return "", &UsernameError{Name: name, Reason: reasonCharset}
	}
	return name, nil
}

// CreateUser registers a new active user with a zero high score.
func (s *Service) CreateUser(ctx context.Context, name string) error {
	name, err := ValidateUsername(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load(ctx)
	if err != nil {
		return err
	}
	if rec.Exists(name) {
		return fmt.Errorf("create user %q: %w", name, ErrDuplicateUser)
	}

	rec.Users[name] = UserProfile{HighScore: 0, LastPlayed: s.now().UnixMilli()}
	if err := s.save(ctx, rec); err != nil {
		return err
	}
	s.log.Info("user created", "user", name)
	return nil
}

// Login makes name the current user. A user whose last login is more than
// the inactivity threshold ago is archived instead, and the archival is
// persisted before ErrArchivedDueToInactivity is returned.
func (s *Service) Login(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &UsernameError{Name: name, Reason: reasonEmpty}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load(ctx)
	if err != nil {
		return err
	}

	if _, ok := rec.ArchivedUsers[name]; ok {
		return fmt.Errorf("login %q: %w", name, ErrUserArchived)
	}
	user, ok := rec.Users[name]
	if !ok {
		return fmt.Errorf("login %q: %w", name, ErrUserNotFound)
	}

	now := s.now()
	if now.Sub(user.LastPlayedAt()) > s.inactivity {
		rec.archive(name, now)
		if err := s.save(ctx, rec); err != nil {
			return err
		}
		s.log.Info("user archived", "user", name, "last_played", user.LastPlayedAt())
		return fmt.Errorf("login %q: %w", name, ErrArchivedDueToInactivity)
	}

	user.LastPlayed = now.UnixMilli()
	rec.Users[name] = user
	rec.CurrentUser = &name
	if err := s.save(ctx, rec); err != nil {
		return err
	}
	s.log.Info("user logged in", "user", name)
	return nil
}

// Logout clears the current user and the selected mode.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load(ctx)
	if err != nil {
		return err
	}
	// Mode first, so a failed logout leaves the user logged in.
	if err := s.kv.Delete(ctx, ModeKey); err != nil {
		return s.storageErr("clear mode", err)
	}
	rec.CurrentUser = nil
	if err := s.save(ctx, rec); err != nil {
		return err
	}
	s.log.Info("user logged out")
	return nil
}

// CurrentUser returns the logged-in user and their profile.
func (s *Service) CurrentUser(ctx context.Context) (string, UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load(ctx)
	if err != nil {
		return "", UserProfile{}, err
	}
	name, p, ok := rec.Current()
	if !ok {
		return "", UserProfile{}, ErrNoActiveSession
	}
	return name, p, nil
}

// CommitScore raises name's high score to score if it is higher and
// reports whether it was. Nothing is written otherwise.
func (s *Service) CommitScore(ctx context.Context, name string, score int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	user, ok := rec.Users[name]
	if !ok {
		return false, fmt.Errorf("commit score for %q: %w", name, ErrUserNotFound)
	}
	if score <= user.HighScore {
		return false, nil
	}

	user.HighScore = score
	rec.Users[name] = user
	if err := s.save(ctx, rec); err != nil {
		return false, err
	}
	s.log.Info("high score", "user", name, "score", score)
	return true, nil
}

// SelectMode persists cat as the selected category.
func (s *Service) SelectMode(ctx context.Context, cat problemgen.Category) error {
	if _, err := problemgen.ParseCategory(string(cat)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Save(ctx, ModeKey, []byte(cat)); err != nil {
		return s.storageErr("save mode", err)
	}
	return nil
}

// Mode returns the selected category. An unset or unrecognised value
// returns ErrNoModeSelected.
func (s *Service) Mode(ctx context.Context) (problemgen.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.kv.Load(ctx, ModeKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrNoModeSelected
		}
		return "", s.storageErr("load mode", err)
	}
	cat, err := problemgen.ParseCategory(string(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoModeSelected, err)
	}
	return cat, nil
}

// Record returns a fresh copy of the persisted record.
func (s *Service) Record(ctx context.Context) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Users lists active and archived users.
func (s *Service) Users(ctx context.Context) ([]Entry, error) {
	rec, err := s.Record(ctx)
	if err != nil {
		return nil, err
	}
	return rec.Entries(), nil
}

// Reset deletes the record and the selected mode.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, ModeKey); err != nil {
		return s.storageErr("clear mode", err)
	}
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return s.storageErr("delete record", err)
	}
	s.log.Info("record reset")
	return nil
}

func (s *Service) load(ctx context.Context) (*Record, error) {
	raw, err := s.kv.Load(ctx, s.key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return NewRecord(), nil
		}
		return nil, s.storageErr("load", err)
	}

	if err := validateRecord(raw); err != nil {
		return nil, s.storageErr("load", err)
	}

	rec := NewRecord()
	if err := json.Unmarshal(raw, rec); err != nil {
		return nil, s.storageErr("load", fmt.Errorf("%w: %w", ErrCorruptRecord, err))
	}
	rec.normalize()
	return rec, nil
}

func (s *Service) save(ctx context.Context, rec *Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := s.kv.Save(ctx, s.key, raw); err != nil {
		return s.storageErr("save", err)
	}
	return nil
}

func (s *Service) storageErr(op string, err error) error {
	s.log.Error("storage failure", "op", op, "key", s.key, "err", err)
	return &StorageError{Op: op, Err: err}
}
