package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const kvTableName = "kv"

// kvTable is the single table backing the SQLite store. revision counts
// writes to a key since it was first saved.
var kvTable = schema.NewTable(kvTableName).
	AddPrimary(&schema.Column{Name: "key", Type: field.TypeString, Size: 255}).
	AddColumn(&schema.Column{Name: "value", Type: field.TypeBytes}).
	AddColumn(&schema.Column{Name: "revision", Type: field.TypeInt64, Default: 1}).
	AddColumn(&schema.Column{Name: "updated_at", Type: field.TypeTime})

// Store is the SQLite-backed KV.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
}

var (
	_ KV         = (*Store)(nil)
	_ Revisioner = (*Store)(nil)
)

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and runs auto-migration.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	migrate, err := schema.NewMigrate(drv)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare migration: %w", err)
	}
	if err := migrate.Create(context.Background(), kvTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db, drv: drv}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

func (s *Store) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.drv.Dialect())
}

func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	query, args := s.builder().
		Select("value").
		From(entsql.Table(kvTableName)).
		Where(entsql.EQ("key", key)).
		Query()

	var value []byte
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	query, args := s.builder().
		Insert(kvTableName).
		Columns("key", "value", "revision", "updated_at").
		Values(key, value, 1, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("value")
				u.SetExcluded("updated_at")
				u.Add("revision", 1)
			}),
		).
		Query()

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	query, args := s.builder().
		Delete(kvTableName).
		Where(entsql.EQ("key", key)).
		Query()

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Revision returns how many times key has been saved, or ErrNotFound.
func (s *Store) Revision(ctx context.Context, key string) (int64, error) {
	query, args := s.builder().
		Select("revision").
		From(entsql.Table(kvTableName)).
		Where(entsql.EQ("key", key)).
		Query()

	var rev int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&rev); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("revision %q: %w", key, err)
	}
	return rev, nil
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. MATHDASH_DB environment variable
// 2. $XDG_DATA_HOME/mathdash/mathdash.db
// 3. ~/.local/share/mathdash/mathdash.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("MATHDASH_DB"); p != "" {
		return p, ensureDir(p)
	}

	dir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "mathdash.db")
	return p, ensureDir(p)
}

// DefaultDataDir returns $XDG_DATA_HOME/mathdash, falling back to
// ~/.local/share/mathdash. The directory is not created.
func DefaultDataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "mathdash"), nil
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
