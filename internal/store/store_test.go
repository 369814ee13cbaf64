package store

import (
	"context"
	"errors"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='kv'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "kv" {
		t.Errorf("table name = %q, want 'kv'", name)
	}
}

func TestSQLiteKV(t *testing.T) {
	testKV(t, openTestStore(t))
}

func TestSQLiteRevisionCountsWrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Revision(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := s.Save(ctx, "k", []byte("v")); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	rev, err := s.Revision(ctx, "k")
	if err != nil {
		t.Fatalf("revision: %v", err)
	}
	if rev != 3 {
		t.Errorf("revision = %d, want 3", rev)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := t.TempDir() + "/test.db"
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Save(ctx, "math_game_data", []byte(`{"users":{}}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}

	got, err := s.Load(ctx, "math_game_data")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"users":{}}` {
		t.Errorf("load = %q", got)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("MATHDASH_DB", dir+"/custom/my.db")
	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if p != dir+"/custom/my.db" {
		t.Errorf("path = %q", p)
	}

	t.Setenv("MATHDASH_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if p != dir+"/mathdash/mathdash.db" {
		t.Errorf("path = %q", p)
	}
}
