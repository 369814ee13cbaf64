package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Backend names a KV implementation.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

// Options selects and configures a backend. Empty paths fall back to
// DefaultDBPath and DefaultDataDir.
type Options struct {
	Backend Backend
	DBPath  string
	DataDir string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// OpenBackend opens the KV named by opts.Backend.
func OpenBackend(ctx context.Context, opts Options) (KV, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		path := opts.DBPath
		if path == "" {
			p, err := DefaultDBPath()
			if err != nil {
				return nil, err
			}
			path = p
		} else if err := ensureDir(path); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		return Open(path)

	case BackendFile:
		dir := opts.DataDir
		if dir == "" {
			d, err := DefaultDataDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return OpenFile(dir)

	case BackendRedis:
		if opts.RedisAddr == "" {
			return nil, fmt.Errorf("redis backend requires an address")
		}
		return OpenRedis(ctx, &redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		}, opts.RedisPrefix)

	case BackendMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
}
