package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/mathdash/internal/store"
)

// EnvPrefix is prepended to every environment override, e.g. MATHDASH_BACKEND.
const EnvPrefix = "MATHDASH"

// Config is the effective runtime configuration.
type Config struct {
	Backend        string      `mapstructure:"backend" yaml:"backend"`
	DB             string      `mapstructure:"db" yaml:"db"`
	DataDir        string      `mapstructure:"data_dir" yaml:"data_dir"`
	Redis          RedisConfig `mapstructure:"redis" yaml:"redis"`
	StorageKey     string      `mapstructure:"storage_key" yaml:"storage_key"`
	RoundSeconds   int         `mapstructure:"round_seconds" yaml:"round_seconds"`
	InactivityDays int         `mapstructure:"inactivity_days" yaml:"inactivity_days"`
	LogFile        string      `mapstructure:"log_file" yaml:"log_file"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
	Prefix   string `mapstructure:"prefix" yaml:"prefix"`
}

var defaults = map[string]any{
	"backend":         string(store.BackendSQLite),
	"db":              "",
	"data_dir":        "",
	"redis.addr":      "",
	"redis.password":  "",
	"redis.db":        0,
	"redis.prefix":    "mathdash:",
	"storage_key":     "math_game_data",
	"round_seconds":   60,
	"inactivity_days": 7,
	"log_file":        "",
}

// New returns a viper instance with defaults and environment overrides
// registered. Flags are bound by the caller.
func New() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v and decodes the result. An explicit
// path must exist; the default location is optional.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := DefaultDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and the backend name.
func (c Config) Validate() error {
	switch store.Backend(c.Backend) {
	case store.BackendSQLite, store.BackendFile, store.BackendRedis, store.BackendMemory:
	default:
		return fmt.Errorf("invalid backend %q (want sqlite, file, redis or memory)", c.Backend)
	}
	if c.Backend == string(store.BackendRedis) && c.Redis.Addr == "" {
		return fmt.Errorf("backend redis requires redis.addr")
	}
	if c.RoundSeconds <= 0 {
		return fmt.Errorf("round_seconds must be positive, got %d", c.RoundSeconds)
	}
	if c.InactivityDays <= 0 {
		return fmt.Errorf("inactivity_days must be positive, got %d", c.InactivityDays)
	}
	return nil
}

// StoreOptions maps the config onto store.Options.
func (c Config) StoreOptions() store.Options {
	return store.Options{
		Backend:       store.Backend(c.Backend),
		DBPath:        c.DB,
		DataDir:       c.DataDir,
		RedisAddr:     c.Redis.Addr,
		RedisPassword: c.Redis.Password,
		RedisDB:       c.Redis.DB,
		RedisPrefix:   c.Redis.Prefix,
	}
}

// Inactivity returns the archival threshold.
func (c Config) Inactivity() time.Duration {
	return time.Duration(c.InactivityDays) * 24 * time.Hour
}

// YAML renders the config with secrets masked.
func (c Config) YAML() ([]byte, error) {
	if c.Redis.Password != "" {
		c.Redis.Password = "********"
	}
	return yaml.Marshal(c)
}

// DefaultDir returns $XDG_CONFIG_HOME/mathdash, falling back to
// ~/.config/mathdash.
func DefaultDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "mathdash"), nil
}
