package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/mathdash/internal/config"
	"github.com/abhisek/mathdash/internal/profile"
	"github.com/abhisek/mathdash/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathdash",
	Short: "Timed arithmetic practice in the terminal",
	Long: `MathDash is a sixty-second multiple-choice arithmetic game.

Create a player, pick a mode (addition, subtraction, multiplication,
division, decimals, fractions, angles or a mix) and answer as many
problems as you can before the clock runs out.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// flagKeys maps config keys to the persistent flags that override them.
var flagKeys = map[string]string{
	"backend":    "backend",
	"db":         "db",
	"data_dir":   "data-dir",
	"redis.addr": "redis-addr",
	"log_file":   "log-file",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/mathdash/config.yaml)")
	pf.String("backend", "", "Storage backend: sqlite, file, redis or memory")
	pf.String("db", "", "Path to SQLite database file (overrides MATHDASH_DB env var)")
	pf.String("data-dir", "", "Directory for the file backend")
	pf.String("redis-addr", "", "Redis address (host:port) for the redis backend")
	pf.String("log-file", "", "Log file path, or - for stderr")
	pf.Bool("debug", false, "Log at debug level")

	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the effective configuration: flags, then MATHDASH_*
// environment variables, then the config file, then defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	return loadConfigWith(cmd, config.New())
}

func loadConfigWith(cmd *cobra.Command, v *viper.Viper) (config.Config, error) {
	flags := cmd.Flags()
	for key, name := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return config.Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}
	path, _ := flags.GetString("config")
	return config.Load(v, path)
}

func logLevel(cmd *cobra.Command) slog.Level {
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// openProfiles opens the configured backend and wraps it in a profile
// service. The caller closes the returned store.
func openProfiles(ctx context.Context, cfg config.Config, log *slog.Logger) (*profile.Service, store.KV, error) {
	kv, err := store.OpenBackend(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	log.Info("store opened", "backend", cfg.Backend)

	svc := profile.NewService(kv,
		profile.WithKey(cfg.StorageKey),
		profile.WithInactivity(cfg.Inactivity()),
		profile.WithLogger(log),
	)
	return svc, kv, nil
}
