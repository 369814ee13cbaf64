package cmd

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdash/internal/app"
	"github.com/abhisek/mathdash/internal/logging"
	"github.com/abhisek/mathdash/internal/problemgen"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, closer, err := logging.Open(cfg.LogFile, logLevel(cmd))
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	profiles, kv, err := openProfiles(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer kv.Close()

	r := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))

	return app.Run(app.Options{
		Profiles:       profiles,
		Problems:       problemgen.NewDispatcher(r, problemgen.DefaultConfig()),
		RoundSeconds:   cfg.RoundSeconds,
		InactivityDays: cfg.InactivityDays,
		Logger:         log,
	})
}
