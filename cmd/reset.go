package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdash/internal/logging"
	"github.com/abhisek/mathdash/internal/profile"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all players, scores and the selected mode",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		fmt.Fprint(cmd.OutOrStdout(), "This deletes every player and high score. Continue? [y/N] ")
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	profiles, kv, err := openProfiles(cmd.Context(), cfg, logging.Discard())
	if err != nil {
		return err
	}
	defer kv.Close()

	if err := profiles.Reset(cmd.Context()); err != nil {
		return fmt.Errorf("reset: %s", profile.Message(err))
	}
	fmt.Fprintln(cmd.OutOrStdout(), "All player data deleted.")
	return nil
}
