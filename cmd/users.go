package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathdash/internal/logging"
	"github.com/abhisek/mathdash/internal/profile"
	"github.com/abhisek/mathdash/internal/store"
	"github.com/abhisek/mathdash/internal/ui/theme"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List players with their high scores",
	RunE:  runUsers,
}

func init() {
	usersCmd.Flags().Bool("archived", true, "Include archived players")
}

func runUsers(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	withArchived, _ := cmd.Flags().GetBool("archived")

	profiles, kv, err := openProfiles(cmd.Context(), cfg, logging.Discard())
	if err != nil {
		return err
	}
	defer kv.Close()

	entries, err := profiles.Users(cmd.Context())
	if err != nil {
		return fmt.Errorf("list users: %s", profile.Message(err))
	}
	if err := renderUsers(cmd.OutOrStdout(), entries, withArchived); err != nil {
		return err
	}
	return renderRevision(cmd.Context(), cmd.OutOrStdout(), kv, cfg.StorageKey)
}

// renderRevision prints the record revision for backends that count saves.
// A missing record prints nothing.
func renderRevision(ctx context.Context, w io.Writer, kv store.KV, key string) error {
	r, ok := kv.(store.Revisioner)
	if !ok {
		return nil
	}
	rev, err := r.Revision(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read revision: %w", err)
	}
	_, err = fmt.Fprintf(w, "Record revision: %d\n", rev)
	return err
}

func renderUsers(w io.Writer, entries []profile.Entry, withArchived bool) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		if e.Archived && !withArchived {
			continue
		}
		status := "active"
		if e.Archived {
			status = "archived " + formatDate(e.Profile.ArchivedAt())
		}
		rows = append(rows, []string{
			e.Name,
			strconv.Itoa(e.Profile.HighScore),
			formatDate(e.Profile.LastPlayedAt()),
			status,
		})
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No players yet.")
		return err
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("PLAYER", "HIGH SCORE", "LAST PLAYED", "STATUS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func formatDate(t time.Time) string {
	if t.IsZero() || t.Unix() == 0 {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
