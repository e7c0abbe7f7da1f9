package cmd

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/guilhermegouw/pomo/internal/config"
	"github.com/guilhermegouw/pomo/internal/db"
	"github.com/guilhermegouw/pomo/internal/journal"
)

func newJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recent bridge failures",
		Long: `Show the newest journal entries. By default only failed and
unhandled commands are listed; --all includes audited successes.`,
		Args: cobra.NoArgs,
		RunE: runJournal,
	}
	cmd.Flags().IntP("limit", "n", 20, "Number of entries to show")
	cmd.Flags().Bool("all", false, "Include successful entries")
	cmd.Flags().Int("prune", 0, "Keep only the newest N entries and exit")
	return cmd
}

func runJournal(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return fmt.Errorf("getting limit flag: %w", err)
	}
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("getting all flag: %w", err)
	}
	prune, err := cmd.Flags().GetInt("prune")
	if err != nil {
		return fmt.Errorf("getting prune flag: %w", err)
	}

	ctx := cmd.Context()
	database, err := db.Open(ctx, filepath.Join(config.DataDir(), db.FileName))
	if err != nil {
		return err
	}
	defer database.Close() //nolint:errcheck // read-only use
	store := journal.NewSQLiteStore(database)

	w := cmd.OutOrStdout()
	if cmd.Flags().Changed("prune") {
		removed, err := store.Prune(ctx, prune)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Removed %d entries.\n", removed)
		return nil
	}

	var entries []journal.Entry
	if all {
		entries, err = store.Recent(ctx, limit)
	} else {
		entries, err = store.Failures(ctx, limit)
	}
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tCOMMAND\tOUTCOME\tDURATION\tERROR")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.Local().Format(time.DateTime), e.Command, e.Outcome, e.Duration, e.Error)
	}
	return tw.Flush()
}
