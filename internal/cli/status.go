package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database information",
	Long:  `Display the database location, schema version and run counts by outcome.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintln(out, "gocube-solver Status")
	fmt.Fprintln(out, "====================")
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Database: %s\n", db.Path())
	if size, err := db.FileSize(); err == nil {
		fmt.Fprintf(out, "Size: %.1f KB\n", float64(size)/1024)
	}
	if v, err := db.CurrentVersion(); err == nil {
		fmt.Fprintf(out, "Schema version: %d\n", v)
	}

	runRepo := storage.NewRunRepository(db)
	if last, err := runRepo.Latest(); err == nil && last != nil {
		fmt.Fprintf(out, "Last run: %s (%s)\n", last.StartedAt.Local().Format(time.RFC3339), last.Status)
	}

	counts, err := runRepo.CountByStatus()
	if err != nil {
		return err
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	fmt.Fprintf(out, "Total runs: %d\n", total)

	for _, s := range []storage.Status{
		storage.StatusSolved,
		storage.StatusExhausted,
		storage.StatusCanceled,
		storage.StatusFailed,
		storage.StatusRunning,
	} {
		if counts[s] > 0 {
			fmt.Fprintf(out, "  %-9s %d\n", s, counts[s])
		}
	}

	return nil
}
