package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

var (
	listLimit int
	showLast  bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse recorded solver runs",
	Long:  `Commands for listing and inspecting solver runs stored in the database.`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	Long:  `Display a list of recent runs with their outcome and search statistics.`,
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show details of a run",
	Long: `Display detailed information about a run including:
- Start and goal cubes
- Search statistics
- The solution, move by move, with the stage reached after each move

Use --last to show the most recent run.`,
	RunE: runRunsShow,
}

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.AddCommand(runsListCmd)
	runsListCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of runs to display")

	runsCmd.AddCommand(runsShowCmd)
	runsShowCmd.Flags().BoolVar(&showLast, "last", false, "Show the most recent run")
}

func runRunsList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	runRepo := storage.NewRunRepository(db)
	runs, err := runRepo.List(listLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet")
		fmt.Fprintln(out, "Start one with: gocube-solver solve --scramble \"R U\"")
		return nil
	}

	fmt.Fprintf(out, "Recent runs (showing %d):\n", len(runs))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%-36s  %-19s  %-9s  %-5s  %-10s  %-6s  %s\n", "ID", "Started", "Status", "Depth", "Duration", "Moves", "Notes")
	fmt.Fprintln(out, "------------------------------------  -------------------  ---------  -----  ----------  ------  -----")

	for _, r := range runs {
		duration := "-"
		if r.DurationMs != nil {
			duration = formatDuration(time.Duration(*r.DurationMs) * time.Millisecond)
		}

		moves := "-"
		if r.SolutionLength != nil {
			moves = fmt.Sprintf("%d", *r.SolutionLength)
		}

		notes := ""
		if r.Notes != nil {
			notes = *r.Notes
			if len(notes) > 30 {
				notes = notes[:27] + "..."
			}
		}

		fmt.Fprintf(out, "%-36s  %-19s  %-9s  %-5d  %-10s  %-6s  %s\n",
			r.RunID,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Status,
			r.DepthLimit,
			duration,
			moves,
			notes,
		)
	}

	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	runRepo := storage.NewRunRepository(db)
	moveRepo := storage.NewMoveRepository(db)

	run, err := resolveRun(runRepo, args, showLast)
	if err != nil {
		return err
	}

	initial, err := run.Initial()
	if err != nil {
		return fmt.Errorf("failed to decode start cube: %w", err)
	}
	goal, err := run.Goal()
	if err != nil {
		return fmt.Errorf("failed to decode goal cube: %w", err)
	}

	records, err := moveRepo.GetByRun(run.RunID)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, titleStyle.Render("Run Details"))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "ID:       %s\n", run.RunID)
	fmt.Fprintf(out, "Started:  %s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	if run.DurationMs != nil {
		fmt.Fprintf(out, "Duration: %s\n", formatDuration(time.Duration(*run.DurationMs)*time.Millisecond))
	}
	fmt.Fprintf(out, "Status:   %s\n", run.Status)
	fmt.Fprintf(out, "Depth:    %d (%s store)\n", run.DepthLimit, run.SignatureStore)
	if run.ScrambleText != nil {
		fmt.Fprintf(out, "Scramble: %s\n", *run.ScrambleText)
	}
	if run.Notes != nil {
		fmt.Fprintf(out, "Notes:    %s\n", *run.Notes)
	}
	if run.ErrorText != nil {
		fmt.Fprintf(out, "Error:    %s\n", errorStyle.Render(*run.ErrorText))
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, statusStyle.Render(fmt.Sprintf(
		"Popped %d, expanded %d, duplicates %d, cutoffs %d, max frontier %d",
		run.Popped, run.Expanded, run.Duplicates, run.Cutoffs, run.MaxFrontier,
	)))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Start:")
	fmt.Fprint(out, renderNet(initial))
	fmt.Fprintf(out, "Stage: %s\n\n", stageStyle.Render(gocube.DetectStage(initial, goal).DisplayName()))

	if len(records) == 0 {
		if run.Status == storage.StatusSolved {
			fmt.Fprintln(out, "Start cube already matched the goal")
		}
		return nil
	}

	fmt.Fprintf(out, "Solution (%d moves):\n", len(records))
	for _, m := range records {
		fmt.Fprintf(out, "  %2d. %-3s  %s\n", m.MoveIndex+1, moveStyle.Render(m.Notation), m.Stage)
	}

	return nil
}
