package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver"
	"github.com/SeamusWaldron/gocube_solver/internal/config"
	"github.com/SeamusWaldron/gocube_solver/internal/expanded"
	"github.com/SeamusWaldron/gocube_solver/internal/metrics"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

var (
	solveCubeFile     string
	solveScramble     string
	solveDepth        int
	solveStore        string
	solveBadgerDir    string
	solveMetricsAddr  string
	solveNoSave       bool
	solveNotes        string
	solveProgressStep int
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Search for a solution",
	Long: `Search for a move sequence that turns a start cube into the goal cube.

The start cube comes from a YAML cube file (--cube) or from a scramble applied
to the solved cube (--scramble). Flags override the file's search settings.

Examples:
  gocube-solver solve --scramble "R U R' U'" --depth 5
  gocube-solver solve --cube cube.yaml --store badger --badger-dir /tmp/expanded
  gocube-solver solve --scramble "F R" --metrics-addr :9090`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVar(&solveCubeFile, "cube", "", "YAML cube file")
	solveCmd.Flags().StringVar(&solveScramble, "scramble", "", "Scramble applied to the solved cube")
	solveCmd.Flags().IntVar(&solveDepth, "depth", gocube.DefaultDepthLimit, "Depth limit")
	solveCmd.Flags().StringVar(&solveStore, "store", config.StoreMemory, "Expanded-state store: memory or badger")
	solveCmd.Flags().StringVar(&solveBadgerDir, "badger-dir", "", "Directory for the badger store")
	solveCmd.Flags().StringVar(&solveMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while searching")
	solveCmd.Flags().BoolVar(&solveNoSave, "no-save", false, "Do not record the run in the database")
	solveCmd.Flags().StringVar(&solveNotes, "notes", "", "Notes for this run")
	solveCmd.Flags().IntVar(&solveProgressStep, "progress-every", 100000, "Report progress every N popped nodes")
}

// loadProblem builds the cube file from --cube or --scramble and applies
// flag overrides.
func loadProblem(cmd *cobra.Command) (*config.File, error) {
	var f *config.File

	switch {
	case solveCubeFile != "" && solveScramble != "":
		return nil, fmt.Errorf("--cube and --scramble are mutually exclusive")
	case solveCubeFile != "":
		loaded, err := config.Load(solveCubeFile)
		if err != nil {
			return nil, err
		}
		f = loaded
	case solveScramble != "":
		f = &config.File{Scramble: solveScramble}
	default:
		return nil, fmt.Errorf("please provide --cube or --scramble")
	}

	flags := cmd.Flags()
	if flags.Changed("depth") || f.Search.DepthLimit == nil {
		depth := solveDepth
		f.Search.DepthLimit = &depth
	}
	if flags.Changed("store") || f.Search.Store == "" {
		f.Search.Store = solveStore
	}
	if flags.Changed("badger-dir") {
		f.Search.BadgerDir = solveBadgerDir
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// openSignatureSet returns the expanded-state store and a close function.
func openSignatureSet(f *config.File) (gocube.SignatureSet, func() error, error) {
	if f.Search.Store != config.StoreBadger {
		return gocube.NewMemorySet(), func() error { return nil }, nil
	}

	set, err := expanded.Open(expanded.Config{
		Dir:    f.Search.BadgerDir,
		Reset:  true,
		Logger: logger.With(slog.String("component", "badger")),
	})
	if err != nil {
		return nil, nil, err
	}
	return set, set.Close, nil
}

// serveMetrics exposes reg on addr until the returned server is shut down.
func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", slog.String("addr", addr), slog.String("error", err.Error()))
		}
	}()
	logger.Info("serving metrics", slog.String("addr", addr))
	return srv
}

// shutdowner is the part of *http.Server that stopMetrics needs.
type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// stopMetrics shuts the metrics server down, logging any failure.
func stopMetrics(srv shutdowner, addr string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("metrics server shutdown failed", slog.String("addr", addr), slog.String("error", err.Error()))
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	f, err := loadProblem(cmd)
	if err != nil {
		return err
	}
	initial, goal, err := f.Cubes()
	if err != nil {
		return err
	}

	set, closeSet, err := openSignatureSet(f)
	if err != nil {
		return err
	}
	defer closeSet()

	reg := prometheus.NewRegistry()
	searchMetrics := metrics.NewSearchMetrics(reg)
	if solveMetricsAddr != "" {
		srv := serveMetrics(solveMetricsAddr, reg)
		defer stopMetrics(srv, solveMetricsAddr)
	}

	progress := func(stats gocube.SearchStats) {
		searchMetrics.Observe(stats)
		logger.Debug("search progress",
			slog.Int("popped", stats.Popped),
			slog.Int("expanded", stats.Expanded),
			slog.Int("frontier", stats.Frontier),
			slog.Int("signatures", stats.Signatures),
			slog.Duration("elapsed", stats.Elapsed),
		)
	}

	solver := gocube.NewSolver(goal,
		gocube.WithDepthLimit(f.DepthLimit()),
		gocube.WithSignatureSet(set),
		gocube.WithLogger(logger),
		gocube.WithProgress(solveProgressStep, progress),
	)

	var (
		db    *storage.DB
		runs  *storage.RunRepository
		runID string
	)
	if !solveNoSave {
		db, err = openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		runs = storage.NewRunRepository(db)
		runID, err = runs.Create(storage.RunInput{
			Initial:        initial,
			Goal:           goal,
			Scramble:       f.Scramble,
			DepthLimit:     f.DepthLimit(),
			SignatureStore: f.Search.Store,
			Notes:          solveNotes,
			AppVersion:     version,
		})
		if err != nil {
			return fmt.Errorf("failed to record run: %w", err)
		}
	}

	fmt.Fprintln(out, titleStyle.Render("Start"))
	fmt.Fprint(out, renderNet(initial))
	fmt.Fprintf(out, "Stage: %s\n", stageStyle.Render(gocube.DetectStage(initial, goal).DisplayName()))
	fmt.Fprintf(out, "Depth limit: %d, store: %s\n\n", f.DepthLimit(), f.Search.Store)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	node, searchErr := solver.Solve(ctx, initial)
	stats := solver.Stats()

	status, outcome := classify(searchErr)
	searchMetrics.Finish(outcome)

	var solution []gocube.Move
	if node != nil {
		solution = node.Moves()
	}

	if runs != nil {
		res := storage.RunResult{Status: status, Stats: stats, SolutionLength: len(solution)}
		if status != storage.StatusSolved && !errors.Is(searchErr, gocube.ErrSearchExhausted) {
			res.Err = searchErr
		}
		if err := runs.Finish(runID, res); err != nil {
			return err
		}
		if status == storage.StatusSolved {
			moves := storage.NewMoveRepository(db)
			if err := moves.CreateBatch(runID, initial, goal, solution); err != nil {
				return fmt.Errorf("failed to record solution: %w", err)
			}
		}
	}

	printOutcome(out, status, solution, stats, f.DepthLimit())
	if runID != "" {
		fmt.Fprintf(out, "Run: %s\n", runID)
	}

	if status == storage.StatusCanceled || status == storage.StatusFailed {
		return searchErr
	}
	return nil
}

// classify maps a search error to a stored status and a metrics outcome.
func classify(err error) (storage.Status, string) {
	switch {
	case err == nil:
		return storage.StatusSolved, metrics.OutcomeSolved
	case errors.Is(err, gocube.ErrSearchExhausted):
		return storage.StatusExhausted, metrics.OutcomeExhausted
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return storage.StatusCanceled, metrics.OutcomeCanceled
	default:
		return storage.StatusFailed, metrics.OutcomeFailed
	}
}

func printOutcome(out io.Writer, status storage.Status, solution []gocube.Move, stats gocube.SearchStats, depthLimit int) {
	switch status {
	case storage.StatusSolved:
		if len(solution) == 0 {
			fmt.Fprintln(out, stageStyle.Render("Already at the goal"))
		} else {
			fmt.Fprintf(out, "Solution (%d moves): %s\n", len(solution), moveStyle.Render(gocube.FormatMoves(solution)))
		}
	case storage.StatusExhausted:
		fmt.Fprintf(out, "%s\n", errorStyle.Render(fmt.Sprintf("No solution within depth limit %d", depthLimit)))
	case storage.StatusCanceled:
		fmt.Fprintln(out, errorStyle.Render("Search canceled"))
	default:
		fmt.Fprintln(out, errorStyle.Render("Search failed"))
	}

	fmt.Fprintln(out, statusStyle.Render(fmt.Sprintf(
		"Popped %d, expanded %d, duplicates %d, cutoffs %d, max frontier %d in %s",
		stats.Popped, stats.Expanded, stats.Duplicates, stats.Cutoffs, stats.MaxFrontier,
		formatDuration(stats.Elapsed),
	)))
}
