package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube_solver"
	"github.com/SeamusWaldron/gocube_solver/internal/config"
	"github.com/SeamusWaldron/gocube_solver/internal/metrics"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

// resetFlags restores every flag of cmd and its children to its default so
// commands can be executed repeatedly within one test binary.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs the root command with args and returns what it wrote
// to stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), err
}

func testDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "runs.db")
}

func openTestDB(t *testing.T, path string) *storage.DB {
	t.Helper()
	db, err := storage.Open(path)
	require.NoError(t, err)
	require.NoError(t, db.MigrateUp())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSolveRecordsRun(t *testing.T) {
	dbFile := testDBPath(t)

	out, err := executeCommand(t, "solve", "--db", dbFile, "--scramble", "R U", "--depth", "3", "--notes", "smoke")
	require.NoError(t, err)
	assert.Contains(t, out, "Solution (2 moves)")
	assert.Contains(t, out, "Run: ")

	db := openTestDB(t, dbFile)
	run, err := storage.NewRunRepository(db).Latest()
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, storage.StatusSolved, run.Status)
	assert.Equal(t, 3, run.DepthLimit)
	assert.Equal(t, config.StoreMemory, run.SignatureStore)
	require.NotNil(t, run.SolutionLength)
	assert.Equal(t, 2, *run.SolutionLength)
	require.NotNil(t, run.Notes)
	assert.Equal(t, "smoke", *run.Notes)

	records, err := storage.NewMoveRepository(db).GetByRun(run.RunID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, gocube.StageSolved.String(), records[1].Stage)

	initial, err := run.Initial()
	require.NoError(t, err)
	moves, err := storage.ToMoves(records)
	require.NoError(t, err)
	assert.True(t, initial.ApplyMoves(moves).Equal(gocube.SolvedCube()))
}

func TestSolveExhausted(t *testing.T) {
	dbFile := testDBPath(t)

	out, err := executeCommand(t, "solve", "--db", dbFile, "--scramble", "R U", "--depth", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "No solution within depth limit 1")

	db := openTestDB(t, dbFile)
	run, err := storage.NewRunRepository(db).Latest()
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, storage.StatusExhausted, run.Status)
	assert.Nil(t, run.SolutionLength)
	assert.Nil(t, run.ErrorText)

	n, err := storage.NewMoveRepository(db).Count(run.RunID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSolveNoSave(t *testing.T) {
	dbFile := testDBPath(t)

	_, err := executeCommand(t, "solve", "--db", dbFile, "--scramble", "F", "--depth", "2", "--no-save")
	require.NoError(t, err)

	out, err := executeCommand(t, "runs", "list", "--db", dbFile)
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded yet")
}

func TestSolveAlreadyAtGoal(t *testing.T) {
	dbFile := testDBPath(t)

	out, err := executeCommand(t, "solve", "--db", dbFile, "--scramble", "R R'", "--depth", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Already at the goal")

	out, err = executeCommand(t, "runs", "show", "--last", "--db", dbFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Start cube already matched the goal")
}

func TestSolveInputErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no input", []string{"solve", "--no-save"}, "--cube or --scramble"},
		{"both inputs", []string{"solve", "--no-save", "--cube", "x.yaml", "--scramble", "R"}, "mutually exclusive"},
		{"bad scramble", []string{"solve", "--no-save", "--scramble", "R X"}, ""},
		{"badger without dir", []string{"solve", "--no-save", "--scramble", "R", "--store", "badger"}, ""},
		{"unknown store", []string{"solve", "--no-save", "--scramble", "R", "--store", "redis"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			if tt.want != "" {
				assert.Contains(t, err.Error(), tt.want)
			}
		})
	}
}

func TestSolveWithBadgerStore(t *testing.T) {
	dbFile := testDBPath(t)
	badgerDir := filepath.Join(t.TempDir(), "expanded")

	out, err := executeCommand(t, "solve", "--db", dbFile, "--scramble", "U", "--depth", "2",
		"--store", "badger", "--badger-dir", badgerDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Solution (1 moves)")

	db := openTestDB(t, dbFile)
	run, err := storage.NewRunRepository(db).Latest()
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, config.StoreBadger, run.SignatureStore)
}

func TestScrambleWritesCubeFile(t *testing.T) {
	dbFile := testDBPath(t)
	cubeFile := filepath.Join(t.TempDir(), "cube.yaml")

	out, err := executeCommand(t, "scramble", "R U", "-o", cubeFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Moves (2): ")
	assert.Contains(t, out, "Wrote "+cubeFile)

	want := gocube.SolvedCube().ApplyMoves(gocube.MustParseMoves("R U"))
	assert.Contains(t, out, "Signature: "+want.Signature())

	f, err := config.Load(cubeFile)
	require.NoError(t, err)
	initial, goal, err := f.Cubes()
	require.NoError(t, err)
	assert.True(t, initial.Equal(want))
	assert.True(t, goal.Equal(gocube.SolvedCube()))

	out, err = executeCommand(t, "solve", "--db", dbFile, "--cube", cubeFile, "--depth", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Solution (2 moves)")
}

func TestScrambleRejectsBadNotation(t *testing.T) {
	_, err := executeCommand(t, "scramble", "R Q")
	require.Error(t, err)
	assert.ErrorIs(t, err, gocube.ErrInvalidNotation)
}

func TestRunsShowAndStatus(t *testing.T) {
	dbFile := testDBPath(t)

	_, err := executeCommand(t, "solve", "--db", dbFile, "--scramble", "R U", "--depth", "3")
	require.NoError(t, err)
	_, err = executeCommand(t, "solve", "--db", dbFile, "--scramble", "R U", "--depth", "1")
	require.NoError(t, err)

	out, err := executeCommand(t, "runs", "list", "--db", dbFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Recent runs (showing 2)")
	assert.Contains(t, out, "exhausted")
	assert.Contains(t, out, "solved")

	out, err = executeCommand(t, "runs", "show", "--last", "--db", dbFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Status:   exhausted")
	assert.Contains(t, out, "Scramble: R U")

	out, err = executeCommand(t, "status", "--db", dbFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Schema version: 1")
	assert.Contains(t, out, "Total runs: 2")

	_, err = executeCommand(t, "runs", "show", "missing", "--db", dbFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestExportMoves(t *testing.T) {
	dbFile := testDBPath(t)

	_, err := executeCommand(t, "solve", "--db", dbFile, "--scramble", "R U", "--depth", "3")
	require.NoError(t, err)

	out, err := executeCommand(t, "export", "moves", "--last", "--format", "json", "--db", dbFile)
	require.NoError(t, err)

	var exported []exportedMove
	require.NoError(t, json.Unmarshal([]byte(out), &exported))
	require.Len(t, exported, 2)
	assert.Equal(t, 0, exported[0].MoveIndex)
	assert.Equal(t, gocube.StageSolved.String(), exported[1].Stage)
	assert.Equal(t, gocube.SolvedCube().Signature(), exported[1].Signature)

	outFile := filepath.Join(t.TempDir(), "out", "moves.txt")
	out, err = executeCommand(t, "export", "moves", "--last", "-o", outFile, "--db", dbFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 moves to "+outFile)

	_, err = executeCommand(t, "export", "moves", "--db", dbFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--id or --last")
}

func TestFormatMoves(t *testing.T) {
	records := []storage.MoveRecord{
		{MoveIndex: 0, Face: "R", Steps: 1, Notation: "R", Stage: "scrambled"},
		{MoveIndex: 1, Face: "U", Steps: 3, Notation: "U'", Stage: "solved"},
	}

	txt, err := formatMoves(records, "txt")
	require.NoError(t, err)
	assert.Equal(t, "R U'", txt)

	yml, err := formatMoves(records, "YAML")
	require.NoError(t, err)
	assert.Contains(t, yml, "notation: U'")
	assert.Contains(t, yml, "move_index: 1")

	_, err = formatMoves(records, "xml")
	require.Error(t, err)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err     error
		status  storage.Status
		outcome string
	}{
		{nil, storage.StatusSolved, metrics.OutcomeSolved},
		{gocube.ErrSearchExhausted, storage.StatusExhausted, metrics.OutcomeExhausted},
		{context.Canceled, storage.StatusCanceled, metrics.OutcomeCanceled},
		{context.DeadlineExceeded, storage.StatusCanceled, metrics.OutcomeCanceled},
		{errors.New("disk full"), storage.StatusFailed, metrics.OutcomeFailed},
	}

	for _, tt := range tests {
		status, outcome := classify(tt.err)
		assert.Equal(t, tt.status, status, "err=%v", tt.err)
		assert.Equal(t, tt.outcome, outcome, "err=%v", tt.err)
	}
}

func TestLogFormat(t *testing.T) {
	_, err := executeCommand(t, "status", "--db", testDBPath(t), "--log-format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log format")

	var buf bytes.Buffer
	newLogger(false, "json", &buf).Debug("hidden")
	assert.Empty(t, buf.String())

	newLogger(true, "json", &buf).Debug("shown", slog.Int("n", 1))
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

type failingServer struct{ err error }

func (s failingServer) Shutdown(ctx context.Context) error { return s.err }

func TestStopMetricsLogsShutdownError(t *testing.T) {
	prev := logger
	t.Cleanup(func() { logger = prev })

	var buf bytes.Buffer
	logger = newLogger(false, "json", &buf)

	stopMetrics(failingServer{}, ":9090")
	assert.Empty(t, buf.String())

	stopMetrics(failingServer{err: errors.New("listener stuck")}, ":9090")
	assert.Contains(t, buf.String(), `"msg":"metrics server shutdown failed"`)
	assert.Contains(t, buf.String(), `"error":"listener stuck"`)
	assert.Contains(t, buf.String(), `"addr":":9090"`)
}

func newTestReplayModel(t *testing.T, scramble string) *replayModel {
	t.Helper()

	goal := gocube.SolvedCube()
	moves := gocube.MustParseMoves(scramble)
	initial := goal.ApplyMoves(moves)
	solution := gocube.InvertMoves(moves)

	var records []storage.MoveRecord
	for i, m := range solution {
		records = append(records, storage.MoveRecord{
			MoveIndex: i,
			Face:      m.Face.String(),
			Steps:     m.Steps,
			Notation:  m.Notation(),
		})
	}

	run := &storage.Run{
		RunID:            "run-1",
		InitialSignature: initial.Signature(),
		GoalSignature:    goal.Signature(),
	}

	model, err := newReplayModel(run, records, 0)
	require.NoError(t, err)
	model.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	return model
}

func pressKey(m *replayModel, key string) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return cmd
}

func TestReplayModelStepping(t *testing.T) {
	m := newTestReplayModel(t, "R U F")
	require.Len(t, m.moves, 3)
	assert.Equal(t, defaultReplayInterval, m.interval)
	assert.False(t, m.tracker.IsSolved())

	pressKey(m, "n")
	assert.Equal(t, 1, m.index)
	assert.True(t, strings.Contains(m.View(), "Move 1/3"))

	pressKey(m, "e")
	assert.Equal(t, 3, m.index)
	assert.True(t, m.tracker.IsSolved())
	assert.Contains(t, m.View(), "SOLVED!")

	// Stepping past the end is a no-op.
	pressKey(m, "n")
	assert.Equal(t, 3, m.index)

	pressKey(m, "b")
	assert.Equal(t, 2, m.index)
	assert.False(t, m.tracker.IsSolved())

	pressKey(m, "r")
	assert.Equal(t, 0, m.index)
	assert.Equal(t, gocube.StageScrambled, m.tracker.CurrentStage())

	pressKey(m, "+")
	assert.Equal(t, defaultReplayInterval/2, m.interval)
}

func TestReplayModelPlayback(t *testing.T) {
	m := newTestReplayModel(t, "R U")

	cmd := pressKey(m, "p")
	assert.True(t, m.playing)
	assert.NotNil(t, cmd)

	_, cmd = m.Update(replayTickMsg{})
	assert.Equal(t, 1, m.index)
	assert.NotNil(t, cmd)

	_, cmd = m.Update(replayTickMsg{})
	assert.Equal(t, 2, m.index)
	assert.False(t, m.playing)
	assert.Nil(t, cmd)
	assert.True(t, m.tracker.IsSolved())

	// Ticks after playback stopped are ignored.
	m.Update(replayTickMsg{})
	assert.Equal(t, 2, m.index)

	cmd = pressKey(m, "q")
	assert.NotNil(t, cmd)
	assert.Equal(t, "Replay ended.\n", m.View())
}
