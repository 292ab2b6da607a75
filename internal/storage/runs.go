package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/gocube_solver"
)

// timeLayout has a fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Status is the outcome of a run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusSolved    Status = "solved"
	StatusExhausted Status = "exhausted"
	StatusCanceled  Status = "canceled"
	StatusFailed    Status = "failed"
)

// Run represents one solver invocation in the database.
type Run struct {
	RunID            string
	StartedAt        time.Time
	EndedAt          *time.Time
	DurationMs       *int64
	Status           Status
	InitialSignature string
	GoalSignature    string
	ScrambleText     *string
	DepthLimit       int
	SignatureStore   string
	Popped           int
	Expanded         int
	Duplicates       int
	Cutoffs          int
	MaxFrontier      int
	SolutionLength   *int
	ErrorText        *string
	Notes            *string
	AppVersion       *string
}

// Initial rebuilds the start cube of the run.
func (r *Run) Initial() (gocube.Cube, error) {
	return gocube.ParseSignature(r.InitialSignature)
}

// Goal rebuilds the goal cube of the run.
func (r *Run) Goal() (gocube.Cube, error) {
	return gocube.ParseSignature(r.GoalSignature)
}

// RunInput describes a run about to start.
type RunInput struct {
	Initial        gocube.Cube
	Goal           gocube.Cube
	Scramble       string
	DepthLimit     int
	SignatureStore string
	Notes          string
	AppVersion     string
}

// RunResult describes how a run ended.
type RunResult struct {
	Status         Status
	Stats          gocube.SearchStats
	SolutionLength int // Ignored unless Status is StatusSolved
	Err            error
}

// RunRepository provides CRUD operations for runs.
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new run repository.
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create records a new running run and returns its ID.
func (r *RunRepository) Create(in RunInput) (string, error) {
	id := uuid.New().String()
	startedAt := time.Now().UTC()

	store := in.SignatureStore
	if store == "" {
		store = "memory"
	}

	_, err := r.db.Exec(`
		INSERT INTO runs (run_id, started_at, status, initial_signature, goal_signature,
			scramble_text, depth_limit, signature_store, notes, app_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, startedAt.Format(timeLayout), string(StatusRunning),
		in.Initial.Signature(), in.Goal.Signature(),
		nullString(in.Scramble), in.DepthLimit, store,
		nullString(in.Notes), nullString(in.AppVersion))

	if err != nil {
		return "", fmt.Errorf("failed to create run: %w", err)
	}

	return id, nil
}

// Finish marks a run as ended with the given result.
func (r *RunRepository) Finish(runID string, res RunResult) error {
	endedAt := time.Now().UTC()

	var startedAtStr string
	err := r.db.QueryRow("SELECT started_at FROM runs WHERE run_id = ?", runID).Scan(&startedAtStr)
	if err != nil {
		return fmt.Errorf("failed to get run start time: %w", err)
	}

	startedAt, err := time.Parse(timeLayout, startedAtStr)
	if err != nil {
		return fmt.Errorf("failed to parse start time: %w", err)
	}

	durationMs := endedAt.Sub(startedAt).Milliseconds()

	var solutionLength *int
	if res.Status == StatusSolved {
		solutionLength = &res.SolutionLength
	}
	var errText *string
	if res.Err != nil {
		s := res.Err.Error()
		errText = &s
	}

	_, err = r.db.Exec(`
		UPDATE runs
		SET ended_at = ?, duration_ms = ?, status = ?,
			popped = ?, expanded = ?, duplicates = ?, cutoffs = ?, max_frontier = ?,
			solution_length = ?, error_text = ?
		WHERE run_id = ?
	`, endedAt.Format(timeLayout), durationMs, string(res.Status),
		res.Stats.Popped, res.Stats.Expanded, res.Stats.Duplicates, res.Stats.Cutoffs, res.Stats.MaxFrontier,
		solutionLength, errText, runID)

	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	return nil
}

const runColumns = `run_id, started_at, ended_at, duration_ms, status, initial_signature, goal_signature,
	scramble_text, depth_limit, signature_store, popped, expanded, duplicates, cutoffs, max_frontier,
	solution_length, error_text, notes, app_version`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var status string
	var startedAtStr string
	var endedAtStr sql.NullString

	err := row.Scan(
		&run.RunID, &startedAtStr, &endedAtStr, &run.DurationMs, &status,
		&run.InitialSignature, &run.GoalSignature, &run.ScrambleText,
		&run.DepthLimit, &run.SignatureStore,
		&run.Popped, &run.Expanded, &run.Duplicates, &run.Cutoffs, &run.MaxFrontier,
		&run.SolutionLength, &run.ErrorText, &run.Notes, &run.AppVersion,
	)
	if err != nil {
		return nil, err
	}

	run.Status = Status(status)
	run.StartedAt, _ = time.Parse(timeLayout, startedAtStr)
	if endedAtStr.Valid {
		t, _ := time.Parse(timeLayout, endedAtStr.String)
		run.EndedAt = &t
	}

	return &run, nil
}

// Get retrieves a run by ID. It returns nil if the run does not exist.
func (r *RunRepository) Get(runID string) (*Run, error) {
	run, err := scanRun(r.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// Latest retrieves the most recent run, or nil if there is none.
func (r *RunRepository) Latest() (*Run, error) {
	run, err := scanRun(r.db.QueryRow(`SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, rowid DESC LIMIT 1`))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}
	return run, nil
}

// List retrieves recent runs, newest first.
func (r *RunRepository) List(limit int) ([]Run, error) {
	rows, err := r.db.Query(`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}

	return runs, rows.Err()
}

// CountByStatus returns the number of runs per status.
func (r *RunRepository) CountByStatus() (map[Status]int, error) {
	rows, err := r.db.Query("SELECT status, COUNT(*) FROM runs GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to count runs: %w", err)
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan run count: %w", err)
		}
		counts[Status(status)] = n
	}

	return counts, rows.Err()
}

// Delete deletes a run and its moves (cascading).
func (r *RunRepository) Delete(runID string) error {
	_, err := r.db.Exec("DELETE FROM runs WHERE run_id = ?", runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	return nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
