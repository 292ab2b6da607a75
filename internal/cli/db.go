package cli

import (
	"fmt"
	"time"

	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

// openDB opens the run database from --db or the default path.
func openDB() (*storage.DB, error) {
	var db *storage.DB
	var err error

	if dbPath == "" {
		db, err = storage.OpenDefault()
	} else {
		db, err = storage.Open(dbPath)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// resolveRun picks a run by explicit ID or, with last set, the most recent.
func resolveRun(runs *storage.RunRepository, args []string, last bool) (*storage.Run, error) {
	var run *storage.Run
	var err error

	switch {
	case last:
		run, err = runs.Latest()
		if err == nil && run == nil {
			return nil, fmt.Errorf("no runs found")
		}
	case len(args) > 0:
		run, err = runs.Get(args[0])
		if err == nil && run == nil {
			return nil, fmt.Errorf("run not found: %s", args[0])
		}
	default:
		return nil, fmt.Errorf("please provide a run ID or use --last")
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.1fs", mins, secs)
}
