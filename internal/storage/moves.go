package storage

import (
	"database/sql"
	"fmt"

	"github.com/SeamusWaldron/gocube_solver"
)

// MoveRecord represents one solution move in the database, with the cube
// state and stage reached after it.
type MoveRecord struct {
	MoveID    int64
	RunID     string
	MoveIndex int
	Face      string
	Steps     int
	Notation  string
	Stage     string
	Signature string
}

// Move converts the record back into a gocube.Move.
func (m MoveRecord) Move() (gocube.Move, error) {
	face, err := gocube.ParseFaceRef(m.Face)
	if err != nil {
		return gocube.Move{}, err
	}
	return gocube.Move{Face: face, Steps: m.Steps}, nil
}

// MoveRepository provides CRUD operations for solution moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

// CreateBatch stores a run's solution in a single transaction. Each move is
// replayed from initial so the stage and state after it are stored too.
func (r *MoveRepository) CreateBatch(runID string, initial, goal gocube.Cube, moves []gocube.Move) error {
	tracker := gocube.NewTracker(initial, goal)

	return r.db.Transaction(func(tx *sql.Tx) error {
		for i, move := range moves {
			tracker.ApplyMove(move)
			_, err := tx.Exec(`
				INSERT INTO run_moves (run_id, move_index, face, steps, notation, stage, signature)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, runID, i, move.Face.String(), move.Steps, move.Notation(),
				tracker.CurrentStage().String(), tracker.Cube().Signature())
			if err != nil {
				return fmt.Errorf("failed to create move %d: %w", i, err)
			}
		}
		return nil
	})
}

// GetByRun retrieves all moves for a run in order.
func (r *MoveRepository) GetByRun(runID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_id, run_id, move_index, face, steps, notation, stage, signature
		FROM run_moves
		WHERE run_id = ?
		ORDER BY move_index
	`, runID)

	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		err := rows.Scan(&m.MoveID, &m.RunID, &m.MoveIndex, &m.Face, &m.Steps, &m.Notation, &m.Stage, &m.Signature)
		if err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}

	return moves, rows.Err()
}

// Count returns the number of moves stored for a run.
func (r *MoveRepository) Count(runID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM run_moves WHERE run_id = ?", runID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}

// ToMoves converts MoveRecords to a gocube.Move slice.
func ToMoves(records []MoveRecord) ([]gocube.Move, error) {
	moves := make([]gocube.Move, len(records))
	for i, rec := range records {
		m, err := rec.Move()
		if err != nil {
			return nil, fmt.Errorf("failed to decode move %d: %w", rec.MoveIndex, err)
		}
		moves[i] = m
	}
	return moves, nil
}
