package gocube

// Tracker wraps a Cube and provides stage change detection.
type Tracker struct {
	start         Cube
	cube          Cube
	goal          Cube
	moves         []Move
	highestStage  Stage // Monotonic - never goes backwards
	stageCallback func(stage Stage)
}

// NewTracker creates a tracker at start, measuring progress towards goal.
func NewTracker(start, goal Cube) *Tracker {
	t := &Tracker{start: start, goal: goal}
	t.Reset()
	return t
}

// SetStageCallback sets a callback that fires when a new highest stage is
// reached.
func (t *Tracker) SetStageCallback(cb func(stage Stage)) {
	t.stageCallback = cb
}

// Reset returns the tracker to its start cube.
func (t *Tracker) Reset() {
	t.cube = t.start.ApplyMoves(nil)
	t.moves = nil
	t.highestStage = DetectStage(t.cube, t.goal)
}

// ApplyMove applies a move and checks for stage transitions.
func (t *Tracker) ApplyMove(m Move) {
	t.cube = t.cube.ApplyMove(m)
	t.moves = append(t.moves, m)
	t.checkStageTransition()
}

// ApplyMoves applies multiple moves.
func (t *Tracker) ApplyMoves(moves []Move) {
	for _, m := range moves {
		t.ApplyMove(m)
	}
}

// checkStageTransition fires the callback when a new high is reached.
func (t *Tracker) checkStageTransition() {
	current := t.CurrentStage()
	if current > t.highestStage {
		t.highestStage = current
		if t.stageCallback != nil {
			t.stageCallback(current)
		}
	}
}

// CurrentStage returns the stage of the current cube.
// This reflects the raw cube state and may go backwards.
func (t *Tracker) CurrentStage() Stage {
	return DetectStage(t.cube, t.goal)
}

// HighestStage returns the highest stage reached since the last reset.
func (t *Tracker) HighestStage() Stage {
	return t.highestStage
}

// IsSolved returns true if the current cube equals the goal.
func (t *Tracker) IsSolved() bool {
	return t.cube.Equal(t.goal)
}

// Moves returns the moves applied since the last reset.
func (t *Tracker) Moves() []Move {
	return t.moves
}

// Cube returns the current cube.
func (t *Tracker) Cube() Cube {
	return t.cube
}

// CubeString returns a string representation of the current cube.
func (t *Tracker) CubeString() string {
	return t.cube.String()
}
