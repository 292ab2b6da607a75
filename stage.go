package gocube

// Stage represents how much of the goal a cube already shows, judged from
// the front layer backwards. Stages progress from Scrambled (0) to Solved,
// allowing comparison with < and > operators.
type Stage int

const (
	// StageScrambled indicates no stage pattern matches.
	StageScrambled Stage = iota

	// StageFrontCross indicates the centre and four edge facelets of the
	// front face match the goal.
	StageFrontCross

	// StageFrontFace indicates the whole front face matches the goal.
	StageFrontFace

	// StageFrontLayer indicates the front face and the adjacent strip of
	// each neighbouring face match the goal.
	StageFrontLayer

	// StageTwoLayers indicates the front layer and the middle slice behind
	// it match the goal.
	StageTwoLayers

	// StageSolved indicates the cube equals the goal.
	StageSolved
)

// String returns a short identifier for the stage.
func (s Stage) String() string {
	switch s {
	case StageScrambled:
		return "scrambled"
	case StageFrontCross:
		return "front_cross"
	case StageFrontFace:
		return "front_face"
	case StageFrontLayer:
		return "front_layer"
	case StageTwoLayers:
		return "two_layers"
	case StageSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// DisplayName returns a human-readable name for the stage.
func (s Stage) DisplayName() string {
	switch s {
	case StageScrambled:
		return "Scrambled"
	case StageFrontCross:
		return "Front Cross"
	case StageFrontFace:
		return "Front Face"
	case StageFrontLayer:
		return "Front Layer"
	case StageTwoLayers:
		return "Two Layers"
	case StageSolved:
		return "Solved"
	default:
		return "Unknown"
	}
}

// IsComplete returns true if the cube is solved.
func (s Stage) IsComplete() bool {
	return s == StageSolved
}

// cell addresses one facelet.
type cell struct {
	face     FaceRef
	row, col int
}

func rowCells(face FaceRef, row int) []cell {
	cells := make([]cell, FaceSize)
	for c := 0; c < FaceSize; c++ {
		cells[c] = cell{face: face, row: row, col: c}
	}
	return cells
}

func colCells(face FaceRef, col int) []cell {
	cells := make([]cell, FaceSize)
	for r := 0; r < FaceSize; r++ {
		cells[r] = cell{face: face, row: r, col: col}
	}
	return cells
}

func concatCells(groups ...[]cell) []cell {
	var out []cell
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

var (
	frontCrossCells = []cell{
		{Front, 0, 1}, {Front, 1, 0}, {Front, 1, 1}, {Front, 1, 2}, {Front, 2, 1},
	}

	frontFaceCells = concatCells(rowCells(Front, 0), rowCells(Front, 1), rowCells(Front, 2))

	// The strips a front-layer turn moves.
	frontLayerCells = concatCells(
		frontFaceCells,
		rowCells(Top, FaceSize-1),
		colCells(Right, 0),
		rowCells(Bottom, 0),
		colCells(Left, FaceSize-1),
	)

	twoLayerCells = concatCells(
		frontLayerCells,
		rowCells(Top, 1),
		colCells(Right, 1),
		rowCells(Bottom, 1),
		colCells(Left, 1),
	)
)

// stagePatterns lists masked stages from the highest down.
var stagePatterns = []struct {
	stage Stage
	cells []cell
}{
	{StageTwoLayers, twoLayerCells},
	{StageFrontLayer, frontLayerCells},
	{StageFrontFace, frontFaceCells},
	{StageFrontCross, frontCrossCells},
}

// StagePattern returns the fuzzy-match target for a stage: the goal with
// every facelet outside the stage replaced by Wildcard.
func StagePattern(stage Stage, goal Cube) Cube {
	if stage >= StageSolved {
		return Cube{faces: goal.faces}
	}

	var pattern Cube
	for i := range pattern.faces {
		pattern.faces[i] = UniformFace(Wildcard)
	}
	for _, p := range stagePatterns {
		if p.stage != stage {
			continue
		}
		for _, c := range p.cells {
			pattern.faces[c.face][c.row][c.col] = goal.faces[c.face][c.row][c.col]
		}
	}
	return pattern
}

// DetectStage returns the highest stage of goal that c already shows.
func DetectStage(c, goal Cube) Stage {
	if c.Equal(goal) {
		return StageSolved
	}
	for _, p := range stagePatterns {
		if c.FuzzyMatch(StagePattern(p.stage, goal)) {
			return p.stage
		}
	}
	return StageScrambled
}
