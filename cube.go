package gocube

import (
	"fmt"
	"strings"
)

// SignatureLength is the length of a cube signature: six faces of nine
// facelets.
const SignatureLength = faceRefCount * FaceSize * FaceSize

// Cube represents a 3x3 Rubik's cube as six faces, one per FaceRef.
//
// Cube is an immutable value. Besides the faces it carries two pieces of
// bookkeeping that never take part in equality or the signature: the face
// that has to be brought back to the front to undo a whole-cube
// reorientation, and the move that produced the cube from its parent.
type Cube struct {
	faces [faceRefCount]Face

	universalFront FaceRef
	fromMove       Move
	hasFromMove    bool
}

// NewCube creates a cube from its six faces.
func NewCube(front, right, back, left, top, bottom Face) Cube {
	return Cube{faces: [faceRefCount]Face{front, right, back, left, top, bottom}}
}

// SolvedCube returns the default goal: blue front, red right, green back,
// orange left, yellow top, white bottom.
func SolvedCube() Cube {
	return NewCube(
		UniformFace(Blue),
		UniformFace(Red),
		UniformFace(Green),
		UniformFace(Orange),
		UniformFace(Yellow),
		UniformFace(White),
	)
}

// ParseSignature rebuilds a cube from the output of Signature.
func ParseSignature(s string) (Cube, error) {
	if len(s) != SignatureLength {
		return Cube{}, fmt.Errorf("%w: signature has %d facelets, want %d", ErrMalformedInput, len(s), SignatureLength)
	}

	var c Cube
	i := 0
	for f := 0; f < faceRefCount; f++ {
		for r := 0; r < FaceSize; r++ {
			for col := 0; col < FaceSize; col++ {
				c.faces[f][r][col] = Color(s[i])
				i++
			}
		}
	}
	return c, nil
}

// Face returns the face currently playing the given role.
func (c Cube) Face(ref FaceRef) Face {
	return c.faces[ref]
}

// Faces returns all six faces in FaceRef order.
func (c Cube) Faces() [6]Face {
	return c.faces
}

// UniversalFrontFace returns the face that must be brought to the front to
// undo the reorientation that produced this cube.
func (c Cube) UniversalFrontFace() FaceRef {
	return c.universalFront
}

// FromMove returns the move that produced this cube from its parent, if any.
func (c Cube) FromMove() (Move, bool) {
	return c.fromMove, c.hasFromMove
}

// WithFromMove returns a copy of the cube tagged with the generating move.
func (c Cube) WithFromMove(m Move) Cube {
	c.fromMove = m
	c.hasFromMove = true
	return c
}

// Equal reports whether both cubes have the same faces. Bookkeeping is
// ignored.
func (c Cube) Equal(other Cube) bool {
	return c.faces == other.faces
}

// Signature returns the facelets of Front, Right, Back, Left, Top and
// Bottom, each row-major. Two cubes are Equal iff their signatures match.
func (c Cube) Signature() string {
	var b strings.Builder
	b.Grow(SignatureLength)
	for _, f := range c.faces {
		f.writeSignature(&b)
	}
	return b.String()
}

// RotateCube re-views the cube so that target plays the Front role. The
// physical cube is unchanged; UniversalFrontFace on the result names the
// face to pass to RotateCube to get the original view back.
func (c Cube) RotateCube(target FaceRef) Cube {
	ro := reorientations[target]
	out := c
	for role, p := range ro.faces {
		out.faces[role] = p.transform.apply(c.faces[p.from])
	}
	out.universalFront = ro.undo
	return out
}

// RotateLayer returns the cube with one layer turned clockwise (viewed
// face-on) by steps quarter turns. Bookkeeping is carried over unchanged.
func (c Cube) RotateLayer(ref FaceRef, steps int) Cube {
	steps = normalizeSteps(steps)
	if steps == 0 {
		return c
	}
	if ref == Front {
		return c.rotateFrontLayer(steps)
	}

	out := c.RotateCube(ref).rotateFrontLayer(steps)
	out = out.RotateCube(out.universalFront)
	out.universalFront = c.universalFront
	return out
}

// rotateFrontLayer turns the front face and moves the four border strips
// around it. Every step reads from the cube as it was before that step.
func (c Cube) rotateFrontLayer(steps int) Cube {
	out := c
	for i := 0; i < steps; i++ {
		prev := out
		out.faces[Front] = prev.faces[Front].Rotate(1)
		out.faces[Top] = prev.faces[Top].ReplaceEdge(EdgeBottom, prev.faces[Left].RightEdge())
		out.faces[Right] = prev.faces[Right].ReplaceEdge(EdgeLeft, prev.faces[Top].BottomEdge())
		out.faces[Bottom] = prev.faces[Bottom].ReplaceEdge(EdgeTop, prev.faces[Right].LeftEdge())
		out.faces[Left] = prev.faces[Left].ReplaceEdge(EdgeRight, prev.faces[Bottom].TopEdge())
	}
	return out
}

// ApplyMove returns the physical state after m. The result carries no
// bookkeeping.
func (c Cube) ApplyMove(m Move) Cube {
	out := c.RotateLayer(m.Face, m.Steps)
	return Cube{faces: out.faces}
}

// ApplyMoves applies a sequence of moves in order.
func (c Cube) ApplyMoves(moves []Move) Cube {
	out := Cube{faces: c.faces}
	for _, m := range moves {
		out = out.ApplyMove(m)
	}
	return out
}

// Successors returns every cube one move away, tagged with the move that
// produced it. The face of the move that produced c is skipped: turning it
// again either returns to the parent or duplicates a sibling of c.
func (c Cube) Successors() []Cube {
	out := make([]Cube, 0, faceRefCount*3)
	for _, ref := range FaceRefs() {
		if c.hasFromMove && c.fromMove.Face == ref {
			continue
		}
		for steps := 1; steps <= 3; steps++ {
			m := Move{Face: ref, Steps: steps}
			out = append(out, c.RotateLayer(ref, steps).WithFromMove(m))
		}
	}
	return out
}

// FuzzyMatch returns true if every face fuzzy-matches its counterpart in
// other. other may contain wildcards.
func (c Cube) FuzzyMatch(other Cube) bool {
	for i := range c.faces {
		if !c.faces[i].FuzzyMatch(other.faces[i]) {
			return false
		}
	}
	return true
}

// String returns the cube as an unfolded net:
//
//	      U
//	L F R B
//	      D
func (c Cube) String() string {
	var b strings.Builder

	writeRow := func(f Face, row int) {
		for col := 0; col < FaceSize; col++ {
			b.WriteString(f[row][col].String())
			b.WriteByte(' ')
		}
	}

	// Top face (indented)
	for row := 0; row < FaceSize; row++ {
		b.WriteString("      ")
		writeRow(c.faces[Top], row)
		b.WriteByte('\n')
	}

	// Left, Front, Right, Back side by side
	for row := 0; row < FaceSize; row++ {
		for _, ref := range []FaceRef{Left, Front, Right, Back} {
			writeRow(c.faces[ref], row)
		}
		b.WriteByte('\n')
	}

	// Bottom face (indented)
	for row := 0; row < FaceSize; row++ {
		b.WriteString("      ")
		writeRow(c.faces[Bottom], row)
		b.WriteByte('\n')
	}

	return b.String()
}
