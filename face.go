package gocube

import (
	"fmt"
	"strings"
)

// FaceSize is the number of facelets along one side of a face.
const FaceSize = 3

// Color represents a facelet symbol.
type Color byte

const (
	White  Color = 'W'
	Yellow Color = 'Y'
	Green  Color = 'G'
	Blue   Color = 'B'
	Red    Color = 'R'
	Orange Color = 'O'

	// Wildcard matches any facelet in FuzzyMatch. It is only meaningful in
	// match targets, never in a cube being searched.
	Wildcard Color = '*'
)

func (c Color) String() string {
	return string(rune(c))
}

// Valid returns true if c is one of the six solid colors.
func (c Color) Valid() bool {
	switch c {
	case White, Yellow, Green, Blue, Red, Orange:
		return true
	default:
		return false
	}
}

// EdgeRef identifies one border of a face.
type EdgeRef int

const (
	EdgeTop EdgeRef = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

func (e EdgeRef) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeRight:
		return "right"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	default:
		return "?"
	}
}

// Face is a 3x3 grid of facelets in row-major order.
//
// Face is a value type: every transform returns a new Face and the receiver
// is never modified.
type Face [FaceSize][FaceSize]Color

// NewFace builds a face from three rows of three symbols each.
func NewFace(rows ...string) (Face, error) {
	var f Face
	if len(rows) != FaceSize {
		return f, fmt.Errorf("%w: face has %d rows, want %d", ErrMalformedInput, len(rows), FaceSize)
	}
	for r, row := range rows {
		if len(row) != FaceSize {
			return f, fmt.Errorf("%w: row %d has %d facelets, want %d", ErrMalformedInput, r, len(row), FaceSize)
		}
		for c := 0; c < FaceSize; c++ {
			f[r][c] = Color(row[c])
		}
	}
	return f, nil
}

// MustFace is like NewFace but panics on malformed input.
// Intended for tests and package-level fixtures.
func MustFace(rows ...string) Face {
	f, err := NewFace(rows...)
	if err != nil {
		panic(err)
	}
	return f
}

// UniformFace returns a face with every facelet set to c.
func UniformFace(c Color) Face {
	var f Face
	for r := 0; r < FaceSize; r++ {
		for col := 0; col < FaceSize; col++ {
			f[r][col] = c
		}
	}
	return f
}

// TopEdge returns row 0.
func (f Face) TopEdge() [FaceSize]Color {
	return f[0]
}

// BottomEdge returns the last row.
func (f Face) BottomEdge() [FaceSize]Color {
	return f[FaceSize-1]
}

// LeftEdge returns column 0 read top to bottom.
func (f Face) LeftEdge() [FaceSize]Color {
	var e [FaceSize]Color
	for r := 0; r < FaceSize; r++ {
		e[r] = f[r][0]
	}
	return e
}

// RightEdge returns the last column read top to bottom.
func (f Face) RightEdge() [FaceSize]Color {
	var e [FaceSize]Color
	for r := 0; r < FaceSize; r++ {
		e[r] = f[r][FaceSize-1]
	}
	return e
}

// Edge returns the named border.
func (f Face) Edge(edge EdgeRef) [FaceSize]Color {
	switch edge {
	case EdgeTop:
		return f.TopEdge()
	case EdgeBottom:
		return f.BottomEdge()
	case EdgeLeft:
		return f.LeftEdge()
	default:
		return f.RightEdge()
	}
}

// Rotate returns the face turned 90 degrees clockwise, steps times.
func (f Face) Rotate(steps int) Face {
	steps = normalizeSteps(steps)
	out := f
	for i := 0; i < steps; i++ {
		prev := out
		for r := 0; r < FaceSize; r++ {
			for c := 0; c < FaceSize; c++ {
				out[r][c] = prev[FaceSize-1-c][r]
			}
		}
	}
	return out
}

// Mirror reflects the face about the given edge. Top and Bottom swap the
// row order; Left and Right reverse each row.
func (f Face) Mirror(about EdgeRef) Face {
	var out Face
	for r := 0; r < FaceSize; r++ {
		for c := 0; c < FaceSize; c++ {
			switch about {
			case EdgeTop, EdgeBottom:
				out[r][c] = f[FaceSize-1-r][c]
			default:
				out[r][c] = f[r][FaceSize-1-c]
			}
		}
	}
	return out
}

// ReplaceEdge returns a copy of the face with one border overwritten.
// values are written in the direction the matching edge accessor reads.
func (f Face) ReplaceEdge(edge EdgeRef, values [FaceSize]Color) Face {
	out := f
	switch edge {
	case EdgeTop:
		out[0] = values
	case EdgeBottom:
		out[FaceSize-1] = values
	case EdgeLeft:
		for r := 0; r < FaceSize; r++ {
			out[r][0] = values[r]
		}
	default:
		for r := 0; r < FaceSize; r++ {
			out[r][FaceSize-1] = values[r]
		}
	}
	return out
}

// FuzzyMatch returns true if every facelet is equal to its counterpart in
// other, or either of the two is the Wildcard.
func (f Face) FuzzyMatch(other Face) bool {
	if f == other {
		return true
	}
	for r := 0; r < FaceSize; r++ {
		if f[r] == other[r] {
			continue
		}
		for c := 0; c < FaceSize; c++ {
			a, b := f[r][c], other[r][c]
			if a != b && a != Wildcard && b != Wildcard {
				return false
			}
		}
	}
	return true
}

// Signature returns the facelets in row-major order.
func (f Face) Signature() string {
	var b strings.Builder
	b.Grow(FaceSize * FaceSize)
	f.writeSignature(&b)
	return b.String()
}

func (f Face) writeSignature(b *strings.Builder) {
	for r := 0; r < FaceSize; r++ {
		for c := 0; c < FaceSize; c++ {
			b.WriteByte(byte(f[r][c]))
		}
	}
}

// Rows returns the face as three strings, one per row.
func (f Face) Rows() []string {
	rows := make([]string, FaceSize)
	for r := 0; r < FaceSize; r++ {
		row := make([]byte, FaceSize)
		for c := 0; c < FaceSize; c++ {
			row[c] = byte(f[r][c])
		}
		rows[r] = string(row)
	}
	return rows
}

func (f Face) String() string {
	return strings.Join(f.Rows(), "/")
}

// normalizeSteps maps any quarter-turn count into 0..3.
func normalizeSteps(steps int) int {
	steps %= 4
	if steps < 0 {
		steps += 4
	}
	return steps
}
