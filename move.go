package gocube

import (
	"fmt"
	"strings"
)

// FaceRef names the role a face currently plays on a cube.
// It identifies a position (front, right, ...), not a fixed physical side.
type FaceRef int

const (
	Front FaceRef = iota
	Right
	Back
	Left
	Top
	Bottom
)

// faceRefCount is the number of faces on a cube.
const faceRefCount = 6

// FaceRefs returns every face reference in canonical order.
func FaceRefs() []FaceRef {
	return []FaceRef{Front, Right, Back, Left, Top, Bottom}
}

// String returns the single-letter notation for the face.
func (f FaceRef) String() string {
	switch f {
	case Front:
		return "F"
	case Right:
		return "R"
	case Back:
		return "B"
	case Left:
		return "L"
	case Top:
		return "U"
	case Bottom:
		return "D"
	default:
		return "?"
	}
}

// Name returns a human-readable name for the face.
func (f FaceRef) Name() string {
	switch f {
	case Front:
		return "front"
	case Right:
		return "right"
	case Back:
		return "back"
	case Left:
		return "left"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Valid returns true if f is one of the six faces.
func (f FaceRef) Valid() bool {
	return f >= Front && f <= Bottom
}

// ParseFaceRef parses a notation letter or a face name.
func ParseFaceRef(s string) (FaceRef, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "f", "front":
		return Front, nil
	case "r", "right":
		return Right, nil
	case "b", "back":
		return Back, nil
	case "l", "left":
		return Left, nil
	case "u", "top", "up":
		return Top, nil
	case "d", "bottom", "down":
		return Bottom, nil
	default:
		return Front, fmt.Errorf("%w: unknown face %q", ErrMalformedInput, s)
	}
}

// Move is a clockwise quarter-turn count applied to one layer.
type Move struct {
	Face  FaceRef // Which layer to turn
	Steps int     // Quarter turns, 1..3
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R2, R'
func (m Move) Notation() string {
	suffix := ""
	switch normalizeSteps(m.Steps) {
	case 2:
		suffix = "2"
	case 3:
		suffix = "'"
	}
	return m.Face.String() + suffix
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the move that undoes m.
// R becomes R', R' becomes R, R2 stays R2.
func (m Move) Inverse() Move {
	return Move{Face: m.Face, Steps: normalizeSteps(4 - m.Steps)}
}

// IsReverse returns true if other undoes m.
func (m Move) IsReverse(other Move) bool {
	if m.Face != other.Face {
		return false
	}
	return m.Steps+other.Steps == 4
}

// ParseMove parses a standard notation string into a Move.
// Examples: R, R', R2, U, U', U2
// Returns an error if the notation is invalid.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, ErrInvalidNotation
	}

	var face FaceRef
	switch s[0] {
	case 'F', 'f':
		face = Front
	case 'R', 'r':
		face = Right
	case 'B', 'b':
		face = Back
	case 'L', 'l':
		face = Left
	case 'U', 'u':
		face = Top
	case 'D', 'd':
		face = Bottom
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	steps := 1
	if len(s) > 1 {
		switch s[1:] {
		case "'", "`":
			steps = 3
		case "2", "2'", "2`":
			steps = 2
		default:
			return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
		}
	}

	return Move{Face: face, Steps: steps}, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// InvertMoves returns the sequence that undoes moves.
func InvertMoves(moves []Move) []Move {
	inv := make([]Move, len(moves))
	for i, m := range moves {
		inv[len(moves)-1-i] = m.Inverse()
	}
	return inv
}
