package gocube

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Algorithm grammar: a sequence of moves and parenthesised groups, where a
// group may carry a repeat count.
//
//	R U R' U'
//	(R U R' U')6
//	F (R U)2 (R' U')2 F'
type algorithm struct {
	Items []*algorithmItem `@@*`
}

type algorithmItem struct {
	Group *algorithmGroup `  @@`
	Move  string          `| @Move`
}

type algorithmGroup struct {
	Items  []*algorithmItem `"(" @@* ")"`
	Repeat *int             `@Int?`
}

var algorithmLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Move", Pattern: "[FRBLUDfrblud](?:2'|2\x60|2|'|\x60)?"},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[()]`},
	{Name: "whitespace", Pattern: `[ \t\r\n,]+`},
})

var parseAlgorithm = participle.MustBuild[algorithm](
	participle.Lexer(algorithmLexer),
)

// ParseMoves parses a move sequence such as "R U R' U'" or "(R U R' U')2".
// An empty string yields no moves.
func ParseMoves(s string) ([]Move, error) {
	alg, err := parseAlgorithm.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNotation, err)
	}

	var moves []Move
	if err := expandItems(alg.Items, &moves); err != nil {
		return nil, err
	}
	return moves, nil
}

// MustParseMoves is like ParseMoves but panics on invalid notation.
func MustParseMoves(s string) []Move {
	moves, err := ParseMoves(s)
	if err != nil {
		panic(err)
	}
	return moves
}

func expandItems(items []*algorithmItem, out *[]Move) error {
	for _, item := range items {
		if item.Group == nil {
			m, err := ParseMove(item.Move)
			if err != nil {
				return err
			}
			*out = append(*out, m)
			continue
		}

		repeat := 1
		if item.Group.Repeat != nil {
			repeat = *item.Group.Repeat
		}
		for i := 0; i < repeat; i++ {
			if err := expandItems(item.Group.Items, out); err != nil {
				return err
			}
		}
	}
	return nil
}
