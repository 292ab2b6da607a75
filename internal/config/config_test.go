package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube_solver"
)

const scrambleFile = `
scramble: "R U R' U'"
search:
  depth_limit: 6
  store: memory
`

const fullFile = `
goal:
  front: [BBB, BBB, BBB]
  right: [RRR, RRR, RRR]
  back: [GGG, GGG, GGG]
  left: [OOO, OOO, OOO]
  top: [YYY, YYY, YYY]
  bottom: [WWW, WWW, WWW]
initial:
  front: [BBB, BBB, BBB]
  right: [RRR, RRR, RRR]
  back: [GGG, GGG, GGG]
  left: [OOO, OOO, OOO]
  top: [YYY, YYY, YYY]
  bottom: [WWW, WWW, WWW]
search:
  store: badger
  badger_dir: /tmp/gocube-expanded
`

func TestParseScramble(t *testing.T) {
	f, err := Parse([]byte(scrambleFile))
	require.NoError(t, err)
	assert.Equal(t, 6, f.DepthLimit())
	assert.Equal(t, StoreMemory, f.Search.Store)

	initial, goal, err := f.Cubes()
	require.NoError(t, err)
	assert.True(t, goal.Equal(gocube.SolvedCube()))
	assert.True(t, initial.Equal(goal.ApplyMoves(gocube.SexyMove)))
}

func TestParseFull(t *testing.T) {
	f, err := Parse([]byte(fullFile))
	require.NoError(t, err)
	assert.Equal(t, gocube.DefaultDepthLimit, f.DepthLimit())
	assert.Equal(t, "/tmp/gocube-expanded", f.Search.BadgerDir)

	initial, goal, err := f.Cubes()
	require.NoError(t, err)
	assert.True(t, initial.Equal(gocube.SolvedCube()))
	assert.True(t, goal.Equal(gocube.SolvedCube()))
}

func TestParseRejectsMalformedFiles(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ``},
		{"neither initial nor scramble", "search:\n  depth_limit: 3\n"},
		{"both initial and scramble", fullFile + "scramble: R\n"},
		{"unknown key", "scramble: R\ncolour: blue\n"},
		{"bad store", "scramble: R\nsearch:\n  store: redis\n"},
		{"badger without dir", "scramble: R\nsearch:\n  store: badger\n"},
		{"negative depth", "scramble: R\nsearch:\n  depth_limit: -1\n"},
		{"short row", `
initial:
  front: [BB, BBB, BBB]
  right: [RRR, RRR, RRR]
  back: [GGG, GGG, GGG]
  left: [OOO, OOO, OOO]
  top: [YYY, YYY, YYY]
  bottom: [WWW, WWW, WWW]
`},
		{"missing face", `
initial:
  front: [BBB, BBB, BBB]
  right: [RRR, RRR, RRR]
  back: [GGG, GGG, GGG]
  left: [OOO, OOO, OOO]
  top: [YYY, YYY, YYY]
`},
		{"unknown colour", `
initial:
  front: [BBB, BXB, BBB]
  right: [RRR, RRR, RRR]
  back: [GGG, GGG, GGG]
  left: [OOO, OOO, OOO]
  top: [YYY, YYY, YYY]
  bottom: [WWW, WWW, WWW]
`},
		{"wildcard in initial", `
initial:
  front: [BBB, B*B, BBB]
  right: [RRR, RRR, RRR]
  back: [GGG, GGG, GGG]
  left: [OOO, OOO, OOO]
  top: [YYY, YYY, YYY]
  bottom: [WWW, WWW, WWW]
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, gocube.ErrMalformedInput), "got %v", err)
		})
	}
}

func TestWildcardGoalRejected(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"scrambled goal", `
scramble: R
goal:
  front: [B*B, BBB, BBB]
  right: [RRR, RRR, RRR]
  back: [GGG, GGG, GGG]
  left: [OOO, OOO, OOO]
  top: [YYY, YYY, YYY]
  bottom: [WWW, WWW, WWW]
`},
		{"explicit initial", `
initial:
  front: [BBB, BBB, BBB]
  right: [RRR, RRR, RRR]
  back: [GGG, GGG, GGG]
  left: [OOO, OOO, OOO]
  top: [YYY, YYY, YYY]
  bottom: [WWW, WWW, WWW]
goal:
  front: [BBB, BBB, BBB]
  right: ["***", "***", "***"]
  back: ["***", "***", "***"]
  left: ["***", "***", "***"]
  top: ["***", "***", "***"]
  bottom: ["***", "***", "***"]
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Nil(t, f)
			assert.True(t, errors.Is(err, gocube.ErrMalformedInput), "got %v", err)
			assert.Contains(t, err.Error(), "goal cube may not contain wildcards")
		})
	}
}

func TestCubesRejectsBadScramble(t *testing.T) {
	f, err := Parse([]byte("scramble: R X\n"))
	require.NoError(t, err)

	_, _, err = f.Cubes()
	assert.True(t, errors.Is(err, gocube.ErrInvalidNotation), "got %v", err)
}

func TestMarshalRoundTrip(t *testing.T) {
	goal := gocube.SolvedCube()
	initial := goal.ApplyMoves(gocube.MustParseMoves("F R' U2 D B"))

	data, err := Marshal(initial, goal)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "goal:")

	path := filepath.Join(t.TempDir(), "cube.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))

	f, err := Load(path)
	require.NoError(t, err)

	got, gotGoal, err := f.Cubes()
	require.NoError(t, err)
	assert.True(t, got.Equal(initial))
	assert.True(t, gotGoal.Equal(goal))
}

func TestMarshalKeepsCustomGoal(t *testing.T) {
	goal := gocube.SolvedCube().RotateCube(gocube.Top)
	data, err := Marshal(goal.ApplyMove(gocube.R), goal)
	require.NoError(t, err)

	f, err := Parse(data)
	require.NoError(t, err)
	_, gotGoal, err := f.Cubes()
	require.NoError(t, err)
	assert.True(t, gotGoal.Equal(goal))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
