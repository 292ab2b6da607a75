// Package config loads and writes YAML cube files: the start cube (or a
// scramble applied to the goal), an optional goal and search settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/gocube_solver"
)

// Signature set backends.
const (
	StoreMemory = "memory"
	StoreBadger = "badger"
)

// facelets lists every symbol a face row may contain. Validate rejects the
// wildcard in both cubes with a clearer message than the tag would give.
const facelets = "WYGBRO*"

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("facelets", validateFacelets)
}

func validateFacelets(fl validator.FieldLevel) bool {
	row := fl.Field().String()
	for i := 0; i < len(row); i++ {
		if !strings.ContainsRune(facelets, rune(row[i])) {
			return false
		}
	}
	return true
}

// CubeSpec lists the rows of each face, top row first.
type CubeSpec struct {
	Front  []string `yaml:"front" validate:"len=3,dive,len=3,facelets"`
	Right  []string `yaml:"right" validate:"len=3,dive,len=3,facelets"`
	Back   []string `yaml:"back" validate:"len=3,dive,len=3,facelets"`
	Left   []string `yaml:"left" validate:"len=3,dive,len=3,facelets"`
	Top    []string `yaml:"top" validate:"len=3,dive,len=3,facelets"`
	Bottom []string `yaml:"bottom" validate:"len=3,dive,len=3,facelets"`
}

// Search holds solver settings.
type Search struct {
	DepthLimit *int   `yaml:"depth_limit,omitempty" validate:"omitempty,gte=0"`
	Store      string `yaml:"store,omitempty" validate:"omitempty,oneof=memory badger"`
	BadgerDir  string `yaml:"badger_dir,omitempty"`
}

// File is a cube file.
type File struct {
	Goal     *CubeSpec `yaml:"goal,omitempty"`
	Initial  *CubeSpec `yaml:"initial,omitempty"`
	Scramble string    `yaml:"scramble,omitempty"`
	Search   Search    `yaml:"search,omitempty"`
}

// Load reads and validates a cube file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cube file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a cube file. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty cube file", gocube.ErrMalformedInput)
		}
		return nil, fmt.Errorf("%w: %v", gocube.ErrMalformedInput, err)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the file's structure. Errors wrap gocube.ErrMalformedInput.
func (f *File) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %v", gocube.ErrMalformedInput, err)
	}

	switch {
	case f.Initial == nil && f.Scramble == "":
		return fmt.Errorf("%w: either initial or scramble is required", gocube.ErrMalformedInput)
	case f.Initial != nil && f.Scramble != "":
		return fmt.Errorf("%w: initial and scramble are mutually exclusive", gocube.ErrMalformedInput)
	}

	if f.Initial != nil && f.Initial.hasWildcard() {
		return fmt.Errorf("%w: initial cube may not contain wildcards", gocube.ErrMalformedInput)
	}
	if f.Goal != nil && f.Goal.hasWildcard() {
		return fmt.Errorf("%w: goal cube may not contain wildcards", gocube.ErrMalformedInput)
	}

	if f.Search.Store == StoreBadger && f.Search.BadgerDir == "" {
		return fmt.Errorf("%w: badger_dir is required for the badger store", gocube.ErrMalformedInput)
	}

	return nil
}

// Cubes builds the start and goal cubes. Without a goal the solved cube is
// used; without an initial cube the scramble is applied to the goal.
func (f *File) Cubes() (initial, goal gocube.Cube, err error) {
	goal = gocube.SolvedCube()
	if f.Goal != nil {
		if goal, err = f.Goal.Cube(); err != nil {
			return gocube.Cube{}, gocube.Cube{}, err
		}
	}

	if f.Initial != nil {
		if initial, err = f.Initial.Cube(); err != nil {
			return gocube.Cube{}, gocube.Cube{}, err
		}
		return initial, goal, nil
	}

	moves, err := gocube.ParseMoves(f.Scramble)
	if err != nil {
		return gocube.Cube{}, gocube.Cube{}, err
	}
	return goal.ApplyMoves(moves), goal, nil
}

// DepthLimit returns the configured depth limit or the solver default.
func (f *File) DepthLimit() int {
	if f.Search.DepthLimit == nil {
		return gocube.DefaultDepthLimit
	}
	return *f.Search.DepthLimit
}

// Cube converts the face rows into a cube.
func (s *CubeSpec) Cube() (gocube.Cube, error) {
	rows := [][]string{s.Front, s.Right, s.Back, s.Left, s.Top, s.Bottom}

	var faces [6]gocube.Face
	for i, r := range rows {
		face, err := gocube.NewFace(r...)
		if err != nil {
			return gocube.Cube{}, fmt.Errorf("%s face: %w", gocube.FaceRefs()[i].Name(), err)
		}
		faces[i] = face
	}
	return gocube.NewCube(faces[0], faces[1], faces[2], faces[3], faces[4], faces[5]), nil
}

func (s *CubeSpec) hasWildcard() bool {
	for _, rows := range [][]string{s.Front, s.Right, s.Back, s.Left, s.Top, s.Bottom} {
		for _, r := range rows {
			if strings.ContainsRune(r, rune(gocube.Wildcard)) {
				return true
			}
		}
	}
	return false
}

// SpecOf describes c as a CubeSpec.
func SpecOf(c gocube.Cube) *CubeSpec {
	return &CubeSpec{
		Front:  c.Face(gocube.Front).Rows(),
		Right:  c.Face(gocube.Right).Rows(),
		Back:   c.Face(gocube.Back).Rows(),
		Left:   c.Face(gocube.Left).Rows(),
		Top:    c.Face(gocube.Top).Rows(),
		Bottom: c.Face(gocube.Bottom).Rows(),
	}
}

// Marshal writes a cube file holding initial as the start cube. The goal is
// only written when it differs from the solved cube.
func Marshal(initial, goal gocube.Cube) ([]byte, error) {
	f := File{Initial: SpecOf(initial)}
	if !goal.Equal(gocube.SolvedCube()) {
		f.Goal = SpecOf(goal)
	}
	return f.Marshal()
}

// Marshal encodes the file as YAML.
func (f *File) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("failed to encode cube file: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode cube file: %w", err)
	}
	return buf.Bytes(), nil
}
