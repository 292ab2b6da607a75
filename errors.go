package gocube

import "errors"

// Sentinel errors for the gocube package.
var (
	// Search outcomes
	ErrSearchExhausted = errors.New("gocube: search exhausted without reaching the goal")

	// Input errors
	ErrMalformedInput  = errors.New("gocube: malformed cube input")
	ErrInvalidNotation = errors.New("gocube: invalid move notation")
)
