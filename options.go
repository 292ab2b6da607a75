package gocube

import "log/slog"

// DefaultDepthLimit is the depth at which the search stops expanding nodes.
const DefaultDepthLimit = 30

// Option configures Solver behavior.
type Option func(*config)

type config struct {
	depthLimit    int
	signatures    SignatureSet
	logger        *slog.Logger
	progressEvery int
	progress      func(SearchStats)
}

func defaultConfig() *config {
	return &config{
		depthLimit: DefaultDepthLimit,
		logger:     slog.New(slog.DiscardHandler),
	}
}

// WithDepthLimit sets the depth cutoff. Nodes at this depth are treated as
// dead ends and pruned without being expanded or compared with the goal.
// Negative values are ignored.
func WithDepthLimit(depth int) Option {
	return func(c *config) {
		if depth >= 0 {
			c.depthLimit = depth
		}
	}
}

// WithSignatureSet sets the store used to remember expanded states.
// The set is used as-is for every search run by the solver; by default each
// search starts with a fresh in-memory set.
func WithSignatureSet(set SignatureSet) Option {
	return func(c *config) {
		c.signatures = set
	}
}

// WithLogger sets the logger used for search lifecycle and progress
// messages. Logging is disabled by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithProgress registers a callback invoked with a stats snapshot every
// `every` popped nodes, and once more when the search ends.
func WithProgress(every int, fn func(SearchStats)) Option {
	return func(c *config) {
		c.progressEvery = every
		c.progress = fn
	}
}
