package gocube

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emirpasic/gods/stacks/arraystack"
)

// SearchStats is a snapshot of a search's counters.
type SearchStats struct {
	Popped      int           // Nodes taken off the frontier
	Expanded    int           // Nodes whose successors were generated
	Duplicates  int           // Nodes skipped because their state was already expanded
	Cutoffs     int           // Nodes pruned at the depth limit
	Frontier    int           // Current frontier size
	MaxFrontier int           // Largest frontier size seen
	Signatures  int           // Size of the expanded-state set
	GoalDepth   int           // Depth of the goal node, -1 until found
	Elapsed     time.Duration // Time since the search started
}

// Solver runs a depth-limited depth-first search from a start cube to a
// fixed goal cube.
//
// A Solver is not safe for concurrent use: it owns the frontier, the
// expanded-state set and the search tree while Search runs.
type Solver struct {
	goal  Cube
	cfg   *config
	stats SearchStats
}

// NewSolver creates a solver for the given goal. The goal is compared by
// exact equality.
func NewSolver(goal Cube, opts ...Option) *Solver {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Solver{goal: goal, cfg: cfg, stats: SearchStats{GoalDepth: -1}}
}

// Solve searches from initial. On success the returned node holds a cube
// equal to the goal; call Moves on it for the solution. If the frontier runs
// dry the error wraps ErrSearchExhausted.
func Solve(ctx context.Context, initial, goal Cube, opts ...Option) (*Node, error) {
	return NewSolver(goal, opts...).Solve(ctx, initial)
}

// Goal returns the cube the solver searches for.
func (s *Solver) Goal() Cube {
	return s.goal
}

// DepthLimit returns the configured depth cutoff.
func (s *Solver) DepthLimit() int {
	return s.cfg.depthLimit
}

// Stats returns the counters of the last (or running) search.
func (s *Solver) Stats() SearchStats {
	return s.stats
}

// Solve searches from a new root node wrapping initial.
func (s *Solver) Solve(ctx context.Context, initial Cube) (*Node, error) {
	return s.Search(ctx, NewNode(initial))
}

// Search runs the search loop starting from start, which may be a root or a
// node already attached to a tree.
//
// The context is checked once per popped node; cancelling it stops the
// search with the context's error.
func (s *Solver) Search(ctx context.Context, start *Node) (*Node, error) {
	seen := s.cfg.signatures
	if seen == nil {
		seen = NewMemorySet()
	}
	log := s.cfg.logger.With(slog.Int("depth_limit", s.cfg.depthLimit))

	s.stats = SearchStats{GoalDepth: -1}
	started := time.Now()

	frontier := arraystack.New()
	frontier.Push(start)
	s.stats.MaxFrontier = 1

	log.Info("search started", slog.Int("start_depth", start.Depth()))

	for !frontier.Empty() {
		if err := ctx.Err(); err != nil {
			s.finish(started, frontier.Size(), seen)
			log.Warn("search canceled", slog.Int("popped", s.stats.Popped))
			return nil, fmt.Errorf("search canceled after %d nodes: %w", s.stats.Popped, err)
		}

		v, _ := frontier.Pop()
		node := v.(*Node)
		node.MarkVisited()
		s.stats.Popped++

		if s.cfg.progress != nil && s.cfg.progressEvery > 0 && s.stats.Popped%s.cfg.progressEvery == 0 {
			s.snapshot(started, frontier.Size(), seen)
			s.cfg.progress(s.stats)
		}

		if node.Depth() >= s.cfg.depthLimit {
			node.Prune()
			s.stats.Cutoffs++
			continue
		}

		c := node.Cube()
		sig := c.Signature()
		expanded, err := seen.Contains(sig)
		if err != nil {
			s.finish(started, frontier.Size(), seen)
			log.Error("signature store failed", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to check expanded state: %w", err)
		}
		if expanded {
			// Transposition: leave the node as a visited leaf.
			s.stats.Duplicates++
			continue
		}

		if c.Equal(s.goal) {
			s.stats.GoalDepth = node.Depth()
			s.finish(started, frontier.Size(), seen)
			log.Info("goal reached",
				slog.Int("depth", node.Depth()),
				slog.Int("popped", s.stats.Popped),
				slog.Int("expanded", s.stats.Expanded),
				slog.Duration("elapsed", s.stats.Elapsed),
			)
			return node, nil
		}

		if err := seen.Add(sig); err != nil {
			s.finish(started, frontier.Size(), seen)
			log.Error("signature store failed", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to record expanded state: %w", err)
		}
		s.stats.Expanded++

		for _, succ := range c.Successors() {
			child := NewNode(succ)
			node.Add(child)
			frontier.Push(child)
		}
		if size := frontier.Size(); size > s.stats.MaxFrontier {
			s.stats.MaxFrontier = size
		}
	}

	s.finish(started, 0, seen)
	log.Info("search exhausted",
		slog.Int("popped", s.stats.Popped),
		slog.Int("expanded", s.stats.Expanded),
		slog.Duration("elapsed", s.stats.Elapsed),
	)
	return nil, fmt.Errorf("%w: depth limit %d, %d nodes visited", ErrSearchExhausted, s.cfg.depthLimit, s.stats.Popped)
}

func (s *Solver) snapshot(started time.Time, frontier int, seen SignatureSet) {
	s.stats.Frontier = frontier
	s.stats.Signatures = seen.Len()
	s.stats.Elapsed = time.Since(started)
}

func (s *Solver) finish(started time.Time, frontier int, seen SignatureSet) {
	s.snapshot(started, frontier, seen)
	if s.cfg.progress != nil {
		s.cfg.progress(s.stats)
	}
}
