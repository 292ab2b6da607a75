// Package gocube models a 3x3 Rubik's cube as immutable values and finds
// move sequences between cube states with a depth-limited search.
//
// # Features
//
//   - Value-typed faces and cubes with pure transforms
//   - Whole-cube reorientation and layer rotation for all six faces
//   - Fuzzy matching against wildcard patterns and stage detection
//   - Depth-limited depth-first search with transposition detection
//     and pruning of fully explored subtrees
//   - Standard move notation, including grouped and repeated sequences
//
// # Quick Start
//
// Scramble the default goal and search for a way back:
//
//	goal := gocube.SolvedCube()
//	start := goal.ApplyMoves(gocube.MustParseMoves("R U'"))
//
//	node, err := gocube.Solve(ctx, start, goal, gocube.WithDepthLimit(4))
//	if errors.Is(err, gocube.ErrSearchExhausted) {
//	    fmt.Println("no solution within the depth limit")
//	    return
//	}
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(gocube.FormatMoves(node.Moves()))
//
// # Search
//
// The Solver pops nodes from a LIFO frontier. A node at the depth limit is
// pruned without being expanded. A node whose state was already expanded
// elsewhere is left as a visited leaf. Otherwise the node is compared with
// the goal and, failing that, expanded into its successors. The search
// returns ErrSearchExhausted when the frontier runs dry.
//
// The search is not optimal: the first goal node popped is returned, which
// is not necessarily the shallowest one.
package gocube
