package gocube

// Predefined moves for convenience.
// Use these instead of constructing Move structs manually.
//
// Example:
//
//	c = c.ApplyMoves([]gocube.Move{gocube.R, gocube.U, gocube.RPrime, gocube.UPrime})
var (
	// Front layer moves
	F      = Move{Face: Front, Steps: 1} // Front clockwise
	FPrime = Move{Face: Front, Steps: 3} // Front counter-clockwise
	F2     = Move{Face: Front, Steps: 2} // Front 180

	// Right layer moves
	R      = Move{Face: Right, Steps: 1}
	RPrime = Move{Face: Right, Steps: 3}
	R2     = Move{Face: Right, Steps: 2}

	// Back layer moves
	B      = Move{Face: Back, Steps: 1}
	BPrime = Move{Face: Back, Steps: 3}
	B2     = Move{Face: Back, Steps: 2}

	// Left layer moves
	L      = Move{Face: Left, Steps: 1}
	LPrime = Move{Face: Left, Steps: 3}
	L2     = Move{Face: Left, Steps: 2}

	// Top (up) layer moves
	U      = Move{Face: Top, Steps: 1}
	UPrime = Move{Face: Top, Steps: 3}
	U2     = Move{Face: Top, Steps: 2}

	// Bottom (down) layer moves
	D      = Move{Face: Bottom, Steps: 1}
	DPrime = Move{Face: Bottom, Steps: 3}
	D2     = Move{Face: Bottom, Steps: 2}
)

// SexyMove is the sequence R U R' U'.
var SexyMove = []Move{R, U, RPrime, UPrime}
