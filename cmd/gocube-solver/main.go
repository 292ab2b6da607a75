// GoCube Solver - CLI application for solving and replaying cube searches.
package main

import (
	"github.com/SeamusWaldron/gocube_solver/internal/cli"
)

func main() {
	cli.Execute()
}
