package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver"
	"github.com/SeamusWaldron/gocube_solver/internal/config"
)

var scrambleOut string

var scrambleCmd = &cobra.Command{
	Use:   "scramble <algorithm>",
	Short: "Apply an algorithm to the solved cube",
	Long: `Apply a move sequence to the solved cube and print the result.

Groups with repeat counts are supported, e.g. "(R U R' U')3 F2".
With --out the result is written as a cube file for 'solve --cube'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScramble,
}

func init() {
	rootCmd.AddCommand(scrambleCmd)
	scrambleCmd.Flags().StringVarP(&scrambleOut, "out", "o", "", "Write the scrambled cube to this YAML file")
}

func runScramble(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	moves, err := gocube.ParseMoves(strings.Join(args, " "))
	if err != nil {
		return err
	}

	goal := gocube.SolvedCube()
	c := goal.ApplyMoves(moves)

	fmt.Fprintf(out, "Moves (%d): %s\n", len(moves), moveStyle.Render(gocube.FormatMoves(moves)))
	fmt.Fprint(out, renderNet(c))
	fmt.Fprintf(out, "Stage: %s\n", stageStyle.Render(gocube.DetectStage(c, goal).DisplayName()))
	fmt.Fprintf(out, "Signature: %s\n", c.Signature())

	if scrambleOut == "" {
		return nil
	}

	data, err := config.Marshal(c, goal)
	if err != nil {
		return err
	}
	if err := os.WriteFile(scrambleOut, data, 0644); err != nil {
		return fmt.Errorf("failed to write cube file: %w", err)
	}
	fmt.Fprintf(out, "Wrote %s\n", scrambleOut)

	return nil
}
