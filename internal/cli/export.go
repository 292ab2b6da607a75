package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

var (
	exportRunID  string
	exportFormat string
	exportOutput string
	exportLast   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run data",
	Long:  `Export run data in various formats.`,
}

var exportMovesCmd = &cobra.Command{
	Use:   "moves",
	Short: "Export the solution of a run",
	Long: `Export the solution of a run in text, JSON or YAML format.

Examples:
  gocube-solver export moves --last
  gocube-solver export moves --id <run_id> --format json
  gocube-solver export moves --id <run_id> --format txt -o moves.txt`,
	RunE: runExportMoves,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.AddCommand(exportMovesCmd)
	exportMovesCmd.Flags().StringVar(&exportRunID, "id", "", "Run ID to export")
	exportMovesCmd.Flags().BoolVar(&exportLast, "last", false, "Export the last run")
	exportMovesCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json, yaml)")
	exportMovesCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

// exportedMove is the serialised form of one solution move.
type exportedMove struct {
	MoveIndex int    `json:"move_index" yaml:"move_index"`
	Face      string `json:"face" yaml:"face"`
	Steps     int    `json:"steps" yaml:"steps"`
	Notation  string `json:"notation" yaml:"notation"`
	Stage     string `json:"stage" yaml:"stage"`
	Signature string `json:"signature" yaml:"signature"`
}

// formatMoves renders solution records in the given format.
func formatMoves(moves []storage.MoveRecord, format string) (string, error) {
	switch strings.ToLower(format) {
	case "txt":
		var notations []string
		for _, m := range moves {
			notations = append(notations, m.Notation)
		}
		return strings.Join(notations, " "), nil

	case "json", "yaml":
		exported := make([]exportedMove, 0, len(moves))
		for _, m := range moves {
			exported = append(exported, exportedMove{
				MoveIndex: m.MoveIndex,
				Face:      m.Face,
				Steps:     m.Steps,
				Notation:  m.Notation,
				Stage:     m.Stage,
				Signature: m.Signature,
			})
		}

		if strings.EqualFold(format, "yaml") {
			data, err := yaml.Marshal(exported)
			if err != nil {
				return "", fmt.Errorf("failed to marshal YAML: %w", err)
			}
			return strings.TrimRight(string(data), "\n"), nil
		}

		data, err := json.MarshalIndent(exported, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil

	default:
		return "", fmt.Errorf("unknown format: %s (use txt, json or yaml)", format)
	}
}

func runExportMoves(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if exportRunID == "" && !exportLast {
		return fmt.Errorf("specify --id or --last")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	var ids []string
	if exportRunID != "" {
		ids = []string{exportRunID}
	}
	run, err := resolveRun(storage.NewRunRepository(db), ids, exportLast)
	if err != nil {
		return err
	}

	moves, err := storage.NewMoveRepository(db).GetByRun(run.RunID)
	if err != nil {
		return fmt.Errorf("failed to get moves: %w", err)
	}

	if len(moves) == 0 {
		return fmt.Errorf("no moves found for run %s (status %s)", run.RunID, run.Status)
	}

	output, err := formatMoves(moves, exportFormat)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		fmt.Fprintln(out, output)
		return nil
	}

	dir := filepath.Dir(exportOutput)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(exportOutput, []byte(output+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Fprintf(out, "Exported %d moves to %s\n", len(moves), exportOutput)
	return nil
}
