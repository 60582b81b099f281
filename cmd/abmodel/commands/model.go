// ABOUTME: Model command runs the pipeline on local files
// ABOUTME: Reads an input JSON file and writes the first candidate to a local path
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewModelCmd creates the model command
func NewModelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model INPUT_FILE OUTPUT_FILE",
		Short: "Model an antibody from a local input file",
		Long: `Model an antibody from a local input file.

Runs the same stages as 'abmodel run' but reads the input record from
INPUT_FILE and copies the first generated structure to OUTPUT_FILE.
No object storage is contacted.`,
		Example: `  abmodel model ab42.json ab42.pdb`,
		Args:    cobra.ExactArgs(2),
		RunE:    runModel,
	}

	return cmd
}

func runModel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)

	// RunLocal supplies its own file store
	pipeline, err := buildPipeline(cfg, logger, nil)
	if err != nil {
		return fmt.Errorf("initializing pipeline: %w", err)
	}

	ledger := openLedger(cfg, logger)
	defer func() { _ = ledger.Close() }()
	pipeline.SetLedger(ledger)

	ctx, stop := runContext(cfg)
	defer stop()

	result, err := pipeline.RunLocal(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	return printResult(cmd, result)
}
