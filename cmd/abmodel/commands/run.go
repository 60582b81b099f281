// ABOUTME: Run command executes the full pipeline against object storage
// ABOUTME: Takes the input key, output key, and bucket as positional arguments
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/abmodel/internal/core"
	"github.com/harper/abmodel/internal/objectstore"
)

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run INPUT_KEY OUTPUT_KEY BUCKET",
		Short: "Model an antibody from an input record in object storage",
		Long: `Model an antibody from an input record in object storage.

INPUT_KEY names a JSON document with light_sequence, heavy_sequence and an
optional species (human or mouse, default human). The first generated
structure is stored at OUTPUT_KEY in the same BUCKET.

Exits with status 1 if any stage fails.`,
		Example: `  abmodel run inputs/ab42.json models/ab42.pdb antibody-models
  OBJECT_STORE=local LOCAL_STORE_ROOT=./data abmodel run in.json out.pdb bucket`,
		Args: cobra.ExactArgs(3),
		RunE: runRun,
	}

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)

	store, err := objectstore.Open(cfg)
	if err != nil {
		return fmt.Errorf("initializing object store: %w", err)
	}

	pipeline, err := buildPipeline(cfg, logger, store)
	if err != nil {
		return fmt.Errorf("initializing pipeline: %w", err)
	}

	ledger := openLedger(cfg, logger)
	defer func() { _ = ledger.Close() }()
	pipeline.SetLedger(ledger)

	ctx, stop := runContext(cfg)
	defer stop()

	result, err := pipeline.Run(ctx, core.RunRequest{
		InputKey:  args[0],
		OutputKey: args[1],
		Bucket:    args[2],
	})
	if err != nil {
		return err
	}

	return printResult(cmd, result)
}

func printResult(cmd *cobra.Command, result *core.RunResult) error {
	if wantJSON() {
		data, err := json.MarshalIndent(map[string]interface{}{
			"run_id":  result.Run.RunID,
			"state":   result.Run.State,
			"species": result.Run.Species,
			"output":  result.OutputURI,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Model stored at %s (run %s)\n", result.OutputURI, result.Run.RunID)
	}
	return nil
}
