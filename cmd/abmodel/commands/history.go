// ABOUTME: History commands for the run ledger
// ABOUTME: Lists recent runs, shows one run, and exports history as YAML or Markdown
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/abmodel/internal/config"
	"github.com/harper/abmodel/internal/core"
	"github.com/harper/abmodel/internal/models"
	"github.com/harper/abmodel/internal/storage"
)

var (
	historyLimit   int
	exportOutput   string
	exportMarkdown bool
)

// NewHistoryCmd creates the history command group
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded pipeline runs",
		Long: `Inspect recorded pipeline runs.

Every run records its state, species, and failure category in the run
ledger (LEDGER=sqlite by default, or charm for cloud sync).`,
	}

	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistoryShowCmd())
	cmd.AddCommand(newHistoryExportCmd())

	return cmd
}

func newHistoryListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		Example: `  abmodel history list
  abmodel history list --limit 5 --format json`,
		RunE: runHistoryList,
	}

	cmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Maximum runs to show (default HISTORY_LIMIT)")

	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show one run",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShow,
	}
}

func newHistoryExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export run history as YAML or Markdown",
		Example: `  abmodel history export
  abmodel history export --markdown --output runs.md`,
		RunE: runHistoryExport,
	}

	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().BoolVar(&exportMarkdown, "markdown", false, "Export as a Markdown table")
	cmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Maximum runs to export (default HISTORY_LIMIT)")

	return cmd
}

// openHistory opens the ledger without requiring template configuration
func openHistory() (*config.Config, storage.Ledger, error) {
	loadEnv()
	cfg := config.FromEnv()
	ledger, err := storage.Open(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("opening run ledger: %w", err)
	}
	return cfg, ledger, nil
}

func resolveLimit(cfg *config.Config) (int, error) {
	if historyLimit == 0 {
		return cfg.HistoryLimit, nil
	}
	if err := validatePositiveInt(historyLimit, "limit"); err != nil {
		return 0, err
	}
	return historyLimit, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg, ledger, err := openHistory()
	if err != nil {
		return err
	}
	defer func() { _ = ledger.Close() }()

	limit, err := resolveLimit(cfg)
	if err != nil {
		return err
	}

	runs, err := ledger.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	if len(runs) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No runs recorded\n")
		}
		return nil
	}

	if wantJSON() {
		jsonData, err := json.MarshalIndent(runs, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	writeRunTable(cmd.OutOrStdout(), runs)
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d run(s)\n", len(runs))
	}
	return nil
}

func writeRunTable(out io.Writer, runs []models.RunRecord) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "RUN ID\tSTATE\tSPECIES\tSTARTED\tOUTPUT\tERROR\n")
	fmt.Fprintf(w, "------\t-----\t-------\t-------\t------\t-----\n")
	for _, run := range runs {
		species := string(run.Species)
		if species == "" {
			species = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			run.RunID,
			run.State,
			species,
			formatTime(run.StartedAt),
			truncate(core.ObjectURI(run.Bucket, run.OutputKey), 40),
			run.ErrorCategory)
	}
	_ = w.Flush()
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	_, ledger, err := openHistory()
	if err != nil {
		return err
	}
	defer func() { _ = ledger.Close() }()

	found, err := ledger.GetRun(args[0])
	if err != nil {
		return fmt.Errorf("getting run: %w", err)
	}
	run, ok := found.Get()
	if !ok {
		return fmt.Errorf("run not found: %s", args[0])
	}

	if wantJSON() {
		jsonData, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Run\t%s\n", run.RunID)
	fmt.Fprintf(w, "State\t%s\n", run.State)
	fmt.Fprintf(w, "Species\t%s\n", run.Species)
	fmt.Fprintf(w, "Input\t%s\n", core.ObjectURI(run.Bucket, run.InputKey))
	fmt.Fprintf(w, "Output\t%s\n", core.ObjectURI(run.Bucket, run.OutputKey))
	fmt.Fprintf(w, "Started\t%s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	if !run.FinishedAt.IsZero() {
		fmt.Fprintf(w, "Duration\t%s\n", run.Duration().Round(time.Millisecond))
	}
	if run.ErrorCategory != "" {
		fmt.Fprintf(w, "Error\t%s: %s\n", run.ErrorCategory, run.ErrorMessage)
	}
	return w.Flush()
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	cfg, ledger, err := openHistory()
	if err != nil {
		return err
	}
	defer func() { _ = ledger.Close() }()

	limit, err := resolveLimit(cfg)
	if err != nil {
		return err
	}

	data, err := storage.Export(ledger, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if exportOutput != "" {
		if err := os.MkdirAll(filepath.Dir(exportOutput), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		file, err := os.Create(exportOutput) // #nosec G304
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = file.Close() }()
		out = file
	}

	if exportMarkdown {
		err = data.WriteMarkdown(out)
	} else {
		err = data.WriteYAML(out)
	}
	if err != nil {
		return err
	}

	if exportOutput != "" && !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d run(s) to %s\n", len(data.Runs), exportOutput)
	}
	return nil
}
