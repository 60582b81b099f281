// ABOUTME: Version command reporting the build and the configured collaborators
// ABOUTME: Prints text by default or JSON with --format json
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/abmodel/internal/config"
)

var versionInfo = VersionInfo{
	Version: "dev",
	Commit:  "none",
	Date:    "unknown",
}

// VersionInfo contains build information
type VersionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// SetVersion sets the version information (called from main)
func SetVersion(version, commit, date string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.Date = date
}

// environmentReport is what version prints about the configured setup
type environmentReport struct {
	VersionInfo
	MSACommand      string `json:"msa_command"`
	ModellerCommand string `json:"modeller_command"`
	ObjectStore     string `json:"object_store"`
	Ledger          string `json:"ledger"`
}

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version and collaborator information",
		Long: `Display the abmodel build along with the alignment and modelling
commands, object store, and run ledger the current environment selects.`,
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	loadEnv()
	cfg := config.FromEnv()
	report := environmentReport{
		VersionInfo:     versionInfo,
		MSACommand:      cfg.MSACommand,
		ModellerCommand: cfg.ModellerCommand,
		ObjectStore:     cfg.ObjectStore,
		Ledger:          cfg.Ledger,
	}

	if wantJSON() {
		jsonData, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "abmodel %s\n", report.Version)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Commit:\t%s\n", report.Commit)
	fmt.Fprintf(w, "Built:\t%s\n", report.Date)
	fmt.Fprintf(w, "Aligner:\t%s\n", report.MSACommand)
	fmt.Fprintf(w, "Modeller:\t%s\n", report.ModellerCommand)
	fmt.Fprintf(w, "Store:\t%s\n", report.ObjectStore)
	fmt.Fprintf(w, "Ledger:\t%s\n", report.Ledger)
	return w.Flush()
}
