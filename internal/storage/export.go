// ABOUTME: Export of run history from any ledger backend
// ABOUTME: Supports YAML and Markdown output
package storage

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harper/abmodel/internal/core"
)

// ExportData is the exportable run history
type ExportData struct {
	Version    string      `yaml:"version" json:"version"`
	ExportedAt string      `yaml:"exported_at" json:"exported_at"`
	Tool       string      `yaml:"tool" json:"tool"`
	Runs       []ExportRun `yaml:"runs" json:"runs"`
}

// ExportRun is one run in an export
type ExportRun struct {
	RunID         string `yaml:"run_id" json:"run_id"`
	State         string `yaml:"state" json:"state"`
	Species       string `yaml:"species,omitempty" json:"species,omitempty"`
	Input         string `yaml:"input" json:"input"`
	Output        string `yaml:"output" json:"output"`
	ErrorCategory string `yaml:"error_category,omitempty" json:"error_category,omitempty"`
	ErrorMessage  string `yaml:"error_message,omitempty" json:"error_message,omitempty"`
	StartedAt     string `yaml:"started_at" json:"started_at"`
	FinishedAt    string `yaml:"finished_at,omitempty" json:"finished_at,omitempty"`
}

// Export collects up to limit runs from ledger
func Export(ledger Ledger, limit int) (*ExportData, error) {
	runs, err := ledger.ListRuns(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	data := &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().Format(time.RFC3339),
		Tool:       "abmodel",
		Runs:       make([]ExportRun, 0, len(runs)),
	}
	for _, run := range runs {
		er := ExportRun{
			RunID:         run.RunID,
			State:         string(run.State),
			Species:       string(run.Species),
			Input:         core.ObjectURI(run.Bucket, run.InputKey),
			Output:        core.ObjectURI(run.Bucket, run.OutputKey),
			ErrorCategory: run.ErrorCategory,
			ErrorMessage:  run.ErrorMessage,
			StartedAt:     run.StartedAt.Format(time.RFC3339),
		}
		if !run.FinishedAt.IsZero() {
			er.FinishedAt = run.FinishedAt.Format(time.RFC3339)
		}
		data.Runs = append(data.Runs, er)
	}
	return data, nil
}

// WriteYAML encodes data as YAML
func (d *ExportData) WriteYAML(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(d); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// WriteMarkdown renders data as a Markdown table
func (d *ExportData) WriteMarkdown(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# Model Runs - %s\n\n", time.Now().Format("2006-01-02"))
	_, _ = fmt.Fprintf(w, "Generated: %s\n\n", d.ExportedAt)

	if len(d.Runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}

	_, _ = fmt.Fprintln(w, "| Run | State | Species | Input | Output | Error |")
	_, _ = fmt.Fprintln(w, "|-----|-------|---------|-------|--------|-------|")
	for _, run := range d.Runs {
		errText := ""
		if run.ErrorCategory != "" {
			errText = run.ErrorCategory + ": " + run.ErrorMessage
		}
		if _, err := fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s |\n",
			run.RunID, run.State, run.Species, run.Input, run.Output, errText); err != nil {
			return err
		}
	}
	return nil
}
