// ABOUTME: Structure-generation collaborator client wrapping an external automodel command
// ABOUTME: Writes the PIR alignment next to the output prefix and runs the command there
package modeller

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/harper/abmodel/internal/models"
	"github.com/harper/abmodel/internal/pir"
)

// AlignmentFileExt is appended to the output prefix for the written alignment
const AlignmentFileExt = ".pir"

// Client runs the modelling command. It does not check which files the
// command produced; that is the caller's job.
type Client struct {
	command string
	args    []string
	logger  *log.Logger
}

// NewClient creates a client for a command line such as "abmodel-automodel"
func NewClient(commandLine string, logger *log.Logger) (*Client, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, fmt.Errorf("modeller command is empty")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{command: fields[0], args: fields[1:], logger: logger}, nil
}

// Generate writes outputPrefix.pir and asks the command to build models of
// target from templates, tagged with the base name of outputPrefix
func (c *Client) Generate(ctx context.Context, aln *models.Alignment, target string, templates []string, outputPrefix string) error {
	// The command runs inside the prefix directory
	outputPrefix, err := filepath.Abs(outputPrefix)
	if err != nil {
		return fmt.Errorf("resolving output prefix: %w", err)
	}
	alnPath := outputPrefix + AlignmentFileExt
	if err := writeAlignment(alnPath, aln); err != nil {
		return err
	}

	args := append([]string{}, c.args...)
	args = append(args, "--alignment", alnPath, "--target", target)
	for _, tmpl := range templates {
		args = append(args, "--template", tmpl)
	}
	args = append(args, "--tag", filepath.Base(outputPrefix))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.command, args...)
	cmd.Dir = filepath.Dir(outputPrefix)
	cmd.Stderr = &stderr

	c.logger.Debug("Running modelling command", "command", c.command, "alignment", alnPath, "dir", cmd.Dir)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w: %s", c.command, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func writeAlignment(path string, aln *models.Alignment) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating alignment file: %w", err)
	}
	if err := pir.Encode(f, aln); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing alignment file: %w", err)
	}
	return f.Close()
}
