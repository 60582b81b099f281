// ABOUTME: Alignment collaborator client that shells out to an external MSA command
// ABOUTME: The command prints chain-grouped records as JSON on stdout
package msa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/harper/abmodel/internal/models"
)

// Client runs the alignment command once per call
type Client struct {
	command string
	args    []string
	logger  *log.Logger
}

// NewClient creates a client for a command line such as "abmodel-msa" or
// "python3 -m msa_cli". Extra words become leading arguments.
func NewClient(commandLine string, logger *log.Logger) (*Client, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, fmt.Errorf("msa command is empty")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{command: fields[0], args: fields[1:], logger: logger}, nil
}

// Align runs the command and decodes its grouped records
func (c *Client) Align(ctx context.Context, light, heavy string, species models.Species) (models.AlignmentRecords, error) {
	args := append(append([]string{}, c.args...),
		"--light", light,
		"--heavy", heavy,
		"--species", species.String(),
	)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.command, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.logger.Debug("Running alignment command", "command", c.command, "species", species)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running %s: %w: %s", c.command, err, strings.TrimSpace(stderr.String()))
	}

	records, err := Decode(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("reading %s output: %w", c.command, err)
	}
	return records, nil
}

// Decode parses collaborator output of the form
// {"heavyChain": [{"name": "TargetSeq", "seq": "..."}], "lightChain": [...]}
func Decode(data []byte) (models.AlignmentRecords, error) {
	var records models.AlignmentRecords
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding alignment records: %w", err)
	}
	if records == nil {
		return nil, fmt.Errorf("alignment output is empty")
	}
	return records, nil
}
