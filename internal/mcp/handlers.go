// ABOUTME: MCP tool handler implementations for the modeling server
// ABOUTME: Tool failures are returned as error results, never as protocol errors
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/abmodel/internal/core"
	"github.com/harper/abmodel/internal/models"
	"github.com/harper/abmodel/internal/pir"
	"github.com/harper/abmodel/internal/storage"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	pipeline     *core.Pipeline
	ledger       storage.Ledger
	historyLimit int
}

// NewHandlers creates handlers over a pipeline and ledger
func NewHandlers(pipeline *core.Pipeline, ledger storage.Ledger, historyLimit int) *Handlers {
	if ledger == nil {
		ledger = storage.Nop{}
	}
	return &Handlers{pipeline: pipeline, ledger: ledger, historyLimit: historyLimit}
}

// AssembleConstruct handles the assemble_construct tool
func (h *Handlers) AssembleConstruct(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	light, err := request.RequireString("light_sequence")
	if err != nil {
		return mcp.NewToolResultError("light_sequence argument is required and must be a string"), nil
	}
	heavy, err := request.RequireString("heavy_sequence")
	if err != nil {
		return mcp.NewToolResultError("heavy_sequence argument is required and must be a string"), nil
	}

	doc, err := json.Marshal(map[string]string{
		"light_sequence": light,
		"heavy_sequence": heavy,
		"species":        request.GetString("species", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build input record: %v", err)), nil
	}

	aln, err := h.pipeline.Prepare(ctx, doc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", core.CategoryOf(err), err)), nil
	}

	var buf bytes.Buffer
	if err := pir.Encode(&buf, aln); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode alignment: %v", err)), nil
	}

	target, _ := aln.Entry(models.TargetEntryName)
	template, _ := aln.Entry(models.TemplateEntryName)
	response := map[string]interface{}{
		"target":    target.Sequence,
		"template":  template.Sequence,
		"pdb_path":  template.Template.PDBPath,
		"alignment": buf.String(),
	}
	return jsonResult(response)
}

// ModelAntibody handles the model_antibody tool
func (h *Handlers) ModelAntibody(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var req core.RunRequest
	var err error
	if req.InputKey, err = request.RequireString("input_key"); err != nil {
		return mcp.NewToolResultError("input_key argument is required and must be a string"), nil
	}
	if req.OutputKey, err = request.RequireString("output_key"); err != nil {
		return mcp.NewToolResultError("output_key argument is required and must be a string"), nil
	}
	if req.Bucket, err = request.RequireString("bucket"); err != nil {
		return mcp.NewToolResultError("bucket argument is required and must be a string"), nil
	}

	result, err := h.pipeline.Run(ctx, req)
	if err != nil {
		msg := fmt.Sprintf("%s: %v", core.CategoryOf(err), err)
		if result != nil && result.Run != nil {
			msg = fmt.Sprintf("run %s failed: %s", result.Run.RunID, msg)
		}
		return mcp.NewToolResultError(msg), nil
	}

	response := map[string]interface{}{
		"run_id":   result.Run.RunID,
		"state":    result.Run.State,
		"species":  result.Run.Species,
		"output":   result.OutputURI,
		"duration": result.Run.Duration().String(),
	}
	return jsonResult(response)
}

// ListRuns handles the list_runs tool
func (h *Handlers) ListRuns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", h.historyLimit)
	if limit <= 0 {
		limit = h.historyLimit
	}

	runs, err := h.ledger.ListRuns(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list runs: %v", err)), nil
	}
	if runs == nil {
		runs = []models.RunRecord{}
	}

	return jsonResult(map[string]interface{}{
		"runs":  runs,
		"count": len(runs),
	})
}

// GetRun handles the get_run tool
func (h *Handlers) GetRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runID, err := request.RequireString("run_id")
	if err != nil {
		return mcp.NewToolResultError("run_id argument is required and must be a string"), nil
	}

	found, err := h.ledger.GetRun(runID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get run: %v", err)), nil
	}
	run, ok := found.Get()
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("run not found: %s", runID)), nil
	}
	return jsonResult(run)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
