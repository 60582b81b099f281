// ABOUTME: MCP tool definitions and registration for the modeling server
// ABOUTME: Exposes construct assembly, full model runs, and run history as tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/abmodel/internal/core"
	"github.com/harper/abmodel/internal/storage"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, pipeline *core.Pipeline, ledger storage.Ledger, historyLimit int) *Handlers {
	handlers := NewHandlers(pipeline, ledger, historyLimit)

	// 1. assemble_construct - align and annotate without generating a model
	server.AddTool(mcp.Tool{
		Name:        "assemble_construct",
		Description: "Align a light/heavy chain pair, assemble the tetravalent target and template constructs, and return the annotated PIR alignment. Does not generate a structure.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"light_sequence": map[string]interface{}{
					"type":        "string",
					"description": "Light chain amino-acid sequence",
				},
				"heavy_sequence": map[string]interface{}{
					"type":        "string",
					"description": "Heavy chain amino-acid sequence",
				},
				"species": map[string]interface{}{
					"type":        "string",
					"description": "Template species: human or mouse (default: human)",
					"enum":        []string{"human", "mouse"},
				},
			},
			Required: []string{"light_sequence", "heavy_sequence"},
		},
	}, handlers.AssembleConstruct)

	// 2. model_antibody - full pipeline run against object storage
	server.AddTool(mcp.Tool{
		Name:        "model_antibody",
		Description: "Fetch an input record from object storage, build the tetravalent homology model, and store the first candidate at the output key.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"input_key": map[string]interface{}{
					"type":        "string",
					"description": "Object key of the input JSON record",
				},
				"output_key": map[string]interface{}{
					"type":        "string",
					"description": "Object key for the generated structure file",
				},
				"bucket": map[string]interface{}{
					"type":        "string",
					"description": "Bucket holding both objects",
				},
			},
			Required: []string{"input_key", "output_key", "bucket"},
		},
	}, handlers.ModelAntibody)

	// 3. list_runs - recent run history
	server.AddTool(mcp.Tool{
		Name:        "list_runs",
		Description: "List recent pipeline runs, newest first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of runs to return",
				},
			},
		},
	}, handlers.ListRuns)

	// 4. get_run - one run by id
	server.AddTool(mcp.Tool{
		Name:        "get_run",
		Description: "Get a single pipeline run by its run id.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run id as printed by the run and history commands",
				},
			},
			Required: []string{"run_id"},
		},
	}, handlers.GetRun)

	return handlers
}
