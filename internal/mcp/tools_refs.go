package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/planksmith/planks/internal/refgraph"
	"github.com/planksmith/planks/internal/workspace"
)

// todayStamp returns the current date for document frontmatter.
func todayStamp() string {
	return time.Now().UTC().Format("2006-01-02")
}

// Edge is a reference edge for tool output.
type Edge struct {
	From        string `json:"from"                  jsonschema:"source document path"`
	To          string `json:"to"                    jsonschema:"target document path"`
	Type        string `json:"type"                  jsonschema:"relationship type"`
	Description string `json:"description,omitempty" jsonschema:"free-text description"`
}

func toEdges(refs []refgraph.Reference) []Edge {
	result := make([]Edge, 0, len(refs))
	for _, ref := range refs {
		result = append(result, Edge{
			From:        ref.From,
			To:          ref.To,
			Type:        string(ref.Type),
			Description: ref.Description,
		})
	}
	return result
}

// --- link_documents ---

// LinkDocumentsInput is the input for the link_documents tool.
type LinkDocumentsInput struct {
	From        string `json:"from"                  jsonschema:"source document path"`
	To          string `json:"to"                    jsonschema:"target document path"`
	Type        string `json:"type"                  jsonschema:"references, supersedes, implements, or relates-to"`
	Description string `json:"description,omitempty" jsonschema:"free-text description of the relationship"`
}

// LinkDocumentsOutput is the output for the link_documents tool.
type LinkDocumentsOutput struct {
	Message string `json:"message" jsonschema:"confirmation message"`
}

func handleLinkDocuments(ws *workspace.Workspace) mcp.ToolHandlerFor[LinkDocumentsInput, LinkDocumentsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, in LinkDocumentsInput) (*mcp.CallToolResult, LinkDocumentsOutput, error) {
		typ, err := refgraph.ParseType(in.Type)
		if err != nil {
			return nil, LinkDocumentsOutput{}, err
		}
		err = ws.Refs.Add(refgraph.Reference{
			From:        in.From,
			To:          in.To,
			Type:        typ,
			Description: in.Description,
		})
		if err != nil {
			return nil, LinkDocumentsOutput{}, fmt.Errorf("recording reference: %w", err)
		}
		return nil, LinkDocumentsOutput{
			Message: fmt.Sprintf("%s %s %s", in.From, in.Type, in.To),
		}, nil
	}
}

// --- related_documents ---

// RelatedDocumentsInput is the input for the related_documents tool.
type RelatedDocumentsInput struct {
	Path     string `json:"path"                jsonschema:"starting document path"`
	MaxDepth int    `json:"max_depth,omitempty" jsonschema:"maximum hops to explore (default 2)"`
}

// RelatedDocumentsOutput is the output for the related_documents tool.
type RelatedDocumentsOutput struct {
	Related []string `json:"related" jsonschema:"paths of discovered documents, excluding the start"`
}

func handleRelatedDocuments(ws *workspace.Workspace) mcp.ToolHandlerFor[RelatedDocumentsInput, RelatedDocumentsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, in RelatedDocumentsInput) (*mcp.CallToolResult, RelatedDocumentsOutput, error) {
		depth := in.MaxDepth
		if depth <= 0 {
			depth = 2
		}
		return nil, RelatedDocumentsOutput{Related: ws.Refs.Related(in.Path, depth)}, nil
	}
}

// --- supersession_chain ---

// SupersessionChainInput is the input for the supersession_chain tool.
type SupersessionChainInput struct {
	Path string `json:"path" jsonschema:"starting document path"`
}

// SupersessionChainOutput is the output for the supersession_chain tool.
type SupersessionChainOutput struct {
	Chain   []string `json:"chain"             jsonschema:"ordered supersession chain starting at the document"`
	Warning string   `json:"warning,omitempty" jsonschema:"set when a cycle stopped the walk"`
}

func handleSupersessionChain(ws *workspace.Workspace) mcp.ToolHandlerFor[SupersessionChainInput, SupersessionChainOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, in SupersessionChainInput) (*mcp.CallToolResult, SupersessionChainOutput, error) {
		chain := ws.Refs.SupersessionChain(in.Path)
		out := SupersessionChainOutput{Chain: chain.Documents}
		if chain.Cycle {
			out.Warning = fmt.Sprintf("supersession cycle detected at %s; returning partial chain", chain.CycleAt)
		}
		return nil, out, nil
	}
}

// --- validate_references ---

// ValidateReferencesInput is the input for the validate_references tool (no parameters).
type ValidateReferencesInput struct{}

// ValidateReferencesOutput is the output for the validate_references tool.
type ValidateReferencesOutput struct {
	ValidCount int    `json:"valid_count"      jsonschema:"number of edges whose endpoints both exist"`
	Broken     []Edge `json:"broken,omitempty" jsonschema:"edges with at least one missing endpoint"`
}

func handleValidateReferences(ws *workspace.Workspace) mcp.ToolHandlerFor[ValidateReferencesInput, ValidateReferencesOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ValidateReferencesInput) (*mcp.CallToolResult, ValidateReferencesOutput, error) {
		report := ws.Refs.Validate()
		return nil, ValidateReferencesOutput{
			ValidCount: len(report.Valid),
			Broken:     toEdges(report.Broken),
		}, nil
	}
}

// --- repair_references ---

// RepairReferencesInput is the input for the repair_references tool (no parameters).
type RepairReferencesInput struct{}

// RepairReferencesOutput is the output for the repair_references tool.
type RepairReferencesOutput struct {
	Removed int `json:"removed" jsonschema:"number of broken edges removed"`
}

func handleRepairReferences(ws *workspace.Workspace) mcp.ToolHandlerFor[RepairReferencesInput, RepairReferencesOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ RepairReferencesInput) (*mcp.CallToolResult, RepairReferencesOutput, error) {
		removed, err := ws.Refs.CleanBroken()
		if err != nil {
			return nil, RepairReferencesOutput{}, fmt.Errorf("repairing references: %w", err)
		}
		return nil, RepairReferencesOutput{Removed: removed}, nil
	}
}
