// Package mcp provides a Model Context Protocol server for planks.
// It exposes the document store, number allocator, and reference graph as
// MCP tools that any MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/planksmith/planks/internal/workspace"
)

// NewServer creates an MCP server with all planks tools registered.
func NewServer(version string, ws *workspace.Workspace) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "planks",
		Version: version,
	}, nil)
	registerTools(server, ws)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for write tools (additive, not destructive).
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all planks tools to the server.
func registerTools(server *mcp.Server, ws *workspace.Workspace) {
	mcp.AddTool(server, &mcp.Tool{
		Name: "create_document",
		Description: "Create a new numbered document in a family (adr, plan, ...). Allocates the next " +
			"number, writes the file with frontmatter, and records any requested relationships.",
		Annotations: writeAnnotations(),
	}, handleCreateDocument(ws))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "read_document",
		Description: "Read a single document by its relative path, returning its metadata and body.",
		Annotations: readOnlyAnnotations(),
	}, handleReadDocument(ws))

	mcp.AddTool(server, &mcp.Tool{
		Name: "search_documents",
		Description: "Search documents by a case-insensitive query over body, title, and tags. " +
			"An optional glob pattern restricts which files are searched.",
		Annotations: readOnlyAnnotations(),
	}, handleSearchDocuments(ws))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "recent_documents",
		Description: "List documents ordered by last-modified time, newest first.",
		Annotations: readOnlyAnnotations(),
	}, handleRecentDocuments(ws))

	mcp.AddTool(server, &mcp.Tool{
		Name: "link_documents",
		Description: "Record a typed relationship between two documents " +
			"(references, supersedes, implements, relates-to). Re-linking updates the description.",
		Annotations: writeAnnotations(),
	}, handleLinkDocuments(ws))

	mcp.AddTool(server, &mcp.Tool{
		Name: "related_documents",
		Description: "Discover documents related to a starting document by walking relationships " +
			"in both directions up to a maximum depth.",
		Annotations: readOnlyAnnotations(),
	}, handleRelatedDocuments(ws))

	mcp.AddTool(server, &mcp.Tool{
		Name: "supersession_chain",
		Description: "Follow supersedes relationships from a document and return the ordered chain. " +
			"A cycle stops the walk and is reported as a warning.",
		Annotations: readOnlyAnnotations(),
	}, handleSupersessionChain(ws))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_references",
		Description: "Check every relationship's endpoints against the files on disk and report valid and broken edges.",
		Annotations: readOnlyAnnotations(),
	}, handleValidateReferences(ws))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "repair_references",
		Description: "Remove relationships whose endpoints no longer exist on disk. Returns the number removed.",
		Annotations: writeAnnotations(),
	}, handleRepairReferences(ws))
}
