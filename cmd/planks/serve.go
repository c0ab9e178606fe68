// Package main provides the entry point for the planks CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	planksmcp "github.com/planksmith/planks/internal/mcp"
	"github.com/planksmith/planks/internal/workspace"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run planks as a Model Context Protocol (MCP) server over stdio.

This exposes the document store and reference graph as MCP tools that
any MCP-capable agent environment can use.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "planks": {
        "command": "planks",
        "args": ["serve"]
      }
    }
  }

Available tools: create_document, read_document, search_documents,
recent_documents, link_documents, related_documents, supersession_chain,
validate_references, repair_references`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := workspace.OpenDefault()
			if err != nil {
				return err
			}
			server := planksmcp.NewServer(buildVersion(), ws)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
