// Package main provides the entry point for the planks CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/planksmith/planks/internal/output"
	"github.com/planksmith/planks/internal/workspace"
)

// newLsCmd creates the ls command.
func newLsCmd() *cobra.Command {
	return newLsCmdInternal(nil)
}

func newLsCmdInternal(ws *workspace.Workspace) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [<pattern>]",
		Short: "List documents",
		Long: `List document paths, optionally restricted by a glob pattern on the
filename.

Examples:
  planks ls
  planks ls 'adr-*.md'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := ""
			if len(args) > 0 {
				pattern = args[0]
			}
			return runLs(cmd, ws, pattern)
		},
	}
}

// runLs executes the ls command.
func runLs(cmd *cobra.Command, ws *workspace.Workspace, pattern string) error {
	printer := newCmdPrinter(cmd)

	ws, err := resolveWorkspace(ws)
	if err != nil {
		printer.Error(err)
		return err
	}

	paths, err := ws.Docs.List(pattern)
	if err != nil {
		err = output.NewSystemErrorWithCause("listing documents", err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		if paths == nil {
			paths = []string{}
		}
		return printer.WriteJSON(map[string]any{"documents": paths, "count": len(paths)})
	}

	if len(paths) == 0 {
		printer.Println("No documents found.")
		return nil
	}
	for _, path := range paths {
		printer.Println(path)
	}
	return nil
}
