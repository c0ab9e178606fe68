// Package main provides the entry point for the planks CLI.
package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/planksmith/planks/internal/docstore"
	"github.com/planksmith/planks/internal/output"
	"github.com/planksmith/planks/internal/refgraph"
	"github.com/planksmith/planks/internal/workspace"
)

// newRmCmd creates the rm command.
func newRmCmd() *cobra.Command {
	return newRmCmdInternal(nil)
}

func newRmCmdInternal(ws *workspace.Workspace) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>",
		Short: "Delete a document",
		Long: `Delete a document by its relative path. The document's number is never
reused. References touching the document become dangling; run
'planks check --fix' to remove them.

Examples:
  planks rm adr-003-dead-end.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRm(cmd, ws, args[0])
		},
	}
}

// runRm executes the rm command.
func runRm(cmd *cobra.Command, ws *workspace.Workspace, path string) error {
	printer := newCmdPrinter(cmd)

	ws, err := resolveWorkspace(ws)
	if err != nil {
		printer.Error(err)
		return err
	}

	if err := ws.Docs.Delete(path); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			err = output.NewUserError("document not found: " + path)
		} else {
			err = output.NewSystemErrorWithCause("deleting document", err)
		}
		printer.Error(err)
		return err
	}

	dangling := len(ws.Refs.References(path, refgraph.Both))
	if dangling > 0 && !printer.IsJSON() {
		printer.Warn("%d reference(s) still mention %s; run 'planks check --fix'", dangling, path)
	}

	return printer.Success(map[string]any{
		"message":  "Deleted " + path,
		"path":     path,
		"dangling": dangling,
	})
}
