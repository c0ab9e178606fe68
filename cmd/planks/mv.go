// Package main provides the entry point for the planks CLI.
package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/planksmith/planks/internal/docstore"
	"github.com/planksmith/planks/internal/output"
	"github.com/planksmith/planks/internal/workspace"
)

// newMvCmd creates the mv command.
func newMvCmd() *cobra.Command {
	return newMvCmdInternal(nil)
}

func newMvCmdInternal(ws *workspace.Workspace) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <old-path> <new-path>",
		Short: "Move a document, rewriting references",
		Long: `Move a document to a new relative path. Every reference edge pointing
at the old path is rewritten to the new one.

Examples:
  planks mv adr-001-use-message-queue.md archive/adr-001-use-message-queue.md`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMv(cmd, ws, args[0], args[1])
		},
	}
}

// runMv executes the mv command.
func runMv(cmd *cobra.Command, ws *workspace.Workspace, oldPath, newPath string) error {
	printer := newCmdPrinter(cmd)

	ws, err := resolveWorkspace(ws)
	if err != nil {
		printer.Error(err)
		return err
	}

	touched, err := ws.MoveDocument(oldPath, newPath)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			err = output.NewUserError("document not found: " + oldPath)
		} else {
			err = output.NewSystemErrorWithCause("moving document", err)
		}
		printer.Error(err)
		return err
	}

	return printer.Success(map[string]any{
		"message":    "Moved " + oldPath + " -> " + newPath,
		"from":       oldPath,
		"to":         newPath,
		"references": touched,
	})
}
