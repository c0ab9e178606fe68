// Package main provides the entry point for the planks CLI.
package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/planksmith/planks/internal/output"
	"github.com/planksmith/planks/internal/workspace"
)

// newRenumberCmd creates the renumber command.
func newRenumberCmd() *cobra.Command {
	return newRenumberCmdInternal(nil)
}

func newRenumberCmdInternal(ws *workspace.Workspace) *cobra.Command {
	var patternFlag string

	cmd := &cobra.Command{
		Use:   "renumber <family>",
		Short: "Ratchet a family's counter to match the files on disk",
		Long: `Scan the documents on disk and advance the family's number counter to
the highest number found in their filenames. Use after copying files in
from another project; the counter only moves forward, never back.

Examples:
  planks renumber adr
  planks renumber plan --pattern 'plan-*.md'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := patternFlag
			if pattern == "" {
				pattern = args[0] + "-*.md"
			}
			return runRenumber(cmd, ws, args[0], pattern)
		},
	}

	cmd.Flags().StringVar(&patternFlag, "pattern", "", "Glob pattern for the scan (default <family>-*.md)")

	return cmd
}

// runRenumber executes the renumber command.
func runRenumber(cmd *cobra.Command, ws *workspace.Workspace, family, pattern string) error {
	printer := newCmdPrinter(cmd)

	ws, err := resolveWorkspace(ws)
	if err != nil {
		printer.Error(err)
		return err
	}

	maxFound, err := ws.Renumber(family, pattern)
	if err != nil {
		err = output.NewSystemErrorWithCause("renumbering", err)
		printer.Error(err)
		return err
	}

	if maxFound == 0 {
		return printer.Success(map[string]any{
			"message": "No numbered documents found for " + family + "; counter unchanged",
			"family":  family,
			"max":     0,
		})
	}
	return printer.Success(map[string]any{
		"message": "Counter for " + family + " is at least " + strconv.Itoa(maxFound),
		"family":  family,
		"max":     maxFound,
	})
}
