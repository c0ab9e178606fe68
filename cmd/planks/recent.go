// Package main provides the entry point for the planks CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/planksmith/planks/internal/output"
	"github.com/planksmith/planks/internal/workspace"
)

// newRecentCmd creates the recent command.
func newRecentCmd() *cobra.Command {
	return newRecentCmdInternal(nil)
}

func newRecentCmdInternal(ws *workspace.Workspace) *cobra.Command {
	var (
		limitFlag   int
		patternFlag string
	)

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently modified documents",
		Long: `List documents ordered by last-modified time, newest first.

Examples:
  planks recent
  planks recent --limit 5 --pattern 'plan-*.md'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecent(cmd, ws, patternFlag, limitFlag)
		},
	}

	cmd.Flags().IntVar(&limitFlag, "limit", 10, "Maximum number of documents")
	cmd.Flags().StringVar(&patternFlag, "pattern", "", "Glob pattern restricting listed files")

	return cmd
}

// runRecent executes the recent command.
func runRecent(cmd *cobra.Command, ws *workspace.Workspace, pattern string, limit int) error {
	printer := newCmdPrinter(cmd)

	ws, err := resolveWorkspace(ws)
	if err != nil {
		printer.Error(err)
		return err
	}

	docs, err := ws.Docs.GetRecent(pattern, limit)
	if err != nil {
		err = output.NewSystemErrorWithCause("listing recent documents", err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"documents": summarizeDocs(docs),
			"count":     len(docs),
		})
	}

	if len(docs) == 0 {
		printer.Println("No documents found.")
		return nil
	}
	printDocTable(printer, docs)
	return nil
}
