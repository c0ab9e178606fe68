// Package main provides the entry point for the planks CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/planksmith/planks/internal/export"
	"github.com/planksmith/planks/internal/output"
	"github.com/planksmith/planks/internal/workspace"
)

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	return newExportCmdInternal(nil)
}

func newExportCmdInternal(ws *workspace.Workspace) *cobra.Command {
	var (
		formatFlag  string
		patternFlag string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export documents and references as a snapshot",
		Long: `Export a point-in-time snapshot of every parseable document plus the
full reference edge set, as markdown or JSON.

Examples:
  planks export
  planks export --format json
  planks export --pattern 'adr-*.md'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, ws, formatFlag, patternFlag)
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "markdown", "Output format: markdown or json")
	cmd.Flags().StringVar(&patternFlag, "pattern", "", "Glob pattern restricting exported documents")

	return cmd
}

// runExport executes the export command.
func runExport(cmd *cobra.Command, ws *workspace.Workspace, format, pattern string) error {
	printer := newCmdPrinter(cmd)

	if format != "markdown" && format != "json" {
		err := output.NewUserError("invalid format " + format + " (want markdown or json)")
		printer.Error(err)
		return err
	}

	ws, err := resolveWorkspace(ws)
	if err != nil {
		printer.Error(err)
		return err
	}

	snapshot, err := export.BuildSnapshot(ws.Docs, ws.Refs, pattern)
	if err != nil {
		err = output.NewSystemErrorWithCause("building snapshot", err)
		printer.Error(err)
		return err
	}

	if format == "json" || printer.IsJSON() {
		return printer.WriteJSON(snapshot)
	}
	printer.Print("%s", snapshot.Markdown())
	return nil
}
