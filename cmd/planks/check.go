// Package main provides the entry point for the planks CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/planksmith/planks/internal/output"
	"github.com/planksmith/planks/internal/workspace"
)

// newCheckCmd creates the check command.
func newCheckCmd() *cobra.Command {
	return newCheckCmdInternal(nil)
}

func newCheckCmdInternal(ws *workspace.Workspace) *cobra.Command {
	var fixFlag bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check reference integrity",
		Long: `Check every reference edge against the files on disk. Edges whose
endpoints are both present are valid; the rest are broken. With --fix,
broken edges are removed.

Exits with the conflict code when broken edges remain.

Examples:
  planks check
  planks check --fix`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, ws, fixFlag)
		},
	}

	cmd.Flags().BoolVar(&fixFlag, "fix", false, "Remove broken references")

	return cmd
}

// runCheck executes the check command.
func runCheck(cmd *cobra.Command, ws *workspace.Workspace, fix bool) error {
	printer := newCmdPrinter(cmd)

	ws, err := resolveWorkspace(ws)
	if err != nil {
		printer.Error(err)
		return err
	}

	report := ws.Refs.Validate()

	removed := 0
	if fix && len(report.Broken) > 0 {
		removed, err = ws.Refs.CleanBroken()
		if err != nil {
			err = output.NewSystemErrorWithCause("repairing references", err)
			printer.Error(err)
			return err
		}
	}

	if printer.IsJSON() {
		data := map[string]any{
			"valid":  len(report.Valid),
			"broken": report.Broken,
		}
		if fix {
			data["removed"] = removed
		}
		if err := printer.WriteJSON(data); err != nil {
			return err
		}
	} else {
		printer.Print("%d valid, %d broken reference(s)\n", len(report.Valid), len(report.Broken))
		if len(report.Broken) > 0 {
			printRefTable(printer, report.Broken)
		}
		if fix {
			printer.Print("Removed %d broken reference(s)\n", removed)
		}
	}

	if len(report.Broken) > 0 && !fix {
		return output.NewConflictError("reference graph has broken edges")
	}
	return nil
}
