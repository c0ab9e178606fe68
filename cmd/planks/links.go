// Package main provides the entry point for the planks CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/planksmith/planks/internal/output"
	"github.com/planksmith/planks/internal/refgraph"
	"github.com/planksmith/planks/internal/workspace"
)

// newLinksCmd creates the links command.
func newLinksCmd() *cobra.Command {
	return newLinksCmdInternal(nil)
}

func newLinksCmdInternal(ws *workspace.Workspace) *cobra.Command {
	var directionFlag string

	cmd := &cobra.Command{
		Use:   "links <path>",
		Short: "List references touching a document",
		Long: `List reference edges touching a document. The direction is out
(edges from the document), in (edges to it), or both.

Examples:
  planks links adr-001-use-message-queue.md
  planks links adr-001-use-message-queue.md --direction in`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLinks(cmd, ws, args[0], directionFlag)
		},
	}

	cmd.Flags().StringVar(&directionFlag, "direction", "both", "Edge direction: out, in, or both")

	return cmd
}

// parseDirection maps the flag value onto a graph direction.
func parseDirection(s string) (refgraph.Direction, error) {
	switch s {
	case "out":
		return refgraph.Outgoing, nil
	case "in":
		return refgraph.Incoming, nil
	case "both":
		return refgraph.Both, nil
	default:
		return refgraph.Both, output.NewUserError("invalid direction " + s + " (want out, in, or both)")
	}
}

// runLinks executes the links command.
func runLinks(cmd *cobra.Command, ws *workspace.Workspace, path, direction string) error {
	printer := newCmdPrinter(cmd)

	dir, err := parseDirection(direction)
	if err != nil {
		printer.Error(err)
		return err
	}

	ws, err = resolveWorkspace(ws)
	if err != nil {
		printer.Error(err)
		return err
	}

	refs := ws.Refs.References(path, dir)

	if printer.IsJSON() {
		if refs == nil {
			refs = []refgraph.Reference{}
		}
		return printer.WriteJSON(map[string]any{"references": refs, "count": len(refs)})
	}

	if len(refs) == 0 {
		printer.Println("No references.")
		return nil
	}
	printRefTable(printer, refs)
	return nil
}

// printRefTable renders edges as a from/type/to/description table.
func printRefTable(printer *output.Printer, refs []refgraph.Reference) {
	rows := make([][]string, 0, len(refs))
	for _, ref := range refs {
		rows = append(rows, []string{ref.From, string(ref.Type), ref.To, ref.Description})
	}
	printer.Table([]string{"FROM", "TYPE", "TO", "DESCRIPTION"}, rows)
}
