// Package main provides the entry point for the planks CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/planksmith/planks/internal/output"
	"github.com/planksmith/planks/internal/refgraph"
	"github.com/planksmith/planks/internal/workspace"
)

// newLinkCmd creates the link command.
func newLinkCmd() *cobra.Command {
	return newLinkCmdInternal(nil)
}

func newLinkCmdInternal(ws *workspace.Workspace) *cobra.Command {
	var descriptionFlag string

	cmd := &cobra.Command{
		Use:   "link <from> <type> <to>",
		Short: "Record a typed reference between documents",
		Long: `Record a typed reference edge between two documents. Valid types are
references, supersedes, implements, and relates-to. Linking the same
pair with the same type again updates the description.

Examples:
  planks link plan-001-cache-layer.md implements adr-002-caching.md
  planks link adr-003-new.md supersedes adr-001-old.md --description "revisited in Q3"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLink(cmd, ws, args[0], args[1], args[2], descriptionFlag)
		},
	}

	cmd.Flags().StringVar(&descriptionFlag, "description", "", "Free-text description of the relationship")

	return cmd
}

// runLink executes the link command.
func runLink(cmd *cobra.Command, ws *workspace.Workspace, from, typeName, to, description string) error {
	printer := newCmdPrinter(cmd)

	typ, err := refgraph.ParseType(typeName)
	if err != nil {
		err = output.NewUserErrorWithCause("invalid reference type", err)
		printer.Error(err)
		return err
	}

	ws, err = resolveWorkspace(ws)
	if err != nil {
		printer.Error(err)
		return err
	}

	err = ws.Refs.Add(refgraph.Reference{From: from, To: to, Type: typ, Description: description})
	if err != nil {
		err = output.NewSystemErrorWithCause("recording reference", err)
		printer.Error(err)
		return err
	}

	return printer.Success(map[string]any{
		"message": from + " " + typeName + " " + to,
		"from":    from,
		"to":      to,
		"type":    typeName,
	})
}

// newUnlinkCmd creates the unlink command.
func newUnlinkCmd() *cobra.Command {
	return newUnlinkCmdInternal(nil)
}

func newUnlinkCmdInternal(ws *workspace.Workspace) *cobra.Command {
	var typeFlag string

	cmd := &cobra.Command{
		Use:   "unlink <from> <to>",
		Short: "Remove references between documents",
		Long: `Remove reference edges between two documents. Without --type, every
edge between the pair is removed.

Examples:
  planks unlink plan-001-cache-layer.md adr-002-caching.md
  planks unlink adr-003-new.md adr-001-old.md --type supersedes`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnlink(cmd, ws, args[0], args[1], typeFlag)
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", "", "Remove only edges of this type")

	return cmd
}

// runUnlink executes the unlink command.
func runUnlink(cmd *cobra.Command, ws *workspace.Workspace, from, to, typeName string) error {
	printer := newCmdPrinter(cmd)

	var types []refgraph.Type
	if typeName != "" {
		typ, err := refgraph.ParseType(typeName)
		if err != nil {
			err = output.NewUserErrorWithCause("invalid reference type", err)
			printer.Error(err)
			return err
		}
		types = append(types, typ)
	}

	ws, err := resolveWorkspace(ws)
	if err != nil {
		printer.Error(err)
		return err
	}

	removed, err := ws.Refs.Remove(from, to, types...)
	if err != nil {
		err = output.NewSystemErrorWithCause("removing references", err)
		printer.Error(err)
		return err
	}
	if removed == 0 {
		err = output.NewUserError("no matching references between " + from + " and " + to)
		printer.Error(err)
		return err
	}

	return printer.Success(map[string]any{
		"message": "Removed " + from + " -> " + to,
		"removed": removed,
	})
}
