// Package main provides the entry point for the planks CLI.
package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/planksmith/planks/internal/docstore"
	"github.com/planksmith/planks/internal/output"
	"github.com/planksmith/planks/internal/workspace"
)

// newNewCmd creates the new command.
func newNewCmd() *cobra.Command {
	return newNewCmdInternal(nil)
}

// newNewCmdInternal creates the new command with optional workspace
// injection. If ws is nil, the default workspace is opened when the
// command runs.
func newNewCmdInternal(ws *workspace.Workspace) *cobra.Command {
	var (
		bodyFlag       string
		tagsFlag       []string
		supersedesFlag []string
		implementsFlag []string
		relatesFlag    []string
		referencesFlag []string
	)

	cmd := &cobra.Command{
		Use:   "new <family> <title>...",
		Short: "Create a numbered document",
		Long: `Create a new document in a family, allocating the next sequence number.

The filename is derived from the family, the number, and a slug of the
title: "planks new adr Use Message Queue" writes adr-001-use-message-queue.md.

Examples:
  planks new adr Use Message Queue
  planks new plan Cache Layer --tag infra --relates-to adr-001-use-message-queue.md
  planks new adr Drop Queue --supersedes adr-001-use-message-queue.md`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			links := workspace.Links{
				Supersedes: supersedesFlag,
				Implements: implementsFlag,
				RelatesTo:  relatesFlag,
				References: referencesFlag,
			}
			return runNew(cmd, ws, args[0], strings.Join(args[1:], " "), bodyFlag, tagsFlag, links)
		},
	}

	cmd.Flags().StringVar(&bodyFlag, "body", "", "Markdown body of the document")
	cmd.Flags().StringSliceVar(&tagsFlag, "tag", nil, "Tag to set (repeatable)")
	cmd.Flags().StringSliceVar(&supersedesFlag, "supersedes", nil, "Document this one supersedes (repeatable)")
	cmd.Flags().StringSliceVar(&implementsFlag, "implements", nil, "Document this one implements (repeatable)")
	cmd.Flags().StringSliceVar(&relatesFlag, "relates-to", nil, "Related document (repeatable)")
	cmd.Flags().StringSliceVar(&referencesFlag, "references", nil, "Referenced document (repeatable)")

	return cmd
}

// runNew executes the new command.
func runNew(cmd *cobra.Command, ws *workspace.Workspace, family, title, body string, tags []string, links workspace.Links) error {
	printer := newCmdPrinter(cmd)

	ws, err := resolveWorkspace(ws)
	if err != nil {
		printer.Error(err)
		return err
	}

	meta := docstore.Metadata{"created": time.Now().UTC().Format("2006-01-02")}
	if len(tags) > 0 {
		meta["tags"] = tags
	}

	path, number, err := ws.CreateDocument(family, title, body, meta, links)
	if err != nil {
		err = output.NewSystemErrorWithCause("creating document", err)
		printer.Error(err)
		return err
	}

	return printer.Success(map[string]any{
		"message": "Created " + path,
		"path":    path,
		"number":  number,
	})
}
