// Package main provides the entry point for the planks CLI.
package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/planksmith/planks/internal/docstore"
	"github.com/planksmith/planks/internal/output"
	"github.com/planksmith/planks/internal/workspace"
)

// newShowCmd creates the show command.
func newShowCmd() *cobra.Command {
	return newShowCmdInternal(nil)
}

func newShowCmdInternal(ws *workspace.Workspace) *cobra.Command {
	return &cobra.Command{
		Use:   "show <path>",
		Short: "Display a single document",
		Long: `Display a document's metadata and body by its relative path.

Examples:
  planks show adr-001-use-message-queue.md
  planks show adr-001-use-message-queue.md --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, ws, args[0])
		},
	}
}

// runShow executes the show command.
func runShow(cmd *cobra.Command, ws *workspace.Workspace, path string) error {
	printer := newCmdPrinter(cmd)

	ws, err := resolveWorkspace(ws)
	if err != nil {
		printer.Error(err)
		return err
	}

	doc, err := ws.Docs.Read(path)
	if err != nil {
		err = showReadError(path, err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"path":     doc.Path,
			"metadata": doc.Meta,
			"body":     doc.Body,
		})
	}

	outputShowHuman(printer, doc)
	return nil
}

// showReadError maps store errors onto the exit code taxonomy.
func showReadError(path string, err error) error {
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		return output.NewUserError("document not found: " + path)
	case errors.Is(err, docstore.ErrMalformed):
		return output.NewUserErrorWithCause("malformed document: "+path, err)
	default:
		return output.NewSystemErrorWithCause("reading document", err)
	}
}

// outputShowHuman prints the document in human-readable form.
func outputShowHuman(printer *output.Printer, doc *docstore.Document) {
	printer.Println(doc.Path)

	printer.Section("Metadata")
	printer.KeyValue("Title", doc.Title())
	printer.KeyValue("Number", fmt.Sprintf("%d", doc.Number()))
	if tags := doc.Tags(); len(tags) > 0 {
		printer.KeyValue("Tags", strings.Join(tags, ", "))
	}
	for _, key := range extraMetaKeys(doc.Meta) {
		printer.KeyValue(key, fmt.Sprintf("%v", doc.Meta[key]))
	}

	if strings.TrimSpace(doc.Body) != "" {
		printer.Section("Body")
		printer.Println(strings.TrimRight(doc.Body, "\n"))
	}
}

// extraMetaKeys returns the frontmatter keys not already rendered, sorted.
func extraMetaKeys(meta docstore.Metadata) []string {
	var keys []string
	for key := range meta {
		switch key {
		case "title", "number", "tags":
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
