// Package main provides the entry point for the planks CLI.
package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/planksmith/planks/internal/docstore"
	"github.com/planksmith/planks/internal/output"
	"github.com/planksmith/planks/internal/workspace"
)

// newSearchCmd creates the search command.
func newSearchCmd() *cobra.Command {
	return newSearchCmdInternal(nil)
}

func newSearchCmdInternal(ws *workspace.Workspace) *cobra.Command {
	var patternFlag string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search documents by content",
		Long: `Search documents case-insensitively over body, title, and tags.
Malformed documents are skipped and counted, never fatal.

Examples:
  planks search "message queue"
  planks search cache --pattern 'adr-*.md'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, ws, patternFlag, args[0])
		},
	}

	cmd.Flags().StringVar(&patternFlag, "pattern", "", "Glob pattern restricting searched files")

	return cmd
}

// runSearch executes the search command.
func runSearch(cmd *cobra.Command, ws *workspace.Workspace, pattern, query string) error {
	printer := newCmdPrinter(cmd)

	ws, err := resolveWorkspace(ws)
	if err != nil {
		printer.Error(err)
		return err
	}

	docs, stats, err := ws.Docs.Search(pattern, query)
	if err != nil {
		err = output.NewSystemErrorWithCause("searching documents", err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"documents": summarizeDocs(docs),
			"count":     len(docs),
			"skipped":   stats.Skipped,
		})
	}

	if stats.Skipped > 0 {
		printer.Warn("%d malformed document(s) skipped", stats.Skipped)
	}
	if len(docs) == 0 {
		printer.Println("No matching documents.")
		return nil
	}
	printDocTable(printer, docs)
	return nil
}

// summarizeDocs reduces documents to their list-shaped fields.
func summarizeDocs(docs []*docstore.Document) []map[string]any {
	result := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		entry := map[string]any{
			"path":   doc.Path,
			"title":  doc.Title(),
			"number": doc.Number(),
		}
		if tags := doc.Tags(); len(tags) > 0 {
			entry["tags"] = tags
		}
		result = append(result, entry)
	}
	return result
}

// printDocTable renders documents as a path/number/title/tags table.
func printDocTable(printer *output.Printer, docs []*docstore.Document) {
	rows := make([][]string, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, []string{
			doc.Path,
			strconv.Itoa(doc.Number()),
			doc.Title(),
			strings.Join(doc.Tags(), ", "),
		})
	}
	printer.Table([]string{"PATH", "NUM", "TITLE", "TAGS"}, rows)
}
