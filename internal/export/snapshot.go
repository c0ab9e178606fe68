// Package export renders the document store and reference graph as a
// combined snapshot, in JSON for machine consumption or markdown for
// documentation and reporting.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/planksmith/planks/internal/docstore"
	"github.com/planksmith/planks/internal/refgraph"
)

// DocumentSummary is the per-document slice of a snapshot.
type DocumentSummary struct {
	Path   string   `json:"path"`
	Title  string   `json:"title"`
	Number int      `json:"number"`
	Tags   []string `json:"tags,omitempty"`
}

// Snapshot is a point-in-time view of every parseable document plus the
// full reference edge set.
type Snapshot struct {
	GeneratedAt string            `json:"generatedAt"`
	Documents   []DocumentSummary `json:"documents"`
	References  []refgraph.Reference `json:"references"`
	Skipped     int               `json:"skipped,omitempty"`
}

// BuildSnapshot collects documents matching pattern from the store and all
// edges from the graph. Malformed documents are counted, not fatal.
func BuildSnapshot(store *docstore.Store, graph *refgraph.Graph, pattern string) (*Snapshot, error) {
	docs, stats, err := store.Search(pattern, "")
	if err != nil {
		return nil, fmt.Errorf("collecting documents: %w", err)
	}

	snapshot := &Snapshot{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Documents:   make([]DocumentSummary, 0, len(docs)),
		References:  graph.All(),
		Skipped:     stats.Skipped,
	}
	for _, doc := range docs {
		snapshot.Documents = append(snapshot.Documents, DocumentSummary{
			Path:   doc.Path,
			Title:  doc.Title(),
			Number: doc.Number(),
			Tags:   doc.Tags(),
		})
	}
	return snapshot, nil
}

// Markdown renders the snapshot as a human-readable report: a document
// index table followed by the reference table.
func (s *Snapshot) Markdown() string {
	var b strings.Builder

	b.WriteString("# Document Index\n\n")
	if len(s.Documents) == 0 {
		b.WriteString("No documents found.\n")
	} else {
		b.WriteString("| Path | Number | Title | Tags |\n")
		b.WriteString("|------|--------|-------|------|\n")
		for _, doc := range s.Documents {
			fmt.Fprintf(&b, "| %s | %d | %s | %s |\n",
				doc.Path, doc.Number, escapeCell(doc.Title), strings.Join(doc.Tags, ", "))
		}
	}
	if s.Skipped > 0 {
		fmt.Fprintf(&b, "\n%d malformed document(s) skipped.\n", s.Skipped)
	}

	b.WriteString("\n# References\n\n")
	if len(s.References) == 0 {
		b.WriteString("No references recorded.\n")
		return b.String()
	}
	b.WriteString("| From | Type | To | Description |\n")
	b.WriteString("|------|------|----|-------------|\n")
	for _, ref := range s.References {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			ref.From, ref.Type, ref.To, escapeCell(ref.Description))
	}
	return b.String()
}

// escapeCell keeps pipe characters from breaking the markdown tables.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
