package refgraph

import (
	"fmt"
	"strings"
)

// Report partitions the edge set by referential integrity.
type Report struct {
	Valid  []Reference // both endpoints exist on disk
	Broken []Reference // at least one endpoint is missing
}

// Validate checks every edge's endpoints against the existence check and
// partitions the edge set into valid and broken. It never aborts on a bad
// edge; the report is always complete.
func (g *Graph) Validate() Report {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var report Report
	for _, ref := range g.refs {
		if g.exists(ref.From) && g.exists(ref.To) {
			report.Valid = append(report.Valid, ref)
		} else {
			report.Broken = append(report.Broken, ref)
		}
	}
	return report
}

// CleanBroken removes every edge Validate classifies as broken, persists the
// result, and returns the number removed.
func (g *Graph) CleanBroken() (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	kept := g.refs[:0]
	removed := 0
	for _, ref := range g.refs {
		if g.exists(ref.From) && g.exists(ref.To) {
			kept = append(kept, ref)
		} else {
			removed++
		}
	}
	g.refs = kept

	if removed == 0 {
		return 0, nil
	}
	return removed, g.save()
}

// Rename rewrites every edge endpoint matching oldPath to newPath and
// persists the result. Returns the number of edges touched. Used when a
// document is renamed or moved.
func (g *Graph) Rename(oldPath, newPath string) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	touched := 0
	for i := range g.refs {
		changed := false
		if g.refs[i].From == oldPath {
			g.refs[i].From = newPath
			changed = true
		}
		if g.refs[i].To == oldPath {
			g.refs[i].To = newPath
			changed = true
		}
		if changed {
			touched++
		}
	}

	if touched == 0 {
		return 0, nil
	}
	return touched, g.save()
}

// ExportMarkdown renders the full edge set as a human-readable markdown
// table. A reporting convenience, not used for persistence.
func (g *Graph) ExportMarkdown() string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var b strings.Builder
	b.WriteString("# Document References\n\n")

	if len(g.refs) == 0 {
		b.WriteString("No references recorded.\n")
		return b.String()
	}

	b.WriteString("| From | Type | To | Description |\n")
	b.WriteString("|------|------|----|-------------|\n")
	for _, ref := range g.refs {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			escapeCell(ref.From), ref.Type, escapeCell(ref.To), escapeCell(ref.Description))
	}
	return b.String()
}

// escapeCell keeps pipe characters from breaking the markdown table.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
