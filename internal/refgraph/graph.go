// Package refgraph maintains a persisted, directed, typed edge set between
// document identifiers: upsert and removal, bidirectional queries, bounded
// graph traversal that is safe on cycles, and integrity validation against
// the documents actually present on disk.
package refgraph

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// GraphFile is the edge-list filename inside the state directory.
const GraphFile = "references.json"

// Type is a relationship type between two documents.
type Type string

// Supported relationship types.
const (
	TypeReferences Type = "references"
	TypeSupersedes Type = "supersedes"
	TypeImplements Type = "implements"
	TypeRelatesTo  Type = "relates-to"
)

// ParseType validates a relationship type string.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeReferences, TypeSupersedes, TypeImplements, TypeRelatesTo:
		return Type(s), nil
	}
	return "", fmt.Errorf("unknown reference type %q (want references, supersedes, implements, or relates-to)", s)
}

// Reference is a typed edge between two document identifiers.
// At most one edge exists per (From, To, Type) triple; re-adding overwrites
// the description.
type Reference struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Type        Type   `json:"type"`
	Description string `json:"description,omitempty"`
}

// Direction selects which edges touching a document a query returns.
type Direction int

// Direction values.
const (
	Outgoing Direction = iota // edges where the document is the source
	Incoming                  // edges where the document is the target
	Both                      // either endpoint
)

// ExistsFunc reports whether a document identifier resolves to a file on
// disk. The graph uses it for integrity validation only.
type ExistsFunc func(id string) bool

// graphState is the persisted JSON shape of the edge list.
type graphState struct {
	References  []Reference `json:"references"`
	LastUpdated string      `json:"lastUpdated"`
}

// Graph is the in-memory edge set with save-after-mutate persistence.
// Safe for concurrent use within one process; multiple processes pointed at
// the same file are not coordinated.
type Graph struct {
	path   string
	exists ExistsFunc
	now    func() time.Time

	mu   sync.RWMutex
	refs []Reference
}

// Load reads the edge list at path, or starts empty if the file does not
// exist. The exists func is consulted by Validate and CleanBroken; a nil
// func treats every endpoint as missing.
func Load(path string, exists ExistsFunc) (*Graph, error) {
	g := &Graph{path: path, exists: exists, now: time.Now}
	if g.exists == nil {
		g.exists = func(string) bool { return false }
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return g, nil
		}
		return nil, fmt.Errorf("reading reference graph: %w", err)
	}

	var state graphState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing reference graph %s: %w", path, err)
	}
	g.refs = state.References
	return g, nil
}

// Add upserts an edge keyed by (From, To, Type). If the triple already
// exists, only the description is updated. The edge list is persisted
// before returning.
func (g *Graph) Add(ref Reference) error {
	if ref.From == "" || ref.To == "" {
		return errors.New("reference endpoints must not be empty")
	}
	if _, err := ParseType(string(ref.Type)); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.refs {
		if g.refs[i].From == ref.From && g.refs[i].To == ref.To && g.refs[i].Type == ref.Type {
			g.refs[i].Description = ref.Description
			return g.save()
		}
	}
	g.refs = append(g.refs, ref)
	return g.save()
}

// Remove deletes edges between from and to. With one or more types, only
// edges of those types are deleted; with none, every edge between the pair.
// Returns the number of edges removed.
func (g *Graph) Remove(from, to string, types ...Type) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	kept := g.refs[:0]
	removed := 0
	for _, ref := range g.refs {
		if ref.From == from && ref.To == to && matchesType(ref.Type, types) {
			removed++
			continue
		}
		kept = append(kept, ref)
	}
	g.refs = kept

	if removed == 0 {
		return 0, nil
	}
	return removed, g.save()
}

// matchesType reports whether t is in types; an empty list matches any type.
func matchesType(t Type, types []Type) bool {
	if len(types) == 0 {
		return true
	}
	for _, candidate := range types {
		if t == candidate {
			return true
		}
	}
	return false
}

// References returns edges touching the document in the given direction.
func (g *Graph) References(id string, dir Direction) []Reference {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var result []Reference
	for _, ref := range g.refs {
		switch dir {
		case Outgoing:
			if ref.From == id {
				result = append(result, ref)
			}
		case Incoming:
			if ref.To == id {
				result = append(result, ref)
			}
		case Both:
			if ref.From == id || ref.To == id {
				result = append(result, ref)
			}
		}
	}
	return result
}

// OfType returns all edges of the given relationship type.
func (g *Graph) OfType(t Type) []Reference {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var result []Reference
	for _, ref := range g.refs {
		if ref.Type == t {
			result = append(result, ref)
		}
	}
	return result
}

// Bidirectional splits the edges touching a document into incoming and
// outgoing sets. A self-loop appears in both.
func (g *Graph) Bidirectional(id string) (incoming, outgoing []Reference) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, ref := range g.refs {
		if ref.To == id {
			incoming = append(incoming, ref)
		}
		if ref.From == id {
			outgoing = append(outgoing, ref)
		}
	}
	return incoming, outgoing
}

// All returns a copy of the full edge list.
func (g *Graph) All() []Reference {
	g.mu.RLock()
	defer g.mu.RUnlock()

	result := make([]Reference, len(g.refs))
	copy(result, g.refs)
	return result
}

// Len returns the number of stored edges.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.refs)
}

// save persists the edge list with a lastUpdated stamp. Callers hold g.mu.
func (g *Graph) save() error {
	state := graphState{
		References:  g.refs,
		LastUpdated: g.now().UTC().Format(time.RFC3339),
	}
	if state.References == nil {
		state.References = []Reference{}
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing reference graph: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(g.path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(g.path), ".tmp-references-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write reference graph: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, g.path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
