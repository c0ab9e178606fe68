// Package workspace wires the document store, number allocator, and
// reference graph for one project directory. A single Workspace is
// constructed at process start and passed to every command and tool;
// there is no implicit global instance.
package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/planksmith/planks/internal/config"
	"github.com/planksmith/planks/internal/docstore"
	"github.com/planksmith/planks/internal/numbering"
	"github.com/planksmith/planks/internal/refgraph"
)

// Workspace bundles the three core stores for one project.
type Workspace struct {
	Root    string
	Docs    *docstore.Store
	Numbers *numbering.Allocator
	Refs    *refgraph.Graph
}

// Open creates a Workspace for the given project root. The reference graph
// is loaded eagerly; registry files are created lazily on first write.
func Open(root string) (*Workspace, error) {
	if err := config.LoadEnv(root); err != nil {
		return nil, err
	}

	stateDir := config.StateDir(root)
	store := docstore.NewStore(config.DocsDir(root))

	graph, err := refgraph.Load(filepath.Join(stateDir, refgraph.GraphFile), store.Exists)
	if err != nil {
		return nil, err
	}

	return &Workspace{
		Root:    root,
		Docs:    store,
		Numbers: numbering.NewAllocator(filepath.Join(stateDir, numbering.RegistryFile)),
		Refs:    graph,
	}, nil
}

// OpenDefault opens the workspace for the resolved project root
// ($PLANKS_DIR or the working directory).
func OpenDefault() (*Workspace, error) {
	root, err := config.ProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}
	return Open(root)
}

// Links are the optional relationships recorded when creating a document.
type Links struct {
	Supersedes []string
	Implements []string
	RelatesTo  []string
	References []string
}

// CreateDocument allocates the next number for the family, writes the
// document under the generated filename, and records the requested links.
// Returns the document's relative path and its number.
func (w *Workspace) CreateDocument(family, title, body string, meta docstore.Metadata, links Links) (string, int, error) {
	number, err := w.Numbers.NextNumber(family)
	if err != nil {
		return "", 0, err
	}

	path := numbering.Filename(family, number, title)
	doc := &docstore.Document{Path: path, Meta: docstore.Metadata{}, Body: body}
	for key, value := range meta {
		doc.Meta[key] = value
	}
	doc.Meta["title"] = title
	doc.Meta["number"] = number

	if err := w.Docs.Write(path, doc); err != nil {
		return "", 0, err
	}

	if err := w.addLinks(path, links); err != nil {
		return path, number, err
	}
	return path, number, nil
}

// addLinks records one edge per link target.
func (w *Workspace) addLinks(from string, links Links) error {
	add := func(targets []string, typ refgraph.Type) error {
		for _, to := range targets {
			if err := w.Refs.Add(refgraph.Reference{From: from, To: to, Type: typ}); err != nil {
				return fmt.Errorf("linking %s %s %s: %w", from, typ, to, err)
			}
		}
		return nil
	}

	if err := add(links.Supersedes, refgraph.TypeSupersedes); err != nil {
		return err
	}
	if err := add(links.Implements, refgraph.TypeImplements); err != nil {
		return err
	}
	if err := add(links.RelatesTo, refgraph.TypeRelatesTo); err != nil {
		return err
	}
	return add(links.References, refgraph.TypeReferences)
}

// MoveDocument moves a document to a new relative path and rewrites every
// graph edge that points at the old path. Returns the number of edges
// rewritten.
func (w *Workspace) MoveDocument(oldPath, newPath string) (int, error) {
	doc, err := w.Docs.Read(oldPath)
	if err != nil {
		return 0, err
	}
	if err := w.Docs.Write(newPath, doc); err != nil {
		return 0, err
	}
	if err := w.Docs.Delete(oldPath); err != nil {
		return 0, err
	}
	return w.Refs.Rename(oldPath, newPath)
}

// Renumber scans the documents matching pattern and ratchets the family's
// counter to the highest number found in their filenames. Self-heals the
// registry after files are copied in from elsewhere.
func (w *Workspace) Renumber(family, pattern string) (int, error) {
	paths, err := w.Docs.List(pattern)
	if err != nil {
		return 0, err
	}
	return w.Numbers.ScanAndUpdate(family, paths)
}
