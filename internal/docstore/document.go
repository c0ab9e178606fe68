// Package docstore provides durable read/write of markdown documents with
// YAML frontmatter, recursive listing, search, and backup-before-overwrite.
package docstore

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a document path does not resolve to a file.
var ErrNotFound = errors.New("document not found")

// ErrMalformed is returned when a document's frontmatter block cannot be
// parsed. Bulk operations treat this as skip-and-count, not a fatal error.
var ErrMalformed = errors.New("malformed frontmatter")

// delimiter marks the start and end of the frontmatter block.
const delimiter = "---"

// Metadata is the open string-keyed metadata map embedded in a document's
// frontmatter. Values are scalars or arrays; no schema is enforced beyond
// what individual accessors expect.
type Metadata map[string]any

// Document is a single stored document: a relative path, a frontmatter
// metadata map, and a free-text body.
type Document struct {
	Path string
	Meta Metadata
	Body string
}

// Title returns the title metadata value, or "" if absent.
func (d *Document) Title() string {
	title, _ := d.Meta["title"].(string)
	return title
}

// Number returns the sequence number metadata value, or 0 if absent.
func (d *Document) Number() int {
	switch n := d.Meta["number"].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

// Tags returns the tags metadata value as strings, or nil if absent.
func (d *Document) Tags() []string {
	raw, ok := d.Meta["tags"].([]any)
	if !ok {
		return nil
	}
	tags := make([]string, 0, len(raw))
	for _, item := range raw {
		if tag, ok := item.(string); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Marshal serializes the document as a frontmatter block followed by a blank
// line and the body. Metadata keys are emitted in a stable order: title,
// number, created, status, tags first, then the rest alphabetically.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")

	meta, err := marshalMeta(d.Meta)
	if err != nil {
		return nil, err
	}
	buf.Write(meta)

	buf.WriteString(delimiter + "\n\n")
	buf.WriteString(strings.TrimLeft(d.Body, "\n"))
	if !strings.HasSuffix(d.Body, "\n") {
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// priorityKeys are emitted before all other metadata keys, in this order.
var priorityKeys = []string{"title", "number", "created", "status", "tags"}

// marshalMeta encodes the metadata map as YAML with deterministic key order.
func marshalMeta(meta Metadata) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range orderedKeys(meta) {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}
		valNode := &yaml.Node{}
		if err := valNode.Encode(meta[key]); err != nil {
			return nil, fmt.Errorf("encoding metadata key %q: %w", key, err)
		}
		root.Content = append(root.Content, keyNode, valNode)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("encoding metadata: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding metadata: %w", err)
	}
	return buf.Bytes(), nil
}

// orderedKeys returns metadata keys with priority keys first, rest sorted.
func orderedKeys(meta Metadata) []string {
	keys := make([]string, 0, len(meta))
	for _, key := range priorityKeys {
		if _, ok := meta[key]; ok {
			keys = append(keys, key)
		}
	}
	var rest []string
	for key := range meta {
		if !isPriority(key) {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func isPriority(key string) bool {
	for _, p := range priorityKeys {
		if key == p {
			return true
		}
	}
	return false
}

// Unmarshal parses file content into a document. The content must start with
// a frontmatter block delimited by "---" lines; everything after the closing
// delimiter (less one leading blank line) is the body.
// Returns ErrMalformed if the block is missing or not valid YAML.
func Unmarshal(path string, content []byte) (*Document, error) {
	text := string(content)
	if !strings.HasPrefix(text, delimiter+"\n") && text != delimiter {
		return nil, fmt.Errorf("%w: %s: missing frontmatter block", ErrMalformed, path)
	}

	rest := strings.TrimPrefix(text, delimiter+"\n")
	block, body, found := strings.Cut(rest, "\n"+delimiter+"\n")
	if !found {
		// Closing delimiter at end of file without trailing newline.
		if strings.HasSuffix(rest, "\n"+delimiter) {
			block = strings.TrimSuffix(rest, "\n"+delimiter)
			body = ""
		} else {
			return nil, fmt.Errorf("%w: %s: unterminated frontmatter block", ErrMalformed, path)
		}
	}

	meta := Metadata{}
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}

	body = strings.TrimPrefix(body, "\n")
	return &Document{Path: path, Meta: meta, Body: body}, nil
}
