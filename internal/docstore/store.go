package docstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// backupMarker appears in every backup filename; backup files are excluded
// from listing and never read by the store.
const backupMarker = ".backup."

// ListStats counts the outcome of a bulk read over matched files.
type ListStats struct {
	Total   int // files matched by the pattern
	Parsed  int // successfully parsed documents
	Skipped int // malformed documents skipped
}

// Store reads and writes documents as files under a root directory.
// It is the sole writer of the on-disk representation; concurrent writers
// to the same path are not coordinated (callers add their own exclusion).
type Store struct {
	root string
	now  func() time.Time
}

// NewStore creates a Store rooted at the given directory.
func NewStore(root string) *Store {
	return &Store{root: root, now: time.Now}
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// abs resolves a relative document path against the store root.
// Paths escaping the root are rejected.
func (s *Store) abs(rel string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid document path %q", rel)
	}
	return filepath.Join(s.root, cleaned), nil
}

// Read reads and parses the document at the given relative path.
// Returns ErrNotFound if the file does not exist and ErrMalformed if the
// frontmatter block cannot be parsed.
func (s *Store) Read(path string) (*Document, error) {
	full, err := s.abs(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}

	return Unmarshal(path, data)
}

// Write persists the document at the given relative path, creating parent
// directories as needed. If a file already exists at the path, it is renamed
// to a timestamped backup first, so no write is silently destructive.
func (s *Store) Write(path string, doc *Document) error {
	full, err := s.abs(path)
	if err != nil {
		return err
	}

	data, err := doc.Marshal()
	if err != nil {
		return fmt.Errorf("serializing document %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("creating document directory: %w", err)
	}

	if _, statErr := os.Stat(full); statErr == nil {
		if err := os.Rename(full, s.backupPath(full)); err != nil {
			return fmt.Errorf("backing up existing document %s: %w", path, err)
		}
	}

	if err := atomicWrite(full, data); err != nil {
		return fmt.Errorf("writing document %s: %w", path, err)
	}
	return nil
}

// backupPath builds the backup filename for an existing document.
// Format: <path>.backup.<RFC3339 timestamp with ':' and '.' replaced by '-'>.
func (s *Store) backupPath(full string) string {
	stamp := s.now().UTC().Format(time.RFC3339)
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
	return full + backupMarker + stamp
}

// Delete removes the document at the given relative path.
// Returns ErrNotFound if the file does not exist.
func (s *Store) Delete(path string) error {
	full, err := s.abs(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("deleting document %s: %w", path, err)
	}
	return nil
}

// Exists returns true if a document file exists at the given relative path.
func (s *Store) Exists(path string) bool {
	full, err := s.abs(path)
	if err != nil {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && !info.IsDir()
}

// List returns the relative paths of documents whose base name matches the
// glob pattern, sorted. Backup files and hidden directories are excluded.
// An empty pattern matches everything. The listing is restartable: each call
// walks the tree fresh.
func (s *Store) List(pattern string) ([]string, error) {
	var matches []string

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != s.root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.Contains(d.Name(), backupMarker) || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if pattern != "" {
			ok, matchErr := filepath.Match(pattern, d.Name())
			if matchErr != nil {
				return fmt.Errorf("invalid pattern %q: %w", pattern, matchErr)
			}
			if !ok {
				return nil
			}
		}
		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			return relErr
		}
		matches = append(matches, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	sort.Strings(matches)
	return matches, nil
}

// Search returns documents among those matching pattern whose body, title,
// or tags contain the query (case-insensitive). Malformed documents are
// skipped and counted in the returned stats rather than aborting the search.
func (s *Store) Search(pattern, query string) ([]*Document, *ListStats, error) {
	paths, err := s.List(pattern)
	if err != nil {
		return nil, nil, err
	}

	stats := &ListStats{Total: len(paths)}
	needle := strings.ToLower(query)
	var found []*Document

	for _, path := range paths {
		doc, readErr := s.Read(path)
		if readErr != nil {
			stats.Skipped++
			continue
		}
		stats.Parsed++
		if matchesQuery(doc, needle) {
			found = append(found, doc)
		}
	}

	return found, stats, nil
}

// matchesQuery reports whether the document's body, title, or any tag
// contains the lowercased needle. An empty needle matches everything.
func matchesQuery(doc *Document, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(doc.Body), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(doc.Title()), needle) {
		return true
	}
	for _, tag := range doc.Tags() {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// GetRecent returns up to limit documents matching pattern, ordered by file
// modification time descending. Malformed documents are skipped.
func (s *Store) GetRecent(pattern string, limit int) ([]*Document, error) {
	paths, err := s.List(pattern)
	if err != nil {
		return nil, err
	}

	type stamped struct {
		path  string
		mtime time.Time
	}
	stamps := make([]stamped, 0, len(paths))
	for _, path := range paths {
		full, absErr := s.abs(path)
		if absErr != nil {
			continue
		}
		info, statErr := os.Stat(full)
		if statErr != nil {
			continue
		}
		stamps = append(stamps, stamped{path: path, mtime: info.ModTime()})
	}

	sort.Slice(stamps, func(i, j int) bool {
		return stamps[i].mtime.After(stamps[j].mtime)
	})

	var docs []*Document
	for _, st := range stamps {
		if limit > 0 && len(docs) >= limit {
			break
		}
		doc, readErr := s.Read(st.path)
		if readErr != nil {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// atomicWrite writes data to path using write-to-temp-then-rename.
// The temp file is created in the same directory as path.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
