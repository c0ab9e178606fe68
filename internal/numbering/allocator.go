// Package numbering allocates unique, monotonically increasing document
// numbers per family ("adr", "plan", ...) backed by a persisted JSON
// registry, and owns the filename grammar derived from those numbers.
package numbering

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// RegistryFile is the registry filename inside the state directory.
const RegistryFile = "numbering.json"

// Allocator hands out numbers per family and persists the last-issued value
// after every mutation. Calls for the same family are serialized by a
// per-family mutex; calls for different families proceed independently.
// Reservation goes through the same per-family exclusion as allocation, so
// a reservation racing an allocation cannot produce a duplicate.
type Allocator struct {
	path string

	mu       sync.Mutex
	families map[string]*sync.Mutex

	// fileMu guards the shared registry file across families. The critical
	// section is a read-increment-write of a small JSON object.
	fileMu sync.Mutex
}

// NewAllocator creates an Allocator persisting its registry at path.
// The registry file is created on first allocation.
func NewAllocator(path string) *Allocator {
	return &Allocator{
		path:     path,
		families: make(map[string]*sync.Mutex),
	}
}

// familyLock returns the mutex serializing operations for one family.
func (a *Allocator) familyLock(family string) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	lock, ok := a.families[family]
	if !ok {
		lock = &sync.Mutex{}
		a.families[family] = lock
	}
	return lock
}

// NextNumber returns the next number for the family: one greater than the
// last issued, starting at 1 for a new family. The new value is persisted
// before it is returned and is never returned twice for the same family.
func (a *Allocator) NextNumber(family string) (int, error) {
	if family == "" {
		return 0, errors.New("family must not be empty")
	}

	lock := a.familyLock(family)
	lock.Lock()
	defer lock.Unlock()

	a.fileMu.Lock()
	defer a.fileMu.Unlock()

	registry, err := a.load()
	if err != nil {
		return 0, err
	}

	next := registry[family] + 1
	registry[family] = next
	if err := a.save(registry); err != nil {
		return 0, err
	}
	return next, nil
}

// ReserveNumber ratchets the family's counter up to n if n exceeds the
// current value; lower or equal values are a no-op. Used when importing a
// document whose number was assigned externally.
func (a *Allocator) ReserveNumber(family string, n int) error {
	if family == "" {
		return errors.New("family must not be empty")
	}
	if n <= 0 {
		return fmt.Errorf("cannot reserve non-positive number %d", n)
	}

	lock := a.familyLock(family)
	lock.Lock()
	defer lock.Unlock()

	a.fileMu.Lock()
	defer a.fileMu.Unlock()

	registry, err := a.load()
	if err != nil {
		return err
	}

	if n <= registry[family] {
		return nil
	}
	registry[family] = n
	return a.save(registry)
}

// Current returns the last-issued number for the family (0 for a new family).
func (a *Allocator) Current(family string) (int, error) {
	a.fileMu.Lock()
	defer a.fileMu.Unlock()

	registry, err := a.load()
	if err != nil {
		return 0, err
	}
	return registry[family], nil
}

// ScanAndUpdate finds the maximum number embedded in any of the given
// filenames that belongs to the family, reserves it, and returns it.
// Filenames that do not match the grammar or belong to other families are
// ignored. Returns 0 if nothing matched.
func (a *Allocator) ScanAndUpdate(family string, filenames []string) (int, error) {
	maxSeen := 0
	for _, name := range filenames {
		components, ok := ParseFilename(filepath.Base(name))
		if !ok || components.Family != family {
			continue
		}
		if n := components.Value(); n > maxSeen {
			maxSeen = n
		}
	}

	if maxSeen == 0 {
		return 0, nil
	}
	if err := a.ReserveNumber(family, maxSeen); err != nil {
		return 0, err
	}
	return maxSeen, nil
}

// load reads the registry file. A missing file yields an empty registry.
func (a *Allocator) load() (map[string]int, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]int{}, nil
		}
		return nil, fmt.Errorf("reading number registry: %w", err)
	}

	registry := map[string]int{}
	if err := json.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("parsing number registry %s: %w", a.path, err)
	}
	return registry, nil
}

// save persists the registry using write-to-temp-then-rename.
func (a *Allocator) save(registry map[string]int) error {
	data, err := json.MarshalIndent(registry, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing number registry: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(a.path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(a.path), ".tmp-registry-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write registry: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, a.path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
