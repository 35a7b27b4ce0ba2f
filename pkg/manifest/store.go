// pkg/manifest/store.go
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rogpeppe/go-internal/lockedfile"
	"gopkg.in/yaml.v3"

	"github.com/architecture-mechanism/bospm/pkg/core"
)

// Store persists the installed-package manifest as one YAML document,
// guarded by a sibling lock file so concurrent invocations serialize.
type Store struct {
	path string
	mu   *lockedfile.Mutex
}

// NewStore returns a store for the manifest at path. The lock file
// lives next to it.
func NewStore(path string) *Store {
	return &Store{path: path, mu: lockedfile.MutexAt(path + ".lock")}
}

// Path returns the manifest location on disk.
func (s *Store) Path() string { return s.path }

// Lock takes the manifest lock, creating the state directory on first
// use. The returned func releases it.
func (s *Store) Lock() (func(), error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	unlock, err := s.mu.Lock()
	if err != nil {
		return nil, fmt.Errorf("locking manifest: %w", err)
	}
	return unlock, nil
}

// Load reads the manifest. A missing file is an empty manifest, not an
// error.
func (s *Store) Load() (*core.Manifest, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return core.NewManifest(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m core.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &core.Error{Op: "load", Err: fmt.Errorf("%w: %v", core.ErrCorruptState, err)}
	}
	if m.Packages == nil {
		m.Packages = make(map[string]*core.Record)
	}
	return &m, nil
}

// Save writes the manifest to a temp file in the same directory and
// renames it over the old document, so readers never see a partial
// write.
func (s *Store) Save(m *core.Manifest) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(s.path), ".manifest-*")
	if err != nil {
		return fmt.Errorf("creating manifest temp file: %w", err)
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing manifest: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing manifest: %w", err)
	}
	return nil
}
