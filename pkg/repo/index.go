// pkg/repo/index.go
package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/architecture-mechanism/bospm/pkg/core"
)

// Index is the descriptor listing a source publishes as index.toml, one
// [[package]] block per published version.
type Index struct {
	Packages []core.Descriptor `toml:"package"`
}

// ParseIndex decodes an index.toml document.
func ParseIndex(data string) (*Index, error) {
	var idx Index
	if _, err := toml.Decode(data, &idx); err != nil {
		return nil, fmt.Errorf("parsing index: %w", err)
	}
	return &idx, nil
}

// WriteIndex writes an index.toml listing the given descriptors.
func WriteIndex(path string, descs []core.Descriptor) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating index: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(Index{Packages: descs}); err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	return nil
}

// ReadDescriptor reads and parses one descriptor sidecar file.
func ReadDescriptor(path string) (*core.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading descriptor: %w", err)
	}

	var desc core.Descriptor
	if _, err := toml.Decode(string(data), &desc); err != nil {
		return nil, fmt.Errorf("parsing descriptor %s: %w", filepath.Base(path), err)
	}
	return &desc, nil
}

// WriteDescriptor writes the descriptor sidecar next to its archive.
func WriteDescriptor(path string, desc *core.Descriptor) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating descriptor: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(desc); err != nil {
		return fmt.Errorf("encoding descriptor: %w", err)
	}
	return nil
}
