// pkg/core/package.go
package core

import (
	"fmt"
	"sort"
	"time"
)

// Supported archive compressions.
const (
	CompressionGzip = "gzip"
	CompressionXZ   = "xz"
)

// FileEntry is one file belonging to a package: its path relative to the
// package's install directory and the SHA-256 of its content.
type FileEntry struct {
	Path   string `toml:"path"`
	SHA256 string `toml:"sha256"`
}

// Descriptor describes one publishable package version. Immutable once
// published to a source.
type Descriptor struct {
	Name        string      `toml:"name"`
	Version     string      `toml:"version"`
	OS          string      `toml:"os"`
	Arch        string      `toml:"arch"`
	Archive     string      `toml:"archive"`     // archive path relative to the source root
	SHA256      string      `toml:"sha256"`      // archive checksum
	Compression string      `toml:"compression"` // gzip or xz
	Files       []FileEntry `toml:"files"`
}

// Artifact returns the canonical name-version-os-arch stem shared by the
// archive and descriptor files of this package version.
func (d *Descriptor) Artifact() string {
	return ArtifactName(d.Name, d.Version, d.OS, d.Arch)
}

// ArtifactName builds the name-version-os-arch stem for one package version.
func ArtifactName(name, version, os, arch string) string {
	return fmt.Sprintf("%s-%s-%s-%s", name, version, os, arch)
}

// ArchiveSuffix returns the archive file suffix for a compression.
func ArchiveSuffix(compression string) string {
	if compression == CompressionXZ {
		return ".tar.xz"
	}
	return ".tar.gz"
}

// Record describes one installed package.
type Record struct {
	Name        string    `yaml:"name"`
	Version     string    `yaml:"version"`
	OS          string    `yaml:"os"`
	Arch        string    `yaml:"arch"`
	Files       []string  `yaml:"files"` // absolute installed paths
	InstalledAt time.Time `yaml:"installed_at"`
}

// Manifest is the local state file: one Record per installed package name.
type Manifest struct {
	Packages map[string]*Record `yaml:"packages"`
}

// NewManifest returns an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{Packages: make(map[string]*Record)}
}

// Get returns the record for name, if installed.
func (m *Manifest) Get(name string) (*Record, bool) {
	r, ok := m.Packages[name]
	return r, ok
}

// Put inserts or replaces the record for its package name.
func (m *Manifest) Put(r *Record) {
	if m.Packages == nil {
		m.Packages = make(map[string]*Record)
	}
	m.Packages[r.Name] = r
}

// Remove deletes the record for name.
func (m *Manifest) Remove(name string) {
	delete(m.Packages, name)
}

// Names returns the installed package names in sorted order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Packages))
	for name := range m.Packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
