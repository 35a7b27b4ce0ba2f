// bospm.go
package bospm

import (
	"github.com/architecture-mechanism/bospm/pkg/core"
	"github.com/architecture-mechanism/bospm/pkg/engine"
	"github.com/architecture-mechanism/bospm/pkg/platform"
)

// Version is the bospm release version.
const Version = "0.1.0"

// Re-export core types for convenience
type (
	Config       = core.Config
	SourceConfig = core.SourceConfig
	Descriptor   = core.Descriptor
	FileEntry    = core.FileEntry
	Record       = core.Record
	Manifest     = core.Manifest
	// Engine runs package transactions. Re-exported so embedding tools
	// can drive installs without importing the subpackages.
	Engine = engine.Engine
)

// Re-export source kinds and compression names
const (
	SourceGit       = core.SourceGit
	SourceWebsite   = core.SourceWebsite
	CompressionGzip = core.CompressionGzip
	CompressionXZ   = core.CompressionXZ
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return core.DefaultConfig()
}

// LoadConfig reads the configuration at path, or the default location
// when path is empty. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	return core.LoadConfig(path)
}

// New creates an engine for cfg, detecting the current platform. A nil
// cfg uses DefaultConfig.
func New(cfg *Config) *Engine {
	return engine.New(cfg, platform.Detect())
}
