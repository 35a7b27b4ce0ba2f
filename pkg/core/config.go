// pkg/core/config.go
package core

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Source kinds understood by the repository client.
const (
	SourceGit     = "git"
	SourceWebsite = "website"
)

// DefaultTimeout bounds every network operation.
const DefaultTimeout = 30 * time.Second

// SourceConfig names one remote package source.
type SourceConfig struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"` // git or website
	URL    string `yaml:"url"`
	Branch string `yaml:"branch,omitempty"`
}

// Config holds bospm configuration
type Config struct {
	Root           string         `yaml:"root"`        // state directory, default ~/.bospm
	Compression    string         `yaml:"compression"` // archive compression used by create
	TimeoutSeconds int            `yaml:"timeout_seconds"`
	Debug          bool           `yaml:"debug"`
	Sources        []SourceConfig `yaml:"sources"`
	Logger         *log.Logger    `yaml:"-"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Root:           DefaultRoot(),
		Compression:    CompressionGzip,
		TimeoutSeconds: 30,
		Sources:        DefaultSources(),
	}
}

// DefaultSources returns the standard package sources in resolution order.
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{
			Name:   "github",
			Kind:   SourceGit,
			URL:    "https://github.com/Architecture-Mechanism/bellande_operating_system_packages",
			Branch: "main",
		},
		{
			Name:   "gitlab",
			Kind:   SourceGit,
			URL:    "https://gitlab.com/Bellande-Architecture-Mechanism-Research-Innovation/bellande_operating_system_packages",
			Branch: "main",
		},
		{
			Name:   "bitbucket",
			Kind:   SourceGit,
			URL:    "https://bitbucket.org/bellande-architecture-mechanism/bellande_operating_system_packages",
			Branch: "main",
		},
		{
			Name: "website",
			Kind: SourceWebsite,
			URL:  "https://bellande-technologies.com/bospm_packages",
		},
	}
}

// LoadConfig loads configuration from file
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = filepath.Join(DefaultRoot(), "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Fill gaps a hand-edited config may leave
	if cfg.Compression == "" {
		cfg.Compression = CompressionGzip
	}
	if len(cfg.Sources) == 0 {
		cfg.Sources = DefaultSources()
	}

	return &cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = filepath.Join(DefaultRoot(), "config.yaml")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultRoot returns the state directory, honoring BOSPM_HOME.
func DefaultRoot() string {
	if root := os.Getenv("BOSPM_HOME"); root != "" {
		return root
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "bospm")
	}

	return filepath.Join(home, ".bospm")
}

// Timeout returns the network timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ManifestPath returns the manifest location under the state root.
func (c *Config) ManifestPath() string {
	return filepath.Join(c.root(), "manifest.yaml")
}

// RepoDir returns the local repository directory create publishes into.
func (c *Config) RepoDir() string {
	return filepath.Join(c.root(), "repo")
}

// InstallDir returns the directory holding installed package trees.
func (c *Config) InstallDir() string {
	return filepath.Join(c.root(), "installed")
}

// StagingDir returns the staging area used before a transaction commits.
// It lives under the root so the commit rename never crosses filesystems.
func (c *Config) StagingDir() string {
	return filepath.Join(c.root(), "staging")
}

// CacheDir returns the download cache directory.
func (c *Config) CacheDir() string {
	return filepath.Join(c.root(), "cache")
}

func (c *Config) root() string {
	if c.Root != "" {
		return c.Root
	}
	return DefaultRoot()
}
