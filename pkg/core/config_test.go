// pkg/core/config_test.go
package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CompressionGzip, cfg.Compression)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.False(t, cfg.Debug)

	names := make([]string, len(cfg.Sources))
	for i, s := range cfg.Sources {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"github", "gitlab", "bitbucket", "website"}, names)
	assert.Equal(t, SourceGit, cfg.Sources[0].Kind)
	assert.Equal(t, SourceWebsite, cfg.Sources[3].Kind)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Compression, cfg.Compression)
	assert.Len(t, cfg.Sources, 4)
}

func TestSaveLoadConfigRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	in := &Config{
		Root:           "/var/lib/bospm",
		Compression:    CompressionXZ,
		TimeoutSeconds: 5,
		Debug:          true,
		Sources: []SourceConfig{
			{Name: "local", Kind: SourceWebsite, URL: "http://127.0.0.1:9000"},
		},
	}
	require.NoError(t, SaveConfig(in, path))

	out, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, in.Root, out.Root)
	assert.Equal(t, CompressionXZ, out.Compression)
	assert.Equal(t, 5*time.Second, out.Timeout())
	assert.True(t, out.Debug)
	assert.Equal(t, in.Sources, out.Sources)
}

func TestLoadConfigParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- not yaml"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestDefaultRootEnvOverride(t *testing.T) {
	t.Setenv("BOSPM_HOME", "/srv/bospm")
	assert.Equal(t, "/srv/bospm", DefaultRoot())
}

func TestConfigPaths(t *testing.T) {
	cfg := &Config{Root: "/data/bospm"}

	assert.Equal(t, filepath.Join("/data/bospm", "manifest.yaml"), cfg.ManifestPath())
	assert.Equal(t, filepath.Join("/data/bospm", "repo"), cfg.RepoDir())
	assert.Equal(t, filepath.Join("/data/bospm", "installed"), cfg.InstallDir())
	assert.Equal(t, filepath.Join("/data/bospm", "staging"), cfg.StagingDir())
	assert.Equal(t, filepath.Join("/data/bospm", "cache"), cfg.CacheDir())
}
