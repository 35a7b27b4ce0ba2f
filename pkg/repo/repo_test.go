// pkg/repo/repo_test.go
package repo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/architecture-mechanism/bospm/pkg/core"
)

const fooIndex = `
[[package]]
name = "foo"
version = "1.0.0"
os = "linux"
arch = "amd64"
archive = "foo-1.0.0-linux-amd64.tar.gz"
sha256 = "aa11"
compression = "gzip"

  [[package.files]]
  path = "foo.bin"
  sha256 = "bb22"

[[package]]
name = "foo"
version = "1.2.0"
os = "linux"
arch = "amd64"
archive = "foo-1.2.0-linux-amd64.tar.gz"
sha256 = "cc33"
compression = "gzip"

[[package]]
name = "bar"
version = "0.3.0"
os = "linux"
arch = "arm64"
archive = "bar-0.3.0-linux-arm64.tar.xz"
sha256 = "dd44"
compression = "xz"
`

// serveDir exposes dir the way a website source expects: index.toml and
// archives under one base URL.
func serveDir(t *testing.T, dir string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.FileServer(http.Dir(dir)))
	t.Cleanup(srv.Close)
	return srv
}

func serveIndex(t *testing.T, index string) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, IndexFile), []byte(index), 0644))
	return serveDir(t, dir)
}

func websiteClient(t *testing.T, urls ...string) *Client {
	t.Helper()
	cfg := &core.Config{TimeoutSeconds: 5}
	for i, url := range urls {
		name := "website"
		if i > 0 {
			name = "mirror"
		}
		cfg.Sources = append(cfg.Sources, core.SourceConfig{Name: name, Kind: core.SourceWebsite, URL: url})
	}
	return New(cfg)
}

func TestListAvailable(t *testing.T) {
	srv := serveIndex(t, fooIndex)
	c := websiteClient(t, srv.URL)

	descs, err := c.ListAvailable(context.Background(), "website")
	require.NoError(t, err)
	require.Len(t, descs, 3)

	assert.Equal(t, "foo", descs[0].Name)
	assert.Equal(t, "1.0.0", descs[0].Version)
	assert.Equal(t, "linux", descs[0].OS)
	assert.Equal(t, "amd64", descs[0].Arch)
	assert.Equal(t, "foo-1.0.0-linux-amd64.tar.gz", descs[0].Archive)
	assert.Equal(t, core.CompressionGzip, descs[0].Compression)
	require.Len(t, descs[0].Files, 1)
	assert.Equal(t, core.FileEntry{Path: "foo.bin", SHA256: "bb22"}, descs[0].Files[0])

	assert.Equal(t, core.CompressionXZ, descs[2].Compression)
}

func TestListAvailableEmptyIndex(t *testing.T) {
	srv := serveIndex(t, "# nothing published yet\n")
	c := websiteClient(t, srv.URL)

	descs, err := c.ListAvailable(context.Background(), "website")
	require.NoError(t, err)
	assert.Empty(t, descs)
}

func TestListAvailableUnknownSource(t *testing.T) {
	c := websiteClient(t, "http://127.0.0.1:0")

	_, err := c.ListAvailable(context.Background(), "nowhere")
	require.ErrorIs(t, err, core.ErrInvalidPackage)
}

func TestListAvailableMissingIndex(t *testing.T) {
	srv := serveDir(t, t.TempDir()) // no index.toml, FileServer answers 404
	c := websiteClient(t, srv.URL)

	_, err := c.ListAvailable(context.Background(), "website")
	require.ErrorIs(t, err, core.ErrNetwork)
}

func TestListAllMergesSources(t *testing.T) {
	first := serveIndex(t, `
[[package]]
name = "foo"
version = "1.0.0"
os = "linux"
arch = "amd64"
archive = "foo-1.0.0-linux-amd64.tar.gz"
sha256 = "aa"
`)
	second := serveIndex(t, `
[[package]]
name = "bar"
version = "2.0.0"
os = "linux"
arch = "amd64"
archive = "bar-2.0.0-linux-amd64.tar.gz"
sha256 = "bb"
`)
	c := websiteClient(t, first.URL, second.URL)

	descs, err := c.ListAvailable(context.Background(), SourceAll)
	require.NoError(t, err)
	require.Len(t, descs, 2)
	assert.Equal(t, "foo", descs[0].Name)
	assert.Equal(t, "bar", descs[1].Name)
}

func TestResolve(t *testing.T) {
	srv := serveIndex(t, fooIndex)
	c := websiteClient(t, srv.URL)

	desc, err := c.Resolve(context.Background(), "foo", "1.2.0", "linux", "amd64")
	require.NoError(t, err)
	assert.Equal(t, "cc33", desc.SHA256)
}

func TestResolveNotFound(t *testing.T) {
	srv := serveIndex(t, fooIndex)
	c := websiteClient(t, srv.URL)

	_, err := c.Resolve(context.Background(), "foo", "9.9.9", "linux", "amd64")
	require.ErrorIs(t, err, core.ErrPackageNotFound)

	_, err = c.Resolve(context.Background(), "baz", "1.0.0", "linux", "amd64")
	require.ErrorIs(t, err, core.ErrPackageNotFound)
}

func TestResolveAmbiguous(t *testing.T) {
	// Same name and version published for two architectures; omitting
	// arch leaves two candidates.
	srv := serveIndex(t, `
[[package]]
name = "foo"
version = "1.0.0"
os = "linux"
arch = "amd64"
archive = "foo-1.0.0-linux-amd64.tar.gz"
sha256 = "aa"

[[package]]
name = "foo"
version = "1.0.0"
os = "linux"
arch = "arm64"
archive = "foo-1.0.0-linux-arm64.tar.gz"
sha256 = "bb"
`)
	c := websiteClient(t, srv.URL)

	_, err := c.Resolve(context.Background(), "foo", "1.0.0", "linux", "")
	require.ErrorIs(t, err, core.ErrAmbiguousPackage)

	// An explicit arch narrows the match back down.
	desc, err := c.Resolve(context.Background(), "foo", "1.0.0", "linux", "arm64")
	require.NoError(t, err)
	assert.Equal(t, "bb", desc.SHA256)
}

func TestResolveFirstSourceWins(t *testing.T) {
	first := serveIndex(t, `
[[package]]
name = "foo"
version = "1.0.0"
os = "linux"
arch = "amd64"
archive = "foo-1.0.0-linux-amd64.tar.gz"
sha256 = "first"
`)
	second := serveIndex(t, `
[[package]]
name = "foo"
version = "1.0.0"
os = "linux"
arch = "amd64"
archive = "foo-1.0.0-linux-amd64.tar.gz"
sha256 = "second"
`)
	c := websiteClient(t, first.URL, second.URL)

	desc, err := c.Resolve(context.Background(), "foo", "1.0.0", "linux", "amd64")
	require.NoError(t, err)
	assert.Equal(t, "first", desc.SHA256)
}

func TestFetch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, IndexFile), []byte(`
[[package]]
name = "foo"
version = "1.0.0"
os = "linux"
arch = "amd64"
archive = "foo-1.0.0-linux-amd64.tar.gz"
sha256 = "aa"
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "foo-1.0.0-linux-amd64.tar.gz"), []byte("archive-bytes"), 0644))

	srv := serveDir(t, dir)
	c := websiteClient(t, srv.URL)

	destDir := t.TempDir()
	desc, archivePath, err := c.Fetch(context.Background(), "foo", "1.0.0", "linux", "amd64", destDir)
	require.NoError(t, err)
	assert.Equal(t, "foo", desc.Name)
	assert.Equal(t, filepath.Join(destDir, "foo-1.0.0-linux-amd64.tar.gz"), archivePath)

	data, err := os.ReadFile(archivePath)
	require.NoError(t, err)
	assert.Equal(t, "archive-bytes", string(data))
}

func TestFetchArchiveMissing(t *testing.T) {
	srv := serveIndex(t, `
[[package]]
name = "foo"
version = "1.0.0"
os = "linux"
arch = "amd64"
archive = "foo-1.0.0-linux-amd64.tar.gz"
sha256 = "aa"
`)
	c := websiteClient(t, srv.URL)

	_, _, err := c.Fetch(context.Background(), "foo", "1.0.0", "linux", "amd64", t.TempDir())
	require.ErrorIs(t, err, core.ErrNetwork)
}

func TestLatest(t *testing.T) {
	srv := serveIndex(t, fooIndex)
	c := websiteClient(t, srv.URL)

	desc, err := c.Latest(context.Background(), "foo", "linux", "amd64")
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", desc.Version)

	_, err = c.Latest(context.Background(), "foo", "linux", "arm64")
	require.ErrorIs(t, err, core.ErrPackageNotFound)
}

func TestSourcesOrder(t *testing.T) {
	cfg := &core.Config{
		TimeoutSeconds: 5,
		Sources: []core.SourceConfig{
			{Name: "github", Kind: core.SourceGit, URL: "https://example.org/a"},
			{Name: "website", Kind: core.SourceWebsite, URL: "https://example.org/b"},
			{Name: "odd", Kind: "carrier-pigeon", URL: "https://example.org/c"},
		},
	}
	c := New(cfg)

	assert.Equal(t, []string{"github", "website"}, c.Sources())
}
