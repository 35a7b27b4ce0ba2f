// pkg/repo/git.go
package repo

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/architecture-mechanism/bospm/pkg/core"
)

// gitSource serves descriptors and archives from a git-hosted repository.
// Every call clones the index branch shallowly into a fresh directory
// under the cache, so listings always reflect the remote head.
type gitSource struct {
	name     string
	url      string
	branch   string
	cacheDir string
	timeout  time.Duration
	logger   *log.Logger
}

func newGitSource(cfg core.SourceConfig, cacheDir string, timeout time.Duration, logger *log.Logger) *gitSource {
	branch := cfg.Branch
	if branch == "" {
		branch = "main"
	}
	if timeout <= 0 {
		timeout = core.DefaultTimeout
	}
	return &gitSource{
		name:     cfg.Name,
		url:      cfg.URL,
		branch:   branch,
		cacheDir: cacheDir,
		timeout:  timeout,
		logger:   logger,
	}
}

func (s *gitSource) Name() string {
	return s.name
}

func (s *gitSource) ListAvailable(ctx context.Context) ([]core.Descriptor, error) {
	dir, err := s.clone(ctx)
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	data, err := os.ReadFile(filepath.Join(dir, IndexFile))
	if err != nil {
		// A repository without an index publishes nothing.
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading index: %w", err)
	}

	idx, err := ParseIndex(string(data))
	if err != nil {
		return nil, err
	}

	s.logger.Printf("  %d package(s) listed by %s", len(idx.Packages), s.name)
	return idx.Packages, nil
}

func (s *gitSource) FetchArchive(ctx context.Context, desc *core.Descriptor, destDir string) (string, error) {
	dir, err := s.clone(ctx)
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	srcPath := filepath.Join(dir, filepath.FromSlash(desc.Archive))
	destPath := filepath.Join(destDir, path.Base(desc.Archive))

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("creating directory: %w", err)
	}
	if err := copyFile(srcPath, destPath); err != nil {
		return "", fmt.Errorf("copying archive %s: %w", desc.Archive, err)
	}

	return destPath, nil
}

func (s *gitSource) clone(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := os.MkdirAll(s.cacheDir, 0755); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}
	tempDir, err := os.MkdirTemp(s.cacheDir, "clone-*")
	if err != nil {
		return "", fmt.Errorf("creating clone directory: %w", err)
	}

	s.logger.Printf("Cloning %s (%s)", s.url, s.branch)

	_, err = git.PlainCloneContext(ctx, tempDir, false, &git.CloneOptions{
		URL:           s.url,
		ReferenceName: plumbing.NewBranchReferenceName(s.branch),
		SingleBranch:  true,
		Depth:         1,
	})
	if err != nil {
		os.RemoveAll(tempDir)
		return "", fmt.Errorf("%w: cloning %s: %v", core.ErrNetwork, s.url, err)
	}

	return tempDir, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
