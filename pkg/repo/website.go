// pkg/repo/website.go
package repo

import (
	"context"
	"log"
	"path"
	"path/filepath"

	"github.com/architecture-mechanism/bospm/pkg/core"
)

// websiteSource serves descriptors and archives over plain HTTP from a
// base URL: the index at <base>/index.toml, archives at <base>/<archive>.
type websiteSource struct {
	name   string
	base   string
	client *webClient
	logger *log.Logger
}

func newWebsiteSource(cfg core.SourceConfig, client *webClient, logger *log.Logger) *websiteSource {
	return &websiteSource{
		name:   cfg.Name,
		base:   cfg.URL,
		client: client,
		logger: logger,
	}
}

func (s *websiteSource) Name() string {
	return s.name
}

func (s *websiteSource) ListAvailable(ctx context.Context) ([]core.Descriptor, error) {
	url := s.base + "/" + IndexFile
	s.logger.Printf("Fetching index from %s", url)

	body, err := s.client.GetString(ctx, url)
	if err != nil {
		return nil, err
	}

	idx, err := ParseIndex(body)
	if err != nil {
		return nil, err
	}

	s.logger.Printf("  %d package(s) listed by %s", len(idx.Packages), s.name)
	return idx.Packages, nil
}

func (s *websiteSource) FetchArchive(ctx context.Context, desc *core.Descriptor, destDir string) (string, error) {
	url := s.base + "/" + desc.Archive
	destPath := filepath.Join(destDir, path.Base(desc.Archive))

	s.logger.Printf("Downloading %s from %s", desc.Artifact(), url)
	if err := s.client.Download(ctx, url, destPath); err != nil {
		return "", err
	}

	return destPath, nil
}
