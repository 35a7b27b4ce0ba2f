// pkg/repo/repo.go
package repo

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/architecture-mechanism/bospm/pkg/core"
)

// Client resolves and retrieves packages across the configured sources.
// Sources are consulted in configuration order; all calls are read-only
// and safe for concurrent use.
type Client struct {
	sources []Source
	logger  *log.Logger
}

// New creates a repository client from cfg. Source entries with an
// unknown kind are skipped.
func New(cfg *core.Config) *Client {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}

	// Setup logger
	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stdout, "[repo] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	web := newWebClient(cfg.Timeout())

	var sources []Source
	for _, sc := range cfg.Sources {
		switch sc.Kind {
		case core.SourceGit:
			sources = append(sources, newGitSource(sc, cfg.CacheDir(), cfg.Timeout(), logger))
		case core.SourceWebsite:
			sources = append(sources, newWebsiteSource(sc, web, logger))
		default:
			logger.Printf("Skipping source %q: unknown kind %q", sc.Name, sc.Kind)
		}
	}

	return &Client{sources: sources, logger: logger}
}

// Sources returns the configured source names in resolution order.
func (c *Client) Sources() []string {
	names := make([]string, len(c.sources))
	for i, s := range c.sources {
		names[i] = s.Name()
	}
	return names
}

// ListAvailable returns the descriptors published by the named source,
// or by every source when selector is "all" or empty.
func (c *Client) ListAvailable(ctx context.Context, selector string) ([]core.Descriptor, error) {
	if selector == "" || selector == SourceAll {
		return c.listAll(ctx)
	}

	src, err := c.source(selector)
	if err != nil {
		return nil, err
	}
	return src.ListAvailable(ctx)
}

// listAll queries every source concurrently, preserving source order in
// the combined listing.
func (c *Client) listAll(ctx context.Context) ([]core.Descriptor, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := make([][]core.Descriptor, len(c.sources))

	for i, src := range c.sources {
		i, src := i, src
		g.Go(func() error {
			descs, err := src.ListAvailable(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", src.Name(), err)
			}
			results[i] = descs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []core.Descriptor
	for _, descs := range results {
		all = append(all, descs...)
	}
	return all, nil
}

// Resolve finds the single descriptor matching name and version for the
// target platform. The first source with any match decides; more than one
// match within it is ambiguous.
func (c *Client) Resolve(ctx context.Context, name, version, osName, arch string) (*core.Descriptor, error) {
	desc, _, err := c.resolve(ctx, name, version, osName, arch)
	return desc, err
}

// Fetch resolves the descriptor and downloads its archive into destDir,
// returning the descriptor and the local archive path.
func (c *Client) Fetch(ctx context.Context, name, version, osName, arch, destDir string) (*core.Descriptor, string, error) {
	desc, src, err := c.resolve(ctx, name, version, osName, arch)
	if err != nil {
		return nil, "", err
	}

	archivePath, err := src.FetchArchive(ctx, desc, destDir)
	if err != nil {
		return nil, "", &core.Error{Op: "fetch", Package: name, Err: err}
	}

	return desc, archivePath, nil
}

// Latest returns the highest-version descriptor published for name on the
// target platform across all sources. Ties go to the earlier source.
func (c *Client) Latest(ctx context.Context, name, osName, arch string) (*core.Descriptor, error) {
	descs, err := c.listAll(ctx)
	if err != nil {
		return nil, err
	}

	var latest *core.Descriptor
	for i := range descs {
		d := &descs[i]
		if d.Name != name || d.OS != osName || d.Arch != arch {
			continue
		}
		if latest == nil {
			latest = d
			continue
		}
		cmp, err := core.CompareVersions(d.Version, latest.Version)
		if err != nil {
			return nil, &core.Error{Op: "latest", Package: name, Err: err}
		}
		if cmp > 0 {
			latest = d
		}
	}

	if latest == nil {
		return nil, &core.Error{Op: "latest", Package: name, Err: core.ErrPackageNotFound}
	}
	return latest, nil
}

func (c *Client) resolve(ctx context.Context, name, version, osName, arch string) (*core.Descriptor, Source, error) {
	for _, src := range c.sources {
		descs, err := src.ListAvailable(ctx)
		if err != nil {
			return nil, nil, &core.Error{Op: "resolve", Package: name, Err: err}
		}

		matches := matchDescriptors(descs, name, version, osName, arch)
		if len(matches) == 0 {
			continue
		}
		if len(matches) > 1 {
			return nil, nil, &core.Error{Op: "resolve", Package: name, Err: core.ErrAmbiguousPackage}
		}

		c.logger.Printf("Resolved %s %s via %s", name, version, src.Name())
		return &matches[0], src, nil
	}

	return nil, nil, &core.Error{Op: "resolve", Package: name, Err: core.ErrPackageNotFound}
}

// matchDescriptors filters descs by exact name and version. Empty os or
// arch matches anything; ambiguity from omitted fields surfaces to the
// caller as multiple matches.
func matchDescriptors(descs []core.Descriptor, name, version, osName, arch string) []core.Descriptor {
	var out []core.Descriptor
	for _, d := range descs {
		if d.Name != name || d.Version != version {
			continue
		}
		if osName != "" && d.OS != osName {
			continue
		}
		if arch != "" && d.Arch != arch {
			continue
		}
		out = append(out, d)
	}
	return out
}

func (c *Client) source(name string) (Source, error) {
	for _, src := range c.sources {
		if src.Name() == name {
			return src, nil
		}
	}
	return nil, &core.Error{
		Op:  "available",
		Err: fmt.Errorf("%w: unknown source %q (configured: %v)", core.ErrInvalidPackage, name, c.Sources()),
	}
}
