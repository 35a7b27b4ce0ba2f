// pkg/repo/types.go
package repo

import (
	"context"

	"github.com/architecture-mechanism/bospm/pkg/core"
)

// SourceAll selects every configured source.
const SourceAll = "all"

// IndexFile is the package listing each source publishes at its root.
const IndexFile = "index.toml"

// Source lists and retrieves package artifacts from one remote location.
type Source interface {
	// Name returns the configured source name (e.g. "github", "website").
	Name() string

	// ListAvailable fetches the source's full descriptor listing. Each
	// call re-fetches, so the sequence is restartable.
	ListAvailable(ctx context.Context) ([]core.Descriptor, error)

	// FetchArchive downloads the archive for desc into destDir and
	// returns the local path.
	FetchArchive(ctx context.Context, desc *core.Descriptor, destDir string) (string, error)
}
