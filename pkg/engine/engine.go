// pkg/engine/engine.go
package engine

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/architecture-mechanism/bospm/pkg/core"
	"github.com/architecture-mechanism/bospm/pkg/manifest"
	"github.com/architecture-mechanism/bospm/pkg/platform"
	"github.com/architecture-mechanism/bospm/pkg/repo"
)

// Engine runs package transactions against the local state root. Each
// mutating operation stages its work under the root's staging area and
// takes the manifest lock only to commit, so resolution and downloads
// never block a concurrent invocation.
type Engine struct {
	config *core.Config
	info   platform.Info
	store  *manifest.Store
	repo   *repo.Client
	logger *log.Logger
}

// New creates an engine for cfg, executing as info.
func New(cfg *core.Config, info platform.Info) *Engine {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}

	// Setup logger
	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stdout, "[bospm] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	return &Engine{
		config: cfg,
		info:   info,
		store:  manifest.NewStore(cfg.ManifestPath()),
		repo:   repo.New(cfg),
		logger: logger,
	}
}

// Info returns the execution context the engine was created with.
func (e *Engine) Info() platform.Info {
	return e.info
}

// Config returns the engine's configuration.
func (e *Engine) Config() *core.Config {
	return e.config
}

// Create validates its inputs, packs the files into a platform-named
// archive, and publishes it to the local repository directory with a
// descriptor sidecar and an index entry. Files are stored under their
// base names.
func (e *Engine) Create(name, version string, files []string, osName, arch string) (*core.Descriptor, error) {
	if name == "" {
		return nil, &core.Error{Op: "create", Err: fmt.Errorf("%w: name is empty", core.ErrInvalidPackage)}
	}
	if _, err := core.ParseVersion(version); err != nil {
		return nil, &core.Error{Op: "create", Package: name, Err: err}
	}
	if len(files) == 0 {
		return nil, &core.Error{Op: "create", Package: name, Err: fmt.Errorf("%w: no files given", core.ErrInvalidPackage)}
	}
	if osName == "" {
		osName = e.info.OS
	}
	if arch == "" {
		arch = e.info.Arch
	}

	desc := &core.Descriptor{
		Name:        name,
		Version:     version,
		OS:          osName,
		Arch:        arch,
		Compression: e.config.Compression,
	}
	desc.Archive = desc.Artifact() + core.ArchiveSuffix(desc.Compression)

	for _, file := range files {
		sum, err := FileSHA256(file)
		if err != nil {
			return nil, &core.Error{Op: "create", Package: name, Err: fmt.Errorf("%w: %v", core.ErrInvalidPackage, err)}
		}
		desc.Files = append(desc.Files, core.FileEntry{Path: filepath.Base(file), SHA256: sum})
	}

	archivePath := filepath.Join(e.config.RepoDir(), desc.Archive)
	if err := Pack(archivePath, files, desc.Compression); err != nil {
		return nil, &core.Error{Op: "create", Package: name, Err: err}
	}

	sum, err := FileSHA256(archivePath)
	if err != nil {
		return nil, &core.Error{Op: "create", Package: name, Err: err}
	}
	desc.SHA256 = sum

	if err := repo.WriteDescriptor(archivePath+".toml", desc); err != nil {
		return nil, &core.Error{Op: "create", Package: name, Err: err}
	}
	if err := e.publish(desc); err != nil {
		return nil, &core.Error{Op: "create", Package: name, Err: err}
	}

	e.logger.Printf("Created %s", desc.Archive)
	return desc, nil
}

// publish replaces or appends desc in the local repository index.
func (e *Engine) publish(desc *core.Descriptor) error {
	indexPath := filepath.Join(e.config.RepoDir(), repo.IndexFile)

	var descs []core.Descriptor
	data, err := os.ReadFile(indexPath)
	switch {
	case err == nil:
		idx, err := repo.ParseIndex(string(data))
		if err != nil {
			return err
		}
		descs = idx.Packages
	case !os.IsNotExist(err):
		return fmt.Errorf("reading index: %w", err)
	}

	replaced := false
	for i, d := range descs {
		if d.Name == desc.Name && d.Version == desc.Version && d.OS == desc.OS && d.Arch == desc.Arch {
			descs[i] = *desc
			replaced = true
			break
		}
	}
	if !replaced {
		descs = append(descs, *desc)
	}

	return repo.WriteIndex(indexPath, descs)
}

// Install resolves, stages, verifies, and commits one package. An
// existing record for the name fails the operation before anything is
// fetched.
func (e *Engine) Install(ctx context.Context, name, version, osName, arch string) (*core.Record, error) {
	if osName == "" {
		osName = e.info.OS
	}
	if arch == "" {
		arch = e.info.Arch
	}

	m, err := e.store.Load()
	if err != nil {
		return nil, err
	}
	if _, ok := m.Get(name); ok {
		return nil, &core.Error{Op: "install", Package: name, Err: core.ErrAlreadyInstalled}
	}

	staged, err := e.stage(ctx, name, version, osName, arch)
	if err != nil {
		return nil, &core.Error{Op: "install", Package: name, Err: err}
	}
	defer staged.discard()

	unlock, err := e.store.Lock()
	if err != nil {
		return nil, &core.Error{Op: "install", Package: name, Err: err}
	}
	defer unlock()

	// Reload under the lock; another invocation may have won the race.
	m, err = e.store.Load()
	if err != nil {
		return nil, err
	}
	if _, ok := m.Get(name); ok {
		return nil, &core.Error{Op: "install", Package: name, Err: core.ErrAlreadyInstalled}
	}

	rec, err := e.place(m, staged)
	if err != nil {
		return nil, &core.Error{Op: "install", Package: name, Err: err}
	}
	return rec, nil
}

// Uninstall removes a package's files and then its record. Removals
// are best-effort per file; if any fails the record stays so a retry
// can finish the job.
func (e *Engine) Uninstall(name string) (*core.Record, error) {
	unlock, err := e.store.Lock()
	if err != nil {
		return nil, &core.Error{Op: "uninstall", Package: name, Err: err}
	}
	defer unlock()

	m, err := e.store.Load()
	if err != nil {
		return nil, err
	}
	rec, ok := m.Get(name)
	if !ok {
		return nil, &core.Error{Op: "uninstall", Package: name, Err: core.ErrNotInstalled}
	}

	if err := e.removeFiles(rec); err != nil {
		return nil, &core.Error{Op: "uninstall", Package: name, Err: err}
	}

	m.Remove(name)
	if err := e.store.Save(m); err != nil {
		return nil, err
	}

	e.logger.Printf("Uninstalled %s %s", rec.Name, rec.Version)
	return rec, nil
}

// Update swaps the installed version for the requested one, which must
// be newer, or for the latest the sources publish when version is
// empty. The old files are not touched until the new version is
// verified and committed, so a failed update leaves the previous
// install intact. With nothing newer available the call is a no-op and
// the second return is false.
func (e *Engine) Update(ctx context.Context, name, version, osName, arch string) (*core.Record, bool, error) {
	m, err := e.store.Load()
	if err != nil {
		return nil, false, err
	}
	old, ok := m.Get(name)
	if !ok {
		return nil, false, &core.Error{Op: "update", Package: name, Err: core.ErrNotInstalled}
	}
	if osName == "" {
		osName = old.OS
	}
	if arch == "" {
		arch = old.Arch
	}

	target := version
	if target == "" {
		latest, err := e.repo.Latest(ctx, name, osName, arch)
		if err != nil {
			return nil, false, err
		}
		newer, err := core.CompareVersions(latest.Version, old.Version)
		if err != nil {
			return nil, false, &core.Error{Op: "update", Package: name, Err: err}
		}
		if newer <= 0 {
			e.logger.Printf("%s %s is up to date", name, old.Version)
			return old, false, nil
		}
		target = latest.Version
	} else {
		if _, err := core.ParseVersion(target); err != nil {
			return nil, false, &core.Error{Op: "update", Package: name, Err: err}
		}
		newer, err := core.CompareVersions(target, old.Version)
		if err != nil {
			return nil, false, &core.Error{Op: "update", Package: name, Err: err}
		}
		if newer <= 0 {
			return nil, false, &core.Error{
				Op:      "update",
				Package: name,
				Err:     fmt.Errorf("%w: version %s is not newer than installed %s", core.ErrInvalidPackage, target, old.Version),
			}
		}
	}

	staged, err := e.stage(ctx, name, target, osName, arch)
	if err != nil {
		return nil, false, &core.Error{Op: "update", Package: name, Err: err}
	}
	defer staged.discard()

	unlock, err := e.store.Lock()
	if err != nil {
		return nil, false, &core.Error{Op: "update", Package: name, Err: err}
	}
	defer unlock()

	m, err = e.store.Load()
	if err != nil {
		return nil, false, err
	}
	old, ok = m.Get(name)
	if !ok {
		return nil, false, &core.Error{Op: "update", Package: name, Err: core.ErrNotInstalled}
	}
	if old.Version == staged.desc.Version {
		return old, false, nil
	}

	rec, err := e.place(m, staged)
	if err != nil {
		return nil, false, &core.Error{Op: "update", Package: name, Err: err}
	}

	// The new version is committed; clearing the old one is cleanup.
	if err := e.removeFiles(old); err != nil {
		return rec, true, &core.Error{Op: "update", Package: name, Err: err}
	}
	return rec, true, nil
}

// List returns the installed records sorted by name. It reads the
// manifest without taking the lock; saves are atomic renames.
func (e *Engine) List() ([]*core.Record, error) {
	m, err := e.store.Load()
	if err != nil {
		return nil, err
	}

	records := make([]*core.Record, 0, len(m.Packages))
	for _, name := range m.Names() {
		rec, _ := m.Get(name)
		records = append(records, rec)
	}
	return records, nil
}

// Available lists the descriptors published by one source, or by every
// configured source when selector is empty or "all".
func (e *Engine) Available(ctx context.Context, selector string) ([]core.Descriptor, error) {
	return e.repo.ListAvailable(ctx, selector)
}

// Sources returns the configured source names in resolution order.
func (e *Engine) Sources() []string {
	return e.repo.Sources()
}

// stagedPackage is a verified, extracted payload waiting to commit.
type stagedPackage struct {
	desc    *core.Descriptor
	session string
	payload string
	files   []string
}

// discard drops the staging session. After a successful commit only
// the leftover archive remains inside it.
func (s *stagedPackage) discard() {
	if s.session != "" {
		os.RemoveAll(s.session)
	}
}

// stage downloads the archive into a fresh staging session, verifies
// its digest, and extracts the payload. Nothing under the install tree
// is touched.
func (e *Engine) stage(ctx context.Context, name, version, osName, arch string) (*stagedPackage, error) {
	if err := os.MkdirAll(e.config.StagingDir(), 0755); err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}
	session, err := os.MkdirTemp(e.config.StagingDir(), "txn-*")
	if err != nil {
		return nil, fmt.Errorf("creating staging session: %w", err)
	}
	staged := &stagedPackage{session: session}

	desc, archivePath, err := e.repo.Fetch(ctx, name, version, osName, arch, session)
	if err != nil {
		staged.discard()
		return nil, err
	}
	staged.desc = desc

	e.logger.Printf("Verifying %s", desc.Archive)
	if err := verifyFile(archivePath, desc.SHA256); err != nil {
		staged.discard()
		return nil, err
	}

	staged.payload = filepath.Join(session, "payload")
	files, err := Extract(archivePath, staged.payload, desc.Compression)
	if err != nil {
		staged.discard()
		return nil, err
	}
	staged.files = files

	// The archive digest covers the bytes on the wire; the per-file
	// digests cover what actually landed in the payload.
	for _, entry := range desc.Files {
		if err := verifyFile(filepath.Join(staged.payload, filepath.FromSlash(entry.Path)), entry.SHA256); err != nil {
			staged.discard()
			return nil, err
		}
	}

	e.logger.Printf("Staged %s %s (%d files)", desc.Name, desc.Version, len(files))
	return staged, nil
}

// place renames the staged payload into the install tree and persists
// the updated manifest. The caller holds the manifest lock. A persist
// failure removes the tree again so disk and manifest stay in step.
func (e *Engine) place(m *core.Manifest, staged *stagedPackage) (*core.Record, error) {
	desc := staged.desc
	destDir := filepath.Join(e.config.InstallDir(), desc.Name, desc.Version)

	if err := os.MkdirAll(filepath.Dir(destDir), 0755); err != nil {
		return nil, fmt.Errorf("creating install directory: %w", err)
	}
	// A tree with no manifest record belongs to no one.
	if err := os.RemoveAll(destDir); err != nil {
		return nil, fmt.Errorf("clearing %s: %w", destDir, err)
	}
	if err := os.Rename(staged.payload, destDir); err != nil {
		return nil, fmt.Errorf("committing %s: %w", desc.Artifact(), err)
	}

	// Records carry absolute paths.
	files := make([]string, len(staged.files))
	for i, rel := range staged.files {
		files[i] = filepath.Join(destDir, filepath.FromSlash(rel))
	}

	rec := &core.Record{
		Name:        desc.Name,
		Version:     desc.Version,
		OS:          desc.OS,
		Arch:        desc.Arch,
		Files:       files,
		InstalledAt: time.Now().UTC(),
	}
	m.Put(rec)
	if err := e.store.Save(m); err != nil {
		os.RemoveAll(destDir)
		return nil, err
	}

	e.logger.Printf("Installed %s %s", rec.Name, rec.Version)
	return rec, nil
}

// removeFiles deletes every recorded file and prunes the version's
// install tree. A file already gone counts as removed; any other
// failure is collected rather than aborting the sweep.
func (e *Engine) removeFiles(rec *core.Record) error {
	dir := filepath.Join(e.config.InstallDir(), rec.Name, rec.Version)

	var failed []core.FileError
	for _, path := range rec.Files {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			failed = append(failed, core.FileError{Path: path, Err: err})
		}
	}
	if len(failed) > 0 {
		return &core.PartialUninstallError{Package: rec.Name, Failed: failed}
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing %s: %w", dir, err)
	}
	// Prune the name directory too if this was the last version.
	os.Remove(filepath.Dir(dir))
	return nil
}
