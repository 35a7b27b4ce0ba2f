// pkg/engine/archive.go
package engine

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/architecture-mechanism/bospm/pkg/core"
)

// Pack writes a tar archive of the given files to dest, storing each
// entry under its base name. compression selects the stream framing,
// gzip unless xz is asked for.
func Pack(dest string, files []string, compression string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("creating archive directory: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}
	defer f.Close()

	var compressor io.WriteCloser
	switch compression {
	case core.CompressionXZ:
		compressor, err = xz.NewWriter(f)
		if err != nil {
			return fmt.Errorf("creating xz stream: %w", err)
		}
	default:
		compressor = gzip.NewWriter(f)
	}

	tw := tar.NewWriter(compressor)
	for _, file := range files {
		if err := packFile(tw, file); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("finishing archive: %w", err)
	}
	if err := compressor.Close(); err != nil {
		return fmt.Errorf("finishing archive: %w", err)
	}
	return nil
}

func packFile(tw *tar.Writer, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidPackage, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", core.ErrInvalidPackage, path)
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("describing %s: %w", path, err)
	}
	hdr.Name = filepath.Base(path)

	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("writing header for %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(tw, f); err != nil {
		return fmt.Errorf("archiving %s: %w", path, err)
	}
	return nil
}

// Extract unpacks the archive into destDir and returns the relative
// paths of the file and symlink entries it wrote, in archive order.
// Entries that would resolve outside destDir are rejected.
func Extract(archive, destDir, compression string) ([]string, error) {
	f, err := os.Open(archive)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	var decompressor io.Reader
	switch compression {
	case core.CompressionXZ:
		decompressor, err = xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("reading xz stream: %w", err)
		}
	default:
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("reading gzip stream: %w", err)
		}
		defer gz.Close()
		decompressor = gz
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("creating directory: %w", err)
	}

	var extracted []string
	tr := tar.NewReader(decompressor)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading archive: %w", err)
		}

		rel := filepath.Clean(filepath.FromSlash(hdr.Name))
		if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
			return nil, fmt.Errorf("archive entry %q escapes the destination", hdr.Name)
		}
		target := filepath.Join(destDir, rel)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.FileMode(hdr.Mode)); err != nil {
				return nil, fmt.Errorf("creating %s: %w", rel, err)
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return nil, fmt.Errorf("creating %s: %w", rel, err)
			}
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return nil, fmt.Errorf("linking %s: %w", rel, err)
			}
			extracted = append(extracted, filepath.ToSlash(rel))
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return nil, fmt.Errorf("creating %s: %w", rel, err)
			}
			if err := writeEntry(target, tr, hdr); err != nil {
				return nil, fmt.Errorf("extracting %s: %w", rel, err)
			}
			extracted = append(extracted, filepath.ToSlash(rel))
		default:
			return nil, fmt.Errorf("archive entry %q has unsupported type %q", hdr.Name, hdr.Typeflag)
		}
	}

	return extracted, nil
}

func writeEntry(target string, r io.Reader, hdr *tar.Header) error {
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(hdr.Mode))
	if err != nil {
		return err
	}

	n, err := io.Copy(out, r)
	if err != nil {
		out.Close()
		return err
	}
	if n != hdr.Size {
		out.Close()
		return fmt.Errorf("wrote %d of %d bytes", n, hdr.Size)
	}
	return out.Close()
}
