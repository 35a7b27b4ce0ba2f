// pkg/core/errors.go
package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPackage indicates the package specification is invalid
	ErrInvalidPackage = errors.New("invalid package")

	// ErrPackageNotFound indicates no descriptor matched the requested package
	ErrPackageNotFound = errors.New("package not found")

	// ErrAmbiguousPackage indicates more than one descriptor matched the request
	ErrAmbiguousPackage = errors.New("ambiguous package")

	// ErrNetwork indicates a transport failure talking to a package source
	ErrNetwork = errors.New("network failure")

	// ErrChecksumMismatch indicates a checksum verification failure
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrAlreadyInstalled indicates a record for the package already exists
	ErrAlreadyInstalled = errors.New("package already installed")

	// ErrNotInstalled indicates no record exists for the package
	ErrNotInstalled = errors.New("package not installed")

	// ErrCorruptState indicates the manifest exists but cannot be parsed
	ErrCorruptState = errors.New("corrupt manifest")

	// ErrElevation indicates privileges could not be escalated
	ErrElevation = errors.New("elevation failed")
)

// Error wraps an error with additional context
type Error struct {
	Op      string // Operation that failed
	Package string // Package name if applicable
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Package, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// FileError records one file a transaction could not remove
type FileError struct {
	Path string
	Err  error
}

// PartialUninstallError reports an uninstall that could not remove every
// file. The package record is preserved so the operation can be retried.
type PartialUninstallError struct {
	Package string
	Failed  []FileError
}

func (e *PartialUninstallError) Error() string {
	paths := make([]string, len(e.Failed))
	for i, f := range e.Failed {
		paths[i] = f.Path
	}
	return fmt.Sprintf("uninstall %s: %d file(s) could not be removed: %s",
		e.Package, len(e.Failed), strings.Join(paths, ", "))
}
