// errors.go
package bospm

import (
	"github.com/architecture-mechanism/bospm/pkg/core"
)

// Re-export the error taxonomy so callers can test failures without
// importing pkg/core.
var (
	// ErrInvalidPackage indicates the package specification is invalid
	ErrInvalidPackage = core.ErrInvalidPackage

	// ErrPackageNotFound indicates no descriptor matched the requested package
	ErrPackageNotFound = core.ErrPackageNotFound

	// ErrAmbiguousPackage indicates more than one descriptor matched the request
	ErrAmbiguousPackage = core.ErrAmbiguousPackage

	// ErrNetwork indicates a transport failure talking to a package source
	ErrNetwork = core.ErrNetwork

	// ErrChecksumMismatch indicates a checksum verification failure
	ErrChecksumMismatch = core.ErrChecksumMismatch

	// ErrAlreadyInstalled indicates a record for the package already exists
	ErrAlreadyInstalled = core.ErrAlreadyInstalled

	// ErrNotInstalled indicates no record exists for the package
	ErrNotInstalled = core.ErrNotInstalled

	// ErrCorruptState indicates the manifest exists but cannot be parsed
	ErrCorruptState = core.ErrCorruptState

	// ErrElevation indicates privileges could not be escalated
	ErrElevation = core.ErrElevation
)

// Error wraps an error with operation and package context.
type Error = core.Error

// PartialUninstallError reports an uninstall that could not remove every
// file; the package record is preserved so the operation can be retried.
type PartialUninstallError = core.PartialUninstallError
