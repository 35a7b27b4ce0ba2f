// pkg/platform/detect.go
package platform

import (
	"fmt"
	"os"
	"runtime"
)

// Info describes the platform one invocation runs on. It is computed once
// at startup and passed explicitly into the transaction engine.
type Info struct {
	OS       string // bellandeos, linux, darwin, windows
	Arch     string // amd64, arm64, 386, arm
	Profile  Profile
	Elevated bool
}

// Detect classifies the current host and captures whether the process
// already runs with elevated rights.
func Detect() Info {
	p := Classify()
	return Info{
		OS:       p.OS,
		Arch:     runtime.GOARCH,
		Profile:  p,
		Elevated: IsElevated(),
	}
}

// IsElevated reports whether the current process has elevated rights.
// On Windows Geteuid returns -1, which counts as not elevated.
func IsElevated() bool {
	return os.Geteuid() == 0
}

// String returns a string representation of the platform
func (i Info) String() string {
	return fmt.Sprintf("%s/%s (profile: %s, elevated: %v)",
		i.OS, i.Arch, i.Profile.Name, i.Elevated)
}
