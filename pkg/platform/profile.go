// pkg/platform/profile.go
package platform

import (
	"os"
	"runtime"
	"strings"
)

// bellandeRelease marks a Bellande OS installation.
const bellandeRelease = "/etc/bellande-release"

// Profile describes how one platform family runs and elevates bospm.
type Profile struct {
	Name    string   // bellandeos, darwin, wsl, windows, linux
	OS      string   // normalized operating system name used in descriptors
	Elevate []string // privilege-escalation front end, argv prefix
}

// signals carries the raw host observations classification branches on.
type signals struct {
	bellandeMarker bool
	goos           string
	wsl            bool
}

// rules maps platform signals to profiles, first match wins. The order is
// the Bellande OS marker, then Darwin, then the Windows/WSL pair, with
// plain Linux as the fallback.
var rules = []struct {
	match   func(signals) bool
	profile Profile
}{
	{
		match:   func(s signals) bool { return s.bellandeMarker },
		profile: Profile{Name: "bellandeos", OS: "bellandeos", Elevate: []string{"bell"}},
	},
	{
		match:   func(s signals) bool { return s.goos == "darwin" },
		profile: Profile{Name: "darwin", OS: "darwin", Elevate: []string{"sudo"}},
	},
	{
		match:   func(s signals) bool { return s.goos == "windows" },
		profile: Profile{Name: "windows", OS: "windows", Elevate: []string{"runas", "/user:Administrator"}},
	},
	{
		match:   func(s signals) bool { return s.wsl },
		profile: Profile{Name: "wsl", OS: "linux", Elevate: []string{"sudo"}},
	},
}

var linuxProfile = Profile{Name: "linux", OS: "linux", Elevate: []string{"sudo"}}

// Classify picks the profile for the running host.
func Classify() Profile {
	return classify(signals{
		bellandeMarker: fileExists(bellandeRelease),
		goos:           runtime.GOOS,
		wsl:            isWSL(),
	})
}

func classify(s signals) Profile {
	for _, r := range rules {
		if r.match(s) {
			return r.profile
		}
	}
	return linuxProfile
}

func isWSL() bool {
	if runtime.GOOS != "linux" {
		return false
	}
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(data)), "microsoft")
}
