// pkg/platform/platform_test.go
package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		sig         signals
		wantProfile string
		wantOS      string
		wantElevate []string
	}{
		{
			name:        "bellande marker wins over everything",
			sig:         signals{bellandeMarker: true, goos: "linux", wsl: true},
			wantProfile: "bellandeos",
			wantOS:      "bellandeos",
			wantElevate: []string{"bell"},
		},
		{
			name:        "darwin",
			sig:         signals{goos: "darwin"},
			wantProfile: "darwin",
			wantOS:      "darwin",
			wantElevate: []string{"sudo"},
		},
		{
			name:        "windows",
			sig:         signals{goos: "windows"},
			wantProfile: "windows",
			wantOS:      "windows",
			wantElevate: []string{"runas", "/user:Administrator"},
		},
		{
			name:        "wsl keeps the linux os name",
			sig:         signals{goos: "linux", wsl: true},
			wantProfile: "wsl",
			wantOS:      "linux",
			wantElevate: []string{"sudo"},
		},
		{
			name:        "plain linux fallback",
			sig:         signals{goos: "linux"},
			wantProfile: "linux",
			wantOS:      "linux",
			wantElevate: []string{"sudo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := classify(tt.sig)
			assert.Equal(t, tt.wantProfile, p.Name)
			assert.Equal(t, tt.wantOS, p.OS)
			assert.Equal(t, tt.wantElevate, p.Elevate)
		})
	}
}

func TestRequiresElevation(t *testing.T) {
	for _, cmd := range []string{"install", "uninstall", "update", "start", "stop", "status"} {
		assert.True(t, RequiresElevation(cmd), cmd)
	}
	for _, cmd := range []string{"list", "available", "create", "version", "help", ""} {
		assert.False(t, RequiresElevation(cmd), cmd)
	}
}

func TestEnsureProceedsWithoutElevationNeed(t *testing.T) {
	info := Info{Profile: linuxProfile}

	out := Ensure(info, "list", []string{"list"})
	assert.Equal(t, Proceed, out.Kind)
}

func TestEnsureProceedsWhenElevated(t *testing.T) {
	info := Info{Profile: linuxProfile, Elevated: true}

	out := Ensure(info, "install", []string{"install", "foo", "1.0.0"})
	assert.Equal(t, Proceed, out.Kind)
}

func TestEnsureBuildsReexecCommand(t *testing.T) {
	// sh is guaranteed in PATH on the unix hosts these tests run on.
	info := Info{Profile: Profile{Name: "test", Elevate: []string{"sh", "-c"}}}

	out := Ensure(info, "install", []string{"install", "foo", "1.0.0"})
	require.Equal(t, Reexec, out.Kind)
	require.NotNil(t, out.Cmd)

	args := out.Cmd.Args
	assert.Equal(t, "sh", args[0])
	assert.Equal(t, "-c", args[1])
	// args[2] is the current executable, then the original arguments
	assert.Equal(t, []string{"install", "foo", "1.0.0"}, args[3:])
}

func TestEnsureFailsWithoutFrontEnd(t *testing.T) {
	info := Info{Profile: Profile{Name: "bare"}}

	out := Ensure(info, "install", nil)
	assert.Equal(t, Fail, out.Kind)
	assert.Contains(t, out.Reason, "no elevation front end")
}

func TestEnsureFailsWhenFrontEndMissing(t *testing.T) {
	info := Info{Profile: Profile{Name: "test", Elevate: []string{"definitely-not-a-real-binary"}}}

	out := Ensure(info, "install", nil)
	assert.Equal(t, Fail, out.Kind)
	assert.Contains(t, out.Reason, "not found")
}
