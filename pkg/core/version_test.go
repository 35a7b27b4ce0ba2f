// pkg/core/version_test.go
package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"1.0.0", false},
		{"1.0", false},
		{"2", false},
		{"v2.3.4", false},
		{"1.0.0-rc.1", false},
		{"", true},
		{"abc", true},
		{"1..0", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseVersion(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPackage)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0", "1.0.0", 0},
		{"1.1.0", "1.0.0", 1},
		{"0.9.9", "1.0.0", -1},
		{"v2.0.0", "1.9.9", 1},
	}

	for _, tt := range tests {
		got, err := CompareVersions(tt.a, tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "compare %s vs %s", tt.a, tt.b)
	}

	_, err := CompareVersions("bogus", "1.0.0")
	require.ErrorIs(t, err, ErrInvalidPackage)
}

func TestLatestVersion(t *testing.T) {
	got, err := LatestVersion([]string{"1.0.0", "0.4.2", "1.2.0", "1.1.9"})
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", got)

	got, err = LatestVersion([]string{"2.0"})
	require.NoError(t, err)
	assert.Equal(t, "2.0", got)

	_, err = LatestVersion(nil)
	require.Error(t, err)
}
