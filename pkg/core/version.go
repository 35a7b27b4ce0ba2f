// pkg/core/version.go
package core

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ParseVersion parses a version string. A leading "v" and partial versions
// like "1.0" are accepted.
func ParseVersion(s string) (*semver.Version, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(s, "v"))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid version %q", ErrInvalidPackage, s)
	}
	return v, nil
}

// CompareVersions orders two version strings, returning -1, 0, or 1.
func CompareVersions(a, b string) (int, error) {
	va, err := ParseVersion(a)
	if err != nil {
		return 0, err
	}
	vb, err := ParseVersion(b)
	if err != nil {
		return 0, err
	}
	return va.Compare(vb), nil
}

// LatestVersion returns the highest of the given version strings.
func LatestVersion(versions []string) (string, error) {
	if len(versions) == 0 {
		return "", fmt.Errorf("no versions given")
	}

	latest := versions[0]
	lv, err := ParseVersion(latest)
	if err != nil {
		return "", err
	}

	for _, s := range versions[1:] {
		v, err := ParseVersion(s)
		if err != nil {
			return "", err
		}
		if v.GreaterThan(lv) {
			latest, lv = s, v
		}
	}

	return latest, nil
}
