// Package version carries the release version stamped into completion
// metadata and checks it against client constraints.
package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Version is the worker release.
const Version = "1.2.0"

// Satisfies reports whether v meets constraint, e.g. ">= 1.1, < 2".
// An empty constraint accepts any valid version.
func Satisfies(v, constraint string) (bool, error) {
	sv, err := semver.NewVersion(v)
	if err != nil {
		return false, fmt.Errorf("version: parse %q: %w", v, err)
	}

	if constraint == "" {
		return true, nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("version: parse constraint %q: %w", constraint, err)
	}

	return c.Check(sv), nil
}
