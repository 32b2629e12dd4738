// Package bump implements the semantic version arithmetic applied to
// workspace packages.
//
// Only strict major.minor.patch versions are supported: every component is
// a non-negative decimal integer and there is no prerelease or build suffix.
package bump

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

var (
	// ErrInvalidVersion indicates a version that is not strict major.minor.patch.
	ErrInvalidVersion = errors.New("invalid version")

	// ErrUnknownKind indicates a bump kind other than major, minor or patch.
	ErrUnknownKind = errors.New("unknown bump kind")
)

// Kind is a semantic version bump kind.
type Kind string

const (
	Major Kind = "major"
	Minor Kind = "minor"
	Patch Kind = "patch"
)

// Kinds lists the accepted bump kinds in prompt order.
var Kinds = []Kind{Major, Minor, Patch}

// ParseKind normalizes operator input (trimmed, case-insensitive).
// It reports false for anything that is not major, minor or patch, which the
// recorder treats as "ignore".
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case Major:
		return Major, true
	case Minor:
		return Minor, true
	case Patch:
		return Patch, true
	}
	return "", false
}

// Valid reports whether k is one of the accepted kinds.
func (k Kind) Valid() bool {
	_, ok := ParseKind(string(k))
	return ok && string(k) == strings.ToLower(strings.TrimSpace(string(k)))
}

// Version is a strict major.minor.patch triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses a dot-separated triple of non-negative integers.
// Components with leading zeros, missing components and prerelease or build
// suffixes are rejected.
func ParseVersion(s string) (Version, error) {
	sv := "v" + s
	if !semver.IsValid(sv) || semver.Canonical(sv) != sv || semver.Prerelease(sv) != "" {
		return Version{}, fmt.Errorf("%w: %q is not major.minor.patch", ErrInvalidVersion, s)
	}

	parts := strings.Split(s, ".")
	var v Version
	var err error
	if v.Major, err = strconv.Atoi(parts[0]); err != nil {
		return Version{}, fmt.Errorf("%w: major component of %q: %w", ErrInvalidVersion, s, err)
	}
	if v.Minor, err = strconv.Atoi(parts[1]); err != nil {
		return Version{}, fmt.Errorf("%w: minor component of %q: %w", ErrInvalidVersion, s, err)
	}
	if v.Patch, err = strconv.Atoi(parts[2]); err != nil {
		return Version{}, fmt.Errorf("%w: patch component of %q: %w", ErrInvalidVersion, s, err)
	}
	return v, nil
}

// String formats the version without a "v" prefix.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Bump returns the version produced by applying kind to v.
//
//	patch: 1.2.3 -> 1.2.4
//	minor: 1.2.3 -> 1.3.0
//	major: 1.2.3 -> 2.0.0
func (v Version) Bump(kind Kind) (Version, error) {
	next := v
	switch kind {
	case Major:
		if v.Major == math.MaxInt {
			return Version{}, fmt.Errorf("%w: major component of %s overflows", ErrInvalidVersion, v)
		}
		next = Version{Major: v.Major + 1}
	case Minor:
		if v.Minor == math.MaxInt {
			return Version{}, fmt.Errorf("%w: minor component of %s overflows", ErrInvalidVersion, v)
		}
		next.Minor++
		next.Patch = 0
	case Patch:
		if v.Patch == math.MaxInt {
			return Version{}, fmt.Errorf("%w: patch component of %s overflows", ErrInvalidVersion, v)
		}
		next.Patch++
	default:
		return Version{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return next, nil
}

// Apply parses current, bumps it by kind and returns the new version string.
func Apply(current string, kind Kind) (string, error) {
	v, err := ParseVersion(current)
	if err != nil {
		return "", err
	}
	next, err := v.Bump(kind)
	if err != nil {
		return "", err
	}
	return next.String(), nil
}
