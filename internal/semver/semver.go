// Package semver implements the subset of Semantic Versioning 2.0.0 that
// fraglog needs: parsing, total-order comparison, and bump arithmetic.
// This package intentionally has no dependencies on other internal packages
// to avoid import cycles.
package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// versionPattern matches MAJOR.MINOR.PATCH with optional pre-release and
// build metadata suffixes.
var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:-([a-zA-Z0-9.-]+))?(?:\+([a-zA-Z0-9.-]+))?$`)

// Version is a semantic version triple plus optional pre-release and build
// metadata. The zero value is 0.0.0.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
	Pre   string
	Build string
}

// ParseError reports a string that does not parse as a semantic version.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid semantic version %q (expected: X.Y.Z)", e.Input)
}

// Parse converts a version string into a Version.
// A leading "v" prefix is accepted and stripped, so "v1.2.3" and "1.2.3"
// are equivalent inputs. Returns a *ParseError on malformed input.
func Parse(s string) (Version, error) {
	input := strings.TrimPrefix(strings.TrimSpace(s), "v")

	m := versionPattern.FindStringSubmatch(input)
	if m == nil {
		return Version{}, &ParseError{Input: s}
	}

	major, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return Version{}, &ParseError{Input: s}
	}
	minor, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return Version{}, &ParseError{Input: s}
	}
	patch, err := strconv.ParseUint(m[3], 10, 64)
	if err != nil {
		return Version{}, &ParseError{Input: s}
	}

	return Version{Major: major, Minor: minor, Patch: patch, Pre: m[4], Build: m[5]}, nil
}

// String renders the version in standard MAJOR.MINOR.PATCH form, with
// pre-release and build metadata appended when present.
func (v Version) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Pre != "" {
		b.WriteString("-")
		b.WriteString(v.Pre)
	}
	if v.Build != "" {
		b.WriteString("+")
		b.WriteString(v.Build)
	}
	return b.String()
}

// Compare returns -1, 0, or 1 when v is less than, equal to, or greater
// than o by semantic versioning precedence. Build metadata is ignored,
// and a pre-release version sorts before its release (1.0.0-rc.1 < 1.0.0).
func (v Version) Compare(o Version) int {
	if c := compareUint(v.Major, o.Major); c != 0 {
		return c
	}
	if c := compareUint(v.Minor, o.Minor); c != 0 {
		return c
	}
	if c := compareUint(v.Patch, o.Patch); c != 0 {
		return c
	}
	return comparePre(v.Pre, o.Pre)
}

// Less reports whether v precedes o by semantic versioning precedence.
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// comparePre compares pre-release strings per SemVer §11: absence of a
// pre-release sorts higher, identifiers are compared dot-by-dot with
// numeric identifiers lower than alphanumeric ones.
func comparePre(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return 1
	}
	if b == "" {
		return -1
	}

	aParts := strings.Split(a, ".")
	bParts := strings.Split(b, ".")
	for i := 0; i < len(aParts) && i < len(bParts); i++ {
		if c := comparePreIdentifier(aParts[i], bParts[i]); c != 0 {
			return c
		}
	}
	return compareUint(uint64(len(aParts)), uint64(len(bParts)))
}

func comparePreIdentifier(a, b string) int {
	aNum, aErr := strconv.ParseUint(a, 10, 64)
	bNum, bErr := strconv.ParseUint(b, 10, 64)

	switch {
	case aErr == nil && bErr == nil:
		return compareUint(aNum, bNum)
	case aErr == nil:
		// Numeric identifiers have lower precedence than alphanumeric.
		return -1
	case bErr == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// Bump identifies which component of a version to increment.
// Levels are ordered so the strongest bump in a set can be selected
// with a simple maximum.
type Bump int

const (
	BumpPatch Bump = iota
	BumpMinor
	BumpMajor
)

// String returns a human-readable name for the bump level.
func (b Bump) String() string {
	switch b {
	case BumpPatch:
		return "patch"
	case BumpMinor:
		return "minor"
	case BumpMajor:
		return "major"
	default:
		return "unknown"
	}
}

// Next returns the version after applying the bump to v.
// Lower components reset to zero and any pre-release or build metadata is
// dropped, so the result is always strictly greater than v.
func (v Version) Next(b Bump) Version {
	switch b {
	case BumpMajor:
		return Version{Major: v.Major + 1}
	case BumpMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}
