package changelog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fraglog/fraglog/internal/semver"
)

// UnreleasedMarker is the heading that anchors section insertion.
const UnreleasedMarker = "## [Unreleased]"

// Scaffold is the initial CHANGELOG.md content written by `fraglog init`.
const Scaffold = `# Changelog

All notable changes to this project will be documented in this file.

The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.1.0/),
and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).

## [Unreleased]
`

// MalformedDocumentError reports a changelog document without the
// Unreleased marker. Insertion placement would be ambiguous, so the merge
// refuses rather than guessing.
type MalformedDocumentError struct{}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("changelog document has no %q marker", UnreleasedMarker)
}

// DuplicateSectionError reports that the document already contains a
// section with the heading being inserted. This happens when a release run
// is repeated before fragment cleanup; refusing keeps the merge idempotent
// instead of stacking duplicate sections.
type DuplicateSectionError struct {
	Heading string
}

func (e *DuplicateSectionError) Error() string {
	return fmt.Sprintf("changelog already contains a section %q", e.Heading)
}

// versionHeadingPattern matches released version headings,
// e.g. "## [1.2.3] - 2024-10-14".
var versionHeadingPattern = regexp.MustCompile(`^## \[(\d+\.\d+\.\d+(?:-[a-zA-Z0-9.-]+)?(?:\+[a-zA-Z0-9.-]+)?)\] - (\d{4}-\d{2}-\d{2})\s*$`)

// Merge inserts a rendered section into the document immediately below the
// Unreleased marker line, returning the new document text. Every line of
// the original document is preserved byte-for-byte; the only change is the
// inserted block (a separating blank line plus the section lines).
//
// Returns *MalformedDocumentError when the marker is missing and
// *DuplicateSectionError when the section's heading already exists.
func Merge(doc, section string) (string, error) {
	lines := strings.Split(doc, "\n")

	marker := -1
	for i, line := range lines {
		if strings.TrimRight(line, " \t") == UnreleasedMarker {
			marker = i
			break
		}
	}
	if marker == -1 {
		return "", &MalformedDocumentError{}
	}

	sectionLines := strings.Split(strings.TrimSuffix(section, "\n"), "\n")
	heading := sectionLines[0]
	for _, line := range lines {
		if strings.TrimRight(line, " \t") == heading {
			return "", &DuplicateSectionError{Heading: heading}
		}
	}

	merged := make([]string, 0, len(lines)+len(sectionLines)+1)
	merged = append(merged, lines[:marker+1]...)
	merged = append(merged, "")
	merged = append(merged, sectionLines...)
	merged = append(merged, lines[marker+1:]...)

	return strings.Join(merged, "\n"), nil
}

// HasUnreleasedMarker reports whether the document contains the marker.
func HasUnreleasedMarker(doc string) bool {
	for _, line := range strings.Split(doc, "\n") {
		if strings.TrimRight(line, " \t") == UnreleasedMarker {
			return true
		}
	}
	return false
}

// LatestVersion returns the version of the newest release section in the
// document. Sections are ordered newest-first, so the first version heading
// wins. Returns false when the document has no release sections yet.
func LatestVersion(doc string) (semver.Version, bool) {
	for _, line := range strings.Split(doc, "\n") {
		m := versionHeadingPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		v, err := semver.Parse(m[1])
		if err != nil {
			continue
		}
		return v, true
	}
	return semver.Version{}, false
}
