// Package changelog renders release sections and merges them into a
// Keep a Changelog formatted CHANGELOG.md.
//
// This package implements:
//   - Version section rendering (markdown and plain release notes)
//   - Marker-anchored merging below the "## [Unreleased]" heading
//   - Parsing rendered sections back into entries for verification
//   - Colored terminal preview of a pending release
//
// The document is handled as an explicit ordered list of lines; merging
// inserts new lines at the marker and leaves every original line
// byte-for-byte unchanged.
package changelog
