package changelog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `# Changelog

All notable changes to this project will be documented in this file.

The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.1.0/),
and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).

## [Unreleased]

## [1.2.3] - 2024-10-14

### Added

- Some new feature
`

const sampleSection = `## [1.3.0] - 2025-03-07

### Fixed

- A bug fix
`

func TestMerge_InsertsBelowUnreleasedMarker(t *testing.T) {
	merged, err := Merge(sampleDoc, sampleSection)
	require.NoError(t, err)

	expected := `# Changelog

All notable changes to this project will be documented in this file.

The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.1.0/),
and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).

## [Unreleased]

## [1.3.0] - 2025-03-07

### Fixed

- A bug fix

## [1.2.3] - 2024-10-14

### Added

- Some new feature
`
	assert.Equal(t, expected, merged)
}

// Every byte of the original document must survive the merge; only the
// inserted block is new.
func TestMerge_PreservesOriginalBytes(t *testing.T) {
	doc := "# Title\n\nodd   spacing\ttabs\n\n## [Unreleased]\n\ntrailing line   \n"

	merged, err := Merge(doc, sampleSection)
	require.NoError(t, err)

	inserted := "\n" + sampleSection
	assert.Equal(t, doc, strings.Replace(merged, inserted, "", 1))
}

func TestMerge_ScaffoldDocument(t *testing.T) {
	merged, err := Merge(Scaffold, sampleSection)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(merged, "## [Unreleased]\n\n"+sampleSection))
	assert.True(t, strings.HasPrefix(merged, "# Changelog\n"))
}

func TestMerge_MissingMarker(t *testing.T) {
	doc := "# Changelog\n\n## [1.0.0] - 2024-01-01\n\n### Added\n\n- x\n"

	merged, err := Merge(doc, sampleSection)
	assert.Empty(t, merged)

	var malformed *MalformedDocumentError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, err.Error(), "[Unreleased]")
}

// Re-running the same generation (fragments not yet cleaned up) must not
// stack a second copy of the section.
func TestMerge_DuplicateSectionRejected(t *testing.T) {
	merged, err := Merge(sampleDoc, sampleSection)
	require.NoError(t, err)

	again, err := Merge(merged, sampleSection)
	assert.Empty(t, again)

	var duplicate *DuplicateSectionError
	require.ErrorAs(t, err, &duplicate)
	assert.Equal(t, "## [1.3.0] - 2025-03-07", duplicate.Heading)
	assert.Equal(t, 1, strings.Count(merged, "## [1.3.0]"))
}

func TestHasUnreleasedMarker(t *testing.T) {
	assert.True(t, HasUnreleasedMarker(sampleDoc))
	assert.True(t, HasUnreleasedMarker("## [Unreleased]  \n"))
	assert.False(t, HasUnreleasedMarker("# Changelog\n"))
	assert.False(t, HasUnreleasedMarker("### [Unreleased]\n"))
}

func TestLatestVersion(t *testing.T) {
	tests := map[string]struct {
		doc      string
		expected string
		found    bool
	}{
		"newest heading wins": {
			doc:      sampleDoc,
			expected: "1.2.3",
			found:    true,
		},
		"multiple sections": {
			doc:      "## [Unreleased]\n\n## [2.0.0] - 2025-01-01\n\n## [1.9.0] - 2024-12-01\n",
			expected: "2.0.0",
			found:    true,
		},
		"no releases yet": {
			doc:   Scaffold,
			found: false,
		},
		"unreleased heading not a version": {
			doc:   "## [Unreleased]\n",
			found: false,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			v, ok := LatestVersion(tc.doc)
			assert.Equal(t, tc.found, ok)
			if tc.found {
				assert.Equal(t, tc.expected, v.String())
			}
		})
	}
}
