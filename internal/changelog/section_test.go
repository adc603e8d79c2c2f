package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraglog/fraglog/internal/fragment"
)

// Rendering then parsing a section must recover exactly the original
// (category, summary) pairs, with issue references and breaking flags intact.
func TestParseSection_RoundTrip(t *testing.T) {
	fragments := []*fragment.Fragment{
		{Category: fragment.Added, Summary: "Add message when new release is available"},
		{Category: fragment.Added, Summary: "Second feature", Issue: "https://github.com/org/repo/pull/8"},
		{Category: fragment.Removed, Summary: "Drop v1", Issue: "64", Breaking: true,
			Description: "A random description"},
		{Category: fragment.Fixed, Summary: "[broken docs link](https://old.example.com)"},
		{Category: fragment.Technical, Summary: "Bump dependency X to 0.38.8"},
	}

	release := Release{
		Version: mustVersion(t, "0.2.0"),
		Date:    date(t, "2025-03-07"),
		Groups:  fragment.Group(fragments),
	}

	parsed, err := ParseSection(RenderSection(release))
	require.NoError(t, err)

	assert.Equal(t, release.Version, parsed.Version)
	assert.Equal(t, release.Date, parsed.Date)

	expected := []Entry{
		{Category: fragment.Added, Summary: "Add message when new release is available"},
		{Category: fragment.Added, Summary: "Second feature", Issue: "https://github.com/org/repo/pull/8"},
		{Category: fragment.Removed, Summary: "Drop v1", Issue: "64", Breaking: true,
			Description: "A random description"},
		{Category: fragment.Fixed, Summary: "[broken docs link](https://old.example.com)"},
		{Category: fragment.Technical, Summary: "Bump dependency X to 0.38.8"},
	}
	assert.Equal(t, expected, parsed.Entries)
}

func TestParseSection_Invalid(t *testing.T) {
	tests := map[string]string{
		"no heading":                     "### Added\n\n- x\n",
		"unreleased heading":             "## [Unreleased]\n\n### Added\n\n- x\n",
		"unknown category heading":       "## [1.0.0] - 2024-01-01\n\n### Improved\n\n- x\n",
		"bullet before category":         "## [1.0.0] - 2024-01-01\n\n- x\n",
		"stray prose":                    "## [1.0.0] - 2024-01-01\n\n### Added\n\nnot a bullet\n",
		"continuation before any bullet": "## [1.0.0] - 2024-01-01\n\n  orphaned description\n",
	}

	for name, section := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSection(section)
			assert.Error(t, err)
		})
	}
}

func TestParseBullet_Unwrapping(t *testing.T) {
	tests := map[string]struct {
		text     string
		expected Entry
	}{
		"plain": {
			text:     "Just a summary",
			expected: Entry{Category: fragment.Fixed, Summary: "Just a summary"},
		},
		"link": {
			text:     "[Titled change](42)",
			expected: Entry{Category: fragment.Fixed, Summary: "Titled change", Issue: "42"},
		},
		"breaking link": {
			text:     "[**BREAKING CHANGE** Drop it](64)",
			expected: Entry{Category: fragment.Fixed, Summary: "Drop it", Issue: "64", Breaking: true},
		},
		"breaking without link": {
			text:     "**BREAKING CHANGE** Drop it",
			expected: Entry{Category: fragment.Fixed, Summary: "Drop it", Breaking: true},
		},
		"escaped bracket is a literal summary": {
			text:     `\[broken docs link](https://old.example.com)`,
			expected: Entry{Category: fragment.Fixed, Summary: "[broken docs link](https://old.example.com)"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, parseBullet(fragment.Fixed, tc.text))
		})
	}
}
