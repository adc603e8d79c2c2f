package changelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraglog/fraglog/internal/fragment"
	"github.com/fraglog/fraglog/internal/semver"
)

func mustVersion(t *testing.T, s string) semver.Version {
	t.Helper()
	v, err := semver.Parse(s)
	require.NoError(t, err)
	return v
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestRenderSection(t *testing.T) {
	tests := map[string]struct {
		release  Release
		expected string
	}{
		"added and technical": {
			release: Release{
				Version: mustVersion(t, "0.2.0"),
				Date:    date(t, "2025-03-07"),
				Groups: fragment.Group([]*fragment.Fragment{
					{Category: fragment.Added, Summary: "Add message when new release is available"},
					{Category: fragment.Technical, Summary: "Bump dependency X to 0.38.8"},
				}),
			},
			expected: `## [0.2.0] - 2025-03-07

### Added

- Add message when new release is available

### Technical

- Bump dependency X to 0.38.8
`,
		},
		"issue rendered as link": {
			release: Release{
				Version: mustVersion(t, "1.0.1"),
				Date:    date(t, "2024-10-14"),
				Groups: fragment.Group([]*fragment.Fragment{
					{Category: fragment.Fixed, Summary: "Fix crash on empty config", Issue: "https://github.com/org/repo/issues/42"},
				}),
			},
			expected: `## [1.0.1] - 2024-10-14

### Fixed

- [Fix crash on empty config](https://github.com/org/repo/issues/42)
`,
		},
		"breaking change prefixed": {
			release: Release{
				Version: mustVersion(t, "2.0.0"),
				Date:    date(t, "2024-10-14"),
				Groups: fragment.Group([]*fragment.Fragment{
					{Category: fragment.Removed, Summary: "Drop the v1 API", Issue: "64", Breaking: true},
				}),
			},
			expected: `## [2.0.0] - 2024-10-14

### Removed

- [**BREAKING CHANGE** Drop the v1 API](64)
`,
		},
		"description as continuation line": {
			release: Release{
				Version: mustVersion(t, "1.0.0"),
				Date:    date(t, "2021-08-01"),
				Groups: fragment.Group([]*fragment.Fragment{
					{Category: fragment.Removed, Summary: "A final title", Issue: "64", Breaking: true,
						Description: "A random description"},
				}),
			},
			expected: `## [1.0.0] - 2021-08-01

### Removed

- [**BREAKING CHANGE** A final title](64)
  A random description
`,
		},
		"summary that is itself a link stays literal": {
			release: Release{
				Version: mustVersion(t, "1.0.1"),
				Date:    date(t, "2024-10-14"),
				Groups: fragment.Group([]*fragment.Fragment{
					{Category: fragment.Fixed, Summary: "[broken docs link](https://old.example.com)"},
				}),
			},
			expected: `## [1.0.1] - 2024-10-14

### Fixed

- \[broken docs link](https://old.example.com)
`,
		},
		"categories in taxonomy order": {
			release: Release{
				Version: mustVersion(t, "1.1.0"),
				Date:    date(t, "2026-01-15"),
				Groups: fragment.Group([]*fragment.Fragment{
					{Category: fragment.Security, Summary: "s"},
					{Category: fragment.Added, Summary: "a"},
					{Category: fragment.Fixed, Summary: "f"},
				}),
			},
			expected: `## [1.1.0] - 2026-01-15

### Added

- a

### Fixed

- f

### Security

- s
`,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, RenderSection(tc.release))
		})
	}
}

func TestRenderSection_Deterministic(t *testing.T) {
	release := Release{
		Version: mustVersion(t, "0.3.0"),
		Date:    date(t, "2025-03-07"),
		Groups: fragment.Group([]*fragment.Fragment{
			{Category: fragment.Added, Summary: "a"},
			{Category: fragment.Changed, Summary: "b"},
			{Category: fragment.Fixed, Summary: "c"},
			{Category: fragment.Security, Summary: "d"},
			{Category: fragment.Technical, Summary: "e"},
		}),
	}

	first := RenderSection(release)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, RenderSection(release))
	}
}

func TestRenderNotes(t *testing.T) {
	release := Release{
		Version: mustVersion(t, "0.2.0"),
		Date:    date(t, "2025-03-07"),
		Groups: fragment.Group([]*fragment.Fragment{
			{Category: fragment.Added, Summary: "Add message when new release is available",
				Description: "Checked once per invocation"},
			{Category: fragment.Removed, Summary: "Drop v1", Issue: "99", Breaking: true},
		}),
	}

	expected := `0.2.0 (2025-03-07)

Added
- Add message when new release is available
  Checked once per invocation

Removed
- BREAKING: Drop v1 (99)
`
	assert.Equal(t, expected, RenderNotes(release))

	// Plain output carries no markdown markup.
	assert.NotContains(t, RenderNotes(release), "##")
	assert.NotContains(t, RenderNotes(release), "](")
}
