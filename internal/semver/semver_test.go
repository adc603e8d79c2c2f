package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected Version
	}{
		"plain triple": {
			input:    "1.2.3",
			expected: Version{Major: 1, Minor: 2, Patch: 3},
		},
		"v prefix": {
			input:    "v0.6.0",
			expected: Version{Minor: 6},
		},
		"pre-release": {
			input:    "1.0.0-rc.1",
			expected: Version{Major: 1, Pre: "rc.1"},
		},
		"build metadata": {
			input:    "1.0.0+20260825",
			expected: Version{Major: 1, Build: "20260825"},
		},
		"pre-release and build": {
			input:    "2.1.0-alpha.2+linux",
			expected: Version{Major: 2, Minor: 1, Pre: "alpha.2", Build: "linux"},
		},
		"surrounding whitespace": {
			input:    "  1.2.3 ",
			expected: Version{Major: 1, Minor: 2, Patch: 3},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			v, err := Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, v)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{"", "1.2", "1.2.3.4", "a.b.c", "1.2.x", "version one"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
			var parseErr *ParseError
			assert.ErrorAs(t, err, &parseErr)
			assert.Equal(t, input, parseErr.Input)
		})
	}
}

func TestVersion_String(t *testing.T) {
	tests := map[string]string{
		"1.2.3":          "1.2.3",
		"1.0.0-rc.1":     "1.0.0-rc.1",
		"1.0.0+build":    "1.0.0+build",
		"2.0.0-beta+exp": "2.0.0-beta+exp",
	}

	for input, expected := range tests {
		t.Run(input, func(t *testing.T) {
			v, err := Parse(input)
			require.NoError(t, err)
			assert.Equal(t, expected, v.String())
		})
	}
}

func TestVersion_Compare(t *testing.T) {
	tests := map[string]struct {
		a, b     string
		expected int
	}{
		"equal":                        {"1.2.3", "1.2.3", 0},
		"major wins":                   {"2.0.0", "1.9.9", 1},
		"minor wins":                   {"1.3.0", "1.2.9", 1},
		"patch wins":                   {"1.2.4", "1.2.3", 1},
		"pre-release before release":   {"1.0.0-rc.1", "1.0.0", -1},
		"numeric pre-release ordering": {"1.0.0-rc.2", "1.0.0-rc.10", -1},
		"numeric below alphanumeric":   {"1.0.0-1", "1.0.0-alpha", -1},
		"shorter pre-release first":    {"1.0.0-alpha", "1.0.0-alpha.1", -1},
		"build metadata ignored":       {"1.0.0+a", "1.0.0+b", 0},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			a, err := Parse(tc.a)
			require.NoError(t, err)
			b, err := Parse(tc.b)
			require.NoError(t, err)

			assert.Equal(t, tc.expected, a.Compare(b))
			assert.Equal(t, -tc.expected, b.Compare(a))
		})
	}
}

func TestVersion_Next(t *testing.T) {
	tests := map[string]struct {
		current  string
		bump     Bump
		expected string
	}{
		"patch":                    {"1.2.3", BumpPatch, "1.2.4"},
		"minor resets patch":       {"1.2.3", BumpMinor, "1.3.0"},
		"major resets minor patch": {"1.2.3", BumpMajor, "2.0.0"},
		"minor from zero":          {"0.1.0", BumpMinor, "0.2.0"},
		"pre-release dropped":      {"1.0.0-rc.1", BumpPatch, "1.0.1"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			current, err := Parse(tc.current)
			require.NoError(t, err)

			next := current.Next(tc.bump)
			assert.Equal(t, tc.expected, next.String())
		})
	}
}

// Next must always produce a strictly greater version, whatever the bump.
func TestVersion_NextIsMonotonic(t *testing.T) {
	versions := []string{"0.0.0", "0.1.0", "1.2.3", "1.0.0-rc.1", "9.9.9"}
	bumps := []Bump{BumpPatch, BumpMinor, BumpMajor}

	for _, s := range versions {
		current, err := Parse(s)
		require.NoError(t, err)
		for _, bump := range bumps {
			next := current.Next(bump)
			assert.True(t, current.Less(next),
				"%s bumped %s should exceed it, got %s", current, bump, next)
		}
	}
}

func TestBump_String(t *testing.T) {
	assert.Equal(t, "patch", BumpPatch.String())
	assert.Equal(t, "minor", BumpMinor.String())
	assert.Equal(t, "major", BumpMajor.String())
}
