package errors

import (
	stderrors "errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_String(t *testing.T) {
	tests := map[ErrorCategory]string{
		Argument:          "Argument Error",
		Configuration:     "Configuration Error",
		Fragment:          "Fragment Error",
		Document:          "Document Error",
		Runtime:           "Runtime Error",
		ErrorCategory(99): "Error",
	}

	for category, expected := range tests {
		assert.Equal(t, expected, category.String())
	}
}

func TestWrap(t *testing.T) {
	underlying := stderrors.New("disk full")

	wrapped := Wrap(underlying, Runtime, "Free some space")
	require.NotNil(t, wrapped)
	assert.Equal(t, Runtime, wrapped.Category)
	assert.Equal(t, "disk full", wrapped.Message)
	assert.Equal(t, []string{"Free some space"}, wrapped.Remediation)
	assert.ErrorIs(t, wrapped, underlying)

	assert.Nil(t, Wrap(nil, Runtime))
}

func TestWrapWithMessage(t *testing.T) {
	underlying := stderrors.New("permission denied")

	wrapped := WrapWithMessage(underlying, Configuration, "loading configuration")
	require.NotNil(t, wrapped)
	assert.Equal(t, "loading configuration: permission denied", wrapped.Message)
	assert.ErrorIs(t, wrapped, underlying)

	assert.Nil(t, WrapWithMessage(nil, Configuration, "loading configuration"))
}

func TestFormatError(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })

	err := NewArgumentError("unknown category \"Improved\"",
		"Pass one of the listed categories with -c")
	err.Usage = "fraglog add <summary> -c <category>"

	out := FormatError(err)
	assert.Contains(t, out, "Error [Argument Error]: unknown category \"Improved\"")
	assert.Contains(t, out, "Usage: fraglog add <summary> -c <category>")
	assert.Contains(t, out, "To fix this:")
	assert.Contains(t, out, "  • Pass one of the listed categories with -c")

	assert.Empty(t, FormatError(nil))
}
