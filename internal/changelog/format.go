package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/fraglog/fraglog/internal/fragment"
)

// CategoryStyle defines the color and icon for a changelog category.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

// categoryStyles maps categories to their terminal styling.
var categoryStyles = map[fragment.Category]CategoryStyle{
	fragment.Added:      {Color: color.New(color.FgGreen), Icon: "✓"},
	fragment.Changed:    {Color: color.New(color.FgBlue), Icon: "~"},
	fragment.Deprecated: {Color: color.New(color.FgRed), Icon: "⚠"},
	fragment.Removed:    {Color: color.New(color.FgRed), Icon: "✗"},
	fragment.Fixed:      {Color: color.New(color.FgYellow), Icon: "⚡"},
	fragment.Security:   {Color: color.New(color.FgMagenta), Icon: "🔒"},
	fragment.Technical:  {Color: color.New(color.FgCyan), Icon: "⚙"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatRelease writes a pending release to the writer with terminal
// styling: a bold version header and color-coded category sections.
// With opts.Plain set the output degrades to unstyled text.
func FormatRelease(r Release, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	if err := writeReleaseHeader(r, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, category := range r.Groups.Categories() {
		if err := formatCategory(category, r.Groups[category], w, opts, width); err != nil {
			return fmt.Errorf("formatting category %s: %w", category, err)
		}
	}

	return nil
}

// writeReleaseHeader writes the version and date line.
func writeReleaseHeader(r Release, w io.Writer, opts FormatOptions) error {
	header := fmt.Sprintf("%s (%s)", r.Version, r.Date.Format("2006-01-02"))
	if !opts.Plain {
		header = color.New(color.Bold).Sprint(header)
	}
	_, err := fmt.Fprintln(w, header)
	return err
}

// formatCategory writes one category heading and its fragments.
func formatCategory(category fragment.Category, fragments []*fragment.Fragment, w io.Writer, opts FormatOptions, width int) error {
	heading := category.String()
	style, hasStyle := categoryStyles[category]
	if !opts.Plain && hasStyle {
		heading = style.Color.Sprintf("%s %s", style.Icon, heading)
	}

	if _, err := fmt.Fprintf(w, "\n%s\n", heading); err != nil {
		return err
	}

	for _, f := range fragments {
		if err := formatFragmentLine(f, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// formatFragmentLine writes one fragment bullet, truncated to the
// terminal width.
func formatFragmentLine(f *fragment.Fragment, w io.Writer, opts FormatOptions, width int) error {
	text := f.Summary
	if f.Breaking {
		prefix := "BREAKING"
		if !opts.Plain {
			prefix = color.New(color.FgRed, color.Bold).Sprint(prefix)
		}
		text = prefix + " " + text
	}
	if f.Issue != "" {
		text += " (" + f.Issue + ")"
	}

	line := "  - " + text
	if width > 0 && len([]rune(line)) > width {
		runes := []rune(line)
		line = string(runes[:width-1]) + "…"
	}

	_, err := fmt.Fprintln(w, line)
	return err
}

// resolveWidth determines the output width, auto-detecting the terminal
// when the caller did not specify one.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return 0
}

// FormatErrors writes a list of fragment parse failures, one per line,
// with the filename highlighted when colors are enabled.
func FormatErrors(errs []error, w io.Writer, opts FormatOptions) {
	label := "invalid:"
	if !opts.Plain {
		label = color.New(color.FgRed).Sprint(label)
	}
	for _, err := range errs {
		fmt.Fprintf(w, "  %s %s\n", label, strings.TrimSpace(err.Error()))
	}
}
