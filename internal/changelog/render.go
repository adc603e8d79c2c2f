package changelog

import (
	"fmt"
	"strings"
	"time"

	"github.com/fraglog/fraglog/internal/fragment"
	"github.com/fraglog/fraglog/internal/semver"
)

// Release is one resolved release: the target version, the generation date
// (date only, so output is stable across a calendar day), and the grouped
// fragments to render.
type Release struct {
	Version semver.Version
	Date    time.Time
	Groups  fragment.Groups
}

// Heading returns the version heading line for the release section.
func (r Release) Heading() string {
	return fmt.Sprintf("## [%s] - %s", r.Version, r.Date.Format("2006-01-02"))
}

// RenderSection renders the release as a markdown changelog section:
// a version+date heading followed by one sub-heading per non-empty category
// in taxonomy order, each with a bulleted list of summaries.
//
// Output is byte-deterministic for identical inputs; iteration follows the
// fixed category order, never map order.
func RenderSection(r Release) string {
	var b strings.Builder
	b.WriteString(r.Heading())
	b.WriteString("\n")

	for _, category := range r.Groups.Categories() {
		b.WriteString("\n### ")
		b.WriteString(category.String())
		b.WriteString("\n\n")
		for _, f := range r.Groups[category] {
			b.WriteString(markdownBullet(f))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// markdownBullet renders one fragment as a markdown list item.
// Fragments with an issue reference become links; breaking changes carry a
// bold prefix and a description becomes an indented continuation line,
// following the format the legacy tool produced.
func markdownBullet(f *fragment.Fragment) string {
	text := f.Summary
	if f.Breaking {
		text = "**BREAKING CHANGE** " + text
	}

	var bullet string
	switch {
	case f.Issue != "":
		bullet = fmt.Sprintf("- [%s](%s)", text, f.Issue)
	case linkBulletPattern.MatchString(text):
		// A summary that is itself a complete markdown link would read
		// back as summary+issue; escape the bracket to keep it literal.
		bullet = `- \` + text
	default:
		bullet = "- " + text
	}

	if f.Description != "" {
		bullet += "\n  " + strings.ReplaceAll(f.Description, "\n", "\n  ")
	}
	return bullet
}

// RenderNotes renders the release as plain text suitable for a tag
// annotation body or a release description: same content as the markdown
// section, flattened without markup.
func RenderNotes(r Release) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", r.Version, r.Date.Format("2006-01-02"))

	for _, category := range r.Groups.Categories() {
		b.WriteString("\n")
		b.WriteString(category.String())
		b.WriteString("\n")
		for _, f := range r.Groups[category] {
			b.WriteString(plainBullet(f))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// plainBullet renders one fragment as a plain-text list item.
func plainBullet(f *fragment.Fragment) string {
	var b strings.Builder
	b.WriteString("- ")
	if f.Breaking {
		b.WriteString("BREAKING: ")
	}
	b.WriteString(f.Summary)
	if f.Issue != "" {
		fmt.Fprintf(&b, " (%s)", f.Issue)
	}
	if f.Description != "" {
		b.WriteString("\n  ")
		b.WriteString(strings.ReplaceAll(f.Description, "\n", "\n  "))
	}
	return b.String()
}
