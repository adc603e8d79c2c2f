package fragment

import (
	"regexp"
	"strings"
)

// MaxSlugLength is the maximum length of a generated fragment filename slug.
const MaxSlugLength = 50

// nonAlphanumRegexp matches any non-alphanumeric character.
var nonAlphanumRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// multiHyphenRegexp matches consecutive hyphens.
var multiHyphenRegexp = regexp.MustCompile(`-+`)

// Slugify converts a branch name or summary into a filesystem-safe slug
// used as the fragment filename. It lowercases the input, replaces
// whitespace and special characters with hyphens, collapses consecutive
// hyphens, trims leading/trailing hyphens, and truncates to MaxSlugLength.
//
// Examples:
//   - "feature/new-release-banner" -> "feature-new-release-banner"
//   - "Fix: crash on empty config" -> "fix-crash-on-empty-config"
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = nonAlphanumRegexp.ReplaceAllString(slug, "-")
	slug = multiHyphenRegexp.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > MaxSlugLength {
		slug = slug[:MaxSlugLength]
		slug = strings.TrimSuffix(slug, "-")
	}

	return slug
}
