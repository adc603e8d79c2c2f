package fragment

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fraglog/fraglog/internal/semver"
)

// Category classifies a change following the Keep a Changelog convention,
// extended with Technical for changes that are invisible to users
// (dependency bumps, CI, refactors).
type Category int

const (
	Added Category = iota
	Changed
	Deprecated
	Removed
	Fixed
	Security
	Technical
)

// Categories returns all categories in their fixed rendering order.
// Grouping, rendering, and the preview formatter all iterate this slice
// so output never depends on map iteration order.
func Categories() []Category {
	return []Category{Added, Changed, Deprecated, Removed, Fixed, Security, Technical}
}

// categoryNames maps each category to its canonical heading text.
var categoryNames = map[Category]string{
	Added:      "Added",
	Changed:    "Changed",
	Deprecated: "Deprecated",
	Removed:    "Removed",
	Fixed:      "Fixed",
	Security:   "Security",
	Technical:  "Technical",
}

// String returns the canonical heading text for the category (e.g. "Added").
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// Bump returns the semantic version bump this category demands on its own.
// Removed is treated as a breaking change; Added introduces functionality;
// everything else is a patch-level change.
func (c Category) Bump() semver.Bump {
	switch c {
	case Removed:
		return semver.BumpMajor
	case Added:
		return semver.BumpMinor
	default:
		return semver.BumpPatch
	}
}

// ParseCategory converts a category name into a Category.
// Matching is case-insensitive so "added", "Added", and "ADDED" (the form
// the legacy tool used) are all accepted.
func ParseCategory(s string) (Category, error) {
	name := strings.TrimSpace(s)
	for c, canonical := range categoryNames {
		if strings.EqualFold(name, canonical) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q (valid: %s)", s, strings.Join(CategoryNames(), ", "))
}

// CategoryNames returns the canonical names of all categories in rendering order.
func CategoryNames() []string {
	cats := Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.String()
	}
	return names
}

// UnmarshalYAML decodes a category from its name.
func (c *Category) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML encodes a category as its canonical name.
func (c Category) MarshalYAML() (interface{}, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid category %d", int(c))
	}
	return c.String(), nil
}

// Fragment is one unreleased change, authored as an individual file so
// contributors never touch the shared changelog document directly.
type Fragment struct {
	Category Category `yaml:"category"`
	Summary  string   `yaml:"summary"`
	// Description is optional longer prose rendered as an indented
	// continuation line under the summary bullet.
	Description string `yaml:"description,omitempty"`
	Author      string `yaml:"author,omitempty"`
	// Issue is an optional URL or identifier for the issue or pull request
	// that motivated the change. It is preserved, never resolved.
	Issue    string `yaml:"issue,omitempty"`
	Breaking bool   `yaml:"breaking,omitempty"`

	// SourceFile is the name of the originating fragment file, used for
	// error reporting and post-release cleanup. Not serialized.
	SourceFile string `yaml:"-"`
}

// Bump returns the version bump this single fragment demands.
// A breaking flag overrides the category's own severity.
func (f *Fragment) Bump() semver.Bump {
	if f.Breaking {
		return semver.BumpMajor
	}
	return f.Category.Bump()
}

// BatchBump returns the strongest bump demanded by any fragment in the batch.
// The batch must be non-empty; callers are expected to reject empty batches
// before resolving a version.
func BatchBump(fragments []*Fragment) semver.Bump {
	bump := semver.BumpPatch
	for _, f := range fragments {
		if b := f.Bump(); b > bump {
			bump = b
		}
	}
	return bump
}
