package changelog

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/fraglog/fraglog/internal/fragment"
	"github.com/fraglog/fraglog/internal/semver"
)

// Entry is one parsed bullet from a rendered section, with markdown
// formatting unwrapped back into its fields.
type Entry struct {
	Category    fragment.Category
	Summary     string
	Description string
	Issue       string
	Breaking    bool
}

// ParsedSection is the result of reading a rendered section back.
type ParsedSection struct {
	Version semver.Version
	Date    time.Time
	Entries []Entry
}

// linkBulletPattern matches a markdown link bullet: [text](target).
var linkBulletPattern = regexp.MustCompile(`^\[(.+)\]\(([^)]*)\)$`)

const breakingPrefix = "**BREAKING CHANGE** "

// ParseSection parses a section produced by RenderSection back into its
// entries. Rendering followed by parsing recovers the same
// (category, summary) pairs with no loss or duplication.
func ParseSection(section string) (*ParsedSection, error) {
	lines := strings.Split(strings.TrimSuffix(section, "\n"), "\n")
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty section")
	}

	m := versionHeadingPattern.FindStringSubmatch(lines[0])
	if m == nil {
		return nil, fmt.Errorf("section does not start with a version heading: %q", lines[0])
	}

	version, err := semver.Parse(m[1])
	if err != nil {
		return nil, fmt.Errorf("parsing section version: %w", err)
	}
	date, err := time.Parse("2006-01-02", m[2])
	if err != nil {
		return nil, fmt.Errorf("parsing section date: %w", err)
	}

	parsed := &ParsedSection{Version: version, Date: date}

	var category fragment.Category
	haveCategory := false
	for _, line := range lines[1:] {
		switch {
		case strings.HasPrefix(line, "### "):
			category, err = fragment.ParseCategory(strings.TrimPrefix(line, "### "))
			if err != nil {
				return nil, fmt.Errorf("parsing category heading %q: %w", line, err)
			}
			haveCategory = true
		case strings.HasPrefix(line, "- "):
			if !haveCategory {
				return nil, fmt.Errorf("bullet before any category heading: %q", line)
			}
			parsed.Entries = append(parsed.Entries, parseBullet(category, strings.TrimPrefix(line, "- ")))
		case strings.TrimSpace(line) == "":
			// Blank separator.
		case strings.HasPrefix(line, "  "):
			// Indented continuation: the description of the bullet above.
			if len(parsed.Entries) == 0 {
				return nil, fmt.Errorf("continuation line before any bullet: %q", line)
			}
			last := &parsed.Entries[len(parsed.Entries)-1]
			text := strings.TrimPrefix(line, "  ")
			if last.Description == "" {
				last.Description = text
			} else {
				last.Description += "\n" + text
			}
		default:
			return nil, fmt.Errorf("unexpected line in section: %q", line)
		}
	}

	return parsed.normalize(), nil
}

// parseBullet unwraps one bullet's markdown back into an Entry.
func parseBullet(category fragment.Category, text string) Entry {
	entry := Entry{Category: category}

	if strings.HasPrefix(text, `\[`) {
		// Escaped bracket: the whole text is a literal summary, not a link.
		text = strings.TrimPrefix(text, `\`)
	} else if m := linkBulletPattern.FindStringSubmatch(text); m != nil {
		text = m[1]
		entry.Issue = m[2]
	}
	if strings.HasPrefix(text, breakingPrefix) {
		text = strings.TrimPrefix(text, breakingPrefix)
		entry.Breaking = true
	}

	entry.Summary = text
	return entry
}

func (p *ParsedSection) normalize() *ParsedSection {
	if p.Entries == nil {
		p.Entries = []Entry{}
	}
	return p
}
