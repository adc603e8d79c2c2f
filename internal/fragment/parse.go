package fragment

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseError reports a single fragment file that could not be turned into a
// valid Fragment. Each error identifies the file and the specific violation
// so every bad fragment in a batch can be reported at once.
type ParseError struct {
	File    string
	Field   string
	Message string
}

func (e *ParseError) Error() string {
	switch {
	case e.File != "" && e.Field != "":
		return fmt.Sprintf("%s: %s: %s", e.File, e.Field, e.Message)
	case e.File != "":
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	default:
		return e.Message
	}
}

// fragmentFile is the on-disk shape of a fragment. The legacy tool wrote
// JSON entries with different key names (type/title/isBreakingChange);
// both key sets are accepted since yaml.v3 parses JSON input too.
type fragmentFile struct {
	Category    string `yaml:"category"`
	Summary     string `yaml:"summary"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
	Issue       string `yaml:"issue"`
	Breaking    bool   `yaml:"breaking"`

	// Legacy key aliases.
	Type             string `yaml:"type"`
	Title            string `yaml:"title"`
	IsBreakingChange bool   `yaml:"isBreakingChange"`
}

// Parse reads one fragment from r and validates it.
// Returns a *ParseError (without the file name, which the caller supplies)
// on unparseable input, an unknown category, or an empty summary.
func Parse(r io.Reader) (*Fragment, error) {
	var raw fragmentFile
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, &ParseError{Message: fmt.Sprintf("parsing fragment: %v", err)}
	}
	return fromFile(&raw)
}

// fromFile validates the raw file shape and builds a Fragment from it.
func fromFile(raw *fragmentFile) (*Fragment, error) {
	categoryName := raw.Category
	if categoryName == "" {
		categoryName = raw.Type
	}
	if strings.TrimSpace(categoryName) == "" {
		return nil, &ParseError{Field: "category", Message: "required field is empty"}
	}

	category, err := ParseCategory(categoryName)
	if err != nil {
		return nil, &ParseError{Field: "category", Message: err.Error()}
	}

	summary := raw.Summary
	if summary == "" {
		summary = raw.Title
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return nil, &ParseError{Field: "summary", Message: "required field is empty"}
	}

	return &Fragment{
		Category:    category,
		Summary:     summary,
		Description: strings.TrimSpace(raw.Description),
		Author:      strings.TrimSpace(raw.Author),
		Issue:       strings.TrimSpace(raw.Issue),
		Breaking:    raw.Breaking || raw.IsBreakingChange,
	}, nil
}

// Encode serializes a fragment to YAML for `fraglog add`.
// The output round-trips through Parse without loss.
func Encode(f *Fragment) ([]byte, error) {
	if !f.Category.Valid() {
		return nil, &ParseError{Field: "category", Message: fmt.Sprintf("invalid category %d", int(f.Category))}
	}
	if strings.TrimSpace(f.Summary) == "" {
		return nil, &ParseError{Field: "summary", Message: "required field is empty"}
	}
	return yaml.Marshal(f)
}
