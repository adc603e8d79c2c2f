// Package release orchestrates one release run: read fragments, group them,
// resolve the next version, render the new section, and merge it into the
// changelog document. The engine is a one-shot batch job; all file access
// and time sources are injected so a run is a pure function of its inputs.
package release

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/fraglog/fraglog/internal/changelog"
	"github.com/fraglog/fraglog/internal/fragment"
	"github.com/fraglog/fraglog/internal/semver"
)

// ErrEmptyBatch is returned when no valid fragments were found: there is
// nothing to version or render.
var ErrEmptyBatch = errors.New("no fragments found: nothing to release")

// InvalidBatchError aggregates every fragment that failed to parse.
// The default policy is blocking: silently dropping a contributor's entry
// is worse than stopping, so one bad fragment fails the whole run with all
// violations reported together.
type InvalidBatchError struct {
	Errors []error
}

func (e *InvalidBatchError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d invalid fragment(s):\n  %s", len(e.Errors), strings.Join(msgs, "\n  "))
}

// DocumentStore is the injected capability for reading and writing the
// changelog document. Write is expected to be atomic (the CLI implements
// it as write-to-temp plus rename).
type DocumentStore interface {
	Read() (string, error)
	Write(text string) error
}

// Engine wires the collaborators for one release run.
type Engine struct {
	// Fragments is the fragment directory, rooted at the directory itself.
	Fragments fs.FS
	// Store reads and writes the changelog document.
	Store DocumentStore
	// CurrentVersion supplies the project's current version.
	// When nil, the newest version heading in the document is used,
	// falling back to 0.0.0 for a project with no releases yet.
	CurrentVersion func(doc string) (semver.Version, error)
	// Today supplies the generation date. When nil, time.Now is used.
	// Only the calendar date is consumed, keeping output deterministic
	// within a day.
	Today func() time.Time
}

// Result is the outcome of a successful run. Document is complete, valid
// new text; nothing partial is ever produced.
type Result struct {
	// Version is the resolved next version.
	Version semver.Version
	// Previous is the current version the bump was applied to.
	Previous semver.Version
	// Date is the generation date used in the rendered heading.
	Date time.Time
	// Groups holds the consumed fragments bucketed by category.
	Groups fragment.Groups
	// Document is the full new changelog text.
	Document string
	// Section is the rendered markdown section that was inserted.
	Section string
	// Notes is the plain-text release notes string.
	Notes string
	// Fragments are the consumed fragments, in discovery order. Their
	// SourceFile names identify the files eligible for cleanup.
	Fragments []*fragment.Fragment
}

// Plan performs a full release computation without writing anything:
// it reads the fragments and the document and returns the would-be result.
// Every run with the same inputs yields a byte-identical result.
func (e *Engine) Plan() (*Result, error) {
	doc, err := e.Store.Read()
	if err != nil {
		return nil, fmt.Errorf("reading changelog document: %w", err)
	}
	if !changelog.HasUnreleasedMarker(doc) {
		return nil, &changelog.MalformedDocumentError{}
	}

	results, err := fragment.ReadDir(e.Fragments)
	if err != nil {
		return nil, err
	}
	if invalid := fragment.Invalid(results); len(invalid) > 0 {
		return nil, &InvalidBatchError{Errors: invalid}
	}

	fragments := fragment.Valid(results)
	if len(fragments) == 0 {
		return nil, ErrEmptyBatch
	}

	current, err := e.resolveCurrent(doc)
	if err != nil {
		return nil, err
	}

	next := current.Next(fragment.BatchBump(fragments))

	rel := changelog.Release{
		Version: next,
		Date:    e.today(),
		Groups:  fragment.Group(fragments),
	}

	section := changelog.RenderSection(rel)
	merged, err := changelog.Merge(doc, section)
	if err != nil {
		return nil, err
	}

	return &Result{
		Version:   next,
		Previous:  current,
		Date:      rel.Date,
		Groups:    rel.Groups,
		Document:  merged,
		Section:   section,
		Notes:     changelog.RenderNotes(rel),
		Fragments: fragments,
	}, nil
}

// Run executes Plan and writes the new document through the store.
// On any error no document mutation happens.
func (e *Engine) Run() (*Result, error) {
	result, err := e.Plan()
	if err != nil {
		return nil, err
	}

	if err := e.Store.Write(result.Document); err != nil {
		return nil, fmt.Errorf("writing changelog document: %w", err)
	}

	return result, nil
}

// resolveCurrent determines the current version via the injected supplier,
// defaulting to the newest version heading already in the document.
func (e *Engine) resolveCurrent(doc string) (semver.Version, error) {
	if e.CurrentVersion != nil {
		return e.CurrentVersion(doc)
	}
	return VersionFromDocument(doc)
}

// VersionFromDocument is the default current-version supplier: the newest
// release heading in the document, or 0.0.0 when none exists.
func VersionFromDocument(doc string) (semver.Version, error) {
	if v, ok := changelog.LatestVersion(doc); ok {
		return v, nil
	}
	return semver.Version{}, nil
}

// FixedVersion returns a current-version supplier that parses the given
// string once per call, for the --current flag.
func FixedVersion(s string) func(doc string) (semver.Version, error) {
	return func(string) (semver.Version, error) {
		return semver.Parse(s)
	}
}

func (e *Engine) today() time.Time {
	if e.Today != nil {
		return e.Today()
	}
	return time.Now()
}
