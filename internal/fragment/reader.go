package fragment

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Result is the outcome of parsing one discovered fragment file.
// Exactly one of Fragment and Err is set. A batch read never aborts on a
// bad file; the caller applies its own pass/fail policy over the results.
type Result struct {
	File     string
	Fragment *Fragment
	Err      error
}

// fragmentExtensions are the file extensions recognized as fragments.
// JSON is accepted for entries written by the legacy tool.
var fragmentExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
}

// IsFragmentFile reports whether name looks like a fragment file.
func IsFragmentFile(name string) bool {
	return fragmentExtensions[strings.ToLower(path.Ext(name))]
}

// ReadDir discovers and parses every fragment file at the root of fsys.
// Results are ordered lexicographically by filename so output is
// deterministic across runs on the same input set. Files that are not
// fragments (directories, other extensions, dotfiles) are skipped.
//
// The returned error is non-nil only when the directory itself cannot be
// listed; per-file failures are reported in the individual results.
func ReadDir(fsys fs.FS) ([]Result, error) {
	dirEntries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("listing fragment directory: %w", err)
	}

	// fs.ReadDir sorts by filename already; keep an explicit sort so the
	// ordering contract does not depend on the fs.FS implementation.
	sort.Slice(dirEntries, func(i, j int) bool {
		return dirEntries[i].Name() < dirEntries[j].Name()
	})

	var results []Result
	for _, entry := range dirEntries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !IsFragmentFile(name) {
			continue
		}
		results = append(results, readOne(fsys, name))
	}
	return results, nil
}

// readOne parses a single fragment file into a Result.
func readOne(fsys fs.FS, name string) Result {
	f, err := fsys.Open(name)
	if err != nil {
		return Result{File: name, Err: &ParseError{File: name, Message: fmt.Sprintf("opening fragment: %v", err)}}
	}
	defer f.Close()

	frag, err := Parse(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			// Parse does not know the filename; attach it here.
			return Result{File: name, Err: &ParseError{File: name, Field: pe.Field, Message: pe.Message}}
		}
		return Result{File: name, Err: &ParseError{File: name, Message: err.Error()}}
	}

	frag.SourceFile = name
	return Result{File: name, Fragment: frag}
}

// Valid returns the fragments from results that parsed successfully,
// preserving discovery order.
func Valid(results []Result) []*Fragment {
	var fragments []*Fragment
	for _, r := range results {
		if r.Err == nil {
			fragments = append(fragments, r.Fragment)
		}
	}
	return fragments
}

// Invalid returns the errors from results that failed to parse,
// preserving discovery order.
func Invalid(results []Result) []error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errs
}
