package cli

import (
	stderrors "errors"

	"github.com/fraglog/fraglog/internal/changelog"
	"github.com/fraglog/fraglog/internal/release"
	"github.com/fraglog/fraglog/internal/semver"
)

// Exit codes for the fraglog CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a generic runtime failure
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 2

	// ExitInvalidFragments indicates one or more fragment files failed validation
	ExitInvalidFragments = 3

	// ExitNothingToRelease indicates no valid fragments were found
	ExitNothingToRelease = 4

	// ExitMalformedDocument indicates the changelog lacks the Unreleased marker
	ExitMalformedDocument = 5
)

// exitError carries a specific exit code out of a command. err may be nil
// when the command has already printed its own diagnostics.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return ""
}

func (e *exitError) Unwrap() error {
	return e.err
}

// ExitCode resolves the process exit code for an error returned by Execute.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *exitError
	if stderrors.As(err, &exitErr) {
		return exitErr.code
	}

	var invalidBatch *release.InvalidBatchError
	if stderrors.As(err, &invalidBatch) {
		return ExitInvalidFragments
	}
	if stderrors.Is(err, release.ErrEmptyBatch) {
		return ExitNothingToRelease
	}
	var malformed *changelog.MalformedDocumentError
	if stderrors.As(err, &malformed) {
		return ExitMalformedDocument
	}
	var duplicate *changelog.DuplicateSectionError
	if stderrors.As(err, &duplicate) {
		return ExitMalformedDocument
	}
	var versionErr *semver.ParseError
	if stderrors.As(err, &versionErr) {
		return ExitInvalidArguments
	}

	return ExitFailure
}
