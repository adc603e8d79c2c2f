package cli

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fraglog/fraglog/internal/changelog"
	"github.com/fraglog/fraglog/internal/config"
	"github.com/fraglog/fraglog/internal/errors"
	"github.com/fraglog/fraglog/internal/release"
)

var (
	releaseCurrentFlag   string
	releaseDryRunFlag    bool
	releaseNotesFileFlag string
	releaseKeepFlag      bool
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Merge all fragments into the changelog as a new version section",
	Long: `Merge all fragments into the changelog as a new version section.

Reads every fragment, computes the next semantic version from the change
categories (breaking/removed: major, added: minor, otherwise patch),
renders the new section below the [Unreleased] marker, and deletes the
consumed fragment files.

The current version is taken from --current if given, otherwise from the
newest version heading already in the changelog (0.0.0 for a project with
no releases yet).

Examples:
  fraglog release
  fraglog release --current 1.4.2
  fraglog release --notes-file notes.txt   # for use as a tag annotation
  fraglog release --dry-run                # show what would happen`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRelease(cmd)
	},
}

func init() {
	rootCmd.AddCommand(releaseCmd)

	releaseCmd.Flags().StringVar(&releaseCurrentFlag, "current", "", "Current project version (default: newest heading in the changelog)")
	releaseCmd.Flags().BoolVar(&releaseDryRunFlag, "dry-run", false, "Compute and print the release without writing anything")
	releaseCmd.Flags().StringVar(&releaseNotesFileFlag, "notes-file", "", "Write plain-text release notes to this file")
	releaseCmd.Flags().BoolVar(&releaseKeepFlag, "keep-fragments", false, "Do not delete fragment files after merging")
}

func runRelease(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine, err := newEngine(cfg, releaseCurrentFlag)
	if err != nil {
		return err
	}

	if releaseDryRunFlag {
		result, err := engine.Plan()
		if err != nil {
			return releaseError(err, cfg)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Would release %s (from %s), consuming %d fragment(s):\n\n",
			result.Version, result.Previous, len(result.Fragments))
		fmt.Fprint(cmd.OutOrStdout(), result.Section)
		return nil
	}

	result, err := engine.Run()
	if err != nil {
		return releaseError(err, cfg)
	}

	if !releaseKeepFlag {
		if err := removeFragments(cfg, result); err != nil {
			// The changelog is already updated; losing the cleanup is
			// recoverable by hand, so report without failing the release.
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		}
	}

	if releaseNotesFileFlag != "" {
		if err := os.WriteFile(releaseNotesFileFlag, []byte(result.Notes), 0o644); err != nil {
			return errors.WrapWithMessage(err, errors.Runtime, "writing release notes")
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Released %s (%d change(s)) into %s\n",
		result.Version, len(result.Fragments), cfg.Changelog)
	return nil
}

// newEngine builds the release engine from configuration, wiring the
// fragment directory and changelog file collaborators.
func newEngine(cfg *config.Configuration, currentFlag string) (*release.Engine, error) {
	info, err := os.Stat(cfg.FragmentsDir)
	if err != nil || !info.IsDir() {
		return nil, errors.NewFragmentError(
			fmt.Sprintf("fragment directory %s does not exist", cfg.FragmentsDir),
			"Run 'fraglog init' to create it",
			"Set fragments_dir in .fraglog/config.yml if fragments live elsewhere")
	}
	if _, err := os.Stat(cfg.Changelog); err != nil {
		return nil, errors.NewDocumentError(
			fmt.Sprintf("changelog %s does not exist", cfg.Changelog),
			"Run 'fraglog init' to scaffold it")
	}

	engine := &release.Engine{
		Fragments: os.DirFS(cfg.FragmentsDir),
		Store:     &fileStore{path: cfg.Changelog},
	}
	if currentFlag != "" {
		engine.CurrentVersion = release.FixedVersion(currentFlag)
	}
	return engine, nil
}

// removeFragments deletes the consumed fragment files after a successful
// merge.
func removeFragments(cfg *config.Configuration, result *release.Result) error {
	for _, f := range result.Fragments {
		path := filepath.Join(cfg.FragmentsDir, f.SourceFile)
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("removing consumed fragment %s: %w", path, err)
		}
	}
	return nil
}

// releaseError attaches remediation guidance to the engine's typed errors.
func releaseError(err error, cfg *config.Configuration) error {
	var duplicate *changelog.DuplicateSectionError
	if stderrors.As(err, &duplicate) {
		return &exitError{code: ExitMalformedDocument, err: errors.Wrap(err, errors.Document,
			"This usually means the release already ran; remove the leftover fragment files",
			"Pass --current to release on top of the existing section")}
	}

	switch code := ExitCode(err); code {
	case ExitInvalidFragments:
		return &exitError{code: code, err: errors.WrapWithMessage(err, errors.Fragment,
			"release blocked",
			"Fix or remove the listed fragment files",
			"Run 'fraglog check' to re-validate")}
	case ExitNothingToRelease:
		return &exitError{code: code, err: errors.Wrap(err, errors.Fragment,
			fmt.Sprintf("Add fragments to %s with 'fraglog add'", cfg.FragmentsDir))}
	case ExitMalformedDocument:
		return &exitError{code: code, err: errors.Wrap(err, errors.Document,
			fmt.Sprintf("Add a '## [Unreleased]' heading to %s", cfg.Changelog))}
	default:
		return err
	}
}
