package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fraglog/fraglog/internal/changelog"
	"github.com/fraglog/fraglog/internal/errors"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold the changelog and fragment directory",
	Long: `Scaffold the changelog and fragment directory.

Creates CHANGELOG.md with the Keep a Changelog preamble and an
[Unreleased] marker, plus the fragment directory. Existing files are
left untouched.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(cmd)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.FragmentsDir, 0o755); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "creating fragment directory")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Fragment directory: %s\n", cfg.FragmentsDir)

	if _, err := os.Stat(cfg.Changelog); err == nil {
		data, err := os.ReadFile(cfg.Changelog)
		if err == nil && !changelog.HasUnreleasedMarker(string(data)) {
			fmt.Fprintf(cmd.ErrOrStderr(),
				"Warning: %s exists but has no %q marker; releases will fail until one is added\n",
				cfg.Changelog, changelog.UnreleasedMarker)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Changelog already exists: %s\n", cfg.Changelog)
		return nil
	}

	if dir := filepath.Dir(cfg.Changelog); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapWithMessage(err, errors.Runtime, "creating changelog directory")
		}
	}
	if err := os.WriteFile(cfg.Changelog, []byte(changelog.Scaffold), 0o644); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "writing changelog")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", cfg.Changelog)
	return nil
}
