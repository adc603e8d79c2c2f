package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fraglog/fraglog/internal/changelog"
	"github.com/fraglog/fraglog/internal/fragment"
)

var checkRequireFlag bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate all fragment files",
	Long: `Validate all fragment files and report every violation.

Intended as a CI gate: the exit code is non-zero when any fragment is
invalid, so a pull request with a malformed fragment fails fast instead of
breaking the next release.

Examples:
  fraglog check             # Fail on invalid fragments
  fraglog check --require   # Additionally fail when no fragments exist`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkRequireFlag, "require", false, "Fail when no fragments are present")
}

func runCheck(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var results []fragment.Result
	if info, err := os.Stat(cfg.FragmentsDir); err == nil && info.IsDir() {
		results, err = fragment.ReadDir(os.DirFS(cfg.FragmentsDir))
		if err != nil {
			return err
		}
	}

	valid := fragment.Valid(results)
	invalid := fragment.Invalid(results)

	if len(invalid) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d fragment(s) invalid:\n", len(invalid), len(results))
		changelog.FormatErrors(invalid, cmd.ErrOrStderr(), changelog.FormatOptions{})
		return &exitError{code: ExitInvalidFragments}
	}

	if checkRequireFlag && len(valid) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "no fragments found in %s\n", cfg.FragmentsDir)
		return &exitError{code: ExitNothingToRelease}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d fragment(s) valid\n", len(valid))
	return nil
}
