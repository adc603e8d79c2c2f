package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/fraglog/fraglog/internal/errors"
	"github.com/fraglog/fraglog/internal/update"
	"github.com/fraglog/fraglog/internal/version"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check whether a newer fraglog release is available",
	Long: `Check whether a newer fraglog release is available.

Queries the GitHub latest-release endpoint and compares it against this
build. Nothing is installed; the command only reports.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	endpoint, err := update.EndpointFor(cfg.RepoURL)
	if err != nil {
		return &exitError{code: ExitInvalidArguments, err: errors.Wrap(err, errors.Configuration,
			"Set repo_url in .fraglog/config.yml to a https://github.com/<owner>/<repo> URL, or remove it")}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " Checking for updates..."
	s.Start()

	checker := &update.Checker{Endpoint: endpoint}
	latest, err := checker.Latest(cmd.Context())
	s.Stop()

	if err != nil {
		return fmt.Errorf("checking for updates: %w", err)
	}

	if update.IsNewer(version.Version, latest) {
		fmt.Fprintf(cmd.OutOrStdout(), "A new version of fraglog is available: %s\n", latest.TagName)
		fmt.Fprintf(cmd.OutOrStdout(), "Download it from: %s\n", latest.HTMLURL)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "fraglog %s is up to date\n", version.Version)
	return nil
}
