// Package cli implements the fraglog command surface on top of cobra.
// Commands stay thin: they load configuration, wire the injected
// collaborators, and delegate to the core packages.
package cli

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fraglog/fraglog/internal/config"
	"github.com/fraglog/fraglog/internal/errors"
)

var configFlag string

var rootCmd = &cobra.Command{
	Use:   "fraglog",
	Short: "Fragment-based changelog manager",
	Long: `fraglog keeps a project changelog without merge conflicts.

Each change is recorded as a small fragment file (one per pull request).
At release time fraglog merges all fragments into CHANGELOG.md below the
[Unreleased] marker, computes the next semantic version from the change
categories, and emits plain-text release notes for tagging automation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to project config file (default .fraglog/config.yml)")
}

// Execute runs the root command and prints any resulting error with its
// category and remediation steps.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printCommandError(err)
	}
	return err
}

// printCommandError renders structured errors with remediation; anything
// else gets a plain prefix.
func printCommandError(err error) {
	var exitErr *exitError
	if stderrors.As(err, &exitErr) && exitErr.err == nil {
		// Bare exit code; the command already reported the details.
		return
	}

	var cliErr *errors.CLIError
	if stderrors.As(err, &cliErr) {
		errors.PrintError(cliErr)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// loadConfig loads the layered configuration, honoring the --config flag.
func loadConfig() (*config.Configuration, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Configuration, "loading configuration",
			"Check the syntax of .fraglog/config.yml",
			"Run with --config to point at a different config file")
	}
	return cfg, nil
}
