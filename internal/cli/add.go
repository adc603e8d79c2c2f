package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fraglog/fraglog/internal/errors"
	"github.com/fraglog/fraglog/internal/fragment"
	"github.com/fraglog/fraglog/internal/git"
)

var (
	addCategoryFlag string
	addIssueFlag    string
	addAuthorFlag   string
	addBreakingFlag bool
	addNameFlag     string
)

var addCmd = &cobra.Command{
	Use:   "add <summary>",
	Short: "Create a new changelog fragment",
	Long: `Create a new changelog fragment file in the fragment directory.

The author defaults to the configured git user and the filename to a slug
of the current branch, so the typical flow inside a feature branch is just:

  fraglog add "Add message when new release is available" -c added

Examples:
  fraglog add "Fix crash on empty config" -c fixed --issue https://github.com/org/repo/issues/42
  fraglog add "Drop legacy v1 endpoints" -c removed --breaking
  fraglog add "Bump yaml.v3 to 3.0.1" -c technical --name bump-yaml`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdd(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addCategoryFlag, "category", "c", "", "Change category (default from config: default_category)")
	addCmd.Flags().StringVar(&addIssueFlag, "issue", "", "Issue or pull request URL/identifier")
	addCmd.Flags().StringVarP(&addAuthorFlag, "author", "a", "", "Change author (default: git user.name)")
	addCmd.Flags().BoolVarP(&addBreakingFlag, "breaking", "b", false, "Mark as a breaking change")
	addCmd.Flags().StringVar(&addNameFlag, "name", "", "Fragment filename without extension (default: slug of the current branch)")
}

func runAdd(cmd *cobra.Command, summary string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	categoryName := addCategoryFlag
	if categoryName == "" {
		categoryName = cfg.DefaultCategory
	}
	category, err := fragment.ParseCategory(categoryName)
	if err != nil {
		return &exitError{code: ExitInvalidArguments, err: errors.NewArgumentError(err.Error(),
			"Pass one of the listed categories with -c")}
	}

	frag := &fragment.Fragment{
		Category: category,
		Summary:  summary,
		Author:   resolveAuthor(),
		Issue:    addIssueFlag,
		Breaking: addBreakingFlag,
	}

	data, err := fragment.Encode(frag)
	if err != nil {
		return &exitError{code: ExitInvalidArguments, err: errors.Wrap(err, errors.Argument)}
	}

	if err := os.MkdirAll(cfg.FragmentsDir, 0o755); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "creating fragment directory")
	}

	path, err := fragmentPath(cfg.FragmentsDir, summary)
	if err != nil {
		return err
	}

	// O_EXCL so a concurrent add never silently overwrites a fragment.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "creating fragment file")
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "writing fragment file")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}

// resolveAuthor returns the author flag, falling back to the git user.
// Outside a repository (or with no user configured) the author is simply
// left empty; it is optional.
func resolveAuthor() string {
	if addAuthorFlag != "" {
		return addAuthorFlag
	}
	name, err := git.AuthorName()
	if err != nil {
		return ""
	}
	return name
}

// fragmentPath picks a filename for the new fragment: the --name flag,
// else the slugified current branch, else a slug of the summary. A numeric
// suffix is appended when the name is already taken.
func fragmentPath(dir, summary string) (string, error) {
	name := addNameFlag
	if name == "" {
		if branch, err := git.CurrentBranch(); err == nil && branch != "" {
			name = fragment.Slugify(branch)
		}
	}
	if name == "" {
		name = fragment.Slugify(summary)
	}
	if name == "" {
		return "", &exitError{code: ExitInvalidArguments, err: errors.NewArgumentError(
			"cannot derive a fragment filename",
			"Pass an explicit name with --name")}
	}

	path := filepath.Join(dir, name+".yaml")
	for i := 2; ; i++ {
		_, err := os.Stat(path)
		if os.IsNotExist(err) {
			return path, nil
		}
		if err != nil {
			return "", errors.WrapWithMessage(err, errors.Runtime, "checking fragment filename")
		}
		path = filepath.Join(dir, fmt.Sprintf("%s-%d.yaml", name, i))
	}
}
