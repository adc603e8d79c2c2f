// Package git provides read-only repository metadata for fraglog: the
// current branch (used to name new fragment files) and the configured user
// (used as the default fragment author). It uses the go-git library so no
// git CLI installation is required.
package git

import (
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
)

// openRepo opens the git repository containing the current working
// directory, traversing up the directory tree to find the repository root.
func openRepo() (*git.Repository, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	repo, err := git.PlainOpenWithOptions(cwd, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", cwd, err)
	}
	return repo, nil
}

// CurrentBranch returns the name of the current git branch.
// Returns empty string if in detached HEAD state.
func CurrentBranch() (string, error) {
	repo, err := openRepo()
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}

	if !head.Name().IsBranch() {
		return "", nil
	}
	return head.Name().Short(), nil
}

// AuthorName returns the configured git user name, consulting repository,
// global, and system config in that order. Returns empty string when no
// user is configured.
func AuthorName() (string, error) {
	repo, err := openRepo()
	if err != nil {
		return "", err
	}

	cfg, err := repo.ConfigScoped(gitconfig.SystemScope)
	if err != nil {
		return "", fmt.Errorf("reading git config: %w", err)
	}
	return cfg.User.Name, nil
}

// IsRepository checks if the current directory is within a git repository.
func IsRepository() bool {
	_, err := openRepo()
	return err == nil
}
