package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fraglog/fraglog/internal/changelog"
	"github.com/fraglog/fraglog/internal/config"
	"github.com/fraglog/fraglog/internal/release"
)

var (
	previewCurrentFlag string
	previewPlainFlag   bool
	previewWatchFlag   bool
)

// watchDebounce coalesces bursts of filesystem events (editors often fire
// several per save) into a single re-render.
const watchDebounce = 250 * time.Millisecond

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the pending release without modifying anything",
	Long: `Show the release that 'fraglog release' would produce: the resolved
next version and the categorized changes, rendered for the terminal.

Examples:
  fraglog preview
  fraglog preview --current 1.4.2
  fraglog preview --plain      # No colors/icons
  fraglog preview --watch      # Re-render when fragments change`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreview(cmd)
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&previewCurrentFlag, "current", "", "Current project version (default: newest heading in the changelog)")
	previewCmd.Flags().BoolVar(&previewPlainFlag, "plain", false, "Plain text output (no colors/icons)")
	previewCmd.Flags().BoolVarP(&previewWatchFlag, "watch", "w", false, "Watch the fragment directory and re-render on changes")
}

func runPreview(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if previewWatchFlag {
		return watchPreview(cmd, cfg)
	}
	return renderPreview(cmd, cfg)
}

// renderPreview computes and prints the pending release once.
func renderPreview(cmd *cobra.Command, cfg *config.Configuration) error {
	engine, err := newEngine(cfg, previewCurrentFlag)
	if err != nil {
		return err
	}

	result, err := engine.Plan()
	if err != nil {
		if stderrors.Is(err, release.ErrEmptyBatch) {
			fmt.Fprintf(cmd.OutOrStdout(), "No fragments in %s; nothing to release.\n", cfg.FragmentsDir)
			return nil
		}
		return releaseError(err, cfg)
	}

	rel := changelog.Release{
		Version: result.Version,
		Date:    result.Date,
		Groups:  result.Groups,
	}
	return changelog.FormatRelease(rel, cmd.OutOrStdout(), changelog.FormatOptions{Plain: previewPlainFlag})
}

// watchPreview renders the pending release and re-renders whenever the
// fragment directory changes, until interrupted.
func watchPreview(cmd *cobra.Command, cfg *config.Configuration) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.FragmentsDir); err != nil {
		return fmt.Errorf("watching %s: %w", cfg.FragmentsDir, err)
	}

	if err := renderPreview(cmd, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching %s (Ctrl-C to stop)\n", cfg.FragmentsDir)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watchLoop(ctx, cmd, cfg, watcher)
	})

	if err := g.Wait(); err != nil && !stderrors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// watchLoop debounces watcher events and re-renders after each burst.
func watchLoop(ctx context.Context, cmd *cobra.Command, cfg *config.Configuration, watcher *fsnotify.Watcher) error {
	var debounce *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(watchDebounce)
			} else {
				debounce.Reset(watchDebounce)
			}
			fire = debounce.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)

		case <-fire:
			fire = nil
			fmt.Fprintln(cmd.OutOrStdout())
			if err := renderPreview(cmd, cfg); err != nil {
				// Transient states (a fragment mid-edit) should not kill
				// the watch session; show the problem and keep going.
				fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
			}
		}
	}
}
