package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// DefaultDebounce is how long watch waits after the last catalog change.
const DefaultDebounce = 300 * time.Millisecond

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	GenerateOptions
	Debounce time.Duration
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{GenerateOptions: GenerateOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate fixtures whenever the catalog file changes",
		Long: `Generate once, then watch an external catalog file and regenerate the
fixture document after every change. A failed regeneration is logged and
the previous document is left in place.

Example:
  termfixture watch --catalog scenarios.yaml -o fixtures.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.outputSet = cmd.Flags().Changed("output")
			f := newFormatter(opts.RootOptions, cmd)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := &Watcher{Options: &opts.GenerateOptions, Debounce: opts.Debounce, Logger: f.Logger()}
			if err := w.Run(ctx); err != nil {
				return f.Fail(ExitCommandError, "watch", err)
			}
			return nil
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", DefaultOutput, "fixture document path")
	cmd.Flags().StringVar(&opts.SourceVersion, "source-version", "", "version recorded as source_version (default: the console version)")
	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "SQLite run ledger to record each run in")
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", DefaultDebounce, "quiet period after a change before regenerating")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

// Watcher regenerates the fixture document when the catalog file changes.
type Watcher struct {
	Options  *GenerateOptions
	Debounce time.Duration
	Logger   *slog.Logger

	// Generated is called after every regeneration attempt (for testing).
	Generated func(*GenerateResult, error)
}

// Run generates once and then regenerates after each debounced change to
// the catalog. Blocks until ctx is cancelled.
//
// The catalog's directory is watched rather than the file so that editors
// that replace the file by rename keep triggering events.
func (w *Watcher) Run(ctx context.Context) error {
	if w.Options.Catalog == "" {
		return errors.New("watch needs --catalog")
	}
	catalog, err := filepath.Abs(w.Options.Catalog)
	if err != nil {
		return err
	}
	if _, err := os.Stat(catalog); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(catalog)); err != nil {
		return fmt.Errorf("failed to watch %q: %w", filepath.Dir(catalog), err)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w.regenerate(ctx)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != catalog {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.Logger.Debug("catalog changed", "path", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			w.regenerate(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) regenerate(ctx context.Context) {
	result, err := runGenerate(ctx, w.Options, w.Logger)
	if err != nil {
		w.Logger.Error("regeneration failed", "error", err)
	}
	if w.Generated != nil {
		w.Generated(result, err)
	}
}
