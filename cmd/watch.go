package cmd

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/cmmoran/metagen/internal/extract"
	"github.com/cmmoran/metagen/pkg/action/generate"
	"github.com/cmmoran/metagen/pkg/generator"
)

func init() {
	rootCmd.AddCommand(NewWatchCommand())
}

func NewWatchCommand() *cobra.Command {
	var (
		opts     generator.Options
		debounce time.Duration
	)

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "regenerate companions on source changes",
		RunE: func(c *cobra.Command, args []string) error {
			return watch(c.Context(), opts, debounce)
		},
	}
	watchCmd.Flags().StringVarP(&opts.Dir, "dir", "i", ".", "directory to watch")
	watchCmd.Flags().StringSliceVarP(&opts.Patterns, "patterns", "p", nil, "package patterns to load (defaults to ./...)")
	watchCmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "quiet period before regenerating")

	return watchCmd
}

func watch(ctx context.Context, opts generator.Options, debounce time.Duration) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	err = filepath.WalkDir(opts.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); name != "." && (strings.HasPrefix(name, ".") || name == "vendor" || name == "testdata") {
				return filepath.SkipDir
			}
			return w.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	run := func() {
		report, rerr := generate.Run(ctx, opts)
		if rerr != nil {
			slog.With("error", rerr).Error("generation failed")
			return
		}
		slog.Info(generate.Summary(report))
	}
	run()

	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			// new directories join the watch set
			if ev.Has(fsnotify.Create) {
				if fi, serr := os.Stat(ev.Name); serr == nil && fi.IsDir() {
					_ = w.Add(ev.Name)
					continue
				}
			}
			if !relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.AfterFunc(debounce, run)
			} else {
				timer.Reset(debounce)
			}
		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.With("error", werr).Warn("watch error")
		}
	}
}

// relevant filters the event stream down to Go source changes that are not
// our own emitted companions, which would otherwise retrigger forever.
func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(ev.Name)
	if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
		return false
	}
	return !strings.HasSuffix(name, extract.GeneratedSuffix)
}
