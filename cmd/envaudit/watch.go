package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jenian/envaudit/internal/audit"
	"github.com/jenian/envaudit/internal/config"
)

// watchDebounce coalesces bursts of filesystem events into a single rescan.
const watchDebounce = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Re-run the scan whenever project files change",
	Long:  "Watch the project tree and re-run the scan once changes settle. Editing " + config.DefaultFileName + " reloads the configuration. Stop with Ctrl-C.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, root, err := loadConfig(args)
	if err != nil {
		return err
	}
	logger := newLogger()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchTree(watcher, root, root, cfg.Scan.Exclude); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rescan := func() {
		runner := audit.New(cfg, logger)
		report, err := runner.Run(ctx, root)
		if err != nil {
			if ctx.Err() == nil {
				logger.Error("scan failed", "error", err)
			}
			return
		}
		if err := render(cfg, report); err != nil {
			logger.Error("render failed", "error", err)
		}
	}

	rescan()
	fmt.Fprintf(os.Stderr, "Watching %s for changes (Ctrl-C to stop)\n", root)

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			// New directories need their own watches.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchTree(watcher, root, event.Name, cfg.Scan.Exclude); err != nil {
						logger.Debug("failed to watch new directory", "path", event.Name, "error", err)
					}
				}
			}

			if filepath.Base(event.Name) == config.DefaultFileName && event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				fresh, err := config.Load(event.Name)
				if err != nil {
					logger.Warn("config reload failed", "error", err)
				} else {
					applyFlagOverrides(fresh)
					cfg = fresh
					logger.Info("configuration reloaded", "path", event.Name)
				}
			}

			if !debounce.Stop() {
				select {
				case <-debounce.C:
				default:
				}
			}
			debounce.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)

		case <-debounce.C:
			rescan()
		}
	}
}

// watchTree registers start and every non-excluded directory below it.
// root anchors the relative paths the exclude globs match against.
func watchTree(watcher *fsnotify.Watcher, root, start string, excludes []string) error {
	return filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == start {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if excludedDir(root, path, excludes) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func excludedDir(root, path string, excludes []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, g := range excludes {
		if ok, err := doublestar.Match(g, rel); err == nil && ok {
			return true
		}
	}
	return false
}
