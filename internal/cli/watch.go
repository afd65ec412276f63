package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses the burst of events an editor save produces.
const watchDebounce = 150 * time.Millisecond

// watchFile calls run each time path is written or recreated, until ctx
// ends. Failed runs are logged and watching continues.
func watchFile(ctx context.Context, path string, debounce time.Duration, logger *log.Logger, run func(context.Context) error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	// Watch the directory so atomic saves (write temp, rename) are seen.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	logger.Debug("watching", "path", abs)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Name != abs || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			timer.Reset(debounce)

		case <-timer.C:
			logger.Info("articles changed, rerunning", "path", path)
			if err := run(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Error("run failed", "err", err)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		}
	}
}
