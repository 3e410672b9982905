package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 200 * time.Millisecond

// Watch reloads the catalog file into the store whenever it changes, until
// ctx is done. A file that fails to load leaves the current catalog in place.
// Tools added at runtime are dropped by a reload.
func Watch(ctx context.Context, path string, store *Store, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("catalog")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	// Editors replace files on save, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	go func() {
		defer watcher.Close()

		var timer *time.Timer
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("catalog watcher error", zap.Error(err))
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(reloadDebounce)
				} else {
					timer.Reset(reloadDebounce)
				}
			case <-timerChan(timer):
				timer = nil
				reload(path, store, logger)
			}
		}
	}()

	return nil
}

func reload(path string, store *Store, logger *zap.Logger) {
	tools, err := LoadFile(path)
	if err != nil {
		logger.Warn("catalog reload failed", zap.String("path", path), zap.Error(err))
		return
	}
	if err := store.Replace(tools); err != nil {
		logger.Warn("catalog reload rejected", zap.String("path", path), zap.Error(err))
		return
	}
	logger.Info("catalog reloaded", zap.String("path", path), zap.Int("tools", len(tools)))
}

func timerChan(timer *time.Timer) <-chan time.Time {
	if timer == nil {
		return nil
	}
	return timer.C
}
