// Package filewatch notifies callers when a single file changes on disk.
//
// The parent directory is watched rather than the file itself so that
// editors which save by rename, and files created after the watch starts,
// are both observed.
package filewatch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/lookup/internal/logger"
)

// DefaultSettle is how long a burst of events must be quiet before onChange runs.
const DefaultSettle = 100 * time.Millisecond

// Watch calls onChange each time path is written, created or replaced.
// Bursts of events are coalesced. It blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, onChange func()) error {
	return WatchSettle(ctx, path, DefaultSettle, onChange)
}

// WatchSettle is Watch with an explicit coalescing interval.
func WatchSettle(ctx context.Context, path string, settle time.Duration, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Debug("filewatch: watching %s", abs)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !IsChange(ev, abs) {
				continue
			}
			logger.Debug("filewatch: %s %s", ev.Op, ev.Name)
			if timer == nil {
				timer = time.NewTimer(settle)
			} else {
				timer.Reset(settle)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("filewatch: %v", err)
		}
	}
}

// IsChange reports whether ev modifies the file at path.
// Chmod and Remove are ignored: a removed file has nothing to reload.
func IsChange(ev fsnotify.Event, path string) bool {
	if filepath.Clean(ev.Name) != path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
