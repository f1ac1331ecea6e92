package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultReloadDelay collapses the burst of events an editor produces when
// it saves a file.
const DefaultReloadDelay = 100 * time.Millisecond

// ReloadFunc receives the result of each reload. Exactly one of cfg and
// err is non-nil.
type ReloadFunc func(cfg *Config, err error)

// Watch reloads the config file at path whenever it changes and calls fn
// with the result. The directory is watched rather than the file so that
// editors which save by rename are seen. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, fn ReloadFunc) error {
	return WatchWithDelay(ctx, path, DefaultReloadDelay, fn)
}

// WatchWithDelay is Watch with an explicit settle delay.
func WatchWithDelay(ctx context.Context, path string, delay time.Duration, fn ReloadFunc) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}

	timer := time.NewTimer(delay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !relevant(ev) {
				continue
			}
			timer.Reset(delay)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fn(nil, fmt.Errorf("config watcher: %w", err))

		case <-timer.C:
			cfg, err := Load(abs)
			if err != nil {
				fn(nil, err)
				continue
			}
			fn(cfg, nil)
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
