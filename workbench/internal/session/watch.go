package session

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch monitors path and calls onChange with the newly loaded Session each
// time the file is saved. It runs until ctx is cancelled.
//
// The parent directory is watched rather than the file, so a save that
// replaces the file by rename is seen like any other write.
//
// If a reload fails (e.g. the file is half-written or invalid), the error is
// logged and onChange is not called.
func Watch(ctx context.Context, path string, log *zap.Logger, onChange func(*Session)) error {
	if log == nil {
		log = zap.NewNop()
	}
	target := filepath.Clean(path)
	if _, err := Load(target); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("session: new watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("session: watch %s: %w", filepath.Dir(target), err)
	}

	log.Info("session: watching for changes", zap.String("path", target))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			// A rename onto the path arrives as Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			s, err := Load(target)
			if err != nil {
				log.Warn("session: reload failed", zap.String("path", target), zap.Error(err))
				continue
			}

			log.Debug("session: reloaded", zap.String("path", target))
			onChange(s)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("session: watcher error", zap.Error(err))
		}
	}
}
