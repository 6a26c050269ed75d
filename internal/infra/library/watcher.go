package library

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	zlog "github.com/rs/zerolog/log"
)

// Watch invokes onChange whenever an audio file is created, removed or
// renamed in dir. The watcher runs until ctx is cancelled.
func Watch(ctx context.Context, dir string, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create watcher")
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return errors.Wrapf(err, "failed to watch %s", dir)
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if !extensions[strings.ToLower(filepath.Ext(ev.Name))] {
					continue
				}
				zlog.Debug().Msgf("library: change detected: %s", ev.Name)
				onChange()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				zlog.Warn().Msgf("library: watcher error: %v", err)
			}
		}
	}()

	return nil
}
