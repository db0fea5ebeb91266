package envfile

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// debounceDelay is how long to wait after the last write before firing.
const debounceDelay = 500 * time.Millisecond

// Watcher invokes a callback when the env file changes. The parent
// directory is watched rather than the file itself so that a file
// created after startup is still picked up.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	fn      func()
}

// NewWatcher creates a watcher for the env file at path.
func NewWatcher(path string, fn func()) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if dir == "" {
		dir = "."
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %q: %w", dir, err)
	}

	return &Watcher{watcher: w, path: filepath.Clean(path), fn: fn}, nil
}

// Run blocks until ctx is cancelled, invoking the callback shortly after
// the last write to the watched file.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(debounceDelay, w.fn)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("env file watcher error")
		}
	}
}
