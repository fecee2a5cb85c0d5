// Package watch reports when a haystack file changes on disk.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mhr3/hexseek/internal/logging"
)

// Watcher delivers one notification per burst of changes to a file.
//
// The parent directory is watched rather than the file itself so that
// editors and tools that replace the file by renaming over it are seen.
type Watcher struct {
	path     string
	debounce time.Duration
	fw       *fsnotify.Watcher
	log      *logging.Logger
	changes  chan struct{}
	done     chan struct{}
	once     sync.Once
}

// New starts watching path. Changes closer together than debounce are
// reported once.
func New(path string, debounce time.Duration, log *logging.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}
	if log == nil {
		log = logging.NoopLogger()
	}

	w := &Watcher{
		path:     abs,
		debounce: debounce,
		fw:       fw,
		log:      log,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Changes receives a value after the file was written, created or replaced
// and then left alone for the debounce period. Unread notifications
// coalesce.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fw.Close()
	})
	return err
}

func (w *Watcher) loop() {
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	ctx := context.Background()
	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.log.DebugContext(ctx, "haystack changed", "path", w.path, "op", ev.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.WarnContext(ctx, "watch error", "path", w.path, "error", err)

		case <-timer.C:
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}
