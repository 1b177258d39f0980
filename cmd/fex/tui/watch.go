package tui

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rmlane/fex/pkg/fex/action"
	"github.com/rmlane/fex/pkg/fex/logging"
)

// watchDebounce coalesces bursts of filesystem events into one reload.
const watchDebounce = 500 * time.Millisecond

// dirWatcher keeps an fsnotify watch on the currently loaded directory
// and turns change events into debounced LoadDir actions, so the
// listing refreshes when files appear or disappear underneath it.
// Watch failures only degrade to manual reload.
type dirWatcher struct {
	watcher *fsnotify.Watcher
	queue   *action.Queue
	follow  bool

	mu    sync.Mutex
	path  string
	timer *time.Timer

	done chan struct{}
}

func newDirWatcher(q *action.Queue, follow bool) (*dirWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &dirWatcher{
		watcher: fw,
		queue:   q,
		follow:  follow,
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Watch retargets the watcher at path, dropping the previous watch.
func (w *dirWatcher) Watch(path string) {
	logger := logging.Get("watch")

	w.mu.Lock()
	prev := w.path
	w.path = path
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	if prev == path {
		return
	}
	if prev != "" {
		if err := w.watcher.Remove(prev); err != nil {
			logger.Debug("removing watch", "path", prev, "err", err)
		}
	}
	if err := w.watcher.Add(path); err != nil {
		logger.Warn("watching directory failed, auto-reload disabled", "path", path, "err", err)
	}
}

func (w *dirWatcher) loop() {
	logger := logging.Get("watch")

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error", "err", err)
		}
	}
}

// scheduleReload arms (or re-arms) the debounce timer; when it fires
// the current directory is reloaded via the action queue.
func (w *dirWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(watchDebounce, func() {
		w.mu.Lock()
		path := w.path
		w.mu.Unlock()
		if path == "" {
			return
		}
		w.queue.Push(action.LoadDir{Path: path, FollowSymlinks: w.follow})
	})
}

// Close stops the event loop and releases the underlying watcher.
func (w *dirWatcher) Close() {
	close(w.done)

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	_ = w.watcher.Close()
}
