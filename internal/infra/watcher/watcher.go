// Package watcher reports changes to the storage files of a data directory.
package watcher

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aalvaropc/bangs/internal/domain"
)

// DefaultDebounce collapses bursts of writes (bbolt and sqlite touch the
// file several times per transaction).
const DefaultDebounce = 250 * time.Millisecond

// Watcher calls onChange once per burst of events on the watched files.
type Watcher struct {
	dir      string
	names    map[string]struct{}
	debounce time.Duration
	onChange func([]string)
	log      *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	stopped bool
}

type Option func(*Watcher)

func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// New watches the given base names inside dir.
func New(dir string, names []string, onChange func([]string), opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		names:    make(map[string]struct{}, len(names)),
		debounce: DefaultDebounce,
		onChange: onChange,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		pending:  make(map[string]struct{}),
	}
	for _, n := range names {
		w.names[n] = struct{}{}
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run blocks until ctx is cancelled or the underlying watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return &domain.OpError{Op: "watcher.new", Kind: domain.KindExecution, Path: w.dir, Err: err}
	}
	defer fw.Close()

	// Watch the directory, not the files: writers replace files via rename.
	if err := fw.Add(w.dir); err != nil {
		return &domain.OpError{Op: "watcher.add", Kind: domain.KindExecution, Path: w.dir, Err: err}
	}
	w.log.Debug("watcher.started", "dir", w.dir)

	defer w.stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
				continue
			}
			w.Notify(ev.Name)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher.error", "dir", w.dir, "err", err)
		}
	}
}

// Notify records a change to path and (re)starts the debounce timer.
// Paths whose base name is not watched are ignored.
func (w *Watcher) Notify(path string) {
	if _, ok := w.names[filepath.Base(path)]; !ok {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}

	w.pending[path] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.timer = nil
	w.mu.Unlock()

	if len(paths) == 0 || w.onChange == nil {
		return
	}
	w.log.Debug("watcher.changed", "paths", paths)
	w.onChange(paths)
}

// stop cancels a pending flush. A timer that already fired sees stopped and
// drops its batch, so onChange is never called after Run returns.
func (w *Watcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	w.pending = make(map[string]struct{})
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
