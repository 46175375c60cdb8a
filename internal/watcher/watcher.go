// Package watcher reports debounced changes to markdown files.
package watcher

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a path must stay quiet before it is reported.
const DefaultDebounce = 200 * time.Millisecond

// Event is a settled change to one file.
type Event struct {
	Path    string
	Removed bool
}

// Watcher monitors files for changes and calls back once per burst of
// filesystem events on a path.
type Watcher struct {
	watcher  *fsnotify.Watcher
	match    func(path string) bool
	tree     bool
	delay    time.Duration
	debounce map[string]*time.Timer
	mu       sync.Mutex
	closed   bool
	onChange func(Event)
	onError  func(error)
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Zero or negative keeps the default.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithErrorHandler receives errors from the underlying watcher.
func WithErrorHandler(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// NewFile watches a single file. The directory is watched rather than the
// file so that editors which save by renaming over it keep being seen.
func NewFile(path string, onChange func(Event), opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	w, err := newWatcher(onChange, opts)
	if err != nil {
		return nil, err
	}
	w.match = func(p string) bool { return p == abs }

	if err := w.watcher.Add(filepath.Dir(abs)); err != nil {
		_ = w.watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return w, nil
}

// NewTree watches every markdown file under root, skipping hidden
// directories. Directories created later are picked up as they appear.
func NewTree(root string, onChange func(Event), opts ...Option) (*Watcher, error) {
	w, err := newWatcher(onChange, opts)
	if err != nil {
		return nil, err
	}
	w.tree = true
	w.match = func(p string) bool { return strings.HasSuffix(p, ".md") }

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
	if err != nil {
		_ = w.watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", root, err)
	}
	return w, nil
}

func newWatcher(onChange func(Event), opts []Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		watcher:  fw,
		delay:    DefaultDebounce,
		debounce: make(map[string]*time.Timer),
		onChange: onChange,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins watching for changes. Blocks until Stop is called.
func (w *Watcher) Start() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if !w.match(path) {
		// But watch new directories
		if w.tree && event.Has(fsnotify.Create) {
			info, err := os.Stat(path)
			if err == nil && info.IsDir() && !strings.HasPrefix(info.Name(), ".") {
				_ = w.watcher.Add(path)
			}
		}
		return
	}
	if event.Op == fsnotify.Chmod {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}
	w.debounce[path] = time.AfterFunc(w.delay, func() {
		w.mu.Lock()
		delete(w.debounce, path)
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return
		}

		// The last raw event is not reliable after a rename dance; the
		// file's presence once things settle is.
		_, err := os.Stat(path)
		w.onChange(Event{Path: path, Removed: os.IsNotExist(err)})
	})
}

// Stop stops the watcher and cancels pending callbacks.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for path, timer := range w.debounce {
		timer.Stop()
		delete(w.debounce, path)
	}
	w.mu.Unlock()

	return w.watcher.Close()
}
