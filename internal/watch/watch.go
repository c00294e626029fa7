// Package watch reruns a handler when spec files change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-zodform/pkg/specfile"
)

// DefaultDebounce is how long the watcher waits for a burst of events to
// settle before calling the handler.
const DefaultDebounce = 100 * time.Millisecond

// Handler is called once per changed spec file after events settle.
type Handler func(ctx context.Context, path string) error

// Option customises a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger used for handler failures and watcher errors.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// Watcher watches individual spec files and directories of spec files.
// Files are watched through their parent directory so editors that replace
// files on save keep triggering events.
type Watcher struct {
	watcher  *fsnotify.Watcher
	handler  Handler
	logger   zerolog.Logger
	debounce time.Duration

	files map[string]struct{}
	dirs  map[string]struct{}
}

// New creates a Watcher that calls handler.
func New(handler Handler, options ...Option) (*Watcher, error) {
	if handler == nil {
		return nil, errors.New("watch: handler is nil")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}
	w := &Watcher{
		watcher:  watcher,
		handler:  handler,
		logger:   zerolog.Nop(),
		debounce: DefaultDebounce,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
	}
	for _, opt := range options {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// Add watches path. A directory matches every spec file directly inside it.
// Add must be called before Run.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch: resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	dir := abs
	if info.IsDir() {
		w.dirs[abs] = struct{}{}
	} else {
		if !specfile.IsSpecFile(abs) {
			return fmt.Errorf("watch: %s is not a spec file", path)
		}
		w.files[abs] = struct{}{}
		dir = filepath.Dir(abs)
	}
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch: add %s: %w", dir, err)
	}
	return nil
}

// Run dispatches settled changes until ctx is cancelled or the underlying
// watcher closes. It returns ctx.Err() on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	pending := make(map[string]struct{})
	settled := make(chan struct{}, 1)
	debounced := debounce.New(w.debounce)
	signal := func() {
		select {
		case settled <- struct{}{}:
		default:
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watch: event channel closed")
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			path, match := w.matches(event.Name)
			if !match {
				continue
			}
			pending[path] = struct{}{}
			debounced(signal)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watch: error channel closed")
			}
			w.logger.Warn().Err(err).Msg("watcher error")

		case <-settled:
			w.flush(ctx, pending)
			pending = make(map[string]struct{})
		}
	}
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) flush(ctx context.Context, pending map[string]struct{}) {
	paths := make([]string, 0, len(pending))
	for path := range pending {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			// Removed or renamed away; the replacement arrives as a Create.
			continue
		}
		if err := w.handler(ctx, path); err != nil {
			w.logger.Error().Err(err).Str("path", path).Msg("regeneration failed")
			continue
		}
		w.logger.Debug().Str("path", path).Msg("regenerated")
	}
}

func (w *Watcher) matches(name string) (string, bool) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", false
	}
	if _, ok := w.files[abs]; ok {
		return abs, true
	}
	if _, ok := w.dirs[filepath.Dir(abs)]; ok && specfile.IsSpecFile(abs) {
		return abs, true
	}
	return "", false
}
