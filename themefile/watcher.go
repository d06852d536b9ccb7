package themefile

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	globalstyles "github.com/goliatone/go-global-styles"
)

// DefaultDebounce delays reloads so editors that write in several steps
// trigger a single reload.
const DefaultDebounce = 250 * time.Millisecond

// BaseReplacer receives reloaded base documents. *globalstyles.Editor
// satisfies it.
type BaseReplacer interface {
	SetBase(ctx context.Context, base globalstyles.Document) error
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatcherLogger sets the zerolog logger. The default discards output.
func WithWatcherLogger(logger zerolog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithReloadHook registers fn to run after every reload attempt.
func WithReloadHook(fn func(globalstyles.Document, error)) WatcherOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// Watcher reloads a theme file when it changes on disk and hands the new
// document to a BaseReplacer.
type Watcher struct {
	path     string
	target   BaseReplacer
	debounce time.Duration
	logger   zerolog.Logger
	onReload func(globalstyles.Document, error)

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	timer    *time.Timer
	started  bool
	stopped  bool
	done     chan struct{}
	doneOnce sync.Once
}

// NewWatcher builds a Watcher for path. It does not touch the filesystem
// until Start.
func NewWatcher(path string, target BaseReplacer, opts ...WatcherOption) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("themefile: watch path is required")
	}
	if target == nil {
		return nil, fmt.Errorf("themefile: watch target is required")
	}
	if _, err := FormatFromPath(path); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("themefile: resolve %s: %w", path, err)
	}
	w := &Watcher{
		path:     abs,
		target:   target,
		debounce: DefaultDebounce,
		logger:   zerolog.Nop(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// Start watches the directory holding the file, so atomic saves that
// replace the file are seen. It returns once the watch is registered; the
// loop runs until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started || w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("themefile: watcher for %s already started or stopped", w.path)
	}
	w.started = true
	w.mu.Unlock()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("themefile: create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("themefile: watch %s: %w", w.path, err)
	}

	w.mu.Lock()
	w.watcher = watcher
	w.mu.Unlock()

	w.logger.Info().
		Str("event", "themefile.watcher_started").
		Str("path", w.path).
		Msg("watching theme file for changes")

	go w.loop(ctx, watcher)
	return nil
}

// Stop closes the watcher and cancels a pending reload. Stopping a watcher
// that never started closes Done right away.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	if w.watcher != nil {
		_ = w.watcher.Close()
		w.watcher = nil
	}
	if !w.started {
		w.closeDone()
	}
}

// Done is closed when the watch loop exits, or by Stop when the watcher
// never started. It is never nil.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) closeDone() {
	w.doneOnce.Do(func() { close(w.done) })
}

// Reload loads the file once and replaces the target's base tier.
func (w *Watcher) Reload(ctx context.Context) error {
	doc, err := Load(w.path)
	if err == nil {
		err = w.target.SetBase(ctx, doc)
	}
	if err != nil {
		w.logger.Error().
			Err(err).
			Str("event", "themefile.reload_failed").
			Str("path", w.path).
			Msg("theme file reload failed")
	} else {
		w.logger.Info().
			Str("event", "themefile.reload_success").
			Str("path", w.path).
			Msg("theme file reloaded")
	}
	if w.onReload != nil {
		w.onReload(doc, err)
	}
	return err
}

func (w *Watcher) loop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer w.closeDone()
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Str("event", "themefile.watcher_stopped").Msg("theme file watcher stopped")
			w.Stop()
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug().
				Str("event", "themefile.file_changed").
				Str("op", event.Op.String()).
				Msg("theme file changed")
			w.schedule(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error().
				Err(err).
				Str("event", "themefile.watcher_error").
				Msg("theme file watcher error")
		}
	}
}

func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		_ = w.Reload(ctx)
	})
}
