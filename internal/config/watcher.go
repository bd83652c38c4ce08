package config

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const reloadDebounce = 500 * time.Millisecond

// Watcher keeps a Config snapshot in sync with a settings file.
type Watcher struct {
	path     string
	log      zerolog.Logger
	onReload func(Config, error)
	current  atomic.Pointer[Config]
	reloads  atomic.Uint32

	fsw       *fsnotify.Watcher
	done      chan struct{}
	closeOnce sync.Once
}

// NewWatcher loads path and starts watching it for writes. onReload may be nil.
func NewWatcher(path string, log zerolog.Logger, onReload func(Config, error)) (*Watcher, error) {
	cfg, err := LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial config: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("file watcher: %w", err)
	}
	if err := fsw.Add(path); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	w := &Watcher{path: path, log: log, onReload: onReload, fsw: fsw, done: make(chan struct{})}
	w.current.Store(&cfg)
	go w.watch()
	return w, nil
}

func (w *Watcher) watch() {
	var timer *time.Timer
	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, w.reload)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error().Err(err).Str("path", w.path).Msg("config watcher error")
		}
	}
}

func (w *Watcher) reload() {
	n := w.reloads.Add(1)
	cfg, err := LoadOrDefault(w.path)
	if err != nil {
		// keep serving the last good snapshot
		w.log.Error().Err(err).Uint32("count", n).Msg("config reload failed")
		if w.onReload != nil {
			w.onReload(Config{}, err)
		}
		return
	}
	w.current.Store(&cfg)
	w.log.Info().Str("path", w.path).Uint32("count", n).Msg("config reloaded")
	if w.onReload != nil {
		w.onReload(cfg, nil)
	}
}

// Snapshot returns the current configuration.
func (w *Watcher) Snapshot() Config { return *w.current.Load() }

// ReloadCount returns how many reloads have been attempted.
func (w *Watcher) ReloadCount() uint32 { return w.reloads.Load() }

// Close stops watching.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}
