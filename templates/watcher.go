// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package templates

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/danielhkuo/folio/capability"
)

// Watcher reloads a registry when YAML files in the override directory
// change. An invalid set of definitions is logged and the registry keeps
// its previous contents.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	registry *Registry
	catalog  *capability.Catalog
	dir      string
	debounce time.Duration
	logger   *slog.Logger
	onReload func(error)
	inUse    func(context.Context) ([]string, error)
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewWatcher watches dir and reloads registry from built-ins plus dir.
// When catalog is non-nil, reloaded templates must pass CheckBindings.
func NewWatcher(dir string, registry *Registry, catalog *capability.Catalog, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		watcher:  fw,
		registry: registry,
		catalog:  catalog,
		dir:      dir,
		debounce: 250 * time.Millisecond,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// OnReload registers a callback invoked after every reload attempt with
// its result. Must be called before Start.
func (w *Watcher) OnReload(fn func(error)) {
	w.onReload = fn
}

// InUse registers a lookup of the template keys saved sections reference.
// A reload that drops any of them is rejected. Must be called before Start.
func (w *Watcher) InUse(fn func(context.Context) ([]string, error)) {
	w.inUse = fn
}

// Start begins watching. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}
	w.running = true
	w.logger.Info("watching templates", "dir", w.dir)
	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		w.logger.Error("closing template watcher", "error", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isYAML(event.Name) || event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("template watcher error", "error", err)
		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	err := w.Reload()
	if err != nil {
		w.logger.Error("template reload rejected, keeping previous set", "dir", w.dir, "error", err)
	} else {
		w.logger.Info("templates reloaded", "dir", w.dir)
	}
	if w.onReload != nil {
		w.onReload(err)
	}
}

// Reload loads and swaps in the current definitions immediately.
func (w *Watcher) Reload() error {
	defs, err := Load(w.dir)
	if err != nil {
		return err
	}
	if w.catalog != nil {
		if err := checkBindings(defs, w.catalog); err != nil {
			return err
		}
	}
	if w.inUse != nil {
		keys, err := w.inUse(context.Background())
		if err != nil {
			return fmt.Errorf("template keys in use: %w", err)
		}
		if err := checkInUse(defs, keys); err != nil {
			return err
		}
	}
	return w.registry.Replace(defs)
}
