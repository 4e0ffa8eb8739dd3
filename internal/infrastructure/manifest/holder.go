package manifest

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"pipekit.dev/cli/internal/core/registry"
)

// BuildFunc rebuilds a registry from a manifest. It must populate a fresh
// registry and return it; the holder swaps it in atomically so readers never
// observe a partially populated one.
type BuildFunc func(*Manifest) (*registry.Registry, error)

// Holder provides thread-safe access to the current registry snapshot and
// rebuilds it when the manifest file changes. A failed rebuild keeps the old
// snapshot.
type Holder struct {
	mu       sync.RWMutex
	registry *registry.Registry
	path     string
	build    BuildFunc
	logger   zerolog.Logger
	watcher  *fsnotify.Watcher
	onSwap   []func(*registry.Registry)
	stopCh   chan struct{}
}

// NewHolder loads the manifest at path and builds the initial registry.
func NewHolder(path string, build BuildFunc, logger zerolog.Logger) (*Holder, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}

	m, err := Load(absPath)
	if err != nil {
		return nil, err
	}
	reg, err := build(m)
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}

	return &Holder{
		registry: reg,
		path:     absPath,
		build:    build,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}, nil
}

// Registry returns the current registry snapshot.
func (h *Holder) Registry() *registry.Registry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.registry
}

// Reload reloads the manifest and swaps in a freshly built registry.
// On failure the previous snapshot stays in place.
func (h *Holder) Reload() error {
	h.logger.Info().Str("path", h.path).Msg("reloading pipeline manifest")

	m, err := Load(h.path)
	if err != nil {
		h.logger.Error().Err(err).Msg("manifest reload failed, keeping old registry")
		return err
	}
	reg, err := h.build(m)
	if err != nil {
		h.logger.Error().Err(err).Msg("registry rebuild failed, keeping old registry")
		return fmt.Errorf("build registry: %w", err)
	}

	h.mu.Lock()
	h.registry = reg
	h.mu.Unlock()

	for _, fn := range h.onSwap {
		fn(reg)
	}
	h.logger.Info().Int("plugins", reg.Len()).Msg("registry rebuilt from manifest")
	return nil
}

// OnSwap registers a callback invoked after a successful registry swap.
func (h *Holder) OnSwap(fn func(*registry.Registry)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onSwap = append(h.onSwap, fn)
}

// WatchFile starts watching the manifest file; changes trigger Reload.
// Watching the directory rather than the file survives editors that replace
// the file on save.
func (h *Holder) WatchFile() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	h.watcher = watcher

	if err := watcher.Add(filepath.Dir(h.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	go h.watchLoop()
	h.logger.Info().Str("path", h.path).Msg("watching pipeline manifest")
	return nil
}

// Stop stops the file watcher.
func (h *Holder) Stop() {
	close(h.stopCh)
	if h.watcher != nil {
		h.watcher.Close()
	}
}

func (h *Holder) watchLoop() {
	filename := filepath.Base(h.path)

	for {
		select {
		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := h.Reload(); err != nil {
				h.logger.Error().Err(err).Msg("manifest change reload failed")
			}
		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error().Err(err).Msg("manifest watcher error")
		case <-h.stopCh:
			return
		}
	}
}
