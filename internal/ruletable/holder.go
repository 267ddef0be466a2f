package ruletable

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Holder serves the current registry and swaps it atomically when rule files change.
type Holder struct {
	dir     string
	logger  *zap.Logger
	current atomic.Value // holds *Registry
}

// NewHolder loads the registry for dir and stores it.
func NewHolder(dir string, logger *zap.Logger) (*Holder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	reg, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	h := &Holder{dir: dir, logger: logger}
	h.current.Store(reg)
	return h, nil
}

// Registry returns the registry in effect.
func (h *Holder) Registry() *Registry {
	return h.current.Load().(*Registry)
}

// Reload re-reads the directory. An invalid directory leaves the previous registry in place.
func (h *Holder) Reload() error {
	reg, err := LoadDir(h.dir)
	if err != nil {
		return err
	}
	h.current.Store(reg)
	h.logger.Info("rule tables reloaded", zap.String("dir", h.dir), zap.Ints("tax_years", reg.Years()))
	return nil
}

// Watch reloads on every write, create, remove or rename in the rules directory until ctx is done.
// The ready channel, when non-nil, is closed once the watcher is registered.
func (h *Holder) Watch(ctx context.Context, ready chan<- struct{}) error {
	if h.dir == "" {
		return fmt.Errorf("no rules directory to watch")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(h.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", h.dir, err)
	}
	if ready != nil {
		close(ready)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isRuleFile(event.Name) || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if err := h.Reload(); err != nil {
				h.logger.Warn("rule table reload failed, keeping previous tables", zap.String("file", event.Name), zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			h.logger.Error("rule table watcher error", zap.Error(err))
		}
	}
}
