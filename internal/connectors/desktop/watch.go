package desktop

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sercha-launcher/internal/logger"
)

// Changes signals after an entry was installed, edited or removed.
// One pending value stands for any number of events.
func (p *Provider) Changes() <-chan struct{} {
	return p.changes
}

// Watch follows the application directories until ctx is done. Missing
// directories are skipped. Watching twice is a no-op.
func (p *Provider) Watch(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.watcher != nil {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	for _, dir := range p.dirs {
		addDirs(w, dir)
	}
	p.watcher = w

	go p.loop(ctx, w)
	return nil
}

// Close stops watching.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.watcher == nil {
		return nil
	}
	err := p.watcher.Close()
	p.watcher = nil
	return err
}

func (p *Provider) loop(ctx context.Context, w *fsnotify.Watcher) {
	defer func() { _ = p.Close() }()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if p.relevant(w, ev) {
				p.notify()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warn("apps: watcher: %v", err)
		}
	}
}

// relevant reports whether ev can change the app list. Vendor
// subdirectories created after Watch started are picked up here.
func (p *Provider) relevant(w *fsnotify.Watcher, ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	if filepath.Ext(ev.Name) == ".desktop" {
		return true
	}
	if ev.Has(fsnotify.Create) {
		addDirs(w, ev.Name)
	}
	return false
}

func (p *Provider) notify() {
	select {
	case p.changes <- struct{}{}:
	default:
	}
}

// addDirs watches dir and every directory below it.
func addDirs(w *fsnotify.Watcher, dir string) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if err := w.Add(path); err != nil {
			logger.Debug("apps: watch %s: %v", path, err)
		}
		return nil
	})
}
