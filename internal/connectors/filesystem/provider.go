package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-launcher/internal/logger"
)

// Ensure Provider implements the interfaces.
var (
	_ driven.CandidateProvider = (*Provider)(nil)
	_ driven.ChangeNotifier    = (*Provider)(nil)
)

// DefaultMaxDepth bounds the walk below each root.
const DefaultMaxDepth = 4

// maxCandidates caps a single walk so a huge home directory stays usable.
const maxCandidates = 20000

// Provider exposes files under a set of roots as candidates.
// Hidden files and directories are skipped.
type Provider struct {
	roots    []string
	maxDepth int

	changes chan struct{}

	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

// New creates a file provider. A non-positive maxDepth uses DefaultMaxDepth.
func New(roots []string, maxDepth int) *Provider {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	cleaned := make([]string, 0, len(roots))
	for _, r := range roots {
		if r = strings.TrimSpace(r); r != "" {
			cleaned = append(cleaned, filepath.Clean(r))
		}
	}
	return &Provider{
		roots:    cleaned,
		maxDepth: maxDepth,
		changes:  make(chan struct{}, 1),
	}
}

// Source returns the files source.
func (p *Provider) Source() domain.SourceKind {
	return domain.SourceFiles
}

// LoadAll walks every root. A missing root is skipped; if no root can be
// read the error is returned so the caller keeps its previous snapshot.
func (p *Provider) LoadAll(ctx context.Context) ([]domain.Candidate, error) {
	return p.walk(ctx, func(string) bool { return true }, maxCandidates)
}

// Search walks the roots and returns files whose name contains query.
func (p *Provider) Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if limit <= 0 || limit > maxCandidates {
		limit = maxCandidates
	}
	return p.walk(ctx, func(name string) bool {
		return strings.Contains(strings.ToLower(name), needle)
	}, limit)
}

func (p *Provider) walk(ctx context.Context, keep func(name string) bool, limit int) ([]domain.Candidate, error) {
	var (
		candidates []domain.Candidate
		errs       []error
		readable   int
	)
	for _, root := range p.roots {
		if len(candidates) >= limit {
			break
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root {
					return err
				}
				return nil // unreadable subtree
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if path == root {
				return nil
			}
			if isHidden(d.Name()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if depth(root, path) >= p.maxDepth {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || !keep(d.Name()) {
				return nil
			}
			candidates = append(candidates, candidateFor(path))
			if len(candidates) >= limit {
				return filepath.SkipAll
			}
			return nil
		})
		switch {
		case err == nil:
			readable++
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		default:
			errs = append(errs, fmt.Errorf("walk %s: %w", root, err))
		}
	}

	if readable == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	for _, err := range errs {
		logger.Warn("files: %v", err)
	}
	return candidates, nil
}

// Changes signals after files under a watched root changed.
// Signals coalesce: one pending value stands for any number of events.
func (p *Provider) Changes() <-chan struct{} {
	return p.changes
}

// Watch starts watching the roots and their subdirectories until ctx is
// cancelled. Calling Watch while already watching is a no-op.
func (p *Provider) Watch(ctx context.Context) error {
	p.mu.Lock()
	if p.watcher != nil {
		p.mu.Unlock()
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.mu.Unlock()
		return fmt.Errorf("create watcher: %w", err)
	}
	p.watcher = watcher
	p.mu.Unlock()

	for _, root := range p.roots {
		p.addTree(root, root)
	}

	go p.eventLoop(ctx, watcher)
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

func (p *Provider) eventLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer func() { _ = p.Close() }()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			p.handleFsEvent(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("files: watcher: %v", err)
		}
	}
}

// handleFsEvent reports whether the event changed the candidate set and
// signals if so. New directories are added to the watch.
func (p *Provider) handleFsEvent(event fsnotify.Event) bool {
	root, ok := p.rootOf(event.Name)
	if !ok {
		return false
	}
	if rel, _ := filepath.Rel(root, event.Name); isHidden(rel) {
		return false
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			p.addTree(root, event.Name)
		}
	}

	select {
	case p.changes <- struct{}{}:
	default:
	}
	return true
}

// addTree watches dir and its visible subdirectories within the depth cap.
func (p *Provider) addTree(root, dir string) {
	p.mu.Lock()
	watcher := p.watcher
	p.mu.Unlock()
	if watcher == nil {
		return
	}

	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if depth(root, path) >= p.maxDepth {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			logger.Debug("files: watch %s: %v", path, err)
		}
		return nil
	})
}

func (p *Provider) rootOf(path string) (string, bool) {
	for _, root := range p.roots {
		if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
			return root, true
		}
	}
	return "", false
}

func candidateFor(path string) domain.Candidate {
	return domain.Candidate{
		ID:          path,
		Source:      domain.SourceFiles,
		DisplayText: filepath.Base(path),
		Detail:      filepath.Dir(path),
		Target:      TargetFor(path),
	}
}

// depth is the number of path elements between root and path.
func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

// isHidden reports whether any element of path starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if len(part) > 1 && part[0] == '.' && part != ".." {
			return true
		}
	}
	return false
}
