package desktop

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

var (
	_ driven.CandidateProvider = (*Provider)(nil)
	_ driven.ChangeNotifier    = (*Provider)(nil)
	_ driven.Watcher           = (*Provider)(nil)
)

// Provider lists installed applications from .desktop files.
// Directories earlier in the list shadow later ones with the same desktop
// file ID, matching XDG lookup order.
type Provider struct {
	dirs    []string
	changes chan struct{}

	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

// New creates an app provider. Empty dirs uses DefaultDirs.
func New(dirs []string) *Provider {
	if len(dirs) == 0 {
		dirs = DefaultDirs()
	}
	return &Provider{dirs: dirs, changes: make(chan struct{}, 1)}
}

// DefaultDirs returns the XDG application directories, user first.
func DefaultDirs() []string {
	var dirs []string
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	if dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, "applications"))
	}

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, d := range filepath.SplitList(dataDirs) {
		if d != "" {
			dirs = append(dirs, filepath.Join(d, "applications"))
		}
	}
	return dirs
}

// Source returns the apps source.
func (p *Provider) Source() domain.SourceKind {
	return domain.SourceApps
}

// LoadAll parses every launchable entry. Unparseable files are skipped.
// It fails only when no directory could be read.
func (p *Provider) LoadAll(ctx context.Context) ([]domain.Candidate, error) {
	seen := make(map[string]struct{})
	var (
		candidates []domain.Candidate
		errs       []error
		readable   int
	)

	for _, dir := range p.dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == dir {
					return err
				}
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if d.IsDir() || filepath.Ext(path) != ".desktop" {
				return nil
			}

			id := fileID(dir, path)
			if _, dup := seen[id]; dup {
				return nil
			}
			// A shadowing entry hides the app even when it is not launchable.
			seen[id] = struct{}{}

			entry, err := parseFile(path)
			if err != nil {
				logger.Debug("apps: skip %s: %v", path, err)
				return nil
			}
			if entry.Launchable() {
				candidates = append(candidates, toCandidate(id, entry))
			}
			return nil
		})
		switch {
		case err == nil:
			readable++
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		case errors.Is(err, fs.ErrNotExist):
			// Not every XDG directory exists.
		default:
			errs = append(errs, fmt.Errorf("read %s: %w", dir, err))
		}
	}

	if readable == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return candidates, nil
}

// Search returns apps whose name, generic name or keywords contain query.
func (p *Provider) Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	all, err := p.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	var out []domain.Candidate
	for _, c := range all {
		if limit > 0 && len(out) >= limit {
			break
		}
		if containsFold(needle, append([]string{c.DisplayText}, c.Keywords...)...) {
			out = append(out, c)
		}
	}
	return out, nil
}

func parseFile(path string) (Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return Entry{}, err
	}
	defer f.Close()
	return Parse(f)
}

// fileID derives the desktop file ID: the path below the applications
// directory with separators replaced by dashes.
func fileID(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", "-")
}

func toCandidate(id string, e Entry) domain.Candidate {
	keywords := e.Keywords
	if e.GenericName != "" {
		keywords = append([]string{e.GenericName}, keywords...)
	}
	detail := e.Comment
	if detail == "" {
		detail = e.GenericName
	}
	return domain.Candidate{
		ID:          id,
		Source:      domain.SourceApps,
		DisplayText: e.Name,
		Keywords:    keywords,
		Detail:      detail,
		Target:      Command(e.Exec),
	}
}

func containsFold(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
