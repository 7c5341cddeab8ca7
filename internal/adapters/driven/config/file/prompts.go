package file

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-launcher/internal/logger"
)

var _ driven.PromptStore = (*PromptStore)(nil)

//go:embed defaults/*.txt
var defaultFS embed.FS

// placeholders is the number of %s verbs each known prompt is formatted with.
var placeholders = map[string]int{
	driven.PromptDirectAnswer: 1,
	driven.PromptFollowUp:     2,
}

// defaultPrompt returns the built-in template for name.
func defaultPrompt(name string) string {
	data, err := defaultFS.ReadFile("defaults/" + name + ".txt")
	if err != nil {
		panic(fmt.Sprintf("missing built-in prompt %q", name))
	}
	return strings.TrimSpace(string(data))
}

// PromptStore serves answer prompts from "<name>.txt" files in a directory
// the user can edit. The directory is seeded with the built-in prompts on
// first use. A file that is empty or has the wrong number of %s verbs is
// ignored in favour of the built-in prompt.
type PromptStore struct {
	dir string

	seed    sync.Once
	seedErr error

	mu    sync.RWMutex
	cache map[string]string
}

// NewPromptStore returns a store rooted at dir, or ~/.sercha-launcher/prompts
// when dir is empty. Nothing touches the disk until the first Load.
func NewPromptStore(dir string) (*PromptStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(home, ".sercha-launcher", "prompts")
	}
	return &PromptStore{dir: dir, cache: make(map[string]string)}, nil
}

// Load returns the template for name.
func (s *PromptStore) Load(name string) (string, error) {
	want, known := placeholders[name]
	if !known {
		return "", fmt.Errorf("unknown prompt %q", name)
	}

	s.mu.RLock()
	cached, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	s.seed.Do(s.seedDefaults)
	prompt := defaultPrompt(name)
	if s.seedErr == nil {
		if user, err := s.read(name); err != nil {
			logger.Warn("prompts: %v", err)
		} else if got := strings.Count(user, "%s"); user != "" && got != want {
			logger.Warn("prompts: %s has %d %%s placeholders, want %d; using built-in", name, got, want)
		} else if user != "" {
			prompt = user
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.cache[name]; ok {
		return cached, nil
	}
	s.cache[name] = prompt
	return prompt, nil
}

// Reload drops cached prompts so the next Load rereads the files.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	clear(s.cache)
	s.mu.Unlock()
}

// Dir returns the prompt directory.
func (s *PromptStore) Dir() string {
	return s.dir
}

func (s *PromptStore) seedDefaults() {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		s.seedErr = fmt.Errorf("create prompt directory: %w", err)
		logger.Debug("prompts: %v", s.seedErr)
		return
	}
	for name := range placeholders {
		path := s.path(name)
		if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := os.WriteFile(path, []byte(defaultPrompt(name)+"\n"), 0o600); err != nil {
			s.seedErr = fmt.Errorf("write default prompt %q: %w", name, err)
			logger.Debug("prompts: %v", s.seedErr)
			return
		}
	}
}

func (s *PromptStore) read(name string) (string, error) {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *PromptStore) path(name string) string {
	return filepath.Join(s.dir, name+".txt")
}
