package file

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/sercha-launcher/internal/adapters/driven/config/values"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in a TOML file. Keys are flat in memory and
// written as nested tables, so "search.fuzzy.apps.enabled" lands in
// [search.fuzzy.apps]. Every write rewrites the file.
type ConfigStore struct {
	*values.Map
	path string
}

// NewConfigStore opens config.toml under dir, creating dir if needed. An
// empty dir means ~/.sercha-launcher. A missing file is an empty config.
func NewConfigStore(dir string) (*ConfigStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".sercha-launcher")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	s := &ConfigStore{Map: values.New(nil), path: filepath.Join(dir, "config.toml")}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Set stores value under key and writes the file. A key may not be both a
// value and a table.
func (s *ConfigStore) Set(key string, value any) error {
	return s.Update(func(m map[string]any) error {
		if why := values.Collides(m, key); why != "" {
			return fmt.Errorf("config key %q %s", key, why)
		}
		prev, had := m[key]
		m[key] = value
		if err := s.write(m); err != nil {
			if had {
				m[key] = prev
			} else {
				delete(m, key)
			}
			return err
		}
		return nil
	})
}

// Delete removes key and writes the file. Missing keys are ignored.
func (s *ConfigStore) Delete(key string) error {
	return s.Update(func(m map[string]any) error {
		prev, ok := m[key]
		if !ok {
			return nil
		}
		delete(m, key)
		if err := s.write(m); err != nil {
			m[key] = prev
			return err
		}
		return nil
	})
}

// Load replaces the in-memory settings with the file's contents.
func (s *ConfigStore) Load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		data, err = nil, nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", s.path, err)
	}

	var nested map[string]any
	if err := toml.Unmarshal(data, &nested); err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}
	flat := values.Flatten(nested)

	return s.Update(func(m map[string]any) error {
		clear(m)
		maps.Copy(m, flat)
		return nil
	})
}

// Path returns the config file path.
func (s *ConfigStore) Path() string {
	return s.path
}

// write replaces the file via a temp file and rename so a crash never
// leaves half a config.
func (s *ConfigStore) write(flat map[string]any) error {
	data, err := toml.Marshal(values.Nest(flat))
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	return os.Rename(tmp, s.path)
}
