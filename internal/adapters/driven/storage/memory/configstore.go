package memory

import (
	"github.com/custodia-labs/sercha-launcher/internal/adapters/driven/config/values"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings for the life of the process. It backs tests and
// --ephemeral runs.
type ConfigStore struct {
	*values.Map
}

// NewConfigStore returns an empty store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{Map: values.New(nil)}
}

// Set stores value under key.
func (s *ConfigStore) Set(key string, value any) error {
	return s.Update(func(m map[string]any) error {
		m[key] = value
		return nil
	})
}

// Delete removes key. Missing keys are ignored.
func (s *ConfigStore) Delete(key string) error {
	return s.Update(func(m map[string]any) error {
		delete(m, key)
		return nil
	})
}
