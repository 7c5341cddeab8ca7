package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driven"
)

// Ensure PreferenceStore implements the interface.
var _ driven.PreferenceStore = (*PreferenceStore)(nil)

// itemKey scopes an item ID to its source.
type itemKey struct {
	source domain.SourceKind
	id     string
}

// hiddenKey adds the hide scope.
type hiddenKey struct {
	itemKey
	scope domain.HiddenScope
}

// PreferenceStore is an in-memory implementation of driven.PreferenceStore.
type PreferenceStore struct {
	mu        sync.RWMutex
	hidden    map[hiddenKey]struct{}
	pinned    map[itemKey]struct{}
	nicknames map[itemKey]string
	usage     map[itemKey]int
}

// NewPreferenceStore creates a new in-memory preference store.
func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{
		hidden:    make(map[hiddenKey]struct{}),
		pinned:    make(map[itemKey]struct{}),
		nicknames: make(map[itemKey]string),
		usage:     make(map[itemKey]int),
	}
}

// HiddenSet returns the IDs hidden in scope for a source.
func (s *PreferenceStore) HiddenSet(
	_ context.Context, source domain.SourceKind, scope domain.HiddenScope,
) (map[string]struct{}, error) {
	if !scope.IsValid() {
		return nil, fmt.Errorf("%w: hidden scope %q", domain.ErrInvalidInput, scope)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]struct{})
	for k := range s.hidden {
		if k.source == source && k.scope == scope {
			result[k.id] = struct{}{}
		}
	}
	return result, nil
}

// PinnedSet returns the pinned IDs for a source.
func (s *PreferenceStore) PinnedSet(_ context.Context, source domain.SourceKind) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]struct{})
	for k := range s.pinned {
		if k.source == source {
			result[k.id] = struct{}{}
		}
	}
	return result, nil
}

// Nickname returns the nickname for an ID, if any.
func (s *PreferenceStore) Nickname(_ context.Context, source domain.SourceKind, id string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	nick, ok := s.nicknames[itemKey{source, id}]
	return nick, ok, nil
}

// Nicknames returns every nickname for a source keyed by ID.
func (s *PreferenceStore) Nicknames(_ context.Context, source domain.SourceKind) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]string)
	for k, nick := range s.nicknames {
		if k.source == source {
			result[k.id] = nick
		}
	}
	return result, nil
}

// UsageCounts returns launch counts for a source keyed by ID.
func (s *PreferenceStore) UsageCounts(_ context.Context, source domain.SourceKind) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]int)
	for k, n := range s.usage {
		if k.source == source {
			result[k.id] = n
		}
	}
	return result, nil
}

// Hide adds an ID to the hidden set for scope.
func (s *PreferenceStore) Hide(_ context.Context, source domain.SourceKind, scope domain.HiddenScope, id string) error {
	if err := validateItem(source, id); err != nil {
		return err
	}
	if !scope.IsValid() {
		return fmt.Errorf("%w: hidden scope %q", domain.ErrInvalidInput, scope)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hidden[hiddenKey{itemKey{source, id}, scope}] = struct{}{}
	return nil
}

// Unhide removes an ID from the hidden set for scope.
func (s *PreferenceStore) Unhide(_ context.Context, source domain.SourceKind, scope domain.HiddenScope, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.hidden, hiddenKey{itemKey{source, id}, scope})
	return nil
}

// Pin adds an ID to the pinned set.
func (s *PreferenceStore) Pin(_ context.Context, source domain.SourceKind, id string) error {
	if err := validateItem(source, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pinned[itemKey{source, id}] = struct{}{}
	return nil
}

// Unpin removes an ID from the pinned set.
func (s *PreferenceStore) Unpin(_ context.Context, source domain.SourceKind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pinned, itemKey{source, id})
	return nil
}

// SetNickname stores a nickname. An empty nickname clears it.
func (s *PreferenceStore) SetNickname(_ context.Context, source domain.SourceKind, id, nickname string) error {
	if err := validateItem(source, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if nickname = strings.TrimSpace(nickname); nickname == "" {
		delete(s.nicknames, itemKey{source, id})
		return nil
	}
	s.nicknames[itemKey{source, id}] = nickname
	return nil
}

// RecordUsage increments the launch count for an ID.
func (s *PreferenceStore) RecordUsage(_ context.Context, source domain.SourceKind, id string) error {
	if err := validateItem(source, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usage[itemKey{source, id}]++
	return nil
}

func validateItem(source domain.SourceKind, id string) error {
	if !source.IsValid() {
		return fmt.Errorf("%w: source %q", domain.ErrUnsupportedType, source)
	}
	if id == "" {
		return fmt.Errorf("%w: empty item id", domain.ErrInvalidInput)
	}
	return nil
}
