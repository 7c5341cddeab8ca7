package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-launcher/internal/logger"
)

// Ensure PreferenceService implements the interface.
var _ driving.PreferenceService = (*PreferenceService)(nil)

// PreferenceService writes candidate preferences and refreshes the owning
// source manager so the next search reflects the change.
type PreferenceService struct {
	store    driven.PreferenceStore
	managers map[domain.SourceKind]driving.SourceSearch
}

// NewPreferenceService creates a preference service. Managers without a
// matching source are ignored on refresh.
func NewPreferenceService(store driven.PreferenceStore, managers ...driving.SourceSearch) *PreferenceService {
	byKind := make(map[domain.SourceKind]driving.SourceSearch, len(managers))
	for _, m := range managers {
		byKind[m.Source()] = m
	}
	return &PreferenceService{store: store, managers: byKind}
}

// Hide hides an item in scope.
func (s *PreferenceService) Hide(ctx context.Context, source domain.SourceKind, scope domain.HiddenScope, id string) error {
	if err := validateScoped(source, scope, id); err != nil {
		return err
	}
	if err := s.store.Hide(ctx, source, scope, id); err != nil {
		return fmt.Errorf("hide %s: %w", id, err)
	}
	return s.refresh(ctx, source)
}

// Unhide reverses Hide.
func (s *PreferenceService) Unhide(ctx context.Context, source domain.SourceKind, scope domain.HiddenScope, id string) error {
	if err := validateScoped(source, scope, id); err != nil {
		return err
	}
	if err := s.store.Unhide(ctx, source, scope, id); err != nil {
		return fmt.Errorf("unhide %s: %w", id, err)
	}
	return s.refresh(ctx, source)
}

// Pin pins an item so it is listed apart from ranked results.
func (s *PreferenceService) Pin(ctx context.Context, source domain.SourceKind, id string) error {
	if err := validateItemRef(source, id); err != nil {
		return err
	}
	if err := s.store.Pin(ctx, source, id); err != nil {
		return fmt.Errorf("pin %s: %w", id, err)
	}
	return s.refresh(ctx, source)
}

// Unpin reverses Pin.
func (s *PreferenceService) Unpin(ctx context.Context, source domain.SourceKind, id string) error {
	if err := validateItemRef(source, id); err != nil {
		return err
	}
	if err := s.store.Unpin(ctx, source, id); err != nil {
		return fmt.Errorf("unpin %s: %w", id, err)
	}
	return s.refresh(ctx, source)
}

// SetNickname stores a trimmed nickname; blank clears it.
func (s *PreferenceService) SetNickname(ctx context.Context, source domain.SourceKind, id, nickname string) error {
	if err := validateItemRef(source, id); err != nil {
		return err
	}
	if err := s.store.SetNickname(ctx, source, id, strings.TrimSpace(nickname)); err != nil {
		return fmt.Errorf("set nickname for %s: %w", id, err)
	}
	return s.refresh(ctx, source)
}

// ClearNickname removes an item's nickname.
func (s *PreferenceService) ClearNickname(ctx context.Context, source domain.SourceKind, id string) error {
	return s.SetNickname(ctx, source, id, "")
}

// RecordLaunch counts a launch. Usage only affects ordering, so the
// refresh is not forced past a failure.
func (s *PreferenceService) RecordLaunch(ctx context.Context, source domain.SourceKind, id string) error {
	if err := validateItemRef(source, id); err != nil {
		return err
	}
	if err := s.store.RecordUsage(ctx, source, id); err != nil {
		return fmt.Errorf("record launch of %s: %w", id, err)
	}
	if err := s.refresh(ctx, source); err != nil {
		logger.Warn("record launch: %v", err)
	}
	return nil
}

func (s *PreferenceService) refresh(ctx context.Context, source domain.SourceKind) error {
	mgr, ok := s.managers[source]
	if !ok {
		return nil
	}
	if _, err := mgr.Refresh(ctx, true); err != nil {
		return err
	}
	logger.Debug("preferences: refreshed %s", source)
	return nil
}

func validateItemRef(source domain.SourceKind, id string) error {
	if !source.IsValid() {
		return fmt.Errorf("%w: unknown source %q", domain.ErrInvalidInput, source)
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: item id is required", domain.ErrInvalidInput)
	}
	return nil
}

func validateScoped(source domain.SourceKind, scope domain.HiddenScope, id string) error {
	if !scope.IsValid() {
		return fmt.Errorf("%w: unknown hidden scope %q", domain.ErrInvalidInput, scope)
	}
	return validateItemRef(source, id)
}
