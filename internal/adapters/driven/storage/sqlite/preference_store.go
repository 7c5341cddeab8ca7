package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driven"
)

// preferenceStore implements driven.PreferenceStore.
type preferenceStore struct {
	store *Store
}

var _ driven.PreferenceStore = (*preferenceStore)(nil)

// HiddenSet returns the IDs hidden in scope for a source.
func (s *preferenceStore) HiddenSet(
	ctx context.Context, source domain.SourceKind, scope domain.HiddenScope,
) (map[string]struct{}, error) {
	if !scope.IsValid() {
		return nil, fmt.Errorf("%w: hidden scope %q", domain.ErrInvalidInput, scope)
	}
	return s.querySet(ctx, "hidden items",
		"SELECT item_id FROM hidden_items WHERE source = ? AND scope = ?", string(source), string(scope))
}

// PinnedSet returns the pinned IDs for a source.
func (s *preferenceStore) PinnedSet(ctx context.Context, source domain.SourceKind) (map[string]struct{}, error) {
	return s.querySet(ctx, "pinned items",
		"SELECT item_id FROM pinned_items WHERE source = ?", string(source))
}

// Nickname returns the nickname for an ID, if any.
func (s *preferenceStore) Nickname(ctx context.Context, source domain.SourceKind, id string) (string, bool, error) {
	var nickname string
	err := s.store.db.QueryRowContext(ctx,
		"SELECT nickname FROM nicknames WHERE source = ? AND item_id = ?", string(source), id,
	).Scan(&nickname)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("getting nickname: %w", err)
	}
	return nickname, true, nil
}

// Nicknames returns every nickname for a source keyed by ID.
func (s *preferenceStore) Nicknames(ctx context.Context, source domain.SourceKind) (map[string]string, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT item_id, nickname FROM nicknames WHERE source = ?", string(source))
	if err != nil {
		return nil, fmt.Errorf("querying nicknames: %w", err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var id, nickname string
		if err := rows.Scan(&id, &nickname); err != nil {
			return nil, fmt.Errorf("scanning nickname: %w", err)
		}
		result[id] = nickname
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating nicknames: %w", err)
	}
	return result, nil
}

// UsageCounts returns launch counts for a source keyed by ID.
func (s *preferenceStore) UsageCounts(ctx context.Context, source domain.SourceKind) (map[string]int, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT item_id, launch_count FROM usage_counts WHERE source = ?", string(source))
	if err != nil {
		return nil, fmt.Errorf("querying usage counts: %w", err)
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var id string
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("scanning usage count: %w", err)
		}
		result[id] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating usage counts: %w", err)
	}
	return result, nil
}

// Hide adds an ID to the hidden set for scope. Hiding twice is a no-op.
func (s *preferenceStore) Hide(ctx context.Context, source domain.SourceKind, scope domain.HiddenScope, id string) error {
	if err := validateItem(source, id); err != nil {
		return err
	}
	if !scope.IsValid() {
		return fmt.Errorf("%w: hidden scope %q", domain.ErrInvalidInput, scope)
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO hidden_items (source, scope, item_id) VALUES (?, ?, ?)
		ON CONFLICT(source, scope, item_id) DO NOTHING
	`, string(source), string(scope), id)
	if err != nil {
		return fmt.Errorf("hiding item: %w", err)
	}
	return nil
}

// Unhide removes an ID from the hidden set for scope.
func (s *preferenceStore) Unhide(ctx context.Context, source domain.SourceKind, scope domain.HiddenScope, id string) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM hidden_items WHERE source = ? AND scope = ? AND item_id = ?",
		string(source), string(scope), id)
	if err != nil {
		return fmt.Errorf("unhiding item: %w", err)
	}
	return nil
}

// Pin adds an ID to the pinned set.
func (s *preferenceStore) Pin(ctx context.Context, source domain.SourceKind, id string) error {
	if err := validateItem(source, id); err != nil {
		return err
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO pinned_items (source, item_id) VALUES (?, ?)
		ON CONFLICT(source, item_id) DO NOTHING
	`, string(source), id)
	if err != nil {
		return fmt.Errorf("pinning item: %w", err)
	}
	return nil
}

// Unpin removes an ID from the pinned set.
func (s *preferenceStore) Unpin(ctx context.Context, source domain.SourceKind, id string) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM pinned_items WHERE source = ? AND item_id = ?", string(source), id)
	if err != nil {
		return fmt.Errorf("unpinning item: %w", err)
	}
	return nil
}

// SetNickname stores a nickname. An empty nickname clears it.
func (s *preferenceStore) SetNickname(ctx context.Context, source domain.SourceKind, id, nickname string) error {
	if err := validateItem(source, id); err != nil {
		return err
	}

	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		_, err := s.store.db.ExecContext(ctx,
			"DELETE FROM nicknames WHERE source = ? AND item_id = ?", string(source), id)
		if err != nil {
			return fmt.Errorf("clearing nickname: %w", err)
		}
		return nil
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO nicknames (source, item_id, nickname) VALUES (?, ?, ?)
		ON CONFLICT(source, item_id) DO UPDATE SET
			nickname = excluded.nickname,
			updated_at = CURRENT_TIMESTAMP
	`, string(source), id, nickname)
	if err != nil {
		return fmt.Errorf("saving nickname: %w", err)
	}
	return nil
}

// RecordUsage increments the launch count for an ID.
func (s *preferenceStore) RecordUsage(ctx context.Context, source domain.SourceKind, id string) error {
	if err := validateItem(source, id); err != nil {
		return err
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO usage_counts (source, item_id, launch_count, last_launched)
		VALUES (?, ?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT(source, item_id) DO UPDATE SET
			launch_count = launch_count + 1,
			last_launched = CURRENT_TIMESTAMP
	`, string(source), id)
	if err != nil {
		return fmt.Errorf("recording usage: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// querySet collects the single item_id column of a query into a set.
func (s *preferenceStore) querySet(ctx context.Context, what, query string, args ...any) (map[string]struct{}, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", what, err)
	}
	defer rows.Close()

	result := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", what, err)
		}
		result[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", what, err)
	}
	return result, nil
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
