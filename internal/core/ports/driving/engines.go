package driving

import (
	"context"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

// EngineService resolves external engines and shortcut codes.
type EngineService interface {
	// BuildSearchURL returns the destination for query on engine.
	// domainOverride replaces the engine's domain when non-empty.
	BuildSearchURL(query string, engine domain.SearchEngine, domainOverride string) (string, error)

	// ResolveShortcut routes a query starting with "<code> " to its engine.
	ResolveShortcut(query string) (*domain.ShortcutMatch, bool)

	// ActiveShortcuts returns the code for each enabled engine.
	ActiveShortcuts() map[domain.SearchEngine]string

	// SetShortcut validates and stores a shortcut code for engine.
	SetShortcut(engine domain.SearchEngine, code string) error

	// EnabledEngines returns the enabled engines in display order.
	EnabledEngines() []domain.EngineDefinition

	// SearchURLs resolves query on every enabled engine with a browser URL.
	SearchURLs(query string) []domain.EngineURL

	// DefaultEngine returns the engine used for plain web search.
	DefaultEngine() domain.SearchEngine
}

// AnswerService asks the direct-answer engine.
type AnswerService interface {
	// Ask fetches an answer for query and returns the resulting state.
	Ask(ctx context.Context, query string) domain.AnswerState

	// Retry re-asks the last failed query.
	Retry(ctx context.Context) domain.AnswerState

	// State returns the latest answer state.
	State() domain.AnswerState
}
