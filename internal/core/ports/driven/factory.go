package driven

import "github.com/custodia-labs/sercha-launcher/internal/core/domain"

// ProviderBuilder creates a CandidateProvider from provider settings.
type ProviderBuilder func(settings domain.ProviderSettings) (CandidateProvider, error)

// ProviderFactory creates candidate providers for each source.
// It maintains a registry of sources and their builders.
type ProviderFactory interface {
	// Create returns the provider for source.
	// Returns ErrUnsupportedType if the source has no builder.
	Create(source domain.SourceKind, settings domain.ProviderSettings) (CandidateProvider, error)

	// Register adds a provider builder for source, replacing any existing one.
	Register(source domain.SourceKind, builder ProviderBuilder)

	// SupportedSources returns every registered source in display order.
	SupportedSources() []domain.SourceKind
}
