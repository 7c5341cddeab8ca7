package connectors

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/sercha-launcher/internal/connectors/catalog"
	"github.com/custodia-labs/sercha-launcher/internal/connectors/desktop"
	"github.com/custodia-labs/sercha-launcher/internal/connectors/filesystem"
	"github.com/custodia-labs/sercha-launcher/internal/connectors/vcard"
	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.ProviderFactory = (*Factory)(nil)

// Factory builds candidate providers from provider settings.
type Factory struct {
	mu       sync.RWMutex
	builders map[domain.SourceKind]driven.ProviderBuilder
}

// NewFactory creates a factory with the built-in providers registered.
func NewFactory() *Factory {
	f := &Factory{builders: make(map[domain.SourceKind]driven.ProviderBuilder)}
	f.registerBuiltinProviders()
	return f
}

func (f *Factory) registerBuiltinProviders() {
	f.Register(domain.SourceApps, func(s domain.ProviderSettings) (driven.CandidateProvider, error) {
		return desktop.New(s.DesktopDirs), nil
	})
	f.Register(domain.SourceContacts, func(s domain.ProviderSettings) (driven.CandidateProvider, error) {
		return vcard.New(s.ContactsPath), nil
	})
	f.Register(domain.SourceFiles, func(s domain.ProviderSettings) (driven.CandidateProvider, error) {
		return filesystem.New(s.FileRoots, s.FileMaxDepth), nil
	})
	f.Register(domain.SourceSettings, func(s domain.ProviderSettings) (driven.CandidateProvider, error) {
		return catalog.New(s.SettingsCommand), nil
	})
}

// Register adds a provider builder for source.
func (f *Factory) Register(source domain.SourceKind, builder driven.ProviderBuilder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[source] = builder
}

// Create returns the provider for source.
func (f *Factory) Create(source domain.SourceKind, settings domain.ProviderSettings) (driven.CandidateProvider, error) {
	f.mu.RLock()
	builder, ok := f.builders[source]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, source)
	}

	provider, err := builder(settings)
	if err != nil {
		return nil, fmt.Errorf("create %s provider: %w", source, err)
	}
	return provider, nil
}

// SupportedSources returns every registered source in display order.
func (f *Factory) SupportedSources() []domain.SourceKind {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var out []domain.SourceKind
	for _, kind := range domain.AllSources() {
		if _, ok := f.builders[kind]; ok {
			out = append(out, kind)
		}
	}
	return out
}
