package mcp

import (
	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driving"
)

// Ports are the core services the server exposes. Only Search is required;
// tools and resources backed by a nil port report errToolUnavailable.
type Ports struct {
	Search  driving.SearchService
	Engines driving.EngineService
	Answer  driving.AnswerService

	// Sources backs the per-source item resources.
	Sources map[domain.SourceKind]driving.SourceSearch
}

// Validate reports a missing required port.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
