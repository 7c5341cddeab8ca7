// Package tui provides the interactive launcher for the terminal.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import "github.com/custodia-labs/sercha-launcher/internal/core/ports/driving"

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Apps ranks apps on every keystroke.
	Apps driving.SourceSearch

	// Secondary debounces contacts, files and settings searches.
	Secondary driving.SecondarySearch

	// Engines resolves shortcuts and engine URLs.
	Engines driving.EngineService

	// Answer asks the direct-answer engine. Optional.
	Answer driving.AnswerService

	// Preferences records launches, pins and hides. Optional.
	Preferences driving.PreferenceService

	// Settings supplies the result limit. Optional.
	Settings driving.SettingsService

	// Actions opens launched targets and copies text. Optional; nil only
	// records launches.
	Actions driving.ResultActionService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Apps == nil {
		return ErrMissingAppsSource
	}
	if p.Secondary == nil {
		return ErrMissingSecondarySearch
	}
	if p.Engines == nil {
		return ErrMissingEngineService
	}
	return nil
}
