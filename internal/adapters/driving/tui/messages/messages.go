// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

// SecondaryUpdated carries a state published by the secondary search.
type SecondaryUpdated struct {
	State domain.SecondaryState
}

// PinnedLoaded carries the pinned apps shown for an empty query.
type PinnedLoaded struct {
	Pinned []domain.Candidate
}

// AnswerUpdated carries the result of a direct-answer request.
type AnswerUpdated struct {
	State domain.AnswerState
}

// Launched is sent after a row was opened.
type Launched struct {
	Title string
	Err   error
}

// Copied is sent after text was copied to the clipboard.
type Copied struct {
	Title string
	Err   error
}

// PreferenceChanged is sent after a pin or hide was applied.
type PreferenceChanged struct {
	Action string
	Title  string
	Err    error
}

// ErrorOccurred is sent when an error needs to be displayed.
type ErrorOccurred struct {
	Err error
}
