package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown source or engine type.
	ErrUnsupportedType = errors.New("unsupported type")

	// Engine Errors.

	// ErrNoBrowserURL indicates the engine answers in-app and has no URL form.
	ErrNoBrowserURL = errors.New("engine has no browser URL")

	// ErrShortcutInvalid indicates a shortcut code is too short after normalisation.
	ErrShortcutInvalid = errors.New("shortcut code must have at least 2 letters or digits")

	// ErrShortcutInUse indicates another engine already owns the shortcut code.
	ErrShortcutInUse = errors.New("shortcut code already in use")

	// ErrShortcutAmbiguous indicates the code is a strict prefix of another engine's code.
	ErrShortcutAmbiguous = errors.New("shortcut code is a prefix of another shortcut")

	// Provider Errors.

	// ErrProviderUnavailable indicates a candidate provider could not be read.
	// The previous snapshot is kept when this happens.
	ErrProviderUnavailable = errors.New("candidate provider unavailable")

	// ErrRateLimited indicates the remote rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrAnswerUnavailable indicates the direct-answer API is not configured.
	ErrAnswerUnavailable = errors.New("direct answer service unavailable")
)
