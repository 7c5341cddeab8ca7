package tui

import "errors"

// ErrMissingAppsSource is returned when the apps manager is not provided.
var ErrMissingAppsSource = errors.New("tui: apps source is required")

// ErrMissingSecondarySearch is returned when the secondary search is not provided.
var ErrMissingSecondarySearch = errors.New("tui: secondary search is required")

// ErrMissingEngineService is returned when the engine service is not provided.
var ErrMissingEngineService = errors.New("tui: engine service is required")
