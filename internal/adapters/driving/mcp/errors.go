// Package mcp provides an MCP (Model Context Protocol) server adapter for
// the launcher. It lets AI assistants search apps, contacts, files and
// settings, resolve engine URLs and ask the direct-answer engine.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// errToolUnavailable is returned by tools whose port was not provided.
var errToolUnavailable = errors.New("mcp: tool not available")
