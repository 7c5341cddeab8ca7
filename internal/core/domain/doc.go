// Package domain defines the core business entities for the Sercha launcher.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Candidate: A searchable snapshot of an app, contact, file or setting
//   - Match: A candidate paired with its tier or fuzzy score for one query
//   - SearchEngine: An external engine the query can be handed off to
//   - LauncherSettings: User configuration that shapes ranking and fan-out
//   - SecondaryState: The published state of the secondary search pipeline
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
