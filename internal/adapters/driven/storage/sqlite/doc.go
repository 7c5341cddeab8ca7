// Package sqlite provides a SQLite-based implementation of the preference store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It persists everything the launcher
// remembers about candidates:
//
//   - hidden items, per source and scope (suggestions or results)
//   - pinned items, per source
//   - nicknames, per source and item
//   - launch counts, per source and item
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.sercha-launcher/data/preferences.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
