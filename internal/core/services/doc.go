// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Ranking itself lives in the ranking package; services own the mutable
// state around it (snapshots, nickname caches, query versions) and every
// piece of that state belongs to exactly one service instance.
package services
