// Package repositories implements SQLite persistence for the reading log.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// Sessions support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [SessionRepository] : One row per presenter run
//   - [ViewRepository] : Chapter views recorded within a session
//   - [Journal] : Append-only recorder the presenter writes timeline changes to
//
// Sequence numbers provide stable, human-readable ordering (e.g., session #42) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
