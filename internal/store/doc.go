// Package store provides SQLite-backed durable storage for the ANDY
// logbook: the settings singleton, students, daily records and daily
// cases.
//
// The store is a plain key-value engine over four tables:
//   - Put* upserts by primary identifier with no constraint checking
//   - Get* returns an entity by primary identifier, or absent
//   - All* returns a whole collection, order unspecified
//   - RecordByStudentDate / CaseByGroupDate query the secondary
//     indexes on the logical keys (studentId, date) and (group, date)
//
// Logical-key uniqueness is NOT enforced here; the reconciliation
// layer (internal/logbook) keeps one row per logical key via its
// resolve-then-save protocol. The secondary-index lookups return a
// ConstraintError when they find more than one match, which indicates
// a reconciliation bug or a backup import that collided with existing
// rows.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
//
// Schema evolution happens through PRAGMA user_version; Open applies
// migrations idempotently and only when the stored version is behind.
package store
