// Package repositories implements SQLite persistence for the Chinook tools.
//
// All statements flow through [Executor], which binds values as parameters
// and retries a bounded number of times when SQLite reports the database
// busy or locked. Identifiers (table and column names) cannot be bound, so
// they are validated against [models.Tables] or the live schema before being
// interpolated.
//
// Key Implementations:
//   - [Executor] : Statement runner with a transient-error retry budget
//   - [AlbumRepository] : Album CRUD, search, and existence checks
//   - [ArtistRepository] : Artist lookups backing album writes
//   - [TableBrowser] : Schema-driven access to any Chinook table
//   - [ActivityRepository] : Append-only audit log of committed writes
package repositories
