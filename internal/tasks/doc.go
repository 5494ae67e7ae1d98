// Package tasks orchestrates bulk Chinook operations with real-time progress reporting.
//
// # Core Operations
//
// [ImportEngine.ImportAlbums] loads album rows from a CSV source:
//   - Parses the source up front, malformed records become per-line failures
//   - Validates every title and artist ID before it reaches the database
//   - Rejects rows whose artist does not exist
//   - Paces inserts with a token bucket so bulk loads stay polite
//   - Records one summary entry in the activity log per run
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Implementation
//
// [ImportEngine] depends on:
//   - [repositories.AlbumRepository] : validated album writes
//   - [repositories.ArtistRepository] : existence checks before each insert
//   - [repositories.ActivityRepository] : run summaries
package tasks
