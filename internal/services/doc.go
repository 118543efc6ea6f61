// Package services implements the [Catalog] query and command layer over the SQLite repositories.
//
// # Lifecycle
//
// [OpenCatalog] opens the database, applies pool settings and migrations, and returns a
// [CatalogService] that owns the connection pool until [CatalogService.Close]. [NewCatalogService]
// wraps an already-open [sql.DB] for callers (and tests) that manage the pool themselves.
// No package-level state is kept.
//
// # Error Handling
//
// Failures are reported with sentinel errors from the shared package:
//   - [shared.ErrQueryFailed] : the store is unreachable or a statement failed
//   - [shared.ErrSongNotFound] : CreateMix referenced a song that does not exist, or GetSong missed
//   - [shared.ErrMixNotFound] : GetMix missed
//
// Store failures are logged with the operation name only. Search terms and notes never reach the log.
// Nothing is retried.
package services
