// Package repositories implements SQLite persistence for songs and mixes.
//
// Key Implementations:
//   - [SongRepository] : Read access to imported songs plus batch insertion for the library importer
//   - [MixRepository] : Mix CRUD and the song-term search that joins both song slots
//
// All queries bind user input as parameters. Search clauses are assembled by [matchClause] from
// constant column names, and the term itself is turned into an escaped LIKE pattern by [likePattern],
// so "%" and "_" in a search term match literally. Matching runs through the casefold() SQL
// function registered by [shared.NewDatabase], which makes substring search case-insensitive
// beyond ASCII.
//
// Rows are scanned into [models] values before they leave this package.
package repositories
