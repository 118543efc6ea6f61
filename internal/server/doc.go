// Package server exposes the song and mix catalog over HTTP.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns ("GET /mixes/{id}").
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// # Catalog Routes
//
// [CatalogHandler] serves JSON over [services.Catalog]:
//
//	GET    /health
//	GET    /songs?q=term
//	GET    /songs/{id}
//	GET    /mixes?q=term
//	GET    /mixes/{id}
//	POST   /mixes          {"first_song_id": 1, "second_song_id": 2, "notes": "..."}
//	PATCH  /mixes/{id}     {"notes": "..."}
//	DELETE /mixes/{id}
//
// Updating or deleting a mix that does not exist answers 204 like any other successful mutation.
//
// # Middleware
//
//   - [RequestID] tags each request with an X-Request-ID (generated when the client sends none)
//   - [Logging] writes one access log line per request
//   - [RateLimit] answers 429 once the token bucket is empty
//   - [Recover] turns handler panics into 500 responses
package server
