// Package server exposes the batch matcher over HTTP.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
// [BasicRouter] registers method-qualified patterns ("POST /api/match") on an [http.ServeMux],
// so requests with the wrong method receive 405 from the mux itself.
//
// [Middleware] wraps handlers in reverse order (last added executes first).
//
// # Endpoints
//
//	POST /api/match   {"tracks":[{"title","artists","durationMs"}]} -> {"results":[MatchOutcome...]}
//	GET  /health      {"status":"ok","backend":"..."}
//
// The match endpoint enforces the caller contract before the matcher sees a batch:
// at most MaxBatchSize tracks, each with a non-empty title and artists. Violations get 400.
// Individual misses never fail a request; they are reported through each outcome's reasonCode.
//
// # Middleware
//
//   - [RequestLogger] assigns an X-Request-ID and logs method, path, status and latency
//   - [Recoverer] turns handler panics into 500 responses
//   - [RateLimiter] applies a per-IP token bucket and answers 429 with Retry-After
package server
