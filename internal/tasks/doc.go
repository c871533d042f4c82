// Package tasks runs the matcher over batches and whole playlists with progress reporting.
//
// # Layers
//
//  1. [Orchestrator.EvaluateBatch] : runs up to N track pipelines at once (default 2) behind a
//     weighted semaphore. Results are indexed by input position, so output order always equals
//     input order. A pipeline that returns an error or panics yields a search_error outcome for
//     its own track only. No retries, no batch-size checks.
//
//  2. [Matcher.MatchBatch] : consults the [repositories.OutcomeCache] per track key, sends only
//     the distinct misses to the orchestrator, and writes each fresh outcome once. search_error
//     outcomes are transient and never cached.
//
//  3. [PlaylistEngine.Run] : fetches a Spotify playlist, splits it into batches of at most
//     max_batch_size tracks, and summarizes outcomes per reason code.
//
// # Progress Reporting
//
// All operations accept an optional channel of [ProgressUpdate]. Sends use select with default,
// so a slow or absent reader never stalls matching.
//
// # Cancellation
//
// Cancelling the context stops new pipelines from starting. Tracks that never started resolve to
// search_error; outcomes already produced are kept.
package tasks
