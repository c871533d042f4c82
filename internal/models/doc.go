// Package models defines the data types shared by the matching engine, its collaborators, and the outer surfaces.
//
// The package contains three categories of types:
//
// 1. Inputs: immutable descriptions of the songs to match
//   - [TrackDescriptor] : title, artists and optional duration of a source track
//
// 2. Intermediate values: search results and their scores, discarded once a track is resolved
//   - [CandidateVideo] : one video returned by the search backend
//   - [ScoredCandidate] : a candidate with its score and tie-break facts
//
// 3. Outputs: one record per input track
//   - [MatchOutcome] : link, matched metadata, [Confidence] and [ReasonCode]
//
// A [MatchOutcome] is never an error. Failures are reported through [ReasonCode] with a nil URL and confidence.
// Use [NewMatchedOutcome] and [NewEmptyOutcome] to build outcomes so the URL/confidence coupling always holds.
package models
