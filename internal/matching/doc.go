// Package matching decides which YouTube video, if any, is the same song as a source track.
//
// # Pipeline
//
// For one [models.TrackDescriptor] the [Engine] runs:
//
//  1. [Queries] : ordered search queries, most specific first
//  2. [Searcher] : queries are tried strictly in order until one returns results; an erroring query is skipped
//  3. [Filter] : drops denylisted titles and implausible durations from the top [MaxCandidates] results
//  4. [Score] : weighted signals summed to a 0-100 score
//  5. [Best] : total order over scored candidates, see [Compare]
//  6. [Policy.Classify] : maps the winning score to a confidence band or no match
//
// Every step after the search is pure: scoring the same pair twice yields the same result.
//
// # Scoring
//
//	title similarity     40  token-set ratio of "{title} {primary artist}" vs the video title
//	duration match       25  |track - video| <= 5s
//	artist verification  15  partial ratio > 80 against the video title or channel
//	official channel     10  vevo, "- topic", official, or token-set(artist, channel) > 85
//	positive keyword      5  official, audio, music video, vevo in the title
//	popularity            5  > 10M views (2.5 for > 1M)
//
// # Outcomes
//
// A query whose results are all filtered resolves to negative_keyword without trying later queries.
// When no query yields results the track resolves to no_results, or to search_error when every query failed.
package matching
