package models

import (
	"encoding/json"
	"fmt"
)

// Confidence is the discrete confidence band of a match.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// ParseConfidence converts a stored or wire value into a [Confidence].
func ParseConfidence(s string) (Confidence, error) {
	switch c := Confidence(s); c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return c, nil
	default:
		return "", fmt.Errorf("unknown confidence %q", s)
	}
}

// ReasonCode explains why an outcome carries the link and confidence it does.
// The string values are stable and visible on the wire.
type ReasonCode string

const (
	ReasonMatched         ReasonCode = "matched"
	ReasonNoResults       ReasonCode = "no_results"
	ReasonLowConfidence   ReasonCode = "low_confidence"
	ReasonNegativeKeyword ReasonCode = "negative_keyword"
	ReasonNoMatch         ReasonCode = "no_match"
	ReasonSearchError     ReasonCode = "search_error"
)

// ReasonCodes lists every reason code in a fixed order.
var ReasonCodes = []ReasonCode{
	ReasonMatched, ReasonLowConfidence, ReasonNoMatch, ReasonNegativeKeyword, ReasonNoResults, ReasonSearchError,
}

// ParseReasonCode converts a stored or wire value into a [ReasonCode].
func ParseReasonCode(s string) (ReasonCode, error) {
	for _, rc := range ReasonCodes {
		if string(rc) == s {
			return rc, nil
		}
	}
	return "", fmt.Errorf("unknown reason code %q", s)
}

// MatchOutcome is the result for one [TrackDescriptor].
//
// Confidence is non-nil iff YouTubeURL is non-nil.
// Reason is [ReasonMatched] for HIGH/MEDIUM and [ReasonLowConfidence] for LOW.
type MatchOutcome struct {
	YouTubeURL     *string     `json:"youtubeUrl"`
	MatchedTitle   *string     `json:"matchedTitle"`
	MatchedChannel *string     `json:"matchedChannel"`
	Confidence     *Confidence `json:"confidence"`
	Reason         ReasonCode  `json:"reasonCode"`
}

// NewMatchedOutcome builds an outcome that carries a link.
// The reason code is derived from the confidence band.
func NewMatchedOutcome(c CandidateVideo, confidence Confidence) MatchOutcome {
	url, title, channel := c.URL, c.Title, c.ChannelName
	reason := ReasonMatched
	if confidence == ConfidenceLow {
		reason = ReasonLowConfidence
	}
	return MatchOutcome{
		YouTubeURL:     &url,
		MatchedTitle:   &title,
		MatchedChannel: &channel,
		Confidence:     &confidence,
		Reason:         reason,
	}
}

// NewEmptyOutcome builds an outcome without a link for the given reason.
func NewEmptyOutcome(reason ReasonCode) MatchOutcome {
	return MatchOutcome{Reason: reason}
}

// Matched reports whether the outcome carries a link (any confidence band).
func (o MatchOutcome) Matched() bool {
	return o.YouTubeURL != nil
}

// URL returns the link or an empty string.
func (o MatchOutcome) URL() string {
	return deref(o.YouTubeURL)
}

// Title returns the matched video title or an empty string.
func (o MatchOutcome) Title() string {
	return deref(o.MatchedTitle)
}

// Channel returns the matched channel name or an empty string.
func (o MatchOutcome) Channel() string {
	return deref(o.MatchedChannel)
}

// ConfidenceString returns the confidence band or an empty string.
func (o MatchOutcome) ConfidenceString() string {
	if o.Confidence == nil {
		return ""
	}
	return string(*o.Confidence)
}

// Validate checks the URL/confidence/reason coupling.
func (o MatchOutcome) Validate() error {
	if (o.Confidence == nil) != (o.YouTubeURL == nil) {
		return fmt.Errorf("confidence and url must both be set or both be nil")
	}
	if o.Confidence == nil {
		switch o.Reason {
		case ReasonMatched, ReasonLowConfidence:
			return fmt.Errorf("reason %s requires a url", o.Reason)
		}
		return nil
	}
	switch *o.Confidence {
	case ConfidenceHigh, ConfidenceMedium:
		if o.Reason != ReasonMatched {
			return fmt.Errorf("confidence %s requires reason %s, got %s", *o.Confidence, ReasonMatched, o.Reason)
		}
	case ConfidenceLow:
		if o.Reason != ReasonLowConfidence {
			return fmt.Errorf("confidence %s requires reason %s, got %s", *o.Confidence, ReasonLowConfidence, o.Reason)
		}
	default:
		return fmt.Errorf("unknown confidence %q", *o.Confidence)
	}
	return nil
}

// UnmarshalJSON decodes an outcome and rejects records that break the url/confidence coupling.
func (o *MatchOutcome) UnmarshalJSON(data []byte) error {
	type alias MatchOutcome
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if _, err := ParseReasonCode(string(a.Reason)); err != nil {
		return err
	}
	out := MatchOutcome(a)
	if err := out.Validate(); err != nil {
		return err
	}
	*o = out
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
