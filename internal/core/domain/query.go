package domain

import "strings"

const unknownDescription = "Unknown"

// QueryMode defines which feature of the indexed videos a query matches
// against: visual content (frames) or spoken content (audio transcript).
type QueryMode string

// Available query modes.
const (
	// QueryModeVisual matches the query against video frames.
	QueryModeVisual QueryMode = "visual"

	// QueryModeSpeech matches the query against spoken content.
	QueryModeSpeech QueryMode = "speech"
)

// IsValid returns true if the query mode is recognised.
func (m QueryMode) IsValid() bool {
	switch m {
	case QueryModeVisual, QueryModeSpeech:
		return true
	default:
		return false
	}
}

// FeatureFilter returns the feature filter value the retrieval service
// expects for this mode.
func (m QueryMode) FeatureFilter() string {
	switch m {
	case QueryModeVisual:
		return "vision"
	case QueryModeSpeech:
		return "speech"
	default:
		return ""
	}
}

// String returns the string representation.
func (m QueryMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m QueryMode) Description() string {
	switch m {
	case QueryModeVisual:
		return "Visual (match against video frames)"
	case QueryModeSpeech:
		return "Speech (match against spoken content)"
	default:
		return unknownDescription
	}
}

// ParseQueryMode converts user input to a QueryMode.
// Accepts a few common aliases; anything else is invalid.
func ParseQueryMode(s string) (QueryMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "visual", "vision", "v":
		return QueryModeVisual, nil
	case "speech", "spoken", "s":
		return QueryModeSpeech, nil
	default:
		return "", ErrInvalidQueryMode
	}
}

// AllQueryModes returns all supported query modes.
func AllQueryModes() []QueryMode {
	return []QueryMode{QueryModeVisual, QueryModeSpeech}
}

// Query is a single search request against the video catalog.
// It is constructed per user request and discarded after rendering.
type Query struct {
	// Mode selects visual or speech matching.
	Mode QueryMode

	// Text is the query content, forwarded to the service unmodified.
	Text string
}

// Validate checks the query locally. It must pass before any network
// call is made on the query's behalf.
func (q Query) Validate() error {
	if !q.Mode.IsValid() {
		return ErrInvalidQueryMode
	}
	if strings.TrimSpace(q.Text) == "" {
		return ErrEmptyQuery
	}
	return nil
}

// SearchOptions configures a search request.
type SearchOptions struct {
	// Limit is the maximum number of results. Defaults to 10.
	Limit int

	// Offset is the number of results to skip.
	Offset int

	// SignPlayback attaches a signed playback URL to each result
	// when a playback signer is configured.
	SignPlayback bool
}
