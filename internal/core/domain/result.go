package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MediaTime is an offset into a video. The retrieval service represents
// offsets as "HH:MM:SS.fffffff" strings; MediaTime keeps them as a
// non-negative duration.
type MediaTime time.Duration

// ParseMediaTime parses a service timestamp of the form "HH:MM:SS" or
// "HH:MM:SS.fffffff". Negative offsets are rejected.
func ParseMediaTime(s string) (MediaTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("parse media time %q: %w", s, ErrInvalidInput)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("parse media time %q: %w", s, ErrInvalidInput)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("parse media time %q: %w", s, ErrInvalidInput)
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, fmt.Errorf("parse media time %q: %w", s, ErrInvalidInput)
	}

	if hours < 0 || minutes < 0 || seconds < 0 {
		return 0, fmt.Errorf("negative media time %q: %w", s, ErrInvalidInput)
	}

	total := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds*float64(time.Second))
	return MediaTime(total), nil
}

// Duration returns the offset as a time.Duration.
func (t MediaTime) Duration() time.Duration {
	return time.Duration(t)
}

// Seconds returns the offset in whole seconds, as used in playback URLs.
func (t MediaTime) Seconds() int {
	return int(time.Duration(t).Seconds())
}

// String formats the offset in the service's "HH:MM:SS.fffffff" form.
func (t MediaTime) String() string {
	d := time.Duration(t)
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)
	d -= time.Duration(minutes) * time.Minute
	seconds := d.Seconds()
	return fmt.Sprintf("%02d:%02d:%010.7f", hours, minutes, seconds)
}

// SearchResult is a single match returned by the retrieval service.
// Results are owned by the service; clipseek renders them in the order
// received.
type SearchResult struct {
	// VideoID identifies the matched video document.
	VideoID string

	// Kind is the document kind as reported by the service.
	Kind string

	// Start is where the matching interval begins.
	Start MediaTime

	// End is where the matching interval ends.
	End MediaTime

	// Best is the single most relevant moment within the interval.
	Best MediaTime

	// Relevance is the service-assigned relevance score.
	Relevance float64

	// PlaybackURL is a signed URL that starts playback at Best.
	// Empty when no playback signer is configured.
	PlaybackURL string
}
