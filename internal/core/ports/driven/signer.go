package driven

import (
	"github.com/clipseek/clipseek-cli/internal/core/domain"
)

// PlaybackSigner produces signed playback URLs for videos in the
// catalog's storage container.
type PlaybackSigner interface {
	// SignPlaybackURL returns a URL that grants read access to the
	// video and starts playback at the given offset.
	SignPlaybackURL(videoURL string, start domain.MediaTime) (string, error)
}
