package youtube

import "errors"

// Fetch failures map to distinct errors because each one needs different
// user guidance at the UI boundary.
var (
	// ErrInvalidURL means no recognizable video identifier was found in the
	// input string.
	ErrInvalidURL = errors.New("no recognizable video id in url")

	// ErrTranscriptsDisabled means the uploader turned captions off.
	ErrTranscriptsDisabled = errors.New("captions are disabled for this video")

	// ErrNoTranscript means captions exist as a feature but no track is
	// available in any requested language.
	ErrNoTranscript = errors.New("no captions available for this video")

	// ErrTranscriptService wraps network or service-level failures from the
	// captions provider. Not retried; surfaced directly.
	ErrTranscriptService = errors.New("captions service request failed")
)
