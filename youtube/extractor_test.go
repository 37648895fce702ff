package youtube_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tube-digest/youtube"
)

func TestExtractVideoIDKnownShapes(t *testing.T) {
	// All shapes referencing the same video must yield the same id.
	cases := map[string]string{
		"watch":              "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"watch no www":       "https://youtube.com/watch?v=dQw4w9WgXcQ",
		"watch extra params": "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s&list=PL123",
		"short link":         "https://youtu.be/dQw4w9WgXcQ",
		"short link params":  "https://youtu.be/dQw4w9WgXcQ?t=42",
		"embed":              "https://www.youtube.com/embed/dQw4w9WgXcQ",
		"shorts":             "https://www.youtube.com/shorts/dQw4w9WgXcQ",
		"mobile host":        "https://m.youtube.com/watch?v=dQw4w9WgXcQ",
		"whitespace":         "  https://www.youtube.com/watch?v=dQw4w9WgXcQ  ",
	}

	for name, url := range cases {
		t.Run(name, func(t *testing.T) {
			id, err := youtube.ExtractVideoID(url)
			assert.NoError(t, err)
			assert.Equal(t, "dQw4w9WgXcQ", id)
		})
	}
}

func TestExtractVideoIDShortID(t *testing.T) {
	// Watch URLs pass the v parameter through as-is, whatever its length.
	id, err := youtube.ExtractVideoID("https://www.youtube.com/watch?v=abc123")
	assert.NoError(t, err)
	assert.Equal(t, "abc123", id)
}

func TestExtractVideoIDMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":           "",
		"whitespace only": "   ",
		"not a url":       "just some words",
		"wrong site":      "https://example.com/page",
		"no video path":   "https://www.youtube.com/account",
	}

	for name, url := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := youtube.ExtractVideoID(url)
			assert.ErrorIs(t, err, youtube.ErrInvalidURL)
		})
	}
}

func TestExtractVideoIDFallbackScan(t *testing.T) {
	// An 11 character id after a path separator is recognized even on
	// hosts the strict parsing does not know.
	id, err := youtube.ExtractVideoID("https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ")
	assert.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", id)
}
