package youtube_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tube-digest/youtube"
)

// watchPage renders a minimal watch page whose player response carries the
// given captions object (raw JSON, or empty for none).
func watchPage(captionsJSON string) string {
	player := `{"videoDetails":{"videoId":"test"}`
	if captionsJSON != "" {
		player += `,"captions":` + captionsJSON
	}
	player += `}`
	return `<!doctype html><html><head><script>var something = 1;</script></head>` +
		`<body><script>var ytInitialPlayerResponse = ` + player + `;var other = {"a":1};</script></body></html>`
}

func captionsWithTracks(tracks ...map[string]any) string {
	payload := map[string]any{
		"playerCaptionsTracklistRenderer": map[string]any{
			"captionTracks": tracks,
		},
	}
	b, _ := json.Marshal(payload)
	return string(b)
}

const timedtextXML = `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0" dur="2.5">hello everyone</text>
  <text start="2.5" dur="3.1">welcome to the &amp;#39;show&amp;#39;</text>
  <text start="5.6" dur="1.0">  </text>
  <text start="6.6" dur="2.0">today we talk about Go</text>
</transcript>`

func newTestServer(t *testing.T, captionsJSON string, timedtext string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, watchPage(captionsJSON))
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		fmt.Fprint(w, timedtext)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchTranscript(t *testing.T) {
	captions := captionsWithTracks(map[string]any{
		"baseUrl":      "/api/timedtext?lang=en",
		"name":         map[string]any{"simpleText": "English"},
		"languageCode": "en",
	})
	srv := newTestServer(t, captions, timedtextXML)

	client := youtube.NewClientWithBaseURL(srv.Client(), srv.URL, []string{"en"})
	transcript, err := client.Fetch(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, "dQw4w9WgXcQ", transcript.VideoID)
	assert.Equal(t, "English", transcript.Language)
	assert.Equal(t, "en", transcript.LanguageCode)
	assert.False(t, transcript.IsGenerated)

	// Whitespace-only lines are dropped, entities fully unescaped.
	require.Len(t, transcript.Segments, 3)
	assert.Equal(t, 0.0, transcript.Segments[0].Start)
	assert.Equal(t, 2.5, transcript.Segments[0].Duration)
	assert.Equal(t, "hello everyone", transcript.Segments[0].Text)
	assert.Equal(t, "welcome to the 'show'", transcript.Segments[1].Text)
	assert.Equal(t, 6.6, transcript.Segments[2].Start)

	assert.Equal(t, "hello everyone welcome to the 'show' today we talk about Go", transcript.FullText())
}

func TestFetchTranscriptGeneratedTrack(t *testing.T) {
	captions := captionsWithTracks(map[string]any{
		"baseUrl":      "/api/timedtext?lang=en",
		"name":         map[string]any{"simpleText": "English (auto-generated)"},
		"languageCode": "en",
		"kind":         "asr",
	})
	srv := newTestServer(t, captions, timedtextXML)

	client := youtube.NewClientWithBaseURL(srv.Client(), srv.URL, nil)
	transcript, err := client.Fetch(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.True(t, transcript.IsGenerated)
}

func TestFetchTranscriptLanguagePreference(t *testing.T) {
	captions := captionsWithTracks(
		map[string]any{
			"baseUrl":      "/api/timedtext?lang=ko",
			"name":         map[string]any{"simpleText": "Korean"},
			"languageCode": "ko",
		},
		map[string]any{
			"baseUrl":      "/api/timedtext?lang=en-US",
			"name":         map[string]any{"simpleText": "English"},
			"languageCode": "en-US",
		},
	)
	srv := newTestServer(t, captions, timedtextXML)

	// Prefix match: "en" preference picks the en-US track over the first.
	client := youtube.NewClientWithBaseURL(srv.Client(), srv.URL, []string{"en"})
	transcript, err := client.Fetch(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "en-US", transcript.LanguageCode)

	// No preference falls back to the first listed track.
	client = youtube.NewClientWithBaseURL(srv.Client(), srv.URL, nil)
	transcript, err = client.Fetch(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "ko", transcript.LanguageCode)
}

func TestFetchTranscriptDisabled(t *testing.T) {
	// No captions object at all: the uploader disabled captions.
	srv := newTestServer(t, "", timedtextXML)

	client := youtube.NewClientWithBaseURL(srv.Client(), srv.URL, nil)
	_, err := client.Fetch(context.Background(), "dQw4w9WgXcQ")
	assert.ErrorIs(t, err, youtube.ErrTranscriptsDisabled)
}

func TestFetchTranscriptNoTracks(t *testing.T) {
	srv := newTestServer(t, captionsWithTracks(), timedtextXML)

	client := youtube.NewClientWithBaseURL(srv.Client(), srv.URL, nil)
	_, err := client.Fetch(context.Background(), "dQw4w9WgXcQ")
	assert.ErrorIs(t, err, youtube.ErrNoTranscript)
}

func TestFetchTranscriptEmptyTimedText(t *testing.T) {
	captions := captionsWithTracks(map[string]any{
		"baseUrl":      "/api/timedtext?lang=en",
		"name":         map[string]any{"simpleText": "English"},
		"languageCode": "en",
	})
	srv := newTestServer(t, captions, `<transcript></transcript>`)

	client := youtube.NewClientWithBaseURL(srv.Client(), srv.URL, nil)
	_, err := client.Fetch(context.Background(), "dQw4w9WgXcQ")
	assert.ErrorIs(t, err, youtube.ErrNoTranscript)
}

func TestFetchTranscriptServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := youtube.NewClientWithBaseURL(srv.Client(), srv.URL, nil)
	_, err := client.Fetch(context.Background(), "dQw4w9WgXcQ")
	assert.ErrorIs(t, err, youtube.ErrTranscriptService)
}

func TestFetchTranscriptTimedTextError(t *testing.T) {
	captions := captionsWithTracks(map[string]any{
		"baseUrl":      "/api/timedtext?lang=en",
		"name":         map[string]any{"simpleText": "English"},
		"languageCode": "en",
	})
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, watchPage(captions))
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := youtube.NewClientWithBaseURL(srv.Client(), srv.URL, nil)
	_, err := client.Fetch(context.Background(), "dQw4w9WgXcQ")
	assert.ErrorIs(t, err, youtube.ErrTranscriptService)
}
