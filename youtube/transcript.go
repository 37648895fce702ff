package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	stdhtml "html"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"tube-digest/cmd/api/httpclient"
)

const defaultBaseURL = "https://www.youtube.com"

// Segment is one timestamped caption line.
type Segment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// Transcript is the ordered caption sequence for one video. Segment order
// follows start time; ordering is guaranteed by the captions service and
// not re-validated here.
type Transcript struct {
	VideoID      string    `json:"video_id"`
	Language     string    `json:"language"`
	LanguageCode string    `json:"language_code"`
	IsGenerated  bool      `json:"is_generated"`
	Segments     []Segment `json:"segments"`
}

// FullText joins all segment texts with single spaces.
func (t *Transcript) FullText() string {
	parts := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		if s := strings.TrimSpace(seg.Text); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Client fetches caption transcripts from the captions service.
type Client struct {
	base      *httpclient.BaseClient
	languages []string
}

// NewClient builds a Client against the real service with the given caption
// language preference order. Empty preferences accept whatever track exists.
func NewClient(languages []string) *Client {
	return &Client{
		base:      httpclient.NewBaseClient(defaultBaseURL),
		languages: languages,
	}
}

// NewClientWithBaseURL targets an alternate endpoint. Used by tests.
func NewClientWithBaseURL(httpClient *http.Client, baseURL string, languages []string) *Client {
	return &Client{
		base:      httpclient.NewBaseClientWithClient(httpClient, baseURL),
		languages: languages,
	}
}

// playerResponse is the slice of the watch-page player JSON this client
// cares about.
type playerResponse struct {
	Captions *struct {
		Renderer *struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL string `json:"baseUrl"`
	Name    struct {
		SimpleText string `json:"simpleText"`
	} `json:"name"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// timedtext mirrors the captions XML payload:
// <transcript><text start="1.2" dur="3.4">line</text>...</transcript>
type timedtext struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start float64 `xml:"start,attr"`
		Dur   float64 `xml:"dur,attr"`
		Body  string  `xml:",chardata"`
	} `xml:"text"`
}

// Fetch retrieves the ordered transcript for a video id.
// Error mapping: captions feature absent -> ErrTranscriptsDisabled, no
// usable track or zero segments -> ErrNoTranscript, anything network or
// payload shaped -> wrapped ErrTranscriptService.
func (c *Client) Fetch(ctx context.Context, videoID string) (*Transcript, error) {
	if videoID == "" {
		return nil, ErrInvalidURL
	}

	page, err := c.fetchWatchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}

	player, err := playerResponseFromPage(page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranscriptService, err)
	}
	if player.Captions == nil || player.Captions.Renderer == nil {
		return nil, ErrTranscriptsDisabled
	}
	tracks := player.Captions.Renderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, ErrNoTranscript
	}

	track := pickTrack(tracks, c.languages)

	segments, err := c.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, ErrNoTranscript
	}

	return &Transcript{
		VideoID:      videoID,
		Language:     track.Name.SimpleText,
		LanguageCode: track.LanguageCode,
		IsGenerated:  track.Kind == "asr",
		Segments:     segments,
	}, nil
}

func (c *Client) fetchWatchPage(ctx context.Context, videoID string) (string, error) {
	query := url.Values{}
	query.Set("v", videoID)
	req, err := c.base.NewRequest(ctx, http.MethodGet, "/watch", query, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscriptService, err)
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.base.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscriptService, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: watch page returned status %d", ErrTranscriptService, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscriptService, err)
	}
	return string(body), nil
}

func (c *Client) fetchTimedText(ctx context.Context, trackURL string) ([]Segment, error) {
	resolved, err := c.resolveTrackURL(trackURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranscriptService, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resolved, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranscriptService, err)
	}
	resp, err := c.base.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranscriptService, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: timedtext returned status %d", ErrTranscriptService, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranscriptService, err)
	}

	var doc timedtext
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: decoding timedtext: %v", ErrTranscriptService, err)
	}

	segments := make([]Segment, 0, len(doc.Texts))
	for _, txt := range doc.Texts {
		// The payload double-escapes entities (&amp;#39;), so one more
		// unescape pass after XML decoding.
		text := strings.TrimSpace(stdhtml.UnescapeString(txt.Body))
		if text == "" {
			continue
		}
		segments = append(segments, Segment{
			Start:    txt.Start,
			Duration: txt.Dur,
			Text:     text,
		})
	}
	return segments, nil
}

// resolveTrackURL resolves the captionTrack baseUrl against the client's
// base so relative track URLs (and test servers) work.
func (c *Client) resolveTrackURL(trackURL string) (string, error) {
	base, err := url.Parse(c.base.BaseURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(trackURL)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

// pickTrack returns the first track whose language code matches the
// preference order, falling back to the first track.
func pickTrack(tracks []captionTrack, languages []string) captionTrack {
	for _, lang := range languages {
		for _, track := range tracks {
			if track.LanguageCode == lang || strings.HasPrefix(track.LanguageCode, lang+"-") {
				return track
			}
		}
	}
	return tracks[0]
}

// playerResponseFromPage walks the watch page HTML for the script element
// assigning ytInitialPlayerResponse and decodes the JSON object literal.
func playerResponseFromPage(page string) (*playerResponse, error) {
	const marker = "ytInitialPlayerResponse"

	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parsing watch page: %v", err)
	}

	var script string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if script != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "script" && n.FirstChild != nil {
			if body := n.FirstChild.Data; strings.Contains(body, marker) {
				script = body
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	if script == "" {
		return nil, fmt.Errorf("player response script not found")
	}

	idx := strings.Index(script, marker)
	raw, err := jsonObjectAt(script[idx:])
	if err != nil {
		return nil, err
	}

	var player playerResponse
	if err := json.Unmarshal([]byte(raw), &player); err != nil {
		return nil, fmt.Errorf("decoding player response: %v", err)
	}
	return &player, nil
}

// jsonObjectAt extracts the first balanced {...} literal in s, tracking
// string and escape state so braces inside strings do not count.
func jsonObjectAt(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", fmt.Errorf("player response object not found")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("player response object is truncated")
}
