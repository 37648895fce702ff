package youtube

import (
	"net/url"
	"regexp"
	"strings"
)

// videoIDPattern is the last-resort scan for an 11 character id following
// "v=" or a path separator.
var videoIDPattern = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)

// ExtractVideoID parses a free-form URL string into a canonical video id.
// Supported shapes: standard watch URLs, youtu.be short links, /embed/ and
// /shorts/ paths. Surrounding whitespace and extra query parameters
// (t=, list=, ...) are ignored. Returns ErrInvalidURL when nothing in the
// input looks like a video id.
func ExtractVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidURL
	}

	parsed, err := url.Parse(raw)
	if err == nil {
		hostname := strings.ToLower(parsed.Hostname())

		if hostname == "youtu.be" || hostname == "www.youtu.be" {
			if id := strings.TrimPrefix(parsed.Path, "/"); id != "" {
				return firstPathPart(id), nil
			}
		}

		if strings.HasSuffix(hostname, "youtube.com") {
			if parsed.Path == "/watch" {
				if id := parsed.Query().Get("v"); id != "" {
					return id, nil
				}
			}

			parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
			if len(parts) >= 2 && (parts[0] == "embed" || parts[0] == "shorts") && parts[1] != "" {
				return parts[1], nil
			}
		}
	}

	if m := videoIDPattern.FindStringSubmatch(raw); m != nil {
		return m[1], nil
	}

	return "", ErrInvalidURL
}

func firstPathPart(p string) string {
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return p
}
