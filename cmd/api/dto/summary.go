package dto

// SummarizeRequestDTO is the body of POST /summaries.
type SummarizeRequestDTO struct {
	URL string `json:"url" binding:"required" example:"https://www.youtube.com/watch?v=abc123"`
}

// SegmentDTO is one timestamped caption line as the UI renders it.
type SegmentDTO struct {
	Time    string  `json:"time" example:"1:05"`
	Seconds float64 `json:"seconds" example:"65.2"`
	Text    string  `json:"text" example:"welcome back to the channel"`
}

// MetadataDTO is the display-only video card.
type MetadataDTO struct {
	Title        string `json:"title"`
	Author       string `json:"author"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// SummaryResponseDTO is the full result of one summarization run.
type SummaryResponseDTO struct {
	ID           string `json:"id"`
	VideoID      string `json:"video_id"`
	Summary      string `json:"summary"`
	ChunkCount   int    `json:"chunk_count"`
	Language     string `json:"language,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	IsGenerated  bool   `json:"is_generated"`

	// Segments is the full timestamped transcript; KeyMoments is the
	// sampled subset shown by default (every 10th segment, max 10).
	Segments   []SegmentDTO `json:"segments"`
	KeyMoments []SegmentDTO `json:"key_moments"`

	Metadata        *MetadataDTO `json:"metadata,omitempty"`
	MetadataWarning string       `json:"metadata_warning,omitempty"`
}
