package services

import (
	"context"
	"fmt"

	"tube-digest/cmd/api/dto"
	"tube-digest/cmd/api/trace"
	"tube-digest/internal/logger"
	"tube-digest/summarizer"
	"tube-digest/youtube"
)

// keyMomentStride and keyMomentLimit control the sampled timestamp list:
// every 10th segment, at most 10.
const (
	keyMomentStride = 10
	keyMomentLimit  = 10
)

// TranscriptProvider is the narrow boundary to the captions service.
type TranscriptProvider interface {
	Fetch(ctx context.Context, videoID string) (*youtube.Transcript, error)
	FetchMetadata(ctx context.Context, videoID string) (*youtube.Metadata, error)
}

// Summarizer is the narrow boundary to the chunked summarization workflow.
type Summarizer interface {
	Summarize(ctx context.Context, fullText string) (*summarizer.Result, error)
}

// SummaryService orchestrates one request: URL -> video id -> transcript ->
// summary -> response. Stateless apart from the download result store.
type SummaryService struct {
	transcripts TranscriptProvider
	summaries   Summarizer
	store       *ResultStore
}

func NewSummaryService(transcripts TranscriptProvider, summaries Summarizer, store *ResultStore) *SummaryService {
	return &SummaryService{
		transcripts: transcripts,
		summaries:   summaries,
		store:       store,
	}
}

// Store exposes the result store for the download handler.
func (s *SummaryService) Store() *ResultStore {
	return s.store
}

// Summarize runs the pipeline to completion or first failure. Metadata
// fetch failure does not fail the request; it becomes a response warning.
func (s *SummaryService) Summarize(ctx context.Context, rawURL string) (*dto.SummaryResponseDTO, error) {
	videoID, err := youtube.ExtractVideoID(rawURL)
	if err != nil {
		return nil, err
	}

	var meta *youtube.Metadata
	var metaWarning string
	meta, err = s.transcripts.FetchMetadata(ctx, videoID)
	if err != nil {
		metaWarning = fmt.Sprintf("could not load video details: %v", err)
		logger.WarnWithFields("metadata fetch failed", logger.Fields{
			"video_id":   videoID,
			"request_id": trace.RequestIDFromContext(ctx),
			"error":      err.Error(),
		})
		meta = nil
	}

	transcript, err := s.transcripts.Fetch(ctx, videoID)
	if err != nil {
		return nil, err
	}

	result, err := s.summaries.Summarize(ctx, transcript.FullText())
	if err != nil {
		return nil, err
	}

	title := videoID
	if meta != nil && meta.Title != "" {
		title = meta.Title
	}
	id := s.store.Put(videoID, title, result.Summary)

	logger.InfoWithFields("summary generated", logger.Fields{
		"video_id":    videoID,
		"segments":    len(transcript.Segments),
		"chunk_count": result.ChunkCount,
		"request_id":  trace.RequestIDFromContext(ctx),
	})

	resp := &dto.SummaryResponseDTO{
		ID:              id,
		VideoID:         videoID,
		Summary:         result.Summary,
		ChunkCount:      result.ChunkCount,
		Language:        transcript.Language,
		LanguageCode:    transcript.LanguageCode,
		IsGenerated:     transcript.IsGenerated,
		Segments:        segmentDTOs(transcript.Segments),
		KeyMoments:      keyMoments(transcript.Segments),
		MetadataWarning: metaWarning,
	}
	if meta != nil {
		resp.Metadata = &dto.MetadataDTO{
			Title:        meta.Title,
			Author:       meta.Author,
			ThumbnailURL: meta.ThumbnailURL,
		}
	}
	return resp, nil
}

func segmentDTOs(segments []youtube.Segment) []dto.SegmentDTO {
	out := make([]dto.SegmentDTO, 0, len(segments))
	for _, seg := range segments {
		out = append(out, dto.SegmentDTO{
			Time:    formatTimestamp(seg.Start),
			Seconds: seg.Start,
			Text:    seg.Text,
		})
	}
	return out
}

func keyMoments(segments []youtube.Segment) []dto.SegmentDTO {
	var out []dto.SegmentDTO
	for i := 0; i < len(segments) && len(out) < keyMomentLimit; i += keyMomentStride {
		seg := segments[i]
		out = append(out, dto.SegmentDTO{
			Time:    formatTimestamp(seg.Start),
			Seconds: seg.Start,
			Text:    seg.Text,
		})
	}
	return out
}

// formatTimestamp renders seconds as m:ss.
func formatTimestamp(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
