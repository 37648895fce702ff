package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tube-digest/internal/logger"
)

var (
	// ErrEmptyTranscript means there was nothing to summarize; the model is
	// never invoked in this case.
	ErrEmptyTranscript = errors.New("transcript is empty")

	// ErrSummarization wraps model/backend failures. The whole request
	// fails; partial summaries from earlier chunks are discarded.
	ErrSummarization = errors.New("summarization failed")
)

// Provider is the narrow boundary to the pretrained summarization model.
// Implementations must be safe for sequential reuse across requests.
type Provider interface {
	// Summarize generates an abstractive summary for one chunk of text
	// using the provider's fixed decoding parameters.
	Summarize(ctx context.Context, text string) (string, error)
}

// Result is one finished summarization run.
type Result struct {
	Summary    string `json:"summary"`
	ChunkCount int    `json:"chunk_count"`
}

// QuotaLimiter gates model calls. Reserve returns false when the quota is
// exhausted for the day.
type QuotaLimiter interface {
	WaitAndReserve(ctx context.Context) (bool, error)
}

// Service runs the chunked summarization workflow: split the transcript
// under the token budget, summarize each chunk in order, join the partials.
type Service struct {
	provider  Provider
	chunker   *Chunker
	quota     QuotaLimiter
	finalPass bool
}

// NewService wires a Service. quota may be nil (no limits). finalPass
// enables the roll-up pass over joined partials when the transcript
// produced more than one chunk.
func NewService(provider Provider, chunker *Chunker, quota QuotaLimiter, finalPass bool) *Service {
	return &Service{
		provider:  provider,
		chunker:   chunker,
		quota:     quota,
		finalPass: finalPass,
	}
}

// Summarize produces the final summary for the full transcript text.
// Fails with ErrEmptyTranscript before any model call when the text is
// blank, and with ErrSummarization on any provider failure; in the latter
// case partials already computed are dropped, since a summary missing the
// remaining context would mislead the reader.
func (s *Service) Summarize(ctx context.Context, fullText string) (*Result, error) {
	chunks := s.chunker.Split(fullText)
	if len(chunks) == 0 {
		return nil, ErrEmptyTranscript
	}

	partials := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		summary, err := s.callModel(ctx, chunk.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: chunk %d/%d: %v", ErrSummarization, chunk.Index+1, len(chunks), err)
		}
		partials = append(partials, strings.TrimSpace(summary))
	}

	final := strings.Join(partials, "\n\n")

	if s.finalPass && len(partials) > 1 {
		logger.Log.Debugf("running final pass over %d partial summaries", len(partials))
		rolled, err := s.callModel(ctx, strings.Join(partials, " "))
		if err != nil {
			return nil, fmt.Errorf("%w: final pass: %v", ErrSummarization, err)
		}
		final = strings.TrimSpace(rolled)
	}

	return &Result{Summary: final, ChunkCount: len(chunks)}, nil
}

func (s *Service) callModel(ctx context.Context, text string) (string, error) {
	if s.quota != nil {
		ok, err := s.quota.WaitAndReserve(ctx)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", errors.New("daily summary quota exhausted")
		}
	}
	return s.provider.Summarize(ctx, text)
}
