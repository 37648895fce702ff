package summarizer_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tube-digest/summarizer"
)

type fakeProvider struct {
	calls []string
	fail  map[int]error
}

func (f *fakeProvider) Summarize(_ context.Context, text string) (string, error) {
	call := len(f.calls)
	f.calls = append(f.calls, text)
	if err, ok := f.fail[call]; ok {
		return "", err
	}
	return fmt.Sprintf("summary-%d", call), nil
}

type fakeQuota struct {
	calls     int
	exhausted bool
	err       error
}

func (f *fakeQuota) WaitAndReserve(context.Context) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return !f.exhausted, nil
}

// Each sentence fits the budget of 10 on its own but no two fit together,
// so the chunker emits exactly one chunk per sentence.
const multiChunkText = "Alpha beta gamma one. Alpha beta gamma two. Alpha beta gamma ten."

func TestSummarizeEmptyTranscript(t *testing.T) {
	provider := &fakeProvider{}
	svc := summarizer.NewService(provider, summarizer.NewChunker(nil, 0), nil, false)

	for _, text := range []string{"", "   \n\t "} {
		result, err := svc.Summarize(context.Background(), text)
		assert.ErrorIs(t, err, summarizer.ErrEmptyTranscript)
		assert.Nil(t, result)
	}
	assert.Empty(t, provider.calls, "the model must not be invoked for blank input")
}

func TestSummarizeSingleChunk(t *testing.T) {
	provider := &fakeProvider{}
	svc := summarizer.NewService(provider, summarizer.NewChunker(nil, 880), nil, true)

	result, err := svc.Summarize(context.Background(), "A short transcript that fits one chunk.")
	require.NoError(t, err)

	assert.Equal(t, "summary-0", result.Summary)
	assert.Equal(t, 1, result.ChunkCount)
	// One chunk means no roll-up call even with the final pass enabled.
	require.Len(t, provider.calls, 1)
}

func TestSummarizeMultiChunkJoin(t *testing.T) {
	provider := &fakeProvider{}
	svc := summarizer.NewService(provider, summarizer.NewChunker(nil, 10), nil, false)

	result, err := svc.Summarize(context.Background(), multiChunkText)
	require.NoError(t, err)

	require.Equal(t, 3, result.ChunkCount)
	require.Len(t, provider.calls, 3)
	assert.Equal(t, "summary-0\n\nsummary-1\n\nsummary-2", result.Summary)
}

func TestSummarizeFinalPass(t *testing.T) {
	provider := &fakeProvider{}
	svc := summarizer.NewService(provider, summarizer.NewChunker(nil, 10), nil, true)

	result, err := svc.Summarize(context.Background(), multiChunkText)
	require.NoError(t, err)

	// Three chunk calls plus the roll-up over the joined partials.
	require.Len(t, provider.calls, 4)
	assert.Equal(t, "summary-0 summary-1 summary-2", provider.calls[3])
	assert.Equal(t, "summary-3", result.Summary)
	assert.Equal(t, 3, result.ChunkCount)
}

func TestSummarizeProviderFailureDiscardsPartials(t *testing.T) {
	provider := &fakeProvider{fail: map[int]error{1: errors.New("model unavailable")}}
	svc := summarizer.NewService(provider, summarizer.NewChunker(nil, 10), nil, false)

	result, err := svc.Summarize(context.Background(), multiChunkText)
	assert.ErrorIs(t, err, summarizer.ErrSummarization)
	assert.Contains(t, err.Error(), "chunk 2/3")
	assert.Nil(t, result, "a summary missing later chunks must not be returned")
}

func TestSummarizeFinalPassFailure(t *testing.T) {
	provider := &fakeProvider{fail: map[int]error{3: errors.New("model unavailable")}}
	svc := summarizer.NewService(provider, summarizer.NewChunker(nil, 10), nil, true)

	result, err := svc.Summarize(context.Background(), multiChunkText)
	assert.ErrorIs(t, err, summarizer.ErrSummarization)
	assert.Contains(t, err.Error(), "final pass")
	assert.Nil(t, result)
}

func TestSummarizeQuotaExhausted(t *testing.T) {
	provider := &fakeProvider{}
	quota := &fakeQuota{exhausted: true}
	svc := summarizer.NewService(provider, summarizer.NewChunker(nil, 880), quota, false)

	result, err := svc.Summarize(context.Background(), "Some transcript text.")
	assert.ErrorIs(t, err, summarizer.ErrSummarization)
	assert.Contains(t, err.Error(), "quota exhausted")
	assert.Nil(t, result)
	assert.Empty(t, provider.calls)
}

func TestSummarizeQuotaGatesEveryCall(t *testing.T) {
	provider := &fakeProvider{}
	quota := &fakeQuota{}
	svc := summarizer.NewService(provider, summarizer.NewChunker(nil, 10), quota, true)

	_, err := svc.Summarize(context.Background(), multiChunkText)
	require.NoError(t, err)
	assert.Equal(t, 4, quota.calls, "every model call, including the roll-up, goes through the limiter")
}

func TestSummarizeTrimsProviderOutput(t *testing.T) {
	provider := &paddedProvider{}
	svc := summarizer.NewService(provider, summarizer.NewChunker(nil, 880), nil, false)

	result, err := svc.Summarize(context.Background(), "One chunk of text.")
	require.NoError(t, err)
	assert.Equal(t, "padded summary", result.Summary)
	assert.False(t, strings.ContainsAny(result.Summary, "\n"))
}

type paddedProvider struct{}

func (paddedProvider) Summarize(context.Context, string) (string, error) {
	return "  padded summary\n", nil
}
