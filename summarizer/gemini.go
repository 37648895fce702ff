package summarizer

import (
	"context"
	"fmt"
	"os"
	"time"

	"google.golang.org/genai"

	"tube-digest/config"
	"tube-digest/internal/logger"
)

const SYSTEM_INSTRUCTION = `
You are a summarization assistant for video transcripts. The input is one
contiguous portion of a spoken-word transcript with no punctuation cleanup.
Write an abstractive summary of the input in plain prose.
Constraints:
- Write roughly between %d and %d tokens.
- Respond with the summary text ONLY: no preamble, no headings, no bullet
  points, no markdown fences.
- Keep the summary in the language of the input.
- Do not mention that the input is a transcript or that you are a model.
`

// LLMRequestLog records one model call for structured logging.
type LLMRequestLog struct {
	Response     string     `json:"response"`
	LatencyMs    int64      `json:"latency_ms"`
	TokenUsage   TokenUsage `json:"token_usage"`
	ModelName    string     `json:"model_name"`
	ModelVersion string     `json:"model_version"`
	GeneratedAt  time.Time  `json:"generated_at"`
}

type TokenUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	TotalTokens  int64 `json:"total_tokens"`
}

// GeminiProvider generates chunk summaries through the Gemini API with
// fixed decoding parameters. The client is created once and reused; it is
// read-only after construction.
type GeminiProvider struct {
	client *genai.Client
	cfg    config.SummarizerConfig
}

// NewGeminiProvider reads GEMINI_API_KEY and builds the shared client.
func NewGeminiProvider(ctx context.Context, cfg config.SummarizerConfig) (*GeminiProvider, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiProvider{client: client, cfg: cfg}, nil
}

// Summarize generates a summary for one chunk. Decoding parameters come
// from configuration: max_output_tokens maps to MaxOutputTokens, the
// minimum length bound is carried by the system instruction (the API has
// no hard floor), num_candidates maps to CandidateCount, temperature is
// pinned to zero for run-to-run stability.
func (p *GeminiProvider) Summarize(ctx context.Context, text string) (string, error) {
	startTime := time.Now()

	instruction := fmt.Sprintf(SYSTEM_INSTRUCTION, p.cfg.MinOutputTokens, p.cfg.MaxOutputTokens)
	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: instruction}}},
		Temperature:       genai.Ptr[float32](0),
	}
	if p.cfg.MaxOutputTokens > 0 {
		genCfg.MaxOutputTokens = int32(p.cfg.MaxOutputTokens)
	}
	if p.cfg.NumCandidates > 0 {
		genCfg.CandidateCount = int32(p.cfg.NumCandidates)
	}

	result, err := p.client.Models.GenerateContent(ctx, p.cfg.ModelName, genai.Text(text), genCfg)
	if err != nil {
		return "", err
	}

	summary := result.Text()
	if summary == "" {
		return "", fmt.Errorf("model returned an empty summary")
	}

	llmLog := &LLMRequestLog{
		Response:     summary,
		LatencyMs:    time.Since(startTime).Milliseconds(),
		ModelName:    p.cfg.ModelName,
		ModelVersion: result.ModelVersion,
		GeneratedAt:  time.Now(),
	}
	if result.UsageMetadata != nil {
		llmLog.TokenUsage = TokenUsage{
			InputTokens:  int64(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int64(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int64(result.UsageMetadata.TotalTokenCount),
		}
	}
	logger.InfoWithFields("llm summary call", logger.Fields{
		"model_name":    llmLog.ModelName,
		"model_version": llmLog.ModelVersion,
		"latency_ms":    llmLog.LatencyMs,
		"input_tokens":  llmLog.TokenUsage.InputTokens,
		"output_tokens": llmLog.TokenUsage.OutputTokens,
	})

	return summary, nil
}

// CountTokens measures text with the model's real tokenizer. Satisfies the
// Tokenizer interface for callers preferring exact counts over the local
// estimator; each call is one API round trip.
func (p *GeminiProvider) CountTokens(text string) int {
	resp, err := p.client.Models.CountTokens(context.Background(), p.cfg.ModelName, genai.Text(text), nil)
	if err != nil {
		logger.Log.Warnf("count tokens failed, falling back to estimate: %v", err)
		return EstimatingTokenizer{}.CountTokens(text)
	}
	return int(resp.TotalTokens)
}
