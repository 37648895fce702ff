package summarizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Chunk is a contiguous substring of the source text. Start/End are byte
// offsets into the input, so joining all chunk texts in index order
// reproduces the input exactly.
type Chunk struct {
	Index int    `json:"index"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// Chunker cuts text into token-bounded chunks, preferring sentence-end
// boundaries, then whitespace, then (as a last resort) rune positions
// inside an oversized word. Splitting is deterministic: the same text and
// budget always yield the same boundaries.
type Chunker struct {
	tokenizer Tokenizer
	budget    int
}

// NewChunker builds a Chunker with the given token budget per chunk. A
// budget of 0 or less falls back to 880.
func NewChunker(tokenizer Tokenizer, budget int) *Chunker {
	if tokenizer == nil {
		tokenizer = EstimatingTokenizer{}
	}
	if budget <= 0 {
		budget = 880
	}
	return &Chunker{tokenizer: tokenizer, budget: budget}
}

// Budget reports the per-chunk token budget.
func (c *Chunker) Budget() int { return c.budget }

type span struct {
	start int
	end   int
}

// Split cuts text into chunks. Whitespace-only input yields no chunks.
func (c *Chunker) Split(text string) []Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var chunks []Chunk
	appendChunk := func(start, end int) {
		if start >= end {
			return
		}
		chunks = append(chunks, Chunk{
			Index: len(chunks),
			Start: start,
			End:   end,
			Text:  text[start:end],
		})
	}

	curStart := -1
	curTokens := 0
	flush := func(end int) {
		if curStart >= 0 {
			appendChunk(curStart, end)
			curStart = -1
			curTokens = 0
		}
	}

	prevEnd := 0
	for _, s := range sentenceSpans(text) {
		tokens := c.tokenizer.CountTokens(text[s.start:s.end])

		if tokens > c.budget {
			// A single sentence over budget: close the running chunk and
			// cut the sentence at whitespace.
			flush(prevEnd)
			for _, piece := range c.splitOversized(text, s) {
				appendChunk(piece.start, piece.end)
			}
			prevEnd = s.end
			continue
		}

		if curStart < 0 {
			curStart = s.start
			curTokens = tokens
		} else if curTokens+tokens > c.budget {
			flush(prevEnd)
			curStart = s.start
			curTokens = tokens
		} else {
			curTokens += tokens
		}
		prevEnd = s.end
	}
	flush(prevEnd)

	return chunks
}

// splitOversized cuts one sentence span at whitespace so every piece fits
// the budget. A lone word beyond the budget gets cut at rune positions.
func (c *Chunker) splitOversized(text string, s span) []span {
	var pieces []span

	pieceStart := s.start
	pieceTokens := 0
	pos := s.start
	for pos < s.end {
		wordStart, wordEnd := nextWord(text, pos, s.end)
		if wordStart < 0 {
			break
		}
		tokens := c.tokenizer.CountTokens(text[wordStart:wordEnd])

		if tokens > c.budget {
			if pieceStart < wordStart {
				pieces = append(pieces, span{pieceStart, wordStart})
			}
			pieces = append(pieces, c.splitWord(text, wordStart, wordEnd)...)
			pieceStart = wordEnd
			pieceTokens = 0
			pos = wordEnd
			continue
		}

		if pieceTokens > 0 && pieceTokens+tokens > c.budget {
			pieces = append(pieces, span{pieceStart, wordStart})
			pieceStart = wordStart
			pieceTokens = tokens
		} else {
			pieceTokens += tokens
		}
		pos = wordEnd
	}
	if pieceStart < s.end {
		pieces = append(pieces, span{pieceStart, s.end})
	}
	return pieces
}

// splitWord cuts a single oversized word at rune boundaries. The estimator
// charges roughly one token per four runes, so pieces of budget*4 runes fit.
func (c *Chunker) splitWord(text string, start, end int) []span {
	maxRunes := c.budget * 4
	if maxRunes < 1 {
		maxRunes = 1
	}

	var pieces []span
	pieceStart := start
	runes := 0
	for i := start; i < end; {
		_, size := utf8.DecodeRuneInString(text[i:])
		runes++
		i += size
		if runes >= maxRunes && i < end {
			pieces = append(pieces, span{pieceStart, i})
			pieceStart = i
			runes = 0
		}
	}
	if pieceStart < end {
		pieces = append(pieces, span{pieceStart, end})
	}
	return pieces
}

// nextWord finds the next maximal non-space run in text[pos:end).
func nextWord(text string, pos, end int) (int, int) {
	i := pos
	for i < end {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	if i >= end {
		return -1, -1
	}
	start := i
	for i < end {
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return start, i
}

// sentenceSpans cuts text into consecutive spans ending after a run of
// sentence punctuation (. ! ?) followed by whitespace or end of input.
// Spans tile the whole string: span N ends exactly where span N+1 starts.
func sentenceSpans(text string) []span {
	var spans []span
	start := 0

	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == '.' || r == '!' || r == '?' {
			// Extend across the punctuation run ("...", "?!").
			j := i + size
			for j < len(text) {
				r2, size2 := utf8.DecodeRuneInString(text[j:])
				if r2 != '.' && r2 != '!' && r2 != '?' {
					break
				}
				j += size2
			}
			if j >= len(text) || isSpaceAt(text, j) {
				spans = append(spans, span{start, j})
				start = j
			}
			i = j
			continue
		}
		i += size
	}
	if start < len(text) {
		spans = append(spans, span{start, len(text)})
	}
	return spans
}

func isSpaceAt(text string, i int) bool {
	r, _ := utf8.DecodeRuneInString(text[i:])
	return unicode.IsSpace(r)
}
