package summarizer

import (
	"strings"
	"unicode"
)

// Tokenizer measures text length in model tokens. The chunker only needs a
// deterministic upper-bound measure, so the default implementation is a
// local estimator; providers backed by a real model API can implement this
// with their exact counting endpoint instead.
type Tokenizer interface {
	CountTokens(text string) int
}

// EstimatingTokenizer approximates BPE token counts without a vocabulary.
// Each word contributes ceil(runes/4) tokens with a minimum of one, plus
// one per non-alphanumeric rune. Deliberately conservative: real counts for
// Latin-script text come in at or below the estimate, so a budget checked
// against it cannot overflow the model limit.
type EstimatingTokenizer struct{}

func (EstimatingTokenizer) CountTokens(text string) int {
	total := 0
	for _, word := range strings.Fields(text) {
		runes := 0
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				runes++
			} else {
				total++
			}
		}
		if runes > 0 {
			total += (runes + 3) / 4
		}
	}
	if total == 0 && strings.TrimSpace(text) != "" {
		total = 1
	}
	return total
}
