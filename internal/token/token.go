// Package token provides the pluggable token-counting capability the
// segmentation engine consumes. Counting drives both reported chapter
// sizes and the split threshold.
package token

import (
	"strings"
	"unicode"
)

// Counter maps a text string to a token count. Implementations must be
// safe for concurrent use.
type Counter interface {
	Count(text string) int
}

// Estimator gives a rough token count without encoding data: CJK runes
// count one token each, the remaining text uses a words-per-token
// ratio. It serves as the fallback when no exact tokenizer is
// configured; exact counts are only needed for tight budget packing.
type Estimator struct{}

func (Estimator) Count(text string) int {
	if text == "" {
		return 0
	}
	cjk := 0
	var rest strings.Builder
	for _, r := range text {
		if unicode.Is(unicode.Han, r) {
			cjk++
		} else {
			rest.WriteRune(r)
		}
	}
	words := len(strings.Fields(rest.String()))
	// Roughly 0.75 words per token for English text.
	tokens := cjk + int(float64(words)*1.33)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}
