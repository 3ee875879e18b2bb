package parser

import (
	"strings"
	"unicode/utf8"
)

// Normalize canonicalizes line endings to \n and replaces invalid
// UTF-8 sequences with the replacement rune. Malformed input degrades
// instead of aborting the pipeline.
func Normalize(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "�")
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
