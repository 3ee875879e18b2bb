package segment

import (
	"fmt"
	"strings"
)

// paragraphSeparator delimits paragraphs within chapter content.
// Rejoining chunk contents with it reconstructs the parent exactly.
const paragraphSeparator = "\n\n"

// Split repartitions an oversized chapter into chunks of at most
// maxTokens, packing consecutive paragraphs greedily. A single
// paragraph that alone exceeds the budget is emitted as its own
// oversized chunk; paragraphs are never subdivided. When the content
// already fits, exactly one chunk equal to the input is returned, so a
// caller can detect that splitting had no effect by the chunk count.
//
// Only an invalid call contract errors: maxTokens must be positive.
func (s *Segmenter) Split(ch Chapter, maxTokens int) ([]Chunk, error) {
	if maxTokens <= 0 {
		return nil, fmt.Errorf("split %q: token threshold must be positive, got %d", ch.Title, maxTokens)
	}

	paragraphs := strings.Split(ch.Content, paragraphSeparator)

	var contents []string
	var current []string
	currentTokens := 0

	for _, para := range paragraphs {
		paraTokens := s.counter.Count(para)
		if currentTokens+paraTokens > maxTokens && len(current) > 0 {
			contents = append(contents, strings.Join(current, paragraphSeparator))
			current = current[:0]
			currentTokens = 0
		}
		current = append(current, para)
		currentTokens += paraTokens
	}
	if len(current) > 0 {
		contents = append(contents, strings.Join(current, paragraphSeparator))
	}
	if len(contents) == 0 {
		contents = []string{ch.Content}
	}

	chunks := make([]Chunk, len(contents))
	for i, content := range contents {
		chunk := Chunk{
			Title:      ch.Title,
			Content:    content,
			Level:      ch.Level,
			Order:      ch.Order,
			Number:     ch.Number,
			TokenCount: s.counter.Count(content),
		}
		if len(contents) > 1 {
			chunk.Title = fmt.Sprintf("%s (Part %d)", ch.Title, i+1)
			chunk.Part = i + 1
		}
		chunks[i] = chunk
	}
	return chunks, nil
}
