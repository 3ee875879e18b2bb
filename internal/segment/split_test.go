package segment

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dgallion1/bookseg/internal/token"
)

// wordCounter counts whitespace-separated words as one token each,
// making budgets in tests exact.
type wordCounter struct{}

func (wordCounter) Count(text string) int { return len(strings.Fields(text)) }

func makeParagraph(words int, tag string) string {
	parts := make([]string, words)
	for i := range parts {
		parts[i] = fmt.Sprintf("%s%d", tag, i)
	}
	return strings.Join(parts, " ")
}

func TestSplit_UnderThresholdReturnsSingleChunk(t *testing.T) {
	s := New(wordCounter{}, GranularityChapter)
	ch := Chapter{Title: "第一章 绪论", Content: makeParagraph(50, "w"), Level: 1, Order: 3, Number: 1}

	chunks, err := s.Split(ch, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	c := chunks[0]
	if c.Title != ch.Title {
		t.Errorf("sole chunk must keep the bare title, got %q", c.Title)
	}
	if c.Part != 0 {
		t.Errorf("sole chunk part = %d, want 0", c.Part)
	}
	if c.Content != ch.Content {
		t.Errorf("sole chunk content differs from input")
	}
	if c.Order != 3 || c.Number != 1 || c.Level != 1 {
		t.Errorf("inherited fields wrong: %+v", c)
	}
}

func TestSplit_OversizedChapterProducesBoundedChunks(t *testing.T) {
	s := New(wordCounter{}, GranularityChapter)

	var paras []string
	for i := 0; i < 10; i++ {
		paras = append(paras, makeParagraph(40, fmt.Sprintf("p%d_", i)))
	}
	content := strings.Join(paras, "\n\n")
	ch := Chapter{Title: "第二章 动力学", Content: content, Level: 1, Order: 1, Number: 2}

	chunks, err := s.Split(ch, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}

	for i, c := range chunks {
		if c.TokenCount > 100 {
			t.Errorf("chunk %d: %d tokens exceeds threshold", i, c.TokenCount)
		}
		wantTitle := fmt.Sprintf("第二章 动力学 (Part %d)", i+1)
		if c.Title != wantTitle {
			t.Errorf("chunk %d title = %q, want %q", i, c.Title, wantTitle)
		}
		if c.Order != 1 || c.Part != i+1 {
			t.Errorf("chunk %d sort key = (%d, %d), want (1, %d)", i, c.Order, c.Part, i+1)
		}
	}

	// Rejoining chunk contents reconstructs the parent exactly.
	var joined []string
	for _, c := range chunks {
		joined = append(joined, c.Content)
	}
	if got := strings.Join(joined, "\n\n"); got != content {
		t.Errorf("rejoined chunks do not reconstruct the chapter content")
	}
}

func TestSplit_SingleHugeParagraphStaysWhole(t *testing.T) {
	s := New(wordCounter{}, GranularityChapter)
	huge := makeParagraph(500, "w")
	ch := Chapter{Title: "附录", Content: huge, Level: 1, Order: 7}

	chunks, err := s.Split(ch, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// No sub-paragraph splitting: the caller sees one oversized chunk
	// and knows splitting was ineffective.
	if len(chunks) != 1 {
		t.Fatalf("expected 1 oversized chunk, got %d", len(chunks))
	}
	if chunks[0].Content != huge {
		t.Errorf("oversized paragraph content altered")
	}
	if chunks[0].TokenCount != 500 {
		t.Errorf("token count = %d, want 500", chunks[0].TokenCount)
	}
}

func TestSplit_HugeParagraphBetweenNormalOnes(t *testing.T) {
	s := New(wordCounter{}, GranularityChapter)
	paras := []string{
		makeParagraph(40, "a"),
		makeParagraph(300, "b"), // alone exceeds the budget
		makeParagraph(40, "c"),
	}
	content := strings.Join(paras, "\n\n")
	ch := Chapter{Title: "第三章", Content: content, Order: 2, Level: 1, Number: 3}

	chunks, err := s.Split(ch, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if chunks[1].Content != paras[1] {
		t.Errorf("oversized paragraph must form its own chunk")
	}
	if chunks[0].TokenCount > 100 || chunks[2].TokenCount > 100 {
		t.Errorf("normal chunks exceed threshold: %d, %d", chunks[0].TokenCount, chunks[2].TokenCount)
	}
}

func TestSplit_InvalidThreshold(t *testing.T) {
	s := New(wordCounter{}, GranularityChapter)
	ch := Chapter{Title: "x", Content: "y"}
	if _, err := s.Split(ch, 0); err == nil {
		t.Error("expected error for zero threshold")
	}
	if _, err := s.Split(ch, -5); err == nil {
		t.Error("expected error for negative threshold")
	}
}

func TestSplit_TokenCountsRecomputedFromContent(t *testing.T) {
	s := New(wordCounter{}, GranularityChapter)
	// Stale TokenCount on the input must not leak into chunks.
	ch := Chapter{Title: "x", Content: makeParagraph(30, "w"), TokenCount: 9999}
	chunks, err := s.Split(ch, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chunks[0].TokenCount != 30 {
		t.Errorf("token count = %d, want 30", chunks[0].TokenCount)
	}
}

func TestSplit_DefaultCounterFallback(t *testing.T) {
	s := New(nil, GranularityChapter)
	if _, ok := interface{}(s.counter).(token.Estimator); !ok {
		t.Errorf("nil counter should fall back to the estimator, got %T", s.counter)
	}
}
