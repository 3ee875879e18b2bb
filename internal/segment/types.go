package segment

// Granularity selects how fine the document is cut.
type Granularity string

const (
	// GranularityChapter keeps only top-level chapter boundaries;
	// subsections are folded into the enclosing chapter.
	GranularityChapter Granularity = "chapter"
	// GranularitySection also cuts at numbered subsections and
	// second-level headings.
	GranularitySection Granularity = "section"
)

// Chapter is one segmented unit of a document. Order values are unique
// and strictly increasing in document order within one segmentation.
type Chapter struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Level      int    `json:"level"`
	Order      int    `json:"order"`
	Number     int    `json:"number,omitempty"` // resolved chapter number, 0 when none
	TokenCount int    `json:"token_count"`
}

// Chunk is one token-bounded part of a split chapter. Order is the
// parent chapter's order and Part the 1-based index within it, so the
// composite (Order, Part) sorts chunks contiguously between sibling
// chapters without floating-point order arithmetic. Part is 0 when
// splitting produced a single chunk.
type Chunk struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Level      int    `json:"level"`
	Order      int    `json:"order"`
	Part       int    `json:"part,omitempty"`
	Number     int    `json:"number,omitempty"`
	TokenCount int    `json:"token_count"`
}

// candidate is a line provisionally identified as a heading, before
// confidence filtering.
type candidate struct {
	line  int // 0-based line index
	score float64
	title string
	num   int // extracted chapter number, 0 when none
	level int // markdown heading depth, 0 for non-markdown lines
}
