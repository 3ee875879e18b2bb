// Package segment converts loosely-structured document text into an
// ordered list of chapters, and rebalances oversized chapters into
// token-bounded chunks.
//
// The input has no reliable schema: heading conventions vary (第X章,
// Chinese numerals, "Chapter N", keyword sections), tables of contents
// masquerade as real headings, and both over- and under-segmentation
// must be avoided with nothing but heuristics over raw lines. Detection
// therefore works in stages: per-line confidence scoring, TOC region
// exclusion, chapter-number sequence validation, and, when the TOC
// itself can be parsed, exact body re-anchoring. Every stage degrades
// to a less strict candidate set rather than returning zero chapters.
package segment

import (
	"strings"

	"github.com/dgallion1/bookseg/internal/token"
)

// Segmenter is a stateless segmentation engine. It holds only
// configuration and may be shared across goroutines; each Segment call
// is an independent single-pass transform.
type Segmenter struct {
	counter     token.Counter
	granularity Granularity
}

// New builds a Segmenter. A nil counter falls back to the word-ratio
// estimator; an unknown granularity falls back to chapter mode.
func New(counter token.Counter, granularity Granularity) *Segmenter {
	if counter == nil {
		counter = token.Estimator{}
	}
	if granularity != GranularitySection {
		granularity = GranularityChapter
	}
	return &Segmenter{counter: counter, granularity: granularity}
}

// WithGranularity returns a Segmenter sharing this one's counter but
// cutting at g.
func (s *Segmenter) WithGranularity(g Granularity) *Segmenter {
	return New(s.counter, g)
}

// Segment cuts text into ordered chapters. sourceName seeds the title
// of the whole-document fallback chapter when no headings are found.
// The returned list is never empty.
func (s *Segmenter) Segment(text, sourceName string) []Chapter {
	lines := strings.Split(normalizeNewlines(text), "\n")

	heads := s.selectHeads(lines)

	if s.granularity == GranularityChapter {
		// Exact TOC-derived anchors are strictly preferred over
		// heuristic scoring when any resolve.
		if anchors := resolveBodyAnchors(lines); len(anchors) > 0 {
			heads = anchors
		}
	}

	return assemble(lines, heads, sourceName, s.counter)
}

// selectHeads runs the heuristic stages: detect, drop TOC regions,
// adjust by number continuity, threshold, then granularity-filter.
func (s *Segmenter) selectHeads(lines []string) []candidate {
	cands := detectCandidates(lines)
	cands = dropTOCRegions(len(lines), cands)
	sortByLine(cands)
	cands = adjustSequence(cands)
	cands = acceptCandidates(cands)
	cands = filterGranularity(cands, s.granularity)
	sortByLine(cands)
	return cands
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
