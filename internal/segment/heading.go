package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Scoring and clustering constants. These are hand-tuned for
// Chinese-language academic textbook conventions; re-tune them against
// the target corpus rather than re-deriving from first principles.
const (
	strongPatternScore   = 1.0  // explicit chapter pattern or front/back-matter keyword
	markdownHeadingScore = 0.8  // 1-6 leading # characters
	isolationBonus       = 0.15 // per blank-line side (before/after)
	midTitlePenalty      = 0.2  // title longer than midTitleRunes
	longTitlePenalty     = 0.5  // title longer than longTitleRunes
	midTitleRunes        = 80
	longTitleRunes       = 120

	acceptScore      = 0.8 // adjusted confidence needed to confirm a heading
	firstNumberBonus = 0.1 // first numbered candidate in the document
	sequenceBonus    = 0.2 // number repeats or increments the last one
	sequencePenalty  = 0.2 // number breaks the running sequence

	// scoreEpsilon keeps the threshold comparison stable when summed
	// bonuses land a rounding error below acceptScore (0.7+0.1 in
	// binary floats is just under 0.8).
	scoreEpsilon = 1e-9

	tocClusterGap     = 10  // max line gap inside one TOC cluster
	tocClusterMin     = 4   // min candidates to call a cluster a TOC
	tocPrefixFraction = 0.2 // TOC clusters must start in this document prefix
)

var (
	mdHeadingRe = regexp.MustCompile(`^\s*(#{1,6})\s+`)

	// Explicit chapter-like openings: 第X章/篇/部分, Chapter N, 附录.
	chapterPatternRe = regexp.MustCompile(`^(第[一二三四五六七八九十零〇0-9]+[章篇部分]|Chapter\s+\d+|CHAPTER\s+\d+|附录\s*[A-Za-z0-9一二三四五六七八九十零〇]?)`)

	// Front and back matter section titles.
	keywordPatternRe = regexp.MustCompile(`(?i)^(序言|前言|目录|参考文献|附录|致谢|后记|结语|摘要|索引|术语表|版权|Introduction|Preface|Contents|References|Appendix|Conclusion|Abstract|Index|Glossary)`)

	sectionNumberRe = regexp.MustCompile(`^\d+(\.\d+)+`)
)

// detectCandidates scores every heading-like line of the document.
// No thresholding happens here; weak candidates survive so sequence
// continuity can later lift them over the acceptance score.
func detectCandidates(lines []string) []candidate {
	before := blanksBefore(lines)
	after := blanksAfter(lines)

	var cands []candidate
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isTOCMarkup(line) {
			continue
		}
		level := markdownLevel(line)
		title := trimmed
		if level > 0 {
			title = cleanTitle(line)
		}
		pattern := patternScore(title)
		if pattern == 0 && level == 0 {
			// Neither an explicit pattern nor markdown syntax:
			// not heading-like at all.
			continue
		}
		score := pattern + lengthPenalty(title) + isolationScore(before[i], after[i])
		if level > 0 {
			score += markdownHeadingScore
		}
		num, _ := ChapterNumber(title)
		cands = append(cands, candidate{
			line:  i,
			score: score,
			title: title,
			num:   num,
			level: level,
		})
	}
	return cands
}

// patternScore is the strong-match rule: explicit chapter patterns and
// front/back-matter keywords score strongPatternScore, all else zero.
func patternScore(title string) float64 {
	if chapterPatternRe.MatchString(title) || keywordPatternRe.MatchString(title) {
		return strongPatternScore
	}
	return 0
}

// markdownLevel returns the heading depth for #-style lines, 0 otherwise.
func markdownLevel(line string) int {
	m := mdHeadingRe.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	return len(m[1])
}

// isolationScore rewards headings separated from body text by blank lines.
func isolationScore(blanksBefore, blanksAfter int) float64 {
	score := 0.0
	if blanksBefore >= 1 {
		score += isolationBonus
	}
	if blanksAfter >= 1 {
		score += isolationBonus
	}
	return score
}

// lengthPenalty punishes titles too long to plausibly be headings.
func lengthPenalty(title string) float64 {
	n := utf8.RuneCountInString(title)
	switch {
	case n > longTitleRunes:
		return -longTitlePenalty
	case n > midTitleRunes:
		return -midTitlePenalty
	}
	return 0
}

func cleanTitle(line string) string {
	return strings.TrimSpace(mdHeadingRe.ReplaceAllString(line, ""))
}

// blanksBefore[i] counts consecutive blank lines immediately above line i.
func blanksBefore(lines []string) []int {
	counts := make([]int, len(lines))
	run := 0
	for i, line := range lines {
		counts[i] = run
		if strings.TrimSpace(line) == "" {
			run++
		} else {
			run = 0
		}
	}
	return counts
}

// blanksAfter[i] counts consecutive blank lines immediately below line i.
func blanksAfter(lines []string) []int {
	counts := make([]int, len(lines))
	run := 0
	for i := len(lines) - 1; i >= 0; i-- {
		counts[i] = run
		if strings.TrimSpace(lines[i]) == "" {
			run++
		} else {
			run = 0
		}
	}
	return counts
}
