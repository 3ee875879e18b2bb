package segment

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	linkedNumberedItemRe = regexp.MustCompile(`^\s*\d+\.\s+\[.*\]\(.*\)`)
	tocTitleRe           = regexp.MustCompile(`(?i)^\s*(目录|Table of Contents)\s*$`)

	// A level-1 第X章 heading that drags a page number behind it is a
	// rendered TOC listing, not a real chapter opening.
	tocChapterLineRe = regexp.MustCompile(`^#\s*第[一二三四五六七八九十零〇0-9]+章.*\s\d+\s*$`)

	// "# 第N章 <title> <page>", the parseable TOC entry form.
	tocEntryRe = regexp.MustCompile(`^#\s*(第[一二三四五六七八九十零〇0-9]+章)\s+(.*?)\s+(\d+)\s*$`)

	bodyChapterRe = regexp.MustCompile(`^#\s*第[一二三四五六七八九十零〇0-9]+章`)
)

// isTOCMarkup reports lines that are table-of-contents markup and must
// never become heading candidates: linked list items, the 目录 /
// Table of Contents title itself, and chapter headings with a trailing
// page number.
func isTOCMarkup(line string) bool {
	s := strings.TrimSpace(line)
	if strings.HasPrefix(s, "- ") || strings.HasPrefix(s, "* ") {
		if strings.Contains(s, "](") {
			return true
		}
	}
	if linkedNumberedItemRe.MatchString(s) {
		return true
	}
	if tocTitleRe.MatchString(s) {
		return true
	}
	return tocChapterLineRe.MatchString(s)
}

// tocRegions clusters candidate line indices by proximity and returns
// the [first,last] ranges of clusters dense and early enough to be
// table-of-contents listings. A real TOC packs many heading-like lines
// near the document start; genuine chapters are sparse throughout.
func tocRegions(totalLines int, cands []candidate) [][2]int {
	var regions [][2]int
	var cluster []int
	flush := func() {
		if len(cluster) >= tocClusterMin && float64(cluster[0]) < float64(totalLines)*tocPrefixFraction {
			regions = append(regions, [2]int{cluster[0], cluster[len(cluster)-1]})
		}
		cluster = nil
	}
	for _, c := range cands {
		if len(cluster) > 0 && c.line-cluster[len(cluster)-1] > tocClusterGap {
			flush()
		}
		cluster = append(cluster, c.line)
	}
	if len(cluster) > 0 {
		flush()
	}
	return regions
}

func inRegions(line int, regions [][2]int) bool {
	for _, r := range regions {
		if r[0] <= line && line <= r[1] {
			return true
		}
	}
	return false
}

// dropTOCRegions removes candidates that fall inside detected TOC
// line ranges.
func dropTOCRegions(totalLines int, cands []candidate) []candidate {
	regions := tocRegions(totalLines, cands)
	if len(regions) == 0 {
		return cands
	}
	kept := cands[:0:0]
	for _, c := range cands {
		if !inRegions(c.line, regions) {
			kept = append(kept, c)
		}
	}
	return kept
}

// tocEntry is a numbered chapter parsed from an explicit TOC line.
type tocEntry struct {
	num   int
	title string
	line  int
}

func parseTOCEntries(lines []string) []tocEntry {
	var entries []tocEntry
	for i, line := range lines {
		m := tocEntryRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		num, ok := ChapterNumber(m[1])
		if !ok {
			continue
		}
		entries = append(entries, tocEntry{num: num, title: m[2], line: i})
	}
	return entries
}

// resolveBodyAnchors re-locates TOC-listed chapters at their true body
// occurrence so segmentation never anchors on the TOC text itself. For
// each entry it prefers the first level-1 line opening with the bare
// number, then the first level-1 第X章 line resolving to the same
// number. When at least one anchor resolves, the result set fully
// replaces the heuristic candidates.
func resolveBodyAnchors(lines []string) []candidate {
	entries := parseTOCEntries(lines)
	if len(entries) == 0 {
		return nil
	}

	titles := make(map[int]string, len(entries))
	for _, e := range entries {
		titles[e.num] = e.title
	}

	var anchors []candidate
	for _, e := range entries {
		found := findBodyLine(lines, e.num)
		if found < 0 {
			continue
		}
		title := strings.TrimSpace(fmt.Sprintf("第%d章 %s", e.num, strings.TrimSpace(titles[e.num])))
		anchors = append(anchors, candidate{
			line:  found,
			score: 1.0,
			title: title,
			num:   e.num,
			level: 1,
		})
	}
	sortByLine(anchors)
	return anchors
}

func findBodyLine(lines []string, num int) int {
	numberedH1 := regexp.MustCompile(fmt.Sprintf(`^#\s*%d\b`, num))
	for i, line := range lines {
		if numberedH1.MatchString(strings.TrimSpace(line)) {
			return i
		}
	}
	for i, line := range lines {
		s := strings.TrimSpace(line)
		if !bodyChapterRe.MatchString(s) || tocChapterLineRe.MatchString(s) {
			continue
		}
		if n, ok := ChapterNumber(cleanTitle(s)); ok && n == num {
			return i
		}
	}
	return -1
}
