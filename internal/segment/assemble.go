package segment

import (
	"path/filepath"
	"strings"

	"github.com/dgallion1/bookseg/internal/token"
)

// FrontMatterTitle names the synthetic chapter that collects any
// non-blank text appearing before the first confirmed heading.
const FrontMatterTitle = "前言/说明"

// assemble cuts the line stream at the confirmed heading positions into
// ordered chapters. Heading lines are excluded from content; text ahead
// of the first heading becomes a synthetic front-matter chapter; with
// no headings at all the whole document is one chapter named after the
// source file.
func assemble(lines []string, heads []candidate, sourceName string, counter token.Counter) []Chapter {
	if len(heads) == 0 {
		title := titleFromSource(sourceName)
		content := strings.Join(lines, "\n")
		num, _ := ChapterNumber(title)
		return []Chapter{{
			Title:      title,
			Content:    content,
			Level:      1,
			Order:      0,
			Number:     num,
			TokenCount: counter.Count(content),
		}}
	}

	var chapters []Chapter
	order := 0

	if lead := joinLines(lines[:heads[0].line]); lead != "" {
		chapters = append(chapters, Chapter{
			Title:      FrontMatterTitle,
			Content:    lead,
			Level:      1,
			Order:      order,
			TokenCount: counter.Count(lead),
		})
		order++
	}

	for i, h := range heads {
		end := len(lines)
		if i+1 < len(heads) {
			end = heads[i+1].line
		}
		content := joinLines(lines[h.line+1 : end])
		level := h.level
		if level < 1 {
			level = 1
		}
		chapters = append(chapters, Chapter{
			Title:      h.title,
			Content:    content,
			Level:      level,
			Order:      order,
			Number:     h.num,
			TokenCount: counter.Count(content),
		})
		order++
	}
	return chapters
}

func joinLines(lines []string) string {
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func titleFromSource(sourceName string) string {
	base := filepath.Base(sourceName)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" || base == "." {
		return "document"
	}
	return base
}
