package parser

import (
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files. The text itself passes
// through normalization untouched: markdown is the engine's native
// input, and rewriting it could destroy the TOC markup the engine
// relies on to exclude fake headings. goldmark is used only to read
// the document title from the first level-1 heading.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read markdown: %w", err)
	}

	title := firstHeadingTitle(src)
	if title == "" {
		title = TitleFromFilename(filename)
	}

	return &Document{
		Title: title,
		Text:  Normalize(string(src)),
	}, nil
}

// firstHeadingTitle walks the goldmark AST for the first h1 text.
func firstHeadingTitle(src []byte) string {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != 1 {
			continue
		}
		var buf []byte
		for c := heading.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				buf = append(buf, t.Segment.Value(src)...)
			}
		}
		if len(buf) > 0 {
			return string(buf)
		}
	}
	return ""
}
