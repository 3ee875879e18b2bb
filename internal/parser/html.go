package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTMLParser handles HTML files, flattening them into markdown-style
// text: h1-h6 become #-lines, block content becomes blank-separated
// paragraphs.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	title := findTitle(doc)
	if title == "" {
		title = TitleFromFilename(filename)
	}

	var buf strings.Builder
	body := findBody(doc)
	if body == nil {
		body = doc
	}
	renderBlocks(body, &buf)

	return &Document{
		Title: title,
		Text:  Normalize(strings.TrimSpace(buf.String())),
	}, nil
}

// renderBlocks walks the HTML and writes headings and paragraph text
// as blank-separated markdown blocks.
func renderBlocks(n *html.Node, buf *strings.Builder) {
	if n.Type == html.ElementNode {
		if level := headingLevel(n.Data); level > 0 {
			writeBlock(buf, strings.Repeat("#", level)+" "+textContent(n))
			return
		}
		switch n.Data {
		case "script", "style", "nav", "footer", "header":
			return
		case "p", "li", "td", "blockquote", "pre":
			if t := textContent(n); t != "" {
				writeBlock(buf, t)
			}
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderBlocks(c, buf)
	}
}

func writeBlock(buf *strings.Builder, block string) {
	if buf.Len() > 0 {
		buf.WriteString("\n\n")
	}
	buf.WriteString(block)
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
