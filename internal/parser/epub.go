package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"
)

// EPUBParser handles .epub files by walking the spine in reading order
// and flattening each content document through the HTML renderer, so
// chapter headings survive as #-lines.
type EPUBParser struct{}

func (p *EPUBParser) Parse(r io.Reader, filename string) (*Document, error) {
	// goreader opens by path, so write to a temp file.
	tmpPath, err := spillTemp(r, "bookseg-epub-*.epub")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpPath)

	rc, err := epub.OpenReader(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}
	book := rc.Rootfiles[0]

	var buf strings.Builder
	for _, ref := range book.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		item, err := ref.Item.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(item)
		item.Close()
		if err != nil {
			continue
		}
		node, err := html.Parse(strings.NewReader(string(data)))
		if err != nil {
			continue
		}
		if body := findBody(node); body != nil {
			node = body
		}
		var section strings.Builder
		renderBlocks(node, &section)
		if s := strings.TrimSpace(section.String()); s != "" {
			writeBlock(&buf, s)
		}
	}

	title := strings.TrimSpace(book.Title)
	if title == "" {
		title = TitleFromFilename(filename)
	}

	return &Document{
		Title: title,
		Text:  Normalize(strings.TrimSpace(buf.String())),
	}, nil
}
