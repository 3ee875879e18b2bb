package parser

import (
	"fmt"
	"io"
)

// TextParser handles plain text files. The text is already in the
// engine's native shape; only normalization is needed.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	return &Document{
		Title: TitleFromFilename(filename),
		Text:  Normalize(string(data)),
	}, nil
}
