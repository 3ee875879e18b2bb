package parser

import "testing"

func TestForFile_KnownExtensions(t *testing.T) {
	cases := map[string]Parser{
		"a.txt":      &TextParser{},
		"b.md":       &MarkdownParser{},
		"c.markdown": &MarkdownParser{},
		"d.HTML":     &HTMLParser{},
		"e.pdf":      &PDFParser{},
		"f.docx":     &DOCXParser{},
		"g.epub":     &EPUBParser{},
	}
	for name := range cases {
		p, err := ForFile(name)
		if err != nil {
			t.Errorf("ForFile(%q): unexpected error %v", name, err)
			continue
		}
		if p == nil {
			t.Errorf("ForFile(%q): nil parser", name)
		}
	}
}

func TestForFile_UnsupportedExtension(t *testing.T) {
	if _, err := ForFile("sheet.xlsx"); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if IsSupportedExtension("sheet.xlsx") {
		t.Error("xlsx must not be supported")
	}
	if !IsSupportedExtension("Book.EPUB") {
		t.Error("extension check must be case-insensitive")
	}
}

func TestTitleFromFilename(t *testing.T) {
	cases := []struct{ in, want string }{
		{"/uploads/机器人学导论.pdf", "机器人学导论"},
		{"notes.txt", "notes"},
		{"archive.tar.gz", "archive.tar"},
		{"", "document"},
	}
	for _, c := range cases {
		if got := TitleFromFilename(c.in); got != c.want {
			t.Errorf("TitleFromFilename(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
