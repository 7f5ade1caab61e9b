package pdfinspect

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"testing"
)

// buildPDF writes a minimal file in the object layout of the PDF writer:
// one content stream per page, compressed when requested.
func buildPDF(t *testing.T, compress bool, pages ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.3\n")
	num := 3
	for _, content := range pages {
		fmt.Fprintf(&buf, "%d 0 obj\n<</Type /Page\n/Parent 1 0 R\n/Contents %d 0 R>>\nendobj\n", num, num+1)
		stream := []byte(content)
		filter := ""
		if compress {
			var z bytes.Buffer
			w := zlib.NewWriter(&z)
			if _, err := w.Write(stream); err != nil {
				t.Fatalf("compress: %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("compress: %v", err)
			}
			stream = z.Bytes()
			filter = "/Filter /FlateDecode "
		}
		fmt.Fprintf(&buf, "%d 0 obj\n<<%s/Length %d>>\nstream\n", num+1, filter, len(stream))
		buf.Write(stream)
		buf.WriteString("\nendstream\nendobj\n")
		num += 2
	}
	buf.WriteString("1 0 obj\n<</Type /Pages\n/Count 0>>\nendobj\n")
	buf.WriteString("trailer\n<<\n/Size 1\n>>\n%%EOF\n")
	return buf.Bytes()
}

func TestParsePages(t *testing.T) {
	data := buildPDF(t, false,
		"BT 28.35 800.00 Td (Hello) Tj ET",
		"BT 28.35 800.00 Td (Page 2/  2) Tj ET BT 10 10 Td (Bye) Tj ET",
	)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if f.NumPages() != 2 {
		t.Fatalf("expected 2 pages, got %d", f.NumPages())
	}
	if got := f.Pages[0].Text(); got != "Hello" {
		t.Fatalf("page 1 text = %q", got)
	}
	if got := f.Pages[1].Strings(); len(got) != 2 || got[0] != "Page 2/  2" || got[1] != "Bye" {
		t.Fatalf("page 2 strings = %q", got)
	}
	if !f.Pages[1].Contains("2/  2") {
		t.Fatal("expected page 2 to contain the resolved label")
	}
}

func TestParseCompressed(t *testing.T) {
	data := buildPDF(t, true, "BT 1 1 Td (Compressed \\(text\\)) Tj ET")

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if f.NumPages() != 1 {
		t.Fatalf("expected 1 page, got %d", f.NumPages())
	}
	if got := f.Pages[0].Text(); got != "Compressed (text)" {
		t.Fatalf("text = %q", got)
	}
}

func TestStringsOutsideTextObjectsIgnored(t *testing.T) {
	p := &Page{Content: []byte("(ignored) BT (shown) Tj ET (also ignored)")}
	got := p.Strings()
	if len(got) != 1 || got[0] != "shown" {
		t.Fatalf("strings = %q", got)
	}
}

func TestLiteralStringEscapes(t *testing.T) {
	s, next := literalString([]byte(`(a\\b\101(c)) rest`), 0)
	if s != `a\bA(c)` {
		t.Fatalf("decoded %q", s)
	}
	if next != 13 {
		t.Fatalf("next = %d", next)
	}
}

func TestParseRejectsNonPDF(t *testing.T) {
	if _, err := Parse([]byte("hello")); err == nil {
		t.Fatal("expected error for data without PDF header")
	}
}

func TestParseMissingContents(t *testing.T) {
	data := []byte("%PDF-1.3\n3 0 obj\n<</Type /Page\n/Parent 1 0 R>>\nendobj\n")
	if _, err := Parse(data); err == nil {
		t.Fatal("expected error for page without contents")
	}
}
