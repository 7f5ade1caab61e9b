package doctpl

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/lvillar/pagedoc"
	"github.com/lvillar/pagedoc/internal/pdfinspect"
)

func TestRenderMinimalDocument(t *testing.T) {
	doc := Document{
		Elements: []Element{
			{Type: "paragraph", Text: "Hello, World!"},
		},
	}

	var buf bytes.Buffer
	if err := RenderDocument(&buf, &doc); err != nil {
		t.Fatalf("RenderDocument failed: %v", err)
	}

	// Check it starts with %PDF
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output does not start with %PDF header")
	}
}

func TestRenderFromJSON(t *testing.T) {
	jsonTemplate := `{
		"title": "Test Document",
		"author": "Test Author",
		"header": "Test Document",
		"footer": "Draft",
		"pageSize": "A4",
		"elements": [
			{"type": "heading", "text": "Chapter 1", "level": 1},
			{"type": "paragraph", "text": "This is the first paragraph."},
			{"type": "hr"},
			{"type": "pagebreak"},
			{"type": "heading", "text": "Section 1.1", "level": 2},
			{"type": "text", "text": "Centered", "align": "C"}
		]
	}`

	var buf bytes.Buffer
	if err := Render(&buf, []byte(jsonTemplate)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	f, err := pdfinspect.Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if f.NumPages() != 2 {
		t.Fatalf("expected 2 pages, got %d", f.NumPages())
	}
	if !f.Pages[0].Contains("Chapter 1") || !f.Pages[0].Contains("Page 1/  2") {
		t.Fatalf("page 1: %q", f.Pages[0].Strings())
	}
	if !f.Pages[1].Contains("Centered") || !f.Pages[1].Contains("Draft") {
		t.Fatalf("page 2: %q", f.Pages[1].Strings())
	}
}

func TestRenderFromYAML(t *testing.T) {
	yamlTemplate := `
title: Report
pageSize: Letter
margin: {top: 15, right: 15, bottom: 25, left: 15}
elements:
  - type: toc
    number: "1."
    title: Overview
    anchor: overview
  - type: pagebreak
  - type: heading
    level: 1
    text: 1. Overview
    anchor: overview
  - type: list
    items: [alpha, beta, gamma]
  - type: code
    text: |
      first
      second
  - type: keyvalue
    label: "Owner:"
    text: platform team
`

	var buf bytes.Buffer
	if err := Render(&buf, []byte(yamlTemplate)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	f, err := pdfinspect.Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if f.NumPages() != 2 {
		t.Fatalf("expected 2 pages, got %d", f.NumPages())
	}
	if !f.Pages[0].Contains(pagedoc.TOCRow(70, "1.", "Overview", "  2")) {
		t.Fatalf("toc row not resolved to page 2: %q", f.Pages[0].Strings())
	}
	for _, want := range []string{"- alpha", "- gamma", "first", "second", "Owner:"} {
		if !f.Pages[1].Contains(want) {
			t.Fatalf("page 2 misses %q: %q", want, f.Pages[1].Strings())
		}
	}
}

func TestBlocks(t *testing.T) {
	red := pagedoc.Color{R: 200}
	doc := Document{Elements: []Element{
		{Type: "heading", Level: 2, Text: "Title", Anchor: "t"},
		{Type: "bullet", Text: "one", Indent: 12},
		{Type: "list", Items: []string{"a", "b"}},
		{Type: "code", Lines: []string{"x", "y"}},
		{Type: "code", Text: "z\n"},
		{Type: "toc", Number: "3.1", Title: "Sub", Page: 4, Level: 2},
		{Type: "text", Text: "Big", Align: "C", Font: &Font{Style: "B", Size: 20}, Color: &red},
		{Type: "spacer", Height: 5},
		{Type: "rule", Width: 40},
		{Type: "PageBreak"},
	}}

	got, err := doc.Blocks()
	if err != nil {
		t.Fatalf("Blocks failed: %v", err)
	}
	want := []pagedoc.Block{
		pagedoc.Heading{Level: 2, Text: "Title", Anchor: "t"},
		pagedoc.Bullet{Text: "one", Indent: 12},
		pagedoc.Bullet{Text: "a"},
		pagedoc.Bullet{Text: "b"},
		pagedoc.CodeBlock{Lines: []string{"x", "y"}},
		pagedoc.CodeBlock{Lines: []string{"z"}},
		pagedoc.TOCEntry{Number: "3.1", Title: "Sub", Page: 4, Indent: 1},
		pagedoc.TextLine{Text: "Big", Align: "C", Style: &pagedoc.Style{Family: "Helvetica", Weight: "B", Size: 20, Color: red}},
		pagedoc.Spacer{Height: 5},
		pagedoc.Rule{Width: 40},
		pagedoc.PageBreak{},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Blocks:\n got %#v\nwant %#v", got, want)
	}
}

func TestUnknownElementType(t *testing.T) {
	doc := Document{Elements: []Element{{Type: "paragraph"}, {Type: "image"}}}
	_, err := doc.Blocks()
	if !errors.Is(err, pagedoc.ErrUnknownBlock) {
		t.Fatalf("got %v, want ErrUnknownBlock", err)
	}
	if !strings.Contains(err.Error(), "element 2") {
		t.Fatalf("error should name the element: %v", err)
	}
}

func TestInvalidHeadingLevel(t *testing.T) {
	doc := Document{Elements: []Element{{Type: "heading", Level: 6, Text: "Too deep"}}}
	if _, err := doc.Blocks(); err == nil {
		t.Fatal("expected error for heading level 6")
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	for name, data := range map[string]string{
		"json": `{"elements": [{"type": "paragraph", "txt": "typo"}]}`,
		"yaml": "elements:\n  - type: paragraph\n    txt: typo\n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(data)); err == nil {
				t.Fatal("expected error for unknown field")
			}
		})
	}
}

func TestUnknownPageSize(t *testing.T) {
	doc := Document{PageSize: "B52", Elements: []Element{{Type: "paragraph", Text: "x"}}}
	var buf bytes.Buffer
	err := RenderDocument(&buf, &doc)
	if !errors.Is(err, pagedoc.ErrConfiguration) {
		t.Fatalf("got %v, want ErrConfiguration", err)
	}
	if buf.Len() != 0 {
		t.Fatal("nothing should be written on failure")
	}
}

func TestTemplateOverridesOptions(t *testing.T) {
	doc := Document{Header: "From template"}
	opts := append([]pagedoc.Option{pagedoc.WithHeaderTitle("From caller")}, doc.Options()...)
	r, err := pagedoc.New(opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := r.Config().Header.Title; got != "From template" {
		t.Fatalf("header title %q", got)
	}
}

func TestRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	doc := Document{Elements: []Element{{Type: "paragraph", Text: "saved"}}}
	if err := RenderFile(path, &doc); err != nil {
		t.Fatalf("RenderFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("file does not start with %PDF header")
	}
}
