package pagedoc

import "strings"

// Block is one unit of document content. The set of block kinds is
// closed; each kind is a plain value consumed once by its renderer.
type Block interface {
	block()
}

// Heading is a chapter (level 1), section (2) or sub-section (3) title.
// A non-empty Anchor records the page the heading lands on, for TOC
// entries that refer to it.
type Heading struct {
	Level  int
	Text   string
	Anchor string
}

// Paragraph is wrapped prose.
type Paragraph struct {
	Text string
}

// Bullet is a list item. Indent shifts it right of the left margin; zero
// selects the configured default.
type Bullet struct {
	Text   string
	Indent float64
}

// CodeBlock is fixed-width text in a bordered box. Lines are drawn as
// given, never wrapped.
type CodeBlock struct {
	Lines []string
}

// KeyValue is a bold label followed by wrapped text.
type KeyValue struct {
	Label string
	Text  string
}

// TOCEntry is one table of contents row. Page is printed literally; when
// it is zero and Anchor is set the page of the matching Heading is used.
// Indent is the nesting level, zero for top-level entries.
type TOCEntry struct {
	Number string
	Title  string
	Page   int
	Indent int
	Anchor string
}

// TextLine is a single unwrapped line with its own alignment ("L", "C",
// "R") and optional style and height, as used on title pages.
type TextLine struct {
	Text   string
	Align  string
	Style  *Style
	Height float64
}

// Spacer is vertical whitespace.
type Spacer struct {
	Height float64
}

// Rule is a horizontal line centered in the content width. Zero Width
// spans the whole content width.
type Rule struct {
	Width float64
	Color *Color
}

// PageBreak starts a new page.
type PageBreak struct{}

func (Heading) block()   {}
func (Paragraph) block() {}
func (Bullet) block()    {}
func (CodeBlock) block() {}
func (KeyValue) block()  {}
func (TOCEntry) block()  {}
func (TextLine) block()  {}
func (Spacer) block()    {}
func (Rule) block()      {}
func (PageBreak) block() {}

// Code returns a CodeBlock holding the lines of src.
func Code(src string) CodeBlock {
	return CodeBlock{Lines: strings.Split(strings.TrimSuffix(src, "\n"), "\n")}
}
