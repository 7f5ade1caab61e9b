// Package doctpl describes pagedoc documents in JSON or YAML.
//
// A template is a flat list of typed elements, each mapping to one pagedoc
// block (a "list" element expands to one bullet per item):
//
//	title: Engine report
//	header: Engine report
//	footer: Internal use only
//	pageSize: A4
//	elements:
//	  - {type: heading, level: 1, text: "1. Introduction", anchor: intro}
//	  - {type: paragraph, text: "Some body text here."}
//	  - {type: list, items: [first, second]}
//	  - {type: code, lines: ["go build ./..."]}
//	  - {type: toc, number: "1.", title: Introduction, anchor: intro}
//
// The same document as JSON is accepted too.
package doctpl

import "github.com/lvillar/pagedoc"

// Document is the top-level template.
type Document struct {
	Title    string    `json:"title,omitempty" yaml:"title,omitempty"`
	Author   string    `json:"author,omitempty" yaml:"author,omitempty"`
	Header   string    `json:"header,omitempty" yaml:"header,omitempty"`     // running title on every page
	Footer   string    `json:"footer,omitempty" yaml:"footer,omitempty"`     // caption on every page
	PageSize string    `json:"pageSize,omitempty" yaml:"pageSize,omitempty"` // A4, Letter, Legal... (default: configured size)
	Margin   *Margin   `json:"margin,omitempty" yaml:"margin,omitempty"`
	Elements []Element `json:"elements" yaml:"elements"`
}

// Margin defines page margins.
type Margin struct {
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
}

// Font specifies a font face. Empty fields fall back to Helvetica,
// regular, 10pt.
type Font struct {
	Family string  `json:"family,omitempty" yaml:"family,omitempty"` // Helvetica, Courier, Times
	Style  string  `json:"style,omitempty" yaml:"style,omitempty"`   // "" (regular), "B" (bold), "I" (italic), "BI"
	Size   float64 `json:"size,omitempty" yaml:"size,omitempty"`
}

// Element is a single block of the document.
// The Type field determines which other fields are relevant.
type Element struct {
	Type string `json:"type" yaml:"type"` // heading, paragraph, bullet, list, code, keyvalue, toc, text, spacer, rule (hr), pagebreak

	// heading, paragraph, bullet, keyvalue, text; code when lines is empty
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// heading 1-3; toc nesting, 1 for top-level rows
	Level  int    `json:"level,omitempty" yaml:"level,omitempty"`
	Anchor string `json:"anchor,omitempty" yaml:"anchor,omitempty"` // heading, toc

	// bullet, list
	Indent float64  `json:"indent,omitempty" yaml:"indent,omitempty"`
	Items  []string `json:"items,omitempty" yaml:"items,omitempty"`

	// code
	Lines []string `json:"lines,omitempty" yaml:"lines,omitempty"`

	// keyvalue
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// toc
	Number string `json:"number,omitempty" yaml:"number,omitempty"`
	Title  string `json:"title,omitempty" yaml:"title,omitempty"`
	Page   int    `json:"page,omitempty" yaml:"page,omitempty"`

	// text
	Align string `json:"align,omitempty" yaml:"align,omitempty"` // L, C, R
	Font  *Font  `json:"font,omitempty" yaml:"font,omitempty"`

	// text, rule
	Color *pagedoc.Color `json:"color,omitempty" yaml:"color,omitempty"`

	// spacer, text
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`

	// rule
	Width float64 `json:"width,omitempty" yaml:"width,omitempty"`
}
