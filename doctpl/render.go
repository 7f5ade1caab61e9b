package doctpl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lvillar/pagedoc"
)

// Parse decodes a template. Data starting with '{' is read as JSON,
// anything else as YAML. Unknown fields are rejected in both.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("doctpl: parsing JSON template: %w", err)
		}
		return &doc, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("doctpl: parsing YAML template: %w", err)
	}
	return &doc, nil
}

// Render parses a template and writes the resulting PDF to w. Options
// configure the renderer; settings in the template take precedence.
func Render(w io.Writer, template []byte, opts ...pagedoc.Option) error {
	doc, err := Parse(template)
	if err != nil {
		return err
	}
	return RenderDocument(w, doc, opts...)
}

// RenderDocument renders a Document to a PDF written to w.
func RenderDocument(w io.Writer, doc *Document, opts ...pagedoc.Option) error {
	r, blocks, err := prepare(doc, opts)
	if err != nil {
		return err
	}
	return r.Render(w, blocks)
}

// RenderFile renders a Document into the file at path, replacing it
// atomically.
func RenderFile(path string, doc *Document, opts ...pagedoc.Option) error {
	r, blocks, err := prepare(doc, opts)
	if err != nil {
		return err
	}
	return r.RenderFile(path, blocks)
}

func prepare(doc *Document, opts []pagedoc.Option) (*pagedoc.Renderer, []pagedoc.Block, error) {
	blocks, err := doc.Blocks()
	if err != nil {
		return nil, nil, err
	}
	r, err := pagedoc.New(slices.Concat(opts, doc.Options())...)
	if err != nil {
		return nil, nil, fmt.Errorf("doctpl: %w", err)
	}
	return r, blocks, nil
}

// Options returns the renderer options set by the document itself.
func (d *Document) Options() []pagedoc.Option {
	var opts []pagedoc.Option
	if d.PageSize != "" {
		opts = append(opts, pagedoc.WithPageFormat(d.PageSize))
	}
	if d.Margin != nil {
		opts = append(opts, pagedoc.WithMargins(pagedoc.Margins{
			Top:    d.Margin.Top,
			Right:  d.Margin.Right,
			Bottom: d.Margin.Bottom,
			Left:   d.Margin.Left,
		}))
	}
	if d.Header != "" {
		opts = append(opts, pagedoc.WithHeaderTitle(d.Header))
	}
	if d.Footer != "" {
		opts = append(opts, pagedoc.WithFooterCaption(d.Footer))
	}
	if d.Title != "" || d.Author != "" {
		opts = append(opts, pagedoc.WithMetadata(d.Title, d.Author))
	}
	return opts
}

// Blocks converts the elements into the block sequence to lay out.
func (d *Document) Blocks() ([]pagedoc.Block, error) {
	blocks := make([]pagedoc.Block, 0, len(d.Elements))
	for i, elem := range d.Elements {
		var err error
		if blocks, err = appendElement(blocks, elem); err != nil {
			return nil, fmt.Errorf("doctpl: element %d: %w", i+1, err)
		}
	}
	return blocks, nil
}

func appendElement(blocks []pagedoc.Block, elem Element) ([]pagedoc.Block, error) {
	switch strings.ToLower(elem.Type) {
	case "heading":
		if elem.Level < 1 || elem.Level > 3 {
			return nil, fmt.Errorf("heading level %d, want 1-3", elem.Level)
		}
		return append(blocks, pagedoc.Heading{Level: elem.Level, Text: elem.Text, Anchor: elem.Anchor}), nil
	case "paragraph":
		return append(blocks, pagedoc.Paragraph{Text: elem.Text}), nil
	case "bullet":
		return append(blocks, pagedoc.Bullet{Text: elem.Text, Indent: elem.Indent}), nil
	case "list":
		for _, item := range elem.Items {
			blocks = append(blocks, pagedoc.Bullet{Text: item, Indent: elem.Indent})
		}
		return blocks, nil
	case "code":
		if len(elem.Lines) > 0 {
			return append(blocks, pagedoc.CodeBlock{Lines: elem.Lines}), nil
		}
		return append(blocks, pagedoc.Code(elem.Text)), nil
	case "keyvalue":
		return append(blocks, pagedoc.KeyValue{Label: elem.Label, Text: elem.Text}), nil
	case "toc":
		return append(blocks, pagedoc.TOCEntry{
			Number: elem.Number,
			Title:  elem.Title,
			Page:   elem.Page,
			Indent: max(elem.Level-1, 0),
			Anchor: elem.Anchor,
		}), nil
	case "text":
		return append(blocks, pagedoc.TextLine{
			Text:   elem.Text,
			Align:  elem.Align,
			Style:  elementStyle(elem),
			Height: elem.Height,
		}), nil
	case "spacer":
		return append(blocks, pagedoc.Spacer{Height: elem.Height}), nil
	case "rule", "hr":
		return append(blocks, pagedoc.Rule{Width: elem.Width, Color: elem.Color}), nil
	case "pagebreak":
		return append(blocks, pagedoc.PageBreak{}), nil
	}
	return nil, fmt.Errorf("%w %q", pagedoc.ErrUnknownBlock, elem.Type)
}

// elementStyle returns the style override of a text element, or nil when
// it sets neither font nor color.
func elementStyle(elem Element) *pagedoc.Style {
	if elem.Font == nil && elem.Color == nil {
		return nil
	}
	st := pagedoc.Style{Family: "Helvetica", Size: 10}
	if f := elem.Font; f != nil {
		if f.Family != "" {
			st.Family = f.Family
		}
		if f.Size > 0 {
			st.Size = f.Size
		}
		st.Weight = f.Style
	}
	if elem.Color != nil {
		st.Color = *elem.Color
	}
	return &st
}
