package pagedoc

import "fmt"

// ruleWidth is the stroke width of header, footer and heading rules.
const ruleWidth = 0.2

// PageLabel formats the page number label of the running header.
func PageLabel(page int, total string) string {
	return fmt.Sprintf("Page %d/%s", page, total)
}

// HeaderFooter draws the running header and footer. The header's page
// label refers to the total page count through a deferred token.
type HeaderFooter struct {
	cfg     Config
	measure Measurer
	total   *Token
}

// NewHeaderFooter returns a Decorator drawing the bands described by cfg.
func NewHeaderFooter(cfg Config, m Measurer, total *Token) *HeaderFooter {
	return &HeaderFooter{cfg: cfg, measure: m, total: total}
}

// Header draws the title on the left and "Page n/TOTAL" on the right,
// followed by a rule. The label is placed using the reserved width of the
// total, so resolving it later moves nothing.
func (hf *HeaderFooter) Header(p *Page) {
	h := hf.cfg.Header
	left, width, y := hf.cfg.Margins.Left, hf.cfg.ContentWidth(), hf.cfg.Margins.Top

	if h.Title != "" {
		w := hf.measure.StringWidth(h.Style, h.Title)
		p.Header.add(&Text{X: left, Y: y, W: w, H: h.Height, Text: h.Title, Style: h.Style})
	}

	w := hf.measure.StringWidth(h.Style, PageLabel(p.Number, hf.total.Sample()))
	p.Header.add(&Text{
		X:     left + width - w,
		Y:     y,
		W:     w,
		H:     h.Height,
		Text:  PageLabel(p.Number, hf.total.Placeholder),
		Style: h.Style,
	})

	ry := y + h.Height + h.After/2
	p.Header.add(&Line{X1: left, Y1: ry, X2: left + width, Y2: ry, Color: h.Style.Color, Width: ruleWidth})
}

// Footer draws a rule and the centered caption at a fixed distance from
// the page bottom, independent of where the body ended.
func (hf *HeaderFooter) Footer(p *Page) {
	f := hf.cfg.Footer
	left, width := hf.cfg.Margins.Left, hf.cfg.ContentWidth()
	y := hf.cfg.PageHeight - f.Offset

	ry := y - f.RuleGap
	p.Footer.add(&Line{X1: left, Y1: ry, X2: left + width, Y2: ry, Color: f.Style.Color, Width: ruleWidth})

	if f.Caption != "" {
		w := hf.measure.StringWidth(f.Style, f.Caption)
		p.Footer.add(&Text{X: alignX("C", left, width, w), Y: y, W: w, H: f.Height, Text: f.Caption, Style: f.Style})
	}
}

// alignX returns where text of width w starts inside [left, left+width].
func alignX(align string, left, width, w float64) float64 {
	switch align {
	case "C":
		return left + (width-w)/2
	case "R":
		return left + width - w
	}
	return left
}
