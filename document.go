package pagedoc

// Primitive is a drawing operation recorded on a page. The set of
// primitives is closed: Text, Line and Rect.
type Primitive interface {
	// Extent returns the vertical span [top, bottom] the primitive covers.
	Extent() (top, bottom float64)
	primitive()
}

// Text is a single line of text. X is where the text starts, W its
// measured width and H the height of the line box whose top is Y; the
// text is vertically centered in that box. Alignment is resolved during
// layout, so X is final.
type Text struct {
	X, Y, W, H float64
	Text       string
	Style      Style
}

// Line is a straight stroke.
type Line struct {
	X1, Y1, X2, Y2 float64
	Color          Color
	Width          float64
}

// Rect is an axis aligned rectangle. A nil Fill or Border skips that part.
type Rect struct {
	X, Y, W, H float64
	Fill       *Color
	Border     *Color
}

func (t *Text) Extent() (float64, float64) { return t.Y, t.Y + t.H }
func (l *Line) Extent() (float64, float64) { return min(l.Y1, l.Y2), max(l.Y1, l.Y2) }
func (r *Rect) Extent() (float64, float64) { return r.Y, r.Y + r.H }

func (*Text) primitive() {}
func (*Line) primitive() {}
func (*Rect) primitive() {}

// Band is the header or footer area of a page.
type Band struct {
	Top, Bottom float64
	Primitives  []Primitive
}

func (b *Band) add(p Primitive) {
	b.Primitives = append(b.Primitives, p)
	top, bottom := p.Extent()
	if len(b.Primitives) == 1 {
		b.Top, b.Bottom = top, bottom
		return
	}
	b.Top = min(b.Top, top)
	b.Bottom = max(b.Bottom, bottom)
}

// Page is one fixed-size page of a laid out Document.
type Page struct {
	Number int // 1-based
	Width  float64
	Height float64
	Header *Band
	Body   []Primitive
	Footer *Band

	// Overflow is set when a block taller than the printable height was
	// placed on this page and runs past the bottom margin.
	Overflow bool
}

// Document is the result of laying out a block sequence: the pages with
// their recorded primitives and the deferred tokens still to resolve.
type Document struct {
	Config Config
	Pages  []*Page

	tokens    *Registry
	anchors   map[string]int // anchor name -> page number
	finalized bool
}

// NewDocument returns an empty document laid out with cfg.
func NewDocument(cfg Config) *Document {
	return &Document{
		Config:  cfg,
		tokens:  newRegistry(),
		anchors: make(map[string]int),
	}
}

// AnchorPage returns the page holding the heading with the given anchor.
func (d *Document) AnchorPage(name string) (int, bool) {
	n, ok := d.anchors[name]
	return n, ok
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Finalized reports whether deferred references have been resolved.
// A finalized document must not be modified.
func (d *Document) Finalized() bool {
	return d.finalized
}

// Tokens returns the deferred token registry of the document.
func (d *Document) Tokens() *Registry {
	return d.tokens
}
