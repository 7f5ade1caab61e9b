package pagedoc

import (
	"go.uber.org/zap"
)

// Placement tells a block renderer where its space was found.
type Placement int

const (
	SamePage Placement = iota // the block fits below the cursor
	NewPage                   // a page break happened first
)

func (p Placement) String() string {
	if p == NewPage {
		return "new page"
	}
	return "same page"
}

// tolerance absorbs float error when heights are summed line by line.
const tolerance = 1e-9

// Cursor is the writing position on the current page.
type Cursor struct {
	X, Y float64
}

// Decorator draws the running bands of a page. Header is called once when
// a page is created, Footer once when it is finished.
type Decorator interface {
	Header(p *Page)
	Footer(p *Page)
}

// LayoutManager owns the page sequence and the cursor. It decides page
// breaks; renderers ask it for space and never place content on their own.
type LayoutManager struct {
	cfg   Config
	doc   *Document
	bands Decorator
	log   *zap.Logger

	page     *Page
	cur      Cursor
	finished bool
}

// NewLayoutManager returns a manager appending pages to doc.
func NewLayoutManager(cfg Config, doc *Document, bands Decorator, log *zap.Logger) *LayoutManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &LayoutManager{cfg: cfg, doc: doc, bands: bands, log: log}
}

// Start opens the first page.
func (lm *LayoutManager) Start() {
	if lm.page == nil {
		lm.newPage()
	}
}

// Page returns the current page.
func (lm *LayoutManager) Page() *Page {
	return lm.page
}

// Cursor returns the current writing position.
func (lm *LayoutManager) Cursor() Cursor {
	return lm.cur
}

// EnsureSpace makes sure a block of height h can be drawn at the cursor,
// breaking the page first when it would cross the bottom margin. Nothing
// is reserved.
//
// A block that does not fit with the cursor still at the content top stays
// there and overflows the margin: it can not be split, and another page
// would not be taller.
func (lm *LayoutManager) EnsureSpace(h float64) Placement {
	lm.Start()
	if lm.cur.Y+h <= lm.cfg.BreakY()+tolerance {
		return SamePage
	}
	if lm.atTop() {
		if lm.page.Overflow {
			return SamePage
		}
		lm.page.Overflow = true
		lm.log.Warn("Block taller than printable area, overflowing bottom margin",
			zap.Int("page", lm.page.Number),
			zap.Float64("height", h),
			zap.Float64("available", lm.cfg.BreakY()-lm.cur.Y))
		return SamePage
	}
	lm.log.Debug("Page break",
		zap.Int("page", lm.page.Number),
		zap.Float64("y", lm.cur.Y),
		zap.Float64("height", h))
	lm.newPage()
	return NewPage
}

// Advance reserves height h and returns the y at which the caller draws.
// When the block does not fit the current page it is placed whole on the
// next one and NewPage is reported.
func (lm *LayoutManager) Advance(h float64) (float64, Placement) {
	pl := lm.EnsureSpace(h)
	y := lm.cur.Y
	lm.cur.Y += h
	return y, pl
}

// Skip moves the cursor down by h without breaking the page. Whitespace
// past the bottom margin is harmless: the next block breaks instead, since
// the cursor has left the content top.
func (lm *LayoutManager) Skip(h float64) {
	lm.Start()
	if h > 0 {
		lm.cur.Y += h
	}
}

// BreakPage finishes the current page and starts a new one.
func (lm *LayoutManager) BreakPage() {
	lm.Start()
	lm.newPage()
}

// Draw records a body primitive on the current page.
func (lm *LayoutManager) Draw(p Primitive) {
	lm.Start()
	lm.page.Body = append(lm.page.Body, p)
}

// Anchor records that the anchor name lives on the current page.
func (lm *LayoutManager) Anchor(name string) {
	lm.Start()
	if _, ok := lm.doc.anchors[name]; !ok {
		lm.doc.anchors[name] = lm.page.Number
	}
}

// Finish draws the footer of the last page. Further calls do nothing.
func (lm *LayoutManager) Finish() {
	lm.Start()
	if lm.finished {
		return
	}
	lm.bands.Footer(lm.page)
	lm.finished = true
}

func (lm *LayoutManager) newPage() {
	if lm.page != nil {
		lm.bands.Footer(lm.page)
	}
	p := &Page{
		Number: len(lm.doc.Pages) + 1,
		Width:  lm.cfg.PageWidth,
		Height: lm.cfg.PageHeight,
		Header: &Band{},
		Footer: &Band{},
	}
	lm.doc.Pages = append(lm.doc.Pages, p)
	lm.page = p
	lm.bands.Header(p)
	lm.cur = Cursor{X: lm.cfg.Margins.Left, Y: lm.cfg.ContentTop()}
}

// atTop reports whether nothing, whitespace included, has moved the cursor
// on the current page.
func (lm *LayoutManager) atTop() bool {
	return lm.cur.Y <= lm.cfg.ContentTop()+tolerance
}
