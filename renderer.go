// Package pagedoc lays out structured documents (headings, paragraphs,
// bullets, code blocks, key-value lines and a table of contents) on
// fixed-size pages with a running header and footer, and writes them as
// PDF.
//
// Rendering happens in two passes. The first pass walks the blocks once,
// breaking pages so that no block is ever split, and records every drawn
// primitive per page. Values unknown until layout is over, such as the
// total page count in the header, are written as fixed-width placeholder
// tokens. The second pass resolves the tokens and substitutes them in
// place, without moving anything, before the document is encoded.
//
//	r, err := pagedoc.New(
//	    pagedoc.WithHeaderTitle("Quarterly report"),
//	    pagedoc.WithFooterCaption("Internal use only"),
//	)
//	if err != nil {
//	    return err
//	}
//	err = r.Render(w, []pagedoc.Block{
//	    pagedoc.Heading{Level: 1, Text: "1. Introduction"},
//	    pagedoc.Paragraph{Text: "..."},
//	})
package pagedoc

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"
)

// Renderer turns block sequences into documents. It keeps no state between
// calls: the same blocks always produce the same bytes.
type Renderer struct {
	cfg     Config
	log     *zap.Logger
	measure Measurer
}

// New creates a Renderer. Without options it lays out A4 portrait pages in
// millimeters using the PDF core fonts.
func New(opts ...Option) (*Renderer, error) {
	s := &settings{cfg: DefaultConfig(), log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	if s.measure == nil {
		s.measure = NewFontMeasurer(s.cfg.Unit)
	}
	return &Renderer{cfg: s.cfg, log: s.log, measure: s.measure}, nil
}

// Config returns the configuration in use.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Layout runs the layout pass over blocks and resolves deferred
// references. The returned document is finalized.
func (r *Renderer) Layout(blocks []Block) (*Document, error) {
	doc, err := r.layout(blocks)
	if err != nil {
		return nil, err
	}
	if err := doc.resolve(r.log); err != nil {
		return nil, err
	}
	return doc, nil
}

// LayoutUnresolved runs only the layout pass. Text still holds placeholder
// tokens; call Document.Resolve before reading it.
func (r *Renderer) LayoutUnresolved(blocks []Block) (*Document, error) {
	return r.layout(blocks)
}

func (r *Renderer) layout(blocks []Block) (*Document, error) {
	doc := NewDocument(r.cfg)
	total := doc.tokens.Register(TokenTotalPages, r.cfg.ReservedPageDigits, func() (string, error) {
		return strconv.Itoa(len(doc.Pages)), nil
	})
	lm := NewLayoutManager(r.cfg, doc, NewHeaderFooter(r.cfg, r.measure, total), r.log)
	rc := &renderContext{
		cfg:     r.cfg,
		doc:     doc,
		lm:      lm,
		styles:  NewStyleStack(r.cfg.DefaultStyle),
		measure: r.measure,
	}

	lm.Start()
	for i, b := range blocks {
		if err := rc.render(b); err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
	}
	lm.Finish()

	r.log.Debug("Layout complete",
		zap.Int("blocks", len(blocks)),
		zap.Int("pages", doc.PageCount()),
		zap.Int("tokens", doc.tokens.Len()))
	return doc, nil
}

// Render lays out blocks and writes the PDF to w. On error nothing has
// been written to w.
func (r *Renderer) Render(w io.Writer, blocks []Block) error {
	doc, err := r.Layout(blocks)
	if err != nil {
		return err
	}
	return r.Write(w, doc)
}

// RenderFile renders blocks into the file at path. The file is replaced
// atomically, so a failed render never leaves a partial document behind.
func (r *Renderer) RenderFile(path string, blocks []Block) error {
	var buf bytes.Buffer
	if err := r.Render(&buf, blocks); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return newError("RenderFile", ErrSinkWrite, err)
	}
	r.log.Debug("Document saved", zap.String("path", path))
	return nil
}
