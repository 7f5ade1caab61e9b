package pagedoc

import (
	"bytes"
	"io"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

// Write encodes a laid out document as PDF and writes it to w in a single
// call. Unresolved documents are resolved first. Nothing reaches w unless
// encoding succeeded as a whole.
func (r *Renderer) Write(w io.Writer, doc *Document) error {
	if !doc.Finalized() {
		if err := doc.resolve(r.log); err != nil {
			return err
		}
	}
	data, err := encode(doc)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return newError("Write", ErrSinkWrite, err)
	}
	r.log.Debug("Document written", zap.Int("pages", doc.PageCount()), zap.Int("bytes", len(data)))
	return nil
}

// encode replays the recorded primitives through the PDF writer. All
// placement is final, so the writer's own margins, cell padding and page
// breaking are switched off.
func encode(doc *Document) ([]byte, error) {
	cfg := doc.Config
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        cfg.Unit,
		Size:           gofpdf.SizeType{Wd: cfg.PageWidth, Ht: cfg.PageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(0)
	pdf.SetCompression(cfg.Compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(cfg.CreationDate)
	if cfg.Title != "" {
		pdf.SetTitle(cfg.Title, true)
	}
	if cfg.Author != "" {
		pdf.SetAuthor(cfg.Author, true)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, p := range doc.Pages {
		pdf.AddPage()
		draw(pdf, tr, p.Header.Primitives)
		draw(pdf, tr, p.Body)
		draw(pdf, tr, p.Footer.Primitives)
		if pdf.Err() {
			return nil, newError("Write", ErrSinkWrite, pdf.Error())
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, newError("Write", ErrSinkWrite, err)
	}
	return buf.Bytes(), nil
}

func draw(pdf *gofpdf.Fpdf, tr func(string) string, prims []Primitive) {
	for _, p := range prims {
		switch p := p.(type) {
		case *Text:
			pdf.SetFont(p.Style.Family, p.Style.Weight, p.Style.Size)
			pdf.SetTextColor(p.Style.Color.R, p.Style.Color.G, p.Style.Color.B)
			pdf.SetXY(p.X, p.Y)
			// zero width means "up to the right margin" to the writer
			pdf.CellFormat(max(p.W, tolerance), p.H, tr(p.Text), "", 0, "L", false, 0, "")
		case *Line:
			pdf.SetDrawColor(p.Color.R, p.Color.G, p.Color.B)
			pdf.SetLineWidth(p.Width)
			pdf.Line(p.X1, p.Y1, p.X2, p.Y2)
		case *Rect:
			style := ""
			if p.Fill != nil {
				pdf.SetFillColor(p.Fill.R, p.Fill.G, p.Fill.B)
				style += "F"
			}
			if p.Border != nil {
				pdf.SetDrawColor(p.Border.R, p.Border.G, p.Border.B)
				pdf.SetLineWidth(ruleWidth)
				style += "D"
			}
			if style != "" {
				pdf.Rect(p.X, p.Y, p.W, p.H, style)
			}
		}
	}
}
