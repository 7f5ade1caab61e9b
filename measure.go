package pagedoc

import (
	"strings"
	"unicode/utf8"

	"github.com/jung-kurt/gofpdf"
)

// Measurer reports the rendered width of text in a given style, in the
// document unit.
type Measurer interface {
	StringWidth(s Style, text string) float64
}

// fontMeasurer answers width queries with the PDF writer's own core font
// metrics, so layout agrees with what the emitter draws.
type fontMeasurer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

// NewFontMeasurer returns a Measurer backed by the standard PDF core fonts.
func NewFontMeasurer(unit string) Measurer {
	pdf := gofpdf.New("P", unit, "A4", "")
	return &fontMeasurer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (m *fontMeasurer) StringWidth(s Style, text string) float64 {
	m.pdf.SetFont(s.Family, s.Weight, s.Size)
	return m.pdf.GetStringWidth(m.tr(text))
}

// wrapText breaks text into lines no wider than width. Words are added to
// a line while it still fits; a newline always ends a line and a word
// wider than width on its own is cut between characters.
func wrapText(m Measurer, s Style, text string, width float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			for m.StringWidth(s, word) > width && utf8.RuneCountInString(word) > 1 {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				var head string
				head, word = cutToWidth(m, s, word, width)
				lines = append(lines, head)
			}
			if line == "" {
				line = word
				continue
			}
			if candidate := line + " " + word; m.StringWidth(s, candidate) <= width {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = word
		}
		lines = append(lines, line)
	}
	return lines
}

// cutToWidth splits word after the longest prefix that fits width. The
// prefix always holds at least one rune.
func cutToWidth(m Measurer, s Style, word string, width float64) (string, string) {
	cut := 0
	for i, r := range word {
		next := i + utf8.RuneLen(r)
		if cut > 0 && m.StringWidth(s, word[:next]) > width {
			break
		}
		cut = next
	}
	return word[:cut], word[cut:]
}
