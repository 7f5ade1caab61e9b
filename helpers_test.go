package pagedoc

import (
	"strings"
	"testing"
	"unicode/utf8"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// monoMeasurer gives every rune the same width regardless of style, which
// keeps expected geometry easy to compute by hand.
type monoMeasurer float64

func (m monoMeasurer) StringWidth(_ Style, text string) float64 {
	return float64(utf8.RuneCountInString(text)) * float64(m)
}

func newTestRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	opts = append([]Option{WithMeasurer(monoMeasurer(2)), WithLogger(log)}, opts...)
	r, err := New(opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return r
}

func texts(prims []Primitive) []*Text {
	var out []*Text
	for _, p := range prims {
		if t, ok := p.(*Text); ok {
			out = append(out, t)
		}
	}
	return out
}

func findText(prims []Primitive, prefix string) *Text {
	for _, t := range texts(prims) {
		if strings.HasPrefix(t.Text, prefix) {
			return t
		}
	}
	return nil
}

func rects(prims []Primitive) []*Rect {
	var out []*Rect
	for _, p := range prims {
		if r, ok := p.(*Rect); ok {
			out = append(out, r)
		}
	}
	return out
}
