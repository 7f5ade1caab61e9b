package pagedoc

import "testing"

func TestStyleStack(t *testing.T) {
	def := Style{Family: "Helvetica", Size: 10}
	st := NewStyleStack(def)

	if st.Depth() != 0 || st.Current() != def {
		t.Fatalf("fresh stack: depth %d, current %+v", st.Depth(), st.Current())
	}

	bold := def.WithWeight(WeightBold)
	code := Style{Family: "Courier", Size: 8}
	st.Push(bold)
	st.Push(code)
	if st.Current() != code || st.Depth() != 2 {
		t.Fatalf("after two pushes: depth %d, current %+v", st.Depth(), st.Current())
	}

	if !st.Pop() || st.Current() != bold {
		t.Fatalf("expected bold after pop, got %+v", st.Current())
	}
	if !st.Pop() || st.Current() != def {
		t.Fatalf("expected default after pop, got %+v", st.Current())
	}
}

func TestStyleStackDefaultNeverPopped(t *testing.T) {
	def := Style{Family: "Times", Size: 12}
	st := NewStyleStack(def)

	for range 3 {
		if st.Pop() {
			t.Fatal("pop at depth 0 reported a removal")
		}
	}
	if st.Current() != def {
		t.Fatalf("default style changed: %+v", st.Current())
	}
}

func TestWithWeightCopies(t *testing.T) {
	s := Style{Family: "Helvetica", Size: 10}
	b := s.WithWeight(WeightBold)
	if s.Weight != WeightRegular {
		t.Fatalf("original modified: %q", s.Weight)
	}
	if b.Weight != WeightBold {
		t.Fatalf("copy weight = %q", b.Weight)
	}
}

// Renderers must leave the stack as they found it.
func TestRenderersRestoreStyle(t *testing.T) {
	r := newTestRenderer(t)
	doc := NewDocument(r.cfg)
	total := doc.tokens.Register(TokenTotalPages, r.cfg.ReservedPageDigits, func() (string, error) { return "1", nil })
	rc := &renderContext{
		cfg:     r.cfg,
		doc:     doc,
		lm:      NewLayoutManager(r.cfg, doc, NewHeaderFooter(r.cfg, r.measure, total), nil),
		styles:  NewStyleStack(r.cfg.DefaultStyle),
		measure: r.measure,
	}

	blocks := []Block{
		Heading{Level: 2, Text: "Section"},
		Paragraph{Text: "text"},
		Bullet{Text: "item"},
		Code("a := 1"),
		KeyValue{Label: "Key:", Text: "value"},
		TOCEntry{Number: "1.", Title: "Intro", Page: 1},
		TextLine{Text: "centered", Align: "C"},
		Rule{},
	}
	for _, b := range blocks {
		if err := rc.render(b); err != nil {
			t.Fatalf("render %T: %v", b, err)
		}
		if rc.styles.Depth() != 0 || rc.styles.Current() != r.cfg.DefaultStyle {
			t.Fatalf("%T left style depth %d, current %+v", b, rc.styles.Depth(), rc.styles.Current())
		}
	}
}
