package pagedoc

import (
	"fmt"
	"strings"
)

// keyValueGap separates a key-value label from its text.
const keyValueGap = 1

// tabWidth is the number of spaces a tab expands to in code blocks.
const tabWidth = 4

// renderContext is the state shared by the block renderers during one
// layout pass.
type renderContext struct {
	cfg     Config
	doc     *Document
	lm      *LayoutManager
	styles  *StyleStack
	measure Measurer
}

// render dispatches a block to its renderer. Every renderer measures its
// block first, asks the layout manager for the whole height, then draws.
func (rc *renderContext) render(b Block) error {
	switch b := b.(type) {
	case Heading:
		rc.heading(b)
	case Paragraph:
		rc.paragraph(b)
	case Bullet:
		rc.bullet(b)
	case CodeBlock:
		rc.code(b)
	case KeyValue:
		rc.keyValue(b)
	case TOCEntry:
		return rc.tocEntry(b)
	case TextLine:
		return rc.textLine(b)
	case Spacer:
		rc.lm.Skip(b.Height)
	case Rule:
		rc.rule(b)
	case PageBreak:
		rc.lm.BreakPage()
	default:
		return newError("Render", ErrUnknownBlock, fmt.Errorf("%T", b))
	}
	return nil
}

func (rc *renderContext) heading(b Heading) {
	level := min(max(b.Level, 1), len(rc.cfg.Headings))
	hs := rc.cfg.Headings[level-1]
	rc.styles.Push(hs.Style)
	defer rc.styles.Pop()
	st := rc.styles.Current()

	left, width := rc.cfg.Margins.Left, rc.cfg.ContentWidth()
	lines := wrapText(rc.measure, st, b.Text, width)
	textH := float64(len(lines)) * hs.LineHeight

	y, _ := rc.lm.Advance(hs.Before + textH + hs.After)
	if b.Anchor != "" {
		rc.lm.Anchor(b.Anchor)
	}
	y += hs.Before
	rc.drawLines(lines, st, left, y, hs.LineHeight)
	if hs.Rule {
		ry := y + textH
		rc.lm.Draw(&Line{X1: left, Y1: ry, X2: left + width, Y2: ry, Color: st.Color, Width: ruleWidth})
	}
}

func (rc *renderContext) paragraph(b Paragraph) {
	rc.styles.Push(rc.cfg.DefaultStyle)
	defer rc.styles.Pop()
	st := rc.styles.Current()

	left, width := rc.cfg.Margins.Left, rc.cfg.ContentWidth()
	lines := wrapText(rc.measure, st, b.Text, width)
	y, _ := rc.lm.Advance(float64(len(lines)) * rc.cfg.LineHeight)
	rc.drawLines(lines, st, left, y, rc.cfg.LineHeight)
	rc.lm.Skip(rc.cfg.ParagraphAfter)
}

func (rc *renderContext) bullet(b Bullet) {
	rc.styles.Push(rc.cfg.DefaultStyle)
	defer rc.styles.Pop()
	st := rc.styles.Current()

	indent := b.Indent
	if indent <= 0 {
		indent = rc.cfg.BulletIndent
	}
	width := max(rc.cfg.ContentWidth()-indent, 0)
	lines := wrapText(rc.measure, st, rc.cfg.BulletGlyph+" "+b.Text, width)
	y, _ := rc.lm.Advance(float64(len(lines)) * rc.cfg.LineHeight)
	rc.drawLines(lines, st, rc.cfg.Margins.Left+indent, y, rc.cfg.LineHeight)
}

// code draws the box and its text as one unit: the box height includes
// the padding around the text, and that total is what must fit.
func (rc *renderContext) code(b CodeBlock) {
	cs := rc.cfg.Code
	rc.styles.Push(cs.Style)
	defer rc.styles.Pop()
	st := rc.styles.Current()

	lines := b.Lines
	if len(lines) == 0 {
		lines = []string{""}
	}
	boxH := float64(len(lines))*cs.LineHeight + 2*cs.PadY
	rc.lm.EnsureSpace(boxH)
	y, _ := rc.lm.Advance(boxH)

	x := rc.cfg.Margins.Left + cs.Inset
	fill, border := cs.Fill, cs.Border
	rc.lm.Draw(&Rect{X: x, Y: y, W: rc.cfg.ContentWidth() - 2*cs.Inset, H: boxH, Fill: &fill, Border: &border})

	expanded := make([]string, len(lines))
	for i, l := range lines {
		expanded[i] = strings.ReplaceAll(l, "\t", strings.Repeat(" ", tabWidth))
	}
	rc.drawLines(expanded, st, x+cs.PadX, y+cs.PadY, cs.LineHeight)
	rc.lm.Skip(cs.After)
}

func (rc *renderContext) keyValue(b KeyValue) {
	left, width := rc.cfg.Margins.Left, rc.cfg.ContentWidth()

	label := rc.cfg.DefaultStyle.WithWeight(WeightBold)
	rc.styles.Push(label)
	labelW := rc.measure.StringWidth(rc.styles.Current(), b.Label) + keyValueGap
	rc.styles.Pop()

	rc.styles.Push(rc.cfg.DefaultStyle)
	defer rc.styles.Pop()
	st := rc.styles.Current()

	lines := wrapText(rc.measure, st, b.Text, max(width-labelW, 0))
	y, _ := rc.lm.Advance(float64(len(lines)) * rc.cfg.LineHeight)
	rc.drawLines([]string{b.Label}, label, left, y, rc.cfg.LineHeight)
	rc.drawLines(lines, st, left+labelW, y, rc.cfg.LineHeight)
}

func (rc *renderContext) textLine(b TextLine) error {
	st := rc.cfg.DefaultStyle
	if b.Style != nil {
		st = *b.Style
		if err := checkStyle(st); err != nil {
			return newError("Render", ErrConfiguration, err)
		}
	}
	rc.styles.Push(st)
	defer rc.styles.Pop()
	st = rc.styles.Current()

	h := b.Height
	if h <= 0 {
		h = rc.cfg.LineHeight
	}
	y, _ := rc.lm.Advance(h)
	if b.Text == "" {
		return nil
	}
	w := rc.measure.StringWidth(st, b.Text)
	x := alignX(strings.ToUpper(b.Align), rc.cfg.Margins.Left, rc.cfg.ContentWidth(), w)
	rc.lm.Draw(&Text{X: x, Y: y, W: w, H: h, Text: b.Text, Style: st})
	return nil
}

func (rc *renderContext) rule(b Rule) {
	width := rc.cfg.ContentWidth()
	w := b.Width
	if w <= 0 || w > width {
		w = width
	}
	color := rc.cfg.DefaultStyle.Color
	if b.Color != nil {
		color = *b.Color
	}
	y, _ := rc.lm.Advance(0)
	x := alignX("C", rc.cfg.Margins.Left, width, w)
	rc.lm.Draw(&Line{X1: x, Y1: y, X2: x + w, Y2: y, Color: color, Width: ruleWidth})
}

// drawLines records one text primitive per non-empty line, lh apart,
// starting at (x, y).
func (rc *renderContext) drawLines(lines []string, st Style, x, y, lh float64) {
	for i, l := range lines {
		if l == "" {
			continue
		}
		rc.lm.Draw(&Text{
			X:     x,
			Y:     y + float64(i)*lh,
			W:     rc.measure.StringWidth(st, l),
			H:     lh,
			Text:  l,
			Style: st,
		})
	}
}
