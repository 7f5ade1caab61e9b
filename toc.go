package pagedoc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// tocIndent prefixes the number of nested entries once per level.
const tocIndent = "  "

// LeaderLength returns how many dots fill a column of the given width
// after number and title, never less than zero. Widths count terminal
// cells, so wide characters take two. They are measured only: the core
// fonts can not draw them.
func LeaderLength(width int, number, title string) int {
	return max(width-runewidth.StringWidth(number)-runewidth.StringWidth(title), 0)
}

// TOCRow formats a table of contents row:
// number, two spaces, title, space, dot leader, space, page.
func TOCRow(width int, number, title, page string) string {
	dots := strings.Repeat(".", LeaderLength(width, number, title))
	return fmt.Sprintf("%s  %s %s %s", number, title, dots, page)
}

// tocEntry renders one row. Top-level rows are bold. The page is either
// the literal number or, for anchored entries, a deferred token that
// resolves to the page of the anchored heading.
func (rc *renderContext) tocEntry(b TOCEntry) error {
	st := rc.cfg.TOC.Style
	if b.Indent == 0 {
		st = st.WithWeight(WeightBold)
	} else {
		st = st.WithWeight(WeightRegular)
	}
	rc.styles.Push(st)
	defer rc.styles.Pop()
	st = rc.styles.Current()

	number := strings.Repeat(tocIndent, max(b.Indent, 0)) + b.Number
	page, sample := strconv.Itoa(b.Page), strconv.Itoa(b.Page)
	if b.Page == 0 && b.Anchor != "" {
		tok := rc.anchorToken(b.Anchor)
		page, sample = tok.Placeholder, tok.Sample()
	}

	y, _ := rc.lm.Advance(rc.cfg.TOC.LineHeight)
	rc.lm.Draw(&Text{
		X:     rc.cfg.Margins.Left,
		Y:     y,
		W:     rc.measure.StringWidth(st, TOCRow(rc.cfg.TOC.Width, number, b.Title, sample)),
		H:     rc.cfg.TOC.LineHeight,
		Text:  TOCRow(rc.cfg.TOC.Width, number, b.Title, page),
		Style: st,
	})
	return nil
}

// anchorToken returns the deferred page reference for an anchor name.
func (rc *renderContext) anchorToken(anchor string) *Token {
	doc := rc.doc
	return doc.tokens.Register("anchor:"+anchor, rc.cfg.ReservedPageDigits, func() (string, error) {
		n, ok := doc.AnchorPage(anchor)
		if !ok {
			return "", fmt.Errorf("no heading with anchor %q", anchor)
		}
		return strconv.Itoa(n), nil
	})
}
