package pagedoc

import (
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

// Units accepted by the PDF writer.
const (
	UnitPoint      = "pt"
	UnitMillimeter = "mm"
	UnitCentimeter = "cm"
	UnitInch       = "in"
)

// Margins are distances from the page edges. Bottom is also the auto
// page break threshold: body content never extends below
// PageHeight-Bottom.
type Margins struct {
	Top    float64 `yaml:"top" json:"top"`
	Right  float64 `yaml:"right" json:"right"`
	Bottom float64 `yaml:"bottom" json:"bottom"`
	Left   float64 `yaml:"left" json:"left"`
}

// HeadingStyle describes one heading level. Levels share the rendering
// algorithm and differ only by these values.
type HeadingStyle struct {
	Style      Style   `yaml:"style" json:"style"`
	LineHeight float64 `yaml:"line_height" json:"lineHeight"`
	Before     float64 `yaml:"before" json:"before"`
	After      float64 `yaml:"after" json:"after"`
	Rule       bool    `yaml:"rule" json:"rule"` // underline the title across the content width
}

// CodeStyle describes bordered fixed-width blocks.
type CodeStyle struct {
	Style      Style   `yaml:"style" json:"style"`
	LineHeight float64 `yaml:"line_height" json:"lineHeight"`
	Inset      float64 `yaml:"inset" json:"inset"` // box offset from both content edges
	PadX       float64 `yaml:"pad_x" json:"padX"`
	PadY       float64 `yaml:"pad_y" json:"padY"`
	After      float64 `yaml:"after" json:"after"`
	Fill       Color   `yaml:"fill" json:"fill"`
	Border     Color   `yaml:"border" json:"border"`
}

// HeaderConfig describes the running header.
type HeaderConfig struct {
	Title  string  `yaml:"title" json:"title"`
	Style  Style   `yaml:"style" json:"style"`
	Height float64 `yaml:"height" json:"height"`
	After  float64 `yaml:"after" json:"after"` // gap between the header row and the body
}

// FooterConfig describes the running footer. The footer row starts at
// PageHeight-Offset on every page.
type FooterConfig struct {
	Caption string  `yaml:"caption" json:"caption"`
	Style   Style   `yaml:"style" json:"style"`
	Offset  float64 `yaml:"offset" json:"offset"`
	Height  float64 `yaml:"height" json:"height"`
	RuleGap float64 `yaml:"rule_gap" json:"ruleGap"` // rule distance above the caption
}

// TOCConfig describes table of contents rows.
type TOCConfig struct {
	Width      int     `yaml:"width" json:"width"` // dot leader column width in characters
	Style      Style   `yaml:"style" json:"style"`
	LineHeight float64 `yaml:"line_height" json:"lineHeight"`
}

// Config is the complete layout configuration. All lengths are in Unit.
type Config struct {
	Unit           string          `yaml:"unit" json:"unit"`
	PageWidth      float64         `yaml:"page_width" json:"pageWidth"`
	PageHeight     float64         `yaml:"page_height" json:"pageHeight"`
	Margins        Margins         `yaml:"margins" json:"margins"`
	LineHeight     float64         `yaml:"line_height" json:"lineHeight"`
	ParagraphAfter float64         `yaml:"paragraph_after" json:"paragraphAfter"`
	DefaultStyle   Style           `yaml:"default_style" json:"defaultStyle"`
	Headings       [3]HeadingStyle `yaml:"headings" json:"headings"`
	Code           CodeStyle       `yaml:"code" json:"code"`
	BulletGlyph    string          `yaml:"bullet_glyph" json:"bulletGlyph"`
	BulletIndent   float64         `yaml:"bullet_indent" json:"bulletIndent"`
	Header         HeaderConfig    `yaml:"header" json:"header"`
	Footer         FooterConfig    `yaml:"footer" json:"footer"`
	TOC            TOCConfig       `yaml:"toc" json:"toc"`

	// ReservedPageDigits is the placeholder width reserved for the total
	// page count. Documents with more pages than fit fail at resolve time.
	ReservedPageDigits int `yaml:"reserved_page_digits" json:"reservedPageDigits"`

	Compress     bool      `yaml:"compress" json:"compress"`
	Title        string    `yaml:"title" json:"title"`
	Author       string    `yaml:"author" json:"author"`
	CreationDate time.Time `yaml:"creation_date" json:"creationDate"`
}

// DefaultConfig returns an A4 portrait configuration in millimeters.
func DefaultConfig() Config {
	body := Style{Family: "Helvetica", Size: 10, Color: Color{30, 30, 30}}
	muted := Style{Family: "Helvetica", Weight: WeightItalic, Size: 8, Color: Color{120, 120, 120}}
	return Config{
		Unit:           UnitMillimeter,
		PageWidth:      210,
		PageHeight:     297,
		Margins:        Margins{Top: 10, Right: 10, Bottom: 20, Left: 10},
		LineHeight:     5.5,
		ParagraphAfter: 1,
		DefaultStyle:   body,
		Headings: [3]HeadingStyle{
			{Style: Style{Family: "Helvetica", Weight: WeightBold, Size: 16, Color: Color{25, 55, 120}}, LineHeight: 10, Before: 4, After: 4, Rule: true},
			{Style: Style{Family: "Helvetica", Weight: WeightBold, Size: 13, Color: Color{40, 80, 150}}, LineHeight: 8, Before: 3, After: 2},
			{Style: Style{Family: "Helvetica", Weight: WeightBold, Size: 11, Color: Color{60, 100, 170}}, LineHeight: 7, Before: 2, After: 1},
		},
		Code: CodeStyle{
			Style:      Style{Family: "Courier", Size: 8, Color: Color{40, 40, 40}},
			LineHeight: 4.2,
			Inset:      5,
			PadX:       3,
			PadY:       2,
			After:      3,
			Fill:       Color{240, 240, 245},
			Border:     Color{200, 200, 210},
		},
		BulletGlyph:        "-",
		BulletIndent:       10,
		Header:             HeaderConfig{Style: muted, Height: 5, After: 4},
		Footer:             FooterConfig{Style: muted, Offset: 15, Height: 10, RuleGap: 2},
		TOC:                TOCConfig{Width: 70, Style: Style{Family: "Helvetica", Size: 11, Color: Color{30, 30, 30}}, LineHeight: 6.5},
		ReservedPageDigits: 3,
		Compress:           true,
		CreationDate:       time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// ContentWidth returns the width between the left and right margins.
func (c Config) ContentWidth() float64 {
	return c.PageWidth - c.Margins.Left - c.Margins.Right
}

// ContentTop returns the cursor y of an empty page, just below the header.
func (c Config) ContentTop() float64 {
	return c.Margins.Top + c.Header.Height + c.Header.After
}

// BreakY returns the lowest y body content may reach.
func (c Config) BreakY() float64 {
	return c.PageHeight - c.Margins.Bottom
}

// PrintableHeight returns the body height available on every page.
func (c Config) PrintableHeight() float64 {
	return c.BreakY() - c.ContentTop()
}

// FooterTop returns the y of the footer rule.
func (c Config) FooterTop() float64 {
	return c.PageHeight - c.Footer.Offset - c.Footer.RuleGap
}

// Validate reports configurations that leave no room for body content or
// let the running bands overlap it.
func (c Config) Validate() error {
	const op = "Validate"
	switch c.Unit {
	case UnitPoint, UnitMillimeter, UnitCentimeter, UnitInch:
	default:
		return configError(op, "unknown unit %q", c.Unit)
	}
	if c.PageWidth <= 0 || c.PageHeight <= 0 {
		return configError(op, "page size %gx%g is not positive", c.PageWidth, c.PageHeight)
	}
	m := c.Margins
	if m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0 {
		return configError(op, "negative margin %+v", m)
	}
	if h := c.Header; h.Height < 0 || h.After < 0 {
		return configError(op, "negative header height %g or gap %g", h.Height, h.After)
	}
	if f := c.Footer; f.Offset < 0 || f.Height < 0 || f.RuleGap < 0 {
		return configError(op, "negative footer offset %g, height %g or rule gap %g", f.Offset, f.Height, f.RuleGap)
	}
	if c.ContentWidth() <= 0 {
		return configError(op, "margins leave no printable width")
	}
	if c.PrintableHeight() <= 0 {
		return configError(op, "margins and header leave no printable height")
	}
	if c.FooterTop() < c.BreakY() {
		return configError(op, "footer at %g overlaps body ending at %g", c.FooterTop(), c.BreakY())
	}
	if c.Footer.Height > c.Footer.Offset {
		return configError(op, "footer height %g exceeds its offset %g", c.Footer.Height, c.Footer.Offset)
	}
	if c.LineHeight <= 0 || c.Code.LineHeight <= 0 || c.TOC.LineHeight <= 0 {
		return configError(op, "line heights must be positive")
	}
	for i, h := range c.Headings {
		if h.LineHeight <= 0 {
			return configError(op, "heading level %d line height must be positive", i+1)
		}
	}
	if c.ReservedPageDigits < 1 {
		return configError(op, "reserved page digits %d, need at least 1", c.ReservedPageDigits)
	}
	if c.TOC.Width < 0 {
		return configError(op, "negative toc width %d", c.TOC.Width)
	}
	if c.BulletIndent < 0 || c.BulletIndent >= c.ContentWidth() {
		return configError(op, "bullet indent %g outside content width", c.BulletIndent)
	}
	type namedStyle struct {
		name string
		s    Style
	}
	styles := []namedStyle{
		{"default", c.DefaultStyle},
		{"code", c.Code.Style},
		{"header", c.Header.Style},
		{"footer", c.Footer.Style},
		{"toc", c.TOC.Style},
	}
	for i, h := range c.Headings {
		styles = append(styles, namedStyle{fmt.Sprintf("heading %d", i+1), h.Style})
	}
	for _, st := range styles {
		if err := checkStyle(st.s); err != nil {
			return configError(op, "%s style: %v", st.name, err)
		}
	}
	return nil
}

// coreFonts are the font families every PDF viewer provides.
var coreFonts = map[string]bool{
	"courier":      true,
	"helvetica":    true,
	"arial":        true,
	"times":        true,
	"symbol":       true,
	"zapfdingbats": true,
}

func checkStyle(s Style) error {
	if !coreFonts[strings.ToLower(s.Family)] {
		return fmt.Errorf("font family %q is not a core font", s.Family)
	}
	switch strings.ToUpper(s.Weight) {
	case WeightRegular, WeightBold, WeightItalic, WeightBoldItalic, "IB":
	default:
		return fmt.Errorf("unknown font weight %q", s.Weight)
	}
	if s.Size <= 0 {
		return fmt.Errorf("font size %g is not positive", s.Size)
	}
	return nil
}

// Option is a functional option for configuring a Renderer via New.
type Option func(*settings)

type settings struct {
	cfg     Config
	log     *zap.Logger
	measure Measurer
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		s.cfg = cfg
	}
}

// WithPageSize sets a custom page size in the configured unit.
func WithPageSize(width, height float64) Option {
	return func(s *settings) {
		s.cfg.PageWidth = width
		s.cfg.PageHeight = height
	}
}

// WithPageFormat sets a standard page size by name (A3, A4, A5, Letter,
// Legal, Tabloid) in the unit configured when the option is applied.
// Unknown names leave a zero page size, which New rejects.
func WithPageFormat(name string) Option {
	return func(s *settings) {
		sz := gofpdf.New("P", s.cfg.Unit, "A4", "").GetPageSizeStr(name)
		s.cfg.PageWidth, s.cfg.PageHeight = sz.Wd, sz.Ht
	}
}

// WithMargins sets the page margins.
func WithMargins(m Margins) Option {
	return func(s *settings) {
		s.cfg.Margins = m
	}
}

// WithLineHeight sets the body line height.
func WithLineHeight(h float64) Option {
	return func(s *settings) {
		s.cfg.LineHeight = h
	}
}

// WithHeaderTitle sets the running title drawn in every page header.
func WithHeaderTitle(title string) Option {
	return func(s *settings) {
		s.cfg.Header.Title = title
	}
}

// WithFooterCaption sets the caption drawn in every page footer.
func WithFooterCaption(caption string) Option {
	return func(s *settings) {
		s.cfg.Footer.Caption = caption
	}
}

// WithTOCWidth sets the dot leader column width in characters.
func WithTOCWidth(w int) Option {
	return func(s *settings) {
		s.cfg.TOC.Width = w
	}
}

// WithReservedPageDigits sets how many digits the total page count
// placeholder reserves.
func WithReservedPageDigits(n int) Option {
	return func(s *settings) {
		s.cfg.ReservedPageDigits = n
	}
}

// WithCompression toggles content stream compression.
func WithCompression(on bool) Option {
	return func(s *settings) {
		s.cfg.Compress = on
	}
}

// WithCreationDate sets the creation date stored in the document.
func WithCreationDate(t time.Time) Option {
	return func(s *settings) {
		s.cfg.CreationDate = t
	}
}

// WithMetadata sets the document title and author.
func WithMetadata(title, author string) Option {
	return func(s *settings) {
		s.cfg.Title = title
		s.cfg.Author = author
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMeasurer replaces the font metrics used for wrapping and alignment.
func WithMeasurer(m Measurer) Option {
	return func(s *settings) {
		s.measure = m
	}
}
