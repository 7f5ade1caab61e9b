package pagedoc

// Color is an RGB color with 0-255 components.
type Color struct {
	R int `yaml:"r" json:"r"`
	G int `yaml:"g" json:"g"`
	B int `yaml:"b" json:"b"`
}

// Black is the zero Color.
var Black = Color{}

// Font weights understood by the PDF writer core fonts.
const (
	WeightRegular    = ""
	WeightBold       = "B"
	WeightItalic     = "I"
	WeightBoldItalic = "BI"
)

// Style is the text state used to draw a run of text.
// It is a value type: stacks and primitives hold copies, never pointers.
type Style struct {
	Family string  `yaml:"family" json:"family"` // Helvetica, Courier, Times
	Weight string  `yaml:"weight" json:"weight"` // "", "B", "I", "BI"
	Size   float64 `yaml:"size" json:"size"`     // points
	Color  Color   `yaml:"color" json:"color"`
}

// WithWeight returns a copy of s using weight w.
func (s Style) WithWeight(w string) Style {
	s.Weight = w
	return s
}

// StyleStack holds the current text style. The style at depth 0 is the
// document default and can not be popped.
type StyleStack struct {
	styles []Style
}

// NewStyleStack returns a stack whose bottom entry is def.
func NewStyleStack(def Style) *StyleStack {
	return &StyleStack{styles: []Style{def}}
}

// Push makes s the current style.
func (st *StyleStack) Push(s Style) {
	st.styles = append(st.styles, s)
}

// Pop discards the current style and reports whether anything was
// removed. Popping at depth 0 is a no-op.
func (st *StyleStack) Pop() bool {
	if len(st.styles) <= 1 {
		return false
	}
	st.styles = st.styles[:len(st.styles)-1]
	return true
}

// Current returns the style on top of the stack.
func (st *StyleStack) Current() Style {
	return st.styles[len(st.styles)-1]
}

// Depth returns the number of pushed styles above the default.
func (st *StyleStack) Depth() int {
	return len(st.styles) - 1
}
