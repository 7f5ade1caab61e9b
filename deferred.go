package pagedoc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// TokenTotalPages names the token standing in for the final page count.
const TokenTotalPages = "total-pages"

// placeholderBase is the first rune of the Unicode private use area.
// Placeholders never collide with document text.
const placeholderBase = 0xE000

// Token is a value that can only be computed once the whole document has
// been laid out. Until then its Placeholder, exactly Width runes long,
// stands in for it in drawn text.
type Token struct {
	ID          int
	Name        string
	Width       int
	Placeholder string

	resolve func() (string, error)
	value   string
	done    bool
}

// Sample returns a string of Width digits. Layout measures it in place of
// the value so geometry is final before the value is known.
func (t *Token) Sample() string {
	return strings.Repeat("0", t.Width)
}

// Value returns the resolved, padded value and whether it is available.
func (t *Token) Value() (string, bool) {
	return t.value, t.done
}

// Registry keeps the deferred tokens of one document.
type Registry struct {
	tokens []*Token
	byName map[string]*Token
}

func newRegistry() *Registry {
	return &Registry{byName: make(map[string]*Token)}
}

// Register returns the token called name, creating it with the given
// reserved width and resolution function on first use.
func (r *Registry) Register(name string, width int, fn func() (string, error)) *Token {
	if t, ok := r.byName[name]; ok {
		return t
	}
	id := len(r.tokens)
	t := &Token{
		ID:          id,
		Name:        name,
		Width:       width,
		Placeholder: strings.Repeat(string(rune(placeholderBase+id)), width),
		resolve:     fn,
	}
	r.tokens = append(r.tokens, t)
	r.byName[name] = t
	return t
}

// Lookup returns the token called name.
func (r *Registry) Lookup(name string) (*Token, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Len returns the number of registered tokens.
func (r *Registry) Len() int {
	return len(r.tokens)
}

// evaluate computes every token value, left padded with spaces to the
// reserved width. A value wider than its reservation would change
// geometry already fixed by layout and is refused. Values are only
// stored once every token succeeded.
func (r *Registry) evaluate() error {
	values := make([]string, len(r.tokens))
	for i, t := range r.tokens {
		v, err := t.resolve()
		if err != nil {
			return newError("Resolve", ErrConfiguration, fmt.Errorf("token %q: %w", t.Name, err))
		}
		if n := utf8.RuneCountInString(v); n > t.Width {
			return configError("Resolve", "token %q value %q needs %d characters, %d reserved", t.Name, v, n, t.Width)
		}
		values[i] = fmt.Sprintf("%*s", t.Width, v)
	}
	for i, t := range r.tokens {
		t.value, t.done = values[i], true
	}
	return nil
}

func (r *Registry) replacer() *strings.Replacer {
	pairs := make([]string, 0, 2*len(r.tokens))
	for _, t := range r.tokens {
		pairs = append(pairs, t.Placeholder, t.value)
	}
	return strings.NewReplacer(pairs...)
}

// Resolve evaluates the deferred tokens and substitutes their values into
// every text primitive of the document in place. Substitution keeps the
// rune count of each text, so no layout decision changes. After a
// successful Resolve the document is finalized.
func (d *Document) Resolve() error {
	return d.resolve(zap.NewNop())
}

func (d *Document) resolve(log *zap.Logger) error {
	if d.finalized {
		return newError("Resolve", ErrFinalized, nil)
	}
	if err := d.tokens.evaluate(); err != nil {
		return err
	}
	rep := d.tokens.replacer()
	substituted := 0
	substitute := func(prims []Primitive) {
		for _, p := range prims {
			if t, ok := p.(*Text); ok {
				if s := rep.Replace(t.Text); s != t.Text {
					t.Text = s
					substituted++
				}
			}
		}
	}
	for _, p := range d.Pages {
		substitute(p.Header.Primitives)
		substitute(p.Body)
		substitute(p.Footer.Primitives)
	}
	d.finalized = true
	log.Debug("Deferred references resolved",
		zap.Int("tokens", d.tokens.Len()),
		zap.Int("substituted", substituted),
		zap.Int("pages", len(d.Pages)))
	return nil
}
