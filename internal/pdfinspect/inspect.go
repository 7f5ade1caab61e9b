// Package pdfinspect reads back what pagedoc wrote: the pages in file
// order and the strings shown on each of them. It understands the plain
// object layout produced by the PDF writer (no object streams, no
// encryption) and is meant for tests and debugging, not as a general PDF
// reader.
package pdfinspect

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var (
	objHeader   = regexp.MustCompile(`(?m)^(\d+) 0 obj\b`)
	pageType    = regexp.MustCompile(`/Type\s*/Page\b`)
	contentsRef = regexp.MustCompile(`/Contents\s+(\d+)\s+0\s+R`)
	lengthKey   = regexp.MustCompile(`/Length\s+(\d+)`)
	streamStart = regexp.MustCompile(`>>\s*stream\r?\n`)
)

type object struct {
	dict   []byte
	stream []byte // raw, still encoded
}

// Page is one page of a parsed file.
type Page struct {
	Number  int    // 1-based, in file order
	Content []byte // decoded content stream
}

// File is a parsed PDF.
type File struct {
	Pages []*Page
}

// Parse splits data into objects and collects the page objects with their
// decoded content streams.
func Parse(data []byte) (*File, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, fmt.Errorf("pdfinspect: missing %%PDF header")
	}
	objs, order, err := scanObjects(data)
	if err != nil {
		return nil, err
	}

	f := &File{}
	for _, num := range order {
		o := objs[num]
		if !pageType.Match(o.dict) {
			continue
		}
		m := contentsRef.FindSubmatch(o.dict)
		if m == nil {
			return nil, fmt.Errorf("pdfinspect: page object %d has no contents", num)
		}
		ref, _ := strconv.Atoi(string(m[1]))
		c, ok := objs[ref]
		if !ok {
			return nil, fmt.Errorf("pdfinspect: page object %d refers to missing object %d", num, ref)
		}
		content, err := decode(c)
		if err != nil {
			return nil, fmt.Errorf("pdfinspect: contents of page object %d: %w", num, err)
		}
		f.Pages = append(f.Pages, &Page{Number: len(f.Pages) + 1, Content: content})
	}
	return f, nil
}

// NumPages returns the number of pages.
func (f *File) NumPages() int {
	return len(f.Pages)
}

// scanObjects returns every indirect object by number plus the numbers in
// file order. Stream data is skipped by its declared length so binary
// content can not be mistaken for object headers.
func scanObjects(data []byte) (map[int]object, []int, error) {
	objs := make(map[int]object)
	var order []int

	pos := 0
	for {
		loc := objHeader.FindSubmatchIndex(data[pos:])
		if loc == nil {
			break
		}
		num, _ := strconv.Atoi(string(data[pos+loc[2] : pos+loc[3]]))
		start := pos + loc[1]

		end := bytes.Index(data[start:], []byte("endobj"))
		if end < 0 {
			return nil, nil, fmt.Errorf("pdfinspect: object %d is not terminated", num)
		}
		var o object
		if loc := streamStart.FindIndex(data[start : start+end]); loc != nil {
			o.dict = data[start : start+loc[0]+2]
			m := lengthKey.FindSubmatch(o.dict)
			if m == nil {
				return nil, nil, fmt.Errorf("pdfinspect: stream object %d has no length", num)
			}
			n, _ := strconv.Atoi(string(m[1]))
			body := start + loc[1]
			if body+n > len(data) {
				return nil, nil, fmt.Errorf("pdfinspect: stream object %d overruns the file", num)
			}
			o.stream = data[body : body+n]
			// the stream may contain "endobj" bytes, look again past it
			if end = bytes.Index(data[body+n:], []byte("endobj")); end < 0 {
				return nil, nil, fmt.Errorf("pdfinspect: object %d is not terminated", num)
			}
			pos = body + n + end + len("endobj")
		} else {
			o.dict = data[start : start+end]
			pos = start + end + len("endobj")
		}
		if _, dup := objs[num]; !dup {
			order = append(order, num)
		}
		objs[num] = o
	}
	return objs, order, nil
}

func decode(o object) ([]byte, error) {
	if !bytes.Contains(o.dict, []byte("/FlateDecode")) {
		return o.stream, nil
	}
	r, err := zlib.NewReader(bytes.NewReader(o.stream))
	if err != nil {
		return nil, fmt.Errorf("zlib init: %w", err)
	}
	defer r.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, fmt.Errorf("zlib decompress: %w", err)
	}
	return buf.Bytes(), nil
}

// Strings returns the literal strings shown inside BT/ET blocks, in
// content stream order.
func (p *Page) Strings() []string {
	var out []string
	data := p.Content
	inText := false
	for i := 0; i < len(data); {
		switch {
		case isOperator(data, i, "BT"):
			inText = true
			i += 2
		case isOperator(data, i, "ET"):
			inText = false
			i += 2
		case data[i] == '(':
			s, next := literalString(data, i)
			if inText {
				out = append(out, s)
			}
			i = next
		default:
			i++
		}
	}
	return out
}

// Text returns the shown strings joined by single spaces.
func (p *Page) Text() string {
	return strings.Join(p.Strings(), " ")
}

// Contains reports whether any shown string on the page contains s.
func (p *Page) Contains(s string) bool {
	for _, str := range p.Strings() {
		if strings.Contains(str, s) {
			return true
		}
	}
	return false
}

func isOperator(data []byte, i int, op string) bool {
	if !bytes.HasPrefix(data[i:], []byte(op)) {
		return false
	}
	if i > 0 && !isSpace(data[i-1]) {
		return false
	}
	end := i + len(op)
	return end == len(data) || isSpace(data[end])
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == 0
}

// literalString decodes the string starting at the '(' at pos and returns
// it with the position after the closing ')'. Bytes map to runes one to
// one (Latin-1), which covers the core font encoding for ASCII text.
func literalString(data []byte, pos int) (string, int) {
	var sb strings.Builder
	depth := 0
	for pos < len(data) {
		b := data[pos]
		pos++
		switch b {
		case '(':
			depth++
			if depth == 1 {
				continue
			}
		case ')':
			depth--
			if depth == 0 {
				return sb.String(), pos
			}
		case '\\':
			if pos >= len(data) {
				continue
			}
			esc := data[pos]
			pos++
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '0', '1', '2', '3', '4', '5', '6', '7':
				oct := int(esc - '0')
				for j := 0; j < 2 && pos < len(data) && data[pos] >= '0' && data[pos] <= '7'; j++ {
					oct = oct*8 + int(data[pos]-'0')
					pos++
				}
				sb.WriteRune(rune(oct))
			default:
				sb.WriteRune(rune(esc))
			}
			continue
		}
		sb.WriteRune(rune(b))
	}
	return sb.String(), pos
}
