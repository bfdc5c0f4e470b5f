package console

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"
)

// JSON pretty-prints a JSON document. Object keys keep their source order
// unless SortKeys is set.
type JSON struct {
	Source string
	// Indent is the per-level indent. Nil renders compactly on one line.
	Indent      *string
	EnsureASCII bool
	SortKeys    bool
	Highlight   bool
}

// NewJSON returns a highlighted document indented by two spaces.
func NewJSON(source string) *JSON {
	indent := "  "
	return &JSON{Source: source, Indent: &indent, Highlight: true}
}

// IndentSpaces returns an indent of n spaces.
func IndentSpaces(n int) *string {
	s := strings.Repeat(" ", max(n, 0))
	return &s
}

// Render formats and highlights the document. Lines are not wrapped.
func (j *JSON) Render(c *Console, width int) ([]string, error) {
	t, err := j.Text(c)
	if err != nil {
		return nil, err
	}
	return t.Render(c, width)
}

// Text returns the formatted document as styled text.
func (j *JSON) Text(c *Console) (*Text, error) {
	v, err := parseJSON(j.Source)
	if err != nil {
		return nil, err
	}
	w := &jsonWriter{c: c, j: j, out: NewText("", Style{})}
	w.value(v, 0)
	w.out.NoWrap = true
	w.out.expandTabs(8)
	return w.out, nil
}

func (j *JSON) measure(c *Console, maxWidth int) Measurement {
	t, err := j.Text(c)
	if err != nil {
		return Measurement{}
	}
	w := t.CellWidth()
	return Measurement{Minimum: w, Maximum: w}.Clamp(maxWidth)
}

type jsonKind uint8

const (
	jsonObject jsonKind = iota
	jsonArray
	jsonString
	jsonNumber
	jsonBool
	jsonNull
)

type jsonValue struct {
	kind  jsonKind
	str   string
	num   json.Number
	b     bool
	keys  []string
	items []*jsonValue
}

// parseJSON decodes a single JSON value, keeping object key order and
// number spelling. A repeated key keeps its first position and last value.
func parseJSON(src string) (*jsonValue, error) {
	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()
	v, err := decodeJSON(dec)
	if err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("parse json: trailing data after value")
	}
	return v, nil
}

func decodeJSON(dec *json.Decoder) (*jsonValue, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch x := tok.(type) {
	case json.Delim:
		switch x {
		case '{':
			obj := &jsonValue{kind: jsonObject}
			index := map[string]int{}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, _ := kt.(string)
				val, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				if i, ok := index[key]; ok {
					obj.items[i] = val
					continue
				}
				index[key] = len(obj.keys)
				obj.keys = append(obj.keys, key)
				obj.items = append(obj.items, val)
			}
			_, err := dec.Token()
			return obj, err
		case '[':
			arr := &jsonValue{kind: jsonArray}
			for dec.More() {
				val, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				arr.items = append(arr.items, val)
			}
			_, err := dec.Token()
			return arr, err
		}
		return nil, fmt.Errorf("unexpected delimiter %q", x)
	case string:
		return &jsonValue{kind: jsonString, str: x}, nil
	case json.Number:
		return &jsonValue{kind: jsonNumber, num: x}, nil
	case bool:
		return &jsonValue{kind: jsonBool, b: x}, nil
	case nil:
		return &jsonValue{kind: jsonNull}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

type jsonWriter struct {
	c   *Console
	j   *JSON
	out *Text
}

func (w *jsonWriter) style(name string) Style {
	if !w.j.Highlight {
		return Style{}
	}
	return w.c.Style(name)
}

func (w *jsonWriter) punct(s string) {
	w.out.Append(s, Style{})
}

func (w *jsonWriter) newline(depth int) {
	if w.j.Indent == nil {
		return
	}
	w.punct("\n" + strings.Repeat(*w.j.Indent, depth))
}

func (w *jsonWriter) separator() {
	if w.j.Indent == nil {
		w.punct(", ")
		return
	}
	w.punct(",")
}

func (w *jsonWriter) value(v *jsonValue, depth int) {
	switch v.kind {
	case jsonObject:
		brace := w.style("json.brace")
		if len(v.keys) == 0 {
			w.out.Append("{}", brace)
			return
		}
		order := make([]int, len(v.keys))
		for i := range order {
			order[i] = i
		}
		if w.j.SortKeys {
			sort.SliceStable(order, func(a, b int) bool { return v.keys[order[a]] < v.keys[order[b]] })
		}
		w.out.Append("{", brace)
		keyStyle := w.style("json.str").Combine(w.style("json.key"))
		for n, i := range order {
			if n > 0 {
				w.separator()
			}
			w.newline(depth + 1)
			w.out.Append(quoteJSON(v.keys[i], w.j.EnsureASCII), keyStyle)
			w.punct(": ")
			w.value(v.items[i], depth+1)
		}
		w.newline(depth)
		w.out.Append("}", brace)
	case jsonArray:
		brace := w.style("json.brace")
		if len(v.items) == 0 {
			w.out.Append("[]", brace)
			return
		}
		w.out.Append("[", brace)
		for n, item := range v.items {
			if n > 0 {
				w.separator()
			}
			w.newline(depth + 1)
			w.value(item, depth+1)
		}
		w.newline(depth)
		w.out.Append("]", brace)
	case jsonString:
		w.out.Append(quoteJSON(v.str, w.j.EnsureASCII), w.style("json.str"))
	case jsonNumber:
		w.out.Append(formatJSONNumber(v.num), w.style("json.number"))
	case jsonBool:
		if v.b {
			w.out.Append("true", w.style("json.bool_true"))
		} else {
			w.out.Append("false", w.style("json.bool_false"))
		}
	case jsonNull:
		w.out.Append("null", w.style("json.null"))
	}
}

// formatJSONNumber keeps integers as written and prints fractional or
// exponent forms the way a float repr does: shortest round-trip digits,
// positional between 1e-4 and 1e16, always with a fractional part.
func formatJSONNumber(n json.Number) string {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return s
	}
	exp := strconv.FormatFloat(f, 'e', -1, 64)
	e, _ := strconv.Atoi(exp[strings.IndexByte(exp, 'e')+1:])
	if f != 0 && (e < -4 || e >= 16) {
		return exp
	}
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return out
}

// quoteJSON quotes s with the escapes of a Python-style encoder. With
// asciiOnly every rune outside printable ASCII becomes \uXXXX, using
// surrogate pairs above the basic plane.
func quoteJSON(s string, asciiOnly bool) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			switch {
			case r < 0x20:
				fmt.Fprintf(&b, `\u%04x`, r)
			case asciiOnly && r >= 0x7f:
				if r > 0xffff {
					hi, lo := utf16.EncodeRune(r)
					fmt.Fprintf(&b, `\u%04x\u%04x`, hi, lo)
				} else {
					fmt.Fprintf(&b, `\u%04x`, r)
				}
			default:
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
