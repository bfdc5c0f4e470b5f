package console

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

type span struct {
	start, end int
	style      Style
}

// Text is a string with styled byte ranges. Later spans override earlier
// ones where they overlap; the base style sits underneath all of them.
type Text struct {
	plain string
	spans []span
	base  Style

	// NoWrap disables word wrapping; lines wider than the render width are
	// cropped by the console instead.
	NoWrap bool
}

// NewText returns unstyled-span text with a base style.
func NewText(plain string, base Style) *Text {
	return &Text{plain: plain, base: base}
}

// Plain returns the text without styling.
func (t *Text) Plain() string {
	return t.plain
}

// Len returns the length of the text in bytes.
func (t *Text) Len() int {
	return len(t.plain)
}

// CellWidth returns the widest line in terminal cells.
func (t *Text) CellWidth() int {
	w := 0
	for _, line := range strings.Split(t.plain, "\n") {
		w = max(w, ansi.StringWidth(line))
	}
	return w
}

// Append adds s styled with style.
func (t *Text) Append(s string, style Style) *Text {
	if s == "" {
		return t
	}
	start := len(t.plain)
	t.plain += s
	if !style.IsNull() {
		t.spans = append(t.spans, span{start: start, end: len(t.plain), style: style})
	}
	return t
}

// AppendText adds o, keeping its base style as a span.
func (t *Text) AppendText(o *Text) *Text {
	start := len(t.plain)
	t.plain += o.plain
	if !o.base.IsNull() && o.plain != "" {
		t.spans = append(t.spans, span{start: start, end: len(t.plain), style: o.base})
	}
	for _, sp := range o.spans {
		t.spans = append(t.spans, span{start: start + sp.start, end: start + sp.end, style: sp.style})
	}
	return t
}

// Stylize applies style to the byte range [start, end).
func (t *Text) Stylize(style Style, start, end int) {
	start = max(start, 0)
	end = min(end, len(t.plain))
	if start >= end || style.IsNull() {
		return
	}
	t.spans = append(t.spans, span{start: start, end: end, style: style})
}

// Render wraps the text to width and styles each line.
func (t *Text) Render(c *Console, width int) ([]string, error) {
	lines := t.Lines(width)
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line.render(c)
	}
	return out, nil
}

// Lines splits the text on newlines and word-wraps each line to width.
func (t *Text) Lines(width int) []*Text {
	var out []*Text
	start := 0
	for {
		nl := strings.IndexByte(t.plain[start:], '\n')
		end := len(t.plain)
		if nl >= 0 {
			end = start + nl
		}
		line := t.slice(start, end)
		if t.NoWrap {
			out = append(out, line)
		} else {
			out = append(out, line.wrap(width)...)
		}
		if nl < 0 {
			break
		}
		start = end + 1
	}
	return out
}

func (t *Text) measure(_ *Console, maxWidth int) Measurement {
	longestWord := 0
	for _, word := range strings.Fields(t.plain) {
		longestWord = max(longestWord, ansi.StringWidth(word))
	}
	return Measurement{Minimum: longestWord, Maximum: t.CellWidth()}.Clamp(maxWidth)
}

// slice returns the byte range [start, end) with spans clipped to it.
func (t *Text) slice(start, end int) *Text {
	out := &Text{plain: t.plain[start:end], base: t.base, NoWrap: t.NoWrap}
	for _, sp := range t.spans {
		s, e := max(sp.start, start), min(sp.end, end)
		if s < e {
			out.spans = append(out.spans, span{start: s - start, end: e - start, style: sp.style})
		}
	}
	return out
}

var wordPattern = regexp.MustCompile(`\s*\S+\s*`)

// wrap breaks a single line into lines of at most width cells. Whitespace
// at a break is dropped; words wider than width are folded. Only whitespace
// separates words: unlike ansi.Wordwrap, a hyphen is never a break point.
func (t *Text) wrap(width int) []*Text {
	if ansi.StringWidth(t.plain) <= width {
		return []*Text{t}
	}

	var out []*Text
	lineStart, lineEnd, lineWidth := 0, 0, 0
	flush := func() {
		out = append(out, t.slice(lineStart, lineEnd))
	}

	for _, loc := range wordPattern.FindAllStringIndex(t.plain, -1) {
		wordStart, tokenEnd := loc[0], loc[1]
		wordEnd := wordStart + len(strings.TrimRight(t.plain[wordStart:tokenEnd], " \t"))
		wordWidth := ansi.StringWidth(t.plain[wordStart:wordEnd])

		if lineWidth > 0 && lineWidth+wordWidth > width {
			flush()
			// Leading whitespace of the next word belongs to the break.
			wordStart += len(t.plain[wordStart:wordEnd]) - len(strings.TrimLeft(t.plain[wordStart:wordEnd], " \t"))
			wordWidth = ansi.StringWidth(t.plain[wordStart:wordEnd])
			lineStart, lineWidth = wordStart, 0
		}

		if wordWidth > width {
			// The line is empty here: fold the word into full-width chunks
			// and let the remainder start the next line.
			pos := wordStart
			for ansi.StringWidth(t.plain[pos:wordEnd]) > width {
				cut := foldPoint(t.plain[pos:wordEnd], width)
				out = append(out, t.slice(pos, pos+cut))
				pos += cut
			}
			lineStart, lineEnd = pos, wordEnd
			lineWidth = ansi.StringWidth(t.plain[pos:tokenEnd])
			continue
		}

		lineEnd = wordEnd
		lineWidth += ansi.StringWidth(t.plain[wordStart:tokenEnd])
	}
	flush()
	return out
}

// foldPoint returns the byte offset of the longest prefix of s that fits in
// width cells without splitting a grapheme. At least one rune is always
// taken.
func foldPoint(s string, width int) int {
	if cut := len(ansi.Truncate(s, width, "")); cut > 0 {
		return cut
	}
	_, size := utf8.DecodeRuneInString(s)
	return size
}

// render styles a single line.
func (t *Text) render(c *Console) string {
	if t.plain == "" {
		return ""
	}
	if !c.colorEnabled() {
		return t.plain
	}

	cuts := []int{0, len(t.plain)}
	for _, sp := range t.spans {
		cuts = append(cuts, sp.start, sp.end)
	}
	sort.Ints(cuts)

	var b strings.Builder
	var pending strings.Builder
	var pendingStyle Style
	flush := func() {
		if pending.Len() > 0 {
			b.WriteString(c.styled(pending.String(), pendingStyle))
			pending.Reset()
		}
	}

	for i := 0; i+1 < len(cuts); i++ {
		a, z := cuts[i], cuts[i+1]
		if a == z {
			continue
		}
		style := t.base
		for _, sp := range t.spans {
			if sp.start <= a && z <= sp.end {
				style = style.Combine(sp.style)
			}
		}
		if style != pendingStyle {
			flush()
			pendingStyle = style
		}
		pending.WriteString(t.plain[a:z])
	}
	flush()
	return b.String()
}

// expandTabs replaces tabs with spaces up to the next multiple of size,
// keeping spans aligned.
func (t *Text) expandTabs(size int) {
	if !strings.Contains(t.plain, "\t") {
		return
	}
	var b strings.Builder
	shift := make([]int, len(t.plain)+1)
	col, delta := 0, 0
	for i := 0; i < len(t.plain); {
		shift[i] = delta
		r, n := utf8.DecodeRuneInString(t.plain[i:])
		switch r {
		case '\t':
			pad := size - col%size
			b.WriteString(strings.Repeat(" ", pad))
			col += pad
			delta += pad - 1
		case '\n':
			b.WriteByte('\n')
			col = 0
		default:
			b.WriteString(t.plain[i : i+n])
			col += ansi.StringWidth(t.plain[i : i+n])
		}
		for j := i + 1; j < i+n; j++ {
			shift[j] = delta
		}
		i += n
	}
	shift[len(t.plain)] = delta
	for i := range t.spans {
		t.spans[i].start += shift[t.spans[i].start]
		t.spans[i].end += shift[t.spans[i].end]
	}
	t.plain = b.String()
}

// Markup is a string parsed as console markup when printed.
type Markup string

// Render parses the markup and renders the resulting text.
func (m Markup) Render(c *Console, width int) ([]string, error) {
	t, err := c.RenderString(string(m))
	if err != nil {
		return nil, err
	}
	return t.Render(c, width)
}

func (m Markup) measure(c *Console, maxWidth int) Measurement {
	t, err := c.RenderString(string(m))
	if err != nil {
		return Measurement{}
	}
	return t.measure(c, maxWidth)
}

// RenderString converts a printed string to Text the way Print does:
// markup and emoji when enabled, then the repr highlighter.
func (c *Console) RenderString(s string) (*Text, error) {
	return c.renderString(s, c.opts.Highlight)
}

func (c *Console) renderString(s string, highlight bool) (*Text, error) {
	var t *Text
	if c.opts.Markup {
		var err error
		if t, err = c.ParseMarkup(s, Style{}); err != nil {
			return nil, err
		}
	} else {
		t = NewText(c.emojize(s), Style{})
	}
	if highlight {
		c.highlightRepr(t)
	}
	return t, nil
}

// contentLines renders a container's content. Strings are rendered
// without the repr highlighter unless highlight is set.
func (c *Console) contentLines(v any, width int, highlight bool) ([]string, error) {
	s, ok := v.(string)
	if !ok {
		return c.Lines(v, width)
	}
	t, err := c.renderString(s, highlight && c.opts.Highlight)
	if err != nil {
		return nil, err
	}
	return t.Render(c, width)
}

// aligned pads the text to width cells. Padding carries the base style.
func (t *Text) aligned(a Align, width int) *Text {
	t = t.truncate(width, false)
	excess := width - ansi.StringWidth(t.plain)
	if excess <= 0 {
		return t
	}
	left := 0
	switch a {
	case AlignCenter:
		left = excess / 2
	case AlignRight:
		left = excess
	}
	out := &Text{plain: strings.Repeat(" ", left) + t.plain + strings.Repeat(" ", excess-left), base: t.base, NoWrap: t.NoWrap}
	for _, sp := range t.spans {
		out.spans = append(out.spans, span{start: sp.start + left, end: sp.end + left, style: sp.style})
	}
	return out
}

// truncate crops the text to width cells. With ellipsis, text that does
// not fit ends in an ellipsis.
func (t *Text) truncate(width int, ellipsis bool) *Text {
	if ansi.StringWidth(t.plain) <= width {
		return t
	}
	if !ellipsis || width < 1 {
		return t.slice(0, cropPoint(t.plain, width))
	}
	out := t.slice(0, cropPoint(t.plain, width-1))
	out.plain += "\u2026"
	return out
}

// cropPoint returns the byte offset of the longest prefix of s that fits in
// width cells. Unlike foldPoint it may return zero.
func cropPoint(s string, width int) int {
	w := 0
	for i, r := range s {
		rw := ansi.StringWidth(string(r))
		if w+rw > width {
			return i
		}
		w += rw
	}
	return len(s)
}

// fitCells crops or space-pads plain text to exactly width cells.
func fitCells(s string, width int) string {
	s = s[:cropPoint(s, width)]
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// repeatCells repeats chars until it covers width cells, cropping the last
// repetition.
func repeatCells(chars string, width int) string {
	cw := ansi.StringWidth(chars)
	if cw == 0 || width <= 0 {
		return ""
	}
	s := strings.Repeat(chars, width/cw+1)
	return s[:cropPoint(s, width)]
}
