package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const imageGlyph = "\U0001f306 "

// Markdown renders CommonMark source. Headings are centered, with level one
// boxed; fenced code is highlighted and word-wrapped.
type Markdown struct {
	Source string
	// Hyperlinks renders links as OSC 8 hyperlinks instead of appending
	// the URL in parentheses.
	Hyperlinks bool
	CodeTheme  string
}

// NewMarkdown returns a renderer with hyperlinks enabled.
func NewMarkdown(source string) *Markdown {
	return &Markdown{Source: source, Hyperlinks: true, CodeTheme: DefaultCodeTheme}
}

// Render lays out the document's blocks separated by blank lines.
func (m *Markdown) Render(c *Console, width int) ([]string, error) {
	src := []byte(m.Source)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	r := &mdRenderer{c: c, m: m, src: src}
	return r.blocks(doc, width, Style{}, true)
}

type mdRenderer struct {
	c   *Console
	m   *Markdown
	src []byte
}

// blocks renders the block children of parent. Loose containers separate
// blocks with a blank line.
func (r *mdRenderer) blocks(parent ast.Node, width int, base Style, loose bool) ([]string, error) {
	var out []string
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		lines, err := r.block(n, width, base)
		if err != nil {
			return nil, err
		}
		if loose && n != parent.FirstChild() {
			out = append(out, "")
		}
		out = append(out, lines...)
	}
	return out, nil
}

func (r *mdRenderer) block(n ast.Node, width int, base Style) ([]string, error) {
	c := r.c
	switch n := n.(type) {
	case *ast.Heading:
		t := r.inline(n, base.Combine(c.Style(fmt.Sprintf("markdown.h%d", n.Level))))
		if n.Level == 1 {
			panel := NewPanel(&justified{text: t, align: AlignCenter})
			panel.Box = BoxHeavy
			panel.BorderStyle = "markdown.h1.border"
			return panel.Render(c, width)
		}
		lines := (&justified{text: t, align: AlignCenter}).lines(c, width)
		if n.Level == 2 {
			lines = append([]string{""}, lines...)
		}
		return lines, nil

	case *ast.Paragraph, *ast.TextBlock:
		return r.inline(n, base.Combine(c.Style("markdown.paragraph"))).Render(c, width)

	case *ast.FencedCodeBlock:
		return r.code(string(n.Language(r.src)), n.Lines(), width)
	case *ast.CodeBlock:
		return r.code("", n.Lines(), width)

	case *ast.Blockquote:
		style := base.Combine(c.Style("markdown.block_quote"))
		inner, err := r.blocks(n, max(width-4, 1), style, true)
		if err != nil {
			return nil, err
		}
		bar := NewText("\u258c ", style).render(c)
		for i, line := range inner {
			inner[i] = bar + r.pad(line, width-4, style)
		}
		return inner, nil

	case *ast.List:
		return r.list(n, width, base)

	case *ast.ThematicBreak:
		rule := NewRule("")
		rule.Style = "markdown.hr"
		return rule.Render(c, width)

	case *ast.HTMLBlock:
		var b strings.Builder
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.Write(seg.Value(r.src))
		}
		return NewText(strings.TrimRight(b.String(), "\n"), base).Render(c, width)
	}
	return r.inline(n, base).Render(c, width)
}

// list renders bullet or numbered items. Item lines are indented past the
// marker and padded to the remaining width.
func (r *mdRenderer) list(n *ast.List, width int, base Style) ([]string, error) {
	c := r.c
	count := 0
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		count++
	}
	markerWidth := 3
	if n.IsOrdered() {
		markerWidth = len(strconv.Itoa(n.Start+count-1)) + 2
	}
	inner := max(width-markerWidth, 1)

	var out []string
	number := n.Start
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		lines, err := r.blocks(item, inner, base, !n.IsTight)
		if err != nil {
			return nil, err
		}
		var marker, indent string
		if n.IsOrdered() {
			style := c.Style("markdown.item.number")
			num := strconv.Itoa(number)
			marker = NewText(strings.Repeat(" ", markerWidth-1-len(num))+num+" ", style).render(c)
			indent = NewText(strings.Repeat(" ", markerWidth), style).render(c)
			number++
		} else {
			style := c.Style("markdown.item.bullet")
			marker = NewText(" \u2022 ", style).render(c)
			indent = NewText("   ", style).render(c)
		}
		for i, line := range lines {
			prefix := indent
			if i == 0 {
				prefix = marker
			}
			out = append(out, prefix+r.pad(line, inner, base))
		}
	}
	return out, nil
}

func (r *mdRenderer) code(lang string, lines *text.Segments, width int) ([]string, error) {
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(r.src))
	}
	syntax := NewSyntax(strings.TrimRight(b.String(), " \t\r\n"), lang)
	if r.m.CodeTheme != "" {
		syntax.Theme = r.m.CodeTheme
	}
	syntax.WordWrap = true
	syntax.Padding = 1
	return syntax.Render(r.c, width)
}

// pad space-pads a rendered line to width with style.
func (r *mdRenderer) pad(line string, width int, style Style) string {
	if w := ansi.StringWidth(line); w < width {
		return line + NewText(strings.Repeat(" ", width-w), style).render(r.c)
	}
	return line
}

// inline flattens the inline children of n into styled text.
func (r *mdRenderer) inline(n ast.Node, style Style) *Text {
	t := NewText("", Style{})
	r.inlineInto(t, n, style)
	return t
}

func (r *mdRenderer) inlineInto(t *Text, parent ast.Node, style Style) {
	c := r.c
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch n := n.(type) {
		case *ast.Text:
			t.Append(string(n.Value(r.src)), style)
			switch {
			case n.HardLineBreak():
				t.Append("\n", style)
			case n.SoftLineBreak():
				t.Append(" ", style)
			}
		case *ast.String:
			t.Append(string(n.Value), style)
		case *ast.CodeSpan:
			code := NewText("", Style{})
			r.inlineInto(code, n, Style{})
			t.Append(code.plain, style.Combine(c.Style("markdown.code")))
		case *ast.Emphasis:
			name := "markdown.em"
			if n.Level >= 2 {
				name = "markdown.strong"
			}
			r.inlineInto(t, n, style.Combine(c.Style(name)))
		case *ast.Link:
			r.link(t, n, string(n.Destination), style)
		case *ast.AutoLink:
			label := string(n.Label(r.src))
			r.link(t, NewText(label, Style{}), string(n.URL(r.src)), style)
		case *ast.Image:
			alt := NewText("", Style{})
			r.inlineInto(alt, n, Style{})
			title := alt.plain
			if title == "" {
				dest := strings.Trim(string(n.Destination), "/")
				title = dest[strings.LastIndexByte(dest, '/')+1:]
			}
			t.Append(imageGlyph, style)
			titleStyle := style
			if r.m.Hyperlinks {
				titleStyle = titleStyle.Combine(LinkStyle(string(n.Destination)))
			}
			t.Append(title, titleStyle)
			t.Append(" ", style)
		case *ast.RawHTML:
			t.Append(string(n.Segments.Value(r.src)), style)
		default:
			r.inlineInto(t, n, style)
		}
	}
}

// link renders label as a hyperlink, or as "label (url)" when hyperlinks
// are off. label is an inline node or prebuilt text.
func (r *mdRenderer) link(t *Text, label any, url string, style Style) {
	c := r.c
	if r.m.Hyperlinks {
		ls := style.Combine(c.Style("markdown.link_url")).Combine(LinkStyle(url))
		switch l := label.(type) {
		case ast.Node:
			r.inlineInto(t, l, ls)
		case *Text:
			t.Append(l.plain, ls)
		}
		return
	}
	plain := NewText("", Style{})
	switch l := label.(type) {
	case ast.Node:
		r.inlineInto(plain, l, Style{})
	case *Text:
		plain = l
	}
	t.Append(plain.plain, style.Combine(c.Style("markdown.link")))
	t.Append(" (", style)
	t.Append(url, style.Combine(c.Style("markdown.link_url")))
	t.Append(")", style)
}

// justified renders text with every wrapped line padded to the full width.
type justified struct {
	text  *Text
	align Align
}

func (j *justified) Render(c *Console, width int) ([]string, error) {
	return j.lines(c, width), nil
}

func (j *justified) lines(c *Console, width int) []string {
	var out []string
	for _, line := range j.text.Lines(width) {
		line = line.slice(0, len(strings.TrimRight(line.plain, " ")))
		out = append(out, line.aligned(j.align, width).render(c))
	}
	return out
}
