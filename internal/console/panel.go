package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Panel draws a box around its body, with an optional title in the top
// edge and subtitle in the bottom edge.
type Panel struct {
	// Body is a markup string or a Renderable.
	Body     any
	Title    string
	Subtitle string
	// Width fixes the outer width. Zero means the available width, or the
	// body's natural width when Expand is false.
	Width int
	// Box names the border set. SafeBox consoles draw rounded and heavy
	// sets as square.
	Box    string
	Expand bool
	// Padding is the vertical and horizontal padding inside the border.
	Padding [2]int

	// TitleStyle and BorderStyle are theme style names.
	TitleStyle  string
	BorderStyle string
}

// NewPanel returns an expanding rounded panel with one column of padding.
func NewPanel(body any) *Panel {
	return &Panel{
		Body:        body,
		Box:         BoxRounded,
		Expand:      true,
		Padding:     [2]int{0, 1},
		TitleStyle:  "panel.title",
		BorderStyle: "panel.border",
	}
}

// Render draws the panel within width cells.
func (p *Panel) Render(c *Console, width int) ([]string, error) {
	border := c.box(p.Box)
	borderStyle := c.Style(p.BorderStyle)
	padY, padX := p.Padding[0], p.Padding[1]

	title, err := c.edgeText(p.Title, p.TitleStyle)
	if err != nil {
		return nil, err
	}
	subtitle, err := c.edgeText(p.Subtitle, p.TitleStyle)
	if err != nil {
		return nil, err
	}

	maxWidth := width
	if p.Width > 0 {
		width = min(p.Width, maxWidth)
	}
	childWidth := width - 2
	if !p.Expand && p.Width <= 0 {
		childWidth = c.measureIn(p.Body, width-2-2*padX).Maximum + 2*padX
	}
	if title != nil {
		childWidth = min(maxWidth-2, max(childWidth, ansi.StringWidth(title.plain)+2))
	}
	childWidth = max(childWidth, 2*padX+1)
	width = childWidth + 2

	inner := childWidth - 2*padX
	body, err := c.contentLines(p.Body, inner, false)
	if err != nil {
		return nil, err
	}
	blank := strings.Repeat(" ", childWidth)
	content := make([]string, 0, len(body)+2*padY)
	for range padY {
		content = append(content, blank)
	}
	side := strings.Repeat(" ", padX)
	for _, line := range body {
		content = append(content, side+padLine(line, inner)+side)
	}
	for range padY {
		content = append(content, blank)
	}

	edge := func(s string) string {
		return NewText(s, borderStyle).render(c)
	}

	out := make([]string, 0, len(content)+2)
	out = append(out, c.panelEdge(border.TopLeft, border.Top, border.TopRight, title, width, borderStyle))
	for _, line := range content {
		out = append(out, edge(border.Left)+line+edge(border.Right))
	}
	out = append(out, c.panelEdge(border.BottomLeft, border.Bottom, border.BottomRight, subtitle, width, borderStyle))
	return out, nil
}

// edgeText parses a title for a border edge: markup without highlighting,
// newlines flattened, one space of padding on each side.
func (c *Console) edgeText(s, style string) (*Text, error) {
	if s == "" {
		return nil, nil
	}
	t, err := c.ParseMarkup(strings.ReplaceAll(s, "\n", " "), c.Style(style))
	if err != nil {
		return nil, err
	}
	t.expandTabs(8)
	t.NoWrap = true
	padded := NewText(" ", t.base).AppendText(&Text{plain: t.plain, spans: t.spans})
	padded.plain += " "
	return padded, nil
}

// panelEdge draws a top or bottom border with an optional centered label.
func (c *Console) panelEdge(left, fill, right string, label *Text, width int, style Style) string {
	if label == nil || width <= 4 {
		return NewText(left+repeatCells(fill, width-2)+right, style).render(c)
	}
	label = label.truncate(width-4, true)
	excess := width - 4 - ansi.StringWidth(label.plain)
	line := NewText("", Style{})
	line.Append(left+fill+repeatCells(fill, excess/2), style)
	line.AppendText(label)
	line.Append(repeatCells(fill, excess-excess/2)+fill+right, style)
	return line.render(c)
}

func (p *Panel) measure(c *Console, maxWidth int) Measurement {
	if p.Width > 0 {
		return Measurement{Minimum: p.Width, Maximum: p.Width}
	}
	pad := 2*p.Padding[1] + 2
	w := c.measureIn(p.Body, maxWidth-pad).Maximum
	if title, err := c.edgeText(p.Title, p.TitleStyle); err == nil && title != nil {
		w = max(w, ansi.StringWidth(title.plain))
	}
	w += pad
	return Measurement{Minimum: w, Maximum: w}
}

// padLine space-pads a rendered line to width cells.
func padLine(line string, width int) string {
	if w := lipgloss.Width(line); w < width {
		return line + strings.Repeat(" ", width-w)
	}
	return line
}
