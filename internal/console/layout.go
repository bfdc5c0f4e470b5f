package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Columns flows items into as many equal-gap columns as fit the width.
// Items fill rows left to right.
type Columns struct {
	Items []any
	// Gap is the number of spaces between columns.
	Gap int
}

// NewColumns returns columns separated by one space.
func NewColumns(items ...any) *Columns {
	return &Columns{Items: items, Gap: 1}
}

// Render lays out the items.
func (cl *Columns) Render(c *Console, width int) ([]string, error) {
	if len(cl.Items) == 0 {
		return nil, nil
	}
	widths := make([]int, len(cl.Items))
	for i, item := range cl.Items {
		widths[i] = min(c.columnMeasure(item, width).Maximum, width)
	}

	count := len(cl.Items)
	var colWidths []int
	for ; count > 0; count-- {
		colWidths = make([]int, count)
		for i, w := range widths {
			colWidths[i%count] = max(colWidths[i%count], w)
		}
		total := cl.Gap * (count - 1)
		for _, w := range colWidths {
			total += w
		}
		if total <= width || count == 1 {
			break
		}
	}

	gap := strings.Repeat(" ", cl.Gap)
	var out []string
	for row := 0; row*count < len(cl.Items); row++ {
		var blocks []string
		for col := 0; col < count; col++ {
			i := row*count + col
			if i >= len(cl.Items) {
				break
			}
			lines, err := c.contentLines(cl.Items[i], colWidths[col], true)
			if err != nil {
				return nil, err
			}
			for j, line := range lines {
				lines[j] = padLine(line, colWidths[col])
			}
			if col > 0 {
				blocks = append(blocks, gap)
			}
			blocks = append(blocks, strings.Join(lines, "\n"))
		}
		out = append(out, strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, blocks...), "\n")...)
	}
	return out, nil
}

func (c *Console) columnMeasure(v any, maxWidth int) Measurement {
	if s, ok := v.(string); ok {
		t, err := c.RenderString(s)
		if err != nil {
			return Measurement{}
		}
		return t.measure(c, maxWidth)
	}
	return c.measureIn(v, maxWidth)
}

// Padding surrounds its content with blank space. The content fills the
// width left over after horizontal padding.
type Padding struct {
	Body                     any
	Top, Right, Bottom, Left int
}

// NewPadding expands CSS-style padding: one value for all sides, two for
// vertical and horizontal, four for top, right, bottom and left.
func NewPadding(body any, pad ...int) *Padding {
	p := &Padding{Body: body}
	switch len(pad) {
	case 1:
		p.Top, p.Right, p.Bottom, p.Left = pad[0], pad[0], pad[0], pad[0]
	case 2:
		p.Top, p.Right, p.Bottom, p.Left = pad[0], pad[1], pad[0], pad[1]
	case 4:
		p.Top, p.Right, p.Bottom, p.Left = pad[0], pad[1], pad[2], pad[3]
	}
	return p
}

// Render pads the content to width cells.
func (p *Padding) Render(c *Console, width int) ([]string, error) {
	inner := max(width-p.Left-p.Right, 1)
	lines, err := c.contentLines(p.Body, inner, true)
	if err != nil {
		return nil, err
	}
	for i, line := range lines {
		lines[i] = padLine(line, inner)
	}
	block := c.lg.NewStyle().
		Padding(p.Top, p.Right, p.Bottom, p.Left).
		Render(strings.Join(lines, "\n"))
	return strings.Split(block, "\n"), nil
}

func (p *Padding) measure(c *Console, maxWidth int) Measurement {
	extra := p.Left + p.Right
	m := c.measureIn(p.Body, max(maxWidth-extra, 1))
	return Measurement{Minimum: m.Minimum + extra, Maximum: m.Maximum + extra}.Clamp(maxWidth)
}

// Constrain renders its child no wider than Width. A zero Width passes the
// available width through.
type Constrain struct {
	Child any
	Width int
}

// Render draws the child at the constrained width.
func (k *Constrain) Render(c *Console, width int) ([]string, error) {
	if k.Width > 0 {
		width = min(width, k.Width)
	}
	return c.Lines(k.Child, width)
}

func (k *Constrain) measure(c *Console, maxWidth int) Measurement {
	if k.Width > 0 {
		maxWidth = min(maxWidth, k.Width)
	}
	return c.measureIn(k.Child, maxWidth)
}

// Aligned places its content within the full available width. The content
// keeps its natural width, capped by Width when set.
type Aligned struct {
	Body  any
	Align Align
	Width int
}

// Render pads every line to the available width.
func (a *Aligned) Render(c *Console, width int) ([]string, error) {
	inner := c.measureIn(a.Body, width).Maximum
	if a.Width > 0 {
		inner = min(inner, a.Width)
	}
	lines, err := c.contentLines(a.Body, max(inner, 1), true)
	if err != nil {
		return nil, err
	}
	shape := widest(lines)
	for i, line := range lines {
		lines[i] = padLine(line, shape)
	}
	placed := c.lg.PlaceHorizontal(width, a.Align.position(), strings.Join(lines, "\n"))
	return strings.Split(placed, "\n"), nil
}

func (a *Aligned) measure(c *Console, maxWidth int) Measurement {
	return c.measureIn(a.Body, maxWidth)
}
