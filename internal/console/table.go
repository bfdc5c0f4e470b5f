package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
)

// Column is a table column header with its justification.
type Column struct {
	Header  string
	Justify Align
}

// Table lays out rows of markup cells under optional headers.
type Table struct {
	Columns    []Column
	Rows       [][]string
	ShowHeader bool
	ShowLines  bool
	Title      string
	Caption    string
	Box        string
}

// NewTable returns a table with headers shown.
func NewTable(columns ...Column) *Table {
	return &Table{Columns: columns, ShowHeader: true, Box: BoxRounded}
}

// AddRow appends a row of markup cells.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render draws the table, shrinking columns to width when it would not
// fit.
func (t *Table) Render(c *Console, width int) ([]string, error) {
	cells := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells[i] = make([]string, len(t.Columns))
		for j := range t.Columns {
			if j >= len(row) {
				continue
			}
			cell, err := c.cellText(row[j], c.Style("table.cell"))
			if err != nil {
				return nil, err
			}
			cells[i][j] = cell
		}
	}

	border := c.box(t.Box)
	build := func() *table.Table {
		tbl := table.New().
			Border(border).
			BorderStyle(c.Style("table.border").lipgloss(c.lg)).
			BorderRow(t.ShowLines).
			StyleFunc(func(row, col int) lipgloss.Style {
				s := c.lg.NewStyle().Padding(0, 1)
				if col < len(t.Columns) {
					s = s.Align(t.Columns[col].Justify.position())
				}
				return s
			}).
			Rows(cells...)
		if t.ShowHeader {
			headers := make([]string, len(t.Columns))
			for i, col := range t.Columns {
				h, err := c.cellText(col.Header, c.Style("table.header"))
				if err != nil {
					h = col.Header
				}
				headers[i] = h
			}
			tbl.Headers(headers...)
		} else {
			tbl.BorderHeader(false)
		}
		return tbl
	}

	rendered := build().Render()
	if lipgloss.Width(rendered) > width {
		rendered = build().Width(width).Render()
	}
	lines := closeTable(strings.Split(rendered, "\n"), border)
	tableWidth := widest(lines)

	var out []string
	if t.Title != "" {
		title, err := c.annotation(t.Title, "table.title", tableWidth)
		if err != nil {
			return nil, err
		}
		out = append(out, title...)
	}
	out = append(out, lines...)
	if t.Caption != "" {
		caption, err := c.annotation(t.Caption, "table.caption", tableWidth)
		if err != nil {
			return nil, err
		}
		out = append(out, caption...)
	}
	return out, nil
}

// closeTable appends the bottom edge when lipgloss leaves it off, which it
// does for tables without a header row.
func closeTable(lines []string, b lipgloss.Border) []string {
	if len(lines) < 2 {
		return lines
	}
	bottom := strings.NewReplacer(
		b.TopLeft, b.BottomLeft,
		b.MiddleTop, b.MiddleBottom,
		b.TopRight, b.BottomRight,
		b.Top, b.Bottom,
	).Replace(lines[0])
	if ansi.Strip(lines[len(lines)-1]) == ansi.Strip(bottom) {
		return lines
	}
	return append(lines, bottom)
}

// cellText renders a single-line markup cell with a base style.
func (c *Console) cellText(markup string, base Style) (string, error) {
	t, err := c.ParseMarkup(markup, base)
	if err != nil {
		return "", err
	}
	lines := t.Lines(1 << 30)
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line.render(c)
	}
	return strings.Join(out, "\n"), nil
}

// annotation renders a centered title or caption across width cells.
func (c *Console) annotation(markup, style string, width int) ([]string, error) {
	t, err := c.ParseMarkup(markup, c.Style(style))
	if err != nil {
		return nil, err
	}
	var out []string
	for _, line := range t.Lines(width) {
		out = append(out, line.aligned(AlignCenter, width).render(c))
	}
	return out, nil
}

func (a Align) position() lipgloss.Position {
	switch a {
	case AlignCenter:
		return lipgloss.Center
	case AlignRight:
		return lipgloss.Right
	}
	return lipgloss.Left
}
