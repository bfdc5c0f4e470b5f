package console

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Align is a horizontal alignment.
type Align string

// Alignments.
const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// ParseAlign validates an alignment name. The empty string is left.
func ParseAlign(s string) (Align, bool) {
	switch Align(s) {
	case "", AlignLeft:
		return AlignLeft, true
	case AlignCenter, AlignRight:
		return Align(s), true
	}
	return "", false
}

// Rule is a horizontal line with an optional title.
type Rule struct {
	Title      string
	Characters string
	Align      Align
	// Style names the line style. Empty means rule.line.
	Style string
}

// NewRule returns a rule drawn with the light horizontal line.
func NewRule(title string) *Rule {
	return &Rule{Title: title, Characters: "\u2500", Align: AlignCenter}
}

// Render draws the rule across width cells.
func (r *Rule) Render(c *Console, width int) ([]string, error) {
	chars := r.Characters
	if chars == "" {
		chars = "\u2500"
	}
	styleName := r.Style
	if styleName == "" {
		styleName = "rule.line"
	}
	lineStyle := c.Style(styleName)

	if r.Title == "" {
		return []string{c.ruleLine(chars, width, lineStyle)}, nil
	}

	title, err := c.RenderString(strings.ReplaceAll(r.Title, "\n", " "))
	if err != nil {
		return nil, err
	}
	title.base = c.Style("rule.text").Combine(title.base)
	title.expandTabs(8)

	required := 2
	if r.Align == AlignCenter || r.Align == "" {
		required = 4
	}
	if width-required <= 0 {
		return []string{c.ruleLine(chars, width, lineStyle)}, nil
	}
	title = title.truncate(width-required, true)
	tw := ansi.StringWidth(title.plain)

	line := NewText("", Style{})
	switch r.Align {
	case AlignLeft:
		line.AppendText(title)
		line.Append(" ", Style{})
		line.Append(repeatCells(chars, width-tw-1), lineStyle)
	case AlignRight:
		line.Append(repeatCells(chars, width-tw-1), lineStyle)
		line.Append(" ", Style{})
		line.AppendText(title)
	default:
		side := (width - tw) / 2
		left := repeatCells(chars, side-1)
		right := repeatCells(chars, width-ansi.StringWidth(left)-tw-2)
		line.Append(left+" ", lineStyle)
		line.AppendText(title)
		line.Append(" "+right, lineStyle)
	}
	line = line.truncate(width, false)
	if pad := width - ansi.StringWidth(line.plain); pad > 0 {
		line.Append(strings.Repeat(" ", pad), Style{})
	}
	return []string{line.render(c)}, nil
}

func (c *Console) ruleLine(chars string, width int, style Style) string {
	line := NewText(fitCells(repeatCells(chars, width), width), style)
	return line.render(c)
}

func (r *Rule) measure(*Console, int) Measurement {
	return Measurement{Minimum: 1, Maximum: 1}
}
