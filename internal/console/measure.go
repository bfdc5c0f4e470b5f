package console

import "github.com/charmbracelet/x/ansi"

// Measurement is the range of widths a renderable can occupy.
type Measurement struct {
	Minimum int
	Maximum int
}

// Normalize makes the range non-negative with Minimum <= Maximum.
func (m Measurement) Normalize() Measurement {
	lo := max(m.Minimum, 0)
	lo = min(lo, max(m.Maximum, 0))
	return Measurement{Minimum: lo, Maximum: max(lo, m.Maximum, 0)}
}

// Clamp limits both bounds to width.
func (m Measurement) Clamp(width int) Measurement {
	return Measurement{Minimum: min(m.Minimum, width), Maximum: min(m.Maximum, width)}
}

// measurer is implemented by built-in renderables that know their range
// without rendering.
type measurer interface {
	measure(c *Console, maxWidth int) Measurement
}

// Measure returns the normalized width range of v, clamped to the console
// width.
func (c *Console) Measure(v any) Measurement {
	return c.measureIn(v, c.width)
}

// measureIn measures v against maxWidth instead of the console width.
func (c *Console) measureIn(v any, maxWidth int) Measurement {
	maxWidth = max(maxWidth, 1)
	var m Measurement
	switch x := v.(type) {
	case Measurable:
		m = x.Measure(maxWidth)
	case measurer:
		m = x.measure(c, maxWidth)
	case Castable:
		m = Markup(x.Cast()).measure(c, maxWidth)
	case string:
		m = Markup(x).measure(c, maxWidth)
	default:
		lines, err := c.Lines(v, maxWidth)
		if err != nil {
			return Measurement{}
		}
		w := widest(lines)
		m = Measurement{Minimum: w, Maximum: w}
	}
	return m.Normalize().Clamp(maxWidth)
}

func widest(lines []string) int {
	w := 0
	for _, line := range lines {
		w = max(w, ansi.StringWidth(line))
	}
	return w
}
