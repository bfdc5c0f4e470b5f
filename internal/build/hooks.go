package build

import "github.com/roach88/termfixture/internal/console"

// CastHook converts itself to markup when printed. It has no other
// capability.
type CastHook struct {
	Markup string
}

// Cast returns the markup.
func (h *CastHook) Cast() string {
	return h.Markup
}

// MeasureHook declares its own width range. Its visual output is a single
// empty line.
type MeasureHook struct {
	Minimum int
	Maximum int
}

// Measure returns the declared range, unnormalized.
func (h *MeasureHook) Measure(int) console.Measurement {
	return console.Measurement{Minimum: h.Minimum, Maximum: h.Maximum}
}

// Render draws nothing.
func (h *MeasureHook) Render(*console.Console, int) ([]string, error) {
	return []string{""}, nil
}
