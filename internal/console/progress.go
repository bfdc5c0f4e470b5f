package console

import "strings"

const (
	barFull      = "\u2501"
	barHalfRight = "\u2578"
	barHalfLeft  = "\u257a"
)

// ProgressBar is a one-line completion bar drawn in half-cell steps.
type ProgressBar struct {
	Total     int
	Completed int
	// Width fixes the bar width. Zero means the available width.
	Width int
}

// Finished reports whether the bar is complete.
func (p *ProgressBar) Finished() bool {
	return p.Completed >= p.Total
}

// Render draws the bar. The unfilled remainder is only drawn when colors
// are enabled.
func (p *ProgressBar) Render(c *Console, width int) ([]string, error) {
	if p.Width > 0 {
		width = min(p.Width, width)
	}
	completed := min(p.Total, max(0, p.Completed))
	halves := width * 2
	if p.Total > 0 {
		halves = width * 2 * completed / p.Total
	}
	full, half := halves/2, halves%2

	complete := c.Style("bar.complete")
	if p.Finished() {
		complete = c.Style("bar.finished")
	}

	line := NewText("", Style{})
	line.Append(strings.Repeat(barFull, full), complete)
	line.Append(strings.Repeat(barHalfRight, half), complete)
	if c.colorEnabled() {
		remaining := width - full - half
		if remaining > 0 && half == 0 && full > 0 {
			line.Append(barHalfLeft, c.Style("bar.back"))
			remaining--
		}
		if remaining > 0 {
			line.Append(strings.Repeat(barFull, remaining), c.Style("bar.back"))
		}
	}
	return []string{line.render(c)}, nil
}

func (p *ProgressBar) measure(_ *Console, maxWidth int) Measurement {
	if p.Width > 0 {
		return Measurement{Minimum: p.Width, Maximum: p.Width}
	}
	return Measurement{Minimum: 4, Maximum: maxWidth}
}
