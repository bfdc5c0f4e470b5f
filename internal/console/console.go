package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
	"github.com/muesli/termenv"
)

// Version identifies the renderer. Fixture documents record it as their
// source version.
const Version = "termfixture-console/1"

const defaultWidth = 80

// ErrNotRenderable is returned when Print receives a value it cannot render.
var ErrNotRenderable = errors.New("value is not renderable")

// Renderable is anything that lays itself out into styled lines of at most
// width cells.
type Renderable interface {
	Render(c *Console, width int) ([]string, error)
}

// Castable converts itself to a markup string before printing.
type Castable interface {
	Cast() string
}

// Measurable reports its own width range.
type Measurable interface {
	Measure(maxWidth int) Measurement
}

// Segment is one recorded piece of output. Control segments carry terminal
// control sequences and have no plain-text representation.
type Segment struct {
	Text    string
	Control bool
}

// Console is a recording render surface. It is not safe for concurrent use.
type Console struct {
	opts    Options
	width   int
	profile termenv.Profile
	theme   *Theme
	lg      *lipgloss.Renderer
	record  []Segment

	// newLinkID returns the id parameter for each OSC 8 hyperlink.
	newLinkID func() string
}

// New returns a Console configured by opts. Color negotiation happens here,
// once.
func New(opts Options) *Console {
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}
	theme := opts.Theme
	if theme == nil {
		theme = DefaultTheme()
	}
	profile := negotiate(opts)

	lg := lipgloss.NewRenderer(io.Discard,
		termenv.WithEnvironment(opts.Environ),
		termenv.WithProfile(profile),
	)
	lg.SetColorProfile(profile)
	lg.SetHasDarkBackground(true)

	return &Console{
		opts:    opts,
		width:   width,
		profile: profile,
		theme:   theme,
		lg:      lg,
		newLinkID: func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
		},
	}
}

// Width returns the console width in cells.
func (c *Console) Width() int {
	return c.width
}

// ColorSystem returns the negotiated color system.
func (c *Console) ColorSystem() ColorSystem {
	return systemOf(c.profile)
}

// Print renders v at the console width and records the result followed by
// a newline. Lines wider than the console are cropped.
func (c *Console) Print(v any) error {
	if ctrl, ok := v.(*Control); ok {
		c.emit(Segment{Text: ctrl.Sequence(), Control: true}, Segment{Text: "\n"})
		return nil
	}

	lines, err := c.Lines(v, c.width)
	if err != nil {
		return err
	}
	segs := make([]Segment, 0, len(lines)*2)
	for _, line := range lines {
		if ansi.StringWidth(line) > c.width {
			line = ansi.Truncate(line, c.width, "")
		}
		segs = append(segs, Segment{Text: line}, Segment{Text: "\n"})
	}
	c.emit(segs...)
	return nil
}

func (c *Console) emit(segs ...Segment) {
	if c.opts.Record {
		c.record = append(c.record, segs...)
	}
}

// Lines renders v into lines of at most width cells.
func (c *Console) Lines(v any, width int) ([]string, error) {
	if width <= 0 {
		width = 1
	}
	switch x := v.(type) {
	case Renderable:
		return x.Render(c, width)
	case Castable:
		return Markup(x.Cast()).Render(c, width)
	case string:
		return Markup(x).Render(c, width)
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrNotRenderable)
	}
	return nil, fmt.Errorf("%w: %T", ErrNotRenderable, v)
}

// ExportText returns the recorded output without styling. Control segments
// are excluded.
func (c *Console) ExportText() string {
	var b strings.Builder
	for _, seg := range c.record {
		if seg.Control {
			continue
		}
		b.WriteString(ansi.Strip(seg.Text))
	}
	return b.String()
}

// ExportANSI returns the recorded output with every escape sequence.
func (c *Console) ExportANSI() string {
	var b strings.Builder
	for _, seg := range c.record {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// Buffered returns the number of recorded segments.
func (c *Console) Buffered() int {
	return len(c.record)
}

// Clear drops the record buffer.
func (c *Console) Clear() {
	c.record = nil
}

// Style resolves a style name through the theme, falling back to parsing
// it as a definition. Unresolvable names yield the null style.
func (c *Console) Style(name string) Style {
	if s, ok := c.theme.Lookup(name); ok {
		return s
	}
	s, err := ParseStyle(name)
	if err != nil {
		return Style{}
	}
	return s
}

// colorEnabled reports whether any styling reaches the output.
func (c *Console) colorEnabled() bool {
	return c.profile != termenv.Ascii
}

// styled applies s to text, wrapping it in a hyperlink when s carries one.
func (c *Console) styled(text string, s Style) string {
	if text == "" || !c.colorEnabled() {
		return text
	}
	out := s.render(c.profile, text)
	if s.link != "" {
		out = ansi.SetHyperlink(s.link, "id="+c.newLinkID()) + out + ansi.ResetHyperlink()
	}
	return out
}

// box returns the border set for a box name, honoring SafeBox.
func (c *Console) box(name string) lipgloss.Border {
	if _, ok := boxes[name]; !ok {
		name = BoxRounded
	}
	if sub, ok := safeBoxes[name]; ok && c.opts.SafeBox {
		name = sub
	}
	return boxes[name]
}
