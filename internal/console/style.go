package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type attr uint8

const (
	attrBold attr = 1 << iota
	attrDim
	attrItalic
	attrUnderline
	attrBlink
	attrReverse
	attrStrike
)

// SGR order matters: it is the order codes appear in the output.
var attrOrder = []struct {
	bit attr
	seq string
}{
	{attrBold, termenv.BoldSeq},
	{attrDim, termenv.FaintSeq},
	{attrItalic, termenv.ItalicSeq},
	{attrUnderline, termenv.UnderlineSeq},
	{attrBlink, termenv.BlinkSeq},
	{attrReverse, termenv.ReverseSeq},
	{attrStrike, termenv.CrossOutSeq},
}

var attrNames = map[string]attr{
	"bold":      attrBold,
	"b":         attrBold,
	"dim":       attrDim,
	"d":         attrDim,
	"italic":    attrItalic,
	"i":         attrItalic,
	"underline": attrUnderline,
	"u":         attrUnderline,
	"blink":     attrBlink,
	"reverse":   attrReverse,
	"r":         attrReverse,
	"strike":    attrStrike,
	"s":         attrStrike,
}

type colorKind uint8

const (
	colorUnset colorKind = iota
	colorDefault
	colorStandard
	colorEightBit
	colorTrue
)

// Color is a terminal color: a palette entry, a 24-bit value or the
// terminal default.
type Color struct {
	kind    colorKind
	number  uint8
	r, g, b uint8
}

// RGB returns a 24-bit color.
func RGB(r, g, b uint8) Color {
	return Color{kind: colorTrue, r: r, g: g, b: b}
}

// Palette returns a color from the 256-color palette. Numbers below 16 are
// the standard colors.
func Palette(n uint8) Color {
	if n < 16 {
		return Color{kind: colorStandard, number: n}
	}
	return Color{kind: colorEightBit, number: n}
}

// IsSet reports whether c holds a color.
func (c Color) IsSet() bool {
	return c.kind != colorUnset
}

func (c Color) termenv() termenv.Color {
	switch c.kind {
	case colorDefault:
		return defaultColor{}
	case colorStandard:
		return termenv.ANSIColor(c.number)
	case colorEightBit:
		return termenv.ANSI256Color(c.number)
	case colorTrue:
		return termenv.RGBColor(c.hex())
	}
	return nil
}

func (c Color) lipgloss() lipgloss.TerminalColor {
	switch c.kind {
	case colorStandard, colorEightBit:
		return lipgloss.Color(strconv.Itoa(int(c.number)))
	case colorTrue:
		return lipgloss.Color(c.hex())
	}
	return lipgloss.NoColor{}
}

func (c Color) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
}

// defaultColor resets to the terminal's default color.
type defaultColor struct{}

func (defaultColor) Sequence(bg bool) string {
	if bg {
		return "49"
	}
	return "39"
}

var standardNames = []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// ParseColor parses a color name, #rrggbb, rgb(r,g,b), color(n) or
// "default".
func ParseColor(name string) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch {
	case name == "default":
		return Color{kind: colorDefault}, nil
	case strings.HasPrefix(name, "#"):
		if len(name) != 7 {
			return Color{}, fmt.Errorf("invalid hex color %q", name)
		}
		v, err := strconv.ParseUint(name[1:], 16, 32)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color %q", name)
		}
		return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	case strings.HasPrefix(name, "rgb(") && strings.HasSuffix(name, ")"):
		parts := strings.Split(name[4:len(name)-1], ",")
		if len(parts) != 3 {
			return Color{}, fmt.Errorf("invalid rgb color %q", name)
		}
		var rgb [3]uint8
		for i, p := range parts {
			v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return Color{}, fmt.Errorf("invalid rgb color %q", name)
			}
			rgb[i] = uint8(v)
		}
		return RGB(rgb[0], rgb[1], rgb[2]), nil
	case strings.HasPrefix(name, "color(") && strings.HasSuffix(name, ")"):
		v, err := strconv.ParseUint(strings.TrimSpace(name[6:len(name)-1]), 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid palette color %q", name)
		}
		return Palette(uint8(v)), nil
	}

	bright := strings.HasPrefix(name, "bright_")
	base := strings.TrimPrefix(name, "bright_")
	for i, n := range standardNames {
		if n == base {
			if bright {
				i += 8
			}
			return Color{kind: colorStandard, number: uint8(i)}, nil
		}
	}
	return Color{}, fmt.Errorf("unknown color %q", name)
}

// Style is a set of text attributes, colors and an optional hyperlink.
// Attributes are tri-state: unspecified, on, or explicitly off ("not bold").
// The zero Style is the null style.
type Style struct {
	attrs attr
	set   attr
	fg    Color
	bg    Color
	link  string
}

// ParseStyle parses a style definition such as "bold red on white",
// "not italic #ff8800" or "link https://example.com".
func ParseStyle(def string) (Style, error) {
	var s Style
	words := strings.Fields(def)
	for i := 0; i < len(words); i++ {
		word := strings.ToLower(words[i])
		switch word {
		case "none":
			continue
		case "on":
			i++
			if i >= len(words) {
				return Style{}, fmt.Errorf("style %q: color expected after 'on'", def)
			}
			c, err := ParseColor(words[i])
			if err != nil {
				return Style{}, fmt.Errorf("style %q: %w", def, err)
			}
			s.bg = c
			continue
		case "not":
			i++
			if i >= len(words) {
				return Style{}, fmt.Errorf("style %q: attribute expected after 'not'", def)
			}
			a, ok := attrNames[strings.ToLower(words[i])]
			if !ok {
				return Style{}, fmt.Errorf("style %q: unknown attribute %q", def, words[i])
			}
			s.set |= a
			s.attrs &^= a
			continue
		case "link":
			i++
			if i >= len(words) {
				return Style{}, fmt.Errorf("style %q: URL expected after 'link'", def)
			}
			s.link = words[i]
			continue
		}
		if a, ok := attrNames[word]; ok {
			s.set |= a
			s.attrs |= a
			continue
		}
		c, err := ParseColor(word)
		if err != nil {
			return Style{}, fmt.Errorf("style %q: %w", def, err)
		}
		s.fg = c
	}
	return s, nil
}

// MustParseStyle is ParseStyle for definitions known to be valid.
func MustParseStyle(def string) Style {
	s, err := ParseStyle(def)
	if err != nil {
		panic(err)
	}
	return s
}

// LinkStyle returns a style carrying only a hyperlink.
func LinkStyle(url string) Style {
	return Style{link: url}
}

// IsNull reports whether s changes nothing.
func (s Style) IsNull() bool {
	return s.set == 0 && !s.fg.IsSet() && !s.bg.IsSet() && s.link == ""
}

// Combine layers o over s: every property o specifies wins.
func (s Style) Combine(o Style) Style {
	s.attrs = (s.attrs &^ o.set) | (o.attrs & o.set)
	s.set |= o.set
	if o.fg.IsSet() {
		s.fg = o.fg
	}
	if o.bg.IsSet() {
		s.bg = o.bg
	}
	if o.link != "" {
		s.link = o.link
	}
	return s
}

func (s Style) has(a attr) bool {
	return s.attrs&a != 0
}

// Link returns the hyperlink target, if any.
func (s Style) Link() string {
	return s.link
}

// WithoutLink returns s with the hyperlink removed.
func (s Style) WithoutLink() Style {
	s.link = ""
	return s
}

// Background returns s with only its background color.
func (s Style) Background() Style {
	return Style{bg: s.bg}
}

func (s Style) String() string {
	var parts []string
	names := []string{"bold", "dim", "italic", "underline", "blink", "reverse", "strike"}
	for i, a := range attrOrder {
		if s.set&a.bit == 0 {
			continue
		}
		if s.attrs&a.bit == 0 {
			parts = append(parts, "not "+names[i])
		} else {
			parts = append(parts, names[i])
		}
	}
	if s.fg.IsSet() {
		parts = append(parts, s.fg.name())
	}
	if s.bg.IsSet() {
		parts = append(parts, "on "+s.bg.name())
	}
	if s.link != "" {
		parts = append(parts, "link "+s.link)
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

func (c Color) name() string {
	switch c.kind {
	case colorDefault:
		return "default"
	case colorStandard:
		if c.number >= 8 {
			return "bright_" + standardNames[c.number-8]
		}
		return standardNames[c.number]
	case colorEightBit:
		return fmt.Sprintf("color(%d)", c.number)
	case colorTrue:
		return c.hex()
	}
	return ""
}

// render applies s to text using profile p. The Ascii profile returns text
// unchanged.
func (s Style) render(p termenv.Profile, text string) string {
	if text == "" || p == termenv.Ascii {
		return text
	}
	ts := p.String()
	for _, a := range attrOrder {
		if s.has(a.bit) {
			ts = appendSeq(ts, a.bit)
		}
	}
	if s.fg.IsSet() {
		ts = ts.Foreground(p.Convert(s.fg.termenv()))
	}
	if s.bg.IsSet() {
		ts = ts.Background(p.Convert(s.bg.termenv()))
	}
	return ts.Styled(text)
}

func appendSeq(ts termenv.Style, a attr) termenv.Style {
	switch a {
	case attrBold:
		return ts.Bold()
	case attrDim:
		return ts.Faint()
	case attrItalic:
		return ts.Italic()
	case attrUnderline:
		return ts.Underline()
	case attrBlink:
		return ts.Blink()
	case attrReverse:
		return ts.Reverse()
	case attrStrike:
		return ts.CrossOut()
	}
	return ts
}

// lipgloss converts s for use with a lipgloss renderer. Hyperlinks do not
// carry over.
func (s Style) lipgloss(r *lipgloss.Renderer) lipgloss.Style {
	ls := r.NewStyle()
	if s.has(attrBold) {
		ls = ls.Bold(true)
	}
	if s.has(attrDim) {
		ls = ls.Faint(true)
	}
	if s.has(attrItalic) {
		ls = ls.Italic(true)
	}
	if s.has(attrUnderline) {
		ls = ls.Underline(true)
	}
	if s.has(attrBlink) {
		ls = ls.Blink(true)
	}
	if s.has(attrReverse) {
		ls = ls.Reverse(true)
	}
	if s.has(attrStrike) {
		ls = ls.Strikethrough(true)
	}
	if s.fg.IsSet() {
		ls = ls.Foreground(s.fg.lipgloss())
	}
	if s.bg.IsSet() {
		ls = ls.Background(s.bg.lipgloss())
	}
	return ls
}
