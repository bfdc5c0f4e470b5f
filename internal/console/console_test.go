package console

import (
	"errors"
	"regexp"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

var linkIDPattern = regexp.MustCompile(`\x1b\]8;id=([^;]*);`)

func newTestConsole(t *testing.T, width int, system ColorSystem) *Console {
	t.Helper()
	c := New(Options{
		Width:       width,
		ColorSystem: system,
		Emoji:       true,
		Markup:      true,
		Highlight:   true,
		SafeBox:     true,
		Record:      true,
	})
	c.newLinkID = func() string { return "abc" }
	return c
}

func TestNegotiate(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		expected termenv.Profile
	}{
		{"explicit truecolor", Options{ColorSystem: ColorTrueColor}, termenv.TrueColor},
		{"explicit standard", Options{ColorSystem: ColorStandard}, termenv.ANSI},
		{"explicit monochrome", Options{ColorSystem: ColorNone}, termenv.Ascii},
		{"explicit wins over NO_COLOR", Options{ColorSystem: Color256, Environ: Environ{"NO_COLOR": "1"}}, termenv.ANSI256},
		{"auto without terminal", Options{Environ: Environ{"TERM": "xterm-256color"}}, termenv.Ascii},
		{"auto forced off", Options{ForceTerminal: boolPtr(false), Environ: Environ{"FORCE_COLOR": "1", "TERM": "xterm-256color"}}, termenv.Ascii},
		{"auto forced on", Options{ForceTerminal: boolPtr(true), Environ: Environ{"TERM": "xterm-256color"}}, termenv.ANSI256},
		{"empty FORCE_COLOR makes a terminal", Options{Environ: Environ{"FORCE_COLOR": "", "TERM": "xterm-256color"}}, termenv.ANSI256},
		{"FORCE_COLOR makes a terminal", Options{Environ: Environ{"FORCE_COLOR": "1", "TERM": "xterm-256color"}}, termenv.ANSI256},
		{"COLORTERM truecolor", Options{Environ: Environ{"FORCE_COLOR": "1", "COLORTERM": "truecolor", "TERM": "xterm-256color"}}, termenv.TrueColor},
		{"TERM 16color", Options{Environ: Environ{"FORCE_COLOR": "1", "TERM": "xterm-16color"}}, termenv.ANSI},
		{"TERM dumb", Options{Environ: Environ{"FORCE_COLOR": "1", "TERM": "dumb"}}, termenv.Ascii},
		{"NO_COLOR", Options{Environ: Environ{"NO_COLOR": "1", "FORCE_COLOR": "1", "TERM": "xterm-256color"}}, termenv.Ascii},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, negotiate(tt.opts))
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	c := New(Options{})
	assert.Equal(t, 80, c.Width())
	assert.Equal(t, ColorNone, c.ColorSystem())
}

func TestPrint_StyledMarkup(t *testing.T) {
	c := newTestConsole(t, 40, ColorTrueColor)
	require.NoError(t, c.Print("[bold]Bold[/]"))

	assert.Equal(t, "Bold\n", c.ExportText())
	assert.Equal(t, "\x1b[1mBold\x1b[0m\n", c.ExportANSI())
}

func TestPrint_StandardColor(t *testing.T) {
	c := newTestConsole(t, 40, ColorTrueColor)
	require.NoError(t, c.Print("[red]Red[/]"))
	assert.Equal(t, "\x1b[31mRed\x1b[0m\n", c.ExportANSI())
}

func TestPrint_TrueColor(t *testing.T) {
	c := newTestConsole(t, 40, ColorTrueColor)
	require.NoError(t, c.Print("[#ff0000]TrueColor[/]"))
	assert.Equal(t, "\x1b[38;2;255;0;0mTrueColor\x1b[0m\n", c.ExportANSI())
}

func TestPrint_DownsampledColor(t *testing.T) {
	c := newTestConsole(t, 40, ColorStandard)
	require.NoError(t, c.Print("[#ff8800]Downsampled[/]"))

	out := c.ExportANSI()
	assert.Contains(t, out, "\x1b[")
	assert.NotContains(t, out, "38;2;")
	assert.NotContains(t, out, "38;5;")
}

func TestPrint_MonochromeDropsStyling(t *testing.T) {
	c := newTestConsole(t, 40, ColorNone)
	require.NoError(t, c.Print("[bold #ff8800]Mono[/] 123"))
	assert.Equal(t, "Mono 123\n", c.ExportANSI())
	assert.Equal(t, c.ExportText(), c.ExportANSI())
}

func TestPrint_CropsToWidth(t *testing.T) {
	c := newTestConsole(t, 5, ColorNone)
	require.NoError(t, c.Print(&Text{plain: "abcdefgh", NoWrap: true}))
	assert.Equal(t, "abcde\n", c.ExportText())
}

func TestPrint_WrapsWords(t *testing.T) {
	c := newTestConsole(t, 20, ColorNone)
	require.NoError(t, c.Print("The quick brown fox jumps over the lazy dog"))
	assert.Equal(t, "The quick brown fox\njumps over the lazy\ndog\n", c.ExportText())
}

func TestPrint_NotRenderable(t *testing.T) {
	c := newTestConsole(t, 40, ColorNone)

	err := c.Print(42)
	assert.True(t, errors.Is(err, ErrNotRenderable))
	err = c.Print(nil)
	assert.True(t, errors.Is(err, ErrNotRenderable))
	assert.Equal(t, 0, c.Buffered())
}

func TestPrint_MarkupError(t *testing.T) {
	c := newTestConsole(t, 40, ColorNone)

	err := c.Print("oops[/]")
	var me *MarkupError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "oops[/]", me.Markup)
}

func TestPrint_WithoutRecord(t *testing.T) {
	c := New(Options{Width: 20, Markup: true})
	require.NoError(t, c.Print("hello"))
	assert.Equal(t, 0, c.Buffered())
	assert.Equal(t, "", c.ExportText())
}

func TestClear(t *testing.T) {
	c := newTestConsole(t, 40, ColorNone)
	require.NoError(t, c.Print("one"))
	assert.Equal(t, 2, c.Buffered())

	c.Clear()
	assert.Equal(t, 0, c.Buffered())
	assert.Equal(t, "", c.ExportANSI())
}

func TestPrint_Control(t *testing.T) {
	c := newTestConsole(t, 40, ColorTrueColor)
	require.NoError(t, c.Print(Clear()))

	assert.Equal(t, "\x1b[2J\n", c.ExportANSI())
	assert.Equal(t, "\n", c.ExportText())

	require.Len(t, c.record, 2)
	assert.True(t, c.record[0].Control)
	assert.False(t, c.record[1].Control)
}

func TestControl_Sequences(t *testing.T) {
	tests := []struct {
		name     string
		ctrl     *Control
		expected string
	}{
		{"clear", Clear(), "\x1b[2J"},
		{"home", Home(), "\x1b[H"},
		{"bell", Bell(), "\a"},
		{"move right up", Move(3, -2), "\x1b[3C\x1b[2A"},
		{"move left down", Move(-1, 4), "\x1b[1D\x1b[4B"},
		{"move nowhere", Move(0, 0), ""},
		{"move to column", MoveToColumn(0, 2), "\x1b[1G\x1b[2B"},
		{"move to column only", MoveToColumn(9, 0), "\x1b[10G"},
		{"move to", MoveTo(4, 1), "\x1b[2;5H"},
		{"show cursor", ShowCursor(true), "\x1b[?25h"},
		{"hide cursor", ShowCursor(false), "\x1b[?25l"},
		{"alt screen on", AltScreen(true), "\x1b[?1049h\x1b[H"},
		{"alt screen off", AltScreen(false), "\x1b[?1049l"},
		{"title", Title("rich_rust"), "\x1b]0;rich_rust\a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.ctrl.Sequence())
		})
	}
}

func TestPrint_Hyperlink(t *testing.T) {
	c := newTestConsole(t, 40, ColorTrueColor)
	require.NoError(t, c.Print("[link=https://example.com]Example[/]"))

	assert.Equal(t, "\x1b]8;id=abc;https://example.com\aExample\x1b]8;;\a\n", c.ExportANSI())
	assert.Equal(t, "Example\n", c.ExportText())
}

func TestPrint_HyperlinkNeedsColor(t *testing.T) {
	c := newTestConsole(t, 40, ColorNone)
	require.NoError(t, c.Print("[link=https://example.com]Example[/]"))
	assert.Equal(t, "Example\n", c.ExportANSI())
}

func TestPrint_LinkIDsAreRandom(t *testing.T) {
	c := New(Options{Width: 40, ColorSystem: ColorTrueColor, Markup: true, Record: true})
	require.NoError(t, c.Print("[link=https://a.example]a[/] [link=https://b.example]b[/]"))

	ids := linkIDPattern.FindAllStringSubmatch(c.ExportANSI(), -1)
	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0][1], ids[1][1])
	assert.Len(t, ids[0][1], 12)
}

type fixedMeasure struct{ min, max int }

func (f fixedMeasure) Measure(int) Measurement {
	return Measurement{Minimum: f.min, Maximum: f.max}
}

func (f fixedMeasure) Render(*Console, int) ([]string, error) {
	return []string{""}, nil
}

func TestMeasure_Measurable(t *testing.T) {
	c := newTestConsole(t, 40, ColorNone)
	assert.Equal(t, Measurement{Minimum: 2, Maximum: 10}, c.Measure(fixedMeasure{2, 10}))
}

func TestMeasure_NormalizesAndClamps(t *testing.T) {
	c := newTestConsole(t, 8, ColorNone)
	assert.Equal(t, Measurement{Minimum: 4, Maximum: 4}, c.Measure(fixedMeasure{12, 4}))
	assert.Equal(t, Measurement{Minimum: 0, Maximum: 8}, c.Measure(fixedMeasure{-3, 30}))
}

func TestMeasure_Text(t *testing.T) {
	c := newTestConsole(t, 40, ColorNone)
	assert.Equal(t, Measurement{Minimum: 5, Maximum: 11}, c.Measure("hello world"))
}

type castable string

func (s castable) Cast() string { return string(s) }

func TestPrint_Castable(t *testing.T) {
	c := newTestConsole(t, 40, ColorNone)
	require.NoError(t, c.Print(castable("[bold]cast[/]")))
	assert.Equal(t, "cast\n", c.ExportText())
}

func TestStyle_Resolution(t *testing.T) {
	theme, err := NewTheme(map[string]string{"warning": "bold red"}, true)
	require.NoError(t, err)
	c := New(Options{Theme: theme})

	assert.Equal(t, MustParseStyle("bold red"), c.Style("warning"))
	assert.Equal(t, MustParseStyle("italic"), c.Style("italic"))
	assert.Equal(t, MustParseStyle("underline green"), c.Style("underline green"))
	assert.True(t, c.Style("no.such.style").IsNull())
}
