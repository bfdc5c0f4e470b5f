package console

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spanOf struct {
	start, end int
	style      Style
}

func spansOf(t *Text) []spanOf {
	out := make([]spanOf, 0, len(t.spans))
	for _, sp := range t.spans {
		out = append(out, spanOf{sp.start, sp.end, sp.style})
	}
	return out
}

func TestParseMarkup_Nested(t *testing.T) {
	c := newTestConsole(t, 40, ColorTrueColor)

	text, err := c.ParseMarkup("[bold]a[italic]b[/italic]c[/bold]d", Style{})
	require.NoError(t, err)
	assert.Equal(t, "abcd", text.Plain())
	assert.Equal(t, []spanOf{
		{0, 3, MustParseStyle("bold")},
		{1, 2, MustParseStyle("italic")},
	}, spansOf(text))
}

func TestParseMarkup_ImplicitClose(t *testing.T) {
	c := newTestConsole(t, 40, ColorTrueColor)

	text, err := c.ParseMarkup("[red]open to the end", Style{})
	require.NoError(t, err)
	assert.Equal(t, "open to the end", text.Plain())
	assert.Equal(t, []spanOf{{0, 15, MustParseStyle("red")}}, spansOf(text))
}

func TestParseMarkup_Escapes(t *testing.T) {
	c := newTestConsole(t, 40, ColorTrueColor)

	text, err := c.ParseMarkup(`\[bold]literal`, Style{})
	require.NoError(t, err)
	assert.Equal(t, "[bold]literal", text.Plain())
	assert.Empty(t, text.spans)

	text, err = c.ParseMarkup(`\\[bold]x`, Style{})
	require.NoError(t, err)
	assert.Equal(t, `\x`, text.Plain())
	assert.Equal(t, []spanOf{{1, 2, MustParseStyle("bold")}}, spansOf(text))
}

func TestParseMarkup_NotATag(t *testing.T) {
	c := newTestConsole(t, 40, ColorTrueColor)

	text, err := c.ParseMarkup("list[0] and [1, 2]", Style{})
	require.NoError(t, err)
	assert.Equal(t, "list[0] and [1, 2]", text.Plain())
}

func TestParseMarkup_Errors(t *testing.T) {
	c := newTestConsole(t, 40, ColorTrueColor)

	tests := []struct {
		name   string
		markup string
	}{
		{"nothing to close", "text[/]"},
		{"unmatched name", "[bold]x[/italic]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.ParseMarkup(tt.markup, Style{})
			var me *MarkupError
			require.True(t, errors.As(err, &me))
			assert.Equal(t, tt.markup, me.Markup)
		})
	}
}

func TestParseMarkup_Link(t *testing.T) {
	c := newTestConsole(t, 40, ColorTrueColor)

	text, err := c.ParseMarkup("see [link=https://example.com]here[/link=https://example.com]", Style{})
	require.NoError(t, err)
	require.Len(t, text.spans, 1)
	assert.Equal(t, "https://example.com", text.spans[0].style.Link())
}

func TestEmojize(t *testing.T) {
	c := newTestConsole(t, 40, ColorNone)
	smiley, ok := Emoji("smiley")
	require.True(t, ok)

	assert.Equal(t, smiley+" hi", c.emojize(":smiley: hi"))
	assert.Equal(t, smiley+"\ufe0e", c.emojize(":smiley-text:"))
	assert.Equal(t, smiley+"\ufe0f", c.emojize(":smiley-emoji:"))
	assert.Equal(t, ":no_such_emoji:", c.emojize(":no_such_emoji:"))
	assert.Equal(t, "12:30:45", c.emojize("12:30:45"))

	off := New(Options{Markup: true})
	assert.Equal(t, ":smiley:", off.emojize(":smiley:"))
}

func TestHighlightRepr_Literals(t *testing.T) {
	c := newTestConsole(t, 40, ColorTrueColor)

	text := NewText("True 123 'hi'", Style{})
	c.highlightRepr(text)
	assert.Equal(t, []spanOf{
		{0, 4, c.Style("repr.bool_true")},
		{5, 8, c.Style("repr.number")},
		{9, 13, c.Style("repr.str")},
	}, spansOf(text))
}

func TestHighlightRepr_NumbersInsideWords(t *testing.T) {
	c := newTestConsole(t, 40, ColorTrueColor)

	text := NewText("abc123", Style{})
	c.highlightRepr(text)
	assert.Empty(t, text.spans)
}

func TestHighlightRepr_URLAndBraces(t *testing.T) {
	c := newTestConsole(t, 60, ColorTrueColor)

	text := NewText("go to https://example.com (now)", Style{})
	c.highlightRepr(text)

	spans := spansOf(text)
	assert.Contains(t, spans, spanOf{26, 27, c.Style("repr.brace")})
	assert.Contains(t, spans, spanOf{30, 31, c.Style("repr.brace")})
	assert.Contains(t, spans, spanOf{6, 25, c.Style("repr.url")})
}

func TestFromANSI_SGR(t *testing.T) {
	text := FromANSI("\x1b[1mBold\x1b[0m plain \x1b[31mred\x1b[39m")
	assert.Equal(t, "Bold plain red", text.Plain())
	assert.Equal(t, []spanOf{
		{0, 4, MustParseStyle("bold")},
		{11, 14, MustParseStyle("red")},
	}, spansOf(text))
}

func TestFromANSI_ExtendedColors(t *testing.T) {
	text := FromANSI("\x1b[38;2;255;0;0mA\x1b[48;5;200mB")
	assert.Equal(t, "AB", text.Plain())
	require.Len(t, text.spans, 2)
	assert.Equal(t, RGB(255, 0, 0), text.spans[0].style.fg)
	assert.Equal(t, RGB(255, 0, 0), text.spans[1].style.fg)
	assert.Equal(t, Palette(200), text.spans[1].style.bg)
}

func TestFromANSI_Hyperlink(t *testing.T) {
	text := FromANSI("\x1b]8;id=1;https://example.com\x07link\x1b]8;;\x07 after")
	assert.Equal(t, "link after", text.Plain())
	require.Len(t, text.spans, 1)
	assert.Equal(t, "https://example.com", text.spans[0].style.Link())
}

func TestFromANSI_StTerminatedLink(t *testing.T) {
	text := FromANSI("\x1b]8;;https://example.com\x1b\\link\x1b]8;;\x1b\\")
	assert.Equal(t, "link", text.Plain())
	require.Len(t, text.spans, 1)
	assert.Equal(t, "https://example.com", text.spans[0].style.Link())
}

func TestFromANSI_DropsOtherSequences(t *testing.T) {
	text := FromANSI("\x1b[2K\x1b[?25l\x1b]0;title\x07\x1b[1mA\x1b[mB")
	assert.Equal(t, "AB", text.Plain())
	assert.Equal(t, []spanOf{{0, 1, MustParseStyle("bold")}}, spansOf(text), "an empty SGR resets")
}

func TestFromANSI_LinesAndCarriageReturns(t *testing.T) {
	text := FromANSI("first\r\nloading\rdone\n")
	assert.Equal(t, "first\ndone", text.Plain())
}

func TestText_Wrap(t *testing.T) {
	text := NewText("The quick brown fox jumps over the lazy dog", Style{})
	var got []string
	for _, line := range text.Lines(20) {
		got = append(got, line.Plain())
	}
	assert.Equal(t, []string{"The quick brown fox", "jumps over the lazy", "dog"}, got)
}

func TestText_WrapFoldsLongWords(t *testing.T) {
	text := NewText("abcdefghij", Style{})
	var got []string
	for _, line := range text.Lines(4) {
		got = append(got, line.Plain())
	}
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, got)
}

func TestText_WrapKeepsHyphenatedWords(t *testing.T) {
	text := NewText("well-known fact", Style{})
	var got []string
	for _, line := range text.Lines(12) {
		got = append(got, line.Plain())
	}
	assert.Equal(t, []string{"well-known", "fact"}, got)
}

func TestText_WrapFoldsWideRunes(t *testing.T) {
	text := NewText("\u65e5\u672c\u8a9e", Style{})
	var got []string
	for _, line := range text.Lines(3) {
		got = append(got, line.Plain())
	}
	assert.Equal(t, []string{"\u65e5", "\u672c", "\u8a9e"}, got)
}

func TestText_WrapKeepsSpans(t *testing.T) {
	c := newTestConsole(t, 20, ColorTrueColor)
	text, err := c.ParseMarkup("aaa [bold]bbb[/] ccc", Style{})
	require.NoError(t, err)

	lines := text.Lines(4)
	require.Len(t, lines, 3)
	assert.Equal(t, "bbb", lines[1].Plain())
	assert.Equal(t, []spanOf{{0, 3, MustParseStyle("bold")}}, spansOf(lines[1]))
}

func TestText_Truncate(t *testing.T) {
	text := NewText("abcdefgh", Style{})
	assert.Equal(t, "abcd", text.truncate(4, false).Plain())
	assert.Equal(t, "abc\u2026", text.truncate(4, true).Plain())
	assert.Equal(t, "abcdefgh", text.truncate(10, true).Plain())
}

func TestText_Aligned(t *testing.T) {
	text := NewText("ab", Style{})
	assert.Equal(t, "ab   ", text.aligned(AlignLeft, 5).Plain())
	assert.Equal(t, " ab  ", text.aligned(AlignCenter, 5).Plain())
	assert.Equal(t, "   ab", text.aligned(AlignRight, 5).Plain())
}

func TestText_ExpandTabs(t *testing.T) {
	text := NewText("a\tb", Style{})
	text.Stylize(MustParseStyle("bold"), 2, 3)
	text.expandTabs(4)
	assert.Equal(t, "a   b", text.Plain())
	assert.Equal(t, []spanOf{{4, 5, MustParseStyle("bold")}}, spansOf(text))
}
