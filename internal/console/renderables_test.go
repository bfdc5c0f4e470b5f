package console

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c *Console, v any, width int) []string {
	t.Helper()
	lines, err := c.Lines(v, width)
	require.NoError(t, err)
	return lines
}

func TestRule_Plain(t *testing.T) {
	c := newTestConsole(t, 20, ColorNone)
	assert.Equal(t, []string{strings.Repeat("\u2500", 20)}, render(t, c, NewRule(""), 20))
}

func TestRule_Title(t *testing.T) {
	c := newTestConsole(t, 20, ColorNone)

	tests := []struct {
		name     string
		align    Align
		expected string
	}{
		{"center", AlignCenter, "\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500 Hi \u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500"},
		{"left", AlignLeft, "Hi " + strings.Repeat("\u2500", 17)},
		{"right", AlignRight, strings.Repeat("\u2500", 17) + " Hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewRule("Hi")
			rule.Align = tt.align
			assert.Equal(t, []string{tt.expected}, render(t, c, rule, 20))
		})
	}
}

func TestRule_TruncatesTitle(t *testing.T) {
	c := newTestConsole(t, 8, ColorNone)
	assert.Equal(t, []string{"\u2500 Hel\u2026 \u2500"}, render(t, c, NewRule("Hello World"), 8))
}

func TestRule_CustomCharacters(t *testing.T) {
	c := newTestConsole(t, 5, ColorNone)
	rule := NewRule("")
	rule.Characters = "=-"
	assert.Equal(t, []string{"=-=-="}, render(t, c, rule, 5))
}

func TestPanel_SafeBox(t *testing.T) {
	c := newTestConsole(t, 12, ColorNone)
	assert.Equal(t, []string{
		"\u250c\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2510",
		"\u2502 Hi       \u2502",
		"\u2514\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2518",
	}, render(t, c, NewPanel("Hi"), 12))
}

func TestPanel_SafeBoxKeepsSafeSets(t *testing.T) {
	c := newTestConsole(t, 6, ColorNone)

	tests := []struct {
		box      string
		expected []string
	}{
		{BoxHeavy, []string{"\u250c\u2500\u2500\u2500\u2500\u2510", "\u2502 Hi \u2502", "\u2514\u2500\u2500\u2500\u2500\u2518"}},
		{BoxDouble, []string{"\u2554\u2550\u2550\u2550\u2550\u2557", "\u2551 Hi \u2551", "\u255a\u2550\u2550\u2550\u2550\u255d"}},
		{BoxASCII, []string{"+----+", "| Hi |", "+----+"}},
	}
	for _, tt := range tests {
		t.Run(tt.box, func(t *testing.T) {
			panel := NewPanel("Hi")
			panel.Box = tt.box
			assert.Equal(t, tt.expected, render(t, c, panel, 6))
		})
	}
}

func TestPanel_Title(t *testing.T) {
	c := newTestConsole(t, 12, ColorNone)
	panel := NewPanel("Hi")
	panel.Title = "T"

	lines := render(t, c, panel, 12)
	require.Len(t, lines, 3)
	assert.Equal(t, "\u250c\u2500\u2500\u2500 T \u2500\u2500\u2500\u2500\u2510", lines[0])
}

func TestPanel_Fit(t *testing.T) {
	c := newTestConsole(t, 40, ColorNone)
	panel := NewPanel("Hi")
	panel.Expand = false
	assert.Equal(t, []string{"\u250c\u2500\u2500\u2500\u2500\u2510", "\u2502 Hi \u2502", "\u2514\u2500\u2500\u2500\u2500\u2518"}, render(t, c, panel, 40))
	assert.Equal(t, Measurement{Minimum: 6, Maximum: 6}, c.Measure(panel))
}

func TestPanel_RoundedBox(t *testing.T) {
	c := New(Options{Width: 6, Markup: true})
	lines := render(t, c, NewPanel("Hi"), 6)
	assert.Equal(t, []string{"\u256d\u2500\u2500\u2500\u2500\u256e", "\u2502 Hi \u2502", "\u2570\u2500\u2500\u2500\u2500\u256f"}, lines)
}

func TestBox_Names(t *testing.T) {
	c := New(Options{})
	assert.Equal(t, lipgloss.ThickBorder(), c.box(BoxHeavy))
	assert.Equal(t, lipgloss.RoundedBorder(), c.box("NO_SUCH_BOX"))
	assert.Contains(t, BoxNames(), BoxRounded)

	safe := New(Options{SafeBox: true})
	assert.Equal(t, lipgloss.NormalBorder(), safe.box(BoxRounded))
	assert.Equal(t, lipgloss.NormalBorder(), safe.box(BoxHeavy))
	assert.Equal(t, lipgloss.DoubleBorder(), safe.box(BoxDouble))
	assert.Equal(t, lipgloss.ASCIIBorder(), safe.box(BoxASCII))
	assert.Equal(t, minimalBorder, safe.box(BoxMinimal))
}

func numbersTable() *Table {
	tbl := NewTable(Column{Header: "A"}, Column{Header: "B"})
	tbl.AddRow("1", "2")
	tbl.AddRow("3", "4")
	return tbl
}

func TestTable_Headers(t *testing.T) {
	c := newTestConsole(t, 40, ColorNone)
	assert.Equal(t, []string{
		"\u250c\u2500\u2500\u2500\u252c\u2500\u2500\u2500\u2510",
		"\u2502 A \u2502 B \u2502",
		"\u251c\u2500\u2500\u2500\u253c\u2500\u2500\u2500\u2524",
		"\u2502 1 \u2502 2 \u2502",
		"\u2502 3 \u2502 4 \u2502",
		"\u2514\u2500\u2500\u2500\u2534\u2500\u2500\u2500\u2518",
	}, render(t, c, numbersTable(), 40))
}

func TestTable_NoHeader(t *testing.T) {
	c := newTestConsole(t, 40, ColorNone)
	tbl := numbersTable()
	tbl.ShowHeader = false
	assert.Equal(t, []string{
		"\u250c\u2500\u2500\u2500\u252c\u2500\u2500\u2500\u2510",
		"\u2502 1 \u2502 2 \u2502",
		"\u2502 3 \u2502 4 \u2502",
		"\u2514\u2500\u2500\u2500\u2534\u2500\u2500\u2500\u2518",
	}, render(t, c, tbl, 40))
}

func TestTable_NoHeaderClosesBorder(t *testing.T) {
	c := newTestConsole(t, 40, ColorNone)
	tbl := NewTable(Column{Header: "Key"}, Column{Header: "Value", Justify: AlignRight})
	tbl.ShowHeader = false
	tbl.Box = BoxASCII
	tbl.AddRow("alpha", "one")
	tbl.AddRow("beta", "two")
	tbl.Caption = "Settings"

	lines := render(t, c, tbl, 40)
	require.Len(t, lines, 5)
	assert.Equal(t, "+-------+-----+", lines[0])
	assert.Equal(t, "+-------+-----+", lines[3], "the last table line is a bottom border")
	assert.Equal(t, "Settings", strings.TrimSpace(lines[4]))
}

func TestCloseTable(t *testing.T) {
	b := lipgloss.ASCIIBorder()
	closed := []string{"+--+", "|ab|", "+--+"}
	assert.Equal(t, closed, closeTable(closed, b))
	assert.Equal(t, closed, closeTable([]string{"+--+", "|ab|"}, b))
	assert.Equal(t, []string{"x"}, closeTable([]string{"x"}, b))
}

func TestTable_Title(t *testing.T) {
	c := newTestConsole(t, 40, ColorNone)
	tbl := numbersTable()
	tbl.Title = "Nums"

	lines := render(t, c, tbl, 40)
	require.Len(t, lines, 7)
	assert.Equal(t, "  Nums   ", lines[0])
}

func TestTree_Nested(t *testing.T) {
	c := newTestConsole(t, 40, ColorNone)
	root := NewTree("Root")
	root.Add("Child 1")
	root.Add("Child 2").Add("Leaf")

	assert.Equal(t, []string{
		"Root",
		"\u251c\u2500\u2500 Child 1",
		"\u2514\u2500\u2500 Child 2",
		"    \u2514\u2500\u2500 Leaf",
	}, render(t, c, root, 40))
}

func TestProgressBar_Monochrome(t *testing.T) {
	c := newTestConsole(t, 40, ColorNone)

	tests := []struct {
		name      string
		completed int
		expected  string
	}{
		{"empty", 0, ""},
		{"half", 50, "\u2501\u2501\u2501\u2501\u2501"},
		{"half step", 25, "\u2501\u2501\u2578"},
		{"complete", 100, "\u2501\u2501\u2501\u2501\u2501\u2501\u2501\u2501\u2501\u2501"},
		{"overflow", 150, "\u2501\u2501\u2501\u2501\u2501\u2501\u2501\u2501\u2501\u2501"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := &ProgressBar{Total: 100, Completed: tt.completed, Width: 10}
			assert.Equal(t, []string{tt.expected}, render(t, c, bar, 40))
		})
	}
}

func TestProgressBar_ColorDrawsRemainder(t *testing.T) {
	c := newTestConsole(t, 40, ColorTrueColor)
	bar := &ProgressBar{Total: 100, Completed: 50, Width: 10}

	lines := render(t, c, bar, 40)
	require.Len(t, lines, 1)
	assert.Equal(t, "\u2501\u2501\u2501\u2501\u2501\u257a\u2501\u2501\u2501\u2501", ansi.Strip(lines[0]))
	assert.False(t, bar.Finished())
}

func TestProgressBar_Measure(t *testing.T) {
	c := newTestConsole(t, 40, ColorNone)
	assert.Equal(t, Measurement{Minimum: 10, Maximum: 10}, c.Measure(&ProgressBar{Total: 100, Width: 10}))
	assert.Equal(t, Measurement{Minimum: 4, Maximum: 40}, c.Measure(&ProgressBar{Total: 100}))
}

func TestColumns_FitsOneRow(t *testing.T) {
	c := newTestConsole(t, 20, ColorNone)
	assert.Equal(t, []string{"one two three"}, render(t, c, NewColumns("one", "two", "three"), 20))
}

func TestColumns_Wraps(t *testing.T) {
	c := newTestConsole(t, 10, ColorNone)
	assert.Equal(t, []string{"one   two", "three"}, render(t, c, NewColumns("one", "two", "three"), 10))
}

func TestPadding(t *testing.T) {
	c := newTestConsole(t, 8, ColorNone)
	assert.Equal(t, []string{
		"        ",
		"  hi    ",
		"        ",
	}, render(t, c, NewPadding("hi", 1, 2), 8))
}

func TestNewPadding_Expansion(t *testing.T) {
	p := NewPadding("x", 1, 2, 3, 4)
	assert.Equal(t, [4]int{1, 2, 3, 4}, [4]int{p.Top, p.Right, p.Bottom, p.Left})
	p = NewPadding("x", 5)
	assert.Equal(t, [4]int{5, 5, 5, 5}, [4]int{p.Top, p.Right, p.Bottom, p.Left})
	p = NewPadding("x")
	assert.Equal(t, [4]int{0, 0, 0, 0}, [4]int{p.Top, p.Right, p.Bottom, p.Left})
}

func TestAligned(t *testing.T) {
	c := newTestConsole(t, 6, ColorNone)
	assert.Equal(t, []string{"    hi"}, render(t, c, &Aligned{Body: "hi", Align: AlignRight}, 6))
	assert.Equal(t, []string{"  hi  "}, render(t, c, &Aligned{Body: "hi", Align: AlignCenter}, 6))
	assert.Equal(t, []string{"hi    "}, render(t, c, &Aligned{Body: "hi", Align: AlignLeft}, 6))
}

func TestConstrain(t *testing.T) {
	c := newTestConsole(t, 20, ColorNone)
	assert.Equal(t, []string{"\u2500\u2500\u2500\u2500\u2500"}, render(t, c, &Constrain{Child: NewRule(""), Width: 5}, 20))
	assert.Equal(t, []string{strings.Repeat("\u2500", 20)}, render(t, c, &Constrain{Child: NewRule("")}, 20))
}

func jsonPlain(t *testing.T, c *Console, j *JSON) string {
	t.Helper()
	text, err := j.Text(c)
	require.NoError(t, err)
	return text.Plain()
}

func TestJSON_Compact(t *testing.T) {
	c := newTestConsole(t, 80, ColorNone)
	j := &JSON{Source: `{"name": "Alice", "age": 30}`, SortKeys: true}
	assert.Equal(t, `{"age": 30, "name": "Alice"}`, jsonPlain(t, c, j))
}

func TestJSON_Indented(t *testing.T) {
	c := newTestConsole(t, 80, ColorNone)
	j := NewJSON(`{"a": [1, 2.50], "b": {}, "c": [], "d": null, "e": true}`)
	assert.Equal(t, "{\n  \"a\": [\n    1,\n    2.5\n  ],\n  \"b\": {},\n  \"c\": [],\n  \"d\": null,\n  \"e\": true\n}", jsonPlain(t, c, j))
}

func TestJSON_EnsureASCII(t *testing.T) {
	c := newTestConsole(t, 80, ColorNone)
	j := &JSON{Source: "\"h\u00e9llo \U0001f600\"", EnsureASCII: true}
	assert.Equal(t, `"h\u00e9llo \ud83d\ude00"`, jsonPlain(t, c, j))

	j.EnsureASCII = false
	assert.Equal(t, "\"h\u00e9llo \U0001f600\"", jsonPlain(t, c, j))
}

func TestJSON_RepeatedKeys(t *testing.T) {
	c := newTestConsole(t, 80, ColorNone)
	j := &JSON{Source: `{"a": 1, "b": 2, "a": 3}`}
	assert.Equal(t, `{"a": 3, "b": 2}`, jsonPlain(t, c, j))
}

func TestJSON_Invalid(t *testing.T) {
	c := newTestConsole(t, 80, ColorNone)
	_, err := (&JSON{Source: `{"a": `}).Text(c)
	assert.Error(t, err)
	_, err = (&JSON{Source: `1 2`}).Text(c)
	assert.Error(t, err)
}

func TestJSON_Highlight(t *testing.T) {
	c := newTestConsole(t, 80, ColorTrueColor)
	j := &JSON{Source: `{"k": 1}`, Highlight: true}
	text, err := j.Text(c)
	require.NoError(t, err)
	assert.Contains(t, spansOf(text), spanOf{5, 6, c.Style("json.number")})

	j.Highlight = false
	text, err = j.Text(c)
	require.NoError(t, err)
	assert.Empty(t, text.spans)
}

func TestFormatJSONNumber(t *testing.T) {
	tests := map[string]string{
		"42":      "42",
		"-7":      "-7",
		"1.0":     "1.0",
		"2.50":    "2.5",
		"1E3":     "1000.0",
		"1e20":    "1e+20",
		"0.0001":  "0.0001",
		"0.00001": "1e-05",
	}
	for in, expected := range tests {
		assert.Equal(t, expected, formatJSONNumber(json.Number(in)), in)
	}
}

func TestSyntax_Monochrome(t *testing.T) {
	c := newTestConsole(t, 10, ColorNone)
	assert.Equal(t, []string{"x = 1     "}, render(t, c, NewSyntax("x = 1", "python"), 10))
}

func TestSyntax_Padding(t *testing.T) {
	c := newTestConsole(t, 10, ColorNone)
	syntax := NewSyntax("fn main() {}", "rust")
	syntax.Padding = 1
	syntax.WordWrap = true

	assert.Equal(t, []string{
		strings.Repeat(" ", 10),
		" fn       ",
		" main()   ",
		" {}       ",
		strings.Repeat(" ", 10),
	}, render(t, c, syntax, 10))
}

func TestSyntax_ThemeBackground(t *testing.T) {
	c := newTestConsole(t, 20, ColorTrueColor)
	lines := render(t, c, NewSyntax("let x = 1;", "rust"), 20)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "48;2;39;40;34")
	assert.Equal(t, "let x = 1;          ", ansi.Strip(lines[0]))
}

func TestSyntax_ExpandsTabs(t *testing.T) {
	c := newTestConsole(t, 12, ColorNone)
	syntax := NewSyntax("\tx", "text")
	syntax.TabSize = 2
	assert.Equal(t, []string{"  x         "}, render(t, c, syntax, 12))
}

func TestMarkdown_Heading(t *testing.T) {
	c := newTestConsole(t, 20, ColorNone)
	assert.Equal(t, []string{
		"\u250c\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2510",
		"\u2502      Title       \u2502",
		"\u2514\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2500\u2518",
	}, render(t, c, NewMarkdown("# Title"), 20))
}

func TestMarkdown_SubHeading(t *testing.T) {
	c := newTestConsole(t, 10, ColorNone)
	assert.Equal(t, []string{"", "   Sub    "}, render(t, c, NewMarkdown("## Sub"), 10))
}

func TestMarkdown_ParagraphAndList(t *testing.T) {
	c := newTestConsole(t, 20, ColorNone)
	lines := render(t, c, NewMarkdown("Hello *world*\n\n- a\n- b"), 20)
	assert.Equal(t, []string{
		"Hello world",
		"",
		" \u2022 a" + strings.Repeat(" ", 16),
		" \u2022 b" + strings.Repeat(" ", 16),
	}, lines)
}

func TestMarkdown_OrderedList(t *testing.T) {
	c := newTestConsole(t, 10, ColorNone)
	lines := render(t, c, NewMarkdown("1. one\n2. two"), 10)
	assert.Equal(t, []string{" 1 one    ", " 2 two    "}, lines)
}

func TestMarkdown_LinkWithoutHyperlinks(t *testing.T) {
	c := newTestConsole(t, 40, ColorNone)
	md := NewMarkdown("see [docs](https://example.com)")
	md.Hyperlinks = false
	assert.Equal(t, []string{"see docs (https://example.com)"}, render(t, c, md, 40))
}

func TestMarkdown_Hyperlink(t *testing.T) {
	c := newTestConsole(t, 40, ColorTrueColor)
	lines := render(t, c, NewMarkdown("[docs](https://example.com)"), 40)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "\x1b]8;id=abc;https://example.com\a")
	assert.Equal(t, "docs", ansi.Strip(lines[0]))
}

func TestMarkdown_ThematicBreak(t *testing.T) {
	c := newTestConsole(t, 10, ColorNone)
	assert.Equal(t, []string{strings.Repeat("\u2500", 10)}, render(t, c, NewMarkdown("***"), 10))
}

func TestMarkdown_Blockquote(t *testing.T) {
	c := newTestConsole(t, 10, ColorNone)
	assert.Equal(t, []string{"\u258c quote "}, render(t, c, NewMarkdown("> quote"), 10))
}

func TestTraceback(t *testing.T) {
	c := newTestConsole(t, 40, ColorNone)
	tb := &Traceback{
		Frames: []Frame{
			{Filename: "<traceback_fixture>", Line: 1, Name: "main"},
			{Filename: "<traceback_fixture>", Line: 2, Name: "helper"},
		},
		ExcType:  "Error",
		ExcValue: "boom",
	}

	lines := render(t, c, tb, 40)
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], " Traceback (most recent call last) ")
	assert.True(t, strings.HasPrefix(lines[1], "\u2502 <traceback_fixture>:1 in main"))
	assert.True(t, strings.HasPrefix(lines[2], "\u2502 <traceback_fixture>:2 in helper"))
	assert.Equal(t, "Error: boom", lines[4])
	for _, line := range lines[:4] {
		assert.Equal(t, 40, lipgloss.Width(line))
	}
}

func TestTraceback_SourceFramesAreSeparated(t *testing.T) {
	c := newTestConsole(t, 40, ColorNone)
	tb := &Traceback{
		Frames: []Frame{
			{Filename: "main.go", Line: 3, Name: "main"},
			{Filename: "util.go", Line: 9, Name: "run"},
		},
		ExcType:  "Error",
		ExcValue: "boom",
	}
	lines := render(t, c, tb, 40)
	require.Len(t, lines, 6)
	assert.Equal(t, "\u2502"+strings.Repeat(" ", 38)+"\u2502", lines[2])
}
