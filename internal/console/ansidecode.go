package console

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

var sgrAttrs = map[int]string{
	1:  "bold",
	2:  "dim",
	3:  "italic",
	4:  "underline",
	5:  "blink",
	6:  "blink",
	7:  "reverse",
	9:  "strike",
	21: "underline",
	22: "not dim not bold",
	23: "not italic",
	24: "not underline",
	25: "not blink",
	27: "not reverse",
	29: "not strike",
}

// FromANSI decodes text containing SGR and OSC 8 sequences into styled
// Text. Other escape sequences are dropped. Within a line only the text
// after the last carriage return is kept. Style carries across lines.
func FromANSI(s string) *Text {
	t := NewText("", Style{})
	var style Style
	p := ansi.NewParser()
	lines := strings.Split(strings.TrimSuffix(strings.ReplaceAll(s, "\r\n", "\n"), "\n"), "\n")
	for i, line := range lines {
		if i > 0 {
			t.plain += "\n"
		}
		if j := strings.LastIndexByte(line, '\r'); j >= 0 {
			line = line[j+1:]
		}

		var run strings.Builder
		var state byte
		for len(line) > 0 {
			seq, _, n, next := ansi.DecodeSequence(line, state, p)
			state, line = next, line[n:]
			if !ansi.HasEscPrefix(seq) {
				run.WriteString(seq)
				continue
			}

			t.Append(run.String(), style)
			run.Reset()
			switch {
			case ansi.HasOscPrefix(seq) && p.Command() == 8:
				style = applyHyperlink(style, string(p.Data()))
			case ansi.HasCsiPrefix(seq) && isSGR(ansi.Cmd(p.Command())):
				style = applySGR(style, p.Params())
			}
		}
		t.Append(run.String(), style)
	}
	return t
}

func isSGR(cmd ansi.Cmd) bool {
	return cmd.Final() == 'm' && cmd.Prefix() == 0 && cmd.Intermediate() == 0
}

// applyHyperlink opens or closes a link from OSC 8 data
// ("8;params;url"). An empty url closes the current link.
func applyHyperlink(style Style, data string) Style {
	_, rest, ok := strings.Cut(data, ";")
	if !ok {
		return style
	}
	_, link, ok := strings.Cut(rest, ";")
	if !ok {
		return style
	}
	style = style.WithoutLink()
	if link != "" {
		style = style.Combine(LinkStyle(link))
	}
	return style
}

// applySGR folds the parameters of one SGR sequence into style. Colon
// sub-parameters are read like semicolon ones.
func applySGR(style Style, params ansi.Params) Style {
	if len(params) == 0 {
		return Style{}
	}

	codes := make([]int, len(params))
	for i, p := range params {
		codes[i] = min(p.Param(0), 255)
	}

	next := func(i *int) (int, bool) {
		*i++
		if *i >= len(codes) {
			return 0, false
		}
		return codes[*i], true
	}

	for i := 0; i < len(codes); i++ {
		code := codes[i]
		switch {
		case code == 0:
			style = Style{}
		case sgrAttrs[code] != "":
			style = style.Combine(MustParseStyle(sgrAttrs[code]))
		case code >= 30 && code <= 37:
			style.fg = Palette(uint8(code - 30))
		case code >= 90 && code <= 97:
			style.fg = Palette(uint8(code - 90 + 8))
		case code == 39:
			style.fg = Color{kind: colorDefault}
		case code >= 40 && code <= 47:
			style.bg = Palette(uint8(code - 40))
		case code >= 100 && code <= 107:
			style.bg = Palette(uint8(code - 100 + 8))
		case code == 49:
			style.bg = Color{kind: colorDefault}
		case code == 38 || code == 48:
			mode, ok := next(&i)
			if !ok {
				return style
			}
			var c Color
			switch mode {
			case 5:
				n, ok := next(&i)
				if !ok {
					return style
				}
				c = Palette(uint8(n))
			case 2:
				r, ok1 := next(&i)
				g, ok2 := next(&i)
				b, ok3 := next(&i)
				if !ok1 || !ok2 || !ok3 {
					return style
				}
				c = RGB(uint8(r), uint8(g), uint8(b))
			default:
				continue
			}
			if code == 38 {
				style.fg = c
			} else {
				style.bg = c
			}
		}
	}
	return style
}
