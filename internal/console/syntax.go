package console

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultCodeTheme is the chroma style used for source code.
const DefaultCodeTheme = "monokai"

// Syntax is highlighted source code drawn on the theme's background.
type Syntax struct {
	Code     string
	Language string
	// Theme names a chroma style.
	Theme    string
	WordWrap bool
	// Padding is blank space around the code, in cells and lines.
	Padding int
	TabSize int
}

// NewSyntax returns code highlighted with the default theme.
func NewSyntax(code, language string) *Syntax {
	return &Syntax{Code: code, Language: language, Theme: DefaultCodeTheme, TabSize: 4}
}

// Render highlights the code and pads every line to width with the
// background color.
func (s *Syntax) Render(c *Console, width int) ([]string, error) {
	text, background, err := s.highlight()
	if err != nil {
		return nil, err
	}
	codeWidth := max(width-2*s.Padding, 1)

	text.NoWrap = !s.WordWrap
	lines := text.Lines(codeWidth)

	side := NewText(strings.Repeat(" ", s.Padding), background).render(c)
	blank := NewText(strings.Repeat(" ", codeWidth+2*s.Padding), background).render(c)
	out := make([]string, 0, len(lines)+2*s.Padding)
	for range s.Padding {
		out = append(out, blank)
	}
	for _, line := range lines {
		out = append(out, side+line.aligned(AlignLeft, codeWidth).render(c)+side)
	}
	for range s.Padding {
		out = append(out, blank)
	}
	return out, nil
}

// highlight tokenises the code into styled text with the theme background
// as its base style.
func (s *Syntax) highlight() (*Text, Style, error) {
	theme := styles.Get(s.Theme)
	background := Style{bg: chromaColor(theme.Get(chroma.Background).Background)}

	lexer := lexers.Get(s.Language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	code := s.Code
	if !strings.HasSuffix(code, "\n") {
		code += "\n"
	}
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil, Style{}, err
	}

	text := NewText("", background)
	for _, tok := range it.Tokens() {
		text.Append(tok.Value, tokenStyle(theme.Get(tok.Type)))
	}
	text.plain = strings.TrimSuffix(text.plain, "\n")
	text = text.slice(0, len(text.plain))
	text.expandTabs(max(s.TabSize, 1))
	return text, background, nil
}

func tokenStyle(e chroma.StyleEntry) Style {
	var s Style
	if e.Colour.IsSet() {
		s.fg = chromaColor(e.Colour)
	}
	if e.Bold == chroma.Yes {
		s.set |= attrBold
		s.attrs |= attrBold
	}
	if e.Italic == chroma.Yes {
		s.set |= attrItalic
		s.attrs |= attrItalic
	}
	if e.Underline == chroma.Yes {
		s.set |= attrUnderline
		s.attrs |= attrUnderline
	}
	return s
}

func chromaColor(c chroma.Colour) Color {
	if !c.IsSet() {
		return Color{}
	}
	return RGB(c.Red(), c.Green(), c.Blue())
}
