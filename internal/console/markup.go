package console

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/kyokomi/emoji/v2"
)

// MarkupError reports malformed markup.
type MarkupError struct {
	Markup  string
	Message string
}

func (e *MarkupError) Error() string {
	return fmt.Sprintf("markup %q: %s", e.Markup, e.Message)
}

var tagPattern = regexp.MustCompile(`(\\*)\[([a-zA-Z#/@][^\[\]]*?)\]`)

type openTag struct {
	name  string
	start int
	style Style
}

// ParseMarkup converts markup to Text. Tags are style definitions or theme
// names; [/name] closes the innermost matching tag and [/] the innermost
// tag of any name. A backslash before [ escapes the tag. Tags still open at
// the end apply to the rest of the text.
func (c *Console) ParseMarkup(markup string, base Style) (*Text, error) {
	t := NewText("", base)
	var stack []openTag
	var spans []span

	emit := func(s string) {
		t.plain += c.emojize(s)
	}
	closeTag := func(i int) {
		o := stack[i]
		stack = append(stack[:i], stack[i+1:]...)
		if o.start < len(t.plain) && !o.style.IsNull() {
			spans = append(spans, span{start: o.start, end: len(t.plain), style: o.style})
		}
	}

	pos := 0
	for _, m := range tagPattern.FindAllStringSubmatchIndex(markup, -1) {
		full0, full1 := m[0], m[1]
		slashes := m[3] - m[2]
		tag := markup[m[4]:m[5]]

		emit(markup[pos:full0])
		pos = full1
		t.plain += strings.Repeat(`\`, slashes/2)
		if slashes%2 == 1 {
			emit("[" + tag + "]")
			continue
		}

		if strings.HasPrefix(tag, "/") {
			name := strings.TrimSpace(tag[1:])
			if len(stack) == 0 {
				return nil, &MarkupError{Markup: markup, Message: fmt.Sprintf("closing tag '[%s]' has nothing to close", tag)}
			}
			if name == "" {
				closeTag(len(stack) - 1)
				continue
			}
			found := -1
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].name == name {
					found = i
					break
				}
			}
			if found < 0 {
				return nil, &MarkupError{Markup: markup, Message: fmt.Sprintf("closing tag '[%s]' doesn't match any open tag", tag)}
			}
			closeTag(found)
			continue
		}

		var style Style
		if url, ok := strings.CutPrefix(tag, "link="); ok {
			style = LinkStyle(strings.TrimSpace(url))
		} else if strings.HasPrefix(tag, "@") {
			// Event handlers have no meaning in recorded output.
			style = Style{}
		} else {
			style = c.Style(tag)
		}
		stack = append(stack, openTag{name: tag, start: len(t.plain), style: style})
	}
	emit(markup[pos:])

	for len(stack) > 0 {
		closeTag(len(stack) - 1)
	}

	// Spans were collected in closing order; apply them in opening order.
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	t.spans = spans
	return t, nil
}

var emojiPattern = regexp.MustCompile(`:(\S*?)(?:-(emoji|text))?:`)

var emojiCodes = sync.OnceValue(emoji.CodeMap)

// emojize replaces :name: codes when emoji are enabled. A -text or -emoji
// suffix appends the matching variation selector. Unknown codes are kept.
func (c *Console) emojize(s string) string {
	if !c.opts.Emoji || !strings.Contains(s, ":") {
		return s
	}
	codes := emojiCodes()
	return emojiPattern.ReplaceAllStringFunc(s, func(match string) string {
		sub := emojiPattern.FindStringSubmatch(match)
		glyph, ok := codes[":"+strings.ToLower(sub[1])+":"]
		if !ok {
			return match
		}
		switch sub[2] {
		case "text":
			glyph += "\ufe0e"
		case "emoji":
			glyph += "\ufe0f"
		}
		return glyph
	})
}

// Emoji returns the glyph for a code such as "city_sunset".
func Emoji(name string) (string, bool) {
	g, ok := emojiCodes()[":"+name+":"]
	return g, ok
}
