package console

import (
	"fmt"
	"sort"
)

// Theme maps style names to styles.
type Theme struct {
	styles map[string]Style
}

var defaultStyles = map[string]string{
	"none":      "none",
	"bold":      "bold",
	"dim":       "dim",
	"italic":    "italic",
	"underline": "underline",
	"blink":     "blink",
	"reverse":   "reverse",
	"strike":    "strike",
	"strong":    "bold",
	"emphasize": "italic",
	"code":      "reverse bold",

	"repr.brace":          "bold",
	"repr.call":           "bold magenta",
	"repr.bool_true":      "italic bright_green",
	"repr.bool_false":     "italic bright_red",
	"repr.none":           "italic magenta",
	"repr.ellipsis":       "yellow",
	"repr.number":         "bold not italic cyan",
	"repr.number_complex": "bold not italic cyan",
	"repr.str":            "not bold not italic green",
	"repr.url":            "underline not italic not bold bright_blue",
	"repr.attrib_name":    "not italic yellow",
	"repr.attrib_equal":   "bold",
	"repr.attrib_value":   "not italic magenta",
	"repr.ipv4":           "bold bright_green",
	"repr.uuid":           "not bold bright_yellow",
	"repr.path":           "magenta",
	"repr.filename":       "bright_magenta",

	"rule.line": "bright_green",
	"rule.text": "none",

	"panel.border":   "none",
	"panel.title":    "none",
	"panel.subtitle": "none",

	"table.header":  "bold",
	"table.footer":  "bold",
	"table.cell":    "none",
	"table.border":  "none",
	"table.title":   "italic",
	"table.caption": "italic dim",

	"tree":      "none",
	"tree.line": "none",

	"bar.back":     "color(237)",
	"bar.complete": "rgb(249,38,114)",
	"bar.finished": "rgb(114,156,31)",

	"json.brace":      "bold",
	"json.key":        "bold blue",
	"json.str":        "green not italic not bold",
	"json.number":     "bold not italic cyan",
	"json.bool_true":  "bright_green italic",
	"json.bool_false": "bright_red italic",
	"json.null":       "magenta italic",

	"markdown.paragraph":   "none",
	"markdown.text":        "none",
	"markdown.em":          "italic",
	"markdown.strong":      "bold",
	"markdown.code":        "bold cyan on black",
	"markdown.code_block":  "cyan on black",
	"markdown.block_quote": "magenta",
	"markdown.list":        "cyan",
	"markdown.item.bullet": "bold yellow",
	"markdown.item.number": "yellow",
	"markdown.hr":          "yellow",
	"markdown.h1.border":   "none",
	"markdown.h1":          "bold",
	"markdown.h2":          "bold underline",
	"markdown.h3":          "bold",
	"markdown.h4":          "bold dim",
	"markdown.h5":          "underline",
	"markdown.h6":          "italic",
	"markdown.link":        "bright_blue",
	"markdown.link_url":    "underline blue",

	"traceback.border":    "red",
	"traceback.title":     "bold red",
	"traceback.text":      "none",
	"traceback.filename":  "green",
	"traceback.lineno":    "bold cyan",
	"traceback.function":  "bright_green",
	"traceback.exc_type":  "bold red",
	"traceback.exc_value": "none",
}

var builtinTheme = func() *Theme {
	styles, err := parseStyles(defaultStyles)
	if err != nil {
		panic(err)
	}
	return &Theme{styles: styles}
}()

// DefaultTheme returns the built-in styles.
func DefaultTheme() *Theme {
	return builtinTheme
}

// NewTheme parses style definitions. With inherit the definitions are
// layered over the built-in styles; without it they are the only styles.
func NewTheme(defs map[string]string, inherit bool) (*Theme, error) {
	parsed, err := parseStyles(defs)
	if err != nil {
		return nil, err
	}
	if !inherit {
		return &Theme{styles: parsed}, nil
	}
	t := &Theme{styles: make(map[string]Style, len(builtinTheme.styles)+len(parsed))}
	for name, s := range builtinTheme.styles {
		t.styles[name] = s
	}
	for name, s := range parsed {
		t.styles[name] = s
	}
	return t, nil
}

func parseStyles(defs map[string]string) (map[string]Style, error) {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]Style, len(defs))
	for _, name := range names {
		s, err := ParseStyle(defs[name])
		if err != nil {
			return nil, fmt.Errorf("theme style %q: %w", name, err)
		}
		out[name] = s
	}
	return out, nil
}

// Lookup returns the named style.
func (t *Theme) Lookup(name string) (Style, bool) {
	s, ok := t.styles[name]
	return s, ok
}
