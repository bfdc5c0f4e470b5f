package console

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// reprRule is one alternative of the repr highlighter. Named groups select
// the styled ranges; each group name is a "repr." theme style.
type reprRule struct {
	re *regexp.Regexp
	// afterWord allows the match to follow a word character.
	afterWord bool
	// afterBackslash allows the match to follow a backslash.
	afterBackslash bool
}

// Patterns that apply independently to the whole string.
var reprPasses = []*regexp.Regexp{
	regexp.MustCompile(`(?P<brace>[][{}()])`),
	regexp.MustCompile(`(?P<attrib_name>\w{1,50})(?P<attrib_equal>=)(?P<attrib_value>"?\w+"?)?`),
}

// Alternatives tried in order at each position; the first match wins and
// scanning resumes after it.
var reprRules = []reprRule{
	{re: regexp.MustCompile(`\A(?P<ipv4>[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3})\b`)},
	{re: regexp.MustCompile(`\A(?P<uuid>[a-fA-F0-9]{8}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{12})`)},
	{re: regexp.MustCompile(`\A(?P<call>[\w.]*?)\(`), afterWord: true, afterBackslash: true},
	{re: regexp.MustCompile(`\A(?:(?P<bool_true>True)|(?P<bool_false>False)|(?P<none>None))\b`), afterBackslash: true},
	{re: regexp.MustCompile(`\A(?P<ellipsis>\.\.\.)`), afterWord: true, afterBackslash: true},
	{re: regexp.MustCompile(`\A(?P<number_complex>\(?-?\d+\.?\d*(?:e[-+]?\d+?)?(?:[-+]\d+\.?\d*(?:e[-+]?\d+)?)?j)`), afterBackslash: true},
	{re: regexp.MustCompile(`\A(?P<number>-?\d+\.?\d*(?:e[-+]?\d+?)?\b|0x[0-9a-fA-F]*)`), afterBackslash: true},
	{re: regexp.MustCompile(`\A(?P<path>(?:/[-\w._+]+)*/)(?P<filename>[-\w._+]*)`), afterBackslash: true},
	{re: regexp.MustCompile(`\A(?P<str>b?'''(?:[^\\]|\\.)*?'''|b?'(?:[^'\\\n]|\\.)*'|b?"""(?:[^\\]|\\.)*?"""|b?"(?:[^"\\\n]|\\.)*")`)},
	{re: regexp.MustCompile("\\A(?P<url>(?:file|https|http|ws|wss)://[-0-9a-zA-Z$_+!`(),.?/;:&=%#~@]*)"), afterWord: true, afterBackslash: true},
}

// highlightRepr styles the literals of a printed string the way a Python
// repr highlighter would: numbers, booleans, None, strings, urls, braces.
func (c *Console) highlightRepr(t *Text) {
	s := t.plain
	for _, re := range reprPasses {
		for _, m := range re.FindAllStringSubmatchIndex(s, -1) {
			c.stylizeGroups(t, re, m, 0)
		}
	}

	for pos := 0; pos < len(s); {
		prev, _ := utf8.DecodeLastRuneInString(s[:pos])
		matched := false
		for _, rule := range reprRules {
			if pos > 0 && !rule.afterWord && isWordRune(prev) {
				continue
			}
			if pos > 0 && !rule.afterBackslash && prev == '\\' {
				continue
			}
			m := rule.re.FindStringSubmatchIndex(s[pos:])
			if m == nil || m[1] == 0 {
				continue
			}
			c.stylizeGroups(t, rule.re, m, pos)
			pos += m[1]
			matched = true
			break
		}
		if !matched {
			_, n := utf8.DecodeRuneInString(s[pos:])
			pos += n
		}
	}
}

func (c *Console) stylizeGroups(t *Text, re *regexp.Regexp, m []int, offset int) {
	for i, name := range re.SubexpNames() {
		if name == "" || m[2*i] < 0 || m[2*i] == m[2*i+1] {
			continue
		}
		t.Stylize(c.Style("repr."+name), offset+m[2*i], offset+m[2*i+1])
	}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
