package harness

import (
	"regexp"
	"strings"
)

// linkID matches the id parameter of an OSC 8 hyperlink opener.
var linkID = regexp.MustCompile(`\x1b\]8;id=[^;]*;`)

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Normalize canonicalizes line endings and strips OSC 8 hyperlink ids.
func Normalize(text string) string {
	text = lineEndings.Replace(text)
	return linkID.ReplaceAllLiteralString(text, "\x1b]8;;")
}
