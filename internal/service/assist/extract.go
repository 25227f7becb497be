package assist

import (
	"regexp"
	"strings"
)

// fencedCode matches the first fenced block, with an optional language tag line
var fencedCode = regexp.MustCompile("```(?:\\w+\\n)?([\\s\\S]+?)```")

// ExtractCode returns the body of the first fenced code block in text,
// trimmed. ok is false when text has no fenced block.
func ExtractCode(text string) (code string, ok bool) {
	m := fencedCode.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
