package queryengine

import (
	"regexp"
	"strings"
)

// codeBlockRe matches the first <code>...</code> pair, non-greedy,
// spanning newlines.
var codeBlockRe = regexp.MustCompile(`(?s)<code>(.*?)</code>`)

const closeTag = "</code>"

// ExtractCode returns the content of the first delimited code block,
// trimmed of surrounding whitespace. ok is false when the response
// carries no complete delimiter pair; that is an expected outcome for
// malformed generations, not an error.
func ExtractCode(response string) (code string, ok bool) {
	m := codeBlockRe.FindStringSubmatch(response)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// ExtractExplanation returns the trimmed text after the last closing
// delimiter, or "" when no delimiter is present or nothing follows it.
func ExtractExplanation(response string) string {
	idx := strings.LastIndex(response, closeTag)
	if idx == -1 {
		return ""
	}
	return strings.TrimSpace(response[idx+len(closeTag):])
}
