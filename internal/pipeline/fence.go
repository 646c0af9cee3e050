package pipeline

import "regexp"

// fencePattern matches a ``` fence opened with tag, up to the first closing
// ```. Group 1 is everything between the tag and the closing fence.
func fencePattern(tag string) *regexp.Regexp {
	return regexp.MustCompile("(?s)```" + regexp.QuoteMeta(tag) + "(.*?)```")
}

// isTagChar reports whether b can continue a fence language tag, so that
// ```php does not claim ```php-line or ```phpx blocks.
func isTagChar(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '-', b == '_', b == '+', b == '.':
		return true
	}
	return false
}

// rewriteFences calls fn with the body of every block fenced with exactly tag.
// fn returns the full replacement for the block, or ok=false to keep it.
func rewriteFences(re *regexp.Regexp, content string, fn func(body string) (string, bool)) string {
	return re.ReplaceAllStringFunc(content, func(block string) string {
		body := re.FindStringSubmatch(block)[1]
		if body != "" && isTagChar(body[0]) {
			return block
		}
		if out, ok := fn(body); ok {
			return out
		}
		return block
	})
}
