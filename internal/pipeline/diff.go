package pipeline

import "strings"

// Inline markers the upstream manual uses to flag added and removed lines.
const (
	addMarker    = "<!-- [tl! add] -->"
	removeMarker = "<!-- [tl! remove] -->"
)

var htmlFence = fencePattern("html")

// ConvertDiffBlocks retags ```html blocks as ```diff when at least one line
// starts with + or - and carries an add/remove marker. Both markers are then
// removed from the whole block. Blocks that only mention a marker in prose
// stay byte-for-byte unchanged.
func ConvertDiffBlocks(content string) string {
	return rewriteFences(htmlFence, content, func(body string) (string, bool) {
		if !hasDiffLine(body) {
			return "", false
		}
		body = strings.ReplaceAll(body, removeMarker, "")
		body = strings.ReplaceAll(body, addMarker, "")
		return "```diff" + body + "```", true
	})
}

// hasDiffLine reports whether any line of body is an annotated +/- line.
func hasDiffLine(body string) bool {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "-") {
			continue
		}
		if strings.Contains(line, addMarker) || strings.Contains(line, removeMarker) {
			return true
		}
	}
	return false
}
