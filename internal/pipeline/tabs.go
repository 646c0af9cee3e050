package pipeline

import (
	"regexp"
	"strings"
)

// ```shell tab=Linux
var tabFence = regexp.MustCompile("^\\s*```(\\w+)\\s+tab=(.*)")

// ExpandTabs replaces every "```lang tab=Title" fence opener with a bold
// title line, a blank line, and a plain "```lang" opener. Closing fences and
// all other lines pass through verbatim, line terminators included.
func ExpandTabs(content string) string {
	if !strings.Contains(content, "tab=") {
		return content
	}

	var b strings.Builder
	b.Grow(len(content) + 64)

	for len(content) > 0 {
		line := content
		if i := strings.IndexByte(content, '\n'); i >= 0 {
			line = content[:i+1]
		}
		content = content[len(line):]

		m := tabFence.FindStringSubmatch(strings.TrimSuffix(line, "\n"))
		if m == nil {
			b.WriteString(line)
			continue
		}

		b.WriteString("**" + strings.TrimSpace(m[2]) + "**\n\n")
		b.WriteString("```" + m[1] + "\n")
	}

	return b.String()
}
