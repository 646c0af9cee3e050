package highlight

import (
	"regexp"
	"strings"
)

// LineMark classifies a source line for diff-style highlighting.
type LineMark int

const (
	MarkNone LineMark = iota
	MarkAdd
	MarkRemove
)

// Class returns the CSS class for the mark: "hll" for added lines, "dll" for
// removed ones, "" otherwise.
func (m LineMark) Class() string {
	switch m {
	case MarkAdd:
		return "hll"
	case MarkRemove:
		return "dll"
	}
	return ""
}

// [tl! add], // [tl! remove:start], ...
var annotationPattern = regexp.MustCompile(`(//\s*)?\[tl!\s*(add|remove)(?::(start|end))?\]`)

// Annotate strips annotation tags from source and returns the cleaned source
// with one mark per line. A line with a single tag is marked alone. A
// ":start" tag opens a range that marks following lines until the matching
// ":end", whose own line is marked only if the range was open.
func Annotate(source string) (string, []LineMark) {
	if !strings.Contains(source, "[tl!") {
		return source, make([]LineMark, strings.Count(source, "\n")+1)
	}

	lines := strings.SplitAfter(source, "\n")
	marks := make([]LineMark, len(lines))
	var inAdd, inRemove bool

	for i, line := range lines {
		m := annotationPattern.FindStringSubmatch(line)
		if m == nil {
			switch {
			case inAdd:
				marks[i] = MarkAdd
			case inRemove:
				marks[i] = MarkRemove
			}
			continue
		}

		mark, open := MarkAdd, &inAdd
		if m[2] == "remove" {
			mark, open = MarkRemove, &inRemove
		}

		switch m[3] {
		case "":
			marks[i] = mark
		case "start":
			*open = true
			marks[i] = mark
		case "end":
			if *open {
				marks[i] = mark
			}
			*open = false
		}

		lines[i] = strings.Replace(line, m[0], "", -1)
	}

	return strings.Join(lines, ""), marks
}
