package render

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// className matches one or more plain CSS class names.
var className = regexp.MustCompile(`^[a-zA-Z0-9_ -]+$`)

// newPolicy returns the user-content policy extended with the classes the
// highlighter emits and the heading ids goldmark generates.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("span", "pre", "code")
	p.AllowAttrs("class").Matching(className).OnElements("span", "pre", "code")
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	return p
}
