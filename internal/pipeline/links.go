package pipeline

import "regexp"

var (
	// (/docs/{{version}}/page#anchor)
	docsLinkWithAnchor = regexp.MustCompile(`\(/docs/\{\{version\}\}/([^)#]+)#([^)]+)\)`)

	// (/docs/{{version}}/page)
	docsLink = regexp.MustCompile(`\(/docs/\{\{version\}\}/([^)]+)\)`)
)

// RewriteLinks turns versioned documentation links into relative Markdown
// file links: (/docs/{{version}}/eloquent#relationships) becomes
// (eloquent.md#relationships) and (/docs/{{version}}/eloquent) becomes
// (eloquent.md). The anchored form runs first so the plain pattern never
// folds an anchor into the file name.
func RewriteLinks(content string) string {
	content = docsLinkWithAnchor.ReplaceAllString(content, "(${1}.md#${2})")
	return docsLink.ReplaceAllString(content, "(${1}.md)")
}
