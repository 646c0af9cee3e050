// Package linkcheck finds cross references between processed Markdown files
// that point at files the run did not produce.
package linkcheck

import (
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Dangling is a relative .md link whose target is not among the checked documents.
type Dangling struct {
	Document string // Name of the document holding the link
	Target   string // Destination as written, anchor included
}

// Checker extracts and resolves Markdown links. Safe for concurrent use.
type Checker struct {
	md goldmark.Markdown
}

// New creates a Checker.
func New() *Checker {
	return &Checker{md: goldmark.New()}
}

// Links returns the destinations of every inline or reference link in
// content that points at a relative .md file, in document order.
func (c *Checker) Links(content []byte) []string {
	ctx := parser.NewContext()
	root := c.md.Parser().Parse(text.NewReader(content), parser.WithContext(ctx))

	var links []string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if link, ok := n.(*gmast.Link); ok {
			dest := string(link.Destination)
			if _, ok := markdownTarget(dest); ok {
				links = append(links, dest)
			}
		}
		return gmast.WalkContinue, nil
	})
	return links
}

// Check scans docs (name -> content) and returns every link to a .md file
// that is not a key of docs. Results are ordered by document name, then by
// position in the document.
func (c *Checker) Check(docs map[string]string) []Dangling {
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)

	var dangling []Dangling
	for _, name := range names {
		for _, dest := range c.Links([]byte(docs[name])) {
			target, _ := markdownTarget(dest)
			resolved := path.Clean(path.Join(path.Dir(name), target))
			if _, ok := docs[resolved]; !ok {
				dangling = append(dangling, Dangling{Document: name, Target: dest})
			}
		}
	}
	return dangling
}

// markdownTarget returns the file part of a relative link to a .md file.
func markdownTarget(dest string) (string, bool) {
	if dest == "" || strings.HasPrefix(dest, "/") || strings.HasPrefix(dest, "#") {
		return "", false
	}

	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	if !strings.HasSuffix(u.Path, ".md") {
		return "", false
	}
	return u.Path, true
}
