package render

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteRelativePaths converts relative img[src] and a[href] values of an
// HTML fragment into file:// URLs under baseDir, so a preview opened from
// anywhere still finds _static/laravel images and sibling documents. Anchors
// on links are kept. An empty baseDir returns the fragment unchanged.
//
// Paths that resolve outside baseDir, absolute paths and URLs are left as is.
func RewriteRelativePaths(fragment, baseDir string) (string, error) {
	if baseDir == "" {
		return fragment, nil
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for _, n := range nodes {
		rewriteNode(n, absBaseDir)
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func rewriteNode(n *html.Node, baseDir string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rewriteAttr(n, "src", baseDir)
		case atom.A:
			rewriteAttr(n, "href", baseDir)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, baseDir)
	}
}

func rewriteAttr(n *html.Node, key, baseDir string) {
	for i, attr := range n.Attr {
		if attr.Key != key || !isRelativePath(attr.Val) {
			continue
		}

		target, fragment, _ := strings.Cut(attr.Val, "#")
		if unescaped, err := url.PathUnescape(target); err == nil {
			target = unescaped
		}

		absPath := filepath.Join(baseDir, filepath.FromSlash(target))
		if !isPathUnderDir(absPath, baseDir) {
			continue
		}

		u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath), Fragment: fragment}
		if !strings.HasPrefix(u.Path, "/") {
			// C:/docs -> file:///C:/docs
			u.Path = "/" + u.Path
		}
		n.Attr[i].Val = u.String()
	}
}

// isRelativePath reports whether p is a document-relative path.
func isRelativePath(p string) bool {
	if p == "" || strings.HasPrefix(p, "#") || strings.HasPrefix(p, "//") {
		return false
	}
	if u, err := url.Parse(p); err != nil || u.Scheme != "" {
		return false
	}
	return !filepath.IsAbs(p) && !strings.HasPrefix(p, "/")
}

// isPathUnderDir checks if absPath is dir or below it.
func isPathUnderDir(absPath, dir string) bool {
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(filepath.Clean(absPath)+string(filepath.Separator), cleanDir)
}
