package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-docprep/internal/assets"
	"github.com/alnah/go-docprep/internal/highlight"
)

// DefaultLang is the page language of the manual.
const DefaultLang = "zh-TW"

// ErrRender indicates the Markdown could not be rendered.
var ErrRender = errors.New("preview rendering failed")

// Options configures a Renderer.
type Options struct {
	Profile   string        // "color" (default) or "grayscale"
	Style     string        // chroma style overriding the profile's
	Lang      string        // <html lang>, DefaultLang when empty
	Assets    assets.Loader // nil uses the embedded assets
	SkipClean bool          // Skip bluemonday sanitizing
}

// Renderer renders processed Markdown documents to HTML pages.
// A Renderer is safe for concurrent use.
type Renderer struct {
	profile Profile
	lang    string
	md      goldmark.Markdown
	policy  *bluemonday.Policy
	page    *template.Template
	pageCSS string
	codeCSS string
}

// Page describes one document to render.
type Page struct {
	Title   string // Used when the document has no level-1 heading
	BaseDir string // Directory relative img/a paths resolve against
}

type pageData struct {
	Lang    string
	Title   string
	Profile string
	PageCSS template.CSS
	CodeCSS template.CSS
	Body    template.HTML
}

// New creates a Renderer for opts.
func New(opts Options) (*Renderer, error) {
	profile, err := LookupProfile(opts.Profile)
	if err != nil {
		return nil, err
	}

	styleName := profile.CodeStyle
	if opts.Style != "" {
		styleName = opts.Style
	}
	formatter, err := highlight.New(styleName)
	if err != nil {
		return nil, err
	}

	loader := opts.Assets
	if loader == nil {
		loader = assets.NewEmbeddedLoader()
	}
	pageCSS, err := loader.LoadStyle(profile.Name)
	if err != nil {
		return nil, fmt.Errorf("loading %s stylesheet: %w", profile.Name, err)
	}
	rawTemplate, err := loader.LoadTemplate(assets.PreviewTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading page template: %w", err)
	}
	page, err := template.New(assets.PreviewTemplateName).Parse(rawTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	var codeCSS bytes.Buffer
	if err := formatter.WriteCSS(&codeCSS); err != nil {
		return nil, fmt.Errorf("generating code CSS: %w", err)
	}

	lang := opts.Lang
	if lang == "" {
		lang = DefaultLang
	}

	r := &Renderer{
		profile: profile,
		lang:    lang,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(
				// Raw <img> tags are part of the manual; bluemonday cleans up after.
				html.WithUnsafe(),
				html.WithXHTML(),
				renderer.WithNodeRenderers(newCodeBlockRenderer(formatter)),
			),
		),
		page:    page,
		pageCSS: pageCSS,
		codeCSS: codeCSS.String(),
	}
	if !opts.SkipClean {
		r.policy = newPolicy()
	}
	return r, nil
}

// Profile returns the profile in use.
func (r *Renderer) Profile() Profile { return r.profile }

// Render writes source as a complete HTML page to w.
func (r *Renderer) Render(ctx context.Context, w io.Writer, source []byte, p Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := r.md.Parser().Parse(text.NewReader(source))
	title := firstHeading(doc, source)
	if title == "" {
		title = p.Title
	}

	var body bytes.Buffer
	if err := r.md.Renderer().Render(&body, source, doc); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}

	fragment := body.String()
	if r.policy != nil {
		fragment = r.policy.Sanitize(fragment)
	}
	fragment, err := RewriteRelativePaths(fragment, p.BaseDir)
	if err != nil {
		return fmt.Errorf("%w: rewriting paths: %v", ErrRender, err)
	}

	if title != "" {
		title += " (" + r.profile.TitleLabel + ")"
	}

	data := pageData{
		Lang:    r.lang,
		Title:   title,
		Profile: r.profile.Name,
		PageCSS: template.CSS(r.pageCSS), // #nosec G203 -- embedded or user-supplied stylesheet
		CodeCSS: template.CSS(r.codeCSS), // #nosec G203 -- generated by chroma
		Body:    template.HTML(fragment), // #nosec G203 -- sanitized above unless SkipClean
	}
	if err := r.page.Execute(w, data); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

// firstHeading returns the plain text of the first level-1 heading.
func firstHeading(doc ast.Node, source []byte) string {
	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level == 1 {
			title = strings.TrimSpace(nodeText(h, source))
			return ast.WalkStop, nil
		}
		return ast.WalkSkipChildren, nil
	})
	return title
}

func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		default:
			b.WriteString(nodeText(c, source))
		}
	}
	return b.String()
}
