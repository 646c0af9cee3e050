package render

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-docprep/internal/highlight"
)

// codeBlockPriority puts the renderer ahead of goldmark's default HTML
// renderer (1000) for fenced code blocks.
const codeBlockPriority = 100

// codeBlockRenderer draws fenced code blocks through a highlight.Formatter.
type codeBlockRenderer struct {
	formatter *highlight.Formatter
}

func newCodeBlockRenderer(f *highlight.Formatter) util.PrioritizedValue {
	return util.Prioritized(&codeBlockRenderer{formatter: f}, codeBlockPriority)
}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*ast.FencedCodeBlock)
	var lang string
	if l := n.Language(source); l != nil {
		lang = string(l)
	}

	var code strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}

	if err := r.formatter.Format(w, lang, code.String()); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkSkipChildren, nil
}
