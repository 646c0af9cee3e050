package highlight

import (
	"errors"
	"fmt"
	"html"
	"io"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrUnknownStyle indicates a chroma style name that is not registered.
var ErrUnknownStyle = errors.New("unknown highlight style")

// Formatter writes annotated, class-based highlighted HTML for code blocks.
type Formatter struct {
	style *chroma.Style
}

// New creates a Formatter for the named chroma style.
func New(styleName string) (*Formatter, error) {
	style, ok := styles.Registry[strings.ToLower(styleName)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, styleName)
	}
	return &Formatter{style: style}, nil
}

// StyleNames returns the registered chroma style names, sorted.
func StyleNames() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Format writes source, lexed as lang, as a <pre class="chroma"> block.
// Annotated lines are wrapped in <span class="hll"> or <span class="dll">.
func (f *Formatter) Format(w io.Writer, lang, source string) error {
	source, marks := Annotate(source)

	it, err := Lexer(lang).Tokenise(nil, source)
	if err != nil {
		return fmt.Errorf("tokenising %s block: %w", lang, err)
	}

	var b strings.Builder
	b.WriteString(`<pre class="chroma"><code`)
	if lang != "" {
		b.WriteString(` class="language-` + html.EscapeString(lang) + `"`)
	}
	b.WriteString(">")

	for i, line := range chroma.SplitTokensIntoLines(it.Tokens()) {
		cls := ""
		if i < len(marks) {
			cls = marks[i].Class()
		}

		var body strings.Builder
		newline := false
		for j, tok := range line {
			value := tok.Value
			if j == len(line)-1 && strings.HasSuffix(value, "\n") {
				value = value[:len(value)-1]
				newline = true
			}
			writeToken(&body, tok.Type, value)
		}

		if cls != "" {
			b.WriteString(`<span class="` + cls + `">` + body.String() + "</span>")
		} else {
			b.WriteString(body.String())
		}
		if newline {
			b.WriteString("\n")
		}
	}

	b.WriteString("</code></pre>\n")
	_, err = io.WriteString(w, b.String())
	return err
}

// WriteCSS writes the style's class rules, scoped to .chroma.
func (f *Formatter) WriteCSS(w io.Writer) error {
	return chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(w, f.style)
}

func writeToken(b *strings.Builder, tt chroma.TokenType, value string) {
	if value == "" {
		return
	}
	cls := tokenClass(tt)
	if cls == "" {
		b.WriteString(html.EscapeString(value))
		return
	}
	b.WriteString(`<span class="` + cls + `">` + html.EscapeString(value) + "</span>")
}

// tokenClass returns the short chroma class of tt or of its nearest
// categorized ancestor.
func tokenClass(tt chroma.TokenType) string {
	for {
		if cls, ok := chroma.StandardTypes[tt]; ok {
			return cls
		}
		parent := tt.Parent()
		if parent == tt || parent == 0 {
			return ""
		}
		tt = parent
	}
}
