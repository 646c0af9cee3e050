package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// aliases maps fence languages of the manual to chroma lexer names.
var aliases = map[string]string{
	"blade":    "phtml",
	"env":      "ini",
	"shell":    "bash",
	"php-line": "php",
}

// Lexer returns the lexer for a fence language, or the plaintext fallback.
func Lexer(lang string) chroma.Lexer {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if name, ok := aliases[lang]; ok {
		lang = name
	}

	var l chroma.Lexer
	if lang != "" {
		l = lexers.Get(lang)
	}
	if l == nil {
		l = lexers.Fallback
	}
	return chroma.Coalesce(l)
}
