package highlight

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Parallel()

	if _, err := New("monokai"); err != nil {
		t.Errorf("New(monokai) error = %v", err)
	}
	if _, err := New("Monokai"); err != nil {
		t.Errorf("New(Monokai) error = %v, want case-insensitive lookup", err)
	}
	if _, err := New("no-such-style"); !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("New(no-such-style) error = %v, want ErrUnknownStyle", err)
	}
}

func TestFormatter_Format(t *testing.T) {
	t.Parallel()

	f, err := New("monokai")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name         string
		lang         string
		source       string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:   "annotated php-line block",
			lang:   "php-line",
			source: "$user = User::find(1);\n$user->delete(); // [tl! remove]\n$user->forceDelete(); // [tl! add]\n",
			wantContains: []string{
				`<pre class="chroma"><code class="language-php-line">`,
				`<span class="dll">`,
				`<span class="hll">`,
				"forceDelete",
			},
			wantExcludes: []string{"[tl!", "// [tl"},
		},
		{
			name:         "html is escaped",
			lang:         "blade",
			source:       "<x-alert type=\"error\" />\n",
			wantContains: []string{"&lt;", "alert"},
			wantExcludes: []string{"<x-alert"},
		},
		{
			name:         "unknown language falls back to plain text",
			lang:         "klingon",
			source:       "qapla' <b>\n",
			wantContains: []string{"qapla", "&lt;b&gt;"},
		},
		{
			name:         "no language",
			lang:         "",
			source:       "plain\n",
			wantContains: []string{`<pre class="chroma"><code>plain`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := f.Format(&buf, tt.lang, tt.source); err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			out := buf.String()
			for _, want := range tt.wantContains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, bad := range tt.wantExcludes {
				if strings.Contains(out, bad) {
					t.Errorf("output contains %q:\n%s", bad, out)
				}
			}
		})
	}
}

func TestFormatter_WriteCSS(t *testing.T) {
	t.Parallel()

	f, err := New("bw")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var buf bytes.Buffer
	if err := f.WriteCSS(&buf); err != nil {
		t.Fatalf("WriteCSS() error = %v", err)
	}
	if !strings.Contains(buf.String(), ".chroma") {
		t.Errorf("CSS missing .chroma rules:\n%s", buf.String())
	}
}

func TestLexer_Aliases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lang string
		want string
	}{
		{lang: "shell", want: "Bash"},
		{lang: "env", want: "INI"},
		{lang: "php-line", want: "PHP"},
		{lang: "PHP-LINE", want: "PHP"},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			t.Parallel()

			if got := Lexer(tt.lang).Config().Name; got != tt.want {
				t.Errorf("Lexer(%q) = %q, want %q", tt.lang, got, tt.want)
			}
		})
	}
}
