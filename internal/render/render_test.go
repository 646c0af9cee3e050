package render

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-docprep/internal/highlight"
)

const sampleDoc = "# Laravel Sail\n\n" +
	"Read [Eloquent](eloquent.md#relationships).\n\n" +
	"<img src=\"_static/laravel/sail.png\" />\n\n" +
	"<script>alert(1)</script>\n\n" +
	"**Linux**\n\n" +
	"```php-line\n$user->delete(); // [tl! remove]\n$user->forceDelete(); // [tl! add]\n```\n"

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	r, err := New(Options{Profile: ProfileGrayscale})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var buf bytes.Buffer
	if err := r.Render(context.Background(), &buf, []byte(sampleDoc), Page{Title: "sail", BaseDir: "/out"}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="zh-TW">`,
		"<title>Laravel Sail (grayscale)</title>",
		`class="profile-grayscale"`,
		"line-through",
		`<pre class="chroma">`,
		`<span class="hll">`,
		`<span class="dll">`,
		`id="laravel-sail"`,
		"<strong>Linux</strong>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	for _, bad := range []string{"<script>", "[tl!"} {
		if strings.Contains(out, bad) {
			t.Errorf("output contains %q", bad)
		}
	}
}

func TestRenderer_TitleFallback(t *testing.T) {
	t.Parallel()

	r, err := New(Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var buf bytes.Buffer
	if err := r.Render(context.Background(), &buf, []byte("## Only a subsection\n"), Page{Title: "routing"}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), "<title>routing (color)</title>") {
		t.Errorf("expected fallback title, got:\n%s", buf.String())
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	if _, err := New(Options{Profile: "sepia"}); !errors.Is(err, ErrUnknownProfile) {
		t.Errorf("New(sepia) error = %v, want ErrUnknownProfile", err)
	}
	if _, err := New(Options{Style: "no-such-style"}); !errors.Is(err, highlight.ErrUnknownStyle) {
		t.Errorf("New(style) error = %v, want ErrUnknownStyle", err)
	}
}

func TestRenderer_CanceledContext(t *testing.T) {
	t.Parallel()

	r, err := New(Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	if err := r.Render(ctx, &buf, []byte("# x"), Page{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
	if buf.Len() != 0 {
		t.Error("Render() wrote output despite canceled context")
	}
}
