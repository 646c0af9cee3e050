package docprep

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"
)

func TestNewPreprocessor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{name: "defaults"},
		{name: "all options", opts: []Option{
			WithFetchTimeout(2 * time.Second),
			WithAssetPrefix("static/img/"),
			WithMaxImageBytes(1024),
			WithUserAgent("test"),
			WithSkipStages("images"),
		}},
		{name: "unknown stage", opts: []Option{WithSkipStages("toc")}, wantErr: ErrUnknownStage},
		{name: "zero timeout", opts: []Option{WithFetchTimeout(0)}, wantErr: ErrInvalidOption},
		{name: "negative max bytes", opts: []Option{WithMaxImageBytes(-1)}, wantErr: ErrInvalidOption},
		{name: "escaping prefix", opts: []Option{WithAssetPrefix("../img")}, wantErr: ErrInvalidOption},
		{name: "empty prefix", opts: []Option{WithAssetPrefix("/")}, wantErr: ErrInvalidOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := NewPreprocessor(tt.opts...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewPreprocessor() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewPreprocessor() error = %v", err)
			}
			if p == nil {
				t.Fatal("NewPreprocessor() returned nil")
			}
		})
	}
}

func TestPreprocessor_StagesAndPrefix(t *testing.T) {
	t.Parallel()

	p, err := NewPreprocessor(WithSkipStages("diff", "tabs"), WithAssetPrefix("/static/img/"))
	if err != nil {
		t.Fatalf("NewPreprocessor() error = %v", err)
	}

	if got, want := p.Stages(), []string{"images", "links", "php-tags"}; !slices.Equal(got, want) {
		t.Errorf("Stages() = %v, want %v", got, want)
	}
	if got := p.AssetPrefix(); got != "static/img" {
		t.Errorf("AssetPrefix() = %q, want %q", got, "static/img")
	}
}

func TestPreprocessor_Process(t *testing.T) {
	t.Parallel()

	p, err := NewPreprocessor()
	if err != nil {
		t.Fatalf("NewPreprocessor() error = %v", err)
	}

	doc := Document{
		Name:    "eloquent.md",
		Content: "See [x](/docs/{{version}}/collections#available-methods).\n\n```php\n$flight->save();\n```\n",
	}
	got := p.Process(context.Background(), doc, t.TempDir())

	want := "See [x](collections.md#available-methods).\n\n```php-line\n$flight->save();\n```\n"
	if got.Name != "eloquent.md" {
		t.Errorf("Process() name = %q, want eloquent.md", got.Name)
	}
	if got.Content != want {
		t.Errorf("Process() content = %q, want %q", got.Content, want)
	}
}

func TestPreprocessor_SkipStage(t *testing.T) {
	t.Parallel()

	p, err := NewPreprocessor(WithSkipStages("links"))
	if err != nil {
		t.Fatalf("NewPreprocessor() error = %v", err)
	}

	input := "(/docs/{{version}}/routing)"
	if got := p.Process(context.Background(), Document{Content: input}, t.TempDir()); got.Content != input {
		t.Errorf("Process() = %q, want links untouched", got.Content)
	}
}
