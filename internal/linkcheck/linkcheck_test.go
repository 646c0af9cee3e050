package linkcheck

import (
	"slices"
	"testing"
)

func TestChecker_Links(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "inline links",
			input:    "See [routing](routing.md) and [middleware](middleware.md#defining-middleware).",
			expected: []string{"routing.md", "middleware.md#defining-middleware"},
		},
		{
			name:     "reference link",
			input:    "Read [the guide][g].\n\n[g]: eloquent.md\n",
			expected: []string{"eloquent.md"},
		},
		{
			name:     "external and absolute ignored",
			input:    "[a](https://laravel.com/x.md) [b](/docs/x.md) [c](#top) [d](mailto:a@b.md)",
			expected: nil,
		},
		{
			name:     "non markdown ignored",
			input:    "[img](_static/laravel/logo.png) [html](page.html)",
			expected: nil,
		},
		{
			name:     "link inside code block ignored",
			input:    "```\n[x](ghost.md)\n```\n",
			expected: nil,
		},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := c.Links([]byte(tt.input))
			if !slices.Equal(got, tt.expected) {
				t.Errorf("Links() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestChecker_Check(t *testing.T) {
	t.Parallel()

	docs := map[string]string{
		"routing.md":     "[controllers](controllers.md) and [ghost](ghost.md#anchor)",
		"controllers.md": "[back](routing.md#basic-routing) [up](../outside.md)",
		"index.md":       "[missing](missing.md)",
	}

	got := New().Check(docs)
	want := []Dangling{
		{Document: "controllers.md", Target: "../outside.md"},
		{Document: "index.md", Target: "missing.md"},
		{Document: "routing.md", Target: "ghost.md#anchor"},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Check() = %+v, want %+v", got, want)
	}
}

func TestChecker_CheckNoDocs(t *testing.T) {
	t.Parallel()

	if got := New().Check(nil); len(got) != 0 {
		t.Errorf("Check(nil) = %v, want empty", got)
	}
}
