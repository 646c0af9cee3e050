package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePreviewSource(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "sail.md")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return p
}

// ---------------------------------------------------------------------------
// TestRunMain_Preview
// ---------------------------------------------------------------------------

func TestRunMain_Preview(t *testing.T) {
	t.Parallel()

	input := writePreviewSource(t, "# Laravel Sail\n\n```php\n$x = 1; // [tl! add]\n```\n")
	env, stdout, stderr := testEnv()

	code := runMain(context.Background(), []string{"preview", "--profile", "grayscale", input}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}

	output := strings.TrimSuffix(input, ".md") + ".html"
	if !strings.Contains(stdout.String(), "Created "+output+" (grayscale profile)") {
		t.Errorf("stdout = %q", stdout.String())
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("reading preview: %v", err)
	}
	page := string(data)
	for _, want := range []string{
		"<title>Laravel Sail (grayscale)</title>",
		`class="profile-grayscale"`,
		`class="hll"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("preview should contain %q", want)
		}
	}
	if strings.Contains(page, "[tl! add]") {
		t.Error("preview still contains the line annotation")
	}
}

func TestRunMain_PreviewOutputAndAssetsDir(t *testing.T) {
	t.Parallel()

	input := writePreviewSource(t, "no heading\n")
	themeDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(themeDir, "styles"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(themeDir, "styles", "color.css"), []byte("body { color: teal; }"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	output := filepath.Join(t.TempDir(), "page.html")

	env, _, stderr := testEnv()
	code := runMain(context.Background(), []string{"preview", "-q", "-o", output, "--assets-dir", themeDir, input}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("reading preview: %v", err)
	}
	if !strings.Contains(string(data), "color: teal") {
		t.Error("custom stylesheet not used")
	}
	if !strings.Contains(string(data), "<title>sail (color)</title>") {
		t.Errorf("title should fall back to the file name, got %q", data)
	}
}

func TestRunMain_PreviewErrors(t *testing.T) {
	t.Parallel()

	input := writePreviewSource(t, "# x\n")

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{"no file", []string{"preview"}, ExitUsage, "expected one <file.md>"},
		{"two files", []string{"preview", input, input}, ExitUsage, "got 2 argument(s)"},
		{"unknown profile", []string{"preview", "--profile", "sepia", input}, ExitUsage, "available profiles: color, grayscale"},
		{"unknown style", []string{"preview", "--style", "no-such-style", input}, ExitUsage, "available styles:"},
		{"missing input", []string{"preview", filepath.Join(t.TempDir(), "gone.md")}, ExitIO, "failed to read document"},
		{"missing assets dir", []string{"preview", "--assets-dir", filepath.Join(t.TempDir(), "nope"), input}, ExitUsage, "preview assets"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, stderr := testEnv()
			if code := runMain(context.Background(), tt.args, env); code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d; stderr = %s", code, tt.wantCode, stderr.String())
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestResolvePreviewOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input, flag, want string
	}{
		{"docs/sail.md", "", "docs/sail.html"},
		{"README", "", "README.html"},
		{"docs/sail.md", "out/x.html", "out/x.html"},
	}
	for _, tt := range tests {
		if got := resolvePreviewOutput(tt.input, tt.flag); got != tt.want {
			t.Errorf("resolvePreviewOutput(%q, %q) = %q, want %q", tt.input, tt.flag, got, tt.want)
		}
	}
}
