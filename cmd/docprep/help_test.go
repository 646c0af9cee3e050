package main

// Notes:
// - printUsage and the per-command usages: we test that required content
//   strings are present. We don't test exact formatting as that's an
//   implementation detail.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		print    func(*bytes.Buffer)
		required []string
	}{
		{
			name:     "main",
			print:    func(b *bytes.Buffer) { printUsage(b) },
			required: []string{"Usage: docprep", "Commands:", "convert", "preview", "version", "help", "completion"},
		},
		{
			name:  "convert",
			print: func(b *bytes.Buffer) { printConvertUsage(b) },
			required: []string{
				"<source_dir> <output_dir>", "--workers", "--timeout", "--skip",
				"--check-links", "--watch", "--config", "--log-format", "DOCPREP_WORKERS",
			},
		},
		{
			name:     "preview",
			print:    func(b *bytes.Buffer) { printPreviewUsage(b) },
			required: []string{"<file.md>", "--output", "--profile", "--style", "--assets-dir", "DOCPREP_PROFILE"},
		},
		{
			name:     "completion",
			print:    func(b *bytes.Buffer) { printCompletionUsage(b) },
			required: []string{"Usage: docprep completion <shell>", "bash", "zsh", "fish", "powershell"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tt.print(&buf)
			for _, s := range tt.required {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("usage should contain %q", s)
				}
			}
		})
	}
}

func TestRunHelp_Topics(t *testing.T) {
	t.Parallel()

	for _, topic := range []string{"version", "help", "completion"} {
		env, stdout, _ := testEnv()
		if code := runHelp([]string{topic}, env); code != ExitSuccess {
			t.Errorf("runHelp(%s) = %d", topic, code)
		}
		if !strings.Contains(stdout.String(), "Usage: docprep "+topic) {
			t.Errorf("runHelp(%s) stdout = %q", topic, stdout.String())
		}
	}
}
