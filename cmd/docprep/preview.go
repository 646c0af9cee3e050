package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	docprep "github.com/alnah/go-docprep"
	"github.com/alnah/go-docprep/internal/assets"
	"github.com/alnah/go-docprep/internal/config"
	"github.com/alnah/go-docprep/internal/fileutil"
	"github.com/alnah/go-docprep/internal/render"
)

// previewPermissions is rw-r--r--.
const previewPermissions = 0o644

// runPreview renders one Markdown file to a standalone HTML page.
func runPreview(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parsePreviewFlags(args)
	if err != nil {
		printPreviewUsage(env.Stderr)
		return err
	}
	if flags.common.help {
		printPreviewUsage(env.Stdout)
		return nil
	}
	if len(positional) != 1 {
		printPreviewUsage(env.Stderr)
		return fmt.Errorf("%w: expected one <file.md>, got %d argument(s)", docprep.ErrInvalidArgs, len(positional))
	}
	input := positional[0]

	warnUnknownEnvVars(env.Stderr)
	cfg, err := loadConfiguration(flags.common.config, loadEnvConfig(env.Stderr))
	if err != nil {
		return err
	}
	mergePreviewFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(env.Stderr, cfg.Log.Format, flags.common.quiet, flags.common.verbose)

	source, err := os.ReadFile(input) // #nosec G304 -- input path is user-provided
	if err != nil {
		return fmt.Errorf("%w: %v", docprep.ErrReadDocument, err)
	}

	loader, err := assets.NewResolver(cfg.Preview.AssetsDir)
	if err != nil {
		return fmt.Errorf("preview assets: %w", err)
	}
	if loader.HasCustomLoader() {
		logger.Debug("using custom preview assets", "dir", cfg.Preview.AssetsDir)
	}
	r, err := render.New(render.Options{
		Profile: cfg.Preview.Profile,
		Style:   cfg.Preview.Style,
		Assets:  loader,
	})
	if err != nil {
		return err
	}

	absInput, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("%w: %v", docprep.ErrReadDocument, err)
	}

	start := env.Now()
	var page bytes.Buffer
	err = r.Render(ctx, &page, source, render.Page{
		Title:   strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)),
		BaseDir: filepath.Dir(absInput),
	})
	if err != nil {
		return err
	}

	output := resolvePreviewOutput(input, flags.output)
	if err := fileutil.WriteFileAtomic(output, page.Bytes(), previewPermissions); err != nil {
		return fmt.Errorf("%w: %v", docprep.ErrWriteDocument, err)
	}
	logger.Debug("rendered preview", "input", input, "output", output,
		"profile", r.Profile().Name, "duration", env.Now().Sub(start).Round(time.Millisecond))

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s (%s profile)\n", output, r.Profile().Name)
	}
	return nil
}

// mergePreviewFlags merges CLI flags into config. CLI values override config values.
func mergePreviewFlags(flags *previewFlags, cfg *config.Config) {
	if flags.profile != "" {
		cfg.Preview.Profile = flags.profile
	}
	if flags.style != "" {
		cfg.Preview.Style = flags.style
	}
	if flags.assetsDir != "" {
		cfg.Preview.AssetsDir = flags.assetsDir
	}
	if flags.common.logFormat != "" {
		cfg.Log.Format = flags.common.logFormat
	}
}

// resolvePreviewOutput returns flagOutput, or input with its extension
// replaced by .html.
func resolvePreviewOutput(input, flagOutput string) string {
	if flagOutput != "" {
		return flagOutput
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".html"
}
