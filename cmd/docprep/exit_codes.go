package main

import (
	"errors"
	"os"

	docprep "github.com/alnah/go-docprep"
	"github.com/alnah/go-docprep/internal/assets"
	"github.com/alnah/go-docprep/internal/config"
	"github.com/alnah/go-docprep/internal/highlight"
	"github.com/alnah/go-docprep/internal/hints"
	"github.com/alnah/go-docprep/internal/pipeline"
	"github.com/alnah/go-docprep/internal/render"
)

// Exit codes for the docprep CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All documents processed
	ExitGeneral = 1 // General/unexpected error, including interruption
	ExitUsage   = 2 // Invalid arguments, flags, config, or validation
	ExitIO      = 3 // Missing source, unreadable or unwritable documents
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, docprep.ErrSourceNotFound) ||
		errors.Is(err, docprep.ErrReadDocument) ||
		errors.Is(err, docprep.ErrWriteDocument) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, docprep.ErrInvalidArgs) ||
		errors.Is(err, docprep.ErrInvalidOption) ||
		errors.Is(err, docprep.ErrUnknownStage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, render.ErrUnknownProfile) ||
		errors.Is(err, highlight.ErrUnknownStyle) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrPathTraversal) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintedError attaches a hint computed where the error happened.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() }
func (e *hintedError) Unwrap() error { return e.err }

// hintsFor returns the hints matching err, or "".
func hintsFor(err error) string {
	var he *hintedError
	if errors.As(err, &he) {
		return he.hint
	}

	switch {
	case errors.Is(err, docprep.ErrInvalidArgs):
		return hints.ForUsage()
	case errors.Is(err, docprep.ErrSourceNotFound):
		return hints.ForSourceDir()
	case errors.Is(err, docprep.ErrWriteDocument):
		return hints.ForOutputDirectory()
	case errors.Is(err, docprep.ErrUnknownStage):
		return hints.ForUnknownStage(pipeline.StageNames())
	case errors.Is(err, render.ErrUnknownProfile):
		return hints.ForUnknownProfile(render.ProfileNames())
	case errors.Is(err, highlight.ErrUnknownStyle):
		return hints.ForUnknownStyle(highlight.StyleNames())
	}
	return ""
}
