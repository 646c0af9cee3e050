package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/alnah/go-docprep/internal/config"
)

// newLogger builds the diagnostic logger written to w. Levels: WARN with
// quiet, DEBUG with verbose, INFO otherwise. quiet wins over verbose.
func newLogger(w io.Writer, format string, quiet, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelWarn
	case verbose:
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(format, config.LogFormatJSON) {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
