package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	docprep "github.com/alnah/go-docprep"
)

// Command names.
const (
	cmdConvert    = "convert"
	cmdPreview    = "preview"
	cmdVersion    = "version"
	cmdHelp       = "help"
	cmdCompletion = "completion"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logFormat string
	help      bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common      commonFlags
	workers     int
	workersSet  bool // 0 is meaningful (auto), so track whether it was given
	timeout     string
	skip        []string
	assetPrefix string
	checkLinks  bool
	watch       bool
}

// previewFlags holds all flags for the preview command.
type previewFlags struct {
	common    commonFlags
	output    string
	profile   string
	style     string
	assetsDir string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show warnings and errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timings")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")
}

// newFlagSet returns a FlagSet that reports errors to the caller only.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// addConvertFlags registers every convert flag. Shell completion reads the
// same FlagSet.
func addConvertFlags(fs *flag.FlagSet, f *convertFlags) {
	fs.IntVarP(&f.workers, "workers", "w", 1, "parallel workers (0 = one per CPU)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-image download timeout (e.g. 10s, 1m)")
	fs.StringSliceVar(&f.skip, "skip", nil, "stages to skip: images,links,diff,php-tags,tabs")
	fs.StringVar(&f.assetPrefix, "asset-prefix", "", "image directory inside output_dir")
	fs.BoolVar(&f.checkLinks, "check-links", false, "report links to documents missing from the output")
	fs.BoolVar(&f.watch, "watch", false, "reprocess source files as they change")
	addCommonFlags(fs, &f.common)
}

// addPreviewFlags registers every preview flag.
func addPreviewFlags(fs *flag.FlagSet, f *previewFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output HTML file (default: input with .html)")
	fs.StringVarP(&f.profile, "profile", "p", "", "presentation profile: color, grayscale")
	fs.StringVar(&f.style, "style", "", "code highlight style, overrides the profile's")
	fs.StringVar(&f.assetsDir, "assets-dir", "", "directory overriding the embedded CSS and template")
	addCommonFlags(fs, &f.common)
}

// parseConvertFlags parses convert command flags and returns positional args.
// Parse errors wrap docprep.ErrInvalidArgs.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := newFlagSet(cmdConvert)
	f := &convertFlags{}
	addConvertFlags(fs, f)

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", docprep.ErrInvalidArgs, err)
	}
	f.workersSet = fs.Changed("workers")

	return f, fs.Args(), nil
}

// parsePreviewFlags parses preview command flags and returns positional args.
// Parse errors wrap docprep.ErrInvalidArgs.
func parsePreviewFlags(args []string) (*previewFlags, []string, error) {
	fs := newFlagSet(cmdPreview)
	f := &previewFlags{}
	addPreviewFlags(fs, f)

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", docprep.ErrInvalidArgs, err)
	}

	return f, fs.Args(), nil
}
