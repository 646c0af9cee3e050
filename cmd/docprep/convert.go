package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	docprep "github.com/alnah/go-docprep"
	"github.com/alnah/go-docprep/internal/config"
	"github.com/alnah/go-docprep/internal/fileutil"
	"github.com/alnah/go-docprep/internal/hints"
)

// runFailedError reports that some documents of a run failed. It unwraps to
// the joined per-file errors so exitCodeFor sees their sentinels.
type runFailedError struct {
	failed int
	total  int
	err    error
}

func (e *runFailedError) Error() string {
	return fmt.Sprintf("%d of %d document(s) failed", e.failed, e.total)
}

func (e *runFailedError) Unwrap() error { return e.err }

// runConvert orchestrates a directory run.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		printConvertUsage(env.Stderr)
		return err
	}
	if flags.common.help {
		printConvertUsage(env.Stdout)
		return nil
	}

	warnUnknownEnvVars(env.Stderr)
	cfg, err := loadConfiguration(flags.common.config, loadEnvConfig(env.Stderr))
	if err != nil {
		return err
	}
	mergeConvertFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	sourceDir, outputDir, err := resolveDirs(positional, cfg)
	if err != nil {
		printConvertUsage(env.Stderr)
		return err
	}
	// Checked here too so nothing is created for a bad source.
	if !fileutil.DirExists(sourceDir) {
		return fmt.Errorf("%w: %s", docprep.ErrSourceNotFound, sourceDir)
	}

	logger := newLogger(env.Stderr, cfg.Log.Format, flags.common.quiet, flags.common.verbose)
	if effective, err := cfg.Marshal(); err == nil {
		logger.Debug("effective configuration", "yaml", string(effective))
	}
	failures := &fetchFailures{}
	p, err := newPreprocessor(cfg, env, logger, failures)
	if err != nil {
		return err
	}
	runner := docprep.NewRunner(p,
		docprep.WithWorkers(cfg.Run.Workers),
		docprep.WithLinkCheck(cfg.Run.CheckLinks),
		docprep.WithRunLogger(logger),
	)

	report, err := runner.Run(ctx, sourceDir, outputDir)
	if err != nil {
		return err
	}

	printReport(report, outputDir, flags.common.quiet, flags.common.verbose, env)
	printDanglingLinks(report.DanglingLinks, env)
	failures.warn(env)

	var runErr error
	if err := report.Err(); err != nil {
		runErr = &runFailedError{failed: report.Failed(), total: len(report.Results), err: err}
	}

	if flags.watch && ctx.Err() == nil {
		if err := runWatch(ctx, runner, sourceDir, outputDir, env, logger, flags.common.quiet, flags.common.verbose); err != nil {
			return err
		}
	}
	return runErr
}

// loadConfiguration loads the config named by the flag, else by
// DOCPREP_CONFIG, else the defaults, then applies the environment.
func loadConfiguration(flagConfig string, env *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			err = fmt.Errorf("loading config: %w", err)
			if errors.Is(err, config.ErrConfigNotFound) {
				var searched []string
				if !fileutil.IsFilePath(name) {
					searched = config.SearchPaths(name)
				}
				return nil, &hintedError{err: err, hint: hints.ForConfigNotFound(searched)}
			}
			return nil, err
		}
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// mergeConvertFlags merges CLI flags into config. CLI values override config values.
func mergeConvertFlags(flags *convertFlags, cfg *config.Config) {
	if flags.workersSet {
		cfg.Run.Workers = flags.workers
	}
	if flags.timeout != "" {
		cfg.Fetch.Timeout = flags.timeout
	}
	if len(flags.skip) > 0 {
		cfg.Stages.Skip = append(cfg.Stages.Skip, flags.skip...)
	}
	if flags.assetPrefix != "" {
		cfg.Assets.Prefix = flags.assetPrefix
	}
	if flags.checkLinks {
		cfg.Run.CheckLinks = true
	}
	if flags.common.logFormat != "" {
		cfg.Log.Format = flags.common.logFormat
	}
}

// resolveDirs returns the source and output directories: both positional
// arguments, or both configured defaults when none are given.
func resolveDirs(args []string, cfg *config.Config) (string, string, error) {
	switch len(args) {
	case 2:
		return args[0], args[1], nil
	case 0:
		if cfg.Input.DefaultDir != "" && cfg.Output.DefaultDir != "" {
			return cfg.Input.DefaultDir, cfg.Output.DefaultDir, nil
		}
	}
	return "", "", fmt.Errorf("%w: expected <source_dir> <output_dir>, got %d argument(s)", docprep.ErrInvalidArgs, len(args))
}

// newPreprocessor builds the Preprocessor for a validated cfg.
func newPreprocessor(cfg *config.Config, env *Environment, logger *slog.Logger, failures *fetchFailures) (*docprep.Preprocessor, error) {
	timeout, err := cfg.FetchTimeout()
	if err != nil {
		return nil, err
	}

	opts := []docprep.Option{
		docprep.WithFetchTimeout(timeout),
		docprep.WithUserAgent(cfg.Fetch.UserAgent),
		docprep.WithSkipStages(cfg.Stages.Skip...),
		docprep.WithLogger(logger),
		docprep.WithFetchErrorHandler(failures.record),
	}
	// Zero values in the config file mean "default".
	if cfg.Fetch.MaxBytes > 0 {
		opts = append(opts, docprep.WithMaxImageBytes(cfg.Fetch.MaxBytes))
	}
	if cfg.Assets.Prefix != "" {
		opts = append(opts, docprep.WithAssetPrefix(cfg.Assets.Prefix))
	}
	if env.HTTPClient != nil {
		opts = append(opts, docprep.WithHTTPClient(env.HTTPClient))
	}

	return docprep.NewPreprocessor(opts...)
}

// fetchFailures counts failed image downloads across workers.
type fetchFailures struct {
	mu       sync.Mutex
	count    int
	timedOut bool
}

func (f *fetchFailures) record(_ string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count++
	if isTimeout(err) {
		f.timedOut = true
	}
}

// warn prints a summary of failed downloads with hints, if there were any.
func (f *fetchFailures) warn(env *Environment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.count == 0 {
		return
	}
	hint := hints.ForImageDownloads()
	if f.timedOut {
		hint += hints.ForTimeout()
	}
	fmt.Fprintf(env.Stderr, "warning: %d image(s) could not be downloaded%s\n", f.count, hint)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// printReport prints one line per document and a summary.
func printReport(report *docprep.Report, outputDir string, quiet, verbose bool, env *Environment) {
	for _, res := range report.Results {
		printResult(res, quiet, verbose, env)
	}
	if quiet {
		return
	}

	fmt.Fprintf(env.Stdout, "\n%d processed, %d failed\n", report.Succeeded(), report.Failed())
	if report.Succeeded() > 0 {
		fmt.Fprintf(env.Stdout, "Output files located at: %s\n", outputDir)
	}
}

// printResult prints the outcome of one document. Failures always print.
func printResult(res docprep.FileResult, quiet, verbose bool, env *Environment) {
	if res.Err != nil {
		fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", res.SourcePath, res.Err)
		return
	}
	if quiet {
		return
	}
	if verbose {
		fmt.Fprintf(env.Stdout, "Processed %s -> %s (%v)\n", res.SourcePath, res.OutputPath, res.Duration.Round(time.Millisecond))
		return
	}
	fmt.Fprintf(env.Stdout, "Processed %s -> %s\n", res.SourcePath, res.OutputPath)
}

// printDanglingLinks lists links to documents the run did not produce.
func printDanglingLinks(links []docprep.DanglingLink, env *Environment) {
	if len(links) == 0 {
		return
	}
	fmt.Fprintf(env.Stderr, "warning: %d link(s) point to missing documents:\n", len(links))
	for _, l := range links {
		fmt.Fprintf(env.Stderr, "  %s -> %s\n", l.Document, l.Target)
	}
}
