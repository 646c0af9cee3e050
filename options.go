package docprep

import (
	"log/slog"
	"net/http"
	"runtime"
	"time"
)

// preprocessorConfig holds the settings Option functions modify.
type preprocessorConfig struct {
	timeout     time.Duration
	client      *http.Client
	logger      *slog.Logger
	assetPrefix string
	maxBytes    int64
	userAgent   string
	skip        []string
	onFetchErr  func(rawURL string, err error)
}

// Option configures a Preprocessor.
type Option func(*preprocessorConfig)

// WithFetchTimeout bounds each image download. Default 10s.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *preprocessorConfig) {
		c.timeout = d
	}
}

// WithHTTPClient sets the client used for image downloads. The fetch
// timeout still applies through the request context.
func WithHTTPClient(client *http.Client) Option {
	return func(c *preprocessorConfig) {
		c.client = client
	}
}

// WithLogger sets the structured logger. Default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(c *preprocessorConfig) {
		c.logger = logger
	}
}

// WithAssetPrefix sets the relative path images are stored under and
// referenced by. Default "_static/laravel".
func WithAssetPrefix(prefix string) Option {
	return func(c *preprocessorConfig) {
		c.assetPrefix = prefix
	}
}

// WithMaxImageBytes caps each downloaded image. Default 32 MiB.
func WithMaxImageBytes(n int64) Option {
	return func(c *preprocessorConfig) {
		c.maxBytes = n
	}
}

// WithUserAgent sets the User-Agent of image requests.
func WithUserAgent(ua string) Option {
	return func(c *preprocessorConfig) {
		c.userAgent = ua
	}
}

// WithSkipStages disables stages by name ("images", "links", "diff",
// "php-tags", "tabs").
func WithSkipStages(names ...string) Option {
	return func(c *preprocessorConfig) {
		c.skip = append(c.skip, names...)
	}
}

// WithFetchErrorHandler registers fn to be told about every image that
// could not be downloaded. fn must be safe for concurrent use when the
// Preprocessor is shared by several workers.
func WithFetchErrorHandler(fn func(rawURL string, err error)) Option {
	return func(c *preprocessorConfig) {
		c.onFetchErr = fn
	}
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithWorkers sets how many files are processed at once. Values below 1
// mean one worker per available CPU. Default 1.
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		r.workers = n
	}
}

// WithLinkCheck enables the dangling link report.
func WithLinkCheck(enabled bool) RunnerOption {
	return func(r *Runner) {
		r.checkLinks = enabled
	}
}

// WithRunLogger sets the logger for per-file progress. Default discards.
func WithRunLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}
