package docprep

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/alnah/go-docprep/internal/pipeline"
)

// Preprocessor applies the stage pipeline to documents. It holds no state
// across documents and is safe for concurrent use.
type Preprocessor struct {
	localizer   *pipeline.ImageLocalizer
	skip        []string
	assetPrefix string
}

// NewPreprocessor creates a Preprocessor. Returns ErrUnknownStage for an
// unknown skipped stage and ErrInvalidOption for out-of-range values.
func NewPreprocessor(opts ...Option) (*Preprocessor, error) {
	cfg := preprocessorConfig{
		timeout:     pipeline.DefaultFetchTimeout,
		assetPrefix: pipeline.DefaultAssetPrefix,
		maxBytes:    pipeline.DefaultMaxImageBytes,
		userAgent:   pipeline.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := pipeline.ValidateStageNames(cfg.skip); err != nil {
		return nil, err
	}
	if cfg.timeout <= 0 {
		return nil, fmt.Errorf("%w: fetch timeout must be positive, got %s", ErrInvalidOption, cfg.timeout)
	}
	if cfg.maxBytes <= 0 {
		return nil, fmt.Errorf("%w: max image bytes must be positive, got %d", ErrInvalidOption, cfg.maxBytes)
	}
	prefix := strings.Trim(cfg.assetPrefix, "/")
	if prefix == "" || path.Clean(prefix) != prefix || strings.HasPrefix(prefix, "..") {
		return nil, fmt.Errorf("%w: asset prefix %q must be a clean relative path", ErrInvalidOption, cfg.assetPrefix)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Preprocessor{
		localizer: pipeline.NewImageLocalizer(pipeline.LocalizerConfig{
			Client:      cfg.client,
			Timeout:     cfg.timeout,
			MaxBytes:    cfg.maxBytes,
			UserAgent:   cfg.userAgent,
			AssetPrefix: prefix,
			Logger:      cfg.logger,

			OnFetchError: cfg.onFetchErr,
		}),
		skip:        cfg.skip,
		assetPrefix: prefix,
	}, nil
}

// Process runs every enabled stage over doc. Images are stored in assetDir.
// When ctx is canceled, the stages not yet started are skipped.
func (p *Preprocessor) Process(ctx context.Context, doc Document, assetDir string) Document {
	pl := pipeline.New(pipeline.Default(p.localizer, assetDir), p.skip...)
	return Document{Name: doc.Name, Content: pl.Process(ctx, doc.Content)}
}

// Stages returns the names of the stages that run, in order.
func (p *Preprocessor) Stages() []string {
	return pipeline.New(pipeline.Default(p.localizer, ""), p.skip...).Names()
}

// AssetPrefix returns the relative asset path, e.g. "_static/laravel".
func (p *Preprocessor) AssetPrefix() string {
	return p.assetPrefix
}
