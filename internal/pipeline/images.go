package pipeline

import (
	"context"
	"crypto/md5" // #nosec G501 -- names files after URLs, not a security boundary
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DefaultAssetPrefix is the relative path rewritten image references point to.
const DefaultAssetPrefix = "_static/laravel"

var (
	// <img ... src="...">
	imgSrcPattern = regexp.MustCompile(`<img[^>]+src="([^"]+)"`)

	// Any <img ...> tag, self-closed or not.
	imgTagPattern = regexp.MustCompile(`<img[^>]*>`)
)

// LocalizerConfig configures an ImageLocalizer. Zero values take defaults.
type LocalizerConfig struct {
	Client      *http.Client
	Timeout     time.Duration
	MaxBytes    int64
	UserAgent   string
	AssetPrefix string
	Logger      *slog.Logger

	// OnFetchError, when set, is called for every failed download. It may be
	// called from several goroutines at once.
	OnFetchError func(rawURL string, err error)
}

// ImageLocalizer downloads remote <img> sources into an asset directory and
// rewrites the references to the local copies.
type ImageLocalizer struct {
	fetcher *fetcher
	prefix  string
	logger  *slog.Logger
	onError func(rawURL string, err error)
}

// NewImageLocalizer creates an ImageLocalizer from cfg.
func NewImageLocalizer(cfg LocalizerConfig) *ImageLocalizer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultFetchTimeout
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxImageBytes
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.AssetPrefix == "" {
		cfg.AssetPrefix = DefaultAssetPrefix
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &ImageLocalizer{
		fetcher: &fetcher{
			client:    cfg.Client,
			timeout:   cfg.Timeout,
			maxBytes:  cfg.MaxBytes,
			userAgent: cfg.UserAgent,
		},
		prefix:  strings.TrimSuffix(cfg.AssetPrefix, "/"),
		logger:  cfg.Logger,
		onError: cfg.OnFetchError,
	}
}

// Localize rewrites the <img> tags of content:
//   - every tag not ending in "/>" is self-closed (only when a src was found);
//   - each distinct https:// src is fetched once into assetDir and all of its
//     occurrences are replaced with "<prefix>/<filename>".
//
// A failed fetch is logged and leaves that URL untouched. Other schemes and
// relative sources are never fetched.
func (l *ImageLocalizer) Localize(ctx context.Context, content, assetDir string) string {
	matches := imgSrcPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return content
	}

	content = selfCloseImgTags(content)

	for _, rawURL := range uniqueSources(matches) {
		if ctx.Err() != nil {
			break
		}
		if !strings.HasPrefix(rawURL, "https://") {
			continue
		}

		name := AssetFilename(rawURL)

		dest := filepath.Join(assetDir, name)
		localSrc := l.prefix + "/" + name
		l.logger.Info("downloading image", "url", rawURL, "dest", localSrc)

		if err := l.fetcher.fetch(ctx, rawURL, dest); err != nil {
			l.logger.Warn("image download failed, keeping remote URL", "url", rawURL, "error", err)
			if l.onError != nil {
				l.onError(rawURL, err)
			}
			continue
		}

		content = strings.ReplaceAll(content, rawURL, localSrc)
	}

	return content
}

// Stage binds the localizer to assetDir for use in a Pipeline.
func (l *ImageLocalizer) Stage(assetDir string) Stage {
	return localizeStage{localizer: l, assetDir: assetDir}
}

type localizeStage struct {
	localizer *ImageLocalizer
	assetDir  string
}

func (s localizeStage) Name() string { return StageImages }

func (s localizeStage) Process(ctx context.Context, content string) string {
	return s.localizer.Localize(ctx, content, s.assetDir)
}

// AssetFilename derives the local file name for an image URL: the last
// segment of its path as written, or img_ + 10 hex chars of the URL's MD5
// when that segment is empty, "." or "..". Percent escapes and non-ASCII
// characters are kept verbatim.
func AssetFilename(rawURL string) string {
	p := rawPath(rawURL)
	name := p[strings.LastIndex(p, "/")+1:]
	if name == "" || name == "." || name == ".." {
		sum := md5.Sum([]byte(rawURL)) // #nosec G401 -- see import
		name = "img_" + hex.EncodeToString(sum[:])[:10]
	}
	return name
}

// rawPath returns the path of rawURL without scheme, authority, query and
// fragment, untouched by any unescaping.
func rawPath(rawURL string) string {
	rest, _, _ := strings.Cut(rawURL, "#")
	rest, _, _ = strings.Cut(rest, "?")
	if _, after, ok := strings.Cut(rest, "://"); ok {
		rest = after
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			return rest[i:]
		}
		return ""
	}
	return rest
}

// selfCloseImgTags rewrites <img ...> as <img ... />, leaving tags that
// already end in "/>" alone.
func selfCloseImgTags(content string) string {
	return imgTagPattern.ReplaceAllStringFunc(content, func(tag string) string {
		if strings.HasSuffix(tag, "/>") {
			return tag
		}
		return tag[:len(tag)-1] + " />"
	})
}

// uniqueSources returns the captured src values in first-seen order.
func uniqueSources(matches [][]string) []string {
	seen := make(map[string]bool, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		out = append(out, m[1])
	}
	return out
}
