package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alnah/go-docprep/internal/fileutil"
)

// Fetch defaults.
const (
	DefaultFetchTimeout  = 10 * time.Second
	DefaultMaxImageBytes = 32 << 20
	DefaultUserAgent     = "go-docprep"
)

// assetPermissions: rw-r--r--, images are meant to be served.
const assetPermissions = 0o644

// Sentinel errors wrapped by FetchError.
var (
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	ErrBodyTooLarge     = errors.New("response body exceeds size limit")
)

// FetchError reports a failed image download. StatusCode is 0 when no
// response was received (DNS, TLS, timeout, connection reset).
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: %v: %d", e.URL, e.Err, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// fetcher downloads a URL to a file in a single timeout-bounded attempt.
type fetcher struct {
	client    *http.Client
	timeout   time.Duration
	maxBytes  int64
	userAgent string
}

// fetch GETs rawURL and stores the body at dest. The body is written through
// a temporary file, so dest only appears once the whole body has arrived.
func (f *fetcher) fetch(ctx context.Context, rawURL, dest string) error {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL(rawURL), nil)
	if err != nil {
		return &FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return &FetchError{URL: rawURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{URL: rawURL, StatusCode: resp.StatusCode, Err: ErrUnexpectedStatus}
	}

	body := &cappedReader{r: resp.Body, max: f.maxBytes}
	if _, err := fileutil.WriteReaderAtomic(dest, body, assetPermissions); err != nil {
		return &FetchError{URL: rawURL, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

// requestURL escapes stray '%' characters that do not start a valid escape
// as %25, so a URL such as https://host/a%zz.png can still be requested.
func requestURL(rawURL string) string {
	if _, err := url.Parse(rawURL); err == nil {
		return rawURL
	}
	var b strings.Builder
	for i := 0; i < len(rawURL); i++ {
		if rawURL[i] == '%' && (i+2 >= len(rawURL) || !isHex(rawURL[i+1]) || !isHex(rawURL[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(rawURL[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// cappedReader fails with ErrBodyTooLarge once more than max bytes were read.
type cappedReader struct {
	r    io.Reader
	read int64
	max  int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.read += int64(n)
	if c.read > c.max {
		return n, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, c.max)
	}
	return n, err
}
