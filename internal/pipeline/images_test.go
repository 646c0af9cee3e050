package pipeline

// Notes:
// - Fetch tests use httptest TLS servers and the server's own client, since only
//   https:// sources are downloaded
// - The timeout test blocks the handler on the request context so the server
//   can shut down once the client gives up

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestLocalizer(t *testing.T, srv *httptest.Server, cfg LocalizerConfig) *ImageLocalizer {
	t.Helper()
	cfg.Client = srv.Client()
	return NewImageLocalizer(cfg)
}

// ---------------------------------------------------------------------------
// TestLocalize - Download and rewrite
// ---------------------------------------------------------------------------

func TestLocalize_DuplicateURLFetchedOnce(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("PNGDATA"))
	}))
	defer srv.Close()

	assetDir := t.TempDir()
	l := newTestLocalizer(t, srv, LocalizerConfig{})
	src := srv.URL + "/img/logo.png"
	tag := `<img src="` + src + `">`
	input := tag + "\n" + tag + "\n" + tag + "\n"

	got := l.Localize(context.Background(), input, assetDir)

	if n := hits.Load(); n != 1 {
		t.Errorf("server hits = %d, want 1", n)
	}
	want := strings.Repeat(`<img src="_static/laravel/logo.png" />`+"\n", 3)
	if got != want {
		t.Errorf("Localize() = %q, want %q", got, want)
	}
	data, err := os.ReadFile(filepath.Join(assetDir, "logo.png"))
	if err != nil {
		t.Fatalf("reading asset: %v", err)
	}
	if string(data) != "PNGDATA" {
		t.Errorf("asset content = %q, want %q", data, "PNGDATA")
	}
}

func TestLocalize_UserAgentAndPrefix(t *testing.T) {
	t.Parallel()

	var gotUA atomic.Value
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA.Store(r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	l := newTestLocalizer(t, srv, LocalizerConfig{UserAgent: "docs-bot/1.0", AssetPrefix: "static/img/"})
	got := l.Localize(context.Background(), `<img alt="a" src="`+srv.URL+`/a.svg" />`, t.TempDir())

	if want := `<img alt="a" src="static/img/a.svg" />`; got != want {
		t.Errorf("Localize() = %q, want %q", got, want)
	}
	if ua, _ := gotUA.Load().(string); ua != "docs-bot/1.0" {
		t.Errorf("User-Agent = %q, want %q", ua, "docs-bot/1.0")
	}
}

func TestLocalize_NamesAsWritten(t *testing.T) {
	t.Parallel()

	var paths sync.Map
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths.Store(r.URL.Path, true)
		_, _ = w.Write([]byte("IMG"))
	}))
	defer srv.Close()

	assetDir := t.TempDir()
	l := newTestLocalizer(t, srv, LocalizerConfig{})
	input := `<img src="` + srv.URL + `/img/日本.png" />` + "\n" +
		`<img src="` + srv.URL + `/img/a%zz.png" />` + "\n"

	got := l.Localize(context.Background(), input, assetDir)

	want := `<img src="_static/laravel/日本.png" />` + "\n" +
		`<img src="_static/laravel/a%zz.png" />` + "\n"
	if got != want {
		t.Errorf("Localize() = %q, want %q", got, want)
	}
	for _, name := range []string{"日本.png", "a%zz.png"} {
		if _, err := os.Stat(filepath.Join(assetDir, name)); err != nil {
			t.Errorf("asset %q not written: %v", name, err)
		}
	}
	for _, p := range []string{"/img/日本.png", "/img/a%zz.png"} {
		if _, ok := paths.Load(p); !ok {
			t.Errorf("server never saw path %q", p)
		}
	}
}

// ---------------------------------------------------------------------------
// TestLocalize - Failures leave references untouched
// ---------------------------------------------------------------------------

func TestLocalize_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		cfg     LocalizerConfig
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(5 * time.Second):
				}
			},
			cfg: LocalizerConfig{Timeout: 50 * time.Millisecond},
		},
		{
			name: "body over size cap",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(strings.Repeat("a", 100)))
			},
			cfg: LocalizerConfig{MaxBytes: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewTLSServer(tt.handler)
			defer srv.Close()

			var reported []string
			cfg := tt.cfg
			cfg.OnFetchError = func(rawURL string, err error) {
				if err == nil {
					t.Error("OnFetchError called with nil error")
				}
				reported = append(reported, rawURL)
			}

			assetDir := t.TempDir()
			l := newTestLocalizer(t, srv, cfg)
			src := srv.URL + "/broken.png"

			got := l.Localize(context.Background(), `<img src="`+src+`">`, assetDir)

			if want := `<img src="` + src + `" />`; got != want {
				t.Errorf("Localize() = %q, want %q", got, want)
			}
			entries, err := os.ReadDir(assetDir)
			if err != nil {
				t.Fatalf("ReadDir: %v", err)
			}
			if len(entries) != 0 {
				t.Errorf("asset dir has %d entries, want 0", len(entries))
			}
			if len(reported) != 1 || reported[0] != src {
				t.Errorf("OnFetchError calls = %v, want [%s]", reported, src)
			}
		})
	}
}

func TestLocalize_NonHTTPSNotFetched(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	l := newTestLocalizer(t, srv, LocalizerConfig{})
	input := `<img src="http://example.com/a.png"><img src="images/b.png">`

	got := l.Localize(context.Background(), input, t.TempDir())

	want := `<img src="http://example.com/a.png" /><img src="images/b.png" />`
	if got != want {
		t.Errorf("Localize() = %q, want %q", got, want)
	}
	if n := hits.Load(); n != 0 {
		t.Errorf("server hits = %d, want 0", n)
	}
}

func TestLocalize_NoSourceLeavesTagsAlone(t *testing.T) {
	t.Parallel()

	l := NewImageLocalizer(LocalizerConfig{})
	input := "<img alt=\"no source\">\ntext"

	if got := l.Localize(context.Background(), input, t.TempDir()); got != input {
		t.Errorf("Localize() = %q, want unchanged %q", got, input)
	}
}

// ---------------------------------------------------------------------------
// TestFetchError
// ---------------------------------------------------------------------------

func TestFetchError(t *testing.T) {
	t.Parallel()

	err := error(&FetchError{URL: "https://x/a.png", StatusCode: 404, Err: ErrUnexpectedStatus})

	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Error("errors.Is(err, ErrUnexpectedStatus) = false, want true")
	}
	var fe *FetchError
	if !errors.As(err, &fe) || fe.StatusCode != 404 {
		t.Errorf("errors.As() status = %v, want 404", fe)
	}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "https://x/a.png") {
		t.Errorf("Error() = %q, want URL and status", err.Error())
	}
}

// ---------------------------------------------------------------------------
// TestAssetFilename
// ---------------------------------------------------------------------------

func TestAssetFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		url      string
		expected string
		hashed   bool
	}{
		{name: "last segment", url: "https://laravel.com/img/docs/sail.png", expected: "sail.png"},
		{name: "query ignored", url: "https://cdn.example.com/a/b.jpg?v=3", expected: "b.jpg"},
		{name: "escaped segment kept", url: "https://example.com/my%20image.png", expected: "my%20image.png"},
		{name: "non-ascii segment as written", url: "https://example.com/img/日本.png", expected: "日本.png"},
		{name: "space as written", url: "https://example.com/img/my image.png", expected: "my image.png"},
		{name: "invalid escape kept", url: "https://example.com/img/a%zz.png", expected: "a%zz.png"},
		{name: "fragment ignored", url: "https://example.com/img/c.gif#top", expected: "c.gif"},
		{name: "dot segment hashed", url: "https://example.com/img/..", hashed: true},
		{name: "trailing slash hashed", url: "https://example.com/images/", hashed: true},
		{name: "host only hashed", url: "https://example.com", hashed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := AssetFilename(tt.url)
			if !tt.hashed {
				if got != tt.expected {
					t.Errorf("AssetFilename() = %q, want %q", got, tt.expected)
				}
				return
			}
			if !strings.HasPrefix(got, "img_") || len(got) != len("img_")+10 {
				t.Errorf("AssetFilename() = %q, want img_ + 10 hex chars", got)
			}
			if again := AssetFilename(tt.url); again != got {
				t.Errorf("AssetFilename() not stable: %q vs %q", got, again)
			}
		})
	}
}
