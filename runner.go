package docprep

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-docprep/internal/fileutil"
	"github.com/alnah/go-docprep/internal/linkcheck"
)

// Permissions for created outputs: rwxr-xr-x directories, rw-r--r-- files.
const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

// Runner processes every Markdown file of a source directory into an
// output directory.
type Runner struct {
	p          *Preprocessor
	workers    int
	checkLinks bool
	logger     *slog.Logger
	checker    *linkcheck.Checker
}

// NewRunner creates a Runner around p.
func NewRunner(p *Preprocessor, opts ...RunnerOption) *Runner {
	r := &Runner{
		p:       p,
		workers: 1,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		checker: linkcheck.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes each regular *.md file directly inside sourceDir, in name
// order, writing results under the same names in outputDir. Images go to
// outputDir/<asset prefix>.
//
// Returns an error only when the run cannot start: ErrSourceNotFound,
// ErrReadDocument for an unlistable source, ErrWriteDocument when the
// output directories cannot be created. Per-file failures are reported in
// Report.Results and do not stop the other files.
func (r *Runner) Run(ctx context.Context, sourceDir, outputDir string) (*Report, error) {
	if !fileutil.DirExists(sourceDir) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, sourceDir)
	}

	names, err := ListDocuments(sourceDir)
	if err != nil {
		return nil, err
	}

	if _, err := r.prepareOutput(outputDir); err != nil {
		return nil, err
	}

	r.logger.Info("starting run", "source", sourceDir, "output", outputDir, "documents", len(names), "workers", r.workers)

	results := make([]FileResult, len(names))
	docs := make([]Document, len(names))
	jobs := make(chan int)

	workers := min(r.workers, len(names))
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], docs[i] = r.processFile(ctx, sourceDir, outputDir, names[i])
			}
		}()
	}

	for i := range names {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	report := &Report{Results: results}
	if r.checkLinks {
		report.DanglingLinks = r.danglingLinks(results, docs)
	}

	r.logger.Info("run finished", "processed", report.Succeeded(), "failed", report.Failed())
	return report, nil
}

// ProcessFile processes the single file name of sourceDir into outputDir.
func (r *Runner) ProcessFile(ctx context.Context, sourceDir, outputDir, name string) FileResult {
	res, _ := r.processFile(ctx, sourceDir, outputDir, name)
	return res
}

func (r *Runner) processFile(ctx context.Context, sourceDir, outputDir, name string) (FileResult, Document) {
	start := time.Now()
	res := FileResult{
		Name:       name,
		SourcePath: filepath.Join(sourceDir, name),
		OutputPath: filepath.Join(outputDir, name),
	}
	finish := func(err error) (FileResult, Document) {
		res.Err = err
		res.Duration = time.Since(start)
		if err != nil {
			r.logger.Error("document failed", "name", name, "error", err)
		}
		return res, Document{}
	}

	if err := ctx.Err(); err != nil {
		return finish(err)
	}

	assetDir, err := r.prepareOutput(outputDir)
	if err != nil {
		return finish(err)
	}

	data, err := os.ReadFile(res.SourcePath) // #nosec G304 -- path built from a listed source entry
	if err != nil {
		return finish(fmt.Errorf("%w: %v", ErrReadDocument, err))
	}
	content, err := decodeDocument(data)
	if err != nil {
		return finish(fmt.Errorf("%w: %s: %v", ErrReadDocument, name, err))
	}

	r.logger.Info("processing document", "name", name)
	doc := r.p.Process(ctx, Document{Name: name, Content: content}, assetDir)

	// A canceled run must not leave a partially processed document behind.
	if err := ctx.Err(); err != nil {
		return finish(err)
	}

	if err := fileutil.WriteFileAtomic(res.OutputPath, []byte(doc.Content), filePermissions); err != nil {
		return finish(fmt.Errorf("%w: %v", ErrWriteDocument, err))
	}

	res.Duration = time.Since(start)
	r.logger.Debug("wrote document", "name", name, "output", res.OutputPath, "duration", res.Duration)
	return res, doc
}

// prepareOutput creates outputDir and its asset directory, returning the latter.
func (r *Runner) prepareOutput(outputDir string) (string, error) {
	assetDir := filepath.Join(outputDir, filepath.FromSlash(r.p.AssetPrefix()))
	if err := os.MkdirAll(assetDir, dirPermissions); err != nil {
		return "", fmt.Errorf("%w: creating %s: %v", ErrWriteDocument, assetDir, err)
	}
	return assetDir, nil
}

func (r *Runner) danglingLinks(results []FileResult, docs []Document) []DanglingLink {
	written := make(map[string]string, len(docs))
	for i, res := range results {
		if res.Err == nil {
			written[res.Name] = docs[i].Content
		}
	}
	return r.checker.Check(written)
}

// ListDocuments returns the names of the regular *.md files directly inside
// dir, sorted. Symlinks to regular files count; subdirectories are not read.
func ListDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %v", ErrReadDocument, dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
