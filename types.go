package docprep

import (
	"errors"
	"fmt"
	"time"

	"github.com/alnah/go-docprep/internal/linkcheck"
)

// Document is one Markdown file during a run. Name is the file name the
// output is written under.
type Document struct {
	Name    string
	Content string
}

// FileResult is the outcome of processing one file.
type FileResult struct {
	Name       string
	SourcePath string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// DanglingLink is a relative .md link whose target was not produced by the run.
type DanglingLink = linkcheck.Dangling

// Report summarizes a directory run. Results follow file name order.
type Report struct {
	Results       []FileResult
	DanglingLinks []DanglingLink
}

// Succeeded returns the number of files written.
func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of files that could not be processed.
func (r *Report) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// Err joins the per-file errors, or returns nil when every file succeeded.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Name, res.Err))
		}
	}
	return errors.Join(errs...)
}
