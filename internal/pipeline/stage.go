package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Stage names, in pipeline order.
const (
	StageImages  = "images"
	StageLinks   = "links"
	StageDiff    = "diff"
	StagePHPTags = "php-tags"
	StageTabs    = "tabs"
)

// ErrUnknownStage indicates a stage name that is not part of the pipeline.
var ErrUnknownStage = errors.New("unknown stage")

// StageNames returns every stage name in execution order.
func StageNames() []string {
	return []string{StageImages, StageLinks, StageDiff, StagePHPTags, StageTabs}
}

// ValidateStageNames returns ErrUnknownStage for the first name that is not a stage.
func ValidateStageNames(names []string) error {
	known := make(map[string]bool, 5)
	for _, n := range StageNames() {
		known[n] = true
	}
	for _, n := range names {
		if !known[n] {
			return fmt.Errorf("%w: %q (valid: %s)", ErrUnknownStage, n, strings.Join(StageNames(), ", "))
		}
	}
	return nil
}

// Stage is one text rewrite of the pipeline.
type Stage interface {
	Name() string
	Process(ctx context.Context, content string) string
}

// StageFunc adapts a pure rewrite function to the Stage interface.
type StageFunc struct {
	name string
	fn   func(string) string
}

// NewStageFunc wraps fn as a Stage called name.
func NewStageFunc(name string, fn func(string) string) StageFunc {
	return StageFunc{name: name, fn: fn}
}

// Name returns the stage name.
func (s StageFunc) Name() string { return s.name }

// Process applies the wrapped function.
func (s StageFunc) Process(_ context.Context, content string) string { return s.fn(content) }

// Pipeline runs stages in order, feeding each stage's output to the next.
type Pipeline struct {
	stages []Stage
}

// New creates a Pipeline from stages, dropping any whose name is in skip.
func New(stages []Stage, skip ...string) *Pipeline {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[s] = true
	}

	kept := make([]Stage, 0, len(stages))
	for _, s := range stages {
		if !skipped[s.Name()] {
			kept = append(kept, s)
		}
	}
	return &Pipeline{stages: kept}
}

// Default returns the five stages in their fixed order, with images
// writing into assetDir through localizer.
func Default(localizer *ImageLocalizer, assetDir string) []Stage {
	return []Stage{
		localizer.Stage(assetDir),
		NewStageFunc(StageLinks, RewriteLinks),
		NewStageFunc(StageDiff, ConvertDiffBlocks),
		NewStageFunc(StagePHPTags, NormalizePHPTags),
		NewStageFunc(StageTabs, ExpandTabs),
	}
}

// Names returns the names of the stages that will run.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Process applies every stage to content. When ctx is canceled the remaining
// stages are skipped and the text produced so far is returned.
func (p *Pipeline) Process(ctx context.Context, content string) string {
	for _, s := range p.stages {
		if ctx.Err() != nil {
			return content
		}
		content = s.Process(ctx, content)
	}
	return content
}
