package pipeline

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/funvibe/rush/internal/ast"
	"github.com/funvibe/rush/internal/token"
	"github.com/funvibe/rush/internal/value"
)

// PipelineContext carries one expression through the stages that lex,
// parse and evaluate it.
type PipelineContext struct {
	SourceCode string
	Tokens     []token.Token
	AstRoot    ast.Expression
	Result     value.Value
	Errors     []error
}

func NewContext(source string) *PipelineContext {
	return &PipelineContext{SourceCode: source}
}

// Err joins every error collected by the stages, or returns nil.
func (c *PipelineContext) Err() error {
	return errors.Join(c.Errors...)
}

type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// ProcessorFunc adapts a plain function to a Processor.
type ProcessorFunc func(ctx *PipelineContext) *PipelineContext

func (f ProcessorFunc) Process(ctx *PipelineContext) *PipelineContext { return f(ctx) }

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. A stage that reports errors stops it, since
// later stages depend on the output of earlier ones.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		if len(ctx.Errors) > 0 {
			slog.Debug("pipeline stage failed",
				slog.String("stage", fmt.Sprintf("%T", processor)),
				slog.Int("errors", len(ctx.Errors)))
			break
		}
	}
	return ctx
}
