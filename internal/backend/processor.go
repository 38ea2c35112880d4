package backend

import (
	"github.com/funvibe/rush/internal/evaluator"
	"github.com/funvibe/rush/internal/pipeline"
)

// ExecutionProcessor is the pipeline stage that evaluates the parsed
// expression in Scope and stores the outcome in the context.
type ExecutionProcessor struct {
	Backend Backend
	Scope   *evaluator.Context
}

// NewExecutionProcessor creates a pipeline stage running b in scope.
func NewExecutionProcessor(b Backend, scope *evaluator.Context) *ExecutionProcessor {
	return &ExecutionProcessor{Backend: b, Scope: scope}
}

func (p *ExecutionProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// Nothing to run when an earlier stage failed.
	if ctx.AstRoot == nil || len(ctx.Errors) > 0 {
		return ctx
	}

	result, err := p.Backend.Run(ctx, p.Scope)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.Result = result
	return ctx
}
