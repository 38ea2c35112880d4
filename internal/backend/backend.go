// Package backend runs parsed expressions as the last stage of a
// pipeline.
package backend

import (
	"errors"

	"github.com/funvibe/rush/internal/evaluator"
	"github.com/funvibe/rush/internal/pipeline"
	"github.com/funvibe/rush/internal/value"
)

// Backend evaluates the AST held by a pipeline context.
type Backend interface {
	// Run evaluates ctx.AstRoot in scope and returns the result.
	Run(ctx *pipeline.PipelineContext, scope *evaluator.Context) (value.Value, error)

	// Name returns the backend name for display
	Name() string
}

// TreeWalk evaluates the AST directly.
type TreeWalk struct {
	eval *evaluator.Evaluator
}

func NewTreeWalk() *TreeWalk {
	return &TreeWalk{eval: evaluator.New()}
}

func (b *TreeWalk) Run(ctx *pipeline.PipelineContext, scope *evaluator.Context) (value.Value, error) {
	if ctx.AstRoot == nil {
		return nil, errors.New("no AST to evaluate")
	}
	return b.eval.Eval(ctx.AstRoot, scope)
}

func (b *TreeWalk) Name() string { return "tree-walk" }
