package parser

import (
	"github.com/funvibe/rush/internal/pipeline"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Tokens == nil {
		ctx.Errors = append(ctx.Errors, &Error{Line: 1, Column: 1, Msg: "parser: token stream is nil"})
		return ctx
	}

	p := New(ctx.Tokens)
	ctx.AstRoot = p.ParseExpression()
	ctx.Errors = append(ctx.Errors, p.Errors()...)
	return ctx
}
