package lexer

import (
	"github.com/funvibe/rush/internal/pipeline"
)

// LexerProcessor fills the token stream. Illegal input ends the stream
// with an ILLEGAL token, which the parser reports with its position.
type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.Tokens = Tokenize(ctx.SourceCode)
	return ctx
}
