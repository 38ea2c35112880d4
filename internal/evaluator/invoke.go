package evaluator

import (
	"log/slog"

	"github.com/funvibe/rush/internal/ast"
	"github.com/funvibe/rush/internal/value"
)

func (e *Evaluator) evalCall(node *ast.FunctionCall, ctx *Context) (value.Value, error) {
	callee, err := e.Eval(node.Func, ctx)
	if err != nil {
		return nil, err
	}
	f, ok := callee.(*value.Function)
	if !ok {
		return nil, value.Invalid("()", callee)
	}
	args := make([]value.Value, 0, len(node.Args))
	for _, a := range node.Args {
		v, err := e.Eval(a, ctx)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return e.Call(f, args...)
}

// Call invokes f with exactly Arity() arguments. All but the last are
// curried one at a time; the last one is applied with Invoke1.
func (e *Evaluator) Call(f *value.Function, args ...value.Value) (value.Value, error) {
	slog.Debug("function call",
		slog.String("function", f.Name()),
		slog.Int("argument-count", len(args)))

	if f.Arity() != len(args) {
		return nil, value.Errorf(value.ReasonArity, "%s takes %d argument(s) but %d given", f.CallName(), f.Arity(), len(args))
	}
	if len(args) == 0 {
		return e.saturate(f)
	}
	for _, arg := range args[:len(args)-1] {
		g, ok := f.Curry(arg)
		if !ok {
			return nil, value.Errorf(value.ReasonArity, "cannot curry %s", f.CallName())
		}
		f = g
	}
	return e.Invoke1(f, args[len(args)-1])
}

// Invoke1 applies a unary function to its argument.
func (e *Evaluator) Invoke1(f *value.Function, arg value.Value) (value.Value, error) {
	if f.Arity() != 1 {
		return nil, value.Errorf(value.ReasonArity, "%s takes %d argument(s) but 1 given", f.CallName(), f.Arity())
	}
	g, _ := f.Curry(arg)
	return e.saturate(g)
}

// saturate runs a function whose arguments are all bound.
func (e *Evaluator) saturate(f *value.Function) (value.Value, error) {
	switch f.Kind() {
	case value.BuiltinFunction:
		return f.Body()(e, f.Bound())
	case value.OperatorFunction:
		left, right := f.Operands()
		return e.Apply(f.Name(), left, right)
	case value.ComposedFunction:
		outer, inner := f.Parts()
		mid, err := e.Invoke1(inner, f.Bound()[0])
		if err != nil {
			return nil, err
		}
		return e.Invoke1(outer, mid)
	}
	return nil, value.Errorf(value.ReasonGeneric, "unknown function kind %d", f.Kind())
}
