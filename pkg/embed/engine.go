// Package rush embeds the rush expression language in Go programs.
//
//	e := rush.New()
//	e.Bind("double", func(x int) int { return x * 2 })
//	v, err := e.Eval(`double(21) + 0.5`) // 42.5
//
// An Engine keeps its bindings between calls, so variables assigned by
// one expression are visible to the next.
package rush

import (
	"fmt"
	"reflect"

	"github.com/funvibe/rush/internal/backend"
	"github.com/funvibe/rush/internal/builtins"
	"github.com/funvibe/rush/internal/evaluator"
	"github.com/funvibe/rush/internal/lexer"
	"github.com/funvibe/rush/internal/parser"
	"github.com/funvibe/rush/internal/pipeline"
	"github.com/funvibe/rush/internal/value"
)

// Engine evaluates expressions in a persistent context.
// It is not safe for concurrent use.
type Engine struct {
	scope      *evaluator.Context
	eval       *evaluator.Evaluator
	backend    backend.Backend
	marshaller *Marshaller
}

// New creates an Engine with the standard builtins.
func New() *Engine {
	return &Engine{
		scope:      evaluator.NewContext(builtins.Default()),
		eval:       evaluator.New(),
		backend:    backend.NewTreeWalk(),
		marshaller: NewMarshaller(),
	}
}

// Bind makes a Go value available to expressions under name. Functions
// become callable builtins; other values are converted with the
// Marshaller.
func (e *Engine) Bind(name string, val interface{}) error {
	var v value.Value
	var err error
	if rv := reflect.ValueOf(val); rv.Kind() == reflect.Func {
		v, err = e.marshaller.toValue(rv, name)
	} else {
		v, err = e.marshaller.ToValue(val)
	}
	if err != nil {
		return fmt.Errorf("binding %s: %w", name, err)
	}
	e.scope.Set(name, v)
	return nil
}

// Unbind removes a binding made with Bind or by an assignment.
func (e *Engine) Unbind(name string) {
	e.scope.Unset(name)
}

// Get returns the Go form of a bound variable.
func (e *Engine) Get(name string) (interface{}, error) {
	v, ok := e.scope.Get(name)
	if !ok {
		return nil, fmt.Errorf("variable '%s' not found", name)
	}
	return e.marshaller.FromValue(v, nil)
}

// Call calls a bound function or builtin by name.
func (e *Engine) Call(funcName string, args ...interface{}) (interface{}, error) {
	fv, ok := e.scope.Resolve(funcName)
	if !ok {
		return nil, fmt.Errorf("function '%s' not found", funcName)
	}
	f, ok := fv.(*value.Function)
	if !ok {
		return nil, fmt.Errorf("'%s' is a %s, not a function", funcName, fv.TypeName())
	}

	rushArgs := make([]value.Value, len(args))
	for i, arg := range args {
		v, err := e.marshaller.ToValue(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		rushArgs[i] = v
	}

	result, err := e.eval.Call(f, rushArgs...)
	if err != nil {
		return nil, err
	}
	return e.marshaller.FromValue(result, nil)
}

// Eval evaluates expr and returns its result in Go form.
func (e *Engine) Eval(expr string) (interface{}, error) {
	v, err := e.run(expr)
	if err != nil {
		return nil, err
	}
	return e.marshaller.FromValue(v, nil)
}

// EvalInto evaluates expr and stores the result in the value pointed to
// by target.
func (e *Engine) EvalInto(expr string, target interface{}) error {
	ptr := reflect.ValueOf(target)
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() {
		return fmt.Errorf("EvalInto needs a non-nil pointer, got %T", target)
	}
	v, err := e.run(expr)
	if err != nil {
		return err
	}
	rv, err := e.marshaller.fromValue(v, ptr.Elem().Type())
	if err != nil {
		return err
	}
	ptr.Elem().Set(rv)
	return nil
}

// Exec evaluates expr for its side effects, such as assignments.
func (e *Engine) Exec(expr string) error {
	_, err := e.run(expr)
	return err
}

func (e *Engine) run(expr string) (value.Value, error) {
	p := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		backend.NewExecutionProcessor(e.backend, e.scope),
	)
	ctx := p.Run(pipeline.NewContext(expr))
	if len(ctx.Errors) > 0 {
		return nil, ctx.Errors[0]
	}
	return ctx.Result, nil
}
