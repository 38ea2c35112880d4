// Package evaluator evaluates expression trees against a Context.
//
// Every node evaluates to exactly one value or fails with an error that
// is returned unmodified to the caller. Binary chains are reduced here
// as well, including the short-circuit and assignment protocols.
package evaluator

import (
	"github.com/funvibe/rush/internal/ast"
	"github.com/funvibe/rush/internal/value"
)

// Evaluator evaluates nodes and invokes function values. It holds no
// per-run state, so one Evaluator may serve any number of contexts.
type Evaluator struct{}

var _ value.Caller = (*Evaluator)(nil)

func New() *Evaluator {
	return &Evaluator{}
}

// Eval evaluates node in ctx.
func (e *Evaluator) Eval(node ast.Expression, ctx *Context) (value.Value, error) {
	switch node := node.(type) {
	case *ast.Scalar:
		return e.evalScalar(node, ctx), nil
	case *ast.ArrayLiteral:
		return e.evalArray(node, ctx)
	case *ast.ObjectLiteral:
		return e.evalObject(node, ctx)
	case *ast.UnaryOp:
		arg, err := e.Eval(node.Arg, ctx)
		if err != nil {
			return nil, err
		}
		return Unary(node.Op, arg)
	case *ast.BinaryOp:
		if node.Assoc == ast.Right {
			return e.evalRightAssoc(node, ctx)
		}
		return e.evalLeftAssoc(node, ctx)
	case *ast.CurriedBinaryOp:
		return e.evalCurried(node, ctx)
	case *ast.Subscript:
		return e.evalSubscript(node, ctx)
	case *ast.FunctionCall:
		return e.evalCall(node, ctx)
	case *ast.Conditional:
		return e.evalConditional(node, ctx)
	case nil:
		return nil, value.Errorf(value.ReasonGeneric, "cannot evaluate an empty expression")
	}
	return nil, value.Errorf(value.ReasonGeneric, "unknown node type %T", node)
}

// evalScalar resolves symbols. An unbound symbol stands for the string
// of its own name.
func (e *Evaluator) evalScalar(node *ast.Scalar, ctx *Context) value.Value {
	sym, ok := node.Value.(value.Symbol)
	if !ok {
		return node.Value
	}
	if v, ok := ctx.Resolve(string(sym)); ok {
		return v
	}
	return value.String(sym)
}

func (e *Evaluator) evalArray(node *ast.ArrayLiteral, ctx *Context) (value.Value, error) {
	elems := make(value.Array, 0, len(node.Elements))
	for _, el := range node.Elements {
		v, err := e.Eval(el, ctx)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return elems, nil
}

func (e *Evaluator) evalObject(node *ast.ObjectLiteral, ctx *Context) (value.Value, error) {
	obj := value.NewObject()
	for _, attr := range node.Attributes {
		k, err := e.Eval(attr.Key, ctx)
		if err != nil {
			return nil, err
		}
		v, err := e.Eval(attr.Value, ctx)
		if err != nil {
			return nil, err
		}
		key, ok := k.(value.String)
		if !ok {
			return nil, value.NewMismatchError("{}", [][]string{{"string", "any"}}, k, v)
		}
		obj.Set(string(key), v)
	}
	return obj, nil
}

// evalCurried turns an operator reference like (+), (2 *) or (/ 2) into
// a function value.
func (e *Evaluator) evalCurried(node *ast.CurriedBinaryOp, ctx *Context) (value.Value, error) {
	if !isCurriable(node.Op) {
		return nil, value.Errorf(value.ReasonUnknownOperator, "operator `%s` cannot be curried", node.Op)
	}
	var left, right value.Value
	var err error
	if node.Left != nil {
		if left, err = e.Eval(node.Left, ctx); err != nil {
			return nil, err
		}
	}
	if node.Right != nil {
		if right, err = e.Eval(node.Right, ctx); err != nil {
			return nil, err
		}
	}
	if left != nil && right != nil {
		return nil, value.Errorf(value.ReasonGeneric, "operator `%s` cannot have both operands curried", node.Op)
	}
	return value.NewOperator(node.Op, left, right), nil
}

func (e *Evaluator) evalConditional(node *ast.Conditional, ctx *Context) (value.Value, error) {
	cond, err := e.Eval(node.Cond, ctx)
	if err != nil {
		return nil, err
	}
	ok, err := value.Truthy(cond)
	if err != nil {
		return nil, err
	}
	if ok {
		return e.Eval(node.Then, ctx)
	}
	return e.Eval(node.Else, ctx)
}
