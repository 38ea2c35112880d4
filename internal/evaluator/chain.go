package evaluator

import (
	"github.com/funvibe/rush/internal/ast"
	"github.com/funvibe/rush/internal/config"
	"github.com/funvibe/rush/internal/value"
)

// flow tells a chain reduction whether to go on after a short-circuit
// operator.
type flow int

const (
	proceed flow = iota
	stop
)

// operand is an argument of a short-circuit operator: either a value
// computed earlier or an expression nobody has evaluated yet. Operands
// are passed by value and each protocol step forces an operand at most
// once.
type operand struct {
	val  value.Value
	expr ast.Expression
}

func evaluated(v value.Value) operand     { return operand{val: v} }
func pending(expr ast.Expression) operand { return operand{expr: expr} }

func (o operand) force(e *Evaluator, ctx *Context) (value.Value, error) {
	if o.expr == nil {
		return o.val, nil
	}
	return e.Eval(o.expr, ctx)
}

// evalLeftAssoc folds a OP b OP c as (a OP b) OP c.
func (e *Evaluator) evalLeftAssoc(node *ast.BinaryOp, ctx *Context) (value.Value, error) {
	acc, err := e.Eval(node.First, ctx)
	if err != nil {
		return nil, err
	}
	for _, link := range node.Rest {
		if config.IsShortCircuitOp(link.Op) {
			var f flow
			acc, f, err = e.shortCircuit(link.Op, evaluated(acc), pending(link.Arg), ctx)
			if err != nil {
				return nil, err
			}
			if f == stop {
				break
			}
			continue
		}
		if config.IsAssignmentOp(link.Op) {
			return nil, value.Errorf(value.ReasonAssignment, "assignment `%s` must be right-associative", link.Op)
		}
		arg, err := e.Eval(link.Arg, ctx)
		if err != nil {
			return nil, err
		}
		if acc, err = e.Apply(link.Op, acc, arg); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// evalRightAssoc folds a OP b OP c as a OP (b OP c). Rest holds the links
// in reverse source order, so the walk starts from the rightmost operand
// and each operator waits for the operand on its left.
func (e *Evaluator) evalRightAssoc(node *ast.BinaryOp, ctx *Context) (value.Value, error) {
	if len(node.Rest) == 0 {
		return e.Eval(node.First, ctx)
	}

	op := node.Rest[0].Op
	acc, err := e.Eval(node.Rest[0].Arg, ctx)
	if err != nil {
		return nil, err
	}
	for _, link := range node.Rest[1:] {
		var f flow
		acc, f, err = e.foldRight(op, link.Arg, acc, ctx)
		if err != nil {
			return nil, err
		}
		if f == stop {
			return acc, nil
		}
		op = link.Op
	}

	result, _, err := e.foldRight(op, node.First, acc, ctx)
	if err != nil {
		return nil, err
	}
	if config.IsAssignmentOp(op) {
		return value.Nil, nil
	}
	return result, nil
}

// foldRight applies op to the operand on its left and the accumulated
// right side. An assignment passes the assigned value on, so that
// a = b = c binds both names.
func (e *Evaluator) foldRight(op string, left ast.Expression, acc value.Value, ctx *Context) (value.Value, flow, error) {
	switch {
	case config.IsAssignmentOp(op):
		if err := e.assign(op, left, acc, ctx); err != nil {
			return nil, proceed, err
		}
		return acc, proceed, nil
	case config.IsShortCircuitOp(op):
		return e.shortCircuit(op, pending(left), evaluated(acc), ctx)
	}
	lv, err := e.Eval(left, ctx)
	if err != nil {
		return nil, proceed, err
	}
	v, err := e.Apply(op, lv, acc)
	return v, proceed, err
}

// assign binds the target named by lhs in the innermost scope of ctx.
// A bare symbol names itself even when it is already bound; any other
// target must evaluate to a symbol.
func (e *Evaluator) assign(op string, lhs ast.Expression, rhs value.Value, ctx *Context) error {
	var target value.Value
	if scalar, ok := lhs.(*ast.Scalar); ok {
		target = scalar.Value
	} else {
		v, err := e.Eval(lhs, ctx)
		if err != nil {
			return err
		}
		target = v
	}
	name, ok := target.(value.Symbol)
	if !ok {
		return value.Invalid(op, target, rhs)
	}
	ctx.Set(string(name), rhs)
	return nil
}

// shortCircuit runs && or || in a scope forked from ctx. Assignments are
// rejected in either operand: a binding made while forcing one shows up
// in the fork, and a skipped operand is checked for assignments it
// would have made.
func (e *Evaluator) shortCircuit(op string, left, right operand, ctx *Context) (value.Value, flow, error) {
	child := ctx.Fork()
	result, f, skipped, err := e.logical(op, left, right, child)
	if err != nil {
		return nil, proceed, err
	}
	if !child.IsEmpty() || (skipped != nil && containsAssignment(skipped)) {
		return nil, proceed, value.Errorf(value.ReasonAssignment, "assignments are not supported in this context")
	}
	return result, f, nil
}

// logical implements && and ||. When the right operand is not needed it
// is returned unevaluated as skipped.
func (e *Evaluator) logical(op string, left, right operand, ctx *Context) (value.Value, flow, ast.Expression, error) {
	lv, err := left.force(e, ctx)
	if err != nil {
		return nil, proceed, nil, err
	}
	truth, err := value.Truthy(lv)
	if err != nil {
		return nil, proceed, nil, err
	}

	var decided bool
	switch op {
	case config.AndOp:
		decided = !truth
	case config.OrOp:
		decided = truth
	default:
		return nil, proceed, nil, value.Errorf(value.ReasonUnknownOperator, "not a short-circuit operator: `%s`", op)
	}
	if decided {
		return lv, stop, right.expr, nil
	}

	rv, err := right.force(e, ctx)
	if err != nil {
		return nil, proceed, nil, err
	}
	return rv, proceed, nil, nil
}

// containsAssignment reports whether evaluating node could assign.
func containsAssignment(node ast.Expression) bool {
	switch n := node.(type) {
	case *ast.BinaryOp:
		if containsAssignment(n.First) {
			return true
		}
		for _, link := range n.Rest {
			if config.IsAssignmentOp(link.Op) || containsAssignment(link.Arg) {
				return true
			}
		}
	case *ast.ArrayLiteral:
		return anyAssignment(n.Elements...)
	case *ast.ObjectLiteral:
		for _, attr := range n.Attributes {
			if anyAssignment(attr.Key, attr.Value) {
				return true
			}
		}
	case *ast.UnaryOp:
		return containsAssignment(n.Arg)
	case *ast.CurriedBinaryOp:
		return anyAssignment(n.Left, n.Right)
	case *ast.Subscript:
		if containsAssignment(n.Object) {
			return true
		}
		switch idx := n.Index.(type) {
		case *ast.PointIndex:
			return containsAssignment(idx.Index)
		case *ast.RangeIndex:
			return anyAssignment(idx.Lo, idx.Hi)
		}
	case *ast.FunctionCall:
		return containsAssignment(n.Func) || anyAssignment(n.Args...)
	case *ast.Conditional:
		return anyAssignment(n.Cond, n.Then, n.Else)
	}
	return false
}

func anyAssignment(nodes ...ast.Expression) bool {
	for _, n := range nodes {
		if n != nil && containsAssignment(n) {
			return true
		}
	}
	return false
}
