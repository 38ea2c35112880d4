package value

import (
	"fmt"

	"github.com/funvibe/rush/internal/config"
)

// BuiltinFunc is the body of a builtin function. It receives exactly
// as many arguments as the builtin's declared arity.
type BuiltinFunc func(c Caller, args []Value) (Value, error)

// Caller invokes function values. Builtins taking functions as arguments
// (map, filter, ...) use it to call back into the evaluator.
type Caller interface {
	Call(f *Function, args ...Value) (Value, error)
}

// FunctionKind tells where a function value came from.
type FunctionKind int

const (
	BuiltinFunction FunctionKind = iota
	OperatorFunction
	ComposedFunction
)

// Function is a callable value: a named builtin with some leading
// arguments bound, a binary operator with an optional bound operand
// on either side, or the composition of two unary functions.
//
// Functions are immutable. Curry and ComposeWith return new values.
type Function struct {
	kind FunctionKind
	name string

	// builtin
	arity int
	body  BuiltinFunc

	// operator; nil when the side is unbound
	left, right Value

	// composition: outer(inner(x))
	outer, inner *Function

	// arguments bound to a builtin or a composition
	bound []Value
}

// NewBuiltin returns a builtin function of the given native arity.
func NewBuiltin(name string, arity int, body BuiltinFunc) *Function {
	return &Function{kind: BuiltinFunction, name: name, arity: arity, body: body}
}

// NewOperator returns binary operator op as a function value.
// Either operand may be nil to leave it unbound.
func NewOperator(op string, left, right Value) *Function {
	return &Function{kind: OperatorFunction, name: op, left: left, right: right}
}

func (f *Function) TypeName() string { return config.FunctionTypeName }
func (f *Function) Inspect() string {
	switch f.kind {
	case OperatorFunction:
		s := f.name
		if f.left != nil {
			s = f.left.Inspect() + " " + s
		}
		if f.right != nil {
			s = s + " " + f.right.Inspect()
		}
		return "<function (" + s + ")>"
	case ComposedFunction:
		return fmt.Sprintf("<function %s . %s>", f.outer.Name(), f.inner.Name())
	default:
		return "<function " + f.name + ">"
	}
}
func (*Function) value() {}

// Kind reports the origin of the function.
func (f *Function) Kind() FunctionKind { return f.kind }

// Name is the builtin name or operator symbol. Compositions are named
// after their parts.
func (f *Function) Name() string {
	if f.kind == ComposedFunction {
		return f.outer.Name() + " . " + f.inner.Name()
	}
	return f.name
}

// Arity reports how many arguments remain to be supplied.
func (f *Function) Arity() int {
	switch f.kind {
	case OperatorFunction:
		n := 2
		if f.left != nil {
			n--
		}
		if f.right != nil {
			n--
		}
		return n
	case ComposedFunction:
		return 1 - len(f.bound)
	default:
		return f.arity - len(f.bound)
	}
}

// Curry binds one more argument. It fails when no argument remains.
func (f *Function) Curry(arg Value) (*Function, bool) {
	if f.Arity() < 1 {
		return nil, false
	}
	c := *f
	if f.kind == OperatorFunction {
		if c.left == nil {
			c.left = arg
		} else {
			c.right = arg
		}
		return &c, true
	}
	c.bound = append(append([]Value(nil), f.bound...), arg)
	return &c, true
}

// ComposeWith returns x -> f(g(x)). Both functions must be unary.
func (f *Function) ComposeWith(g *Function) (*Function, bool) {
	if f.Arity() != 1 || g.Arity() != 1 {
		return nil, false
	}
	return &Function{kind: ComposedFunction, outer: f, inner: g}, true
}

// Body returns the Go implementation of a builtin.
func (f *Function) Body() BuiltinFunc { return f.body }

// Bound returns the arguments already bound to a builtin or composition.
func (f *Function) Bound() []Value { return f.bound }

// Operands returns the bound operands of an operator function.
func (f *Function) Operands() (left, right Value) { return f.left, f.right }

// Parts returns the outer and inner functions of a composition.
func (f *Function) Parts() (outer, inner *Function) { return f.outer, f.inner }

// CallName renders the function the way diagnostics name an operation:
// len() for builtins, `+` for operators.
func (f *Function) CallName() string { return displayOperation(f.Name()) }
