// Package ast defines the syntax tree of parsed expressions.
//
// Nodes are immutable and strictly tree shaped. Evaluation lives in the
// evaluator package, which switches over the closed set of node types.
package ast

import (
	"fmt"
	"strings"

	"github.com/funvibe/rush/internal/value"
)

// Expression is any node of the tree.
type Expression interface {
	// String returns a debug representation of the node.
	String() string
	expressionNode()
}

// Scalar is a literal value. Bare identifiers are Symbol scalars.
type Scalar struct {
	Value value.Value
}

// NewScalar wraps a literal value.
func NewScalar(v value.Value) *Scalar {
	return &Scalar{Value: v}
}

func (s *Scalar) expressionNode() {}
func (s *Scalar) String() string  { return fmt.Sprintf("<Atom: %s>", s.Value.Inspect()) }

// ArrayLiteral builds an array from its elements.
type ArrayLiteral struct {
	Elements []Expression
}

func (a *ArrayLiteral) expressionNode() {}
func (a *ArrayLiteral) String() string {
	return fmt.Sprintf("<Array: [%s]>", joinNodes(a.Elements, ", "))
}

// Attribute is a key/value pair of an object literal.
// Keys are expressions too; they must evaluate to strings.
type Attribute struct {
	Key   Expression
	Value Expression
}

// ObjectLiteral builds an object from attributes in source order.
type ObjectLiteral struct {
	Attributes []Attribute
}

func (o *ObjectLiteral) expressionNode() {}
func (o *ObjectLiteral) String() string {
	parts := make([]string, len(o.Attributes))
	for i, attr := range o.Attributes {
		parts[i] = attr.Key.String() + ": " + attr.Value.String()
	}
	return fmt.Sprintf("<Object: {%s}>", strings.Join(parts, ", "))
}

// UnaryOp applies a prefix operator to its argument.
type UnaryOp struct {
	Op  string
	Arg Expression
}

func (u *UnaryOp) expressionNode() {}
func (u *UnaryOp) String() string  { return fmt.Sprintf("<Op: %s%s>", u.Op, u.Arg) }

// Associativity of a chain of binary operators.
type Associativity int

const (
	// Left: a OP b OP c === (a OP b) OP c.
	// First is a and Rest is [(OP, b), (OP, c)].
	Left Associativity = iota

	// Right: a OP b OP c === a OP (b OP c).
	// First is still a, but Rest is stored in reverse: [(OP, c), (OP, b)],
	// each operator paired with the operand on its right.
	Right
)

func (a Associativity) String() string {
	if a == Right {
		return "right"
	}
	return "left"
}

// Operation is one (operator, operand) link of a binary chain.
type Operation struct {
	Op  string
	Arg Expression
}

// BinaryOp is a flattened run of infix operators of the same precedence.
type BinaryOp struct {
	Assoc Associativity
	First Expression
	Rest  []Operation
}

// NewChain builds a binary chain from operands and the operators between
// them, both in source order. len(operands) must be len(ops)+1.
func NewChain(assoc Associativity, operands []Expression, ops []string) *BinaryOp {
	if len(operands) != len(ops)+1 {
		panic("ast: operand and operator counts do not match")
	}
	rest := make([]Operation, len(ops))
	for i, op := range ops {
		rest[i] = Operation{Op: op, Arg: operands[i+1]}
	}
	if assoc == Right {
		for i, j := 0, len(rest)-1; i < j; i, j = i+1, j-1 {
			rest[i], rest[j] = rest[j], rest[i]
		}
	}
	return &BinaryOp{Assoc: assoc, First: operands[0], Rest: rest}
}

func (b *BinaryOp) expressionNode() {}
func (b *BinaryOp) String() string {
	parts := []string{b.First.String()}
	for _, op := range b.Rest {
		parts = append(parts, fmt.Sprintf("`%s` %s", op.Op, op.Arg))
	}
	return fmt.Sprintf("<Op: %s>", strings.Join(parts, " "))
}

// CurriedBinaryOp is an operator referenced as a function value,
// with an optional operand bound on either side.
type CurriedBinaryOp struct {
	Op    string
	Left  Expression // nil when unbound
	Right Expression // nil when unbound
}

func (c *CurriedBinaryOp) expressionNode() {}
func (c *CurriedBinaryOp) String() string {
	s := c.Op
	if c.Left != nil {
		s = c.Left.String() + " " + s
	}
	if c.Right != nil {
		s = s + " " + c.Right.String()
	}
	return fmt.Sprintf("<CurriedOp (%s)>", s)
}

// Index is the bracketed part of a subscript.
type Index interface {
	String() string
	indexNode()
}

// PointIndex refers to a single element.
type PointIndex struct {
	Index Expression
}

func (p *PointIndex) indexNode()     {}
func (p *PointIndex) String() string { return p.Index.String() }

// RangeIndex refers to the half-open range [Lo, Hi).
// Either bound may be nil, meaning the start or end of the sequence.
type RangeIndex struct {
	Lo Expression
	Hi Expression
}

func (r *RangeIndex) indexNode() {}
func (r *RangeIndex) String() string {
	var lo, hi string
	if r.Lo != nil {
		lo = r.Lo.String()
	}
	if r.Hi != nil {
		hi = r.Hi.String()
	}
	return lo + ":" + hi
}

// Subscript indexes into an array, a string or an object.
type Subscript struct {
	Object Expression
	Index  Index
}

func (s *Subscript) expressionNode() {}
func (s *Subscript) String() string  { return fmt.Sprintf("<Index: %s[%s]>", s.Object, s.Index) }

// FunctionCall applies a callee to arguments.
type FunctionCall struct {
	Func Expression
	Args []Expression
}

func (f *FunctionCall) expressionNode() {}
func (f *FunctionCall) String() string {
	return fmt.Sprintf("<Call: %s(%s)>", f.Func, joinNodes(f.Args, ","))
}

// Conditional chooses between two branches, evaluating only one.
type Conditional struct {
	Cond Expression
	Then Expression
	Else Expression
}

func (c *Conditional) expressionNode() {}
func (c *Conditional) String() string {
	return fmt.Sprintf("<If: %s then %s else %s>", c.Cond, c.Then, c.Else)
}

func joinNodes(nodes []Expression, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, sep)
}
