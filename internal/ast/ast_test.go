package ast

import (
	"testing"

	"github.com/funvibe/rush/internal/value"
)

func sym(name string) Expression { return NewScalar(value.Symbol(name)) }

func TestNewChainLeft(t *testing.T) {
	chain := NewChain(Left, []Expression{sym("a"), sym("b"), sym("c")}, []string{"+", "-"})
	if chain.First.String() != "<Atom: a>" {
		t.Errorf("First = %s, want a", chain.First)
	}
	want := []string{"+ <Atom: b>", "- <Atom: c>"}
	for i, op := range chain.Rest {
		if got := op.Op + " " + op.Arg.String(); got != want[i] {
			t.Errorf("Rest[%d] = %s, want %s", i, got, want[i])
		}
	}
}

func TestNewChainRight(t *testing.T) {
	// a = b ** c
	chain := NewChain(Right, []Expression{sym("a"), sym("b"), sym("c")}, []string{"=", "**"})
	if chain.First.String() != "<Atom: a>" {
		t.Errorf("First = %s, want a", chain.First)
	}
	want := []string{"** <Atom: c>", "= <Atom: b>"}
	for i, op := range chain.Rest {
		if got := op.Op + " " + op.Arg.String(); got != want[i] {
			t.Errorf("Rest[%d] = %s, want %s", i, got, want[i])
		}
	}
}

func TestNewChainPanicsOnBadCounts(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("NewChain with mismatched counts did not panic")
		}
	}()
	NewChain(Left, []Expression{sym("a")}, []string{"+"})
}

func TestString(t *testing.T) {
	tests := []struct {
		node Expression
		want string
	}{
		{NewScalar(value.Integer(42)), "<Atom: 42>"},
		{&ArrayLiteral{Elements: []Expression{sym("x"), NewScalar(value.String("y"))}}, `<Array: [<Atom: x>, <Atom: "y">]>`},
		{&ObjectLiteral{Attributes: []Attribute{{Key: sym("k"), Value: NewScalar(value.Boolean(true))}}}, "<Object: {<Atom: k>: <Atom: true>}>"},
		{&UnaryOp{Op: "-", Arg: sym("x")}, "<Op: -<Atom: x>>"},
		{NewChain(Left, []Expression{sym("a"), sym("b")}, []string{"&&"}), "<Op: <Atom: a> `&&` <Atom: b>>"},
		{&CurriedBinaryOp{Op: "+", Right: NewScalar(value.Integer(1))}, "<CurriedOp (+ <Atom: 1>)>"},
		{&Subscript{Object: sym("_"), Index: &RangeIndex{Hi: NewScalar(value.Integer(2))}}, "<Index: <Atom: _>[:<Atom: 2>]>"},
		{&FunctionCall{Func: sym("f"), Args: []Expression{sym("a"), sym("b")}}, "<Call: <Atom: f>(<Atom: a>,<Atom: b>)>"},
		{&Conditional{Cond: sym("c"), Then: sym("x"), Else: sym("y")}, "<If: <Atom: c> then <Atom: x> else <Atom: y>>"},
	}
	for _, tt := range tests {
		if got := tt.node.String(); got != tt.want {
			t.Errorf("String() = %s, want %s", got, tt.want)
		}
	}
}
