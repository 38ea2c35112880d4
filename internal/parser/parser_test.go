package parser_test

import (
	"errors"
	"testing"

	"github.com/funvibe/rush/internal/ast"
	"github.com/funvibe/rush/internal/parser"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "<Atom: 42>"},
		{"1.5", "<Atom: 1.5>"},
		{`"hi"`, `<Atom: "hi">`},
		{"nil", "<Atom: nil>"},
		{"true", "<Atom: true>"},
		{"x", "<Atom: x>"},
		{"1 + 2 * 3", "<Op: <Atom: 1> `+` <Op: <Atom: 2> `*` <Atom: 3>>>"},
		{"1 - 2 + 3", "<Op: <Atom: 1> `-` <Atom: 2> `+` <Atom: 3>>"},
		{"a = b = c", "<Op: <Atom: a> `=` <Atom: c> `=` <Atom: b>>"},
		{"2 ** 3 ** 2", "<Op: <Atom: 2> `**` <Atom: 2> `**` <Atom: 3>>"},
		{"-x ** 2", "<Op: <Op: -<Atom: x>> `**` <Atom: 2>>"},
		{"!a && b", "<Op: <Op: !<Atom: a>> `&&` <Atom: b>>"},
		{"a && b ? 1 : 2", "<If: <Op: <Atom: a> `&&` <Atom: b>> then <Atom: 1> else <Atom: 2>>"},
		{"a ? 1 : b ? 2 : 3", "<If: <Atom: a> then <Atom: 1> else <If: <Atom: b> then <Atom: 2> else <Atom: 3>>>"},
		{"x = a ? 1 : 2", "<Op: <Atom: x> `=` <If: <Atom: a> then <Atom: 1> else <Atom: 2>>>"},
		{"f & g $ x", "<Op: <Atom: f> `&` <Atom: g> `$` <Atom: x>>"},
		{"_ @ [1, 2,]", "<Op: <Atom: _> `@` <Array: [<Atom: 1>, <Atom: 2>]>>"},
		{"_ / /,/", "<Op: <Atom: _> `/` <Atom: /,/>>"},
		{`{"a": 1, b: [], }`, `<Object: {<Atom: "a">: <Atom: 1>, <Atom: b>: <Array: []>}>`},
		{"_[0]", "<Index: <Atom: _>[<Atom: 0>]>"},
		{"_[1:]", "<Index: <Atom: _>[<Atom: 1>:]>"},
		{"_[:-1]", "<Index: <Atom: _>[:<Op: -<Atom: 1>>]>"},
		{"_[:]", "<Index: <Atom: _>[:]>"},
		{"f(1, g(2))[0]", "<Index: <Call: <Atom: f>(<Atom: 1>,<Call: <Atom: g>(<Atom: 2>)>)>[<Atom: 0>]>"},
		{"now()", "<Call: <Atom: now>()>"},
		{"(+)", "<CurriedOp (+)>"},
		{"(-)", "<CurriedOp (-)>"},
		{"(2 *)", "<CurriedOp (<Atom: 2> *)>"},
		{"(/ 2)", "<CurriedOp (/ <Atom: 2>)>"},
		{"(== 'a')", `<CurriedOp (== <Atom: "a">)>`},
		{"(-1)", "<Op: -<Atom: 1>>"},
		{"(f(x) &&)", "<CurriedOp (<Call: <Atom: f>(<Atom: x>)> &&)>"},
		{"((1 + 2))", "<Op: <Atom: 1> `+` <Atom: 2>>"},
		{"(1 + 2) * 3", "<Op: <Op: <Atom: 1> `+` <Atom: 2>> `*` <Atom: 3>>"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			exp, err := parser.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if got := exp.String(); got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseChainShape(t *testing.T) {
	exp, err := parser.Parse("a = b = c")
	if err != nil {
		t.Fatal(err)
	}
	chain, ok := exp.(*ast.BinaryOp)
	if !ok {
		t.Fatalf("got %T, want *ast.BinaryOp", exp)
	}
	if chain.Assoc != ast.Right {
		t.Errorf("Assoc = %s, want right", chain.Assoc)
	}
	if len(chain.Rest) != 2 || chain.Rest[0].Arg.String() != "<Atom: c>" {
		t.Errorf("Rest = %v, want reversed source order", chain.Rest)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
		line  int
		col   int
	}{
		{"", "empty expression", 1, 1},
		{"1 +", "unexpected end of input", 1, 4},
		{"1 +\n  )", `unexpected ")"`, 2, 3},
		{"(1", `expected ")", got end of input`, 1, 3},
		{"(=)", `operator "=" cannot be curried`, 1, 2},
		{"()", "empty parentheses", 1, 1},
		{"1 2", "unexpected INT 2", 1, 3},
		{"[1,", "unexpected end of input", 1, 4},
		{`"abc`, "unterminated string literal", 1, 1},
		{"a ? b", `expected ":", got end of input`, 1, 6},
		{"99999999999999999999", "integer literal 99999999999999999999 out of range", 1, 1},
		{"/[/", "invalid regular expression /[/", 1, 1},
		{"x | y", "unexpected character '|' (did you mean '||'?)", 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := parser.Parse(tt.input)
			var perr *parser.Error
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) error = %v, want *parser.Error", tt.input, err)
			}
			if perr.Msg != tt.msg || perr.Line != tt.line || perr.Column != tt.col {
				t.Errorf("Parse(%q) = %d:%d %q, want %d:%d %q", tt.input, perr.Line, perr.Column, perr.Msg, tt.line, tt.col, tt.msg)
			}
		})
	}
}
