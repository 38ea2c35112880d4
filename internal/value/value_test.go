package value

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustRegex(pattern string) *Regex {
	r, err := NewRegex(pattern)
	if err != nil {
		panic(err)
	}
	return r
}

func TestTypeNames(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Nil, "empty"},
		{Boolean(true), "bool"},
		{Integer(1), "int"},
		{Float(1.5), "float"},
		{String("x"), "string"},
		{mustRegex("a+"), "regex"},
		{Array{}, "array"},
		{NewObject(), "object"},
		{NewOperator("+", nil, nil), "function"},
		{Symbol("x"), "symbol"},
	}
	for _, tt := range tests {
		if got := tt.v.TypeName(); got != tt.want {
			t.Errorf("%s.TypeName() = %q, want %q", tt.v.Inspect(), got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Value
	}{
		{"42", Integer(42)},
		{"-7", Integer(-7)},
		{"3.14", Float(3.14)},
		{"1e3", Float(1000)},
		{"true", Boolean(true)},
		{"false", Boolean(false)},
		{"foo", String("foo")},
		{"", String("")},
		{"inf", String("inf")},
		{"NaN", String("NaN")},
		{"12abc", String("12abc")},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Parse(tt.input); !Equal(got, tt.want) {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got.Inspect(), tt.want.Inspect())
			}
		})
	}
}

func TestComparisons(t *testing.T) {
	tests := []struct {
		name        string
		left, right Value
		lt, eq      bool
	}{
		{"ints", Integer(1), Integer(2), true, false},
		{"int float", Integer(2), Float(2.0), false, true},
		{"float int", Float(1.5), Integer(2), true, false},
		{"strings", String("abc"), String("abd"), true, false},
		{"arrays", Array{Integer(1), Integer(2)}, Array{Integer(1), Integer(3)}, true, false},
		{"array prefix", Array{Integer(1)}, Array{Integer(1), Integer(0)}, true, false},
		{"array promotion", Array{Integer(1)}, Array{Float(1)}, false, true},
		{"bools", Boolean(false), Boolean(true), true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lt, err := TryLt(tt.left, tt.right)
			if err != nil {
				t.Fatalf("TryLt failed: %v", err)
			}
			if lt != tt.lt {
				t.Errorf("TryLt = %v, want %v", lt, tt.lt)
			}
			eq, err := TryEq(tt.left, tt.right)
			if err != nil {
				t.Fatalf("TryEq failed: %v", err)
			}
			if eq != tt.eq {
				t.Errorf("TryEq = %v, want %v", eq, tt.eq)
			}
			ne, _ := TryNe(tt.left, tt.right)
			if ne == eq {
				t.Errorf("TryNe = %v, TryEq = %v", ne, eq)
			}
			ge, _ := TryGe(tt.left, tt.right)
			if ge == lt {
				t.Errorf("TryGe = %v, TryLt = %v", ge, lt)
			}
		})
	}
}

func TestComparisonErrors(t *testing.T) {
	tests := []struct {
		name        string
		left, right Value
	}{
		{"int string", Integer(1), String("1")},
		{"string array", String("a"), Array{}},
		{"bool int", Boolean(true), Integer(1)},
		{"functions", NewOperator("+", nil, nil), NewOperator("+", nil, nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := TryEq(tt.left, tt.right); !errors.Is(err, ErrInvalidArguments) {
				t.Errorf("TryEq error = %v, want invalid arguments", err)
			}
			if _, err := TryLt(tt.left, tt.right); !errors.Is(err, ErrInvalidArguments) {
				t.Errorf("TryLt error = %v, want invalid arguments", err)
			}
		})
	}

	a, b := NewObject(), NewObject()
	if _, err := TryLt(a, b); err == nil {
		t.Errorf("TryLt on objects succeeded, want error")
	}
	a.Set("k", Integer(1))
	b.Set("k", Float(1))
	if eq, err := TryEq(a, b); err != nil || !eq {
		t.Errorf("TryEq on objects = %v, %v; want true", eq, err)
	}
}

func TestNestedComparisons(t *testing.T) {
	obj := func(v Value) *Object {
		o := NewObject()
		o.Set("k", v)
		return o
	}
	unequal := []struct {
		name        string
		left, right Value
	}{
		{"array elements", Array{Integer(1)}, Array{String("a")}},
		{"object fields", obj(Integer(1)), obj(String("1"))},
		{"nested functions", Array{NewOperator("+", nil, nil)}, Array{NewOperator("+", nil, nil)}},
	}
	for _, tt := range unequal {
		t.Run(tt.name, func(t *testing.T) {
			if eq, err := TryEq(tt.left, tt.right); err != nil || eq {
				t.Errorf("TryEq = %v, %v; want false, nil", eq, err)
			}
			if ne, err := TryNe(tt.left, tt.right); err != nil || !ne {
				t.Errorf("TryNe = %v, %v; want true, nil", ne, err)
			}
		})
	}

	if _, err := TryLt(Array{Integer(1)}, Array{String("a")}); !errors.Is(err, ErrInvalidArguments) {
		t.Errorf("TryLt on mixed arrays error = %v, want invalid arguments", err)
	}
	if _, err := TryGe(obj(Integer(1)), obj(Integer(2))); !errors.Is(err, ErrInvalidArguments) {
		t.Errorf("TryGe on objects error = %v, want invalid arguments", err)
	}
}

func TestNaNIsUnordered(t *testing.T) {
	nan := Float(math.NaN())
	for _, f := range []func(Value, Value) (bool, error){TryLt, TryLe, TryGt, TryGe} {
		if got, err := f(nan, Integer(1)); err != nil || got {
			t.Errorf("ordering with NaN = %v, %v; want false", got, err)
		}
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		v    Value
		want bool
	}{
		{Nil, false},
		{Boolean(true), true},
		{Integer(0), false},
		{Integer(-1), true},
		{Float(0), false},
		{String(""), false},
		{String("false"), false},
		{String("no"), true},
		{Array{}, false},
		{Array{Nil}, true},
		{NewObject(), false},
	}
	for _, tt := range tests {
		got, err := Truthy(tt.v)
		if err != nil {
			t.Fatalf("Truthy(%s) failed: %v", tt.v.Inspect(), err)
		}
		if got != tt.want {
			t.Errorf("Truthy(%s) = %v, want %v", tt.v.Inspect(), got, tt.want)
		}
	}
	if _, err := Truthy(mustRegex("x")); err == nil {
		t.Errorf("Truthy(regex) succeeded, want error")
	}
}

func TestDisplay(t *testing.T) {
	obj := NewObject()
	obj.Set("b", Integer(1))
	obj.Set("a", Array{String("x"), Float(2.5)})
	tests := []struct {
		v    Value
		want string
	}{
		{Nil, ""},
		{Float(1), "1.0"},
		{Float(3.25), "3.25"},
		{Float(math.Inf(-1)), "-inf"},
		{String("raw \"text\""), "raw \"text\""},
		{Array{Integer(1), String("two")}, "1\ntwo"},
		{obj, `{"b":1,"a":["x",2.5]}`},
	}
	for _, tt := range tests {
		if got := Display(tt.v); got != tt.want {
			t.Errorf("Display(%s) = %q, want %q", tt.v.Inspect(), got, tt.want)
		}
	}
}

func TestObjectOrder(t *testing.T) {
	left := NewObject()
	left.Set("x", Integer(1))
	left.Set("y", Integer(2))
	right := NewObject()
	right.Set("z", Integer(3))
	right.Set("x", Integer(10))

	merged := left.Merge(right)
	if diff := cmp.Diff([]string{"x", "y", "z"}, merged.Keys()); diff != "" {
		t.Errorf("Merge keys mismatch (-want +got):\n%s", diff)
	}
	if v, _ := merged.Get("x"); !Equal(v, Integer(10)) {
		t.Errorf("merged x = %s, want 10", v.Inspect())
	}
	if v, _ := left.Get("x"); !Equal(v, Integer(1)) {
		t.Errorf("Merge modified its receiver")
	}
}

func TestFunctionCurrying(t *testing.T) {
	add := NewOperator("+", nil, nil)
	if add.Arity() != 2 {
		t.Fatalf("(+).Arity() = %d, want 2", add.Arity())
	}
	inc, ok := add.Curry(Integer(1))
	if !ok || inc.Arity() != 1 {
		t.Fatalf("Curry(1) = %v, %v", inc, ok)
	}
	if add.Arity() != 2 {
		t.Errorf("Curry modified its receiver")
	}
	left, right := inc.Operands()
	if !Equal(left, Integer(1)) || right != nil {
		t.Errorf("Operands() = %v, %v; want 1, nil", left, right)
	}
	full, ok := inc.Curry(Integer(2))
	if !ok || full.Arity() != 0 {
		t.Fatalf("second Curry = %v, %v", full, ok)
	}
	if _, ok := full.Curry(Integer(3)); ok {
		t.Errorf("Curry on arity 0 succeeded")
	}

	half := NewOperator("/", nil, Integer(2))
	if half.Arity() != 1 {
		t.Errorf("(/ 2).Arity() = %d, want 1", half.Arity())
	}

	noop := func(Caller, []Value) (Value, error) { return Nil, nil }
	join := NewBuiltin("join", 2, noop)
	j1, _ := join.Curry(String(","))
	j1b, _ := j1.Curry(Array{})
	if len(j1.Bound()) != 1 || len(j1b.Bound()) != 2 {
		t.Errorf("bound args = %d, %d; want 1, 2", len(j1.Bound()), len(j1b.Bound()))
	}
}

func TestFunctionComposition(t *testing.T) {
	noop := func(Caller, []Value) (Value, error) { return Nil, nil }
	upper := NewBuiltin("upper", 1, noop)
	rev := NewBuiltin("rev", 1, noop)
	join := NewBuiltin("join", 2, noop)

	comp, ok := upper.ComposeWith(rev)
	if !ok {
		t.Fatalf("ComposeWith failed for unary functions")
	}
	if comp.Arity() != 1 || comp.Name() != "upper . rev" {
		t.Errorf("composition = %s with arity %d", comp.Name(), comp.Arity())
	}
	outer, inner := comp.Parts()
	if outer != upper || inner != rev {
		t.Errorf("Parts() returned the wrong functions")
	}
	if _, ok := upper.ComposeWith(join); ok {
		t.Errorf("ComposeWith binary inner succeeded")
	}
	if _, ok := join.ComposeWith(upper); ok {
		t.Errorf("ComposeWith binary outer succeeded")
	}
	thunk, ok := comp.Curry(String("x"))
	if !ok || thunk.Arity() != 0 {
		t.Errorf("Curry on composition = %v, %v", thunk, ok)
	}
}
