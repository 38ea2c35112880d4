package rush_test

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/funvibe/rush/internal/parser"
	"github.com/funvibe/rush/internal/value"
	rush "github.com/funvibe/rush/pkg/embed"
)

// User is a plain Go struct exposed to expressions as an object.
type User struct {
	Name  string
	Score int
	Tags  []string
}

type account struct {
	ID     int
	secret string
}

func TestEmbedAPI(t *testing.T) {
	e := rush.New()

	qt.Assert(t, qt.IsNil(e.Bind("double", func(x int) int { return x * 2 })))
	qt.Assert(t, qt.IsNil(e.Bind("player", User{Name: "Alice", Score: 10, Tags: []string{"a"}})))

	res, err := e.Eval(`[double(21), player["Name"], len(player), player["Tags"]]`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(res, interface{}([]interface{}{
		int64(42), "Alice", int64(3), []interface{}{"a"},
	})))
}

func TestExecKeepsBindings(t *testing.T) {
	e := rush.New()
	qt.Assert(t, qt.IsNil(e.Exec("total = 40")))
	qt.Assert(t, qt.IsNil(e.Exec("total = total + 2")))

	got, err := e.Get("total")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, interface{}(int64(42))))

	e.Unbind("total")
	_, err = e.Get("total")
	qt.Assert(t, qt.ErrorMatches(err, `variable 'total' not found`))
}

func TestEvalErrors(t *testing.T) {
	e := rush.New()

	_, err := e.Eval("1 +")
	var perr *parser.Error
	qt.Assert(t, qt.ErrorAs(err, &perr))

	_, err = e.Eval(`1 + "a"`)
	qt.Assert(t, qt.ErrorIs(err, value.ErrInvalidArguments))
	qt.Assert(t, qt.ErrorMatches(err, "(?s)Invalid arguments: `\\+` .*"))
}

func TestBoundFunctionSignatures(t *testing.T) {
	e := rush.New()
	qt.Assert(t, qt.IsNil(e.Bind("greet", func(name string, times int) string {
		return strings.Repeat("hi "+name+" ", times)
	})))
	qt.Assert(t, qt.IsNil(e.Bind("parse", func(s string) (int, error) {
		var n int
		_, err := fmt.Sscanf(s, "%d", &n)
		return n, err
	})))
	qt.Assert(t, qt.IsNil(e.Bind("noop", func() {})))

	got, err := e.Eval(`greet("bob", 2)`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, interface{}("hi bob hi bob ")))

	got, err = e.Eval(`(greet $ "x")(1)`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, interface{}("hi x ")))

	got, err = e.Eval(`parse("17") + 1`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, interface{}(int64(18))))

	_, err = e.Eval(`parse("x")`)
	qt.Assert(t, qt.ErrorMatches(err, `Eval error: parse: .*`))

	got, err = e.Eval("noop()")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNil(got))

	_, err = e.Eval(`greet(1, 2)`)
	qt.Assert(t, qt.ErrorMatches(err, "Invalid arguments: greet\\(\\) expected string, int but got: `1` \\(int\\) and `2` \\(int\\)"))
}

func TestBindRejectsUnsupportedFunctions(t *testing.T) {
	e := rush.New()
	qt.Assert(t, qt.IsNotNil(e.Bind("v", func(xs ...int) int { return len(xs) })))
	qt.Assert(t, qt.IsNotNil(e.Bind("m", func() (int, int) { return 1, 2 })))
	qt.Assert(t, qt.IsNotNil(e.Bind("c", make(chan int))))
	qt.Assert(t, qt.IsNotNil(e.Bind("k", map[int]string{1: "a"})))
}

func TestCall(t *testing.T) {
	e := rush.New()
	got, err := e.Call("upper", "abc")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, interface{}("ABC")))

	qt.Assert(t, qt.IsNil(e.Exec("twice = (* 2)")))
	twice, err := e.Get("twice")
	qt.Assert(t, qt.IsNil(err))
	got, err = e.Call("map", twice, []int{1, 2})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(got, interface{}([]interface{}{int64(2), int64(4)})))

	_, err = e.Call("nothing")
	qt.Assert(t, qt.ErrorMatches(err, `function 'nothing' not found`))

	qt.Assert(t, qt.IsNil(e.Exec("x = 1")))
	_, err = e.Call("x")
	qt.Assert(t, qt.ErrorMatches(err, `'x' is a int, not a function`))

	_, err = e.Call("len", "a", "b")
	qt.Assert(t, qt.ErrorIs(err, value.ErrArity))
}

func TestEvalInto(t *testing.T) {
	e := rush.New()

	var u User
	qt.Assert(t, qt.IsNil(e.EvalInto(`{"Name": "Bo", "Score": 3 * 3, "Tags": split(",", "x,y")}`, &u)))
	qt.Assert(t, qt.DeepEquals(u, User{Name: "Bo", Score: 9, Tags: []string{"x", "y"}}))

	var scores map[string]float64
	qt.Assert(t, qt.IsNil(e.EvalInto(`{"a": 1, "b": 2.5}`, &scores)))
	qt.Assert(t, qt.DeepEquals(scores, map[string]float64{"a": 1, "b": 2.5}))

	var small int8
	qt.Assert(t, qt.IsNotNil(e.EvalInto("1000", &small)))
	qt.Assert(t, qt.IsNotNil(e.EvalInto("1", small)))
}

func TestMarshallerRoundTrip(t *testing.T) {
	m := rush.NewMarshaller()
	tests := []struct {
		in   interface{}
		want string
	}{
		{nil, "nil"},
		{true, "true"},
		{uint8(7), "7"},
		{float32(0.5), "0.5"},
		{"s", `"s"`},
		{[]int{1, 2}, "[1, 2]"},
		{[2]bool{true, false}, "[true, false]"},
		{map[string]int{"b": 2, "a": 1}, `{"a": 1, "b": 2}`},
		{&User{Name: "P"}, `{"Name": "P", "Score": 0, "Tags": []}`},
		{(*User)(nil), "nil"},
		{account{ID: 1, secret: "x"}, `{"ID": 1}`},
		{value.Integer(3), "3"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%T", tt.in), func(t *testing.T) {
			v, err := m.ToValue(tt.in)
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(v.Inspect(), tt.want))
		})
	}

	_, err := m.ToValue(uint64(1 << 63))
	qt.Assert(t, qt.IsNotNil(err))

	obj := value.NewObject()
	obj.Set("k", value.Array{value.Integer(1), value.Nil})
	got, err := m.FromValue(obj, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(got, interface{}(map[string]interface{}{"k": []interface{}{int64(1), nil}})))

	got, err = m.FromValue(value.Integer(5), reflect.TypeOf(float64(0)))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, interface{}(5.0)))

	_, err = m.FromValue(value.String("x"), reflect.TypeOf(0))
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.IsFalse(errors.Is(err, value.ErrInvalidArguments)))
}
