// Package value implements the runtime values of the expression language:
// a closed set of variants, their type names, conversions and comparisons,
// and the typed evaluation errors built on top of them.
package value

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/funvibe/rush/internal/config"
)

// Value is a runtime value. The set of implementations is closed:
// Empty, Boolean, Integer, Float, String, *Regex, Array, *Object,
// *Function and Symbol.
type Value interface {
	// TypeName is the name of the variant, used verbatim in diagnostics.
	TypeName() string
	// Inspect returns the debug representation of the value.
	Inspect() string
	value()
}

// Empty is the unit value.
type Empty struct{}

// Nil is the only Empty value.
var Nil = Empty{}

func (Empty) TypeName() string { return config.EmptyTypeName }
func (Empty) Inspect() string  { return config.NilLiteral }
func (Empty) value()           {}

// Boolean
type Boolean bool

func (b Boolean) TypeName() string { return config.BoolTypeName }
func (b Boolean) Inspect() string  { return strconv.FormatBool(bool(b)) }
func (Boolean) value()             {}

// Integer is a 64-bit signed integer.
type Integer int64

func (i Integer) TypeName() string { return config.IntTypeName }
func (i Integer) Inspect() string  { return strconv.FormatInt(int64(i), 10) }
func (Integer) value()             {}

// Float is a double precision floating point number.
type Float float64

func (f Float) TypeName() string { return config.FloatTypeName }
func (f Float) Inspect() string {
	s := formatFloat(float64(f))
	if !math.IsInf(float64(f), 0) && !math.IsNaN(float64(f)) && !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
func (Float) value() {}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// String
type String string

func (s String) TypeName() string { return config.StringTypeName }
func (s String) Inspect() string  { return strconv.Quote(string(s)) }
func (String) value()             {}

// Symbol is an unresolved bare identifier. It denotes a name,
// not the string of the same characters.
type Symbol string

func (s Symbol) TypeName() string { return config.SymbolTypeName }
func (s Symbol) Inspect() string  { return string(s) }
func (Symbol) value()             {}

// Regex is a compiled regular expression.
type Regex struct {
	re *regexp.Regexp
}

// NewRegex compiles pattern into a Regex value.
func NewRegex(pattern string) (*Regex, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, Errorf(ReasonGeneric, "invalid regular expression /%s/: %v", pattern, err)
	}
	return &Regex{re: re}, nil
}

func (r *Regex) TypeName() string          { return config.RegexTypeName }
func (r *Regex) Inspect() string           { return "/" + r.re.String() + "/" }
func (r *Regex) Source() string            { return r.re.String() }
func (r *Regex) Regexp() *regexp.Regexp    { return r.re }
func (r *Regex) MatchString(s string) bool { return r.re.MatchString(s) }
func (*Regex) value()                      {}

// Array is an ordered sequence of values.
type Array []Value

func (a Array) TypeName() string { return config.ArrayTypeName }
func (a Array) Inspect() string {
	parts := make([]string, len(a))
	for i, elem := range a {
		parts[i] = elem.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (Array) value() {}

// Predicates

func IsEmpty(v Value) bool    { _, ok := v.(Empty); return ok }
func IsBoolean(v Value) bool  { _, ok := v.(Boolean); return ok }
func IsInteger(v Value) bool  { _, ok := v.(Integer); return ok }
func IsFloat(v Value) bool    { _, ok := v.(Float); return ok }
func IsString(v Value) bool   { _, ok := v.(String); return ok }
func IsSymbol(v Value) bool   { _, ok := v.(Symbol); return ok }
func IsRegex(v Value) bool    { _, ok := v.(*Regex); return ok }
func IsArray(v Value) bool    { _, ok := v.(Array); return ok }
func IsObject(v Value) bool   { _, ok := v.(*Object); return ok }
func IsFunction(v Value) bool { _, ok := v.(*Function); return ok }

// IsNumber reports whether v is an Integer or a Float.
func IsNumber(v Value) bool { return IsInteger(v) || IsFloat(v) }

// Unwrapping. Each helper fails with a mismatch naming op when v holds
// a different variant.

func AsBoolean(op string, v Value) (bool, error) {
	if b, ok := v.(Boolean); ok {
		return bool(b), nil
	}
	return false, expect(op, config.BoolTypeName, v)
}

func AsInteger(op string, v Value) (int64, error) {
	if i, ok := v.(Integer); ok {
		return int64(i), nil
	}
	return 0, expect(op, config.IntTypeName, v)
}

func AsFloat(op string, v Value) (float64, error) {
	if f, ok := v.(Float); ok {
		return float64(f), nil
	}
	return 0, expect(op, config.FloatTypeName, v)
}

func AsString(op string, v Value) (string, error) {
	if s, ok := v.(String); ok {
		return string(s), nil
	}
	return "", expect(op, config.StringTypeName, v)
}

func AsArray(op string, v Value) (Array, error) {
	if a, ok := v.(Array); ok {
		return a, nil
	}
	return nil, expect(op, config.ArrayTypeName, v)
}

func AsObject(op string, v Value) (*Object, error) {
	if o, ok := v.(*Object); ok {
		return o, nil
	}
	return nil, expect(op, config.ObjectTypeName, v)
}

func AsFunction(op string, v Value) (*Function, error) {
	if f, ok := v.(*Function); ok {
		return f, nil
	}
	return nil, expect(op, config.FunctionTypeName, v)
}

func AsRegex(op string, v Value) (*Regex, error) {
	if r, ok := v.(*Regex); ok {
		return r, nil
	}
	return nil, expect(op, config.RegexTypeName, v)
}

func expect(op, typeName string, v Value) error {
	return NewMismatchError(op, [][]string{{typeName}}, v)
}
