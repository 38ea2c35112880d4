package builtins

import (
	"math"
	"strconv"
	"strings"

	"github.com/funvibe/rush/internal/value"
)

func conversionBuiltins() []*value.Function {
	return []*value.Function{
		builtin("str", [][]string{{tAny}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			return value.String(value.Display(args[0])), nil
		}),
		builtin("int", [][]string{{tInt}, {tFloat}, {tBool}, {tStr}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			return toInt(args[0])
		}),
		builtin("float", [][]string{{tFloat}, {tInt}, {tBool}, {tStr}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			return toFloat(args[0])
		}),
		builtin("bool", [][]string{{tAny}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			b, err := value.Truthy(args[0])
			if err != nil {
				return nil, err
			}
			return value.Boolean(b), nil
		}),
		builtin("array", [][]string{{tArray}, {tStr}, {tObject}, {tEmpty}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			switch v := args[0].(type) {
			case value.Array:
				return v, nil
			case value.String:
				runes := []rune(string(v))
				out := make(value.Array, len(runes))
				for i, r := range runes {
					out[i] = value.String(r)
				}
				return out, nil
			case *value.Object:
				out := make(value.Array, 0, v.Len())
				for _, k := range v.Keys() {
					field, _ := v.Get(k)
					out = append(out, value.Array{value.String(k), field})
				}
				return out, nil
			}
			return value.Array{}, nil
		}),
		builtin("regex", [][]string{{tStr}, {tRegex}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			if re, ok := args[0].(*value.Regex); ok {
				return re, nil
			}
			return value.NewRegex(str(args[0]))
		}),
		builtin("typeof", [][]string{{tAny}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			return value.String(args[0].TypeName()), nil
		}),
	}
}

func toInt(v value.Value) (value.Value, error) {
	switch v := v.(type) {
	case value.Integer:
		return v, nil
	case value.Float:
		f := float64(v)
		if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
			return nil, value.Errorf(value.ReasonNumericRange, "cannot convert %s to int", v.Inspect())
		}
		return value.Integer(int64(f)), nil
	case value.Boolean:
		if v {
			return value.Integer(1), nil
		}
		return value.Integer(0), nil
	case value.String:
		s := strings.TrimSpace(string(v))
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return value.Integer(i), nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return toInt(value.Float(f))
		}
		return nil, value.Errorf(value.ReasonGeneric, "cannot convert %s to int", v.Inspect())
	}
	return nil, value.Invalid("int", v)
}

func toFloat(v value.Value) (value.Value, error) {
	switch v := v.(type) {
	case value.Float:
		return v, nil
	case value.Integer:
		return value.Float(v), nil
	case value.Boolean:
		if v {
			return value.Float(1), nil
		}
		return value.Float(0), nil
	case value.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
		if err != nil {
			return nil, value.Errorf(value.ReasonGeneric, "cannot convert %s to float", v.Inspect())
		}
		return value.Float(f), nil
	}
	return nil, value.Invalid("float", v)
}
