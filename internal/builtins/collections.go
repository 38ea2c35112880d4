package builtins

import (
	"sort"
	"unicode/utf8"

	"github.com/funvibe/rush/internal/value"
)

func collectionBuiltins() []*value.Function {
	return []*value.Function{
		builtin("len", [][]string{{tStr}, {tArray}, {tObject}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			switch v := args[0].(type) {
			case value.String:
				return value.Integer(utf8.RuneCountInString(string(v))), nil
			case value.Array:
				return value.Integer(len(v)), nil
			}
			return value.Integer(args[0].(*value.Object).Len()), nil
		}),
		builtin("rev", [][]string{{tStr}, {tArray}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			if s, ok := args[0].(value.String); ok {
				runes := []rune(string(s))
				for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
					runes[i], runes[j] = runes[j], runes[i]
				}
				return value.String(runes), nil
			}
			a := args[0].(value.Array)
			out := make(value.Array, len(a))
			for i, el := range a {
				out[len(a)-1-i] = el
			}
			return out, nil
		}),
		builtin("keys", [][]string{{tObject}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			return stringArray(args[0].(*value.Object).Keys()), nil
		}),
		builtin("values", [][]string{{tObject}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			return value.Array(args[0].(*value.Object).Values()), nil
		}),
		builtin("sort", [][]string{{tArray}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			out := append(value.Array(nil), args[0].(value.Array)...)
			var cmpErr error
			sort.SliceStable(out, func(i, j int) bool {
				less, err := value.TryLt(out[i], out[j])
				if err != nil && cmpErr == nil {
					cmpErr = err
				}
				return less
			})
			if cmpErr != nil {
				return nil, cmpErr
			}
			return out, nil
		}),
		builtin("sum", [][]string{{tArray}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			var isum int64
			var fsum float64
			isFloat := false
			for _, el := range args[0].(value.Array) {
				switch n := el.(type) {
				case value.Integer:
					isum += int64(n)
				case value.Float:
					fsum += float64(n)
					isFloat = true
				default:
					return nil, value.Invalid("sum", args[0])
				}
			}
			if isFloat {
				return value.Float(fsum + float64(isum)), nil
			}
			return value.Integer(isum), nil
		}),
		builtin("min", [][]string{{tArray}}, extreme("min", value.TryLt)),
		builtin("max", [][]string{{tArray}}, extreme("max", value.TryGt)),
		builtin("abs", [][]string{{tInt}, {tFloat}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			switch n := args[0].(type) {
			case value.Integer:
				if n < 0 {
					return -n, nil
				}
				return n, nil
			case value.Float:
				if n < 0 {
					return -n, nil
				}
				return n, nil
			}
			return nil, value.Invalid("abs", args[0])
		}),
	}
}

// extreme picks the element for which better holds against all others.
func extreme(name string, better func(l, r value.Value) (bool, error)) value.BuiltinFunc {
	return func(_ value.Caller, args []value.Value) (value.Value, error) {
		a := args[0].(value.Array)
		if len(a) == 0 {
			return nil, value.Errorf(value.ReasonGeneric, "%s() of an empty array", name)
		}
		best := a[0]
		for _, el := range a[1:] {
			ok, err := better(el, best)
			if err != nil {
				return nil, err
			}
			if ok {
				best = el
			}
		}
		return best, nil
	}
}
