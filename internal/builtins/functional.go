package builtins

import (
	"github.com/funvibe/rush/internal/value"
)

func functionalBuiltins() []*value.Function {
	return []*value.Function{
		builtin("id", [][]string{{tAny}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			return args[0], nil
		}),
		builtin("map", [][]string{{tFunc, tArray}}, func(c value.Caller, args []value.Value) (value.Value, error) {
			f, a := args[0].(*value.Function), args[1].(value.Array)
			out := make(value.Array, len(a))
			for i, el := range a {
				v, err := c.Call(f, el)
				if err != nil {
					return nil, err
				}
				out[i] = v
			}
			return out, nil
		}),
		builtin("filter", [][]string{{tFunc, tArray}}, func(c value.Caller, args []value.Value) (value.Value, error) {
			f, a := args[0].(*value.Function), args[1].(value.Array)
			out := value.Array{}
			for _, el := range a {
				v, err := c.Call(f, el)
				if err != nil {
					return nil, err
				}
				keep, err := value.Truthy(v)
				if err != nil {
					return nil, err
				}
				if keep {
					out = append(out, el)
				}
			}
			return out, nil
		}),
		builtin("reduce", [][]string{{tFunc, tAny, tArray}}, func(c value.Caller, args []value.Value) (value.Value, error) {
			f, acc := args[0].(*value.Function), args[1]
			for _, el := range args[2].(value.Array) {
				v, err := c.Call(f, acc, el)
				if err != nil {
					return nil, err
				}
				acc = v
			}
			return acc, nil
		}),
		builtin("flip", [][]string{{tFunc}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			f := args[0].(*value.Function)
			if f.Arity() != 2 {
				return nil, value.Errorf(value.ReasonArity, "flip() needs a function of 2 arguments, got %s", f.Inspect())
			}
			return value.NewBuiltin("flip", 2, func(c value.Caller, args []value.Value) (value.Value, error) {
				return c.Call(f, args[1], args[0])
			}), nil
		}),
	}
}
