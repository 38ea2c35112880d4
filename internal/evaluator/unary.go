package evaluator

import (
	"github.com/funvibe/rush/internal/value"
)

// Unary applies a prefix operator.
func Unary(op string, arg value.Value) (value.Value, error) {
	switch op {
	case "-":
		switch v := arg.(type) {
		case value.Integer:
			return -v, nil
		case value.Float:
			return -v, nil
		}
	case "+":
		if value.IsNumber(arg) {
			return arg, nil
		}
	case "!":
		if b, ok := arg.(value.Boolean); ok {
			return !b, nil
		}
	default:
		return nil, value.Errorf(value.ReasonUnknownOperator, "unknown unary operator: `%s`", op)
	}
	return nil, value.Invalid(op, arg)
}
