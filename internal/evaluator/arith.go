package evaluator

import (
	"math"

	"github.com/funvibe/rush/internal/value"
)

type intOp func(l, r int64) (value.Value, error)
type floatOp func(l, r float64) (value.Value, error)

// numericRules covers Integer and Float operands. Mixed pairs promote
// the Integer to Float.
func numericRules(ints intOp, floats floatOp) []rule {
	return []rule{
		{value.IsInteger, value.IsInteger, func(_ *Evaluator, l, r value.Value) (value.Value, error) {
			return ints(int64(l.(value.Integer)), int64(r.(value.Integer)))
		}},
		{value.IsFloat, value.IsFloat, func(_ *Evaluator, l, r value.Value) (value.Value, error) {
			return floats(float64(l.(value.Float)), float64(r.(value.Float)))
		}},
		{value.IsInteger, value.IsFloat, func(_ *Evaluator, l, r value.Value) (value.Value, error) {
			return floats(float64(l.(value.Integer)), float64(r.(value.Float)))
		}},
		{value.IsFloat, value.IsInteger, func(_ *Evaluator, l, r value.Value) (value.Value, error) {
			return floats(float64(l.(value.Float)), float64(r.(value.Integer)))
		}},
	}
}

func addInt(l, r int64) (value.Value, error)     { return value.Integer(l + r), nil }
func addFloat(l, r float64) (value.Value, error) { return value.Float(l + r), nil }
func subInt(l, r int64) (value.Value, error)     { return value.Integer(l - r), nil }
func subFloat(l, r float64) (value.Value, error) { return value.Float(l - r), nil }
func mulInt(l, r int64) (value.Value, error)     { return value.Integer(l * r), nil }
func mulFloat(l, r float64) (value.Value, error) { return value.Float(l * r), nil }
func divFloat(l, r float64) (value.Value, error) { return value.Float(l / r), nil }

func modFloat(l, r float64) (value.Value, error) {
	return value.Float(math.Mod(l, r)), nil
}

func divInt(l, r int64) (value.Value, error) {
	if r == 0 {
		return nil, value.Errorf(value.ReasonDivisionByZero, "integer division by zero")
	}
	return value.Integer(l / r), nil
}

func modInt(l, r int64) (value.Value, error) {
	if r == 0 {
		return nil, value.Errorf(value.ReasonDivisionByZero, "integer modulo by zero")
	}
	return value.Integer(l % r), nil
}

// powIntInt raises an Integer to an Integer power. A negative exponent
// gives the Float 1/b**|e|. Exponents must stay below 2**32-1.
func powIntInt(_ *Evaluator, l, r value.Value) (value.Value, error) {
	base, exp := int64(l.(value.Integer)), int64(r.(value.Integer))
	if exp < 0 {
		return value.Float(1 / math.Pow(float64(base), -float64(exp))), nil
	}
	if exp >= math.MaxUint32 {
		return nil, value.Errorf(value.ReasonNumericRange, "exponent out of range: %d", exp)
	}
	return value.Integer(ipow(base, uint32(exp))), nil
}

// ipow computes base**exp with wrapping two's complement overflow.
func ipow(base int64, exp uint32) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func powFloatFloat(_ *Evaluator, l, r value.Value) (value.Value, error) {
	return value.Float(math.Pow(float64(l.(value.Float)), float64(r.(value.Float)))), nil
}

func powIntFloat(_ *Evaluator, l, r value.Value) (value.Value, error) {
	return value.Float(math.Pow(float64(l.(value.Integer)), float64(r.(value.Float)))), nil
}

// powFloatInt requires the exponent to fit in 32 signed bits.
func powFloatInt(_ *Evaluator, l, r value.Value) (value.Value, error) {
	exp := int64(r.(value.Integer))
	if exp > math.MaxInt32 || exp < math.MinInt32 {
		return nil, value.Errorf(value.ReasonNumericRange, "exponent out of range: %d", exp)
	}
	return value.Float(math.Pow(float64(l.(value.Float)), float64(exp))), nil
}
