package evaluator

import (
	"strings"

	"github.com/funvibe/rush/internal/builtins"
	"github.com/funvibe/rush/internal/config"
	"github.com/funvibe/rush/internal/value"
)

// match tests one operand of a dispatch rule.
type match func(v value.Value) bool

func anyValue(value.Value) bool { return true }

func positiveInt(v value.Value) bool {
	i, ok := v.(value.Integer)
	return ok && i > 0
}

// rule is one accepted (left, right) pattern of a binary operator.
type rule struct {
	left, right match
	apply       func(e *Evaluator, l, r value.Value) (value.Value, error)
}

// binaryRules maps each plain binary operator to its rules, tried in
// order. Filled in init, since the rules call back into Apply.
var binaryRules map[string][]rule

func init() {
	binaryRules = map[string][]rule{
		"<":  {{anyValue, anyValue, comparison(value.TryLt)}},
		"<=": {{anyValue, anyValue, comparison(value.TryLe)}},
		">":  {{anyValue, anyValue, comparison(value.TryGt)}},
		">=": {{anyValue, anyValue, comparison(value.TryGe)}},
		"==": {{anyValue, anyValue, comparison(value.TryEq)}},
		"!=": {{anyValue, anyValue, comparison(value.TryNe)}},
		"@": {
			{anyValue, value.IsArray, member},
			{value.IsString, value.IsRegex, matchRegex},
		},
		config.ComposeOp: {{value.IsFunction, value.IsFunction, compose}},
		config.ApplyOp:   {{value.IsFunction, anyValue, apply}},
		"+": append(numericRules(addInt, addFloat),
			rule{value.IsString, value.IsString, concatStrings},
			rule{value.IsArray, value.IsArray, concatArrays},
			rule{value.IsObject, value.IsObject, mergeObjects},
		),
		"-": numericRules(subInt, subFloat),
		"*": append(numericRules(mulInt, mulFloat),
			rule{value.IsString, positiveInt, repeatString},
			rule{value.IsArray, positiveInt, repeatArray},
			rule{value.IsArray, value.IsString, joinArray},
			rule{value.IsFunction, value.IsFunction, composeReversed},
		),
		"/": append(numericRules(divInt, divFloat),
			rule{value.IsString, value.IsString, splitString},
			rule{value.IsString, value.IsRegex, splitString},
		),
		"%": append(numericRules(modInt, modFloat),
			rule{value.IsString, anyValue, formatString},
		),
		config.PowerOp: {
			{value.IsInteger, value.IsInteger, powIntInt},
			{value.IsFloat, value.IsFloat, powFloatFloat},
			{value.IsInteger, value.IsFloat, powIntFloat},
			{value.IsFloat, value.IsInteger, powFloatInt},
		},
	}
}

// Apply evaluates a binary operator on two values. Short-circuit
// operators get both operands already evaluated.
func (e *Evaluator) Apply(op string, left, right value.Value) (value.Value, error) {
	if config.IsShortCircuitOp(op) {
		v, _, err := e.shortCircuit(op, evaluated(left), evaluated(right), NewContext(nil))
		return v, err
	}
	rules, ok := binaryRules[op]
	if !ok {
		return nil, value.Errorf(value.ReasonUnknownOperator, "unknown binary operator: `%s`", op)
	}
	for _, r := range rules {
		if r.left(left) && r.right(right) {
			return r.apply(e, left, right)
		}
	}
	return nil, value.Invalid(op, left, right)
}

func isCurriable(op string) bool {
	return config.IsBinaryOp(op) && !config.IsAssignmentOp(op)
}

func comparison(test func(l, r value.Value) (bool, error)) func(*Evaluator, value.Value, value.Value) (value.Value, error) {
	return func(_ *Evaluator, l, r value.Value) (value.Value, error) {
		ok, err := test(l, r)
		if err != nil {
			return nil, err
		}
		return value.Boolean(ok), nil
	}
}

func member(_ *Evaluator, l, r value.Value) (value.Value, error) {
	for _, el := range r.(value.Array) {
		if value.Equal(l, el) {
			return value.Boolean(true), nil
		}
	}
	return value.Boolean(false), nil
}

func matchRegex(_ *Evaluator, l, r value.Value) (value.Value, error) {
	return value.Boolean(r.(*value.Regex).MatchString(string(l.(value.String)))), nil
}

// compose builds (l & r)(x) = l(r(x)).
func compose(_ *Evaluator, l, r value.Value) (value.Value, error) {
	f, ok := l.(*value.Function).ComposeWith(r.(*value.Function))
	if !ok {
		return nil, value.Errorf(value.ReasonArity, "both sides of `&` must be unary functions")
	}
	return f, nil
}

// composeReversed builds (l * r)(x) = r(l(x)).
func composeReversed(_ *Evaluator, l, r value.Value) (value.Value, error) {
	f, ok := r.(*value.Function).ComposeWith(l.(*value.Function))
	if !ok {
		return nil, value.Errorf(value.ReasonArity, "both sides of function composition must be unary")
	}
	return f, nil
}

// apply invokes a unary function, or binds one more argument to a
// function taking several.
func apply(e *Evaluator, l, r value.Value) (value.Value, error) {
	f := l.(*value.Function)
	if f.Arity() == 1 {
		return e.Invoke1(f, r)
	}
	g, ok := f.Curry(r)
	if !ok {
		return nil, value.Errorf(value.ReasonArity, "left side of `$` must be a function taking at least one argument")
	}
	return g, nil
}

func concatStrings(_ *Evaluator, l, r value.Value) (value.Value, error) {
	return l.(value.String) + r.(value.String), nil
}

func concatArrays(_ *Evaluator, l, r value.Value) (value.Value, error) {
	la, ra := l.(value.Array), r.(value.Array)
	out := make(value.Array, 0, len(la)+len(ra))
	out = append(out, la...)
	return append(out, ra...), nil
}

func mergeObjects(_ *Evaluator, l, r value.Value) (value.Value, error) {
	return l.(*value.Object).Merge(r.(*value.Object)), nil
}

// maxRepeatLen bounds the length of a string or array built by `*`.
const maxRepeatLen = 1 << 30

// repeatCount returns the repeat count r for an operand of the given
// length, failing when the result would exceed maxRepeatLen.
func repeatCount(size int, r value.Value) (int, error) {
	n := int64(r.(value.Integer))
	if size > 0 && n > maxRepeatLen/int64(size) {
		return 0, value.Errorf(value.ReasonNumericRange,
			"repeat count %d too large for operand of length %d", n, size)
	}
	return int(n), nil
}

func repeatString(_ *Evaluator, l, r value.Value) (value.Value, error) {
	s := string(l.(value.String))
	if s == "" {
		return value.String(""), nil
	}
	n, err := repeatCount(len(s), r)
	if err != nil {
		return nil, err
	}
	return value.String(strings.Repeat(s, n)), nil
}

func repeatArray(_ *Evaluator, l, r value.Value) (value.Value, error) {
	a := l.(value.Array)
	if len(a) == 0 {
		return value.Array{}, nil
	}
	n, err := repeatCount(len(a), r)
	if err != nil {
		return nil, err
	}
	out := make(value.Array, 0, len(a)*n)
	for i := 0; i < n; i++ {
		out = append(out, a...)
	}
	return out, nil
}

func joinArray(_ *Evaluator, l, r value.Value) (value.Value, error) {
	return builtins.Join(r, l)
}

func splitString(_ *Evaluator, l, r value.Value) (value.Value, error) {
	return builtins.Split(r, l)
}

func formatString(_ *Evaluator, l, r value.Value) (value.Value, error) {
	return builtins.Format(l, r)
}
