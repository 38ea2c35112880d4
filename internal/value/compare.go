package value

import "math"

// Comparisons are type sensitive. Integer and Float compare by promoting
// the Integer; strings, arrays and objects compare structurally. Any other
// pairing is an error naming the operator rather than a false result.
//
// The error applies to the operands themselves. Inside arrays and objects,
// == and != treat elements of incomparable types as unequal, so [1] == ["a"]
// is false. Ordering has no such fallback: [1] < ["a"] is an error, and
// objects have no ordering at all.

// TryEq evaluates left == right.
func TryEq(left, right Value) (bool, error) {
	eq, ok := equal(left, right)
	if !ok {
		return false, Invalid("==", left, right)
	}
	return eq, nil
}

// TryNe evaluates left != right.
func TryNe(left, right Value) (bool, error) {
	eq, ok := equal(left, right)
	if !ok {
		return false, Invalid("!=", left, right)
	}
	return !eq, nil
}

// TryLt evaluates left < right.
func TryLt(left, right Value) (bool, error) {
	return tryOrder("<", left, right, func(c int) bool { return c < 0 })
}

// TryLe evaluates left <= right.
func TryLe(left, right Value) (bool, error) {
	return tryOrder("<=", left, right, func(c int) bool { return c <= 0 })
}

// TryGt evaluates left > right.
func TryGt(left, right Value) (bool, error) {
	return tryOrder(">", left, right, func(c int) bool { return c > 0 })
}

// TryGe evaluates left >= right.
func TryGe(left, right Value) (bool, error) {
	return tryOrder(">=", left, right, func(c int) bool { return c >= 0 })
}

func tryOrder(op string, left, right Value, test func(int) bool) (bool, error) {
	// NaN is unordered: every ordering comparison involving it is false.
	if x, y, ok := numericPair(left, right); ok {
		if math.IsNaN(x) || math.IsNaN(y) {
			return false, nil
		}
	}
	c, ok := order(left, right)
	if !ok {
		return false, Invalid(op, left, right)
	}
	return test(c), nil
}

// numericPair promotes a pair of numbers to float64.
func numericPair(left, right Value) (float64, float64, bool) {
	x, ok := toFloat(left)
	if !ok {
		return 0, 0, false
	}
	y, ok := toFloat(right)
	if !ok {
		return 0, 0, false
	}
	return x, y, true
}

func toFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case Integer:
		return float64(n), true
	case Float:
		return float64(n), true
	}
	return 0, false
}

// order returns the three-way comparison of two values,
// or false when they have no defined ordering.
func order(left, right Value) (int, bool) {
	switch l := left.(type) {
	case Integer:
		if r, ok := right.(Integer); ok {
			return cmp3(l < r, l > r), true
		}
	case String:
		if r, ok := right.(String); ok {
			return cmp3(l < r, l > r), true
		}
	case Boolean:
		if r, ok := right.(Boolean); ok {
			return cmp3(!bool(l) && bool(r), bool(l) && !bool(r)), true
		}
	case Empty:
		if _, ok := right.(Empty); ok {
			return 0, true
		}
	case Array:
		r, ok := right.(Array)
		if !ok {
			return 0, false
		}
		for i := 0; i < len(l) && i < len(r); i++ {
			c, ok := order(l[i], r[i])
			if !ok {
				return 0, false
			}
			if c != 0 {
				return c, true
			}
		}
		return cmp3(len(l) < len(r), len(l) > len(r)), true
	}
	if x, y, ok := numericPair(left, right); ok {
		return cmp3(x < y, x > y), true
	}
	return 0, false
}

func cmp3(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	}
	return 0
}

// equal reports structural equality, or false as its second result when
// the two values cannot be compared at all. Elements of arrays and
// objects that cannot be compared are simply unequal.
func equal(left, right Value) (bool, bool) {
	if x, y, ok := numericPair(left, right); ok {
		return x == y, true
	}
	switch l := left.(type) {
	case Empty:
		if _, ok := right.(Empty); ok {
			return true, true
		}
	case Boolean:
		if r, ok := right.(Boolean); ok {
			return l == r, true
		}
	case String:
		if r, ok := right.(String); ok {
			return l == r, true
		}
	case Symbol:
		if r, ok := right.(Symbol); ok {
			return l == r, true
		}
	case *Regex:
		if r, ok := right.(*Regex); ok {
			return l.Source() == r.Source(), true
		}
	case Array:
		r, ok := right.(Array)
		if !ok {
			return false, false
		}
		if len(l) != len(r) {
			return false, true
		}
		for i := range l {
			if eq, ok := equal(l[i], r[i]); !ok || !eq {
				return false, true
			}
		}
		return true, true
	case *Object:
		r, ok := right.(*Object)
		if !ok {
			return false, false
		}
		if l.Len() != r.Len() {
			return false, true
		}
		for _, k := range l.keys {
			rv, ok := r.fields[k]
			if !ok {
				return false, true
			}
			if eq, ok := equal(l.fields[k], rv); !ok || !eq {
				return false, true
			}
		}
		return true, true
	}
	return false, false
}

// Equal reports strict equality: same variant and same contents.
// Unlike TryEq it never promotes numbers and never fails.
func Equal(left, right Value) bool {
	switch l := left.(type) {
	case Array:
		r, ok := right.(Array)
		if !ok || len(l) != len(r) {
			return false
		}
		for i := range l {
			if !Equal(l[i], r[i]) {
				return false
			}
		}
		return true
	case *Object:
		r, ok := right.(*Object)
		if !ok || l.Len() != r.Len() {
			return false
		}
		for _, k := range l.keys {
			rv, ok := r.fields[k]
			if !ok || !Equal(l.fields[k], rv) {
				return false
			}
		}
		return true
	case *Regex:
		r, ok := right.(*Regex)
		return ok && l.Source() == r.Source()
	case *Function:
		r, ok := right.(*Function)
		return ok && l == r
	}
	return left == right
}
