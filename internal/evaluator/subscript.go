package evaluator

import (
	"github.com/funvibe/rush/internal/ast"
	"github.com/funvibe/rush/internal/value"
)

var (
	indexSignatures = [][]string{{"array", "int"}, {"string", "int"}, {"object", "string"}}
	sliceSignatures = [][]string{{"array", "int", "int"}, {"string", "int", "int"}}
)

func (e *Evaluator) evalSubscript(node *ast.Subscript, ctx *Context) (value.Value, error) {
	obj, err := e.Eval(node.Object, ctx)
	if err != nil {
		return nil, err
	}
	switch idx := node.Index.(type) {
	case *ast.PointIndex:
		i, err := e.Eval(idx.Index, ctx)
		if err != nil {
			return nil, err
		}
		return Index(obj, i)
	case *ast.RangeIndex:
		var lo, hi value.Value
		if idx.Lo != nil {
			if lo, err = e.Eval(idx.Lo, ctx); err != nil {
				return nil, err
			}
		}
		if idx.Hi != nil {
			if hi, err = e.Eval(idx.Hi, ctx); err != nil {
				return nil, err
			}
		}
		return Slice(obj, lo, hi)
	}
	return nil, value.Errorf(value.ReasonGeneric, "unknown index type %T", node.Index)
}

// Index returns one element of an array or string, or one field of an
// object. Negative positions count from the end.
func Index(obj, index value.Value) (value.Value, error) {
	switch o := obj.(type) {
	case value.Array:
		if i, ok := index.(value.Integer); ok {
			pos, err := normalizeIndex(int64(i), len(o))
			if err != nil {
				return nil, err
			}
			return o[pos], nil
		}
	case value.String:
		if i, ok := index.(value.Integer); ok {
			runes := []rune(string(o))
			pos, err := normalizeIndex(int64(i), len(runes))
			if err != nil {
				return nil, err
			}
			return value.String(runes[pos]), nil
		}
	case *value.Object:
		if key, ok := index.(value.String); ok {
			v, ok := o.Get(string(key))
			if !ok {
				return nil, value.Errorf(value.ReasonMissingKey, "no such key: %s", key.Inspect())
			}
			return v, nil
		}
	}
	return nil, value.NewMismatchError("[]", indexSignatures, obj, index)
}

func normalizeIndex(i int64, length int) (int, error) {
	pos := i
	if pos < 0 {
		pos += int64(length)
	}
	if pos < 0 || pos >= int64(length) {
		return 0, value.Errorf(value.ReasonIndexOutOfRange, "index out of range: %d (length %d)", i, length)
	}
	return int(pos), nil
}

// Slice returns the half-open range [lo, hi) of an array or string.
// A nil bound means the start or the end of the sequence.
func Slice(obj, lo, hi value.Value) (value.Value, error) {
	var length int
	var runes []rune
	switch o := obj.(type) {
	case value.Array:
		length = len(o)
	case value.String:
		runes = []rune(string(o))
		length = len(runes)
	default:
		return nil, sliceMismatch(obj, lo, hi)
	}

	start, ok := sliceBound(lo, 0, length)
	if !ok {
		return nil, sliceMismatch(obj, lo, hi)
	}
	end, ok := sliceBound(hi, int64(length), length)
	if !ok {
		return nil, sliceMismatch(obj, lo, hi)
	}
	if start < 0 || end > int64(length) || start > end {
		return nil, value.Errorf(value.ReasonIndexOutOfRange, "range out of bounds: %s:%s (length %d)", boundString(lo), boundString(hi), length)
	}

	if value.IsString(obj) {
		return value.String(runes[start:end]), nil
	}
	a := obj.(value.Array)
	out := make(value.Array, end-start)
	copy(out, a[start:end])
	return out, nil
}

func sliceBound(b value.Value, def int64, length int) (int64, bool) {
	if b == nil {
		return def, true
	}
	i, ok := b.(value.Integer)
	if !ok {
		return 0, false
	}
	pos := int64(i)
	if pos < 0 {
		pos += int64(length)
	}
	return pos, true
}

func boundString(b value.Value) string {
	if b == nil {
		return ""
	}
	return b.Inspect()
}

func sliceMismatch(obj, lo, hi value.Value) error {
	if lo == nil {
		lo = value.Nil
	}
	if hi == nil {
		hi = value.Nil
	}
	return value.NewMismatchError("[:]", sliceSignatures, obj, lo, hi)
}
