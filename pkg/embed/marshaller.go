package rush

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/funvibe/rush/internal/config"
	"github.com/funvibe/rush/internal/value"
)

var (
	valueType = reflect.TypeOf((*value.Value)(nil)).Elem()
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// Marshaller handles conversion between Go and rush values.
type Marshaller struct{}

func NewMarshaller() *Marshaller {
	return &Marshaller{}
}

// ToValue converts a Go value to a rush value. Structs become objects
// with one key per exported field; Go functions become builtins.
func (m *Marshaller) ToValue(val interface{}) (value.Value, error) {
	if val == nil {
		return value.Nil, nil
	}
	if v, ok := val.(value.Value); ok {
		return v, nil
	}
	return m.toValue(reflect.ValueOf(val), "")
}

func (m *Marshaller) toValue(v reflect.Value, name string) (value.Value, error) {
	if !v.IsValid() {
		return value.Nil, nil
	}
	if v.Type().Implements(valueType) && v.CanInterface() {
		if v.Kind() == reflect.Interface && v.IsNil() {
			return value.Nil, nil
		}
		return v.Interface().(value.Value), nil
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Integer(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("integer %d overflows int64", u)
		}
		return value.Integer(u), nil
	case reflect.Float32, reflect.Float64:
		return value.Float(v.Float()), nil
	case reflect.Bool:
		return value.Boolean(v.Bool()), nil
	case reflect.String:
		return value.String(v.String()), nil
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return value.Array{}, nil
		}
		return m.sliceToArray(v)
	case reflect.Map:
		return m.mapToObject(v)
	case reflect.Struct:
		return m.structToObject(v)
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return value.Nil, nil
		}
		return m.toValue(v.Elem(), name)
	case reflect.Func:
		if v.IsNil() {
			return value.Nil, nil
		}
		if name == "" {
			name = "func"
		}
		return m.wrapFunc(name, v)
	}
	return nil, fmt.Errorf("cannot convert %s to a rush value", v.Type())
}

func (m *Marshaller) sliceToArray(v reflect.Value) (value.Value, error) {
	out := make(value.Array, v.Len())
	for i := range out {
		el, err := m.toValue(v.Index(i), "")
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = el
	}
	return out, nil
}

// mapToObject needs string keys. Keys are sorted, since Go maps have
// no order of their own.
func (m *Marshaller) mapToObject(v reflect.Value) (value.Value, error) {
	if v.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("cannot convert %s: object keys must be strings", v.Type())
	}
	keys := make([]string, 0, v.Len())
	for _, k := range v.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	obj := value.NewObject()
	for _, k := range keys {
		field, err := m.toValue(v.MapIndex(reflect.ValueOf(k).Convert(v.Type().Key())), "")
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		obj.Set(k, field)
	}
	return obj, nil
}

func (m *Marshaller) structToObject(v reflect.Value) (value.Value, error) {
	obj := value.NewObject()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" { // Skip unexported fields
			continue
		}
		fv, err := m.toValue(v.Field(i), field.Name)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		obj.Set(field.Name, fv)
	}
	return obj, nil
}

// wrapFunc turns a Go function into a builtin of the same arity. The
// function may return nothing, a value, an error, or a value and an
// error.
func (m *Marshaller) wrapFunc(name string, fn reflect.Value) (value.Value, error) {
	t := fn.Type()
	if t.IsVariadic() {
		return nil, fmt.Errorf("cannot bind %s: variadic functions are not supported", name)
	}
	if t.NumOut() > 2 || (t.NumOut() == 2 && t.Out(1) != errorType) {
		return nil, fmt.Errorf("cannot bind %s: want at most one result and an optional error", name)
	}

	sig := make([]string, t.NumIn())
	for i := range sig {
		sig[i] = typeName(t.In(i))
	}

	return value.NewBuiltin(name, t.NumIn(), func(_ value.Caller, args []value.Value) (value.Value, error) {
		in := make([]reflect.Value, len(args))
		for i, arg := range args {
			rv, err := m.fromValue(arg, t.In(i))
			if err != nil {
				return nil, value.NewMismatchError(name, [][]string{sig}, args...)
			}
			in[i] = rv
		}

		out := fn.Call(in)
		if n := len(out); n > 0 && t.Out(n-1) == errorType {
			if err, _ := out[n-1].Interface().(error); err != nil {
				return nil, value.Errorf(value.ReasonGeneric, "%s: %v", name, err)
			}
			out = out[:n-1]
		}
		if len(out) == 0 {
			return value.Nil, nil
		}
		return m.toValue(out[0], "")
	}), nil
}

// typeName names the rush type a Go parameter type accepts.
func typeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return config.IntTypeName
	case reflect.Float32, reflect.Float64:
		return config.FloatTypeName
	case reflect.Bool:
		return config.BoolTypeName
	case reflect.String:
		return config.StringTypeName
	case reflect.Slice, reflect.Array:
		return config.ArrayTypeName
	case reflect.Map, reflect.Struct:
		return config.ObjectTypeName
	}
	return config.AnyTypeName
}

// FromValue converts a rush value to a Go value.
// targetType is optional; without it integers become int64, arrays
// []interface{} and objects map[string]interface{}.
func (m *Marshaller) FromValue(v value.Value, targetType reflect.Type) (interface{}, error) {
	if targetType == nil {
		return m.native(v)
	}
	rv, err := m.fromValue(v, targetType)
	if err != nil {
		return nil, err
	}
	return rv.Interface(), nil
}

func (m *Marshaller) native(v value.Value) (interface{}, error) {
	switch v := v.(type) {
	case nil, value.Empty:
		return nil, nil
	case value.Boolean:
		return bool(v), nil
	case value.Integer:
		return int64(v), nil
	case value.Float:
		return float64(v), nil
	case value.String:
		return string(v), nil
	case value.Symbol:
		return string(v), nil
	case *value.Regex:
		return v.Source(), nil
	case value.Array:
		out := make([]interface{}, len(v))
		for i, el := range v {
			x, err := m.native(el)
			if err != nil {
				return nil, err
			}
			out[i] = x
		}
		return out, nil
	case *value.Object:
		out := make(map[string]interface{}, v.Len())
		for _, k := range v.Keys() {
			field, _ := v.Get(k)
			x, err := m.native(field)
			if err != nil {
				return nil, err
			}
			out[k] = x
		}
		return out, nil
	case *value.Function:
		return v, nil
	}
	return nil, fmt.Errorf("unsupported value %s", v.Inspect())
}

func (m *Marshaller) fromValue(v value.Value, t reflect.Type) (reflect.Value, error) {
	fail := func() (reflect.Value, error) {
		return reflect.Value{}, fmt.Errorf("cannot convert %s to %s", v.TypeName(), t)
	}

	// Parameters declared with rush value types take values unchanged.
	if t == valueType || (t.Kind() != reflect.Interface && t.Implements(valueType)) {
		rv := reflect.ValueOf(v)
		if !rv.Type().AssignableTo(t) {
			return fail()
		}
		return rv, nil
	}

	switch t.Kind() {
	case reflect.Interface:
		x, err := m.native(v)
		if err != nil {
			return reflect.Value{}, err
		}
		if x == nil {
			return reflect.Zero(t), nil
		}
		rv := reflect.ValueOf(x)
		if !rv.Type().AssignableTo(t) {
			return fail()
		}
		return rv, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := v.(value.Integer)
		if !ok {
			return fail()
		}
		rv := reflect.New(t).Elem()
		if rv.OverflowInt(int64(i)) {
			return fail()
		}
		rv.SetInt(int64(i))
		return rv, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, ok := v.(value.Integer)
		if !ok || i < 0 {
			return fail()
		}
		rv := reflect.New(t).Elem()
		if rv.OverflowUint(uint64(i)) {
			return fail()
		}
		rv.SetUint(uint64(i))
		return rv, nil
	case reflect.Float32, reflect.Float64:
		rv := reflect.New(t).Elem()
		switch n := v.(type) {
		case value.Float:
			rv.SetFloat(float64(n))
		case value.Integer:
			rv.SetFloat(float64(n))
		default:
			return fail()
		}
		return rv, nil
	case reflect.Bool:
		b, ok := v.(value.Boolean)
		if !ok {
			return fail()
		}
		return reflect.ValueOf(bool(b)).Convert(t), nil
	case reflect.String:
		s, ok := v.(value.String)
		if !ok {
			return fail()
		}
		return reflect.ValueOf(string(s)).Convert(t), nil
	case reflect.Slice:
		a, ok := v.(value.Array)
		if !ok {
			return fail()
		}
		out := reflect.MakeSlice(t, len(a), len(a))
		for i, el := range a {
			ev, err := m.fromValue(el, t.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			out.Index(i).Set(ev)
		}
		return out, nil
	case reflect.Map:
		obj, ok := v.(*value.Object)
		if !ok || t.Key().Kind() != reflect.String {
			return fail()
		}
		out := reflect.MakeMapWithSize(t, obj.Len())
		for _, k := range obj.Keys() {
			field, _ := obj.Get(k)
			fv, err := m.fromValue(field, t.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			out.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), fv)
		}
		return out, nil
	case reflect.Struct:
		obj, ok := v.(*value.Object)
		if !ok {
			return fail()
		}
		out := reflect.New(t).Elem()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			fieldVal, ok := obj.Get(field.Name)
			if field.PkgPath != "" || !ok {
				continue
			}
			fv, err := m.fromValue(fieldVal, field.Type)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("field %s: %w", field.Name, err)
			}
			out.Field(i).Set(fv)
		}
		return out, nil
	case reflect.Ptr:
		if value.IsEmpty(v) {
			return reflect.Zero(t), nil
		}
		ev, err := m.fromValue(v, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(ev)
		return p, nil
	}
	return fail()
}
