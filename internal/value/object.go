package value

import (
	"strconv"
	"strings"

	"github.com/funvibe/rush/internal/config"
)

// Object maps String keys to values. Keys are unique and keep
// their insertion order.
type Object struct {
	keys   []string
	fields map[string]Value
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{fields: make(map[string]Value)}
}

func (o *Object) TypeName() string { return config.ObjectTypeName }
func (o *Object) Inspect() string {
	parts := make([]string, 0, len(o.keys))
	for _, k := range o.keys {
		parts = append(parts, strconv.Quote(k)+": "+o.fields[k].Inspect())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (*Object) value() {}

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.keys) }

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.fields[key]
	return v, ok
}

// Set stores v under key. An existing key keeps its position.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.fields[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Values returns the values in key insertion order.
func (o *Object) Values() []Value {
	vals := make([]Value, len(o.keys))
	for i, k := range o.keys {
		vals[i] = o.fields[k]
	}
	return vals
}

// Copy returns a shallow copy of the object.
func (o *Object) Copy() *Object {
	c := &Object{
		keys:   append([]string(nil), o.keys...),
		fields: make(map[string]Value, len(o.fields)),
	}
	for k, v := range o.fields {
		c.fields[k] = v
	}
	return c
}

// Merge returns a copy of o with every key of other added;
// other's values win on conflict.
func (o *Object) Merge(other *Object) *Object {
	c := o.Copy()
	for _, k := range other.keys {
		c.Set(k, other.fields[k])
	}
	return c
}
