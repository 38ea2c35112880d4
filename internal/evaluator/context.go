package evaluator

import (
	"sort"

	"github.com/funvibe/rush/internal/value"
)

// Library resolves builtin function names. It is consulted after every
// variable scope when a symbol is looked up.
type Library interface {
	Lookup(name string) (*value.Function, bool)
}

// Context is one scope of variable bindings with a pointer to the
// enclosing scope. Lookups walk outward; writes only touch this scope.
type Context struct {
	store map[string]value.Value
	outer *Context
	lib   Library
}

// NewContext returns a root context backed by the given builtin library,
// which may be nil.
func NewContext(lib Library) *Context {
	return &Context{store: make(map[string]value.Value), lib: lib}
}

// Fork returns a child scope of c. Bindings made in the child are not
// visible in c.
func (c *Context) Fork() *Context {
	return &Context{store: make(map[string]value.Value), outer: c, lib: c.lib}
}

// Parent returns the enclosing scope, or nil for a root context.
func (c *Context) Parent() *Context {
	return c.outer
}

// Get returns the value of a variable, searching enclosing scopes.
func (c *Context) Get(name string) (value.Value, bool) {
	for scope := c; scope != nil; scope = scope.outer {
		if v, ok := scope.store[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Resolve looks a name up among the variables and then the builtins.
func (c *Context) Resolve(name string) (value.Value, bool) {
	if v, ok := c.Get(name); ok {
		return v, true
	}
	if c.lib != nil {
		if f, ok := c.lib.Lookup(name); ok {
			return f, true
		}
	}
	return nil, false
}

func (c *Context) Set(name string, v value.Value) {
	c.store[name] = v
}

// Unset removes a binding from this scope only.
func (c *Context) Unset(name string) {
	delete(c.store, name)
}

// IsEmpty reports whether this scope holds no bindings of its own.
func (c *Context) IsEmpty() bool {
	return len(c.store) == 0
}

// Names lists the variables bound in this scope, sorted.
func (c *Context) Names() []string {
	names := make([]string, 0, len(c.store))
	for name := range c.store {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
