// Package builtins provides the named functions available to every
// expression, such as len, split or map.
//
// Builtins are ordinary function values: they report an arity, can be
// curried and composed, and check their arguments with value.ArgCheck
// so that their diagnostics read like those of the operators.
package builtins

import (
	"sort"

	"github.com/funvibe/rush/internal/config"
	"github.com/funvibe/rush/internal/value"
)

// Short type names for signatures.
const (
	tAny    = config.AnyTypeName
	tEmpty  = config.EmptyTypeName
	tBool   = config.BoolTypeName
	tInt    = config.IntTypeName
	tFloat  = config.FloatTypeName
	tStr    = config.StringTypeName
	tRegex  = config.RegexTypeName
	tArray  = config.ArrayTypeName
	tObject = config.ObjectTypeName
	tFunc   = config.FunctionTypeName
)

// Library is a set of builtin functions addressable by name.
type Library struct {
	funcs map[string]*value.Function
}

// New returns an empty library.
func New() *Library {
	return &Library{funcs: make(map[string]*value.Function)}
}

// Default returns a library holding every builtin of this package.
func Default() *Library {
	l := New()
	l.Register(stringBuiltins()...)
	l.Register(unicodeBuiltins()...)
	l.Register(conversionBuiltins()...)
	l.Register(collectionBuiltins()...)
	l.Register(functionalBuiltins()...)
	l.Register(dataBuiltins()...)
	return l
}

// Register adds functions under their own names, replacing any
// previous function of the same name.
func (l *Library) Register(funcs ...*value.Function) {
	for _, f := range funcs {
		l.funcs[f.Name()] = f
	}
}

func (l *Library) Lookup(name string) (*value.Function, bool) {
	f, ok := l.funcs[name]
	return f, ok
}

// Names lists the registered functions, sorted.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.funcs))
	for name := range l.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// builtin wraps body with a check of its arguments against sigs. Every
// signature has the same length, which becomes the arity; a nullary
// builtin passes one empty signature.
func builtin(name string, sigs [][]string, body value.BuiltinFunc) *value.Function {
	arity := len(sigs[0])
	return value.NewBuiltin(name, arity, func(c value.Caller, args []value.Value) (value.Value, error) {
		if err := value.ArgCheck(name, sigs, args...); err != nil {
			return nil, err
		}
		return body(c, args)
	})
}

func str(v value.Value) string {
	return string(v.(value.String))
}

func stringArray(parts []string) value.Array {
	out := make(value.Array, len(parts))
	for i, p := range parts {
		out[i] = value.String(p)
	}
	return out
}
