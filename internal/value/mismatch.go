package value

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/funvibe/rush/internal/config"
)

// Signature is the list of argument type names an operation accepts.
type Signature []string

// Argument is the type name and debug representation of an actual argument.
type Argument struct {
	Type string
	Repr string
}

// Mismatch describes actual arguments that did not fit any of the
// signatures accepted by an operation.
type Mismatch struct {
	Operation string
	Expected  []Signature
	Actual    []Argument
}

// NewMismatch returns a mismatch that lists no expected signatures.
// It is also used for arguments that are invalid for reasons other
// than their types.
func NewMismatch(op string, actual ...Value) *Mismatch {
	if op == "" {
		panic("value: mismatch with empty operation")
	}
	if len(actual) == 0 {
		panic("value: mismatch without actual arguments")
	}
	m := &Mismatch{Operation: op}
	for _, v := range actual {
		m.Actual = append(m.Actual, Argument{Type: v.TypeName(), Repr: v.Inspect()})
	}
	return m
}

// NewMismatchAgainst returns a mismatch against one or more signatures.
func NewMismatchAgainst(op string, expected [][]string, actual ...Value) *Mismatch {
	if len(expected) == 0 {
		panic("value: no expected argument signatures")
	}
	m := NewMismatch(op, actual...)
	for _, sig := range expected {
		m.Expected = append(m.Expected, Signature(sig))
	}
	return m
}

func (m *Mismatch) String() string {
	var expected string
	switch len(m.Expected) {
	case 0:
	case 1:
		expected = strings.Join(m.Expected[0], ", ") + " "
	default:
		lines := make([]string, len(m.Expected))
		for i, sig := range m.Expected {
			lines[i] = "\t" + strings.Join(sig, ", ")
		}
		expected = "one of:\n" + strings.Join(lines, "\n") + "\n"
	}

	sep := " and "
	if len(m.Actual) > 2 {
		sep = ", "
	}
	actual := make([]string, len(m.Actual))
	for i, a := range m.Actual {
		actual[i] = fmt.Sprintf("`%s` (%s)", a.Repr, a.Type)
	}

	op := displayOperation(m.Operation)
	if expected != "" {
		return fmt.Sprintf("%s expected %sbut got: %s", op, expected, strings.Join(actual, sep))
	}
	return fmt.Sprintf("%s got invalid arguments: %s", op, strings.Join(actual, sep))
}

// displayOperation renders identifiers as function calls and
// everything else as a quoted operator symbol.
func displayOperation(op string) string {
	for _, r := range op {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return "`" + op + "`"
		}
	}
	return op + "()"
}

// ArgCheck matches the types of args against the accepted signatures and
// returns a mismatch error when none fits. No signatures accept anything;
// the type name "any" matches every value.
func ArgCheck(op string, signatures [][]string, args ...Value) error {
	if len(signatures) == 0 {
		return nil
	}
	for _, sig := range signatures {
		if matchSignature(sig, args) {
			return nil
		}
	}
	return NewMismatchError(op, signatures, args...)
}

func matchSignature(sig []string, args []Value) bool {
	if len(sig) != len(args) {
		return false
	}
	for i, typeName := range sig {
		if typeName != config.AnyTypeName && args[i].TypeName() != typeName {
			return false
		}
	}
	return true
}
