package value

import "fmt"

// ErrorKind separates type-related failures from contextual ones.
type ErrorKind int

const (
	// InvalidArguments: a value of the wrong type or shape reached an
	// operator, builtin, subscript or call site.
	InvalidArguments ErrorKind = iota
	// Other covers contextual failures such as an index out of range.
	Other
)

// Reason classifies Other errors.
type Reason int

const (
	ReasonGeneric Reason = iota
	ReasonIndexOutOfRange
	ReasonMissingKey
	ReasonArity
	ReasonAssignment
	ReasonNumericRange
	ReasonDivisionByZero
	ReasonFormat
	ReasonUnknownOperator
)

var reasonNames = map[Reason]string{
	ReasonGeneric:         "generic",
	ReasonIndexOutOfRange: "index out of range",
	ReasonMissingKey:      "missing key",
	ReasonArity:           "arity",
	ReasonAssignment:      "assignment",
	ReasonNumericRange:    "numeric range",
	ReasonDivisionByZero:  "division by zero",
	ReasonFormat:          "format",
	ReasonUnknownOperator: "unknown operator",
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// Error is an evaluation error. It is created where evaluation fails
// and passed up unchanged to the caller of the evaluator.
type Error struct {
	Kind ErrorKind
	// Mismatch describes the arguments of an InvalidArguments error.
	Mismatch *Mismatch
	// Reason and Message describe an Other error.
	Reason  Reason
	Message string
}

func (e *Error) Error() string {
	if e.Kind == InvalidArguments {
		return "Invalid arguments: " + e.Mismatch.String()
	}
	return "Eval error: " + e.Message
}

// Is matches errors of the same kind and, for Other errors, reason.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	return e.Kind == InvalidArguments || e.Reason == t.Reason
}

// Sentinels for errors.Is.
var (
	ErrInvalidArguments = &Error{Kind: InvalidArguments}
	ErrIndexOutOfRange  = &Error{Kind: Other, Reason: ReasonIndexOutOfRange}
	ErrMissingKey       = &Error{Kind: Other, Reason: ReasonMissingKey}
	ErrArity            = &Error{Kind: Other, Reason: ReasonArity}
	ErrAssignment       = &Error{Kind: Other, Reason: ReasonAssignment}
	ErrNumericRange     = &Error{Kind: Other, Reason: ReasonNumericRange}
	ErrDivisionByZero   = &Error{Kind: Other, Reason: ReasonDivisionByZero}
	ErrFormat           = &Error{Kind: Other, Reason: ReasonFormat}
)

// Errorf returns an Other error with a formatted message.
func Errorf(reason Reason, format string, a ...interface{}) *Error {
	return &Error{Kind: Other, Reason: reason, Message: fmt.Sprintf(format, a...)}
}

// Invalid returns an InvalidArguments error for op without listing
// the accepted signatures.
func Invalid(op string, args ...Value) *Error {
	return &Error{Kind: InvalidArguments, Mismatch: NewMismatch(op, args...)}
}

// NewMismatchError returns an InvalidArguments error for op listing the
// accepted argument signatures.
func NewMismatchError(op string, expected [][]string, args ...Value) *Error {
	return &Error{Kind: InvalidArguments, Mismatch: NewMismatchAgainst(op, expected, args...)}
}
