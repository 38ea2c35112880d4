package config

// CurrentVarName is the reserved binding that holds the current input record.
const CurrentVarName = "_"

// Runtime type names, used verbatim in diagnostics and argument checks.
const (
	EmptyTypeName    = "empty"
	BoolTypeName     = "bool"
	IntTypeName      = "int"
	FloatTypeName    = "float"
	StringTypeName   = "string"
	RegexTypeName    = "regex"
	ArrayTypeName    = "array"
	ObjectTypeName   = "object"
	FunctionTypeName = "function"
	SymbolTypeName   = "symbol"

	// AnyTypeName matches every type in an argument signature.
	AnyTypeName = "any"
)

// Literal keywords
const (
	TrueLiteral  = "true"
	FalseLiteral = "false"
	NilLiteral   = "nil"
)

// Operators
const (
	AssignOp  = "="
	AndOp     = "&&"
	OrOp      = "||"
	ApplyOp   = "$"
	ComposeOp = "&"
	PowerOp   = "**"
)

// ShortCircuitOps may skip evaluating their second operand.
var ShortCircuitOps = []string{AndOp, OrOp}

// AssignmentOps are handled during right-associative chain reduction only.
var AssignmentOps = []string{AssignOp}

// BinaryOps are all operators that can appear in a binary chain
// or be referenced as a curried function value.
var BinaryOps = []string{
	AssignOp,
	ApplyOp, ComposeOp,
	AndOp, OrOp,
	"<", "<=", ">", ">=", "==", "!=", "@",
	"+", "-",
	"*", "/", "%",
	PowerOp,
}

// UnaryOps are the prefix operators.
var UnaryOps = []string{"-", "+", "!"}

// IsShortCircuitOp reports whether op is && or ||.
func IsShortCircuitOp(op string) bool {
	return contains(ShortCircuitOps, op)
}

// IsAssignmentOp reports whether op is an assignment operator.
func IsAssignmentOp(op string) bool {
	return contains(AssignmentOps, op)
}

// IsBinaryOp reports whether op is a known binary operator.
func IsBinaryOp(op string) bool {
	return contains(BinaryOps, op)
}

func contains(ops []string, op string) bool {
	for _, o := range ops {
		if o == op {
			return true
		}
	}
	return false
}
