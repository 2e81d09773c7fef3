package formula

import "strconv"

// ErrKind identifies a class of failure. Parse failures are never transient:
// retrying makes sense only after the caller fixes the input.
type ErrKind int8

const (
	// ErrNoInput reports an empty expression or empty subexpression.
	ErrNoInput ErrKind = iota
	// ErrUnexpectedSymbol reports a malformed literal or an illegal variable
	// name, such as a leading zero index or an unrecognized identifier.
	ErrUnexpectedSymbol
	// ErrUnknownSymbol reports an unrecognized function name or a stray
	// character where a value was expected.
	ErrUnknownSymbol
	// ErrOpenBraces reports an unmatched opening parenthesis.
	ErrOpenBraces
	// ErrOperatorExpected reports a character other than + - * / ^ where an
	// operator was expected.
	ErrOperatorExpected
	// ErrEmptyFunction reports an operator missing its left or right operand.
	ErrEmptyFunction
	// ErrDanglingOperator reports an expression ending on an operator.
	ErrDanglingOperator
	// ErrInvalidVariableIndex reports an evaluator variable lookup that
	// missed its own seeded table. It indicates a bug, not bad input.
	ErrInvalidVariableIndex
	// ErrUnknown reports an internal consistency failure, such as an
	// unrecognized node during compilation.
	ErrUnknown
)

var errDescs = [...]string{
	ErrNoInput:              "No input",
	ErrUnexpectedSymbol:     "Unexpected symbol",
	ErrUnknownSymbol:        "Unknown symbol",
	ErrOpenBraces:           "Open braces",
	ErrOperatorExpected:     "Operator expected",
	ErrEmptyFunction:        "Empty function",
	ErrDanglingOperator:     "Dangling operator",
	ErrInvalidVariableIndex: "Invalid variable index",
	ErrUnknown:              "Unknown error",
}

func (k ErrKind) String() string {
	if int(k) < len(errDescs) {
		return errDescs[k]
	}
	return "Unknown error"
}

// Error is the failure value for every operation in this package. Off is a
// zero-based offset into the whitespace-stripped input; it is meaningless
// for ErrNoInput, ErrEmptyFunction, and ErrUnknown.
type Error struct {
	Kind ErrKind
	Off  int
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrNoInput, ErrEmptyFunction, ErrUnknown:
		return e.Kind.String()
	}
	return e.Kind.String() + " at position " + strconv.Itoa(e.Off+1)
}

// Pos returns the zero-based offset of the failure in the normalized input.
func (e *Error) Pos() int {
	return e.Off
}

func errAt(kind ErrKind, off int) *Error {
	return &Error{Kind: kind, Off: off}
}
