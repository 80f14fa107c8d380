package golfscript

import (
	"errors"
	"fmt"
)

// ErrRecursionTooDeep aborts a run whose block evaluation nests deeper than
// the configured limit.
var ErrRecursionTooDeep = errors.New("recursion too deep")

// errNoMatch is returned by operator functions when the operands have no
// applicable rule. The dispatcher restores the operands and does nothing.
var errNoMatch = errors.New("no matching operand types")

// CoercionError reports a conversion the type order does not allow, such as
// a block to an array.
type CoercionError struct {
	From Type
	To   Type
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot coerce %s to %s", e.From, e.To)
}

// LexError is a scanning problem. Scanning continues after it is reported.
type LexError struct {
	Line    int
	Column  int
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line+1, e.Column+1, e.Message)
}

// ErrorHandler receives lexical errors together with the source being run.
type ErrorHandler func(source, message string)
