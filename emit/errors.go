// Package emit walks a query.Model and writes SQL text, delegating
// identifier quoting, string escaping, and function-name translation to a
// dialect.Adapter.
package emit

import (
	"fmt"

	"github.com/mrchypark/libdplyr/dialect"
)

// ErrorKind enumerates the generation error kinds from spec.md §7.
type ErrorKind int

const (
	UnsupportedOperation ErrorKind = iota
	InvalidColumnReference
	ComplexExpression
)

func (k ErrorKind) String() string {
	switch k {
	case UnsupportedOperation:
		return "UnsupportedOperation"
	case InvalidColumnReference:
		return "InvalidColumnReference"
	case ComplexExpression:
		return "ComplexExpression"
	default:
		return "Unknown"
	}
}

// GenerationError is the single error type emit.Emit returns.
type GenerationError struct {
	Kind      ErrorKind
	Operation string
	Dialect   dialect.Kind
	Column    string
	Message   string
}

func (e *GenerationError) Error() string {
	switch e.Kind {
	case UnsupportedOperation:
		return fmt.Sprintf("UnsupportedOperation: %s is not supported by %s", e.Operation, e.Dialect)
	case InvalidColumnReference:
		return fmt.Sprintf("InvalidColumnReference: column %q does not exist in the current projection", e.Column)
	case ComplexExpression:
		return fmt.Sprintf("ComplexExpression: %s", e.Message)
	default:
		return e.Message
	}
}
