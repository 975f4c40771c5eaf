package parser

import (
	"fmt"

	"github.com/mrchypark/libdplyr/token"
)

// ErrorKind enumerates the syntactic error kinds from spec.md §4.2/§7.
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	MissingArgument
	InvalidOperation
	TrailingTokens
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "UnexpectedToken"
	case MissingArgument:
		return "MissingArgument"
	case InvalidOperation:
		return "InvalidOperation"
	case TrailingTokens:
		return "TrailingTokens"
	default:
		return "Unknown"
	}
}

// ParseError is the single error type returned by Parse. Hints are advisory
// text only; callers must switch on Kind, never parse Hint.
type ParseError struct {
	Kind    ErrorKind
	Span    token.Span
	Message string
	Hint    string // empty when there is no hint
}

func (e *ParseError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s at %s: %s (%s)", e.Kind, e.Span, e.Message, e.Hint)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Span, e.Message)
}

func newUnexpectedToken(expected string, found token.Token) *ParseError {
	return &ParseError{
		Kind:    UnexpectedToken,
		Span:    found.Span,
		Message: fmt.Sprintf("expected %s, found %s", expected, describe(found)),
	}
}

func newUnexpectedTokenWithHint(expected string, found token.Token, hint string) *ParseError {
	e := newUnexpectedToken(expected, found)
	e.Hint = hint
	return e
}

func newMissingArgument(verb string, position string) *ParseError {
	return &ParseError{
		Kind:    MissingArgument,
		Message: fmt.Sprintf("%s is missing required argument %s", verb, position),
	}
}

func newInvalidOperation(verb string, span token.Span, reason string) *ParseError {
	return &ParseError{
		Kind:    InvalidOperation,
		Span:    span,
		Message: fmt.Sprintf("%s: %s", verb, reason),
	}
}

func newTrailingTokens(span token.Span) *ParseError {
	return &ParseError{
		Kind:    TrailingTokens,
		Span:    span,
		Message: "unexpected input after a complete pipeline",
	}
}

func describe(t token.Token) string {
	if t.Kind == token.EOF {
		return "end of input"
	}
	if t.Text != "" {
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	}
	return t.Kind.String()
}
