package libdplyr

import (
	"errors"
	"fmt"

	"github.com/mrchypark/libdplyr/emit"
	"github.com/mrchypark/libdplyr/parser"
	"github.com/mrchypark/libdplyr/query"
	"github.com/mrchypark/libdplyr/token"
)

// InputTooLargeError is returned when source text exceeds Options'
// configured cap (spec.md §6). It carries no span: the input was rejected
// before lexing ever ran.
type InputTooLargeError struct {
	Size  int
	Limit int
}

func (e *InputTooLargeError) Error() string {
	return fmt.Sprintf("InputTooLarge: input is %d bytes, limit is %d bytes", e.Size, e.Limit)
}

// TranslateError is the single error type that crosses Translate's public
// boundary (spec.md §7): a sum of LexError, ParseError, and GenerationError,
// each wrapping the stage's own narrower error value plus, when known, a
// source span. Validate and Translate both return *TranslateError (never a
// bare stage error) so callers have exactly one type to type-assert or
// errors.As against.
type TranslateError struct {
	// Stage names which pipeline stage produced the error: "input" (the size
	// check), "lex", "parse", "assemble", or "emit".
	Stage string
	Span  token.Span
	// HasSpan is false for errors with no derivable span (e.g.
	// InputTooLargeError, or an assembler error with a zero Span).
	HasSpan bool
	Err     error
}

func (e *TranslateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Err)
}

func (e *TranslateError) Unwrap() error { return e.Err }

// liftError wraps err, produced at the named stage, into a *TranslateError,
// extracting a span when the concrete error type carries one.
func liftError(stage string, err error) error {
	if err == nil {
		return nil
	}
	te := &TranslateError{Stage: stage, Err: err}

	var lexUnexpected *token.UnexpectedCharacterError
	var lexUnterminated *token.UnterminatedStringError
	var lexInvalidNumber *token.InvalidNumberError
	var parseErr *parser.ParseError
	var assembleErr *query.AssembleError
	var genErr *emit.GenerationError

	switch {
	case errors.As(err, &lexUnexpected):
		te.Span, te.HasSpan = lexUnexpected.Span, true
	case errors.As(err, &lexUnterminated):
		te.Span, te.HasSpan = lexUnterminated.Span, true
	case errors.As(err, &lexInvalidNumber):
		te.Span, te.HasSpan = lexInvalidNumber.Span, true
	case errors.As(err, &parseErr):
		te.Span, te.HasSpan = parseErr.Span, true
	case errors.As(err, &assembleErr):
		te.Span, te.HasSpan = assembleErr.Span, assembleErr.Span != (token.Span{})
	case errors.As(err, &genErr):
		// GenerationError carries no span today (spec.md §4.4 does not
		// list one on GenerationError's fields); HasSpan stays false.
	}
	return te
}
