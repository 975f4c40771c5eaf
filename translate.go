package libdplyr

import (
	"github.com/mrchypark/libdplyr/ast"
	"github.com/mrchypark/libdplyr/dialect"
	"github.com/mrchypark/libdplyr/emit"
	"github.com/mrchypark/libdplyr/parser"
	"github.com/mrchypark/libdplyr/query"
	"github.com/mrchypark/libdplyr/token"
	"github.com/mrchypark/libdplyr/trace"
)

// Engine composes the four-stage pipeline (spec.md §2) behind the two
// public operations. It holds no interior mutable state: every field is set
// at construction and never written again, so a single Engine value is safe
// to share across goroutines (spec.md §5).
type Engine struct{}

// NewEngine returns a ready-to-use Engine. There is nothing to configure at
// construction time; Options are supplied per call.
func NewEngine() *Engine { return &Engine{} }

// Translate runs lex, parse, assemble, and emit over source for the given
// dialect, returning the SQL text or the first error encountered (spec.md
// §4.5). It is a pure function of its inputs: no I/O, no shared state.
func Translate(source string, d dialect.Kind, opts Options) (string, error) {
	return NewEngine().Translate(source, d, opts)
}

// Validate runs lex+parse only, discarding the AST, and reports whether
// source is a well-formed pipeline (spec.md §4.5).
func Validate(source string, opts Options) error {
	return NewEngine().Validate(source, opts)
}

func (e *Engine) Translate(source string, d dialect.Kind, opts Options) (string, error) {
	callID := ""
	if opts.DebugTrace && opts.Trace != nil {
		callID = trace.NewCallID()
	}
	emitTrace := func(stage string, span token.Span, summary string) {
		if opts.DebugTrace && opts.Trace != nil {
			opts.Trace.Emit(trace.Record{Stage: stage, Span: span, Summary: summary, CallID: callID})
		}
	}

	if err := checkSize(source, opts); err != nil {
		emitTrace("input", token.Span{}, err.Error())
		return "", err
	}

	pipeline, err := lexAndParse(source)
	if err != nil {
		emitTrace("parse", spanOf(err), err.Error())
		return "", err
	}
	emitTrace("parse", pipeline.Operations[len(pipeline.Operations)-1].Span(), "parsed pipeline")

	adapter, err := dialect.New(d)
	if err != nil {
		return "", liftError("emit", err)
	}

	model, err := query.Assemble(pipeline)
	if err != nil {
		lifted := liftError("assemble", err)
		emitTrace("assemble", spanOf(lifted), err.Error())
		return "", lifted
	}
	emitTrace("assemble", token.Span{}, "assembled query model")

	sql, err := emit.Emit(model, adapter, emit.Options{PreserveComments: opts.PreserveComments})
	if err != nil {
		lifted := liftError("emit", err)
		emitTrace("emit", spanOf(lifted), err.Error())
		return "", lifted
	}
	emitTrace("emit", token.Span{}, "emitted SQL")

	return sql, nil
}

func (e *Engine) Validate(source string, opts Options) error {
	if err := checkSize(source, opts); err != nil {
		return err
	}
	_, err := lexAndParse(source)
	if err != nil {
		return err
	}
	return nil
}

// lexAndParse runs stages 1–2 and lifts whichever error results into a
// *TranslateError, so both Translate and Validate return one error type.
func lexAndParse(source string) (*ast.Pipeline, error) {
	pipeline, err := parser.Parse(source)
	if err != nil {
		if isLexError(err) {
			return nil, liftError("lex", err)
		}
		return nil, liftError("parse", err)
	}
	return pipeline, nil
}

func isLexError(err error) bool {
	switch err.(type) {
	case *token.UnexpectedCharacterError, *token.UnterminatedStringError, *token.InvalidNumberError:
		return true
	default:
		return false
	}
}

func checkSize(source string, opts Options) error {
	limit := opts.maxInputBytes()
	if len(source) > limit {
		return liftError("input", &InputTooLargeError{Size: len(source), Limit: limit})
	}
	return nil
}

func spanOf(err error) token.Span {
	if te, ok := err.(*TranslateError); ok && te.HasSpan {
		return te.Span
	}
	return token.Span{}
}
