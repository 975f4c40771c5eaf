package trace

import (
	"fmt"

	"github.com/k0kubun/pp/v3"
)

// PrettySink is a convenience Sink for human inspection of query models and
// ASTs during development, pretty-printing payloads with pp.Println instead
// of a bare fmt dump.
type PrettySink struct{}

// NewPrettySink returns a PrettySink.
func NewPrettySink() *PrettySink { return &PrettySink{} }

func (s *PrettySink) Emit(r Record) {
	fmt.Printf("[%s] %s (%s)\n", r.Stage, r.Summary, r.Span)
}

// EmitWithPayload pretty-prints payload (an *ast.Pipeline, *query.Model, or
// any other stage value) via pp.Println in addition to the usual Record
// line. Intended for interactive debugging, never called from the core
// translate path.
func (s *PrettySink) EmitWithPayload(r Record, payload any) {
	s.Emit(r)
	if payload != nil {
		pp.Println(payload)
	}
}
