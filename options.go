// Package libdplyr composes the lexer, parser, query assembler, and emitter
// into the two public entry points described by spec.md §4.5: Translate and
// Validate. It is the only package a caller outside this module needs to
// import.
package libdplyr

import "github.com/mrchypark/libdplyr/trace"

// Options is the closed set of translate-affecting options from spec.md §6.
// Adding a field here is the only way to grow the option surface; it is not
// an open bag of caller-supplied settings.
type Options struct {
	// StrictMode is reserved for future tightening; currently a no-op.
	StrictMode bool

	// PreserveComments: when true, a '#' line comment that directly precedes
	// an operation's verb is re-emitted as a "-- ..." line immediately before
	// the SQL clause that operation feeds. Of several consecutive comment
	// lines only the last is kept, and comments in any other position
	// (before the source name or a '%>%', inside an argument list, or after
	// the last operation) are not re-emitted.
	PreserveComments bool

	// DebugTrace: when true, the engine writes structured trace records to
	// Trace, if non-nil. A true value with a nil Trace is a no-op — the
	// core owns no sinks (spec.md §5/§6).
	DebugTrace bool

	// MaxInputBytes caps the source length accepted by Translate/Validate.
	// Zero means "use the default" (DefaultMaxInputBytes); the engine never
	// reads this field as "no limit".
	MaxInputBytes int

	// MaxTranslateDurationMS is advisory only; the core never enforces
	// timing itself (spec.md §5 — "a caller that wishes to bound latency
	// wraps the call with external timeout machinery"). It exists purely
	// so a wrapping layer that does enforce timeouts has somewhere to read
	// the budget from a single Options value.
	MaxTranslateDurationMS int

	// Trace receives Options.DebugTrace records when non-nil. Never set by
	// config.Load; wire it in-process.
	Trace trace.Sink
}

// DefaultMaxInputBytes is the input cap used when Options.MaxInputBytes is
// zero (spec.md §6: "default 1 MiB").
const DefaultMaxInputBytes = 1 << 20

func (o Options) maxInputBytes() int {
	if o.MaxInputBytes <= 0 {
		return DefaultMaxInputBytes
	}
	return o.MaxInputBytes
}
