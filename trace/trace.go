// Package trace implements the "engine may expose trace hooks but owns no
// sinks" contract from spec.md §5/§6. Nothing in this module writes to a
// sink unless the caller supplies one: Options.DebugTrace with a nil Sink is
// a no-op, not an error.
package trace

import (
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/mrchypark/libdplyr/token"
)

// NewCallID mints a fresh call-correlation ID. Every Record a single
// Translate/Validate call emits shares one CallID, so a sink aggregating
// records from concurrent callers can regroup them (spec.md §5: concurrent
// callers share no state, but their trace output may land on one sink).
func NewCallID() string {
	return uuid.NewString()
}

// Record is a single structured trace event: which stage produced it, the
// source span it concerns (the zero Span when the event has none), a
// human-readable summary, and the CallID correlating every record emitted
// by one Translate/Validate call.
type Record struct {
	Stage   string
	Span    token.Span
	Summary string
	CallID  string
}

// Sink receives Records. Implementations must not block the caller for
// long; the engine emits synchronously on the calling goroutine.
type Sink interface {
	Emit(Record)
}

// SlogSink is a convenience Sink built on log/slog. It logs each Record at
// slog.LevelDebug under the key "stage" (see LevelFromEnv for the
// LOG_LEVEL environment convention).
type SlogSink struct {
	Logger *slog.Logger
}

// NewSlogSink returns a SlogSink writing to slog.Default() if logger is nil.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{Logger: logger}
}

func (s *SlogSink) Emit(r Record) {
	s.Logger.Debug(r.Summary,
		"stage", r.Stage,
		"span", r.Span.String(),
		"call_id", r.CallID,
	)
}

// LevelFromEnv configures slog's default handler from the LOG_LEVEL
// environment variable (debug, info, warn, error). The core never calls
// this itself — it is a convenience for a host layer wiring up a SlogSink.
func LevelFromEnv() {
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		return
	}

	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
