// Package cache implements the "optional, opt-in result cache" spec.md §5
// allows a wrapping layer to provide without it being part of the core
// contract. Cache entries are immutable; there is no invalidation because
// Translate is a pure function of its inputs (spec.md §9's Caching note).
package cache

import (
	"sync"

	"github.com/mrchypark/libdplyr"
	"github.com/mrchypark/libdplyr/dialect"
	"github.com/mrchypark/libdplyr/trace"
)

// key must include the dialect identity and every option that can affect
// output — currently only PreserveComments (spec.md §9).
type key struct {
	source           string
	dialect          dialect.Kind
	preserveComments bool
}

// Engine wraps an *libdplyr.Engine with a result cache keyed on
// (source text, dialect, PreserveComments).
type Engine struct {
	inner *libdplyr.Engine

	mu      sync.RWMutex
	entries map[key]string
}

// New wraps engine with a result cache. A nil engine wraps libdplyr.NewEngine().
func New(engine *libdplyr.Engine) *Engine {
	if engine == nil {
		engine = libdplyr.NewEngine()
	}
	return &Engine{inner: engine, entries: make(map[key]string)}
}

// Translate returns the cached SQL for (source, d, opts.PreserveComments)
// if present, otherwise delegates to the wrapped Engine and caches a
// successful result. Errors are never cached: a caller that fixes a typo
// and retranslates the same source must not see a stale failure.
func (c *Engine) Translate(source string, d dialect.Kind, opts libdplyr.Options) (string, error) {
	k := key{source: source, dialect: d, preserveComments: opts.PreserveComments}

	c.mu.RLock()
	sql, ok := c.entries[k]
	c.mu.RUnlock()
	if ok {
		c.traceHit(opts)
		return sql, nil
	}

	sql, err := c.inner.Translate(source, d, opts)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.entries[k] = sql
	c.mu.Unlock()
	return sql, nil
}

// traceHit emits a cache-hit trace record tagged with a fresh call-ID, since
// a cache hit never runs Translate and so never generates one of its own
// (spec.md §9: caching is independent of the core's own trace hooks).
func (c *Engine) traceHit(opts libdplyr.Options) {
	if !opts.DebugTrace || opts.Trace == nil {
		return
	}
	opts.Trace.Emit(trace.Record{
		Stage:   "cache",
		Summary: "cache hit",
		CallID:  trace.NewCallID(),
	})
}
