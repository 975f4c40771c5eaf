package ast

// DefaultSource is the literal data source name used when a pipeline has no
// explicit leading identifier (spec.md §3: "the engine never invents
// otherwise").
const DefaultSource = "data"

// Pipeline is an ordered sequence of Operations plus an optional initial
// data source. A Pipeline is immutable once parsed (invariant 6).
type Pipeline struct {
	Source     string // DefaultSource when absent from the source text
	HasSource  bool   // true iff the source text actually named a source
	Operations []Operation
}
