package ast

import "github.com/mrchypark/libdplyr/token"

// Operation is the sum type of the nine recognized verbs. Every variant
// carries the source span of its verb token.
type Operation interface {
	Span() token.Span
	opNode()
}

// Select replaces the projection list.
type Select struct {
	Columns []ColumnExpr
	Sp      token.Span
	Comment string
}

func (s *Select) Span() token.Span { return s.Sp }
func (*Select) opNode()            {}

// Filter appends a predicate to WHERE (or HAVING, if a GroupBy already
// appeared in the same pipeline).
type Filter struct {
	Condition Expression
	Sp        token.Span
	Comment   string
}

func (f *Filter) Span() token.Span { return f.Sp }
func (*Filter) opNode()            {}

// Mutate adds computed, aliased projection columns.
type Mutate struct {
	Assignments []ColumnExpr
	Sp          token.Span
	Comment     string
}

func (m *Mutate) Span() token.Span { return m.Sp }
func (*Mutate) opNode()            {}

// Arrange replaces the ORDER BY list.
type Arrange struct {
	Orders  []OrderExpr
	Sp      token.Span
	Comment string
}

func (a *Arrange) Span() token.Span { return a.Sp }
func (*Arrange) opNode()            {}

// GroupBy sets the GROUP BY column list. Columns are bare identifiers
// (invariant 4 in spec.md §3).
type GroupBy struct {
	Columns []string
	Sp      token.Span
	Comment string
}

func (g *GroupBy) Span() token.Span { return g.Sp }
func (*GroupBy) opNode()            {}

// Summarise replaces the projection list with aggregations, prepending any
// preceding group-by columns.
type Summarise struct {
	Aggregations []Aggregation
	Sp           token.Span
	Comment      string
}

func (s *Summarise) Span() token.Span { return s.Sp }
func (*Summarise) opNode()            {}

// RenamePair is a single `new = old` entry inside a Rename operation.
type RenamePair struct {
	New string
	Old string
}

// Rename updates existing projections in place by original name.
type Rename struct {
	Pairs   []RenamePair
	Sp      token.Span
	Comment string
}

func (r *Rename) Span() token.Span { return r.Sp }
func (*Rename) opNode()            {}

// JoinKind enumerates the four supported join flavors.
type JoinKind int

const (
	InnerJoin JoinKind = iota
	LeftJoin
	RightJoin
	FullJoin
)

// JoinColumnPair is one `left = right` (or bare, equal-name) entry of a
// join's `by` argument.
type JoinColumnPair struct {
	Left  string
	Right string
}

// Join appends a join clause. Exactly one of By or On is populated, or
// neither (a cross join), never both.
type Join struct {
	Kind        JoinKind
	RightSource string // the bare identifier naming the joined table
	By          []JoinColumnPair
	On          Expression
	Sp          token.Span
	Comment     string
}

func (j *Join) Span() token.Span { return j.Sp }
func (*Join) opNode()            {}

// SetOpKind enumerates the three supported set operations.
type SetOpKind int

const (
	SetUnion SetOpKind = iota
	SetIntersect
	SetDifference
)

// SetOp appends a set operation. RightSource is itself an expression: the
// parser accepts any expression here, but only a bare Identifier is
// renderable as a table reference (spec.md §9's recorded open-question
// decision); anything else fails at emission with ComplexExpression.
type SetOp struct {
	Kind        SetOpKind
	RightSource Expression
	Sp          token.Span
	Comment     string
}

func (s *SetOp) Span() token.Span { return s.Sp }
func (*SetOp) opNode()            {}
