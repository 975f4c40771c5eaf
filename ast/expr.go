// Package ast defines the abstract syntax tree produced by package parser:
// expressions, column/order/aggregation wrappers, operations, and pipelines.
// Every node owns its string data; none of it borrows from the source text.
package ast

import "github.com/mrchypark/libdplyr/token"

// Expression is the sum type of all expression node shapes. Every variant
// below implements it; a type switch over Expression is expected to be
// exhaustive at every call site.
type Expression interface {
	Span() token.Span
	exprNode()
}

// LiteralKind distinguishes the literal variants of a Literal node.
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBool
	LiteralNull // the NA token
)

// Identifier is a bare name reference (column, table, or function target).
type Identifier struct {
	Name string
	Sp   token.Span
}

func (i *Identifier) Span() token.Span { return i.Sp }
func (*Identifier) exprNode()          {}

// Literal is a scalar constant: string, number, bool, or NA.
type Literal struct {
	Kind LiteralKind
	// Str holds the unescaped text for LiteralString.
	Str string
	// Num holds the parsed value for LiteralNumber.
	Num float64
	// Bool holds the value for LiteralBool.
	Bool bool
	Sp   token.Span
}

func (l *Literal) Span() token.Span { return l.Sp }
func (*Literal) exprNode()          {}

// BinaryOp enumerates the arithmetic, comparison, and logical binary
// operators accepted by the expression grammar.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
)

// Binary is a two-operand expression; op is drawn from arithmetic,
// comparison, or logical operators.
type Binary struct {
	Left  Expression
	Op    BinaryOp
	Right Expression
	Sp    token.Span
}

func (b *Binary) Span() token.Span { return b.Sp }
func (*Binary) exprNode()          {}

// UnaryOp enumerates the unary operators: arithmetic negation and logical not.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
)

// Unary is a one-operand expression: negation or logical not.
type Unary struct {
	Op      UnaryOp
	Operand Expression
	Sp      token.Span
}

func (u *Unary) Span() token.Span { return u.Sp }
func (*Unary) exprNode()          {}

// NamedArg is a `name = value` pair accepted inside a join's argument list.
type NamedArg struct {
	Name  string
	Value Expression
	Sp    token.Span
}

// FunctionCall is an identifier applied to positional and/or named
// arguments, e.g. `mean(salary)` or `left_join(other, by = "id")`.
type FunctionCall struct {
	Name      string
	Args      []Expression
	NamedArgs []NamedArg
	Sp        token.Span
}

func (f *FunctionCall) Span() token.Span { return f.Sp }
func (*FunctionCall) exprNode()          {}

// ColumnExpr pairs an Expression with an optional alias — the identifier to
// the left of '=' in a select or mutate position.
type ColumnExpr struct {
	Alias string // empty when absent
	Expr  Expression
	Sp    token.Span
}

// Direction is the sort direction of an OrderExpr.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// OrderExpr pairs a column name with a sort direction.
type OrderExpr struct {
	Column string
	Dir    Direction
	Sp     token.Span
}

// Aggregation pairs an alias with an Expression that must be a FunctionCall
// whose name is a recognized aggregate (invariant 2 in spec.md §3).
type Aggregation struct {
	Alias string
	Call  *FunctionCall
	Sp    token.Span
}

// RecognizedAggregates is the fixed set of aggregate function names.
var RecognizedAggregates = map[string]bool{
	"mean":   true,
	"avg":    true,
	"sum":    true,
	"count":  true,
	"n":      true,
	"min":    true,
	"max":    true,
	"median": true,
}
