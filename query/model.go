// Package query folds an ast.Pipeline's ordered operations into a query
// model: the SELECT list, WHERE, GROUP BY, HAVING, ORDER BY, joins, and set
// operations that package emit walks to produce SQL text. This package is
// dialect-agnostic (spec.md §4.3 lists no dialect-dependent field).
package query

import "github.com/mrchypark/libdplyr/ast"

// Projection is one entry of the eventual SELECT list.
type Projection struct {
	// Star, when true, represents the bare '*' wildcard; Alias and Expr are
	// unused in that case.
	Star bool
	// Alias is the name to the left of AS, or empty when the projection
	// should render as a bare identifier (no alias needed).
	Alias string
	Expr  ast.Expression
	// Invalid marks a Rename whose Column names no projection that exists
	// in a reduced (non-star) projection list. Assembly never fails for
	// this; package emit raises InvalidColumnReference when it walks an
	// Invalid projection (spec.md §4.4).
	Invalid bool
	Column  string
}

// Model is the query assembled from a Pipeline: the fields named by
// spec.md §4.3.
type Model struct {
	Source  string
	HasStar bool // true until a Select or Summarise reduces the projection
	Projections      []Projection
	WherePredicates  []ast.Expression
	GroupByColumns   []string
	HavingPredicates []ast.Expression
	OrderBy          []ast.OrderExpr
	Joins            []ast.Join
	SetOps           []ast.SetOp
	// DistinctFlag is carried per spec.md §4.3's field list. No operation in
	// the current grammar sets it; it exists so a future `distinct()` verb
	// has a field to populate without another Model shape change.
	DistinctFlag bool
	// Aggregated is true once a Summarise operation has folded in.
	Aggregated bool
	// Comments holds, in pipeline order, the '#' comments preceding each
	// operation that emit re-renders as "-- ..." lines immediately before
	// the SQL clause that operation fed into (Options.PreserveComments).
	Comments []ClauseComment
}

// ClauseComment pairs a comment's text with the name of the SQL clause it
// should be rendered just above: "SELECT", "WHERE", "HAVING", "GROUP BY",
// "ORDER BY", "JOIN", or "SETOP".
type ClauseComment struct {
	Clause string
	Text   string
}
