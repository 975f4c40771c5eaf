package query

import (
	"fmt"

	"github.com/mrchypark/libdplyr/ast"
	"github.com/mrchypark/libdplyr/token"
)

// ErrorKind enumerates the rare assembly-local error shapes (spec.md §4.3's
// "Failure semantics"). The parser enforces nearly all shape rules, so
// Assemble raises InvalidOperation only for the small number of constraints
// local to the fold itself.
type ErrorKind int

const (
	InvalidOperation ErrorKind = iota
)

// AssembleError is returned by Assemble when a fold-local constraint is
// violated. Assembly is total for any Pipeline the parser accepts
// otherwise (spec.md §4.3).
type AssembleError struct {
	Kind    ErrorKind
	Span    token.Span
	Message string
}

func (e *AssembleError) Error() string {
	return fmt.Sprintf("assemble: %s", e.Message)
}

// Assemble folds pipeline's ordered operations into a Model.
func Assemble(pipeline *ast.Pipeline) (*Model, error) {
	m := &Model{Source: pipeline.Source, HasStar: true}
	mutateAliases := map[string]ast.Expression{}
	groupBySeen := false

	for _, op := range pipeline.Operations {
		switch o := op.(type) {
		case *ast.Select:
			m.Projections = resolveSelect(o, mutateAliases)
			m.HasStar = false
			addComment(m, "SELECT", o.Comment)

		case *ast.Filter:
			if groupBySeen {
				m.HavingPredicates = append(m.HavingPredicates, o.Condition)
				addComment(m, "HAVING", o.Comment)
			} else {
				m.WherePredicates = append(m.WherePredicates, o.Condition)
				addComment(m, "WHERE", o.Comment)
			}

		case *ast.Mutate:
			ensureStarPrefix(m)
			for _, a := range o.Assignments {
				mutateAliases[a.Alias] = a.Expr
				m.Projections = append(m.Projections, Projection{Alias: a.Alias, Expr: a.Expr})
			}
			addComment(m, "SELECT", o.Comment)

		case *ast.Arrange:
			m.OrderBy = o.Orders
			addComment(m, "ORDER BY", o.Comment)

		case *ast.GroupBy:
			m.GroupByColumns = o.Columns
			groupBySeen = true
			addComment(m, "GROUP BY", o.Comment)

		case *ast.Summarise:
			var projections []Projection
			for _, col := range m.GroupByColumns {
				projections = append(projections, Projection{Expr: &ast.Identifier{Name: col}})
			}
			for _, agg := range o.Aggregations {
				projections = append(projections, Projection{Alias: agg.Alias, Expr: agg.Call})
			}
			m.Projections = projections
			m.HasStar = false
			m.Aggregated = true
			addComment(m, "SELECT", o.Comment)

		case *ast.Rename:
			applyRename(m, o)
			addComment(m, "SELECT", o.Comment)

		case *ast.Join:
			m.Joins = append(m.Joins, *o)
			addComment(m, "JOIN", o.Comment)

		case *ast.SetOp:
			// Whether RightSource is a bare table identifier is checked at
			// emission, not here (spec.md §4.3: "a GenerationError is
			// raised at emission time").
			m.SetOps = append(m.SetOps, *o)
			addComment(m, "SETOP", o.Comment)

		default:
			return nil, &AssembleError{Kind: InvalidOperation, Span: op.Span(), Message: "unrecognized operation"}
		}
	}

	if len(m.Projections) == 0 && m.HasStar {
		m.Projections = []Projection{{Star: true}}
	}

	return m, nil
}

// addComment records a non-empty operation comment against the SQL clause
// it feeds, in pipeline order, for emit to re-render when
// Options.PreserveComments is set.
func addComment(m *Model, clause, text string) {
	if text == "" {
		return
	}
	m.Comments = append(m.Comments, ClauseComment{Clause: clause, Text: text})
}

// ensureStarPrefix pushes an explicit '*' projection the first time a
// Mutate (or a star-mode Rename) adds a column without a preceding Select
// or Summarise, so the emitted SELECT list reads "*, computed_col" instead
// of silently dropping every pre-existing column.
func ensureStarPrefix(m *Model) {
	if m.HasStar && len(m.Projections) == 0 {
		m.Projections = append(m.Projections, Projection{Star: true})
	}
}

// resolveSelect turns a Select's column list into projections, substituting
// any identifier that names a known mutate alias with that mutate's
// expression — so a later Select that mentions a mutate's alias retains the
// computed column instead of emitting a dangling bare reference.
func resolveSelect(sel *ast.Select, mutateAliases map[string]ast.Expression) []Projection {
	projections := make([]Projection, 0, len(sel.Columns))
	for _, col := range sel.Columns {
		expr := col.Expr
		alias := col.Alias
		if ident, ok := expr.(*ast.Identifier); ok {
			if mutateExpr, found := mutateAliases[ident.Name]; found {
				expr = mutateExpr
				if alias == "" {
					alias = ident.Name
				}
			}
		}
		projections = append(projections, Projection{Alias: alias, Expr: expr})
	}
	return projections
}

// applyRename updates existing projections in place by original name when a
// Select or Summarise has already reduced the projection list; when no
// reduction has happened yet, it adds alias-only projections instead (and
// cannot know whether the named column truly exists, since the engine has
// no catalog). When reduced and the name is not found, it records an
// Invalid projection for package emit to turn into InvalidColumnReference —
// assembly itself never fails for this (spec.md §4.3/§4.4).
func applyRename(m *Model, r *ast.Rename) {
	for _, pair := range r.Pairs {
		if !m.HasStar {
			if idx := findProjectionByName(m.Projections, pair.Old); idx >= 0 {
				m.Projections[idx].Alias = pair.New
				continue
			}
			m.Projections = append(m.Projections, Projection{Invalid: true, Column: pair.Old})
			continue
		}
		ensureStarPrefix(m)
		m.Projections = append(m.Projections, Projection{
			Alias: pair.New,
			Expr:  &ast.Identifier{Name: pair.Old},
		})
	}
}

// findProjectionByName returns the index of the projection whose rendered
// output name (alias, or bare identifier name) equals name, or -1.
func findProjectionByName(projections []Projection, name string) int {
	for i, p := range projections {
		if p.Star || p.Invalid {
			continue
		}
		if p.Alias == name {
			return i
		}
		if p.Alias == "" {
			if ident, ok := p.Expr.(*ast.Identifier); ok && ident.Name == name {
				return i
			}
		}
	}
	return -1
}
