package emit

import (
	"strings"

	"github.com/mrchypark/libdplyr/ast"
	"github.com/mrchypark/libdplyr/dialect"
	"github.com/mrchypark/libdplyr/query"
)

// Options is the subset of the façade's closed option set that affects
// emission. Only PreserveComments does today (spec.md §6).
type Options struct {
	PreserveComments bool
}

type emitter struct {
	adapter dialect.Adapter
	opts    Options
	model   *query.Model
}

// Emit walks model and writes SQL text for the given dialect adapter.
func Emit(model *query.Model, adapter dialect.Adapter, opts Options) (string, error) {
	e := &emitter{adapter: adapter, opts: opts, model: model}
	return e.emit()
}

func (e *emitter) commentsFor(clause string) string {
	if !e.opts.PreserveComments {
		return ""
	}
	var lines []string
	for _, c := range e.model.Comments {
		if c.Clause == clause {
			lines = append(lines, "-- "+c.Text)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func (e *emitter) emit() (string, error) {
	var b strings.Builder

	selectClause, err := e.renderSelect()
	if err != nil {
		return "", err
	}
	b.WriteString(e.commentsFor("SELECT"))
	b.WriteString(selectClause)

	b.WriteString(" FROM ")
	b.WriteString(renderIdentifier(e.model.Source, e.adapter))

	joinsClause, err := e.renderJoins()
	if err != nil {
		return "", err
	}
	if joinsClause != "" {
		b.WriteString(" ")
		b.WriteString(e.commentsFor("JOIN"))
		b.WriteString(joinsClause)
	}

	if len(e.model.WherePredicates) > 0 {
		where, err := e.renderPredicates(e.model.WherePredicates)
		if err != nil {
			return "", err
		}
		b.WriteString(" ")
		b.WriteString(e.commentsFor("WHERE"))
		b.WriteString("WHERE ")
		b.WriteString(where)
	}

	if len(e.model.GroupByColumns) > 0 {
		b.WriteString(" ")
		b.WriteString(e.commentsFor("GROUP BY"))
		b.WriteString("GROUP BY ")
		cols := make([]string, len(e.model.GroupByColumns))
		for i, c := range e.model.GroupByColumns {
			cols[i] = renderIdentifier(c, e.adapter)
		}
		b.WriteString(strings.Join(cols, ", "))
	}

	if len(e.model.HavingPredicates) > 0 {
		having, err := e.renderPredicates(e.model.HavingPredicates)
		if err != nil {
			return "", err
		}
		b.WriteString(" ")
		b.WriteString(e.commentsFor("HAVING"))
		b.WriteString("HAVING ")
		b.WriteString(having)
	}

	if len(e.model.OrderBy) > 0 {
		b.WriteString(" ")
		b.WriteString(e.commentsFor("ORDER BY"))
		b.WriteString("ORDER BY ")
		parts := make([]string, len(e.model.OrderBy))
		for i, o := range e.model.OrderBy {
			part := renderIdentifier(o.Column, e.adapter)
			if o.Dir == ast.Desc {
				part += " DESC"
			}
			parts[i] = part
		}
		b.WriteString(strings.Join(parts, ", "))
	}

	setOpsClause, err := e.renderSetOps()
	if err != nil {
		return "", err
	}
	if setOpsClause != "" {
		b.WriteString(" ")
		b.WriteString(e.commentsFor("SETOP"))
		b.WriteString(setOpsClause)
	}

	return b.String(), nil
}

func (e *emitter) renderPredicates(preds []ast.Expression) (string, error) {
	parts := make([]string, len(preds))
	for i, p := range preds {
		rendered, err := e.renderExpression(p, 0)
		if err != nil {
			return "", err
		}
		parts[i] = rendered
	}
	return strings.Join(parts, " AND "), nil
}

func (e *emitter) renderSelect() (string, error) {
	parts := make([]string, 0, len(e.model.Projections))
	for _, proj := range e.model.Projections {
		if proj.Invalid {
			return "", &GenerationError{Kind: InvalidColumnReference, Column: proj.Column}
		}
		if proj.Star {
			parts = append(parts, "*")
			continue
		}
		rendered, err := e.renderExpression(proj.Expr, 0)
		if err != nil {
			return "", err
		}
		if proj.Alias != "" {
			if ident, ok := proj.Expr.(*ast.Identifier); ok && ident.Name == proj.Alias {
				parts = append(parts, rendered)
				continue
			}
			// A computed (Binary/Unary) aliased column is parenthesized as a
			// whole, independent of the operator-precedence parens
			// renderExpression adds for nested subexpressions, so a reader
			// (or a later re-parse) sees the alias applies to the entire
			// arithmetic result, not just its last operand.
			switch proj.Expr.(type) {
			case *ast.Binary, *ast.Unary:
				rendered = "(" + rendered + ")"
			}
			parts = append(parts, rendered+" AS "+e.adapter.QuoteIdentifier(proj.Alias))
			continue
		}
		parts = append(parts, rendered)
	}
	prefix := "SELECT "
	if e.model.DistinctFlag {
		prefix = "SELECT DISTINCT "
	}
	return prefix + strings.Join(parts, ", "), nil
}

var joinKeyword = map[ast.JoinKind]string{
	ast.InnerJoin: "INNER JOIN",
	ast.LeftJoin:  "LEFT JOIN",
	ast.RightJoin: "RIGHT JOIN",
	ast.FullJoin:  "FULL OUTER JOIN",
}

func (e *emitter) renderJoins() (string, error) {
	var parts []string
	for _, j := range e.model.Joins {
		if j.Kind == ast.FullJoin && !e.adapter.SupportsFullOuterJoin() {
			return "", &GenerationError{
				Kind:      UnsupportedOperation,
				Operation: "full_join",
				Dialect:   e.adapter.Kind(),
			}
		}

		keyword := joinKeyword[j.Kind]
		right := renderIdentifier(j.RightSource, e.adapter)

		switch {
		case len(j.By) == 0 && j.On == nil:
			parts = append(parts, "CROSS JOIN "+right)

		case j.On != nil:
			cond, err := e.renderExpression(j.On, 0)
			if err != nil {
				return "", err
			}
			parts = append(parts, keyword+" "+right+" ON "+cond)

		default:
			conds := make([]string, len(j.By))
			for i, pair := range j.By {
				left := renderIdentifier(e.model.Source, e.adapter) + "." + renderIdentifier(pair.Left, e.adapter)
				rightCol := right + "." + renderIdentifier(pair.Right, e.adapter)
				conds[i] = left + " = " + rightCol
			}
			parts = append(parts, keyword+" "+right+" ON "+strings.Join(conds, " AND "))
		}
	}
	return strings.Join(parts, " "), nil
}

var setOpKeyword = map[ast.SetOpKind]string{
	ast.SetUnion:      "UNION",
	ast.SetIntersect:  "INTERSECT",
	ast.SetDifference: "EXCEPT",
}

func (e *emitter) renderSetOps() (string, error) {
	var parts []string
	for _, s := range e.model.SetOps {
		ident, ok := s.RightSource.(*ast.Identifier)
		if !ok {
			return "", &GenerationError{
				Kind:    ComplexExpression,
				Message: "set-operation right side must be a bare table identifier, not a nested pipeline",
			}
		}
		parts = append(parts, setOpKeyword[s.Kind]+" SELECT * FROM "+renderIdentifier(ident.Name, e.adapter))
	}
	return strings.Join(parts, " "), nil
}
