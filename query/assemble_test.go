package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrchypark/libdplyr/ast"
	"github.com/mrchypark/libdplyr/parser"
)

func mustParse(t *testing.T, src string) *ast.Pipeline {
	t.Helper()
	p, err := parser.Parse(src)
	assert.NoError(t, err)
	return p
}

func TestAssembleDefaultsToStarProjection(t *testing.T) {
	m, err := Assemble(mustParse(t, "filter(age > 18)"))
	assert.NoError(t, err)
	assert.True(t, m.Projections[0].Star)
	assert.Len(t, m.WherePredicates, 1)
}

func TestAssembleFilterBeforeGroupByGoesToWhere(t *testing.T) {
	m, err := Assemble(mustParse(t, "filter(active) %>% group_by(dept) %>% filter(amount > 0)"))
	assert.NoError(t, err)
	assert.Len(t, m.WherePredicates, 1)
	assert.Len(t, m.HavingPredicates, 1)
}

func TestAssembleGroupByPrecedesSummarise(t *testing.T) {
	m, err := Assemble(mustParse(t, "group_by(dept) %>% summarise(total = sum(amount))"))
	assert.NoError(t, err)
	assert.True(t, m.Aggregated)
	assert.Equal(t, []string{"dept"}, m.GroupByColumns)
	// group-by column prepended to the aggregation projections
	assert.Len(t, m.Projections, 2)
	deptCol := m.Projections[0].Expr.(*ast.Identifier)
	assert.Equal(t, "dept", deptCol.Name)
	assert.Equal(t, "total", m.Projections[1].Alias)
}

func TestAssembleWholeTableAggregateWithoutGroupBy(t *testing.T) {
	m, err := Assemble(mustParse(t, "summarise(total = sum(amount))"))
	assert.NoError(t, err)
	assert.True(t, m.Aggregated)
	assert.Empty(t, m.GroupByColumns)
	assert.Len(t, m.Projections, 1)
}

func TestAssembleMutateRetainsPriorProjections(t *testing.T) {
	m, err := Assemble(mustParse(t, "select(name, salary) %>% mutate(bonus = salary * 0.1)"))
	assert.NoError(t, err)
	assert.Len(t, m.Projections, 3)
	assert.Equal(t, "bonus", m.Projections[2].Alias)
}

func TestAssembleSelectAfterMutateDropsUnmentionedAlias(t *testing.T) {
	m, err := Assemble(mustParse(t, "mutate(bonus = salary * 0.1) %>% select(name)"))
	assert.NoError(t, err)
	assert.Len(t, m.Projections, 1)
	ident := m.Projections[0].Expr.(*ast.Identifier)
	assert.Equal(t, "name", ident.Name)
}

func TestAssembleSelectAfterMutateRetainsMentionedAlias(t *testing.T) {
	m, err := Assemble(mustParse(t, "mutate(bonus = salary * 0.1) %>% select(name, bonus)"))
	assert.NoError(t, err)
	assert.Len(t, m.Projections, 2)
	assert.Equal(t, "bonus", m.Projections[1].Alias)
	bin := m.Projections[1].Expr.(*ast.Binary)
	assert.Equal(t, ast.OpMul, bin.Op)
}

func TestAssembleArrangeReplacesEarlier(t *testing.T) {
	m, err := Assemble(mustParse(t, "arrange(x) %>% arrange(desc(y))"))
	assert.NoError(t, err)
	assert.Len(t, m.OrderBy, 1)
	assert.Equal(t, "y", m.OrderBy[0].Column)
	assert.Equal(t, ast.Desc, m.OrderBy[0].Dir)
}

func TestAssembleGroupByReplacesEarlier(t *testing.T) {
	m, err := Assemble(mustParse(t, "group_by(a) %>% group_by(b, c)"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, m.GroupByColumns)
}

func TestAssembleRenameUpdatesExistingProjection(t *testing.T) {
	m, err := Assemble(mustParse(t, "select(name, age) %>% rename(full_name = name)"))
	assert.NoError(t, err)
	assert.Equal(t, "full_name", m.Projections[0].Alias)
	assert.Equal(t, "age", m.Projections[1].Expr.(*ast.Identifier).Name)
}

func TestAssembleRenameOfMissingColumnMarksInvalid(t *testing.T) {
	m, err := Assemble(mustParse(t, "select(name) %>% rename(x = nonexistent)"))
	assert.NoError(t, err)
	found := false
	for _, p := range m.Projections {
		if p.Invalid && p.Column == "nonexistent" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAssembleJoinAppendsJoin(t *testing.T) {
	m, err := Assemble(mustParse(t, `select(name) %>% left_join(other, by = "id")`))
	assert.NoError(t, err)
	assert.Len(t, m.Joins, 1)
	assert.Equal(t, ast.LeftJoin, m.Joins[0].Kind)
}

func TestAssembleSetOpAppendsSetOp(t *testing.T) {
	m, err := Assemble(mustParse(t, "select(id) %>% union(other)"))
	assert.NoError(t, err)
	assert.Len(t, m.SetOps, 1)
	assert.Equal(t, ast.SetUnion, m.SetOps[0].Kind)
}

func TestAssemblePreservesCommentsWhenPresent(t *testing.T) {
	m, err := Assemble(mustParse(t, "# only adults\nfilter(age > 18)"))
	assert.NoError(t, err)
	assert.Len(t, m.Comments, 1)
	assert.Equal(t, "only adults", m.Comments[0].Text)
	assert.Equal(t, "WHERE", m.Comments[0].Clause)
}
