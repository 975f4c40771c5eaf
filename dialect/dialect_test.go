package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRejectsUnknownKind(t *testing.T) {
	_, err := New(Kind(99))
	assert.Error(t, err)
}

func TestQuoteIdentifierDoublesEmbeddedQuote(t *testing.T) {
	pg, _ := New(PostgreSQL)
	assert.Equal(t, `"a""b"`, pg.QuoteIdentifier(`a"b`))

	my, _ := New(MySQL)
	assert.Equal(t, "`a``b`", my.QuoteIdentifier("a`b"))
}

func TestFullOuterJoinSupportMatrix(t *testing.T) {
	cases := map[Kind]bool{
		PostgreSQL: true,
		MySQL:      false,
		SQLite:     false,
		DuckDB:     true,
	}
	for kind, want := range cases {
		adapter, err := New(kind)
		assert.NoError(t, err)
		assert.Equal(t, want, adapter.SupportsFullOuterJoin())
	}
}

func TestBooleanFormatting(t *testing.T) {
	sqlite, _ := New(SQLite)
	assert.Equal(t, "1", sqlite.FormatBool(true))
	assert.Equal(t, "0", sqlite.FormatBool(false))

	pg, _ := New(PostgreSQL)
	assert.Equal(t, "TRUE", pg.FormatBool(true))
	assert.Equal(t, "FALSE", pg.FormatBool(false))
}

func TestMySQLLimitOffsetGrammar(t *testing.T) {
	my, _ := New(MySQL)
	offset := 5
	assert.Equal(t, "LIMIT 5, 10", my.RenderLimit(10, &offset))
	assert.Equal(t, "LIMIT 10", my.RenderLimit(10, nil))
}

func TestPostgresLimitOffsetGrammar(t *testing.T) {
	pg, _ := New(PostgreSQL)
	offset := 5
	assert.Equal(t, "LIMIT 10 OFFSET 5", pg.RenderLimit(10, &offset))
}

func TestAggregateFunctionNameTranslation(t *testing.T) {
	pg, _ := New(PostgreSQL)
	assert.Equal(t, "AVG", pg.TranslateFunctionName("mean"))
	assert.Equal(t, "COUNT", pg.TranslateFunctionName("n"))
	assert.Equal(t, "unknown_fn", pg.TranslateFunctionName("unknown_fn"))
}
