package dialect

import "fmt"

type sqliteAdapter struct{}

func (sqliteAdapter) Kind() Kind { return SQLite }

func (sqliteAdapter) QuoteIdentifier(name string) string { return quoteWith(name, '"') }

func (sqliteAdapter) QuoteStringLiteral(text string) string { return StringConstant(text) }

// SQLite has no native boolean type; it stores booleans as the integers 1/0.
func (sqliteAdapter) FormatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (sqliteAdapter) FormatNull() string { return "NULL" }

func (sqliteAdapter) TranslateFunctionName(name string) string {
	return translateFunctionName(name, nil)
}

func (sqliteAdapter) RenderLimit(n int, offset *int) string {
	if offset == nil {
		return fmt.Sprintf("LIMIT %d", n)
	}
	return fmt.Sprintf("LIMIT %d OFFSET %d", n, *offset)
}

func (sqliteAdapter) SupportsFullOuterJoin() bool { return false }

func (sqliteAdapter) StringConcat(left, right string) string {
	return left + " || " + right
}
