package dialect

import "fmt"

type duckdbAdapter struct{}

func (duckdbAdapter) Kind() Kind { return DuckDB }

func (duckdbAdapter) QuoteIdentifier(name string) string { return quoteWith(name, '"') }

func (duckdbAdapter) QuoteStringLiteral(text string) string { return StringConstant(text) }

func (duckdbAdapter) FormatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func (duckdbAdapter) FormatNull() string { return "NULL" }

func (duckdbAdapter) TranslateFunctionName(name string) string {
	return translateFunctionName(name, nil)
}

func (duckdbAdapter) RenderLimit(n int, offset *int) string {
	if offset == nil {
		return fmt.Sprintf("LIMIT %d", n)
	}
	return fmt.Sprintf("LIMIT %d OFFSET %d", n, *offset)
}

func (duckdbAdapter) SupportsFullOuterJoin() bool { return true }

func (duckdbAdapter) StringConcat(left, right string) string {
	return left + " || " + right
}
