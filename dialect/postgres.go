package dialect

import "fmt"

type postgresAdapter struct{}

func (postgresAdapter) Kind() Kind { return PostgreSQL }

func (postgresAdapter) QuoteIdentifier(name string) string { return quoteWith(name, '"') }

func (postgresAdapter) QuoteStringLiteral(text string) string { return StringConstant(text) }

func (postgresAdapter) FormatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func (postgresAdapter) FormatNull() string { return "NULL" }

func (postgresAdapter) TranslateFunctionName(name string) string {
	return translateFunctionName(name, nil)
}

func (postgresAdapter) RenderLimit(n int, offset *int) string {
	if offset == nil {
		return fmt.Sprintf("LIMIT %d", n)
	}
	return fmt.Sprintf("LIMIT %d OFFSET %d", n, *offset)
}

func (postgresAdapter) SupportsFullOuterJoin() bool { return true }

func (postgresAdapter) StringConcat(left, right string) string {
	return left + " || " + right
}
