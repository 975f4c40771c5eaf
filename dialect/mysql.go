package dialect

import "fmt"

type mysqlAdapter struct{}

func (mysqlAdapter) Kind() Kind { return MySQL }

func (mysqlAdapter) QuoteIdentifier(name string) string { return quoteWith(name, '`') }

func (mysqlAdapter) QuoteStringLiteral(text string) string { return StringConstant(text) }

func (mysqlAdapter) FormatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func (mysqlAdapter) FormatNull() string { return "NULL" }

var mysqlFunctionOverrides = map[string]string{
	"median": "MEDIAN", // not natively supported by MySQL; passed through for the caller to handle upstream
}

func (mysqlAdapter) TranslateFunctionName(name string) string {
	return translateFunctionName(name, mysqlFunctionOverrides)
}

func (mysqlAdapter) RenderLimit(n int, offset *int) string {
	if offset == nil {
		return fmt.Sprintf("LIMIT %d", n)
	}
	// MySQL spells offset-then-count as "LIMIT offset, count".
	return fmt.Sprintf("LIMIT %d, %d", *offset, n)
}

func (mysqlAdapter) SupportsFullOuterJoin() bool { return false }

func (mysqlAdapter) StringConcat(left, right string) string {
	return "CONCAT(" + left + ", " + right + ")"
}
