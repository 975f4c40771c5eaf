package dialect

import "strings"

// quoteWith wraps name in quote on both sides, doubling any embedded
// occurrence of quote (the universal SQL identifier-quoting escape, shared
// by double-quote and backtick dialects alike).
func quoteWith(name string, quote byte) string {
	q := string(quote)
	escaped := strings.ReplaceAll(name, q, q+q)
	return q + escaped + q
}

// StringConstant renders text as a single-quoted SQL string literal,
// doubling embedded single quotes — the one escaping convention shared by
// every dialect this package supports.
func StringConstant(text string) string {
	escaped := strings.ReplaceAll(text, "'", "''")
	return "'" + escaped + "'"
}
