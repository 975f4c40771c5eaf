// Package dialect models a SQL backend as a small capability record — an
// interface implemented once per backend — rather than through inheritance.
// Stages 3 (query) are dialect-agnostic; only package emit consumes this
// package, one adapter per translate call, passed by reference.
package dialect

import "fmt"

// Kind is the closed enumeration of supported SQL backends.
type Kind int

const (
	PostgreSQL Kind = iota
	MySQL
	SQLite
	DuckDB
)

func (k Kind) String() string {
	switch k {
	case PostgreSQL:
		return "postgresql"
	case MySQL:
		return "mysql"
	case SQLite:
		return "sqlite"
	case DuckDB:
		return "duckdb"
	default:
		return "unknown"
	}
}

// Adapter is the capability set threaded through the emitter: identifier
// quoting, string escaping, boolean/null spelling, function-name
// translation, LIMIT/OFFSET grammar, full-outer-join support, and string
// concatenation spelling.
type Adapter interface {
	Kind() Kind
	QuoteIdentifier(name string) string
	QuoteStringLiteral(text string) string
	FormatBool(b bool) string
	FormatNull() string
	TranslateFunctionName(name string) string
	RenderLimit(n int, offset *int) string
	SupportsFullOuterJoin() bool
	StringConcat(left, right string) string
}

// New returns the adapter for kind, or an error when kind is not one of the
// four closed values above; additional dialects are added only by extending
// Kind and supplying a new adapter here (spec.md §6).
func New(kind Kind) (Adapter, error) {
	switch kind {
	case PostgreSQL:
		return postgresAdapter{}, nil
	case MySQL:
		return mysqlAdapter{}, nil
	case SQLite:
		return sqliteAdapter{}, nil
	case DuckDB:
		return duckdbAdapter{}, nil
	default:
		return nil, fmt.Errorf("dialect: unknown kind %d", kind)
	}
}

// baseFunctionNames maps the recognized aggregate spellings to their SQL
// function names. Dialects override individual entries via their own
// functionOverrides map; everything else passes through verbatim.
var baseFunctionNames = map[string]string{
	"mean":   "AVG",
	"avg":    "AVG",
	"sum":    "SUM",
	"count":  "COUNT",
	"n":      "COUNT",
	"min":    "MIN",
	"max":    "MAX",
	"median": "MEDIAN",
}

func translateFunctionName(name string, overrides map[string]string) string {
	if f, ok := overrides[name]; ok {
		return f
	}
	if f, ok := baseFunctionNames[name]; ok {
		return f
	}
	return name
}
