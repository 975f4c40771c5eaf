// Package token implements the lexical analysis stage: it turns dplyr-dialect
// source text into a stream of Tokens. It is dialect-agnostic — no dialect
// adapter is threaded through this package.
package token

// Kind classifies a Token.
type Kind int

const (
	EOF Kind = iota

	Ident
	String
	Number
	Bool
	NA // the NA literal, a distinct kind from Bool/Null

	// keywords
	KwSelect
	KwFilter
	KwMutate
	KwArrange
	KwGroupBy
	KwSummarise // covers both summarise and summarize spellings
	KwRename
	KwDesc
	KwInnerJoin
	KwLeftJoin
	KwRightJoin
	KwFullJoin
	KwUnion
	KwIntersect
	KwSetdiff

	Pipe // %>%

	Assign // =
	Eq     // ==
	Ne     // !=
	Lt
	Le
	Gt
	Ge

	And // & or &&
	Or  // | or ||
	Not // !

	Plus
	Minus
	Star
	Slash

	LParen
	RParen
	Comma
)

var kindNames = map[Kind]string{
	EOF:         "EOF",
	Ident:       "identifier",
	String:      "string literal",
	Number:      "number literal",
	Bool:        "boolean literal",
	NA:          "NA",
	KwSelect:    "select",
	KwFilter:    "filter",
	KwMutate:    "mutate",
	KwArrange:   "arrange",
	KwGroupBy:   "group_by",
	KwSummarise: "summarise",
	KwRename:    "rename",
	KwDesc:      "desc",
	KwInnerJoin: "inner_join",
	KwLeftJoin:  "left_join",
	KwRightJoin: "right_join",
	KwFullJoin:  "full_join",
	KwUnion:     "union",
	KwIntersect: "intersect",
	KwSetdiff:   "setdiff",
	Pipe:        "%>%",
	Assign:      "=",
	Eq:          "==",
	Ne:          "!=",
	Lt:          "<",
	Le:          "<=",
	Gt:          ">",
	Ge:          ">=",
	And:         "&",
	Or:          "|",
	Not:         "!",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	Slash:       "/",
	LParen:      "(",
	RParen:      ")",
	Comma:       ",",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// keywords maps the fixed table of recognized verb/literal identifiers to
// dedicated keyword kinds. Anything else lexes as a plain Ident.
var keywords = map[string]Kind{
	"select":     KwSelect,
	"filter":     KwFilter,
	"mutate":     KwMutate,
	"arrange":    KwArrange,
	"group_by":   KwGroupBy,
	"summarise":  KwSummarise,
	"summarize":  KwSummarise,
	"rename":     KwRename,
	"desc":       KwDesc,
	"inner_join": KwInnerJoin,
	"left_join":  KwLeftJoin,
	"right_join": KwRightJoin,
	"full_join":  KwFullJoin,
	"union":      KwUnion,
	"intersect":  KwIntersect,
	"setdiff":    KwSetdiff,
	"TRUE":       Bool,
	"FALSE":      Bool,
	"NA":         NA,
}

// Token is a tagged value with a kind, literal text, and source span.
type Token struct {
	Kind Kind
	Text string // verbatim source text (keeps the caller's summarise/summarize spelling)
	Span Span
	// LeadingComment is the text of the nearest '#' line comment
	// immediately preceding this token (with the '#' stripped), or empty.
	// Only meaningful when Options.PreserveComments is set; otherwise
	// ignored by every later stage.
	LeadingComment string
}
