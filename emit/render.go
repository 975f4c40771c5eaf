package emit

import (
	"strconv"
	"strings"

	"github.com/mrchypark/libdplyr/ast"
	"github.com/mrchypark/libdplyr/dialect"
)

// renderIdentifier quotes name per adapter, splitting on '.' so a
// dotted/qualified reference like "data.dept" (itself a single Ident token,
// since the lexer's identifier class admits '.') renders as "data"."dept"
// instead of one opaque quoted blob.
func renderIdentifier(name string, adapter dialect.Adapter) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = adapter.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}

// precedence returns the binding strength of op: higher binds tighter,
// mirroring the parser's low-to-high chain (or, and, equality, comparison,
// additive, multiplicative).
func precedence(op ast.BinaryOp) int {
	switch op {
	case ast.OpOr:
		return 1
	case ast.OpAnd:
		return 2
	case ast.OpEq, ast.OpNe:
		return 3
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return 4
	case ast.OpAdd, ast.OpSub:
		return 5
	case ast.OpMul, ast.OpDiv:
		return 6
	default:
		return 0
	}
}

var binaryOpText = map[ast.BinaryOp]string{
	ast.OpAdd: "+",
	ast.OpSub: "-",
	ast.OpMul: "*",
	ast.OpDiv: "/",
	ast.OpEq:  "=",
	ast.OpNe:  "<>",
	ast.OpLt:  "<",
	ast.OpLe:  "<=",
	ast.OpGt:  ">",
	ast.OpGe:  ">=",
	ast.OpAnd: "AND",
	ast.OpOr:  "OR",
}

// renderExpression renders expr as SQL text. Arithmetic '+' on two
// expressions stays '+' regardless of inferred type — string concatenation
// is never inferred, only ever produced by an explicit call the caller
// wrote (spec.md §4.4).
func (e *emitter) renderExpression(expr ast.Expression, parentPrec int) (string, error) {
	switch x := expr.(type) {
	case *ast.Identifier:
		return renderIdentifier(x.Name, e.adapter), nil

	case *ast.Literal:
		return e.renderLiteral(x), nil

	case *ast.Binary:
		left, err := e.renderExpression(x.Left, precedence(x.Op))
		if err != nil {
			return "", err
		}
		right, err := e.renderExpression(x.Right, precedence(x.Op)+1)
		if err != nil {
			return "", err
		}
		text := left + " " + binaryOpText[x.Op] + " " + right
		if precedence(x.Op) < parentPrec {
			text = "(" + text + ")"
		}
		return text, nil

	case *ast.Unary:
		operand, err := e.renderExpression(x.Operand, 100)
		if err != nil {
			return "", err
		}
		if _, ok := x.Operand.(*ast.Binary); ok {
			operand = "(" + operand + ")"
		}
		if x.Op == ast.OpNot {
			return "NOT " + operand, nil
		}
		return "-" + operand, nil

	case *ast.FunctionCall:
		return e.renderCall(x)

	default:
		return "", &GenerationError{Kind: ComplexExpression, Message: "expression shape has no dialect rendering"}
	}
}

func (e *emitter) renderLiteral(lit *ast.Literal) string {
	switch lit.Kind {
	case ast.LiteralString:
		return e.adapter.QuoteStringLiteral(lit.Str)
	case ast.LiteralNumber:
		return strconv.FormatFloat(lit.Num, 'g', -1, 64)
	case ast.LiteralBool:
		return e.adapter.FormatBool(lit.Bool)
	default: // LiteralNull
		return e.adapter.FormatNull()
	}
}

// concatFunctionNames are the DSL spellings that route through the
// dialect's StringConcat capability instead of a literal function-name
// translation: string concatenation is never inferred (spec.md §4.4), only
// ever produced by one of these calls written explicitly by the caller.
var concatFunctionNames = map[string]bool{
	"concat": true,
	"paste":  true,
	"str_c":  true,
}

func (e *emitter) renderCall(call *ast.FunctionCall) (string, error) {
	if concatFunctionNames[call.Name] && len(call.Args) >= 2 {
		return e.renderConcat(call)
	}

	name := e.adapter.TranslateFunctionName(call.Name)
	args := make([]string, 0, len(call.Args))
	for _, a := range call.Args {
		rendered, err := e.renderExpression(a, 0)
		if err != nil {
			return "", err
		}
		args = append(args, rendered)
	}
	return name + "(" + strings.Join(args, ", ") + ")", nil
}

// renderConcat folds a concat(a, b, c, ...) call pairwise through the
// dialect's StringConcat spelling ('||' or CONCAT(...)).
func (e *emitter) renderConcat(call *ast.FunctionCall) (string, error) {
	acc, err := e.renderExpression(call.Args[0], 0)
	if err != nil {
		return "", err
	}
	for _, a := range call.Args[1:] {
		rendered, err := e.renderExpression(a, 0)
		if err != nil {
			return "", err
		}
		acc = e.adapter.StringConcat(acc, rendered)
	}
	return acc, nil
}
