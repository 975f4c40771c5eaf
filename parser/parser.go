// Package parser builds an ast.Pipeline from a token.Token stream using
// recursive descent with one-token lookahead. It is dialect-agnostic.
package parser

import (
	"strconv"

	"github.com/mrchypark/libdplyr/ast"
	"github.com/mrchypark/libdplyr/token"
)

// Parser consumes a fixed token slice and builds a Pipeline.
type Parser struct {
	tokens []token.Token
	pos    int
}

// Parse lexes src and parses it into a Pipeline, or returns the first
// error encountered (a *token lexical error or a *ParseError).
func Parse(src string) (*ast.Pipeline, error) {
	tokens, err := token.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ParseTokens parses an already-lexed token stream into a Pipeline.
func ParseTokens(tokens []token.Token) (*ast.Pipeline, error) {
	p := &Parser{tokens: tokens}
	return p.parsePipeline()
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) check(k token.Kind) bool {
	return p.cur().Kind == k
}

func (p *Parser) expect(k token.Kind) (token.Token, *ParseError) {
	if !p.check(k) {
		return token.Token{}, newUnexpectedToken(k.String(), p.cur())
	}
	return p.advance(), nil
}

// pipeline := source? ( '%>%' operation )+ ('%>%' operation)*
//           | operation ( '%>%' operation )*
func (p *Parser) parsePipeline() (*ast.Pipeline, error) {
	pipeline := &ast.Pipeline{Source: ast.DefaultSource}

	// A leading identifier followed by a pipe is the data source; a leading
	// identifier followed by '(' is instead the first operation's verb
	// (can't happen, since verbs are keywords, not plain identifiers) — so
	// any leading Ident is unambiguously a source name.
	if p.check(token.Ident) {
		src := p.advance()
		pipeline.Source = src.Text
		pipeline.HasSource = true
		if _, err := p.expect(token.Pipe); err != nil {
			return nil, err
		}
	}

	op, err := p.parseOperation()
	if err != nil {
		return nil, err
	}
	pipeline.Operations = append(pipeline.Operations, op)

	for p.check(token.Pipe) {
		p.advance()
		if p.check(token.EOF) {
			return nil, newUnexpectedToken("operation", p.cur())
		}
		op, err := p.parseOperation()
		if err != nil {
			return nil, err
		}
		pipeline.Operations = append(pipeline.Operations, op)
	}

	if !p.check(token.EOF) {
		return nil, newTrailingTokens(p.cur().Span)
	}

	return pipeline, nil
}

func (p *Parser) parseOperation() (ast.Operation, error) {
	switch p.cur().Kind {
	case token.KwSelect:
		return p.parseSelect()
	case token.KwFilter:
		return p.parseFilter()
	case token.KwMutate:
		return p.parseMutate()
	case token.KwArrange:
		return p.parseArrange()
	case token.KwGroupBy:
		return p.parseGroupBy()
	case token.KwSummarise:
		return p.parseSummarise()
	case token.KwRename:
		return p.parseRename()
	case token.KwInnerJoin, token.KwLeftJoin, token.KwRightJoin, token.KwFullJoin:
		return p.parseJoin()
	case token.KwUnion, token.KwIntersect, token.KwSetdiff:
		return p.parseSetOp()
	default:
		return nil, newUnexpectedToken("a verb (select, filter, mutate, arrange, "+
			"group_by, summarise, rename, a join, or a set operation)", p.cur())
	}
}

func (p *Parser) parseSelect() (ast.Operation, error) {
	verb := p.advance()
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var cols []ast.ColumnExpr
	col, err := p.parseColExpr()
	if err != nil {
		return nil, err
	}
	cols = append(cols, col)
	for p.check(token.Comma) {
		p.advance()
		col, err := p.parseColExpr()
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	end, err := p.expect(token.RParen)
	if err != nil {
		return nil, err
	}
	return &ast.Select{Columns: cols, Sp: verb.Span.Merge(end.Span), Comment: verb.LeadingComment}, nil
}

func (p *Parser) parseColExpr() (ast.ColumnExpr, error) {
	start := p.cur()
	if p.check(token.Ident) && p.peekIsAssign() {
		name := p.advance()
		p.advance() // '='
		expr, err := p.parseExpression()
		if err != nil {
			return ast.ColumnExpr{}, err
		}
		return ast.ColumnExpr{Alias: name.Text, Expr: expr, Sp: start.Span.Merge(expr.Span())}, nil
	}
	expr, err := p.parseExpression()
	if err != nil {
		return ast.ColumnExpr{}, err
	}
	return ast.ColumnExpr{Expr: expr, Sp: expr.Span()}, nil
}

// peekIsAssign reports whether the token after the current one is '='; used
// to disambiguate `name = expr` from a bare expression starting with an
// identifier (e.g. `name` alone, or `name(...)`).
func (p *Parser) peekIsAssign() bool {
	if p.pos+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.pos+1].Kind == token.Assign
}

func (p *Parser) parseFilter() (ast.Operation, error) {
	verb := p.advance()
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.RParen)
	if err != nil {
		return nil, err
	}
	return &ast.Filter{Condition: cond, Sp: verb.Span.Merge(end.Span), Comment: verb.LeadingComment}, nil
}

func (p *Parser) parseMutate() (ast.Operation, error) {
	verb := p.advance()
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var assigns []ast.ColumnExpr
	a, err := p.parseAssignment("mutate")
	if err != nil {
		return nil, err
	}
	assigns = append(assigns, a)
	for p.check(token.Comma) {
		p.advance()
		a, err := p.parseAssignment("mutate")
		if err != nil {
			return nil, err
		}
		assigns = append(assigns, a)
	}
	end, err := p.expect(token.RParen)
	if err != nil {
		return nil, err
	}
	return &ast.Mutate{Assignments: assigns, Sp: verb.Span.Merge(end.Span), Comment: verb.LeadingComment}, nil
}

func (p *Parser) parseAssignment(verb string) (ast.ColumnExpr, error) {
	if !p.check(token.Ident) {
		return ast.ColumnExpr{}, newUnexpectedTokenWithHint("an identifier", p.cur(),
			"did you forget a comma?")
	}
	name := p.advance()
	if _, err := p.expect(token.Assign); err != nil {
		return ast.ColumnExpr{}, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return ast.ColumnExpr{}, err
	}
	return ast.ColumnExpr{Alias: name.Text, Expr: expr, Sp: name.Span.Merge(expr.Span())}, nil
}

func (p *Parser) parseArrange() (ast.Operation, error) {
	verb := p.advance()
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var orders []ast.OrderExpr
	o, err := p.parseOrder()
	if err != nil {
		return nil, err
	}
	orders = append(orders, o)
	for p.check(token.Comma) {
		p.advance()
		o, err := p.parseOrder()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	end, err := p.expect(token.RParen)
	if err != nil {
		return nil, err
	}
	return &ast.Arrange{Orders: orders, Sp: verb.Span.Merge(end.Span), Comment: verb.LeadingComment}, nil
}

// order := 'desc' '(' IDENT ')' | IDENT
func (p *Parser) parseOrder() (ast.OrderExpr, error) {
	if p.check(token.KwDesc) {
		start := p.advance()
		if _, err := p.expect(token.LParen); err != nil {
			return ast.OrderExpr{}, err
		}
		col, err := p.expect(token.Ident)
		if err != nil {
			return ast.OrderExpr{}, err
		}
		end, err := p.expect(token.RParen)
		if err != nil {
			return ast.OrderExpr{}, err
		}
		return ast.OrderExpr{Column: col.Text, Dir: ast.Desc, Sp: start.Span.Merge(end.Span)}, nil
	}
	col, err := p.expect(token.Ident)
	if err != nil {
		return ast.OrderExpr{}, newInvalidOperation("arrange", p.cur().Span,
			"arguments must be identifiers, optionally wrapped in desc(...)")
	}
	if !p.check(token.Comma) && !p.check(token.RParen) {
		return ast.OrderExpr{}, newInvalidOperation("arrange", p.cur().Span,
			"arguments must be identifiers, optionally wrapped in desc(...)")
	}
	return ast.OrderExpr{Column: col.Text, Dir: ast.Asc, Sp: col.Span}, nil
}

func (p *Parser) parseGroupBy() (ast.Operation, error) {
	verb := p.advance()
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var cols []string
	c, err := p.expect(token.Ident)
	if err != nil {
		return nil, newInvalidOperation("group_by", p.cur().Span, "arguments must be identifiers")
	}
	cols = append(cols, c.Text)
	for p.check(token.Comma) {
		p.advance()
		c, err := p.expect(token.Ident)
		if err != nil {
			return nil, newInvalidOperation("group_by", p.cur().Span, "arguments must be identifiers")
		}
		cols = append(cols, c.Text)
	}
	end, err := p.expect(token.RParen)
	if err != nil {
		return nil, err
	}
	return &ast.GroupBy{Columns: cols, Sp: verb.Span.Merge(end.Span), Comment: verb.LeadingComment}, nil
}

func (p *Parser) parseSummarise() (ast.Operation, error) {
	verb := p.advance()
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var aggs []ast.Aggregation
	a, err := p.parseAggregation(verb.Text)
	if err != nil {
		return nil, err
	}
	aggs = append(aggs, a)
	for p.check(token.Comma) {
		p.advance()
		a, err := p.parseAggregation(verb.Text)
		if err != nil {
			return nil, err
		}
		aggs = append(aggs, a)
	}
	end, err := p.expect(token.RParen)
	if err != nil {
		return nil, err
	}
	return &ast.Summarise{Aggregations: aggs, Sp: verb.Span.Merge(end.Span), Comment: verb.LeadingComment}, nil
}

// aggregation := IDENT '=' call_expression
func (p *Parser) parseAggregation(verb string) (ast.Aggregation, error) {
	if !p.check(token.Ident) {
		return ast.Aggregation{}, newUnexpectedTokenWithHint("an identifier", p.cur(),
			"did you forget a comma?")
	}
	name := p.advance()
	if _, err := p.expect(token.Assign); err != nil {
		return ast.Aggregation{}, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return ast.Aggregation{}, err
	}
	call, ok := expr.(*ast.FunctionCall)
	if !ok {
		return ast.Aggregation{}, newInvalidOperation(verb, expr.Span(),
			"aggregation value must be a function call")
	}
	if !ast.RecognizedAggregates[call.Name] {
		return ast.Aggregation{}, newInvalidOperation(verb, call.Sp,
			"\""+call.Name+"\" is not a recognized aggregate function")
	}
	return ast.Aggregation{Alias: name.Text, Call: call, Sp: name.Span.Merge(call.Sp)}, nil
}

func (p *Parser) parseRename() (ast.Operation, error) {
	verb := p.advance()
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var pairs []ast.RenamePair
	pr, err := p.parseRenamePair()
	if err != nil {
		return nil, err
	}
	pairs = append(pairs, pr)
	for p.check(token.Comma) {
		p.advance()
		pr, err := p.parseRenamePair()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pr)
	}
	end, err := p.expect(token.RParen)
	if err != nil {
		return nil, err
	}
	return &ast.Rename{Pairs: pairs, Sp: verb.Span.Merge(end.Span), Comment: verb.LeadingComment}, nil
}

func (p *Parser) parseRenamePair() (ast.RenamePair, error) {
	newName, err := p.expect(token.Ident)
	if err != nil {
		return ast.RenamePair{}, err
	}
	if _, err := p.expect(token.Assign); err != nil {
		return ast.RenamePair{}, err
	}
	oldName, err := p.expect(token.Ident)
	if err != nil {
		return ast.RenamePair{}, err
	}
	return ast.RenamePair{New: newName.Text, Old: oldName.Text}, nil
}

var joinKinds = map[token.Kind]ast.JoinKind{
	token.KwInnerJoin: ast.InnerJoin,
	token.KwLeftJoin:  ast.LeftJoin,
	token.KwRightJoin: ast.RightJoin,
	token.KwFullJoin:  ast.FullJoin,
}

// join := join_kind '(' expression (',' named_arg)* ')'
func (p *Parser) parseJoin() (ast.Operation, error) {
	verb := p.advance()
	kind := joinKinds[verb.Kind]
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	rightExpr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	rightIdent, ok := rightExpr.(*ast.Identifier)
	if !ok {
		return nil, newInvalidOperation(verb.Text, rightExpr.Span(),
			"join target must be a bare table identifier")
	}

	join := &ast.Join{Kind: kind, RightSource: rightIdent.Name}
	for p.check(token.Comma) {
		p.advance()
		if err := p.parseJoinNamedArg(join); err != nil {
			return nil, err
		}
	}
	end, err := p.expect(token.RParen)
	if err != nil {
		return nil, err
	}
	join.Sp = verb.Span.Merge(end.Span)
	join.Comment = verb.LeadingComment
	return join, nil
}

func (p *Parser) parseJoinNamedArg(join *ast.Join) error {
	if !p.check(token.Ident) {
		return newUnexpectedToken("by or on", p.cur())
	}
	name := p.advance()
	if name.Text != "by" && name.Text != "on" {
		return newUnexpectedToken("by or on", name)
	}
	if _, err := p.expect(token.Assign); err != nil {
		return err
	}
	if (name.Text == "on" && len(join.By) > 0) || (name.Text == "by" && join.On != nil) {
		return newInvalidOperation("join", name.Span, "by and on cannot both be given")
	}
	if name.Text == "on" {
		expr, err := p.parseExpression()
		if err != nil {
			return err
		}
		join.On = expr
		return nil
	}
	// by = "col": a string literal names an equal column on both sides. Any
	// other value, including a c("l1" = "r1", ...) pair list, is rejected.
	expr, err := p.parseExpression()
	if err != nil {
		return err
	}
	lit, ok := expr.(*ast.Literal)
	if !ok || lit.Kind != ast.LiteralString {
		return newInvalidOperation("join", expr.Span(), "by must be a string column name")
	}
	join.By = append(join.By, ast.JoinColumnPair{Left: lit.Str, Right: lit.Str})
	return nil
}

var setOpKinds = map[token.Kind]ast.SetOpKind{
	token.KwUnion:     ast.SetUnion,
	token.KwIntersect: ast.SetIntersect,
	token.KwSetdiff:   ast.SetDifference,
}

// setop := setop_kind '(' expression ')'
func (p *Parser) parseSetOp() (ast.Operation, error) {
	verb := p.advance()
	kind := setOpKinds[verb.Kind]
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.RParen)
	if err != nil {
		return nil, err
	}
	return &ast.SetOp{Kind: kind, RightSource: right, Sp: verb.Span.Merge(end.Span), Comment: verb.LeadingComment}, nil
}

// --- expression grammar: logical-or, logical-and, equality, comparison,
// additive, multiplicative, unary, primary (low to high precedence) ---

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.check(token.Or) {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: ast.OpOr, Right: right, Sp: left.Span().Merge(right.Span())}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expression, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.check(token.And) {
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: ast.OpAnd, Right: right, Sp: left.Span().Merge(right.Span())}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.check(token.Eq) || p.check(token.Ne) {
		op := ast.OpEq
		if p.cur().Kind == token.Ne {
			op = ast.OpNe
		}
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op, Right: right, Sp: left.Span().Merge(right.Span())}
	}
	return left, nil
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.cur().Kind {
		case token.Lt:
			op = ast.OpLt
		case token.Le:
			op = ast.OpLe
		case token.Gt:
			op = ast.OpGt
		case token.Ge:
			op = ast.OpGe
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op, Right: right, Sp: left.Span().Merge(right.Span())}
	}
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.check(token.Plus) || p.check(token.Minus) {
		op := ast.OpAdd
		if p.cur().Kind == token.Minus {
			op = ast.OpSub
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op, Right: right, Sp: left.Span().Merge(right.Span())}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.check(token.Star) || p.check(token.Slash) {
		op := ast.OpMul
		if p.cur().Kind == token.Slash {
			op = ast.OpDiv
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op, Right: right, Sp: left.Span().Merge(right.Span())}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	switch p.cur().Kind {
	case token.Minus:
		start := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.OpNeg, Operand: operand, Sp: start.Span.Merge(operand.Span())}, nil
	case token.Not:
		start := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.OpNot, Operand: operand, Sp: start.Span.Merge(operand.Span())}, nil
	default:
		return p.parsePrimary()
	}
}

// primary is a literal, an identifier possibly followed by a call `(...)`,
// or a parenthesized expression.
func (p *Parser) parsePrimary() (ast.Expression, error) {
	t := p.cur()
	switch t.Kind {
	case token.Number:
		p.advance()
		v, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, &ParseError{Kind: InvalidOperation, Span: t.Span, Message: "invalid number " + t.Text}
		}
		return &ast.Literal{Kind: ast.LiteralNumber, Num: v, Sp: t.Span}, nil
	case token.String:
		p.advance()
		return &ast.Literal{Kind: ast.LiteralString, Str: t.Text, Sp: t.Span}, nil
	case token.Bool:
		p.advance()
		return &ast.Literal{Kind: ast.LiteralBool, Bool: t.Text == "TRUE", Sp: t.Span}, nil
	case token.NA:
		p.advance()
		return &ast.Literal{Kind: ast.LiteralNull, Sp: t.Span}, nil
	case token.Ident:
		p.advance()
		if p.check(token.LParen) {
			return p.parseCall(t)
		}
		return &ast.Identifier{Name: t.Text, Sp: t.Span}, nil
	case token.LParen:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		end, err := p.expect(token.RParen)
		if err != nil {
			return nil, err
		}
		// the inner node keeps its own span; the parens are not included
		_ = end
		return inner, nil
	default:
		return nil, newUnexpectedToken("an expression", t)
	}
}

// parseCall parses the '(' ... ')' suffix of a function call, given its
// already-consumed name token.
func (p *Parser) parseCall(name token.Token) (ast.Expression, error) {
	p.advance() // '('
	call := &ast.FunctionCall{Name: name.Text}
	if p.check(token.RParen) {
		end := p.advance()
		call.Sp = name.Span.Merge(end.Span)
		return call, nil
	}
	for {
		if p.check(token.Ident) && p.peekIsAssign() {
			argName := p.advance()
			p.advance() // '='
			val, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			call.NamedArgs = append(call.NamedArgs, ast.NamedArg{Name: argName.Text, Value: val, Sp: argName.Span.Merge(val.Span())})
		} else {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
		}
		if p.check(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	end, err := p.expect(token.RParen)
	if err != nil {
		return nil, err
	}
	call.Sp = name.Span.Merge(end.Span)
	return call, nil
}
