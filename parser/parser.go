// Package parser lowers a Mython token stream into the ast node tree the
// runtime evaluator executes directly. It is a plain recursive-descent
// parser driven by the lexer's Expect/ExpectNext lookahead surface.
package parser

import (
	"fmt"

	"mython/ast"
	"mython/lexer"
	"mython/runtime"
	"mython/token"
)

// ParseError reports a malformed program the parser cannot make sense of.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Message)
}

// Parser turns a Lexer's token stream into an ast.Compound representing
// the whole program.
type Parser struct {
	lex *lexer.Lexer
}

// New wraps lex in a Parser.
func New(lex *lexer.Lexer) *Parser {
	return &Parser{lex: lex}
}

// ParseProgram parses statements up to Eof and returns their sequence as
// a single Compound node.
func (p *Parser) ParseProgram() (prog runtime.Executable, err error) {
	defer p.recoverAs(&err)

	var stmts []runtime.Executable
	for p.cur().Kind != token.EOF {
		stmts = append(stmts, p.statement())
	}
	return &ast.Compound{Stmts: stmts}, nil
}

func (p *Parser) recoverAs(err *error) {
	if r := recover(); r != nil {
		switch e := r.(type) {
		case *lexer.LexerError:
			*err = &ParseError{Line: e.Line, Message: e.Message}
		case *ParseError:
			*err = e
		default:
			panic(r)
		}
	}
}

func (p *Parser) fail(format string, args ...any) {
	panic(&ParseError{Line: p.cur().Line, Message: fmt.Sprintf(format, args...)})
}

func (p *Parser) cur() token.Token  { return p.lex.CurrentToken() }
func (p *Parser) next() token.Token { return p.lex.NextToken() }

// skipNewlines consumes any run of Newline tokens (blank statement
// separators between top-level or block statements).
func (p *Parser) skipNewlines() {
	for p.cur().Kind == token.NEWLINE {
		p.next()
	}
}

// statement parses one top-level or block statement, leaving the current
// token positioned just past its trailing Newline.
func (p *Parser) statement() runtime.Executable {
	p.skipNewlines()

	var stmt runtime.Executable
	switch p.cur().Kind {
	case token.CLASS:
		stmt = p.classDefinition()
		return stmt // class bodies own their own Newline/Dedent handling
	case token.IF:
		stmt = p.ifStatement()
		return stmt
	case token.PRINT:
		stmt = p.printStatement()
	case token.RETURN:
		stmt = p.returnStatement()
	default:
		stmt = p.simpleStatement()
	}

	p.expectStatementEnd()
	return stmt
}

// expectStatementEnd consumes the Newline that ends a simple statement.
// At end of input the lexer's Eof-closing sequence may already have
// consumed it, so Eof is accepted too.
func (p *Parser) expectStatementEnd() {
	switch p.cur().Kind {
	case token.NEWLINE:
		p.next()
	case token.EOF, token.DEDENT:
		// nothing to consume
	default:
		p.fail("expected end of statement, got %v", p.cur())
	}
}

// block parses "':' Newline Indent statement+ Dedent" and returns the
// statements as a Compound.
func (p *Parser) block() runtime.Executable {
	p.lex.ExpectChar(':')
	p.next()
	p.skipNewlines()
	p.lex.Expect(token.INDENT)
	p.next()

	var stmts []runtime.Executable
	for {
		p.skipNewlines()
		if p.cur().Kind == token.DEDENT {
			p.next()
			break
		}
		if p.cur().Kind == token.EOF {
			break
		}
		stmts = append(stmts, p.statement())
	}

	return &ast.Compound{Stmts: stmts}
}

func (p *Parser) ifStatement() runtime.Executable {
	p.next() // consume 'if'
	cond := p.expression()
	then := p.block()

	var elseBranch runtime.Executable
	p.skipNewlines()
	if p.cur().Kind == token.ELSE {
		p.next()
		elseBranch = p.block()
	}

	return &ast.IfElse{Cond: cond, Then: then, Else: elseBranch}
}

func (p *Parser) printStatement() runtime.Executable {
	p.next() // consume 'print'

	var args []runtime.Executable
	if p.atExprStart() {
		args = append(args, p.expression())
		for p.cur().Kind == token.CHAR && p.cur().Ch == ',' {
			p.next()
			args = append(args, p.expression())
		}
	}

	return &ast.Print{Args: args}
}

func (p *Parser) returnStatement() runtime.Executable {
	p.next() // consume 'return'

	var expr runtime.Executable
	if p.atExprStart() {
		expr = p.expression()
	}
	return &ast.Return{Expr: expr}
}

// atExprStart reports whether the current token can begin an expression,
// used to distinguish "return" from "return <expr>" and a bare "print".
func (p *Parser) atExprStart() bool {
	switch p.cur().Kind {
	case token.NEWLINE, token.EOF, token.DEDENT:
		return false
	default:
		return true
	}
}

// simpleStatement parses an assignment or a bare expression statement
// (typically a method call made for its side effects).
func (p *Parser) simpleStatement() runtime.Executable {
	expr, target := p.assignableExpression()

	if p.cur().Kind == token.CHAR && p.cur().Ch == '=' && target != nil {
		p.next()
		rhs := p.expression()
		t := target
		if len(t.DottedIDs) == 1 {
			return &ast.Assignment{Name: t.DottedIDs[0], RHS: rhs}
		}
		return &ast.FieldAssignment{
			Object: &ast.VariableValue{DottedIDs: t.DottedIDs[:len(t.DottedIDs)-1]},
			Field:  t.DottedIDs[len(t.DottedIDs)-1],
			RHS:    rhs,
		}
	}

	return expr
}

// classDefinition parses "class Id ['(' Id ')'] ':' Newline Indent
// method_def+ Dedent".
func (p *Parser) classDefinition() runtime.Executable {
	p.next() // consume 'class'
	name := p.lex.Expect(token.ID).Str
	p.next()

	var parent string
	if p.cur().Kind == token.CHAR && p.cur().Ch == '(' {
		p.next()
		parent = p.lex.Expect(token.ID).Str
		p.next()
		p.lex.ExpectChar(')')
		p.next()
	}

	p.lex.ExpectChar(':')
	p.next()
	p.skipNewlines()
	p.lex.Expect(token.INDENT)
	p.next()

	var methods []ast.MethodDef
	for {
		p.skipNewlines()
		if p.cur().Kind == token.DEDENT {
			p.next()
			break
		}
		if p.cur().Kind == token.EOF {
			break
		}
		methods = append(methods, p.methodDefinition())
	}

	return &ast.ClassDefinition{Name: name, Parent: parent, Methods: methods}
}

func (p *Parser) methodDefinition() ast.MethodDef {
	p.lex.Expect(token.DEF)
	p.next()
	name := p.lex.Expect(token.ID).Str
	p.next()

	p.lex.ExpectChar('(')
	p.next()
	var params []string
	if p.cur().Kind == token.ID {
		params = append(params, p.cur().Str)
		p.next()
		for p.cur().Kind == token.CHAR && p.cur().Ch == ',' {
			p.next()
			params = append(params, p.lex.Expect(token.ID).Str)
			p.next()
		}
	}
	p.lex.ExpectChar(')')
	p.next()

	body := p.block()
	return ast.MethodDef{Name: name, Params: params, Body: &ast.MethodBody{Body: body}}
}

// assignableExpression parses an expression and, when it is a bare
// dotted-identifier chain, also returns it as *ast.VariableValue so the
// caller can decide whether an assignment follows.
func (p *Parser) assignableExpression() (expr runtime.Executable, target *ast.VariableValue) {
	expr = p.orExpr()
	if v, ok := expr.(*ast.VariableValue); ok {
		target = v
	}
	return expr, target
}

func (p *Parser) expression() runtime.Executable {
	expr, _ := p.assignableExpression()
	return expr
}

func (p *Parser) orExpr() runtime.Executable {
	lhs := p.andExpr()
	for p.cur().Kind == token.OR {
		p.next()
		rhs := p.andExpr()
		lhs = &ast.Or{LHS: lhs, RHS: rhs}
	}
	return lhs
}

func (p *Parser) andExpr() runtime.Executable {
	lhs := p.notExpr()
	for p.cur().Kind == token.AND {
		p.next()
		rhs := p.notExpr()
		lhs = &ast.And{LHS: lhs, RHS: rhs}
	}
	return lhs
}

func (p *Parser) notExpr() runtime.Executable {
	if p.cur().Kind == token.NOT {
		p.next()
		return &ast.Not{Arg: p.notExpr()}
	}
	return p.comparison()
}

func (p *Parser) comparison() runtime.Executable {
	lhs := p.addExpr()

	cmp, ok := comparatorFor(p.cur())
	if !ok {
		return lhs
	}
	p.next()
	rhs := p.addExpr()
	return &ast.Comparison{Cmp: cmp, LHS: lhs, RHS: rhs}
}

func comparatorFor(t token.Token) (ast.Comparator, bool) {
	switch {
	case t.Kind == token.EQ:
		return ast.CmpEq, true
	case t.Kind == token.NOT_EQ:
		return ast.CmpNotEq, true
	case t.Kind == token.LESS_OR_EQ:
		return ast.CmpLessOrEq, true
	case t.Kind == token.GREATER_OR_EQ:
		return ast.CmpGreaterOrEq, true
	case t.Kind == token.CHAR && t.Ch == '<':
		return ast.CmpLess, true
	case t.Kind == token.CHAR && t.Ch == '>':
		return ast.CmpGreater, true
	default:
		return 0, false
	}
}

func (p *Parser) addExpr() runtime.Executable {
	lhs := p.mulExpr()
	for p.cur().Kind == token.CHAR && (p.cur().Ch == '+' || p.cur().Ch == '-') {
		op := p.cur().Ch
		p.next()
		rhs := p.mulExpr()
		if op == '+' {
			lhs = ast.NewAdd(lhs, rhs)
		} else {
			lhs = ast.NewSub(lhs, rhs)
		}
	}
	return lhs
}

func (p *Parser) mulExpr() runtime.Executable {
	lhs := p.postfixExpr()
	for p.cur().Kind == token.CHAR && (p.cur().Ch == '*' || p.cur().Ch == '/') {
		op := p.cur().Ch
		p.next()
		rhs := p.postfixExpr()
		if op == '*' {
			lhs = ast.NewMult(lhs, rhs)
		} else {
			lhs = ast.NewDiv(lhs, rhs)
		}
	}
	return lhs
}

// postfixExpr parses an identifier-rooted postfix expression (see
// identifierExpr) or a plain primary. Suffixes are only recognized after
// an identifier: a literal or parenthesized expression takes none, and
// after a call only further ".name(args)" calls may follow.
func (p *Parser) postfixExpr() runtime.Executable {
	if p.cur().Kind == token.ID {
		return p.identifierExpr()
	}
	return p.primary()
}

// identifierExpr parses "id ('.' id)* ['(' args ')']" and everything
// chained after an initial call, e.g. "Counter(10).inc()".
func (p *Parser) identifierExpr() runtime.Executable {
	first := p.cur().Str
	p.next()

	if first == "str" && p.cur().Kind == token.CHAR && p.cur().Ch == '(' {
		p.next()
		arg := p.expression()
		p.lex.ExpectChar(')')
		p.next()
		return p.postfixChain(&ast.Stringify{Arg: arg})
	}

	ids := []string{first}
	for p.cur().Kind == token.CHAR && p.cur().Ch == '.' {
		p.next()
		ids = append(ids, p.lex.Expect(token.ID).Str)
		p.next()
	}

	var expr runtime.Executable
	if p.cur().Kind == token.CHAR && p.cur().Ch == '(' {
		args := p.callArgs()
		if len(ids) == 1 {
			expr = &ast.NewInstance{ClassExpr: &ast.VariableValue{DottedIDs: ids}, Args: args}
		} else {
			expr = &ast.MethodCall{
				Object: &ast.VariableValue{DottedIDs: ids[:len(ids)-1]},
				Name:   ids[len(ids)-1],
				Args:   args,
			}
		}
	} else {
		expr = &ast.VariableValue{DottedIDs: ids}
	}

	return p.postfixChain(expr)
}

// postfixChain extends expr with any further ".name(args)" calls, so
// "Shape().greet()" and similar chains parse left-associatively.
func (p *Parser) postfixChain(expr runtime.Executable) runtime.Executable {
	for p.cur().Kind == token.CHAR && p.cur().Ch == '.' {
		p.next()
		name := p.lex.Expect(token.ID).Str
		p.next()
		args := p.callArgs()
		expr = &ast.MethodCall{Object: expr, Name: name, Args: args}
	}
	return expr
}

func (p *Parser) callArgs() []runtime.Executable {
	p.lex.ExpectChar('(')
	p.next()

	var args []runtime.Executable
	if !(p.cur().Kind == token.CHAR && p.cur().Ch == ')') {
		args = append(args, p.expression())
		for p.cur().Kind == token.CHAR && p.cur().Ch == ',' {
			p.next()
			args = append(args, p.expression())
		}
	}
	p.lex.ExpectChar(')')
	p.next()
	return args
}

func (p *Parser) primary() runtime.Executable {
	t := p.cur()
	switch t.Kind {
	case token.NUMBER:
		p.next()
		return &ast.NumericConst{Value: runtime.Number(t.Num)}
	case token.STRING:
		p.next()
		return &ast.StringConst{Value: runtime.String(t.Str)}
	case token.TRUE:
		p.next()
		return &ast.BoolConst{Value: true}
	case token.FALSE:
		p.next()
		return &ast.BoolConst{Value: false}
	case token.NONE:
		p.next()
		return ast.None{}
	case token.CHAR:
		if t.Ch == '(' {
			p.next()
			expr := p.expression()
			p.lex.ExpectChar(')')
			p.next()
			return expr
		}
	}

	p.fail("unexpected token %v in expression", t)
	panic("unreachable")
}
