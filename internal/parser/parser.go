// Package parser implements the recursive-descent, precedence-climbing
// parser of spec §4.C: statement_list is the program entry point,
// binary operators are parsed by precedence climbing (tightest last:
// assignment ← || ← && ← == != ← relational ← + - ← * / % ← unary ←
// call-or-member ← primary), and assignment is validated against the
// l-value predicate after the left-hand side has already been parsed.
package parser

import (
	"fmt"

	"github.com/evil-lang/evil/internal/ast"
	"github.com/evil-lang/evil/internal/errors"
	"github.com/evil-lang/evil/internal/lexer"
	"github.com/evil-lang/evil/internal/token"
)

// Parser consumes tokens from a Lexer and builds an *ast.Program.
// Errors are accumulated as *errors.StructuralError values (spec
// §4.K's structural-error layer) rather than raised immediately, so a
// single parse pass can report more than one structural problem.
type Parser struct {
	l *lexer.Lexer

	cur  token.Token
	peek token.Token

	errors []*errors.StructuralError
}

// New primes the parser with the lexer's first two tokens.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()
	return p
}

// Errors returns every structural diagnostic collected during parsing.
func (p *Parser) Errors() []*errors.StructuralError { return p.errors }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(pos token.Position, kind errors.StructuralErrorKind, desc errors.Descriptor) {
	p.errors = append(p.errors, errors.NewStructuralError(kind, pos, desc))
}

// expect asserts cur.Type == t, records a diagnostic if not, and always
// advances past the current token (error-recovery by resynchronizing on
// the next token rather than getting stuck).
func (p *Parser) expect(t token.Type) token.Token {
	tok := p.cur
	if tok.Type != t {
		p.errorf(tok.Pos, errors.InvalidTokenType, errors.Descriptor{
			Name:  fmt.Sprintf("expected %s", t),
			Value: fmt.Sprintf("%s(%q)", tok.Type, tok.Lexeme),
		})
	}
	p.next()
	return tok
}

// ParseProgram is the grammar's entry point: statement_list(stop=EOF).
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.cur.Type != token.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog
}

func (p *Parser) parseStatementList(stop token.Type) []ast.Statement {
	var stmts []ast.Statement
	for p.cur.Type != stop && p.cur.Type != token.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case token.SEMICOLON:
		pos := p.cur.Pos
		p.next()
		return &ast.EmptyStatement{Base: ast.Base{StartPos: pos}}
	case token.LBRACE:
		return p.parseBlock()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.DO:
		return p.parseDoWhile()
	case token.FOR:
		return p.parseFor()
	case token.LET:
		return p.parseVariableDeclarations()
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		return p.parseBreak()
	case token.CONTINUE:
		return p.parseContinue()
	case token.FN:
		return p.parseFunctionDeclarationStatement()
	case token.CLASS:
		return p.parseClassDeclarationStatement()
	case token.NAMESPACE:
		return p.parseNamespace()
	case token.IMPORT:
		return p.parseImport()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseBlock() *ast.BlockStatement {
	pos := p.cur.Pos
	p.expect(token.LBRACE)
	stmts := p.parseStatementList(token.RBRACE)
	p.expect(token.RBRACE)
	return &ast.BlockStatement{Statements: stmts, Base: ast.Base{StartPos: pos}}
}

func (p *Parser) parseIf() ast.Statement {
	pos := p.cur.Pos
	p.expect(token.IF)
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	then := p.parseStatement()
	var elseStmt ast.Statement
	if p.cur.Type == token.ELSE {
		p.next()
		elseStmt = p.parseStatement()
	}
	return &ast.IfStatement{Cond: cond, Then: then, Else: elseStmt, Base: ast.Base{StartPos: pos}}
}

func (p *Parser) parseWhile() ast.Statement {
	pos := p.cur.Pos
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return &ast.WhileStatement{Cond: cond, Body: body, Base: ast.Base{StartPos: pos}}
}

func (p *Parser) parseDoWhile() ast.Statement {
	pos := p.cur.Pos
	p.expect(token.DO)
	body := p.parseStatement()
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	p.expect(token.SEMICOLON)
	return &ast.DoWhileStatement{Cond: cond, Body: body, Base: ast.Base{StartPos: pos}}
}

func (p *Parser) parseFor() ast.Statement {
	pos := p.cur.Pos
	p.expect(token.FOR)
	p.expect(token.LPAREN)

	var init ast.Statement
	if p.cur.Type == token.LET {
		init = p.parseVariableDeclarations()
	} else if p.cur.Type == token.SEMICOLON {
		initPos := p.cur.Pos
		p.next()
		init = &ast.EmptyStatement{Base: ast.Base{StartPos: initPos}}
	} else {
		init = p.parseExpressionStatement()
	}

	var cond ast.Expression
	if p.cur.Type == token.SEMICOLON {
		cond = &ast.BoolLiteral{Base: ast.Base{StartPos: p.cur.Pos}, Value: true}
	} else {
		cond = p.parseExpression()
	}
	p.expect(token.SEMICOLON)

	var incr ast.Expression
	if p.cur.Type != token.RPAREN {
		incr = p.parseExpression()
	}
	p.expect(token.RPAREN)

	body := p.parseStatement()
	return &ast.ForStatement{Init: init, Cond: cond, Incr: incr, Body: body, Base: ast.Base{StartPos: pos}}
}

func (p *Parser) parseBreak() ast.Statement {
	pos := p.cur.Pos
	p.expect(token.BREAK)
	depth := 1
	if p.cur.Type == token.NUMBER {
		depth = parseDepthLiteral(p.cur.Lexeme)
		p.next()
	}
	p.expect(token.SEMICOLON)
	return &ast.BreakStatement{Depth: depth, Base: ast.Base{StartPos: pos}}
}

func (p *Parser) parseContinue() ast.Statement {
	pos := p.cur.Pos
	p.expect(token.CONTINUE)
	depth := 1
	if p.cur.Type == token.NUMBER {
		depth = parseDepthLiteral(p.cur.Lexeme)
		p.next()
	}
	p.expect(token.SEMICOLON)
	return &ast.ContinueStatement{Depth: depth, Base: ast.Base{StartPos: pos}}
}

func parseDepthLiteral(lexeme string) int {
	isFloat, i, _, err := lexer.ParseNumberLiteral(lexeme)
	if err != nil || isFloat || i < 1 {
		return 1
	}
	return int(i)
}

func (p *Parser) parseReturn() ast.Statement {
	pos := p.cur.Pos
	p.expect(token.RETURN)
	var value ast.Expression
	if p.cur.Type != token.SEMICOLON {
		value = p.parseExpression()
	}
	p.expect(token.SEMICOLON)
	return &ast.ReturnStatement{Value: value, Base: ast.Base{StartPos: pos}}
}

func (p *Parser) parseVariableDeclarations() ast.Statement {
	pos := p.cur.Pos
	p.expect(token.LET)
	var decls []*ast.VariableDecl
	for {
		namePos := p.cur.Pos
		name := p.expect(token.IDENT).Lexeme
		var init ast.Expression
		if p.cur.Type == token.ASSIGN {
			p.next()
			init = p.parseExpression()
		} else if token.AssignmentOps[p.cur.Type] {
			p.errorf(p.cur.Pos, errors.ExpectedSimpleAssignmentOperator, errors.Descriptor{
				Value: "let initializer must use '='",
			})
			p.next()
			init = p.parseExpression()
		}
		decls = append(decls, &ast.VariableDecl{Name: name, Init: init, Base: ast.Base{StartPos: namePos}})
		if p.cur.Type == token.COMMA {
			p.next()
			continue
		}
		break
	}
	p.expect(token.SEMICOLON)
	return &ast.VariableDeclarations{Decls: decls, Base: ast.Base{StartPos: pos}}
}

func (p *Parser) parseFunctionDecl(requireName bool) *ast.FunctionDecl {
	pos := p.cur.Pos
	p.expect(token.FN)
	name := ""
	if p.cur.Type == token.IDENT {
		name = p.cur.Lexeme
		p.next()
	} else if requireName {
		p.errorf(p.cur.Pos, errors.InvalidTokenType, errors.Descriptor{Name: "expected function name"})
	}
	p.expect(token.LPAREN)
	var params []string
	for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
		params = append(params, p.expect(token.IDENT).Lexeme)
		if p.cur.Type == token.COMMA {
			p.next()
		}
	}
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return &ast.FunctionDecl{StartPos: pos, Name: name, Params: params, Body: body}
}

func (p *Parser) parseFunctionDeclarationStatement() ast.Statement {
	pos := p.cur.Pos
	decl := p.parseFunctionDecl(true)
	return &ast.FunctionDeclaration{Decl: decl, Base: ast.Base{StartPos: pos}}
}

func (p *Parser) parseClassDecl() *ast.ClassDecl {
	pos := p.cur.Pos
	p.expect(token.CLASS)
	name := p.expect(token.IDENT).Lexeme
	var extends ast.Expression
	if p.cur.Type == token.EXTENDS {
		p.next()
		extends = p.parseMemberChain(false)
	}
	p.expect(token.LBRACE)
	var methods []*ast.FunctionDecl
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		methods = append(methods, p.parseFunctionDecl(true))
	}
	p.expect(token.RBRACE)
	return &ast.ClassDecl{StartPos: pos, Name: name, Extends: extends, Methods: methods}
}

func (p *Parser) parseClassDeclarationStatement() ast.Statement {
	pos := p.cur.Pos
	decl := p.parseClassDecl()
	return &ast.ClassDeclaration{Decl: decl, Base: ast.Base{StartPos: pos}}
}

func (p *Parser) parseDottedPath() []string {
	names := []string{p.expect(token.IDENT).Lexeme}
	for p.cur.Type == token.DOT {
		p.next()
		names = append(names, p.expect(token.IDENT).Lexeme)
	}
	return names
}

func (p *Parser) parseNamespace() ast.Statement {
	pos := p.cur.Pos
	p.expect(token.NAMESPACE)
	path := p.parseDottedPath()
	p.expect(token.LBRACE)
	body := p.parseStatementList(token.RBRACE)
	p.expect(token.RBRACE)
	return &ast.NamespaceStatement{Path: path, Body: body, Base: ast.Base{StartPos: pos}}
}

func (p *Parser) parseImport() ast.Statement {
	pos := p.cur.Pos
	p.expect(token.IMPORT)
	fileExpr := p.parseExpression()
	p.expect(token.AS)
	asPath := p.parseDottedPath()
	p.expect(token.SEMICOLON)
	return &ast.ImportStatement{FileExpr: fileExpr, As: asPath, Base: ast.Base{StartPos: pos}}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	pos := p.cur.Pos
	expr := p.parseExpression()
	p.expect(token.SEMICOLON)
	return &ast.ExpressionStatement{Expr: expr, Base: ast.Base{StartPos: pos}}
}

// binaryPrecedence ranks the non-assignment binary operators from
// loosest (||) to tightest (* / %); assignment itself binds looser
// than all of these and is handled separately by parseAssignment.
var binaryPrecedence = map[token.Type]int{
	token.OR_OR:   1,
	token.AND_AND: 2,
	token.EQ:      3,
	token.NOT_EQ:  3,
	token.LT:      4,
	token.GT:      4,
	token.LTE:     4,
	token.GTE:     4,
	token.PLUS:    5,
	token.MINUS:   5,
	token.STAR:    6,
	token.SLASH:   6,
	token.PERCENT: 6,
}

func (p *Parser) parseExpression() ast.Expression {
	return p.parseAssignment()
}

// parseAssignment parses `lhs op= rhs`, right-associatively, validating
// lhs against the l-value predicate once it is fully parsed (spec
// §4.C); everything tighter than assignment falls through to the
// precedence-climbing binary parser.
func (p *Parser) parseAssignment() ast.Expression {
	left := p.parseBinary(1)
	if token.AssignmentOps[p.cur.Type] {
		pos := p.cur.Pos
		op := p.cur.Lexeme
		if !ast.IsLValue(left) {
			p.errorf(pos, errors.ExpectedLhsExpression, errors.Descriptor{
				Value: fmt.Sprintf("left-hand side of %q is not assignable", op),
			})
		}
		p.next()
		right := p.parseAssignment()
		return &ast.AssignmentExpr{Base: ast.Base{StartPos: pos}, Op: op, Left: left, Right: right}
	}
	return left
}

// parseBinary implements precedence climbing over binaryPrecedence;
// operators are all left-associative, so the recursive call for the
// right operand requires strictly higher precedence (prec+1).
func (p *Parser) parseBinary(minPrec int) ast.Expression {
	left := p.parseUnary()
	for {
		prec, ok := binaryPrecedence[p.cur.Type]
		if !ok || prec < minPrec {
			return left
		}
		op := p.cur.Lexeme
		pos := p.cur.Pos
		p.next()
		right := p.parseBinary(prec + 1)
		left = &ast.BinaryExpr{Base: ast.Base{StartPos: pos}, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() ast.Expression {
	switch p.cur.Type {
	case token.BANG, token.PLUS, token.MINUS:
		pos := p.cur.Pos
		op := p.cur.Lexeme
		p.next()
		arg := p.parseUnary()
		return &ast.UnaryExpr{Base: ast.Base{StartPos: pos}, Op: op, Arg: arg}
	default:
		return p.parseMemberChain(true)
	}
}

// parseMemberChain parses a primary expression followed by any number
// of postfix accesses. Consecutive plain `.name` segments starting
// from a bare identifier are accumulated into path/pathPos instead of
// being wrapped in MemberAccess nodes immediately; the chain is only
// flushed into an *ast.Identifier (single segment) or
// *ast.DottedIdentifiers (multiple segments) once a subscript, call,
// method-arrow call, namespace access, or the end of the chain forces
// a decision (spec §4.B/§4.C). allowCall disables `(` and `->` so
// `new Foo(...)` and `class C extends Foo {...}` can parse the
// callee/superclass expression without consuming the constructor's own
// argument list.
func (p *Parser) parseMemberChain(allowCall bool) ast.Expression {
	start := p.parsePrimary()

	var expr ast.Expression
	var path []string
	var pathPos token.Position

	if id, ok := start.(*ast.Identifier); ok {
		path = []string{id.Name}
		pathPos = id.StartPos
	} else {
		expr = start
	}

	flush := func() ast.Expression {
		if expr != nil {
			return expr
		}
		if len(path) == 1 {
			return &ast.Identifier{Base: ast.Base{StartPos: pathPos}, Name: path[0]}
		}
		return &ast.DottedIdentifiers{Base: ast.Base{StartPos: pathPos}, Path: path}
	}

	for {
		switch p.cur.Type {
		case token.DOT:
			p.next()
			name := p.expect(token.IDENT).Lexeme
			if expr == nil {
				path = append(path, name)
				continue
			}
			expr = &ast.MemberAccess{Base: ast.Base{StartPos: expr.Pos()}, Object: expr, Indexer: ast.PropertyName(name)}
		case token.LBRACKET:
			base := flush()
			expr, path = base, nil
			p.next()
			idx := p.parseExpression()
			p.expect(token.RBRACKET)
			expr = &ast.MemberAccess{Base: ast.Base{StartPos: base.Pos()}, Object: base, Indexer: ast.Subscript{Index: idx}}
		case token.LPAREN:
			if !allowCall {
				return flush()
			}
			base := flush()
			pos := base.Pos()
			p.next()
			args := p.parseArgs()
			p.expect(token.RPAREN)
			expr, path = &ast.FunctionCallExpr{Base: ast.Base{StartPos: pos}, Callee: base, Args: args}, nil
		case token.ARROW:
			if !allowCall {
				return flush()
			}
			base := flush()
			pos := base.Pos()
			p.next()
			name := p.expect(token.IDENT).Lexeme
			p.expect(token.LPAREN)
			args := p.parseArgs()
			p.expect(token.RPAREN)
			callee := &ast.MemberAccess{Base: ast.Base{StartPos: pos}, Object: base, Indexer: ast.MethodNameArrow(name)}
			expr, path = &ast.FunctionCallExpr{Base: ast.Base{StartPos: pos}, Callee: callee, Args: args}, nil
		case token.DOUBLE_COLON:
			base := flush()
			pos := base.Pos()
			p.next()
			name := p.expect(token.IDENT).Lexeme
			inner := &ast.MemberAccess{Base: ast.Base{StartPos: pos}, Object: base, Indexer: ast.PropertyName(name)}
			expr, path = &ast.ParenExpr{Base: ast.Base{StartPos: pos}, Inner: inner}, nil
		default:
			return flush()
		}
	}
}

func (p *Parser) parseArgs() []ast.Expression {
	var args []ast.Expression
	for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
		args = append(args, p.parseExpression())
		if p.cur.Type == token.COMMA {
			p.next()
		}
	}
	return args
}

func (p *Parser) parsePrimary() ast.Expression {
	pos := p.cur.Pos
	switch p.cur.Type {
	case token.NULL:
		p.next()
		return &ast.NullLiteral{Base: ast.Base{StartPos: pos}}
	case token.TRUE:
		p.next()
		return &ast.BoolLiteral{Base: ast.Base{StartPos: pos}, Value: true}
	case token.FALSE:
		p.next()
		return &ast.BoolLiteral{Base: ast.Base{StartPos: pos}, Value: false}
	case token.NUMBER:
		lexeme := p.cur.Lexeme
		p.next()
		isFloat, i, f, err := lexer.ParseNumberLiteral(lexeme)
		if err != nil {
			p.errorf(pos, errors.InvalidNumericLiteral, errors.Descriptor{
				Value: fmt.Sprintf("%q: %v", lexeme, err),
			})
		}
		return &ast.NumberLiteral{Base: ast.Base{StartPos: pos}, IsFloat: isFloat, IntValue: i, FloatValue: f}
	case token.STRING:
		v := p.cur.Lexeme
		p.next()
		return &ast.StringLiteral{Base: ast.Base{StartPos: pos}, Value: v}
	case token.IDENT:
		name := p.cur.Lexeme
		p.next()
		return &ast.Identifier{Base: ast.Base{StartPos: pos}, Name: name}
	case token.LPAREN:
		p.next()
		inner := p.parseExpression()
		p.expect(token.RPAREN)
		return &ast.ParenExpr{Base: ast.Base{StartPos: pos}, Inner: inner}
	case token.NEW:
		p.next()
		callee := p.parseMemberChain(false)
		p.expect(token.LPAREN)
		args := p.parseArgs()
		p.expect(token.RPAREN)
		return &ast.NewObjectExpr{Base: ast.Base{StartPos: pos}, Callee: callee, Args: args}
	case token.FN:
		decl := p.parseFunctionDecl(false)
		return &ast.FunctionExpression{Base: ast.Base{StartPos: pos}, Decl: decl}
	case token.CLASS:
		decl := p.parseClassDecl()
		return &ast.ClassDeclarationExpression{Base: ast.Base{StartPos: pos}, Decl: decl}
	default:
		p.errorf(pos, errors.TokenCannotBeParsed, errors.Descriptor{
			Value: fmt.Sprintf("%s(%q)", p.cur.Type, p.cur.Lexeme),
		})
		p.next()
		return &ast.NullLiteral{Base: ast.Base{StartPos: pos}}
	}
}
