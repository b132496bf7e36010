package thirsty

import (
	"fmt"
)

type parseError struct {
	kind ErrorType
	pos  Position
	msg  string
}

func (e *parseError) Error() string {
	return fmt.Sprintf("%s at %d:%d: %s", e.kind, e.pos.Line, e.pos.Column, e.msg)
}

type parser struct {
	l *lexer

	curToken  Token
	peekToken Token

	errors []error

	prefixFns map[TokenType]prefixParseFn
	infixFns  map[TokenType]infixParseFn
}

func newParser(input string) *parser {
	l := newLexer(input)
	p := &parser{l: l}

	p.prefixFns = make(map[TokenType]prefixParseFn)
	p.infixFns = make(map[TokenType]infixParseFn)

	p.registerPrefix(tokenIdent, p.parseIdentifier)
	p.registerPrefix(tokenNumber, p.parseNumberLiteral)
	p.registerPrefix(tokenString, p.parseStringLiteral)
	p.registerPrefix(tokenTrue, p.parseBoolLiteral)
	p.registerPrefix(tokenFalse, p.parseBoolLiteral)
	p.registerPrefix(tokenThis, p.parseThisExpression)
	p.registerPrefix(tokenLParen, p.parseGroupedExpression)
	p.registerPrefix(tokenLBracket, p.parseArrayLiteral)
	p.registerPrefix(tokenMinus, p.parsePrefixExpression)
	p.registerPrefix(tokenAwait, p.parseAwaitExpression)

	p.infixFns[tokenPlus] = p.parseInfixExpression
	p.infixFns[tokenMinus] = p.parseInfixExpression
	p.infixFns[tokenAsterisk] = p.parseInfixExpression
	p.infixFns[tokenSlash] = p.parseInfixExpression
	p.infixFns[tokenEQ] = p.parseInfixExpression
	p.infixFns[tokenNotEQ] = p.parseInfixExpression
	p.infixFns[tokenGTE] = p.parseInfixExpression
	p.infixFns[tokenLTE] = p.parseInfixExpression
	p.infixFns[tokenGT] = p.parseInfixExpression
	p.infixFns[tokenLT] = p.parseInfixExpression
	p.infixFns[tokenLParen] = p.parseCallExpression
	p.infixFns[tokenDot] = p.parseMemberExpression
	p.infixFns[tokenLBracket] = p.parseIndexExpression

	p.nextToken()
	p.nextToken()

	return p
}

func (p *parser) registerPrefix(tt TokenType, fn prefixParseFn) {
	p.prefixFns[tt] = fn
}

func (p *parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *parser) ParseProgram() (*Program, []error) {
	program := &Program{}

	for p.curToken.Type != tokenEOF {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		if len(p.errors) > 0 {
			break
		}
		p.nextToken()
	}

	return program, p.errors
}

func (p *parser) parseStatement() Statement {
	switch p.curToken.Type {
	case tokenDrink:
		return p.parseDrinkStatement()
	case tokenPour:
		return p.parsePourStatement()
	case tokenSip:
		return p.parseSipStatement()
	case tokenIf:
		return p.parseIfStatement()
	case tokenWhile:
		return p.parseWhileStatement()
	case tokenFunction:
		return p.parseFunctionStatement(false)
	case tokenAsync:
		if !p.expectPeek(tokenFunction) {
			return nil
		}
		return p.parseFunctionStatement(true)
	case tokenReturn:
		return p.parseReturnStatement()
	case tokenClass:
		return p.parseClassStatement()
	case tokenTry:
		return p.parseTryStatement()
	case tokenThrow:
		return p.parseThrowStatement()
	case tokenGuard:
		return p.parseGuardStatement()
	case tokenImport:
		return p.parseImportStatement()
	case tokenExport:
		return p.parseExportStatement()
	case tokenIllegal:
		p.errorf(p.curToken.Pos, "illegal token %q", p.curToken.Literal)
		return nil
	default:
		return p.parseExpressionOrAssignStatement()
	}
}

func (p *parser) parseDrinkStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	name := p.curToken.Literal
	if !p.expectPeek(tokenAssign) {
		return nil
	}
	p.nextToken()
	value := p.parseExpression(lowestPrec)
	return &DrinkStmt{Name: name, Value: value, position: pos}
}

func (p *parser) parsePourStatement() Statement {
	pos := p.curToken.Pos
	p.nextToken()
	value := p.parseExpression(lowestPrec)
	return &PourStmt{Value: value, position: pos}
}

func (p *parser) parseSipStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	return &SipStmt{Name: p.curToken.Literal, position: pos}
}

func (p *parser) parseIfStatement() Statement {
	pos := p.curToken.Pos
	p.nextToken()
	condition := p.parseExpression(lowestPrec)

	consequent := p.parseBlock()
	if consequent == nil {
		return nil
	}

	var alternate []Statement
	if p.peekToken.Type == tokenElse {
		p.nextToken()
		alternate = p.parseBlock()
		if alternate == nil {
			return nil
		}
	}

	return &IfStmt{Condition: condition, Consequent: consequent, Alternate: alternate, position: pos}
}

func (p *parser) parseWhileStatement() Statement {
	pos := p.curToken.Pos
	p.nextToken()
	condition := p.parseExpression(lowestPrec)

	body := p.parseBlock()
	if body == nil {
		return nil
	}

	return &WhileStmt{Condition: condition, Body: body, position: pos}
}

func (p *parser) parseFunctionStatement(async bool) Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	name := p.curToken.Literal

	params, ok := p.parseParameterList()
	if !ok {
		return nil
	}

	body := p.parseBlock()
	if body == nil {
		return nil
	}

	return &FunctionStmt{Name: name, Params: params, Body: body, Async: async, position: pos}
}

func (p *parser) parseParameterList() ([]string, bool) {
	if !p.expectPeek(tokenLParen) {
		return nil, false
	}

	params := []string{}
	if p.peekToken.Type == tokenRParen {
		p.nextToken()
		return params, true
	}

	p.nextToken()
	if p.curToken.Type != tokenIdent {
		p.errorExpected(p.curToken, "parameter name")
		return nil, false
	}
	params = append(params, p.curToken.Literal)
	for p.peekToken.Type == tokenComma {
		p.nextToken()
		p.nextToken()
		if p.curToken.Type != tokenIdent {
			p.errorExpected(p.curToken, "parameter name")
			return nil, false
		}
		params = append(params, p.curToken.Literal)
	}
	if !p.expectPeek(tokenRParen) {
		return nil, false
	}
	return params, true
}

func (p *parser) parseReturnStatement() Statement {
	pos := p.curToken.Pos
	if p.peekToken.Type == tokenRBrace || p.peekToken.Type == tokenEOF || p.peekToken.Pos.Line > pos.Line {
		return &ReturnStmt{position: pos}
	}
	p.nextToken()
	value := p.parseExpression(lowestPrec)
	return &ReturnStmt{Value: value, position: pos}
}

func (p *parser) parseClassStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	name := p.curToken.Literal

	if !p.expectPeek(tokenLBrace) {
		return nil
	}
	open := p.curToken.Pos

	stmt := &ClassStmt{Name: name, position: pos}
	p.nextToken()
	for p.curToken.Type != tokenRBrace {
		switch p.curToken.Type {
		case tokenEOF:
			p.unmatchedBlock(open)
			return nil
		case tokenProperty:
			declPos := p.curToken.Pos
			if !p.expectPeek(tokenIdent) {
				return nil
			}
			propName := p.curToken.Literal
			if !p.expectPeek(tokenAssign) {
				return nil
			}
			p.nextToken()
			def := p.parseExpression(lowestPrec)
			stmt.Properties = append(stmt.Properties, PropertyDecl{Name: propName, Default: def, position: declPos})
		case tokenFunction:
			method, _ := p.parseFunctionStatement(false).(*FunctionStmt)
			if method == nil {
				return nil
			}
			stmt.Methods = append(stmt.Methods, method)
		case tokenAsync:
			if !p.expectPeek(tokenFunction) {
				return nil
			}
			method, _ := p.parseFunctionStatement(true).(*FunctionStmt)
			if method == nil {
				return nil
			}
			stmt.Methods = append(stmt.Methods, method)
		default:
			p.errorExpected(p.curToken, "property or method declaration")
			return nil
		}
		p.nextToken()
	}

	return stmt
}

func (p *parser) parseTryStatement() Statement {
	pos := p.curToken.Pos
	body := p.parseBlock()
	if body == nil {
		return nil
	}

	stmt := &TryStmt{Body: body, position: pos}

	// The catch and finally markers may sit on their own line or be fused
	// onto the try block's closing brace; the token stream makes the two
	// spellings identical.
	if p.peekToken.Type == tokenCatch {
		p.nextToken()
		if !p.expectPeek(tokenLParen) {
			return nil
		}
		if !p.expectPeek(tokenIdent) {
			return nil
		}
		stmt.CatchVar = p.curToken.Literal
		if !p.expectPeek(tokenRParen) {
			return nil
		}
		stmt.Catch = p.parseBlock()
		if stmt.Catch == nil {
			return nil
		}
		stmt.HasCatch = true
	}

	if p.peekToken.Type == tokenFinally {
		p.nextToken()
		stmt.Finally = p.parseBlock()
		if stmt.Finally == nil {
			return nil
		}
	}

	if !stmt.HasCatch && stmt.Finally == nil {
		p.errorf(pos, "try block requires a catch or finally clause")
		return nil
	}

	return stmt
}

func (p *parser) parseThrowStatement() Statement {
	pos := p.curToken.Pos
	p.nextToken()
	value := p.parseExpression(lowestPrec)
	return &ThrowStmt{Value: value, position: pos}
}

func (p *parser) parseGuardStatement() Statement {
	pos := p.curToken.Pos
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return &GuardStmt{Body: body, position: pos}
}

func (p *parser) parseImportStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenString) {
		return nil
	}
	module := p.curToken.Literal
	if !p.expectPeek(tokenAs) {
		return nil
	}
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	return &ImportStmt{Module: module, Alias: p.curToken.Literal, position: pos}
}

func (p *parser) parseExportStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	return &ExportStmt{Name: p.curToken.Literal, position: pos}
}

func (p *parser) parseExpressionOrAssignStatement() Statement {
	pos := p.curToken.Pos
	expr := p.parseExpression(lowestPrec)
	if expr == nil {
		return nil
	}

	if p.peekToken.Type == tokenAssign {
		if !isAssignable(expr) {
			p.errorf(p.peekToken.Pos, "invalid assignment target")
			return nil
		}
		p.nextToken()
		p.nextToken()
		value := p.parseExpression(lowestPrec)
		return &AssignStmt{Target: expr, Value: value, position: pos}
	}

	return &ExprStmt{Expr: expr, position: pos}
}

// parseBlock consumes `{ … }` starting at the peek token and leaves the
// closing brace as the current token. Hitting EOF first is an unmatched
// block, never a silent end of input.
func (p *parser) parseBlock() []Statement {
	if !p.expectPeek(tokenLBrace) {
		return nil
	}
	open := p.curToken.Pos

	body := []Statement{}
	p.nextToken()
	for p.curToken.Type != tokenRBrace {
		if p.curToken.Type == tokenEOF {
			p.unmatchedBlock(open)
			return nil
		}
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		body = append(body, stmt)
		p.nextToken()
	}

	return body
}

func (p *parser) expectPeek(tt TokenType) bool {
	if p.peekToken.Type == tt {
		p.nextToken()
		return true
	}
	p.errorExpected(p.peekToken, string(tt))
	return false
}

func (p *parser) errorExpected(tok Token, what string) {
	got := tok.Literal
	if got == "" {
		got = string(tok.Type)
	}
	p.errors = append(p.errors, &parseError{
		kind: ErrSyntaxShape,
		pos:  tok.Pos,
		msg:  fmt.Sprintf("expected %s, found %q", what, got),
	})
}

func (p *parser) errorf(pos Position, format string, args ...any) {
	p.errors = append(p.errors, &parseError{
		kind: ErrSyntaxShape,
		pos:  pos,
		msg:  fmt.Sprintf(format, args...),
	})
}

func (p *parser) unmatchedBlock(open Position) {
	p.errors = append(p.errors, &parseError{
		kind: ErrUnmatchedBlock,
		pos:  open,
		msg:  fmt.Sprintf("block opened at line %d is never closed", open.Line),
	})
}
