package hashclass

import (
	"strconv"
)

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

type parser struct {
	l *lexer

	curToken  Token
	peekToken Token

	errors []error

	prefixFns map[TokenType]prefixParseFn
	infixFns  map[TokenType]infixParseFn

	functionDepth int
}

func newParser(input string) *parser {
	l := newLexer(input)
	p := &parser{l: l}

	p.prefixFns = make(map[TokenType]prefixParseFn)
	p.infixFns = make(map[TokenType]infixParseFn)

	p.registerPrefix(tokenIdent, p.parseIdentifier)
	p.registerPrefix(tokenInt, p.parseIntegerLiteral)
	p.registerPrefix(tokenFloat, p.parseFloatLiteral)
	p.registerPrefix(tokenString, p.parseStringLiteral)
	p.registerPrefix(tokenTrue, p.parseBooleanLiteral)
	p.registerPrefix(tokenFalse, p.parseBooleanLiteral)
	p.registerPrefix(tokenNull, p.parseNullLiteral)
	p.registerPrefix(tokenUndefined, p.parseUndefinedLiteral)
	p.registerPrefix(tokenThis, p.parseThisExpression)
	p.registerPrefix(tokenLParen, p.parseGroupedExpression)
	p.registerPrefix(tokenLBracket, p.parseArrayLiteral)
	p.registerPrefix(tokenLBrace, p.parseObjectLiteral)
	p.registerPrefix(tokenBang, p.parsePrefixExpression)
	p.registerPrefix(tokenMinus, p.parsePrefixExpression)
	p.registerPrefix(tokenTypeof, p.parsePrefixExpression)
	p.registerPrefix(tokenFunction, p.parseFunctionExpression)
	p.registerPrefix(tokenClass, p.parseClassExpression)
	p.registerPrefix(tokenNew, p.parseNewExpression)
	p.registerPrefix(tokenSuper, p.parseSuperExpression)
	p.registerPrefix(tokenPrivateName, p.parsePrivateInExpression)

	for _, tt := range []TokenType{
		tokenPlus, tokenMinus, tokenSlash, tokenAsterisk, tokenPercent,
		tokenEQ, tokenNotEQ, tokenStrictEQ, tokenStrictNotEQ,
		tokenLT, tokenLTE, tokenGT, tokenGTE, tokenAnd, tokenOr,
	} {
		p.infixFns[tt] = p.parseInfixExpression
	}
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

func (p *parser) expectPeek(tt TokenType) bool {
	if p.peekToken.Type == tt {
		p.nextToken()
		return true
	}
	p.errorExpected(p.peekToken, tokenLabel(tt))
	return false
}

func (p *parser) skipOptionalSemicolon() {
	if p.peekToken.Type == tokenSemicolon {
		p.nextToken()
	}
}

func (p *parser) ParseProgram() (*Program, []error) {
	program := &Program{}

	for p.curToken.Type != tokenEOF {
		if p.curToken.Type == tokenSemicolon {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		} else if len(p.errors) > 0 {
			p.recover()
		}
		p.nextToken()
	}

	if len(p.errors) == 0 {
		p.errors = append(p.errors, checkPrivateReferences(program, p.l.input)...)
	}

	return program, p.errors
}

// recover skips to the end of the current line so one malformed statement
// does not cascade into a wall of follow-on errors.
func (p *parser) recover() {
	line := p.curToken.Pos.Line
	for p.peekToken.Type != tokenEOF && p.peekToken.Pos.Line == line {
		p.nextToken()
	}
}

func (p *parser) parseStatement() Statement {
	var stmt Statement
	switch p.curToken.Type {
	case tokenLet, tokenConst:
		stmt = p.parseLetStatement()
	case tokenReturn:
		stmt = p.parseReturnStatement()
	case tokenIf:
		stmt = p.parseIfStatement()
	case tokenWhile:
		stmt = p.parseWhileStatement()
	case tokenLBrace:
		pos := p.curToken.Pos
		body := p.parseBlockBody()
		if body == nil {
			return nil
		}
		return &BlockStmt{Body: body, position: pos}
	case tokenFunction:
		if p.peekToken.Type == tokenIdent {
			pos := p.curToken.Pos
			fn := p.parseFunctionLiteral()
			if fn == nil {
				return nil
			}
			return &FunctionStmt{Function: fn, position: pos}
		}
		stmt = p.parseExpressionOrAssignStatement()
	case tokenClass:
		if p.peekToken.Type == tokenIdent {
			pos := p.curToken.Pos
			cls := p.parseClassLiteral()
			if cls == nil {
				return nil
			}
			return &ClassStmt{Class: cls, position: pos}
		}
		stmt = p.parseExpressionOrAssignStatement()
	default:
		stmt = p.parseExpressionOrAssignStatement()
	}
	if stmt != nil {
		p.skipOptionalSemicolon()
	}
	return stmt
}

func (p *parser) parseLetStatement() Statement {
	pos := p.curToken.Pos
	isConst := p.curToken.Type == tokenConst
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	name := p.curToken.Literal

	if p.peekToken.Type != tokenAssign {
		if isConst {
			p.addParseError(p.curToken.Pos, "missing initializer in const declaration")
			return nil
		}
		return &LetStmt{Name: name, position: pos}
	}
	p.nextToken()
	p.nextToken()
	value := p.parseExpression(lowestPrec)
	if value == nil {
		return nil
	}
	return &LetStmt{Name: name, Value: value, Const: isConst, position: pos}
}

func (p *parser) parseReturnStatement() Statement {
	pos := p.curToken.Pos
	if p.functionDepth == 0 {
		p.addParseError(pos, "illegal return statement")
		return nil
	}
	switch p.peekToken.Type {
	case tokenSemicolon, tokenRBrace, tokenEOF:
		return &ReturnStmt{position: pos}
	}
	if p.peekToken.Pos.Line != pos.Line {
		return &ReturnStmt{position: pos}
	}
	p.nextToken()
	value := p.parseExpression(lowestPrec)
	if value == nil {
		return nil
	}
	return &ReturnStmt{Value: value, position: pos}
}

func (p *parser) parseIfStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenLParen) {
		return nil
	}
	p.nextToken()
	condition := p.parseExpression(lowestPrec)
	if condition == nil || !p.expectPeek(tokenRParen) {
		return nil
	}
	consequent := p.parseBody()
	if consequent == nil {
		return nil
	}

	stmt := &IfStmt{Condition: condition, Consequent: consequent, position: pos}
	if p.peekToken.Type != tokenElse {
		return stmt
	}
	p.nextToken()
	if p.peekToken.Type == tokenIf {
		p.nextToken()
		nested := p.parseIfStatement()
		if nested == nil {
			return nil
		}
		stmt.Alternate = []Statement{nested}
		return stmt
	}
	alternate := p.parseBody()
	if alternate == nil {
		return nil
	}
	stmt.Alternate = alternate
	return stmt
}

func (p *parser) parseWhileStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenLParen) {
		return nil
	}
	p.nextToken()
	condition := p.parseExpression(lowestPrec)
	if condition == nil || !p.expectPeek(tokenRParen) {
		return nil
	}
	body := p.parseBody()
	if body == nil {
		return nil
	}
	return &WhileStmt{Condition: condition, Body: body, position: pos}
}

// parseBody parses either a braced block or a single statement following
// the current token. The result is non-nil on success.
func (p *parser) parseBody() []Statement {
	p.nextToken()
	if p.curToken.Type == tokenLBrace {
		return p.parseBlockBody()
	}
	stmt := p.parseStatement()
	if stmt == nil {
		return nil
	}
	return []Statement{stmt}
}

// parseBlockBody expects the current token to be '{' and leaves the parser
// on the matching '}'.
func (p *parser) parseBlockBody() []Statement {
	body := []Statement{}
	p.nextToken()
	for p.curToken.Type != tokenRBrace && p.curToken.Type != tokenEOF {
		if p.curToken.Type == tokenSemicolon {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		body = append(body, stmt)
		p.nextToken()
	}
	if p.curToken.Type != tokenRBrace {
		p.errorExpected(p.curToken, "'}'")
		return nil
	}
	return body
}

func (p *parser) parseExpressionOrAssignStatement() Statement {
	pos := p.curToken.Pos
	expr := p.parseExpression(lowestPrec)
	if expr == nil {
		return nil
	}

	var operator TokenType
	switch p.peekToken.Type {
	case tokenAssign:
	case tokenPlusAssign:
		operator = tokenPlus
	case tokenMinusAssign:
		operator = tokenMinus
	case tokenStarAssign:
		operator = tokenAsterisk
	default:
		return &ExprStmt{Expr: expr, position: pos}
	}

	if !isAssignable(expr) {
		p.addParseError(p.peekToken.Pos, "invalid assignment target")
		return nil
	}
	p.nextToken()
	p.nextToken()
	value := p.parseExpression(lowestPrec)
	if value == nil {
		return nil
	}
	return &AssignStmt{Target: expr, Operator: operator, Value: value, position: pos}
}

func (p *parser) parseFunctionLiteral() *FunctionLiteral {
	pos := p.curToken.Pos
	name := ""
	if p.peekToken.Type == tokenIdent {
		p.nextToken()
		name = p.curToken.Literal
	}
	if !p.expectPeek(tokenLParen) {
		return nil
	}
	params := p.parseParams()
	if params == nil {
		return nil
	}
	body := p.parseFunctionBody()
	if body == nil {
		return nil
	}
	return &FunctionLiteral{Name: name, Params: params, Body: body, position: pos}
}

// parseParams expects the current token to be '(' and leaves the parser on
// the closing ')'.
func (p *parser) parseParams() []string {
	params := []string{}
	if p.peekToken.Type == tokenRParen {
		p.nextToken()
		return params
	}
	seen := make(map[string]struct{})
	for {
		if !p.expectPeek(tokenIdent) {
			return nil
		}
		name := p.curToken.Literal
		if _, dup := seen[name]; dup {
			p.addParseError(p.curToken.Pos, "duplicate parameter name "+strconv.Quote(name))
			return nil
		}
		seen[name] = struct{}{}
		params = append(params, name)
		if p.peekToken.Type != tokenComma {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}
	return params
}

func (p *parser) parseFunctionBody() []Statement {
	if !p.expectPeek(tokenLBrace) {
		return nil
	}
	p.functionDepth++
	defer func() { p.functionDepth-- }()
	return p.parseBlockBody()
}

func isAssignable(expr Expression) bool {
	switch expr.(type) {
	case *Identifier, *MemberExpr, *PrivateMemberExpr, *IndexExpr:
		return true
	default:
		return false
	}
}
