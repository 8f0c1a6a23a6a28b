package hashclass

import (
	"strconv"
)

func (p *parser) parseExpression(precedence int) Expression {
	prefix := p.prefixFns[p.curToken.Type]
	if prefix == nil {
		p.errorUnexpected(p.curToken)
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for p.peekToken.Type != tokenEOF && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *parser) parseIdentifier() Expression {
	return &Identifier{Name: p.curToken.Literal, position: p.curToken.Pos}
}

func (p *parser) parseIntegerLiteral() Expression {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addParseError(p.curToken.Pos, "invalid integer literal")
		return nil
	}
	return &IntegerLiteral{Value: value, position: p.curToken.Pos}
}

func (p *parser) parseFloatLiteral() Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addParseError(p.curToken.Pos, "invalid float literal")
		return nil
	}
	return &FloatLiteral{Value: value, position: p.curToken.Pos}
}

func (p *parser) parseStringLiteral() Expression {
	return &StringLiteral{Value: p.curToken.Literal, position: p.curToken.Pos}
}

func (p *parser) parseBooleanLiteral() Expression {
	return &BoolLiteral{Value: p.curToken.Type == tokenTrue, position: p.curToken.Pos}
}

func (p *parser) parseNullLiteral() Expression {
	return &NullLiteral{position: p.curToken.Pos}
}

func (p *parser) parseUndefinedLiteral() Expression {
	return &UndefinedLiteral{position: p.curToken.Pos}
}

func (p *parser) parseThisExpression() Expression {
	return &ThisExpr{position: p.curToken.Pos}
}

func (p *parser) parseGroupedExpression() Expression {
	p.nextToken()
	expr := p.parseExpression(lowestPrec)
	if expr == nil || !p.expectPeek(tokenRParen) {
		return nil
	}
	return expr
}

func (p *parser) parseArrayLiteral() Expression {
	pos := p.curToken.Pos
	elements := p.parseExpressionList(tokenRBracket)
	if elements == nil {
		return nil
	}
	return &ArrayLiteral{Elements: elements, position: pos}
}

func (p *parser) parseObjectLiteral() Expression {
	pos := p.curToken.Pos
	props := []ObjectProperty{}
	seen := make(map[string]int)

	for p.peekToken.Type != tokenRBrace {
		p.nextToken()
		keyTok := p.curToken
		if keyTok.Type == tokenPrivateName {
			p.addParseError(keyTok.Pos, "private name "+keyTok.Literal+" is not allowed in an object literal")
			return nil
		}
		key, ok := propertyKey(keyTok)
		if !ok {
			p.errorExpected(keyTok, "property name")
			return nil
		}

		var value Expression
		if p.peekToken.Type == tokenColon {
			p.nextToken()
			p.nextToken()
			value = p.parseExpression(lowestPrec)
			if value == nil {
				return nil
			}
		} else if keyTok.Type == tokenIdent {
			value = &Identifier{Name: key, position: keyTok.Pos}
		} else {
			p.errorExpected(p.peekToken, "':'")
			return nil
		}

		if idx, dup := seen[key]; dup {
			props[idx].Value = value
		} else {
			seen[key] = len(props)
			props = append(props, ObjectProperty{Key: key, Value: value})
		}

		if p.peekToken.Type != tokenComma {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(tokenRBrace) {
		return nil
	}
	return &ObjectLiteral{Properties: props, position: pos}
}

// propertyKey returns the property name spelled by tok. Reserved words are
// valid property names.
func propertyKey(tok Token) (string, bool) {
	switch {
	case tok.Type == tokenIdent, tok.Type == tokenString, tok.Type == tokenInt:
		return tok.Literal, true
	case tok.isKeyword():
		return tok.Literal, true
	default:
		return "", false
	}
}

func (p *parser) parsePrefixExpression() Expression {
	tok := p.curToken
	p.nextToken()
	right := p.parseExpression(precPrefix)
	if right == nil {
		return nil
	}
	return &PrefixExpr{Operator: tok.Type, Right: right, position: tok.Pos}
}

func (p *parser) parseInfixExpression(left Expression) Expression {
	tok := p.curToken
	prec := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	return &InfixExpr{Left: left, Operator: tok.Type, Right: right, position: tok.Pos}
}

func (p *parser) parsePrivateInExpression() Expression {
	tok := p.curToken
	if p.peekToken.Type != tokenIn {
		p.addParseError(tok.Pos, "unexpected private name "+tok.Literal)
		return nil
	}
	p.nextToken()
	p.nextToken()
	right := p.parseExpression(precComparison)
	if right == nil {
		return nil
	}
	return &PrivateInExpr{Name: tok.Literal, Object: right, position: tok.Pos}
}

func (p *parser) parseCallExpression(callee Expression) Expression {
	pos := p.curToken.Pos
	args := p.parseExpressionList(tokenRParen)
	if args == nil {
		return nil
	}
	return &CallExpr{Callee: callee, Args: args, position: pos}
}

func (p *parser) parseMemberExpression(object Expression) Expression {
	pos := p.curToken.Pos
	p.nextToken()
	if p.curToken.Type == tokenPrivateName {
		return &PrivateMemberExpr{Object: object, Name: p.curToken.Literal, position: pos}
	}
	if p.curToken.Type != tokenIdent && !p.curToken.isKeyword() {
		p.errorExpected(p.curToken, "property name")
		return nil
	}
	return &MemberExpr{Object: object, Property: p.curToken.Literal, position: pos}
}

func (p *parser) parseIndexExpression(object Expression) Expression {
	pos := p.curToken.Pos
	p.nextToken()
	index := p.parseExpression(lowestPrec)
	if index == nil || !p.expectPeek(tokenRBracket) {
		return nil
	}
	return &IndexExpr{Object: object, Index: index, position: pos}
}

// parseExpressionList expects the current token to open the list and leaves
// the parser on the closing token. An empty list is non-nil.
func (p *parser) parseExpressionList(end TokenType) []Expression {
	list := []Expression{}
	if p.peekToken.Type == end {
		p.nextToken()
		return list
	}
	p.nextToken()
	first := p.parseExpression(lowestPrec)
	if first == nil {
		return nil
	}
	list = append(list, first)
	for p.peekToken.Type == tokenComma {
		p.nextToken()
		if p.peekToken.Type == end {
			break
		}
		p.nextToken()
		next := p.parseExpression(lowestPrec)
		if next == nil {
			return nil
		}
		list = append(list, next)
	}
	if !p.expectPeek(end) {
		return nil
	}
	return list
}

func (p *parser) parseFunctionExpression() Expression {
	fn := p.parseFunctionLiteral()
	if fn == nil {
		return nil
	}
	return fn
}

func (p *parser) parseClassExpression() Expression {
	cls := p.parseClassLiteral()
	if cls == nil {
		return nil
	}
	return cls
}

// parseNewExpression parses `new Callee(args)`. The callee is a member
// chain; the first argument list belongs to `new`, not to a call.
func (p *parser) parseNewExpression() Expression {
	pos := p.curToken.Pos
	p.nextToken()

	var callee Expression
	if p.curToken.Type == tokenNew {
		callee = p.parseNewExpression()
	} else {
		prefix := p.prefixFns[p.curToken.Type]
		if prefix == nil {
			p.errorUnexpected(p.curToken)
			return nil
		}
		callee = prefix()
	}
	if callee == nil {
		return nil
	}
	for p.peekToken.Type == tokenDot || p.peekToken.Type == tokenLBracket {
		p.nextToken()
		callee = p.infixFns[p.curToken.Type](callee)
		if callee == nil {
			return nil
		}
	}

	args := []Expression{}
	if p.peekToken.Type == tokenLParen {
		p.nextToken()
		args = p.parseExpressionList(tokenRParen)
		if args == nil {
			return nil
		}
	}
	return &NewExpr{Callee: callee, Args: args, position: pos}
}

func (p *parser) parseSuperExpression() Expression {
	pos := p.curToken.Pos
	switch p.peekToken.Type {
	case tokenLParen:
		p.nextToken()
		args := p.parseExpressionList(tokenRParen)
		if args == nil {
			return nil
		}
		return &SuperCallExpr{Args: args, position: pos}
	case tokenDot:
		p.nextToken()
		p.nextToken()
		if p.curToken.Type == tokenPrivateName {
			p.addParseError(p.curToken.Pos, "private names cannot be accessed through super")
			return nil
		}
		if p.curToken.Type != tokenIdent && !p.curToken.isKeyword() {
			p.errorExpected(p.curToken, "property name")
			return nil
		}
		return &SuperMemberExpr{Property: p.curToken.Literal, position: pos}
	default:
		p.addParseError(pos, "'super' keyword unexpected here")
		return nil
	}
}
