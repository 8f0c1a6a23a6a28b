package hashclass

func (p *parser) parseClassLiteral() *ClassLiteral {
	cls := &ClassLiteral{position: p.curToken.Pos}

	if p.peekToken.Type == tokenIdent {
		p.nextToken()
		cls.Name = p.curToken.Literal
	}

	if p.peekToken.Type == tokenExtends {
		p.nextToken()
		p.nextToken()
		cls.SuperClass = p.parseExpression(precPrefix)
		if cls.SuperClass == nil {
			return nil
		}
	}

	if !p.expectPeek(tokenLBrace) {
		return nil
	}

	p.nextToken()
	for p.curToken.Type != tokenRBrace && p.curToken.Type != tokenEOF {
		if p.curToken.Type == tokenSemicolon {
			p.nextToken()
			continue
		}
		el := p.parseClassElement()
		if el == nil {
			return nil
		}
		if el.Kind == ElementConstructor && cls.constructorElement() != nil {
			p.addParseError(el.position, "a class may only have one constructor")
			return nil
		}
		cls.Elements = append(cls.Elements, el)
		p.nextToken()
	}

	if p.curToken.Type != tokenRBrace {
		p.errorExpected(p.curToken, "'}'")
		return nil
	}

	names, errs := CollectPrivateBoundIdentifiers(cls, p.l.input)
	if len(errs) > 0 {
		p.errors = append(p.errors, errs...)
		return nil
	}
	cls.PrivateNames = names
	return cls
}

// parseClassElement parses one member starting at the current token and
// leaves the parser on the member's last token.
func (p *parser) parseClassElement() *ClassElement {
	el := &ClassElement{Kind: ElementMethod, position: p.curToken.Pos}

	if p.curToken.Type == tokenStatic && isClassKeyStart(p.peekToken) {
		el.Static = true
		p.nextToken()
	}

	if p.curToken.Type == tokenIdent && (p.curToken.Literal == "get" || p.curToken.Literal == "set") && isClassKeyStart(p.peekToken) {
		if p.curToken.Literal == "get" {
			el.Kind = ElementGetter
		} else {
			el.Kind = ElementSetter
		}
		p.nextToken()
	}

	keyTok := p.curToken
	if keyTok.Type == tokenPrivateName {
		el.Key = keyTok.Literal
		el.Private = true
	} else {
		key, ok := propertyKey(keyTok)
		if !ok {
			p.errorExpected(keyTok, "class member name")
			return nil
		}
		el.Key = key
	}

	if p.peekToken.Type != tokenLParen {
		if el.Kind != ElementMethod {
			p.errorExpected(p.peekToken, "'('")
			return nil
		}
		return p.parseClassField(el)
	}

	isCtorName := !el.Private && el.Key == "constructor"
	if isCtorName && !el.Static {
		if el.Kind != ElementMethod {
			p.addParseError(el.position, "class constructor may not be an accessor")
			return nil
		}
		el.Kind = ElementConstructor
	}

	p.nextToken()
	params := p.parseParams()
	if params == nil {
		return nil
	}
	switch {
	case el.Kind == ElementGetter && len(params) != 0:
		p.addParseError(el.position, "getter "+el.Key+" must not declare parameters")
		return nil
	case el.Kind == ElementSetter && len(params) != 1:
		p.addParseError(el.position, "setter "+el.Key+" must declare exactly one parameter")
		return nil
	}
	body := p.parseFunctionBody()
	if body == nil {
		return nil
	}
	el.Function = &FunctionLiteral{Name: el.Key, Params: params, Body: body, position: el.position}
	return el
}

func (p *parser) parseClassField(el *ClassElement) *ClassElement {
	el.Kind = ElementField
	if !el.Private && el.Key == "constructor" {
		p.addParseError(el.position, "classes may not have a field named 'constructor'")
		return nil
	}
	if p.peekToken.Type == tokenAssign {
		p.nextToken()
		p.nextToken()
		el.Initializer = p.parseExpression(lowestPrec)
		if el.Initializer == nil {
			return nil
		}
	}
	p.skipOptionalSemicolon()
	return el
}

func isClassKeyStart(tok Token) bool {
	switch tok.Type {
	case tokenIdent, tokenPrivateName, tokenString, tokenInt:
		return true
	default:
		return tok.isKeyword()
	}
}
