package hashclass

const (
	lowestPrec = iota
	precOr
	precAnd
	precEquality
	precComparison
	precSum
	precProduct
	precPrefix
	precCall
)

var precedences = map[TokenType]int{
	tokenOr:          precOr,
	tokenAnd:         precAnd,
	tokenEQ:          precEquality,
	tokenNotEQ:       precEquality,
	tokenStrictEQ:    precEquality,
	tokenStrictNotEQ: precEquality,
	tokenLT:          precComparison,
	tokenLTE:         precComparison,
	tokenGT:          precComparison,
	tokenGTE:         precComparison,
	tokenPlus:        precSum,
	tokenMinus:       precSum,
	tokenSlash:       precProduct,
	tokenAsterisk:    precProduct,
	tokenPercent:     precProduct,
	tokenLParen:      precCall,
	tokenDot:         precCall,
	tokenLBracket:    precCall,
}

func (p *parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return lowestPrec
}
