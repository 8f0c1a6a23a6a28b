package hashclass

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenIllegal TokenType = "ILLEGAL"
	tokenEOF     TokenType = "EOF"

	tokenIdent       TokenType = "IDENT"
	tokenPrivateName TokenType = "PRIVATE_NAME"
	tokenInt         TokenType = "INT"
	tokenFloat       TokenType = "FLOAT"
	tokenString      TokenType = "STRING"

	tokenAssign      TokenType = "="
	tokenPlusAssign  TokenType = "+="
	tokenMinusAssign TokenType = "-="
	tokenStarAssign  TokenType = "*="
	tokenPlus        TokenType = "+"
	tokenMinus       TokenType = "-"
	tokenBang        TokenType = "!"
	tokenAsterisk    TokenType = "*"
	tokenSlash       TokenType = "/"
	tokenPercent     TokenType = "%"
	tokenLT          TokenType = "<"
	tokenGT          TokenType = ">"
	tokenLTE         TokenType = "<="
	tokenGTE         TokenType = ">="
	tokenEQ          TokenType = "=="
	tokenNotEQ       TokenType = "!="
	tokenStrictEQ    TokenType = "==="
	tokenStrictNotEQ TokenType = "!=="
	tokenAnd         TokenType = "&&"
	tokenOr          TokenType = "||"

	tokenComma     TokenType = ","
	tokenSemicolon TokenType = ";"
	tokenColon     TokenType = ":"
	tokenDot       TokenType = "."
	tokenLParen    TokenType = "("
	tokenRParen    TokenType = ")"
	tokenLBrace    TokenType = "{"
	tokenRBrace    TokenType = "}"
	tokenLBracket  TokenType = "["
	tokenRBracket  TokenType = "]"

	tokenClass     TokenType = "CLASS"
	tokenExtends   TokenType = "EXTENDS"
	tokenStatic    TokenType = "STATIC"
	tokenFunction  TokenType = "FUNCTION"
	tokenReturn    TokenType = "RETURN"
	tokenIf        TokenType = "IF"
	tokenElse      TokenType = "ELSE"
	tokenWhile     TokenType = "WHILE"
	tokenLet       TokenType = "LET"
	tokenConst     TokenType = "CONST"
	tokenNew       TokenType = "NEW"
	tokenThis      TokenType = "THIS"
	tokenSuper     TokenType = "SUPER"
	tokenTrue      TokenType = "TRUE"
	tokenFalse     TokenType = "FALSE"
	tokenNull      TokenType = "NULL"
	tokenUndefined TokenType = "UNDEFINED"
	tokenTypeof    TokenType = "TYPEOF"
	tokenIn        TokenType = "IN"
)

var keywords = map[string]TokenType{
	"class":     tokenClass,
	"extends":   tokenExtends,
	"static":    tokenStatic,
	"function":  tokenFunction,
	"return":    tokenReturn,
	"if":        tokenIf,
	"else":      tokenElse,
	"while":     tokenWhile,
	"let":       tokenLet,
	"const":     tokenConst,
	"new":       tokenNew,
	"this":      tokenThis,
	"super":     tokenSuper,
	"true":      tokenTrue,
	"false":     tokenFalse,
	"null":      tokenNull,
	"undefined": tokenUndefined,
	"typeof":    tokenTypeof,
	"in":        tokenIn,
}

// Token captures lexical information for the parser.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// Position identifies a line and column in the source file.
type Position struct {
	Line   int
	Column int
}

// isKeyword reports whether the token spells a reserved word. Reserved words
// are still valid property names after a dot and inside class bodies.
func (t Token) isKeyword() bool {
	_, ok := keywords[t.Literal]
	return ok && t.Type != tokenIdent
}
