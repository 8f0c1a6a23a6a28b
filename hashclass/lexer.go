package hashclass

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch rune
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1, column: 0}
	l.readRune()
	return l
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w

	if r == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}

	l.ch = r
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

func (l *lexer) peekRuneN(n int) rune {
	idx := l.offset
	var r rune
	var w int
	for i := 0; i <= n; i++ {
		if idx >= len(l.input) {
			return 0
		}
		r, w = utf8.DecodeRuneInString(l.input[idx:])
		if i == n {
			return r
		}
		idx += w
	}
	return 0
}

func (l *lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	tok := Token{Pos: Position{Line: l.line, Column: l.column}}

	switch l.ch {
	case 0:
		tok.Type = tokenEOF
		tok.Literal = ""
	case '+':
		tok = l.oneOrTwo(tokenPlus, '=', tokenPlusAssign)
	case '-':
		tok = l.oneOrTwo(tokenMinus, '=', tokenMinusAssign)
	case '*':
		tok = l.oneOrTwo(tokenAsterisk, '=', tokenStarAssign)
	case '/':
		tok = l.makeToken(tokenSlash, "/")
		l.readRune()
	case '%':
		tok = l.makeToken(tokenPercent, "%")
		l.readRune()
	case '(':
		tok = l.makeToken(tokenLParen, "(")
		l.readRune()
	case ')':
		tok = l.makeToken(tokenRParen, ")")
		l.readRune()
	case '{':
		tok = l.makeToken(tokenLBrace, "{")
		l.readRune()
	case '}':
		tok = l.makeToken(tokenRBrace, "}")
		l.readRune()
	case '[':
		tok = l.makeToken(tokenLBracket, "[")
		l.readRune()
	case ']':
		tok = l.makeToken(tokenRBracket, "]")
		l.readRune()
	case ',':
		tok = l.makeToken(tokenComma, ",")
		l.readRune()
	case ';':
		tok = l.makeToken(tokenSemicolon, ";")
		l.readRune()
	case ':':
		tok = l.makeToken(tokenColon, ":")
		l.readRune()
	case '.':
		if unicode.IsDigit(l.peekRune()) {
			tok = l.makeToken(tokenIllegal, ".")
			l.readRune()
			break
		}
		tok = l.makeToken(tokenDot, ".")
		l.readRune()
	case '!':
		if l.peekRune() == '=' {
			if l.peekRuneN(1) == '=' {
				tok = l.makeToken(tokenStrictNotEQ, "!==")
				l.readRune()
				l.readRune()
				l.readRune()
				break
			}
			tok = l.makeToken(tokenNotEQ, "!=")
			l.readRune()
			l.readRune()
			break
		}
		tok = l.makeToken(tokenBang, "!")
		l.readRune()
	case '=':
		if l.peekRune() == '=' {
			if l.peekRuneN(1) == '=' {
				tok = l.makeToken(tokenStrictEQ, "===")
				l.readRune()
				l.readRune()
				l.readRune()
				break
			}
			tok = l.makeToken(tokenEQ, "==")
			l.readRune()
			l.readRune()
			break
		}
		tok = l.makeToken(tokenAssign, "=")
		l.readRune()
	case '>':
		tok = l.oneOrTwo(tokenGT, '=', tokenGTE)
	case '<':
		tok = l.oneOrTwo(tokenLT, '=', tokenLTE)
	case '&':
		tok = l.oneOrTwo(tokenIllegal, '&', tokenAnd)
	case '|':
		tok = l.oneOrTwo(tokenIllegal, '|', tokenOr)
	case '"', '\'':
		literal, err := l.readString(l.ch)
		if err != "" {
			tok.Type = tokenIllegal
			tok.Literal = err
		} else {
			tok.Type = tokenString
			tok.Literal = literal
		}
	case '#':
		if !isIdentifierStart(l.peekRune()) {
			tok = l.makeToken(tokenIllegal, "#")
			l.readRune()
			break
		}
		l.readRune()
		tok.Type = tokenPrivateName
		tok.Literal = "#" + l.readIdentifier()
		return tok
	default:
		switch {
		case isIdentifierStart(l.ch):
			literal := l.readIdentifier()
			tok.Type = lookupIdent(literal)
			tok.Literal = literal
			return tok
		case unicode.IsDigit(l.ch):
			literal, isFloat := l.readNumber()
			tok.Literal = literal
			if isFloat {
				tok.Type = tokenFloat
			} else {
				tok.Type = tokenInt
			}
			return tok
		default:
			tok = l.makeToken(tokenIllegal, string(l.ch))
			l.readRune()
		}
	}

	return tok
}

// oneOrTwo emits the two-rune token when the next rune matches, otherwise
// the single-rune token.
func (l *lexer) oneOrTwo(single TokenType, next rune, double TokenType) Token {
	if l.peekRune() == next {
		first := l.ch
		l.readRune()
		tok := l.makeToken(double, string(first)+string(l.ch))
		tok.Pos.Column--
		l.readRune()
		return tok
	}
	tok := l.makeToken(single, string(l.ch))
	l.readRune()
	return tok
}

func (l *lexer) currentOffset() int {
	return l.offset - l.width
}

func (l *lexer) makeToken(tt TokenType, literal string) Token {
	return Token{Type: tt, Literal: literal, Pos: Position{Line: l.line, Column: l.column}}
}

func (l *lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ', l.ch == '\t', l.ch == '\r', l.ch == '\n':
			l.readRune()
		case l.ch == '/' && l.peekRune() == '/':
			for l.ch != 0 && l.ch != '\n' {
				l.readRune()
			}
		case l.ch == '/' && l.peekRune() == '*':
			l.readRune()
			l.readRune()
			for l.ch != 0 && !(l.ch == '*' && l.peekRune() == '/') {
				l.readRune()
			}
			if l.ch != 0 {
				l.readRune()
				l.readRune()
			}
		default:
			return
		}
	}
}

func (l *lexer) readIdentifier() string {
	start := l.currentOffset()
	for isIdentifierRune(l.peekRune()) {
		l.readRune()
	}
	literal := l.input[start:l.offset]
	l.readRune()
	return literal
}

func (l *lexer) readNumber() (string, bool) {
	var sb strings.Builder
	hasDot := false

	sb.WriteRune(l.ch)

	for {
		r := l.peekRune()
		switch {
		case r == '_':
			// Underscores are visual separators between digits only.
			if unicode.IsDigit(l.ch) && unicode.IsDigit(l.peekRuneN(1)) {
				l.readRune()
				continue
			}
			goto done
		case r == '.' && !hasDot && unicode.IsDigit(l.peekRuneN(1)):
			hasDot = true
			l.readRune()
			sb.WriteRune('.')
		case unicode.IsDigit(r):
			l.readRune()
			sb.WriteRune(r)
		default:
			goto done
		}
	}

done:
	literal := sb.String()
	l.readRune()
	return literal, hasDot
}

func (l *lexer) readString(quote rune) (string, string) {
	var sb strings.Builder

	for {
		l.readRune()
		switch l.ch {
		case 0, '\n':
			return "", "unterminated string"
		case quote:
			l.readRune()
			return sb.String(), ""
		case '\\':
			next := l.peekRune()
			switch next {
			case 'n':
				l.readRune()
				sb.WriteByte('\n')
			case 't':
				l.readRune()
				sb.WriteByte('\t')
			case 0:
				return "", "unterminated string"
			default:
				l.readRune()
				sb.WriteRune(next)
			}
		default:
			sb.WriteRune(l.ch)
		}
	}
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$'
}

func isIdentifierRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$'
}

func lookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return tokenIdent
}
