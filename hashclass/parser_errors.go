package hashclass

import (
	"fmt"
	"strings"
)

// SyntaxError reports a static error found while compiling source: a
// malformed program, or a private name declared or used where the class
// rules forbid it.
type SyntaxError struct {
	Pos     Position
	Message string
	source  string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "SyntaxError at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	if frame := formatCodeFrame(e.source, e.Pos); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}
	return b.String()
}

func newSyntaxError(source string, pos Position, format string, args ...any) *SyntaxError {
	return &SyntaxError{Pos: pos, Message: fmt.Sprintf(format, args...), source: source}
}

func (p *parser) errorExpected(tok Token, expected string) {
	p.addParseError(tok.Pos, fmt.Sprintf("expected %s, got %s", expected, tokenLabel(tok.Type)))
}

func (p *parser) errorUnexpected(tok Token) {
	if tok.Type == tokenIllegal && tok.Literal == "unterminated string" {
		p.addParseError(tok.Pos, "unterminated string")
		return
	}
	p.addParseError(tok.Pos, fmt.Sprintf("unexpected token %s", tokenLabel(tok.Type)))
}

func (p *parser) addParseError(pos Position, msg string) {
	p.errors = append(p.errors, &SyntaxError{Pos: pos, Message: msg, source: p.l.input})
}

func tokenLabel(tt TokenType) string {
	switch tt {
	case tokenIllegal:
		return "invalid token"
	case tokenEOF:
		return "end of input"
	case tokenIdent:
		return "identifier"
	case tokenPrivateName:
		return "private name"
	case tokenInt:
		return "integer"
	case tokenFloat:
		return "float"
	case tokenString:
		return "string"
	default:
		if len(tt) <= 3 && strings.ToUpper(string(tt)) == strings.ToLower(string(tt)) {
			return fmt.Sprintf("%q", string(tt))
		}
		return fmt.Sprintf("'%s'", strings.ToLower(string(tt)))
	}
}
