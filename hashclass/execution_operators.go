package hashclass

import (
	"math"
	"strings"
)

func (exec *Execution) binaryOp(op TokenType, left, right Value, pos Position) (Value, error) {
	switch op {
	case tokenEQ, tokenStrictEQ:
		return NewBool(left.Equal(right)), nil
	case tokenNotEQ, tokenStrictNotEQ:
		return NewBool(!left.Equal(right)), nil
	case tokenPlus:
		if left.kind == KindString || right.kind == KindString {
			return NewString(left.String() + right.String()), nil
		}
		return exec.arithmetic(op, left, right, pos)
	case tokenMinus, tokenAsterisk, tokenSlash, tokenPercent:
		return exec.arithmetic(op, left, right, pos)
	case tokenLT, tokenLTE, tokenGT, tokenGTE:
		return exec.compare(op, left, right, pos)
	default:
		return NewUndefined(), exec.internalError(pos, "unsupported operator %s", op)
	}
}

func (exec *Execution) arithmetic(op TokenType, left, right Value, pos Position) (Value, error) {
	if !left.isNumber() || !right.isNumber() {
		return NewUndefined(), exec.typeError(pos, "unsupported operand types for %s: %s and %s", op, left.TypeOf(), right.TypeOf())
	}

	if left.kind == KindInt && right.kind == KindInt {
		a, b := left.Int(), right.Int()
		switch op {
		case tokenPlus:
			return NewInt(a + b), nil
		case tokenMinus:
			return NewInt(a - b), nil
		case tokenAsterisk:
			return NewInt(a * b), nil
		case tokenSlash:
			if b != 0 && a%b == 0 {
				return NewInt(a / b), nil
			}
		case tokenPercent:
			if b != 0 {
				return NewInt(a % b), nil
			}
		}
	}

	a, b := left.Float(), right.Float()
	switch op {
	case tokenPlus:
		return NewFloat(a + b), nil
	case tokenMinus:
		return NewFloat(a - b), nil
	case tokenAsterisk:
		return NewFloat(a * b), nil
	case tokenSlash:
		return NewFloat(a / b), nil
	default:
		return NewFloat(math.Mod(a, b)), nil
	}
}

func (exec *Execution) compare(op TokenType, left, right Value, pos Position) (Value, error) {
	var cmp int
	switch {
	case left.isNumber() && right.isNumber():
		a, b := left.Float(), right.Float()
		if math.IsNaN(a) || math.IsNaN(b) {
			return NewBool(false), nil
		}
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		}
	case left.kind == KindString && right.kind == KindString:
		cmp = strings.Compare(left.Str(), right.Str())
	default:
		return NewUndefined(), exec.typeError(pos, "cannot compare %s with %s", left.TypeOf(), right.TypeOf())
	}

	switch op {
	case tokenLT:
		return NewBool(cmp < 0), nil
	case tokenLTE:
		return NewBool(cmp <= 0), nil
	case tokenGT:
		return NewBool(cmp > 0), nil
	default:
		return NewBool(cmp >= 0), nil
	}
}
