package hashclass

type Node interface {
	Pos() Position
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

type Program struct {
	Statements []Statement
}

func (p *Program) Pos() Position {
	if len(p.Statements) == 0 {
		return Position{}
	}
	return p.Statements[0].Pos()
}

type Identifier struct {
	Name     string
	position Position
}

func (e *Identifier) exprNode()     {}
func (e *Identifier) Pos() Position { return e.position }

type IntegerLiteral struct {
	Value    int64
	position Position
}

func (e *IntegerLiteral) exprNode()     {}
func (e *IntegerLiteral) Pos() Position { return e.position }

type FloatLiteral struct {
	Value    float64
	position Position
}

func (e *FloatLiteral) exprNode()     {}
func (e *FloatLiteral) Pos() Position { return e.position }

type StringLiteral struct {
	Value    string
	position Position
}

func (e *StringLiteral) exprNode()     {}
func (e *StringLiteral) Pos() Position { return e.position }

type BoolLiteral struct {
	Value    bool
	position Position
}

func (e *BoolLiteral) exprNode()     {}
func (e *BoolLiteral) Pos() Position { return e.position }

type NullLiteral struct {
	position Position
}

func (e *NullLiteral) exprNode()     {}
func (e *NullLiteral) Pos() Position { return e.position }

type UndefinedLiteral struct {
	position Position
}

func (e *UndefinedLiteral) exprNode()     {}
func (e *UndefinedLiteral) Pos() Position { return e.position }

type ThisExpr struct {
	position Position
}

func (e *ThisExpr) exprNode()     {}
func (e *ThisExpr) Pos() Position { return e.position }

type ArrayLiteral struct {
	Elements []Expression
	position Position
}

func (e *ArrayLiteral) exprNode()     {}
func (e *ArrayLiteral) Pos() Position { return e.position }

type ObjectProperty struct {
	Key   string
	Value Expression
}

type ObjectLiteral struct {
	Properties []ObjectProperty
	position   Position
}

func (e *ObjectLiteral) exprNode()     {}
func (e *ObjectLiteral) Pos() Position { return e.position }

type FunctionLiteral struct {
	Name     string
	Params   []string
	Body     []Statement
	position Position
}

func (e *FunctionLiteral) exprNode()     {}
func (e *FunctionLiteral) Pos() Position { return e.position }

type PrefixExpr struct {
	Operator TokenType
	Right    Expression
	position Position
}

func (e *PrefixExpr) exprNode()     {}
func (e *PrefixExpr) Pos() Position { return e.position }

type InfixExpr struct {
	Left     Expression
	Operator TokenType
	Right    Expression
	position Position
}

func (e *InfixExpr) exprNode()     {}
func (e *InfixExpr) Pos() Position { return e.position }

type MemberExpr struct {
	Object   Expression
	Property string
	position Position
}

func (e *MemberExpr) exprNode()     {}
func (e *MemberExpr) Pos() Position { return e.position }

// PrivateMemberExpr is `obj.#name`. Name keeps its leading '#'.
type PrivateMemberExpr struct {
	Object   Expression
	Name     string
	position Position
}

func (e *PrivateMemberExpr) exprNode()     {}
func (e *PrivateMemberExpr) Pos() Position { return e.position }

// PrivateInExpr is `#name in obj`.
type PrivateInExpr struct {
	Name     string
	Object   Expression
	position Position
}

func (e *PrivateInExpr) exprNode()     {}
func (e *PrivateInExpr) Pos() Position { return e.position }

type IndexExpr struct {
	Object   Expression
	Index    Expression
	position Position
}

func (e *IndexExpr) exprNode()     {}
func (e *IndexExpr) Pos() Position { return e.position }

type CallExpr struct {
	Callee   Expression
	Args     []Expression
	position Position
}

func (e *CallExpr) exprNode()     {}
func (e *CallExpr) Pos() Position { return e.position }

type NewExpr struct {
	Callee   Expression
	Args     []Expression
	position Position
}

func (e *NewExpr) exprNode()     {}
func (e *NewExpr) Pos() Position { return e.position }

type SuperCallExpr struct {
	Args     []Expression
	position Position
}

func (e *SuperCallExpr) exprNode()     {}
func (e *SuperCallExpr) Pos() Position { return e.position }

type SuperMemberExpr struct {
	Property string
	position Position
}

func (e *SuperMemberExpr) exprNode()     {}
func (e *SuperMemberExpr) Pos() Position { return e.position }
