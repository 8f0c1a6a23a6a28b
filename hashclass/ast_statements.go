package hashclass

type LetStmt struct {
	Name     string
	Value    Expression
	Const    bool
	position Position
}

func (s *LetStmt) stmtNode()     {}
func (s *LetStmt) Pos() Position { return s.position }

type ExprStmt struct {
	Expr     Expression
	position Position
}

func (s *ExprStmt) stmtNode()     {}
func (s *ExprStmt) Pos() Position { return s.position }

// AssignStmt covers `=` and the compound forms; Operator is the arithmetic
// token for compound assignment and empty for plain assignment.
type AssignStmt struct {
	Target   Expression
	Operator TokenType
	Value    Expression
	position Position
}

func (s *AssignStmt) stmtNode()     {}
func (s *AssignStmt) Pos() Position { return s.position }

type ReturnStmt struct {
	Value    Expression
	position Position
}

func (s *ReturnStmt) stmtNode()     {}
func (s *ReturnStmt) Pos() Position { return s.position }

type IfStmt struct {
	Condition  Expression
	Consequent []Statement
	Alternate  []Statement
	position   Position
}

func (s *IfStmt) stmtNode()     {}
func (s *IfStmt) Pos() Position { return s.position }

type WhileStmt struct {
	Condition Expression
	Body      []Statement
	position  Position
}

func (s *WhileStmt) stmtNode()     {}
func (s *WhileStmt) Pos() Position { return s.position }

type BlockStmt struct {
	Body     []Statement
	position Position
}

func (s *BlockStmt) stmtNode()     {}
func (s *BlockStmt) Pos() Position { return s.position }

type FunctionStmt struct {
	Function *FunctionLiteral
	position Position
}

func (s *FunctionStmt) stmtNode()     {}
func (s *FunctionStmt) Pos() Position { return s.position }

type ClassStmt struct {
	Class    *ClassLiteral
	position Position
}

func (s *ClassStmt) stmtNode()     {}
func (s *ClassStmt) Pos() Position { return s.position }
