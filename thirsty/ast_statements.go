package thirsty

type DrinkStmt struct {
	Name     string
	Value    Expression
	position Position
}

func (s *DrinkStmt) stmtNode()     {}
func (s *DrinkStmt) Pos() Position { return s.position }

type AssignStmt struct {
	Target   Expression
	Value    Expression
	position Position
}

func (s *AssignStmt) stmtNode()     {}
func (s *AssignStmt) Pos() Position { return s.position }

type PourStmt struct {
	Value    Expression
	position Position
}

func (s *PourStmt) stmtNode()     {}
func (s *PourStmt) Pos() Position { return s.position }

type SipStmt struct {
	Name     string
	position Position
}

func (s *SipStmt) stmtNode()     {}
func (s *SipStmt) Pos() Position { return s.position }

type ExprStmt struct {
	Expr     Expression
	position Position
}

func (s *ExprStmt) stmtNode()     {}
func (s *ExprStmt) Pos() Position { return s.position }

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

type FunctionStmt struct {
	Name     string
	Params   []string
	Body     []Statement
	Async    bool
	position Position
}

func (s *FunctionStmt) stmtNode()     {}
func (s *FunctionStmt) Pos() Position { return s.position }

type ReturnStmt struct {
	Value    Expression // nil for a bare return
	position Position
}

func (s *ReturnStmt) stmtNode()     {}
func (s *ReturnStmt) Pos() Position { return s.position }

type PropertyDecl struct {
	Name     string
	Default  Expression
	position Position
}

type ClassStmt struct {
	Name       string
	Properties []PropertyDecl
	Methods    []*FunctionStmt
	position   Position
}

func (s *ClassStmt) stmtNode()     {}
func (s *ClassStmt) Pos() Position { return s.position }

type TryStmt struct {
	Body     []Statement
	CatchVar string
	Catch    []Statement
	HasCatch bool
	Finally  []Statement
	position Position
}

func (s *TryStmt) stmtNode()     {}
func (s *TryStmt) Pos() Position { return s.position }

type ThrowStmt struct {
	Value    Expression
	position Position
}

func (s *ThrowStmt) stmtNode()     {}
func (s *ThrowStmt) Pos() Position { return s.position }

type GuardStmt struct {
	Body     []Statement
	position Position
}

func (s *GuardStmt) stmtNode()     {}
func (s *GuardStmt) Pos() Position { return s.position }

type ImportStmt struct {
	Module   string
	Alias    string
	position Position
}

func (s *ImportStmt) stmtNode()     {}
func (s *ImportStmt) Pos() Position { return s.position }

type ExportStmt struct {
	Name     string
	position Position
}

func (s *ExportStmt) stmtNode()     {}
func (s *ExportStmt) Pos() Position { return s.position }
