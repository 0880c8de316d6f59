package ast

import "dwislpy/common"

// IntroStmt is `name : Type = expr`, introducing a new local.
type IntroStmt struct {
	stmtBase
	Name string
	Type common.Type
	Expn Expn
}

func NewIntroStmt(l common.Locn, name string, typ common.Type, e Expn) *IntroStmt {
	return &IntroStmt{stmtBase{l}, name, typ, e}
}

// AssignStmt is `name = expr`.
type AssignStmt struct {
	stmtBase
	Name string
	Expn Expn
}

func NewAssignStmt(l common.Locn, name string, e Expn) *AssignStmt {
	return &AssignStmt{stmtBase{l}, name, e}
}

// CompoundOp enumerates the compound assignment operators.
type CompoundOp int

const (
	PlusEq CompoundOp = iota
	MinusEq
	StarEq
)

// CompoundStmt is `name += expr`, `name -= expr`, or `name *= expr`.
type CompoundStmt struct {
	stmtBase
	Name string
	Op   CompoundOp
	Expn Expn
}

func NewCompoundStmt(l common.Locn, name string, op CompoundOp, e Expn) *CompoundStmt {
	return &CompoundStmt{stmtBase{l}, name, op, e}
}

// PrintStmt is `print(e1, ..., ek)`.
type PrintStmt struct {
	stmtBase
	Args []Expn
}

func NewPrintStmt(l common.Locn, args []Expn) *PrintStmt {
	return &PrintStmt{stmtBase{l}, args}
}

// PassStmt is `pass`.
type PassStmt struct {
	stmtBase
}

func NewPassStmt(l common.Locn) *PassStmt {
	return &PassStmt{stmtBase{l}}
}

// WhileStmt is `while expr: Block`.
type WhileStmt struct {
	stmtBase
	Cond Expn
	Body Block
}

func NewWhileStmt(l common.Locn, cond Expn, body Block) *WhileStmt {
	return &WhileStmt{stmtBase{l}, cond, body}
}

// IfStmt is `if expr: Block else: Block`.
type IfStmt struct {
	stmtBase
	Cond Expn
	Then Block
	Else Block
}

func NewIfStmt(l common.Locn, cond Expn, then, els Block) *IfStmt {
	return &IfStmt{stmtBase{l}, cond, then, els}
}

// CallStmt is a procedure call used in statement position; its callee must
// be declared with a None return type (checker rule).
type CallStmt struct {
	stmtBase
	Name string
	Args []Expn
}

func NewCallStmt(l common.Locn, name string, args []Expn) *CallStmt {
	return &CallStmt{stmtBase{l}, name, args}
}

// ReturnStmt is `return` or `return expr`. Expn is nil for the bare form.
type ReturnStmt struct {
	stmtBase
	Expn Expn
}

func NewReturnStmt(l common.Locn, e Expn) *ReturnStmt {
	return &ReturnStmt{stmtBase{l}, e}
}
