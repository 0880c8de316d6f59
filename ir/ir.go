// Package ir is DwiSlpy's intermediate representation: a flat list of
// pseudo-instructions over named operands (formals, locals, and temps
// resolved through a symt.SymT), grounded on spec section 4.3.
package ir

// Op identifies a pseudo-instruction's opcode.
type Op int

const (
	SET Op = iota
	STL
	MOV
	ADD
	SUB
	MLT
	DIV
	MOD
	NOP
	LBL
	JMP
	BCN
	BCZ
	ENTER
	LEAVE
	ARG
	CLL
	RTV
	RTN
	GTI
	PTI
	PTS
	CMT
)

// CmprCode is the comparison code carried by a BCN instruction.
type CmprCode int

const (
	CmpLt CmprCode = iota
	CmpEq
	CmpLe
)

func (c CmprCode) String() string {
	return [...]string{"lt", "eq", "le"}[c]
}

// ZeroCode is the comparison code carried by a BCZ instruction.
type ZeroCode int

const (
	ZLtz ZeroCode = iota
	ZEqz
	ZLez
	ZGtz
)

func (c ZeroCode) String() string {
	return [...]string{"ltz", "eqz", "lez", "gtz"}[c]
}

// Instr is one pseudo-instruction. Not every field is meaningful for every
// Op; each constructor below only sets the ones its opcode uses.
type Instr struct {
	Op Op

	Dest string // SET, STL, MOV, ADD, SUB, MLT, DIV, MOD, RTV, GTI
	Src1 string // MOV's source; ADD/SUB/MLT/DIV/MOD's first operand; BCN/BCZ; RTN; PTI; PTS
	Src2 string // ADD/SUB/MLT/DIV/MOD's second operand; BCN's second operand

	Imm   int64  // SET
	Label string // STL, LBL, JMP, CLL

	Cmpr  CmprCode // BCN
	Zero  ZeroCode // BCZ
	Then  string   // BCN, BCZ
	Else  string   // BCN, BCZ

	ArgIndex int    // ARG
	ArgSrc   string // ARG

	Comment string // CMT
}

func Set(dest string, k int64) Instr  { return Instr{Op: SET, Dest: dest, Imm: k} }
func Stl(dest, label string) Instr    { return Instr{Op: STL, Dest: dest, Label: label} }
func Mov(dest, src string) Instr      { return Instr{Op: MOV, Dest: dest, Src1: src} }
func Add(dest, s1, s2 string) Instr   { return Instr{Op: ADD, Dest: dest, Src1: s1, Src2: s2} }
func Sub(dest, s1, s2 string) Instr   { return Instr{Op: SUB, Dest: dest, Src1: s1, Src2: s2} }
func Mlt(dest, s1, s2 string) Instr   { return Instr{Op: MLT, Dest: dest, Src1: s1, Src2: s2} }
func Div(dest, s1, s2 string) Instr   { return Instr{Op: DIV, Dest: dest, Src1: s1, Src2: s2} }
func Mod(dest, s1, s2 string) Instr   { return Instr{Op: MOD, Dest: dest, Src1: s1, Src2: s2} }
func Nop() Instr                      { return Instr{Op: NOP} }
func Lbl(label string) Instr          { return Instr{Op: LBL, Label: label} }
func Jmp(label string) Instr          { return Instr{Op: JMP, Label: label} }
func Enter() Instr                    { return Instr{Op: ENTER} }
func Leave() Instr                    { return Instr{Op: LEAVE} }
func Arg(i int, src string) Instr     { return Instr{Op: ARG, ArgIndex: i, ArgSrc: src} }
func Cll(label string) Instr          { return Instr{Op: CLL, Label: label} }
func Rtv(dest string) Instr           { return Instr{Op: RTV, Dest: dest} }
func Rtn(src string) Instr            { return Instr{Op: RTN, Src1: src} }
func Gti(dest string) Instr           { return Instr{Op: GTI, Dest: dest} }
func Pti(src string) Instr            { return Instr{Op: PTI, Src1: src} }
func Pts(src string) Instr            { return Instr{Op: PTS, Src1: src} }
func Cmt(msg string) Instr            { return Instr{Op: CMT, Comment: msg} }

func Bcn(cmp CmprCode, s1, s2, then, els string) Instr {
	return Instr{Op: BCN, Cmpr: cmp, Src1: s1, Src2: s2, Then: then, Else: els}
}

func Bcz(zero ZeroCode, s string, then, els string) Instr {
	return Instr{Op: BCZ, Zero: zero, Src1: s, Then: then, Else: els}
}

// Code is a straight-line sequence of instructions for one definition.
type Code []Instr

// Append is a small convenience used throughout the translator so call
// sites read `code = code.Append(...)` instead of repeated `append`.
func (c Code) Append(instrs ...Instr) Code {
	return append(c, instrs...)
}
