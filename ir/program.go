package ir

import "dwislpy/symt"

// DefIR is one translated definition: its own symbol table and code.
type DefIR struct {
	Name string
	SymT *symt.SymT
	Code Code
}

// Program is a whole translated program: the main block's symbol table and
// code, one DefIR per source definition, and the shared global symbol table
// that owns the label allocator and string-constant pool.
type Program struct {
	Global   *symt.SymT
	MainSymT *symt.SymT
	MainCode Code
	Defs     []DefIR
}
