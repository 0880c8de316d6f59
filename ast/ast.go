// Package ast defines DwiSlpy's abstract syntax tree. Nodes are immutable
// once parsed, with one exception: every expression node carries a mutable
// Type field that the checker fills in (see Expn) -- the translator later
// reads it to decide, for instance, whether a variable lookup should be
// lowered with BCZ or with a materialized comparison.
//
// Rather than the deep class hierarchies a direct port of a more dynamic
// language would use, each AST category (Expn, Stmt) is a small interface
// implemented by a closed set of concrete node types, matched over with a
// type switch at each walker (checker, interpreter, translator). This keeps
// the set of variants enumerable at every call site.
package ast

import "dwislpy/common"

// Expn is any DwiSlpy expression node.
type Expn interface {
	Locn() common.Locn
	// Type returns the type the checker assigned this expression. Calling it
	// before the checker has run returns the zero Type (IntTy) and is a
	// programming error in any phase that runs after checking.
	Type() common.Type
	// SetType is called exactly once, by the checker, to record this
	// expression's type.
	SetType(common.Type)
	exprNode()
}

// Stmt is any DwiSlpy statement node.
type Stmt interface {
	Locn() common.Locn
	stmtNode()
}

// Block is a sequence of statements sharing an indentation level.
type Block []Stmt

// exprBase is embedded by every Expn implementation to provide its location
// and mutable type slot.
type exprBase struct {
	L   common.Locn
	typ common.Type
}

func (e *exprBase) Locn() common.Locn    { return e.L }
func (e *exprBase) Type() common.Type    { return e.typ }
func (e *exprBase) SetType(t common.Type) { e.typ = t }
func (e *exprBase) exprNode()            {}

// stmtBase is embedded by every Stmt implementation to provide its location.
type stmtBase struct {
	L common.Locn
}

func (s *stmtBase) Locn() common.Locn { return s.L }
func (s *stmtBase) stmtNode()         {}

// Formal is one typed parameter of a definition.
type Formal struct {
	Name string
	Type common.Type
}

// Def is a procedure or function definition.
type Def struct {
	L       common.Locn
	Name    string
	Formals []Formal
	RetType common.Type
	Body    Block
}

func (d *Def) Locn() common.Locn { return d.L }

// Defs is the ordered collection of definitions visible to a program. Lookup
// resolves the first declaration matching name (used by the checker); the
// interpreter instead searches Defs directly from last to first so that a
// later redefinition wins at run time even though the checker never enforces
// uniqueness (spec open question 4).
type Defs []*Def

// Lookup returns the first definition named name.
func (ds Defs) Lookup(name string) (*Def, bool) {
	for _, d := range ds {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// LookupLast returns the most recently declared definition named name --
// the one the interpreter uses to resolve a call.
func (ds Defs) LookupLast(name string) (*Def, bool) {
	for i := len(ds) - 1; i >= 0; i-- {
		if ds[i].Name == name {
			return ds[i], true
		}
	}
	return nil, false
}

// Program is a whole parsed DwiSlpy source file: its definitions and its
// top-level (`main`) block.
type Program struct {
	Defs Defs
	Main Block
}
