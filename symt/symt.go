// Package symt implements DwiSlpy's symbol table: a per-definition arena
// mapping names to their type, kind, and (once frame layout runs) stack
// offset, plus a distinguished global table that owns the program's string
// pool and label allocator.
package symt

import (
	"fmt"

	"dwislpy/common"
)

// Kind distinguishes why a name lives in a SymT.
type Kind int

const (
	Formal Kind = iota
	Local
	Temp
)

// Info is everything the translator and MIPS emitter need to know about one
// name: its declared type, what kind of slot it occupies, and (after frame
// layout) its offset from the frame pointer.
type Info struct {
	Name        string
	ID          int
	Type        common.Type
	Kind        Kind
	FrameOffset int
	offsetIsSet bool
}

// SymT is the symbol table for a single definition (or the main block). Its
// entries are append-only during translation -- add_formal/add_local/add_temp
// calls accumulate locals, and frame layout later walks `locals` in
// introduction order to assign offsets.
//
// Labels and interned strings always resolve to the root SymT (see Global),
// which is why every non-root SymT keeps a back-reference to it.
type SymT struct {
	root *SymT // nil iff this SymT IS the root/global table

	entries map[string]*Info
	formals []string
	locals  []string

	frameSize int
	nextID    int
	nextTemp  int

	// Root-only state.
	labelCounter int
	strings      map[string]string // label -> literal text
	stringLabels map[string]string // literal text -> label (dedups constants)
	stringOrder  []StringConst      // labels in allocation order, for deterministic emission
}

// StringConst is one entry of the interned string-constant pool, in the
// order it was first interned.
type StringConst struct {
	Label   string
	Literal string
}

// NewGlobal creates the root symbol table: the one that owns the label
// allocator and the string constant pool for an entire emitted program.
func NewGlobal() *SymT {
	return &SymT{
		entries:      make(map[string]*Info),
		strings:      make(map[string]string),
		stringLabels: make(map[string]string),
	}
}

// NewScope creates a fresh, empty SymT for one definition (or main),
// resolving labels and strings through global.
func NewScope(global *SymT) *SymT {
	return &SymT{
		root:    global,
		entries: make(map[string]*Info),
	}
}

// Global returns the root table that this scope resolves labels/strings
// through -- itself, if this SymT IS the root.
func (t *SymT) Global() *SymT {
	if t.root == nil {
		return t
	}
	return t.root
}

func (t *SymT) define(name string, typ common.Type, kind Kind) *Info {
	g := t.Global()
	g.nextID++
	info := &Info{Name: name, ID: g.nextID, Type: typ, Kind: kind}
	t.entries[name] = info
	return info
}

// AddFormal records a new formal parameter, in declaration order.
func (t *SymT) AddFormal(name string, typ common.Type) *Info {
	info := t.define(name, typ, Formal)
	t.formals = append(t.formals, name)
	return info
}

// AddLocal records a new source-introduced local, in introduction order.
func (t *SymT) AddLocal(name string, typ common.Type) *Info {
	info := t.define(name, typ, Local)
	t.locals = append(t.locals, name)
	return info
}

// AddTemp records a new compiler-introduced temporary under an explicit
// name. Used for the two reserved saved-register slots added during frame
// layout.
func (t *SymT) AddTemp(name string, typ common.Type) *Info {
	info := t.define(name, typ, Temp)
	t.locals = append(t.locals, name)
	return info
}

// AddFreshTemp allocates a new temporary with a synthesized name (temp_<n>)
// and records it as a local.
func (t *SymT) AddFreshTemp(typ common.Type) string {
	name := fmt.Sprintf("temp_%d", t.nextTemp)
	t.nextTemp++
	t.AddTemp(name, typ)
	return name
}

// HasInfo reports whether name is defined in this scope.
func (t *SymT) HasInfo(name string) bool {
	_, ok := t.entries[name]
	return ok
}

// GetInfo looks up a name's recorded type/kind/offset.
func (t *SymT) GetInfo(name string) (*Info, bool) {
	info, ok := t.entries[name]
	return info, ok
}

// GetFormal returns the i-th formal in declaration order.
func (t *SymT) GetFormal(i int) *Info {
	return t.entries[t.formals[i]]
}

// GetLocal returns the i-th local in introduction order.
func (t *SymT) GetLocal(i int) *Info {
	return t.entries[t.locals[i]]
}

func (t *SymT) NumFormals() int { return len(t.formals) }
func (t *SymT) NumLocals() int  { return len(t.locals) }

// SetFrameOffset records the frame-pointer-relative byte offset of a name.
// Called once per name during MIPS frame layout.
func (t *SymT) SetFrameOffset(name string, offset int) {
	info := t.entries[name]
	info.FrameOffset = offset
	info.offsetIsSet = true
}

// FrameOffset returns a name's assigned frame offset. Panics if frame layout
// has not run yet -- this is a compiler-internal invariant, not a user-facing
// error.
func (t *SymT) FrameOffset(name string) int {
	info, ok := t.entries[name]
	if !ok || !info.offsetIsSet {
		panic(fmt.Sprintf("symt: frame offset requested for %q before layout", name))
	}
	return info.FrameOffset
}

// SetFrameSize records a definition's final (8-byte-aligned) stack frame
// size.
func (t *SymT) SetFrameSize(size int) { t.frameSize = size }

// FrameSize returns the frame size set by SetFrameSize.
func (t *SymT) FrameSize() int { return t.frameSize }

// -----------------------------------------------------------------------------
// Labels and strings: always routed to the root/global table.

// AddFreshLabel allocates a new globally unique label (L_<n>).
func (t *SymT) AddFreshLabel() string {
	g := t.Global()
	label := fmt.Sprintf("L_%d", g.labelCounter)
	g.labelCounter++
	return label
}

// AddString interns a string literal, returning the label it is (or will be)
// emitted under in the .data section. Equal literals share a label.
func (t *SymT) AddString(literal string) string {
	g := t.Global()
	if label, ok := g.stringLabels[literal]; ok {
		return label
	}
	label := g.AddFreshLabel()
	g.strings[label] = literal
	g.stringLabels[literal] = label
	g.stringOrder = append(g.stringOrder, StringConst{Label: label, Literal: literal})
	return label
}

// Strings returns the root's interned string constants in the order they
// were first interned, so re-compiling the same source emits an identical
// .data section every time.
func (t *SymT) Strings() []StringConst {
	return t.Global().stringOrder
}
