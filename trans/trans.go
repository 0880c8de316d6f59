// Package trans lowers a checked AST into DwiSlpy's IR, grounded on spec
// section 4.4. Expressions lower in one of two modes: value mode, which
// places a computed value into a named destination, and condition mode,
// which transfers control to one of two labels depending on truth value.
package trans

import (
	"dwislpy/ast"
	"dwislpy/common"
	"dwislpy/ir"
	"dwislpy/symt"
)

// Translate lowers a whole checked program into IR: one label+ENTER/LEAVE
// block per definition plus one for main.
func Translate(prog *ast.Program, global *symt.SymT, mainSymT *symt.SymT, defSymTs map[*ast.Def]*symt.SymT) *ir.Program {
	p := &ir.Program{Global: global, MainSymT: mainSymT}

	p.MainCode = translateBody("main", prog.Main, mainSymT, prog.Defs, "main_done")

	for _, def := range prog.Defs {
		st := defSymTs[def]
		code := translateBody(def.Name, def.Body, st, prog.Defs, def.Name+"_done")
		p.Defs = append(p.Defs, ir.DefIR{Name: def.Name, SymT: st, Code: code})
	}

	return p
}

func translateBody(label string, body ast.Block, st *symt.SymT, defs ast.Defs, exitLabel string) ir.Code {
	var code ir.Code
	code = code.Append(ir.Lbl(label), ir.Cmt("enter "+label), ir.Enter())
	tr := &translator{st: st, defs: defs, exitLabel: exitLabel}
	code = tr.transBlock(body, code)
	code = code.Append(ir.Lbl(exitLabel), ir.Cmt("leave "+label), ir.Leave())
	return code
}

// translator carries the state needed while lowering one definition's (or
// main's) body: its symbol table, the definitions it may call, and the
// label a `return` should jump to.
type translator struct {
	st        *symt.SymT
	defs      ast.Defs
	exitLabel string
}

func (tr *translator) transBlock(b ast.Block, code ir.Code) ir.Code {
	for _, s := range b {
		code = tr.transStmt(s, code)
	}
	return code
}

func (tr *translator) transStmt(s ast.Stmt, code ir.Code) ir.Code {
	switch n := s.(type) {
	case *ast.IntroStmt:
		if !tr.st.HasInfo(n.Name) {
			tr.st.AddLocal(n.Name, n.Type)
		}
		return tr.trans(n.Expn, n.Name, code)

	case *ast.AssignStmt:
		return tr.trans(n.Expn, n.Name, code)

	case *ast.CompoundStmt:
		t1 := tr.st.AddFreshTemp(common.IntTy)
		t2 := tr.st.AddFreshTemp(common.IntTy)
		code = code.Append(ir.Mov(t1, n.Name))
		code = tr.trans(n.Expn, t2, code)
		switch n.Op {
		case ast.PlusEq:
			code = code.Append(ir.Add(n.Name, t1, t2))
		case ast.MinusEq:
			code = code.Append(ir.Sub(n.Name, t1, t2))
		case ast.StarEq:
			code = code.Append(ir.Mlt(n.Name, t1, t2))
		}
		return code

	case *ast.PrintStmt:
		return tr.transPrint(n, code)

	case *ast.PassStmt:
		return code.Append(ir.Nop())

	case *ast.WhileStmt:
		lloop := tr.st.AddFreshLabel()
		lbody := tr.st.AddFreshLabel()
		ldone := tr.st.AddFreshLabel()
		code = code.Append(ir.Lbl(lloop))
		code = tr.transCndn(n.Cond, lbody, ldone, code)
		code = code.Append(ir.Lbl(lbody))
		code = tr.transBlock(n.Body, code)
		code = code.Append(ir.Jmp(lloop), ir.Lbl(ldone))
		return code

	case *ast.IfStmt:
		lif := tr.st.AddFreshLabel()
		lelse := tr.st.AddFreshLabel()
		ldone := tr.st.AddFreshLabel()
		code = tr.transCndn(n.Cond, lif, lelse, code)
		code = code.Append(ir.Lbl(lif))
		code = tr.transBlock(n.Then, code)
		code = code.Append(ir.Jmp(ldone), ir.Lbl(lelse))
		code = tr.transBlock(n.Else, code)
		code = code.Append(ir.Lbl(ldone))
		return code

	case *ast.ReturnStmt:
		if n.Expn == nil {
			t := tr.st.AddFreshTemp(common.NoneTy)
			code = code.Append(ir.Set(t, 0), ir.Rtn(t))
			return code.Append(ir.Jmp(tr.exitLabel))
		}
		t := tr.st.AddFreshTemp(n.Expn.Type())
		code = tr.trans(n.Expn, t, code)
		code = code.Append(ir.Rtn(t))
		return code.Append(ir.Jmp(tr.exitLabel))

	case *ast.CallStmt:
		_, code = tr.transCall(n.Name, n.Args, code)
		return code
	}
	panic("trans: unhandled statement node")
}

// transPrint lowers `print(e1, ..., ek)`: each argument is printed by kind,
// followed by the interned newline label.
func (tr *translator) transPrint(n *ast.PrintStmt, code ir.Code) ir.Code {
	nl := tr.st.AddString("\n")
	for _, a := range n.Args {
		switch a.Type() {
		case common.IntTy:
			t := tr.st.AddFreshTemp(common.IntTy)
			code = tr.trans(a, t, code)
			code = code.Append(ir.Pti(t))
		case common.StrTy:
			t := tr.st.AddFreshTemp(common.StrTy)
			code = tr.trans(a, t, code)
			code = code.Append(ir.Pts(t))
		case common.BoolTy:
			lt := tr.st.AddFreshLabel()
			lf := tr.st.AddFreshLabel()
			ld := tr.st.AddFreshLabel()
			code = tr.transCndn(a, lt, lf, code)
			trueLbl := tr.st.AddString("True")
			falseLbl := tr.st.AddString("False")
			t := tr.st.AddFreshTemp(common.StrTy)
			code = code.Append(ir.Lbl(lt), ir.Stl(t, trueLbl), ir.Jmp(ld))
			code = code.Append(ir.Lbl(lf), ir.Stl(t, falseLbl), ir.Lbl(ld))
			code = code.Append(ir.Pts(t))
		default: // NoneTy
			noneLbl := tr.st.AddString("None")
			t := tr.st.AddFreshTemp(common.StrTy)
			code = code.Append(ir.Stl(t, noneLbl), ir.Pts(t))
		}
		tnl := tr.st.AddFreshTemp(common.StrTy)
		code = code.Append(ir.Stl(tnl, nl), ir.Pts(tnl))
	}
	return code
}

// transCall lowers a function/procedure call: arguments evaluate into
// fresh temps left to right, then ARG i and CLL are emitted, then RTV into a
// fresh temp, which a procedure call simply ignores.
func (tr *translator) transCall(name string, args []ast.Expn, code ir.Code) (string, ir.Code) {
	argTemps := make([]string, len(args))
	for i, a := range args {
		t := tr.st.AddFreshTemp(a.Type())
		code = tr.trans(a, t, code)
		argTemps[i] = t
	}
	for i, t := range argTemps {
		code = code.Append(ir.Arg(i, t))
	}
	code = code.Append(ir.Cll(name))

	def, ok := tr.defs.Lookup(name)
	retTy := common.NoneTy
	if ok {
		retTy = def.RetType
	}
	dest := tr.st.AddFreshTemp(retTy)
	code = code.Append(ir.Rtv(dest))
	return dest, code
}

// trans lowers e in value mode, placing its result into dest.
func (tr *translator) trans(e ast.Expn, dest string, code ir.Code) ir.Code {
	if e.Type() == common.BoolTy {
		lt := tr.st.AddFreshLabel()
		lf := tr.st.AddFreshLabel()
		ld := tr.st.AddFreshLabel()
		code = tr.transCndn(e, lt, lf, code)
		code = code.Append(ir.Lbl(lt), ir.Set(dest, 1), ir.Jmp(ld))
		code = code.Append(ir.Lbl(lf), ir.Set(dest, 0), ir.Lbl(ld))
		return code
	}

	switch n := e.(type) {
	case *ast.LitExpn:
		switch n.Value.Kind {
		case common.StrTy:
			label := tr.st.AddString(n.Value.S)
			return code.Append(ir.Stl(dest, label))
		case common.IntTy:
			return code.Append(ir.Set(dest, n.Value.I))
		default: // NoneTy; bool literals handled above via condition mode
			return code.Append(ir.Set(dest, 0))
		}

	case *ast.VarExpn:
		return code.Append(ir.Mov(dest, n.Name))

	case *ast.NegExpn:
		tzero := tr.st.AddFreshTemp(common.IntTy)
		t := tr.st.AddFreshTemp(common.IntTy)
		code = code.Append(ir.Set(tzero, 0))
		code = tr.trans(n.Operand, t, code)
		return code.Append(ir.Sub(dest, tzero, t))

	case *ast.ArithExpn:
		t1 := tr.st.AddFreshTemp(common.IntTy)
		t2 := tr.st.AddFreshTemp(common.IntTy)
		code = tr.trans(n.Left, t1, code)
		code = tr.trans(n.Right, t2, code)
		switch n.Op {
		case ast.Add:
			return code.Append(ir.Add(dest, t1, t2))
		case ast.Sub:
			return code.Append(ir.Sub(dest, t1, t2))
		case ast.Mul:
			return code.Append(ir.Mlt(dest, t1, t2))
		case ast.FDiv:
			return code.Append(ir.Div(dest, t1, t2))
		case ast.Mod:
			return code.Append(ir.Mod(dest, t1, t2))
		}
		panic("trans: unhandled arithmetic operator")

	case *ast.InputExpn:
		t := tr.st.AddFreshTemp(common.StrTy)
		code = tr.trans(n.Prompt, t, code)
		code = code.Append(ir.Pts(t))
		return code.Append(ir.Gti(dest))

	case *ast.IntConvExpn:
		return tr.trans(n.Operand, dest, code)

	case *ast.StrConvExpn:
		return tr.trans(n.Operand, dest, code)

	case *ast.CallExpn:
		result, code2 := tr.transCall(n.Name, n.Args, code)
		return code2.Append(ir.Mov(dest, result))
	}
	panic("trans: unhandled expression node in value mode")
}

// transCndn lowers e in condition mode: control transfers to then if e is
// true, else to els. A value with no case of its own below is tested with
// BCZ gtz, so it counts as true only when it is greater than zero.
func (tr *translator) transCndn(e ast.Expn, then, els string, code ir.Code) ir.Code {
	switch n := e.(type) {
	case *ast.LitExpn:
		if n.Value.Kind == common.BoolTy {
			if n.Value.B {
				return code.Append(ir.Jmp(then))
			}
			return code.Append(ir.Jmp(els))
		}

	case *ast.VarExpn:
		return code.Append(ir.Bcz(ir.ZGtz, n.Name, then, els))

	case *ast.NotExpn:
		return tr.transCndn(n.Operand, els, then, code)

	case *ast.CmprExpn:
		t1 := tr.st.AddFreshTemp(common.IntTy)
		t2 := tr.st.AddFreshTemp(common.IntTy)
		code = tr.trans(n.Left, t1, code)
		code = tr.trans(n.Right, t2, code)
		var cmp ir.CmprCode
		switch n.Op {
		case ast.Lt:
			cmp = ir.CmpLt
		case ast.Le:
			cmp = ir.CmpLe
		case ast.EqOp:
			cmp = ir.CmpEq
		}
		return code.Append(ir.Bcn(cmp, t1, t2, then, els))

	case *ast.LogExpn:
		lmid := tr.st.AddFreshLabel()
		if n.Op == ast.And {
			code = tr.transCndn(n.Left, lmid, els, code)
			code = code.Append(ir.Lbl(lmid))
			return tr.transCndn(n.Right, then, els, code)
		}
		code = tr.transCndn(n.Left, then, lmid, code)
		code = code.Append(ir.Lbl(lmid))
		return tr.transCndn(n.Right, then, els, code)

	case *ast.CallExpn:
		// A called function may itself be bool-typed; go through transCall
		// directly rather than trans(), which would recurse back here for a
		// bool-typed destination.
		result, code2 := tr.transCall(n.Name, n.Args, code)
		return code2.Append(ir.Bcz(ir.ZGtz, result, then, els))
	}

	// Default: lower in value mode, then branch on truthiness.
	t := tr.st.AddFreshTemp(e.Type())
	code = tr.trans(e, t, code)
	return code.Append(ir.Bcz(ir.ZGtz, t, then, els))
}
