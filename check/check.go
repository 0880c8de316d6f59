package check

import (
	"dwislpy/ast"
	"dwislpy/common"
	"dwislpy/diag"
	"dwislpy/symt"
)

// CheckProgram types every definition body and the main block, reporting
// every error found through ctx rather than stopping at the first one. It
// builds one symt.SymT per definition (and one for main), all resolving
// labels and strings through global -- the same tables the translator later
// extends with temporaries and reuses for frame layout. It returns false if
// ctx picked up any errors along the way.
func CheckProgram(prog *ast.Program, global *symt.SymT, ctx *diag.Context) (mainSymT *symt.SymT, defSymTs map[*ast.Def]*symt.SymT, ok bool) {
	defSymTs = make(map[*ast.Def]*symt.SymT, len(prog.Defs))

	for _, def := range prog.Defs {
		st := symt.NewScope(global)
		for _, f := range def.Formals {
			st.AddFormal(f.Name, f.Type)
		}
		defSymTs[def] = st
		r := CheckBlock(def.Body, def.RetType, prog.Defs, st, ctx)
		if r.Kind != DefiniteT || r.Type != def.RetType {
			ctx.Error(def.Locn(), "definition of '"+def.Name+"' does not return "+def.RetType.TypeName()+" on every path")
		}
	}

	mainSymT = symt.NewScope(global)
	r := CheckBlock(prog.Main, common.NoneTy, prog.Defs, mainSymT, ctx)
	if r.Kind != Void {
		ctx.Error(common.Locn{}, "main block must not return a value")
	}

	return mainSymT, defSymTs, ctx.ShouldProceed()
}

// CheckBlock types every statement in b in order, threading seq-joins
// across them, and returns the block's overall Rtns.
func CheckBlock(b ast.Block, expected common.Type, defs ast.Defs, st *symt.SymT, ctx *diag.Context) Rtns {
	acc := RtnsVoid
	for _, s := range b {
		r := CheckStmt(s, expected, defs, st, ctx)
		joined, ok := Seq(acc, r)
		if !ok {
			ctx.Error(s.Locn(), "statement's return type is inconsistent with an earlier statement in this block")
			joined = r
		}
		acc = joined
	}
	return acc
}

// CheckStmt types s's subexpressions, records any introduced name in st,
// and computes s's Rtns.
func CheckStmt(s ast.Stmt, expected common.Type, defs ast.Defs, st *symt.SymT, ctx *diag.Context) Rtns {
	switch n := s.(type) {
	case *ast.IntroStmt:
		t := CheckExpn(n.Expn, defs, st, ctx)
		if t != n.Type {
			ctx.Error(n.Locn(), "cannot initialize '"+n.Name+"' of type "+n.Type.TypeName()+" with a value of type "+t.TypeName())
		}
		st.AddLocal(n.Name, n.Type)
		return RtnsVoid

	case *ast.AssignStmt:
		info, ok := st.GetInfo(n.Name)
		if !ok {
			ctx.Error(n.Locn(), "'"+n.Name+"' has not been introduced in this scope")
			CheckExpn(n.Expn, defs, st, ctx)
			return RtnsVoid
		}
		t := CheckExpn(n.Expn, defs, st, ctx)
		if t != info.Type {
			ctx.Error(n.Locn(), "cannot assign a value of type "+t.TypeName()+" to '"+n.Name+"' of type "+info.Type.TypeName())
		}
		return RtnsVoid

	case *ast.CompoundStmt:
		info, ok := st.GetInfo(n.Name)
		if !ok {
			ctx.Error(n.Locn(), "'"+n.Name+"' has not been introduced in this scope")
			CheckExpn(n.Expn, defs, st, ctx)
			return RtnsVoid
		}
		if info.Type != common.IntTy {
			ctx.Error(n.Locn(), "compound assignment requires '"+n.Name+"' to be of type int")
		}
		t := CheckExpn(n.Expn, defs, st, ctx)
		if t != common.IntTy {
			ctx.Error(n.Locn(), "compound assignment's right-hand side must be of type int")
		}
		return RtnsVoid

	case *ast.PrintStmt:
		for _, a := range n.Args {
			CheckExpn(a, defs, st, ctx)
		}
		return RtnsVoid

	case *ast.PassStmt:
		return RtnsVoid

	case *ast.WhileStmt:
		ct := CheckExpn(n.Cond, defs, st, ctx)
		_ = ct // any type accepted; truthiness resolved at run time
		body := CheckBlock(n.Body, expected, defs, st, ctx)
		r, ok := Plus(body, RtnsVoid)
		if !ok {
			ctx.Error(n.Locn(), "while loop's body does not consistently return a single type")
			return body
		}
		return r

	case *ast.IfStmt:
		ct := CheckExpn(n.Cond, defs, st, ctx)
		_ = ct
		then := CheckBlock(n.Then, expected, defs, st, ctx)
		els := CheckBlock(n.Else, expected, defs, st, ctx)
		r, ok := Plus(then, els)
		if !ok {
			ctx.Error(n.Locn(), "if/else branches return inconsistent types")
			return then
		}
		return r

	case *ast.CallStmt:
		def, ok := defs.Lookup(n.Name)
		if !ok {
			ctx.Error(n.Locn(), "no definition named '"+n.Name+"'")
			for _, a := range n.Args {
				CheckExpn(a, defs, st, ctx)
			}
			return RtnsVoid
		}
		if def.RetType != common.NoneTy {
			ctx.Error(n.Locn(), "'"+n.Name+"' returns a value; call it as an expression, not a statement")
		}
		checkCallArgs(n.Locn(), n.Name, def, n.Args, defs, st, ctx)
		return RtnsVoid

	case *ast.ReturnStmt:
		if n.Expn == nil {
			if !allowsBareReturn(expected) {
				ctx.Error(n.Locn(), "bare 'return' is not allowed here")
			}
			return RtnsOf(common.NoneTy)
		}
		t := CheckExpn(n.Expn, defs, st, ctx)
		if t != expected {
			ctx.Error(n.Locn(), "returned value has type "+t.TypeName()+" but "+expected.TypeName()+" was expected")
		}
		return RtnsOf(expected)
	}
	panic("check: unhandled statement node")
}

// checkCallArgs verifies a call's arity and per-argument types against def's
// formals, typing each argument regardless so later passes see a Type.
func checkCallArgs(l common.Locn, name string, def *ast.Def, args []ast.Expn, defs ast.Defs, st *symt.SymT, ctx *diag.Context) {
	if len(args) != len(def.Formals) {
		ctx.Error(l, "'"+name+"' expects "+common.Pluralize(len(def.Formals), "argument")+" but got "+common.Pluralize(len(args), "argument"))
	}
	for i, a := range args {
		t := CheckExpn(a, defs, st, ctx)
		if i < len(def.Formals) && t != def.Formals[i].Type {
			ctx.Error(a.Locn(), "argument "+def.Formals[i].Name+" expects type "+def.Formals[i].Type.TypeName()+" but got "+t.TypeName())
		}
	}
}

// CheckExpn types e, recording the result on the node itself, and returns
// that type.
func CheckExpn(e ast.Expn, defs ast.Defs, st *symt.SymT, ctx *diag.Context) common.Type {
	t := checkExpnKind(e, defs, st, ctx)
	e.SetType(t)
	return t
}

func checkExpnKind(e ast.Expn, defs ast.Defs, st *symt.SymT, ctx *diag.Context) common.Type {
	switch n := e.(type) {
	case *ast.LitExpn:
		return n.Value.Kind

	case *ast.VarExpn:
		info, ok := st.GetInfo(n.Name)
		if !ok {
			ctx.Error(n.Locn(), "'"+n.Name+"' has not been introduced in this scope")
			return common.IntTy
		}
		return info.Type

	case *ast.NegExpn:
		t := CheckExpn(n.Operand, defs, st, ctx)
		if t != common.IntTy {
			ctx.Error(n.Locn(), "unary '-' requires an int operand")
		}
		return common.IntTy

	case *ast.NotExpn:
		CheckExpn(n.Operand, defs, st, ctx)
		return common.BoolTy

	case *ast.ArithExpn:
		lt := CheckExpn(n.Left, defs, st, ctx)
		rt := CheckExpn(n.Right, defs, st, ctx)
		if n.Op == ast.Add && lt == common.StrTy && rt == common.StrTy {
			return common.StrTy
		}
		if lt != common.IntTy || rt != common.IntTy {
			ctx.Error(n.Locn(), "'"+n.Op.String()+"' requires int operands (or, for '+', two strings)")
		}
		return common.IntTy

	case *ast.CmprExpn:
		if n.Op == ast.EqOp {
			CheckExpn(n.Left, defs, st, ctx)
			CheckExpn(n.Right, defs, st, ctx)
			return common.BoolTy
		}
		lt := CheckExpn(n.Left, defs, st, ctx)
		rt := CheckExpn(n.Right, defs, st, ctx)
		if lt != common.IntTy || rt != common.IntTy {
			ctx.Error(n.Locn(), "'"+n.Op.String()+"' requires int operands")
		}
		return common.BoolTy

	case *ast.LogExpn:
		CheckExpn(n.Left, defs, st, ctx)
		CheckExpn(n.Right, defs, st, ctx)
		return common.BoolTy

	case *ast.InputExpn:
		t := CheckExpn(n.Prompt, defs, st, ctx)
		if t != common.StrTy {
			ctx.Error(n.Locn(), "input's prompt must be of type str")
		}
		return common.StrTy

	case *ast.IntConvExpn:
		t := CheckExpn(n.Operand, defs, st, ctx)
		if t == common.NoneTy {
			ctx.Error(n.Locn(), "int(...) cannot convert a None value")
		}
		return common.IntTy

	case *ast.StrConvExpn:
		t := CheckExpn(n.Operand, defs, st, ctx)
		if t == common.NoneTy {
			ctx.Error(n.Locn(), "str(...) cannot convert a None value")
		}
		return common.StrTy

	case *ast.CallExpn:
		def, ok := defs.Lookup(n.Name)
		if !ok {
			ctx.Error(n.Locn(), "no definition named '"+n.Name+"'")
			for _, a := range n.Args {
				CheckExpn(a, defs, st, ctx)
			}
			return common.IntTy
		}
		if def.RetType == common.NoneTy {
			ctx.Error(n.Locn(), "'"+n.Name+"' does not return a value; call it as a statement")
		}
		checkCallArgs(n.Locn(), n.Name, def, n.Args, defs, st, ctx)
		return def.RetType
	}
	panic("check: unhandled expression node")
}
