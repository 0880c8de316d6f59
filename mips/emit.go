package mips

import (
	"fmt"
	"io"

	"dwislpy/common"
	"dwislpy/ir"
	"dwislpy/symt"
)

// EmitProgram writes a whole program's .data and .text sections to w.
func EmitProgram(w io.Writer, prog *ir.Program) error {
	if err := emitData(w, prog.Global); err != nil {
		return err
	}

	fmt.Fprintln(w, "\t.text")
	fmt.Fprintln(w, "\t.globl main")

	Layout(prog.MainSymT)
	if err := emitDefn(w, prog.MainSymT, prog.MainCode); err != nil {
		return err
	}
	for _, d := range prog.Defs {
		Layout(d.SymT)
		if err := emitDefn(w, d.SymT, d.Code); err != nil {
			return err
		}
	}
	return nil
}

func emitData(w io.Writer, global *symt.SymT) error {
	fmt.Fprintln(w, "\t.data")
	for _, sc := range global.Strings() {
		fmt.Fprintf(w, "%s:\n", sc.Label)
		fmt.Fprintf(w, "\t.asciiz \"%s\"\n", common.ReEscape(sc.Literal))
	}
	return nil
}

func emitDefn(w io.Writer, st *symt.SymT, code ir.Code) error {
	for _, instr := range code {
		if err := emitInstr(w, st, instr); err != nil {
			return err
		}
	}
	return nil
}

func off(st *symt.SymT, name string) int {
	return st.FrameOffset(name)
}

func emitInstr(w io.Writer, st *symt.SymT, in ir.Instr) error {
	switch in.Op {
	case ir.ENTER:
		fmt.Fprintf(w, "\tsw $ra,%d($sp)\n", off(st, returnAddressSlot))
		fmt.Fprintf(w, "\tsw $fp,%d($sp)\n", off(st, framePointerSlot))
		fmt.Fprintln(w, "\tmove $fp,$sp")
		fmt.Fprintf(w, "\taddi $sp,$sp,-%d\n", st.FrameSize())
		for i := 0; i < st.NumFormals(); i++ {
			info := st.GetFormal(i)
			fmt.Fprintf(w, "\tsw $a%d,%d($fp)\n", i, off(st, info.Name))
		}

	case ir.LEAVE:
		fmt.Fprintf(w, "\tlw $ra,%d($fp)\n", off(st, returnAddressSlot))
		fmt.Fprintf(w, "\tlw $fp,%d($fp)\n", off(st, framePointerSlot))
		fmt.Fprintf(w, "\taddi $sp,$sp,%d\n", st.FrameSize())
		fmt.Fprintln(w, "\tjr $ra")

	case ir.SET:
		fmt.Fprintf(w, "\tli $t0,%d\n", in.Imm)
		fmt.Fprintf(w, "\tsw $t0,%d($fp)\n", off(st, in.Dest))

	case ir.STL:
		fmt.Fprintf(w, "\tla $t0,%s\n", in.Label)
		fmt.Fprintf(w, "\tsw $t0,%d($fp)\n", off(st, in.Dest))

	case ir.MOV:
		fmt.Fprintf(w, "\tlw $t1,%d($fp)\n", off(st, in.Src1))
		fmt.Fprintln(w, "\tmove $t0,$t1")
		fmt.Fprintf(w, "\tsw $t0,%d($fp)\n", off(st, in.Dest))

	case ir.RTV:
		fmt.Fprintln(w, "\tmove $t0,$v0")
		fmt.Fprintf(w, "\tsw $t0,%d($fp)\n", off(st, in.Dest))

	case ir.GTI:
		fmt.Fprintln(w, "\tli $v0,5")
		fmt.Fprintln(w, "\tsyscall")
		fmt.Fprintf(w, "\tsw $v0,%d($fp)\n", off(st, in.Dest))

	case ir.NOP:
		fmt.Fprintln(w, "\tnop")

	case ir.PTI:
		fmt.Fprintf(w, "\tlw $a0,%d($fp)\n", off(st, in.Src1))
		fmt.Fprintln(w, "\tli $v0,1")
		fmt.Fprintln(w, "\tsyscall")

	case ir.PTS:
		fmt.Fprintln(w, "\tli $v0,4")
		fmt.Fprintf(w, "\tlw $a0,%d($fp)\n", off(st, in.Src1))
		fmt.Fprintln(w, "\tsyscall")

	case ir.ADD, ir.SUB:
		fmt.Fprintf(w, "\tlw $t1,%d($fp)\n", off(st, in.Src1))
		fmt.Fprintf(w, "\tlw $t2,%d($fp)\n", off(st, in.Src2))
		op := "add"
		if in.Op == ir.SUB {
			op = "sub"
		}
		fmt.Fprintf(w, "\t%s $t0,$t1,$t2\n", op)
		fmt.Fprintf(w, "\tsw $t0,%d($fp)\n", off(st, in.Dest))

	case ir.MLT:
		fmt.Fprintf(w, "\tlw $t1,%d($fp)\n", off(st, in.Src1))
		fmt.Fprintf(w, "\tlw $t2,%d($fp)\n", off(st, in.Src2))
		fmt.Fprintln(w, "\tmult $t1,$t2")
		fmt.Fprintln(w, "\tmflo $t0")
		fmt.Fprintf(w, "\tsw $t0,%d($fp)\n", off(st, in.Dest))

	case ir.DIV:
		fmt.Fprintf(w, "\tlw $t1,%d($fp)\n", off(st, in.Src1))
		fmt.Fprintf(w, "\tlw $t2,%d($fp)\n", off(st, in.Src2))
		fmt.Fprintln(w, "\tdiv $t1,$t2")
		fmt.Fprintln(w, "\tmflo $t0")
		fmt.Fprintf(w, "\tsw $t0,%d($fp)\n", off(st, in.Dest))

	case ir.MOD:
		fmt.Fprintf(w, "\tlw $t1,%d($fp)\n", off(st, in.Src1))
		fmt.Fprintf(w, "\tlw $t2,%d($fp)\n", off(st, in.Src2))
		fmt.Fprintln(w, "\tdiv $t1,$t2")
		fmt.Fprintln(w, "\tmfhi $t0")
		fmt.Fprintf(w, "\tsw $t0,%d($fp)\n", off(st, in.Dest))

	case ir.RTN:
		fmt.Fprintf(w, "\tlw $v0,%d($fp)\n", off(st, in.Src1))

	case ir.BCN:
		fmt.Fprintf(w, "\tlw $t1,%d($fp)\n", off(st, in.Src1))
		fmt.Fprintf(w, "\tlw $t2,%d($fp)\n", off(st, in.Src2))
		fmt.Fprintf(w, "\tb%s $t1,$t2,%s\n", in.Cmpr, in.Then)
		fmt.Fprintf(w, "\tj %s\n", in.Else)

	case ir.BCZ:
		fmt.Fprintf(w, "\tlw $t1,%d($fp)\n", off(st, in.Src1))
		fmt.Fprintf(w, "\tb%s $t1,%s\n", in.Zero, in.Then)
		fmt.Fprintf(w, "\tj %s\n", in.Else)

	case ir.JMP:
		fmt.Fprintf(w, "\tj %s\n", in.Label)

	case ir.CLL:
		fmt.Fprintf(w, "\tjal %s\n", in.Label)

	case ir.LBL:
		fmt.Fprintf(w, "%s:\n", in.Label)

	case ir.CMT:
		fmt.Fprintf(w, "\t\t\t\t#%s\n", in.Comment)

	case ir.ARG:
		fmt.Fprintf(w, "\tlw $a%d,%d($fp)\n", in.ArgIndex, off(st, in.ArgSrc))

	default:
		return fmt.Errorf("mips: unhandled instruction op %v", in.Op)
	}
	return nil
}
