package ast

import (
	"fmt"
	"strings"
)

// Dump renders a program as an indented tree of its node constructors and
// fields -- the `--dump` CLI form.
func Dump(prog *Program) string {
	var b strings.Builder
	for _, d := range prog.Defs {
		dumpDef(&b, d, 0)
	}
	fmt.Fprintf(&b, "main:\n")
	dumpBlock(&b, prog.Main, 1)
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func dumpDef(b *strings.Builder, d *Def, depth int) {
	indent(b, depth)
	fmt.Fprintf(b, "def %s(%s) -> %s:\n", d.Name, formalsString(d.Formals), d.RetType)
	dumpBlock(b, d.Body, depth+1)
}

func formalsString(formals []Formal) string {
	parts := make([]string, len(formals))
	for i, f := range formals {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Type)
	}
	return strings.Join(parts, ", ")
}

func dumpBlock(b *strings.Builder, blk Block, depth int) {
	for _, s := range blk {
		dumpStmt(b, s, depth)
	}
}

func dumpStmt(b *strings.Builder, s Stmt, depth int) {
	indent(b, depth)
	switch n := s.(type) {
	case *IntroStmt:
		fmt.Fprintf(b, "Intro(%s: %s = %s)\n", n.Name, n.Type, dumpExpn(n.Expn))
	case *AssignStmt:
		fmt.Fprintf(b, "Assign(%s = %s)\n", n.Name, dumpExpn(n.Expn))
	case *CompoundStmt:
		fmt.Fprintf(b, "Compound(%s %s %s)\n", n.Name, compoundOpString(n.Op), dumpExpn(n.Expn))
	case *PrintStmt:
		fmt.Fprintf(b, "Print(%s)\n", dumpExpnList(n.Args))
	case *PassStmt:
		fmt.Fprintf(b, "Pass\n")
	case *WhileStmt:
		fmt.Fprintf(b, "While(%s):\n", dumpExpn(n.Cond))
		dumpBlock(b, n.Body, depth+1)
	case *IfStmt:
		fmt.Fprintf(b, "If(%s):\n", dumpExpn(n.Cond))
		dumpBlock(b, n.Then, depth+1)
		indent(b, depth)
		fmt.Fprintf(b, "Else:\n")
		dumpBlock(b, n.Else, depth+1)
	case *CallStmt:
		fmt.Fprintf(b, "Call(%s(%s))\n", n.Name, dumpExpnList(n.Args))
	case *ReturnStmt:
		if n.Expn == nil {
			fmt.Fprintf(b, "Return\n")
		} else {
			fmt.Fprintf(b, "Return(%s)\n", dumpExpn(n.Expn))
		}
	default:
		fmt.Fprintf(b, "<unknown statement>\n")
	}
}

func compoundOpString(op CompoundOp) string {
	switch op {
	case PlusEq:
		return "+="
	case MinusEq:
		return "-="
	case StarEq:
		return "*="
	}
	return "?="
}

func dumpExpnList(es []Expn) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = dumpExpn(e)
	}
	return strings.Join(parts, ", ")
}

func dumpExpn(e Expn) string {
	switch n := e.(type) {
	case *LitExpn:
		return n.Value.Repr()
	case *VarExpn:
		return n.Name
	case *NegExpn:
		return "-" + dumpExpn(n.Operand)
	case *NotExpn:
		return "not " + dumpExpn(n.Operand)
	case *ArithExpn:
		return fmt.Sprintf("(%s %s %s)", dumpExpn(n.Left), n.Op, dumpExpn(n.Right))
	case *CmprExpn:
		return fmt.Sprintf("(%s %s %s)", dumpExpn(n.Left), n.Op, dumpExpn(n.Right))
	case *LogExpn:
		return fmt.Sprintf("(%s %s %s)", dumpExpn(n.Left), n.Op, dumpExpn(n.Right))
	case *InputExpn:
		return fmt.Sprintf("input(%s)", dumpExpn(n.Prompt))
	case *IntConvExpn:
		return fmt.Sprintf("int(%s)", dumpExpn(n.Operand))
	case *StrConvExpn:
		return fmt.Sprintf("str(%s)", dumpExpn(n.Operand))
	case *CallExpn:
		return fmt.Sprintf("%s(%s)", n.Name, dumpExpnList(n.Args))
	}
	return "<unknown expression>"
}

// Pretty renders a program as source-equivalent DwiSlpy code -- the
// `--dump --pretty` CLI form. Re-parsing its output reproduces the same
// tree (modulo source locations), per the toolchain's pretty-print
// round-trip property.
func Pretty(prog *Program) string {
	var b strings.Builder
	for _, d := range prog.Defs {
		prettyDef(&b, d)
		b.WriteString("\n")
	}
	prettyBlock(&b, prog.Main, 0)
	return b.String()
}

func prettyDef(b *strings.Builder, d *Def) {
	fmt.Fprintf(b, "def %s(%s) -> %s:\n", d.Name, formalsString(d.Formals), d.RetType)
	prettyBlock(b, d.Body, 1)
}

func prettyBlock(b *strings.Builder, blk Block, depth int) {
	for _, s := range blk {
		prettyStmt(b, s, depth)
	}
}

func prettyStmt(b *strings.Builder, s Stmt, depth int) {
	indent(b, depth)
	switch n := s.(type) {
	case *IntroStmt:
		fmt.Fprintf(b, "%s : %s = %s\n", n.Name, n.Type, prettyExpn(n.Expn))
	case *AssignStmt:
		fmt.Fprintf(b, "%s = %s\n", n.Name, prettyExpn(n.Expn))
	case *CompoundStmt:
		fmt.Fprintf(b, "%s %s %s\n", n.Name, compoundOpString(n.Op), prettyExpn(n.Expn))
	case *PrintStmt:
		fmt.Fprintf(b, "print(%s)\n", dumpExpnList(n.Args))
	case *PassStmt:
		fmt.Fprintf(b, "pass\n")
	case *WhileStmt:
		fmt.Fprintf(b, "while %s:\n", prettyExpn(n.Cond))
		prettyBlock(b, n.Body, depth+1)
	case *IfStmt:
		fmt.Fprintf(b, "if %s:\n", prettyExpn(n.Cond))
		prettyBlock(b, n.Then, depth+1)
		indent(b, depth)
		fmt.Fprintf(b, "else:\n")
		prettyBlock(b, n.Else, depth+1)
	case *CallStmt:
		fmt.Fprintf(b, "%s(%s)\n", n.Name, dumpExpnList(n.Args))
	case *ReturnStmt:
		if n.Expn == nil {
			fmt.Fprintf(b, "return\n")
		} else {
			fmt.Fprintf(b, "return %s\n", prettyExpn(n.Expn))
		}
	}
}

// prettyExpn renders e as DwiSlpy source text. Parenthesization is always
// explicit rather than precedence-aware -- simpler, and round-trip safe.
func prettyExpn(e Expn) string {
	switch n := e.(type) {
	case *LitExpn:
		return n.Value.Repr()
	case *VarExpn:
		return n.Name
	case *NegExpn:
		return "-" + prettyExpn(n.Operand)
	case *NotExpn:
		return "not " + prettyExpn(n.Operand)
	case *ArithExpn:
		return fmt.Sprintf("(%s %s %s)", prettyExpn(n.Left), n.Op, prettyExpn(n.Right))
	case *CmprExpn:
		return fmt.Sprintf("(%s %s %s)", prettyExpn(n.Left), n.Op, prettyExpn(n.Right))
	case *LogExpn:
		return fmt.Sprintf("(%s %s %s)", prettyExpn(n.Left), n.Op, prettyExpn(n.Right))
	case *InputExpn:
		return fmt.Sprintf("input(%s)", prettyExpn(n.Prompt))
	case *IntConvExpn:
		return fmt.Sprintf("int(%s)", prettyExpn(n.Operand))
	case *StrConvExpn:
		return fmt.Sprintf("str(%s)", prettyExpn(n.Operand))
	case *CallExpn:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = prettyExpn(a)
		}
		return fmt.Sprintf("%s(%s)", n.Name, strings.Join(args, ", "))
	}
	return ""
}
