package check_test

import (
	"os"
	"path/filepath"
	"testing"

	"dwislpy/check"
	"dwislpy/diag"
	"dwislpy/symt"
	"dwislpy/syntax"
)

func checkSource(t *testing.T, src string) bool {
	t.Helper()
	dir := t.TempDir()
	fpath := filepath.Join(dir, "prog.dwi")
	if err := os.WriteFile(fpath, []byte(src), 0644); err != nil {
		t.Fatalf("writing source: %v", err)
	}
	ctx := diag.NewContext(fpath, diag.LogLevelSilent)
	sc, err := syntax.NewScanner(fpath, ctx)
	if err != nil {
		t.Fatalf("NewScanner: %v", err)
	}
	defer sc.Close()
	p := syntax.NewParser(sc, fpath, ctx)
	prog := p.ParseProgram()
	if !p.Ok() {
		t.Fatalf("parse failed for:\n%s", src)
	}
	global := symt.NewGlobal()
	_, _, ok := check.CheckProgram(prog, global, ctx)
	return ok
}

func TestCheckAcceptsWellTypedProgram(t *testing.T) {
	src := "" +
		"def add(a: int, b: int) -> int:\n" +
		"    return a + b\n" +
		"print(add(1, 2))\n"
	if !checkSource(t, src) {
		t.Fatal("expected well-typed program to check")
	}
}

func TestCheckRejectsStringArithmetic(t *testing.T) {
	src := "print(\"a\" - \"b\")\n"
	if checkSource(t, src) {
		t.Fatal("expected str - str to be a type error")
	}
}

func TestCheckRejectsMismatchedBranchReturns(t *testing.T) {
	src := "" +
		"def f(x: int) -> int:\n" +
		"    if x < 0:\n" +
		"        return 1\n" +
		"    else:\n" +
		"        return \"no\"\n" +
		"print(f(1))\n"
	if checkSource(t, src) {
		t.Fatal("expected mismatched branch return types to be a type error")
	}
}

func TestCheckRejectsMissingReturnOnSomePath(t *testing.T) {
	src := "" +
		"def f(x: int) -> int:\n" +
		"    if x < 0:\n" +
		"        return 1\n" +
		"    else:\n" +
		"        pass\n" +
		"print(f(1))\n"
	if checkSource(t, src) {
		t.Fatal("expected a definite-int function with a fallthrough branch to be rejected")
	}
}

func TestCheckAcceptsTrailingReturnAfterFallthroughBranch(t *testing.T) {
	// A guaranteed return after an if/else where only one branch returns
	// still makes every path return int -- seq(VoidOr(int), int) = int.
	src := "" +
		"def f(n: int) -> int:\n" +
		"    if n < 0:\n" +
		"        return 0\n" +
		"    else:\n" +
		"        pass\n" +
		"    return 1\n" +
		"print(f(1))\n"
	if !checkSource(t, src) {
		t.Fatal("expected a trailing unconditional return to upgrade a fallthrough branch to a definite return")
	}
}

func TestCheckAcceptsIntAndStrEquality(t *testing.T) {
	// `==` is defined for any pair of operand types and always yields bool.
	src := "print(1 == \"x\")\n"
	if !checkSource(t, src) {
		t.Fatal("expected == across different types to check (always bool)")
	}
}

func TestCheckRejectsUnknownIdentifier(t *testing.T) {
	src := "print(x)\n"
	if checkSource(t, src) {
		t.Fatal("expected reference to undeclared name to be a type error")
	}
}

func TestCheckRejectsCallArityMismatch(t *testing.T) {
	src := "" +
		"def f(a: int) -> int:\n" +
		"    return a\n" +
		"print(f(1, 2))\n"
	if checkSource(t, src) {
		t.Fatal("expected wrong-arity call to be a type error")
	}
}
