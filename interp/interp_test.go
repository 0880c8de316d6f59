package interp_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dwislpy/check"
	"dwislpy/diag"
	"dwislpy/interp"
	"dwislpy/symt"
	"dwislpy/syntax"
)

// runSource parses, checks, and interprets src, returning whatever the
// program wrote to standard output. t.Fatal on any phase failure.
func runSource(t *testing.T, src, stdin string) string {
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
	if _, _, ok := check.CheckProgram(prog, global, ctx); !ok {
		t.Fatalf("check failed for:\n%s", src)
	}

	var out bytes.Buffer
	ip := interp.New(prog.Defs, &out, strings.NewReader(stdin))
	if err := ip.Run(prog.Main); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return out.String()
}

func TestPrintArithmetic(t *testing.T) {
	src := "print(1 + 2 * 3)\n"
	if got := runSource(t, src, ""); got != "7\n" {
		t.Errorf("got %q, want %q", got, "7\n")
	}
}

func TestWhileLoopCounts(t *testing.T) {
	src := "" +
		"i : int = 0\n" +
		"while i < 5:\n" +
		"    print(i)\n" +
		"    i += 1\n"
	want := "0\n1\n2\n3\n4\n"
	if got := runSource(t, src, ""); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestIfElseBranches(t *testing.T) {
	src := "" +
		"x : int = 3\n" +
		"if x < 2:\n" +
		"    print(\"small\")\n" +
		"else:\n" +
		"    print(\"big\")\n"
	if got := runSource(t, src, ""); got != "big\n" {
		t.Errorf("got %q, want %q", got, "big\n")
	}
}

func TestCallReturnsValue(t *testing.T) {
	src := "" +
		"def square(n: int) -> int:\n" +
		"    return n * n\n" +
		"print(square(6))\n"
	if got := runSource(t, src, ""); got != "36\n" {
		t.Errorf("got %q, want %q", got, "36\n")
	}
}

func TestStrConcatenation(t *testing.T) {
	src := "print(\"hello\" + \" \" + \"world\")\n"
	if got := runSource(t, src, ""); got != "hello world\n" {
		t.Errorf("got %q, want %q", got, "hello world\n")
	}
}

func TestInputReadsOneToken(t *testing.T) {
	src := "" +
		"n : int = int(input(\"n? \"))\n" +
		"print(n + 1)\n"
	got := runSource(t, src, "41\n")
	if got != "n? 42\n" {
		t.Errorf("got %q, want %q", got, "n? 42\n")
	}
}

func TestLogicalOperatorsDoNotShortCircuitAtRuntime(t *testing.T) {
	// The interpreter evaluates both operands of `and`/`or` unconditionally
	// (unlike the compiled form); a side-effecting right operand always
	// runs, even when the left operand alone determines the result.
	src := "" +
		"def loud() -> bool:\n" +
		"    print(\"evaluated\")\n" +
		"    return True\n" +
		"x : bool = False and loud()\n"
	if got := runSource(t, src, ""); got != "evaluated\n" {
		t.Errorf("got %q, want %q", got, "evaluated\n")
	}
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	dir := t.TempDir()
	fpath := filepath.Join(dir, "prog.dwi")
	src := "print(1 // 0)\n"
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
		t.Fatalf("parse failed")
	}

	global := symt.NewGlobal()
	if _, _, ok := check.CheckProgram(prog, global, ctx); !ok {
		t.Fatalf("check failed")
	}

	var out bytes.Buffer
	ip := interp.New(prog.Defs, &out, strings.NewReader(""))
	if err := ip.Run(prog.Main); err == nil {
		t.Fatal("expected a division-by-zero error")
	}
}
