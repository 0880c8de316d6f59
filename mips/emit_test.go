package mips_test

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"dwislpy/check"
	"dwislpy/diag"
	"dwislpy/mips"
	"dwislpy/symt"
	"dwislpy/syntax"
	"dwislpy/trans"
)

func compile(t *testing.T, src string) string {
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
	mainSymT, defSymTs, ok := check.CheckProgram(prog, global, ctx)
	if !ok {
		t.Fatalf("check failed for:\n%s", src)
	}
	program := trans.Translate(prog, global, mainSymT, defSymTs)

	var out bytes.Buffer
	if err := mips.EmitProgram(&out, program); err != nil {
		t.Fatalf("EmitProgram: %v", err)
	}
	return out.String()
}

func TestEmitProgramProducesDataAndTextSections(t *testing.T) {
	src := "print(\"hi\")\n"
	asm := compile(t, src)
	if !bytes.Contains([]byte(asm), []byte(".data")) {
		t.Error("missing .data section")
	}
	if !bytes.Contains([]byte(asm), []byte(".text")) {
		t.Error("missing .text section")
	}
	if !bytes.Contains([]byte(asm), []byte(".globl main")) {
		t.Error("missing .globl main")
	}
	if !bytes.Contains([]byte(asm), []byte("main:")) {
		t.Error("missing main: label")
	}
}

func TestEmitProgramLabelsAreUnique(t *testing.T) {
	src := "" +
		"def f(x: int) -> int:\n" +
		"    if x < 0:\n" +
		"        return 0\n" +
		"    else:\n" +
		"        return x\n" +
		"i : int = 0\n" +
		"while i < 3:\n" +
		"    print(f(i))\n" +
		"    i += 1\n"
	asm := compile(t, src)

	labelRE := regexp.MustCompile(`(?m)^\S+:$`)
	seen := map[string]bool{}
	for _, m := range labelRE.FindAllString(asm, -1) {
		if seen[m] {
			t.Errorf("duplicate label emitted: %s", m)
		}
		seen[m] = true
	}
	if len(seen) == 0 {
		t.Fatal("expected at least one label in emitted assembly")
	}
}

func TestEmitProgramCallsEmitJalToCalleeLabel(t *testing.T) {
	src := "" +
		"def f(x: int) -> int:\n" +
		"    return x\n" +
		"print(f(1))\n"
	asm := compile(t, src)
	if !bytes.Contains([]byte(asm), []byte("jal f")) {
		t.Errorf("expected a `jal f` call instruction in:\n%s", asm)
	}
}

func TestEmitProgramDataSectionIsDeterministic(t *testing.T) {
	src := "print(\"one\", \"two\", \"three\", \"four\", \"five\")\n"
	first := compile(t, src)
	for i := 0; i < 10; i++ {
		if got := compile(t, src); got != first {
			t.Fatalf("emitted assembly differs across runs (string constant order is not deterministic):\nfirst:\n%s\ngot:\n%s", first, got)
		}
	}
}
