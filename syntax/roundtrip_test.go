package syntax_test

import (
	"os"
	"path/filepath"
	"testing"

	"dwislpy/ast"
	"dwislpy/diag"
	"dwislpy/syntax"
)

func parse(t *testing.T, src string) *ast.Program {
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
	return prog
}

// Pretty-printing a parsed program and re-parsing the result should yield a
// tree whose own pretty-print is a fixed point -- the tree shape settles
// after one round trip even if whitespace doesn't.
func TestPrettyPrintRoundTrip(t *testing.T) {
	sources := []string{
		"print(1 + 2 * 3)\n",
		"x : int = 0\nwhile x < 5:\n    x += 1\nprint(x)\n",
		"def add(a: int, b: int) -> int:\n    return a + b\nprint(add(2, 3))\n",
		"if 1 < 2:\n    print(\"yes\")\nelse:\n    print(\"no\")\n",
	}
	for _, src := range sources {
		prog1 := parse(t, src)
		pretty1 := ast.Pretty(prog1)

		prog2 := parse(t, pretty1)
		pretty2 := ast.Pretty(prog2)

		if pretty1 != pretty2 {
			t.Errorf("pretty-print not idempotent after one round trip:\nsrc:\n%s\nfirst:\n%s\nsecond:\n%s", src, pretty1, pretty2)
		}
	}
}

func TestParseRejectsBadIndentation(t *testing.T) {
	dir := t.TempDir()
	fpath := filepath.Join(dir, "prog.dwi")
	src := "if 1 < 2:\nprint(1)\n" // body of `if` not indented
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
	p.ParseProgram()
	if p.Ok() {
		t.Fatal("expected a parse error for an unindented if-body")
	}
}
