// Command dwislpyc parses, checks, and compiles a DwiSlpy source file to
// SPIM-compatible MIPS32 assembly.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dwislpy/ast"
	"dwislpy/check"
	"dwislpy/config"
	"dwislpy/diag"
	"dwislpy/mips"
	"dwislpy/symt"
	"dwislpy/syntax"
	"dwislpy/trans"

	"github.com/ComedicChimera/olive"
)

func main() {
	cli := olive.NewCLI("dwislpyc", "dwislpyc compiles DwiSlpy programs to MIPS32", false)
	cli.AddFlag("dump", "d", "print the parsed AST instead of compiling it")
	cli.AddFlag("pretty", "p", "with --dump, print source-equivalent code instead of a raw dump")
	cli.AddPrimaryArg("file", "the .dwi file to compile", true)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		diag.PrintErrorMessage("CLI Usage Error", err)
		os.Exit(2)
	}

	fpath, _ := result.PrimaryArg()
	dumpMode := result.HasFlag("dump")
	prettyMode := result.HasFlag("pretty")

	if !run(fpath, dumpMode, prettyMode) {
		os.Exit(1)
	}
}

func run(fpath string, dumpMode, prettyMode bool) bool {
	dir := filepath.Dir(fpath)
	cfg, err := config.Load(dir)
	if err != nil {
		diag.PrintErrorMessage("dwislpyc", err)
		return false
	}

	ctx := diag.NewContext(fpath, cfg.LogLevel)

	sc, err := syntax.NewScanner(fpath, ctx)
	if err != nil {
		diag.PrintErrorMessage("dwislpyc", err)
		return false
	}
	defer sc.Close()

	p := syntax.NewParser(sc, fpath, ctx)
	prog := p.ParseProgram()
	if !p.Ok() {
		return false
	}

	if dumpMode {
		if prettyMode {
			fmt.Print(ast.Pretty(prog))
		} else {
			fmt.Print(ast.Dump(prog))
		}
		return true
	}

	global := symt.NewGlobal()
	mainSymT, defSymTs, ok := check.CheckProgram(prog, global, ctx)
	if !ok {
		return false
	}

	program := trans.Translate(prog, global, mainSymT, defSymTs)

	outPath := stem(fpath) + ".s"
	out, err := os.Create(outPath)
	if err != nil {
		diag.PrintErrorMessage("dwislpyc", err)
		return false
	}
	defer out.Close()

	if err := mips.EmitProgram(out, program); err != nil {
		diag.PrintErrorMessage("dwislpyc", err)
		return false
	}
	return true
}

// stem strips the final extension from path, per the compiler's
// "<stem>.s beside the source" output convention.
func stem(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[:i]
	}
	return path
}
