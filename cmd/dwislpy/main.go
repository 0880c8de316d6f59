// Command dwislpy parses, checks, and runs a DwiSlpy source file.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"dwislpy/ast"
	"dwislpy/check"
	"dwislpy/config"
	"dwislpy/diag"
	"dwislpy/interp"
	"dwislpy/symt"
	"dwislpy/syntax"

	"github.com/ComedicChimera/olive"
)

func main() {
	cli := olive.NewCLI("dwislpy", "dwislpy interprets DwiSlpy programs", false)
	cli.AddFlag("test", "t", "swallow errors behind a single ERROR line, exiting 0")
	cli.AddFlag("dump", "d", "print the parsed AST instead of running it")
	cli.AddFlag("pretty", "p", "with --dump, print source-equivalent code instead of a raw dump")
	cli.AddPrimaryArg("file", "the .dwi file to run", true)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		diag.PrintErrorMessage("CLI Usage Error", err)
		os.Exit(2)
	}

	fpath, _ := result.PrimaryArg()
	testMode := result.HasFlag("test")
	dumpMode := result.HasFlag("dump")
	prettyMode := result.HasFlag("pretty")

	if !run(fpath, dumpMode, prettyMode, testMode) {
		if testMode {
			fmt.Println("ERROR")
			os.Exit(0)
		}
		os.Exit(1)
	}
}

// run reports success. Every failure is already displayed -- via ctx.Error
// as it's discovered, or (for an interpreter error, which has no context of
// its own) via ctx.Report just before returning -- except in test mode,
// where the log level is forced silent and the caller prints ERROR instead.
func run(fpath string, dumpMode, prettyMode, testMode bool) bool {
	dir := filepath.Dir(fpath)
	cfg, err := config.Load(dir)
	if err != nil {
		if !testMode {
			diag.PrintErrorMessage("dwislpy", err)
		}
		return false
	}

	logLevel := cfg.LogLevel
	if testMode {
		logLevel = diag.LogLevelSilent
	}
	ctx := diag.NewContext(fpath, logLevel)

	sc, err := syntax.NewScanner(fpath, ctx)
	if err != nil {
		if !testMode {
			diag.PrintErrorMessage("dwislpy", err)
		}
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
	_, _, ok := check.CheckProgram(prog, global, ctx)
	if !ok {
		return false
	}

	ip := interp.New(prog.Defs, os.Stdout, os.Stdin)
	if err := ip.Run(prog.Main); err != nil {
		ctx.Report(err)
		return false
	}
	return true
}
