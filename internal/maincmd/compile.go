package maincmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mna/mainer"
	"github.com/mna/malinc/internal/backend"
	"github.com/mna/malinc/internal/source"
	"github.com/mna/malinc/lang/ast"
	"github.com/mna/malinc/lang/decorator"
	"github.com/mna/malinc/lang/diag"
	"github.com/mna/malinc/lang/ir/gen"
	"github.com/mna/malinc/lang/ir/pass"
	"github.com/mna/malinc/lang/ir/printer"
	"github.com/mna/malinc/lang/lexer"
	"github.com/mna/malinc/lang/parser"
)

// unimplemented is an exit code not named by mainer: spec'd exit code 2, "a
// pathway is explicitly unimplemented". mainer.ExitCode is just an int
// under the hood, so casting a literal is enough to produce it.
const unimplemented mainer.ExitCode = 2

// compile runs the full pipeline over c.File, honoring every --show-*,
// --save-* and backend-triggering flag on c.
func (c *Cmd) compile(ctx context.Context, stdio mainer.Stdio, opts *Options) mainer.ExitCode {
	if err := ctx.Err(); err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return mainer.Failure
	}

	mgr, err := source.NewManager(c.File)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", c.File, err)
		return mainer.Failure
	}

	bag := diag.NewBag(mgr.Path())

	if c.ShowLexerOutput {
		printTokens(stdio.Stdout, mgr, bag)
	}

	root := parser.Parse(mgr, bag)
	if root == nil || bag.HasErrors() {
		bag.Print(stdio.Stderr, mgr)
		return mainer.Failure
	}

	if c.ShowParserOutput {
		p := &ast.Printer{Output: stdio.Stdout, ShowPos: true}
		if err := p.Print(root); err != nil {
			fmt.Fprintf(stdio.Stderr, "printing ast: %s\n", err)
			return mainer.Failure
		}
	}

	decorator.Decorate(root, bag)
	if bag.HasErrors() {
		bag.Print(stdio.Stderr, mgr)
		return mainer.Failure
	}

	if c.ShowDecoratorOutput {
		p := &ast.Printer{Output: stdio.Stdout, ShowPos: true, ShowTypes: true}
		if err := p.Print(root); err != nil {
			fmt.Fprintf(stdio.Stderr, "printing decorated ast: %s\n", err)
			return mainer.Failure
		}
	}

	if c.ShowASTAsCode || c.SaveASTAsCode {
		code := ast.PrintCode(root)
		if c.ShowASTAsCode {
			fmt.Fprint(stdio.Stdout, code)
		}
		if c.SaveASTAsCode {
			if err := os.WriteFile(c.File+".ast.malin", []byte(code), 0o644); err != nil {
				fmt.Fprintf(stdio.Stderr, "saving ast as code: %s\n", err)
				return mainer.Failure
			}
		}
	}

	needsIR := c.ShowLLVMIR || c.SaveLLVMIR || c.UseIR || c.Run || c.ViewFunctionGraph != "" || !c.NotCreateObjectFile
	if !needsIR {
		return mainer.Success
	}

	mod := gen.Generate(root, bag)
	if bag.HasErrors() {
		bag.Print(stdio.Stderr, mgr)
		return mainer.Failure
	}
	pass.RunAll(mod, pass.RemoveRedundantTerminators{})

	if c.ShowLLVMIR || c.SaveLLVMIR {
		var sb strings.Builder
		p := &printer.Printer{Output: &sb}
		if err := p.Print(mod); err != nil {
			fmt.Fprintf(stdio.Stderr, "printing ir: %s\n", err)
			return mainer.Failure
		}
		if c.ShowLLVMIR {
			fmt.Fprint(stdio.Stdout, sb.String())
		}
		if c.SaveLLVMIR {
			if err := os.WriteFile(c.File+".ir", []byte(sb.String()), 0o644); err != nil {
				fmt.Fprintf(stdio.Stderr, "saving ir: %s\n", err)
				return mainer.Failure
			}
		}
	}

	if c.ViewFunctionGraph != "" {
		if err := backend.FunctionGraph(mod, c.ViewFunctionGraph, stdio.Stdout); err != nil {
			fmt.Fprintf(stdio.Stderr, "view-function-graph: %s\n", err)
			return unimplemented
		}
	}

	if c.Run {
		code, err := backend.Run(mod)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "run: %s\n", err)
			return unimplemented
		}
		return mainer.ExitCode(code)
	}

	if !c.NotCreateObjectFile {
		if err := backend.EmitObjectFile(mod, opts.ObjectFile); err != nil {
			fmt.Fprintf(stdio.Stderr, "emitting %s: %s\n", opts.ObjectFile, err)
			return unimplemented
		}
	}

	return mainer.Success
}

func printTokens(w io.Writer, mgr *source.Manager, bag *diag.Bag) {
	for _, tok := range lexer.ScanAll(mgr, bag) {
		fmt.Fprintln(w, tok)
	}
}
