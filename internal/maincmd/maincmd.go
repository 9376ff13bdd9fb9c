// Package maincmd implements the malin compiler's single command-line
// entry point: one invocation compiles one source file through the lexer,
// parser, decorator and IR pipeline, printing or saving whichever
// intermediate representations the caller asked for.
package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
)

const binName = "malinc"

var (
	shortUsage = fmt.Sprintf(`
usage: %s -f FILE [<option>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s -f FILE [<option>...]
       %[1]s -h|--help
       %[1]s -v|--version

Compiler for the malin programming language.

Valid flag options are:
       -h --help                    Show this help and exit.
       -v --version                 Print version and exit.
       -f --file FILE               Source file to compile (required).
       --show-lexer-output          Print the token stream.
       --show-parser-output         Print the parsed, undecorated AST.
       --show-decorator-output      Print the decorated AST, with resolved types.
       --show-ast-as-code           Print the decorated AST rendered back as source.
       --save-ast-as-code           Save the decorated AST rendered back as source to <file>.ast.malin.
       --show-llvm-ir               Print the lowered IR module.
       --save-llvm-ir               Save the lowered IR module to <file>.ir.
       --not-create-object-file     Skip emitting an object file.
       --view-function-graph NAME   Print the control-flow graph of function NAME.
       --run                        Execute the compiled program.
       --use-ir                     Lower the program to IR even when no other
                                    option needs it.

Exit codes: 0 success, 1 compilation errors, 2 a requested pathway is not
implemented.

Every flag above can also be set through an environment variable prefixed
with %[1]s_, e.g. %[1]s_FILE, %[1]s_RUN.
`, binName)
)

// Cmd holds malin's command-line options and drives the compilation of a
// single file. Most fields are populated by mainer.Parser from CLI flags or
// their MALINC_-prefixed environment variable; see Options for the handful
// of settings that have no CLI flag at all.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	File string `flag:"f,file"`

	ShowLexerOutput     bool   `flag:"show-lexer-output"`
	ShowParserOutput    bool   `flag:"show-parser-output"`
	ShowDecoratorOutput bool   `flag:"show-decorator-output"`
	ShowASTAsCode       bool   `flag:"show-ast-as-code"`
	SaveASTAsCode       bool   `flag:"save-ast-as-code"`
	ShowLLVMIR          bool   `flag:"show-llvm-ir"`
	SaveLLVMIR          bool   `flag:"save-llvm-ir"`
	NotCreateObjectFile bool   `flag:"not-create-object-file"`
	ViewFunctionGraph   string `flag:"view-function-graph"`
	Run                 bool   `flag:"run"`
	UseIR               bool   `flag:"use-ir"`

	args  []string
	flags map[string]bool
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if c.File == "" {
		return fmt.Errorf("no source file specified, use -f FILE")
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   true,
		EnvPrefix: "MALINC_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	opts, err := LoadOptions()
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "loading options: %s\n", err)
		return mainer.InvalidArgs
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	return c.compile(ctx, stdio, opts)
}
