// Package backend is the seam where a finished ir.Module would be handed to
// a native code generator: walk the module (or, skipping lang/ir entirely,
// the decorated AST directly), emit LLVM IR, verify it, and lower it to an
// object file linked against libmalinCGlue.a by an external C compiler. None
// of that is implemented here -- every function returns ErrUnimplemented,
// and internal/maincmd maps that to exit code 2.
package backend

import (
	"errors"
	"io"

	"github.com/mna/malinc/lang/ir"
)

// ErrUnimplemented is returned by every function in this package.
var ErrUnimplemented = errors.New("backend: not implemented")

// EmitObjectFile would lower mod to native code and write an object file at
// path, ready to be linked against libmalinCGlue.a.
func EmitObjectFile(mod *ir.Module, path string) error {
	return ErrUnimplemented
}

// Run would JIT-compile mod and execute its main function, returning the
// process exit value main returned.
func Run(mod *ir.Module) (int, error) {
	return 0, ErrUnimplemented
}

// FunctionGraph would render the control-flow graph of mod's function named
// fn to w, one node per basic block.
func FunctionGraph(mod *ir.Module, fn string, w io.Writer) error {
	return ErrUnimplemented
}
