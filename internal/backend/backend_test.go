package backend_test

import (
	"bytes"
	"testing"

	"github.com/mna/malinc/internal/backend"
	"github.com/mna/malinc/lang/ir"
	"github.com/stretchr/testify/require"
)

func TestEmitObjectFileIsUnimplemented(t *testing.T) {
	mod := ir.NewModule("test.malin")
	err := backend.EmitObjectFile(mod, "output.o")
	require.ErrorIs(t, err, backend.ErrUnimplemented)
}

func TestRunIsUnimplemented(t *testing.T) {
	mod := ir.NewModule("test.malin")
	_, err := backend.Run(mod)
	require.ErrorIs(t, err, backend.ErrUnimplemented)
}

func TestFunctionGraphIsUnimplemented(t *testing.T) {
	mod := ir.NewModule("test.malin")
	var buf bytes.Buffer
	err := backend.FunctionGraph(mod, "main", &buf)
	require.ErrorIs(t, err, backend.ErrUnimplemented)
	require.Zero(t, buf.Len())
}
