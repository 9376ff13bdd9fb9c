package maincmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/mna/malinc/internal/maincmd"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.malin")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func run(t *testing.T, args ...string) (mainer.ExitCode, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	c := maincmd.Cmd{BuildVersion: "0.0.0-test", BuildDate: "2026-01-01"}
	code := c.Main(append([]string{"malinc"}, args...), mainer.Stdio{Stdout: &out, Stderr: &errOut})
	return code, out.String(), errOut.String()
}

func TestMainRequiresFile(t *testing.T) {
	code, _, errOut := run(t)
	require.Equal(t, mainer.InvalidArgs, code)
	require.NotEmpty(t, errOut)
}

func TestMainHelp(t *testing.T) {
	code, out, _ := run(t, "-h")
	require.Equal(t, mainer.Success, code)
	require.Contains(t, out, "malinc")
}

func TestMainVersion(t *testing.T) {
	code, out, _ := run(t, "-v")
	require.Equal(t, mainer.Success, code)
	require.Contains(t, out, "0.0.0-test")
}

func TestMainCompilesValidFile(t *testing.T) {
	path := writeSource(t, `
		fun main(): i32 { return 0; }
	`)
	code, _, errOut := run(t, "-f", path, "--not-create-object-file")
	require.Equal(t, mainer.Success, code, "stderr: %s", errOut)
}

func TestMainReportsParseErrors(t *testing.T) {
	path := writeSource(t, `fun main(: i32 { return 0; }`)
	code, _, errOut := run(t, "-f", path, "--not-create-object-file")
	require.Equal(t, mainer.Failure, code)
	require.NotEmpty(t, errOut)
}

func TestMainShowLexerOutput(t *testing.T) {
	path := writeSource(t, `fun main(): i32 { return 0; }`)
	code, out, errOut := run(t, "-f", path, "--show-lexer-output", "--not-create-object-file")
	require.Equal(t, mainer.Success, code, "stderr: %s", errOut)
	require.Contains(t, out, "fun")
}

func TestMainShowParserOutput(t *testing.T) {
	path := writeSource(t, `fun main(): i32 { return 0; }`)
	code, out, errOut := run(t, "-f", path, "--show-parser-output", "--not-create-object-file")
	require.Equal(t, mainer.Success, code, "stderr: %s", errOut)
	require.Contains(t, out, "main")
}

func TestMainShowLLVMIR(t *testing.T) {
	path := writeSource(t, `fun main(): i32 { return 0; }`)
	code, out, errOut := run(t, "-f", path, "--show-llvm-ir", "--not-create-object-file")
	require.Equal(t, mainer.Success, code, "stderr: %s", errOut)
	require.Contains(t, out, "function @main")
}

func TestMainObjectFileCreationIsUnimplemented(t *testing.T) {
	path := writeSource(t, `fun main(): i32 { return 0; }`)
	code, _, errOut := run(t, "-f", path)
	require.Equal(t, mainer.ExitCode(2), code)
	require.NotEmpty(t, errOut)
}

func TestMainRunIsUnimplemented(t *testing.T) {
	path := writeSource(t, `fun main(): i32 { return 0; }`)
	code, _, errOut := run(t, "-f", path, "--run", "--not-create-object-file")
	require.Equal(t, mainer.ExitCode(2), code)
	require.NotEmpty(t, errOut)
}

func TestMainViewFunctionGraphIsUnimplemented(t *testing.T) {
	path := writeSource(t, `fun main(): i32 { return 0; }`)
	code, _, errOut := run(t, "-f", path, "--view-function-graph", "main", "--not-create-object-file")
	require.Equal(t, mainer.ExitCode(2), code)
	require.NotEmpty(t, errOut)
}

func TestMainSaveASTAsCode(t *testing.T) {
	path := writeSource(t, `fun main(): i32 { return 0; }`)
	code, _, errOut := run(t, "-f", path, "--save-ast-as-code", "--not-create-object-file")
	require.Equal(t, mainer.Success, code, "stderr: %s", errOut)

	saved, err := os.ReadFile(path + ".ast.malin")
	require.NoError(t, err)
	require.Contains(t, string(saved), "fun main")
}
