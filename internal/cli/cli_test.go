package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempSource(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.liv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestExecuteMissingFileExitsSixtyFour(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Execute(nil, &stdout, &stderr)
	require.Equal(t, ExitMissingFile, code)
}

func TestExecuteDirectoryArgumentExitsSixtyFive(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Execute([]string{t.TempDir()}, &stdout, &stderr)
	require.Equal(t, ExitIsDirectory, code)
}

func TestExecuteMissingPathExitsSixtySix(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Execute([]string{filepath.Join(t.TempDir(), "nope.livy")}, &stdout, &stderr)
	require.Equal(t, ExitNoPermission, code)
}

func TestExecuteCompilesToAdjacentBytecodeFile(t *testing.T) {
	path := writeTempSource(t, "let f x = x + 1")
	var stdout, stderr bytes.Buffer

	code := Execute([]string{path}, &stdout, &stderr)
	require.Equal(t, ExitOK, code)
	require.Contains(t, stdout.String(), "wrote")

	bytecodePath := filepath.Join(filepath.Dir(path), "prog.livy")
	_, err := os.Stat(bytecodePath)
	require.NoError(t, err)
}

func TestExecuteShowTokensWritesToStdout(t *testing.T) {
	path := writeTempSource(t, "let x = 1")
	var stdout, stderr bytes.Buffer

	code := Execute([]string{"--lex", path}, &stdout, &stderr)
	require.Equal(t, ExitOK, code)
	require.Contains(t, stdout.String(), "let")
}

func TestExecuteVersionFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Execute([]string{"--version"}, &stdout, &stderr)
	require.Equal(t, ExitOK, code)
	require.Contains(t, stdout.String(), Version)
}

func TestExecuteReportsCompileErrorButStillExitsZero(t *testing.T) {
	path := writeTempSource(t, "let x = 1 + True")
	var stdout, stderr bytes.Buffer

	code := Execute([]string{path}, &stdout, &stderr)
	require.Equal(t, ExitOK, code)
	require.Contains(t, stdout.String(), "TypeMismatch")
}

func TestExecuteInvalidReportFormatIsRejected(t *testing.T) {
	path := writeTempSource(t, "let x = 1")
	var stdout, stderr bytes.Buffer

	code := Execute([]string{"--report-fmt", "xml", path}, &stdout, &stderr)
	require.NotEqual(t, ExitOK, code)
	require.Contains(t, stderr.String(), "report-fmt")
}
