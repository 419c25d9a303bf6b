package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportCmd(t *testing.T, rootOpts *RootOptions, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewReportCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestReportDay(t *testing.T) {
	rootOpts := newTestRootOptions(t)

	_, err := studentCmd(t, rootOpts, "add", "--name", "Maria Souza")
	require.NoError(t, err)
	students, err := studentCmd(t, rootOpts, "list")
	require.NoError(t, err)
	id := firstField(students)

	_, err = recordCmd(t, rootOpts, "save",
		"--student", id, "--date", "2026-08-31", "--score", "assiduidade=5")
	require.NoError(t, err)

	out, err := reportCmd(t, rootOpts, "day", "--date", "2026-08-31")
	require.NoError(t, err)
	assert.Contains(t, out, "Boletim do Dia")
	assert.Contains(t, out, "Maria Souza")
	assert.Contains(t, out, "Score: 5/30")
}

func TestReportDay_WritesFile(t *testing.T) {
	rootOpts := newTestRootOptions(t)

	file := filepath.Join(t.TempDir(), "boletim.txt")
	out, err := reportCmd(t, rootOpts, "day", "--date", "2026-08-31", "-o", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote ")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Boletim do Dia")
	assert.Contains(t, string(data), "Sem registros.")
}

func TestReportStudent_NotFound(t *testing.T) {
	rootOpts := newTestRootOptions(t)

	_, err := reportCmd(t, rootOpts, "student", "--student", "missing")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "not found")
}

func TestReportCase_NoCaseRegistered(t *testing.T) {
	rootOpts := newTestRootOptions(t)

	out, err := reportCmd(t, rootOpts, "case", "--group", "G1", "--date", "2026-08-31")
	require.NoError(t, err)
	assert.Contains(t, out, "Sem caso registrado.")
}

// firstField extracts the id column of the first roster line.
func firstField(listing string) string {
	fields := bytes.Fields([]byte(listing))
	if len(fields) == 0 {
		return ""
	}
	return string(fields[0])
}
