package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backupCmd(t *testing.T, rootOpts *RootOptions, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewBackupCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestBackupExportThenImport(t *testing.T) {
	src := newTestRootOptions(t)

	_, err := studentCmd(t, src, "add", "--name", "Maria Souza")
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "snapshot.json")
	out, err := backupCmd(t, src, "export", "-o", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 students")

	// Import into a second, empty database.
	dst := newTestRootOptions(t)
	out, err = backupCmd(t, dst, "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 students")

	listed, err := studentCmd(t, dst, "list")
	require.NoError(t, err)
	assert.Contains(t, listed, "Maria Souza")
}

func TestBackupExport_Stdout(t *testing.T) {
	rootOpts := newTestRootOptions(t)

	out, err := backupCmd(t, rootOpts, "export")
	require.NoError(t, err)
	assert.Contains(t, out, `"version": 1`)
	assert.Contains(t, out, `"exportedAt"`)
}

func TestBackupImport_MissingVersion(t *testing.T) {
	rootOpts := newTestRootOptions(t)

	file := filepath.Join(t.TempDir(), "legacy.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"students": [], "records": []}`), 0o644))

	_, err := backupCmd(t, rootOpts, "import", file)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	// Nothing was written.
	listed, err := studentCmd(t, rootOpts, "list")
	require.NoError(t, err)
	assert.Contains(t, listed, "No students yet")
}

func TestBackupImport_MalformedFile(t *testing.T) {
	rootOpts := newTestRootOptions(t)

	file := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(file, []byte("{not json"), 0o644))

	_, err := backupCmd(t, rootOpts, "import", file)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestBackupImport_MissingFile(t *testing.T) {
	rootOpts := newTestRootOptions(t)

	_, err := backupCmd(t, rootOpts, "import", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
