package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadUsers(t *testing.T) {
	path := writeCSV(t, "username\nspez\nu/kn0thing\n")

	users, err := LoadUsers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"spez", "kn0thing"}, users)
}

func TestLoadUsersSkipsInvalidRows(t *testing.T) {
	path := writeCSV(t, "username\nok_user\nno spaces allowed\nab\n\nok_user\nanother-ok\n")

	users, err := LoadUsers(path)
	require.NoError(t, err)
	// Bad names, blanks, and duplicates all dropped.
	assert.Equal(t, []string{"ok_user", "another-ok"}, users)
}

func TestLoadUsersStripsBOM(t *testing.T) {
	path := writeCSV(t, "\uFEFFusername\nspez\n")

	users, err := LoadUsers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"spez"}, users)
}

func TestLoadUsersMissingFile(t *testing.T) {
	_, err := LoadUsers(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
