package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpVersionsSortsAndFilters(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"0002_stock.up.sql",
		"0001_init.up.sql",
		"0001_init.down.sql",
		"notes.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.up.sql"), 0o755))

	versions, err := upVersions(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init", "0002_stock"}, versions)
}

func TestUpVersionsMissingDir(t *testing.T) {
	_, err := upVersions(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
