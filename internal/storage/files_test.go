package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndDelete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.Save("report.pdf", []byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))
	assert.True(t, store.Exists(path))

	assert.True(t, store.Delete(path))
	assert.False(t, store.Exists(path))
	assert.False(t, store.Delete(path), "deleting a missing file reports false")
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save("same.pdf", []byte("a"))
	require.NoError(t, err)
	second, err := store.Save("same.pdf", []byte("b"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestNewFileStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "sources")
	_, err := NewFileStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
