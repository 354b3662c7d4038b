package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCreateFile ensures file creation produces any missing parent directories.
func TestCreateFile(t *testing.T) {
	nestedDir := filepath.Join(t.TempDir(), "a", "b")

	file, err := CreateFile(nestedDir, "out.txt")
	require.NoError(t, err)
	assert.NoError(t, file.Close())
	assert.FileExists(t, filepath.Join(nestedDir, "out.txt"))
}

// TestMakeDirectory ensures directory creation is idempotent and refuses paths occupied by a file.
func TestMakeDirectory(t *testing.T) {
	testDir := t.TempDir()

	target := filepath.Join(testDir, "nested", "dir")
	require.NoError(t, MakeDirectory(target))
	require.NoError(t, MakeDirectory(target))

	// A file occupying the path is an error
	occupied := filepath.Join(testDir, "occupied")
	require.NoError(t, os.WriteFile(occupied, []byte("x"), 0644))
	assert.Error(t, MakeDirectory(occupied))
}

// TestFileExists ensures only regular files count as existing.
func TestFileExists(t *testing.T) {
	testDir := t.TempDir()

	filePath := filepath.Join(testDir, "present.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0644))
	assert.True(t, FileExists(filePath))
	assert.False(t, FileExists(filepath.Join(testDir, "absent.txt")))

	// Directories are not files
	assert.False(t, FileExists(testDir))
}
