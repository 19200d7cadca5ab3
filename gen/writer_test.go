package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWrite tests the basic write path, including parent creation.
func TestWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "app_errors.go")
	content := []byte(Header + "\n\npackage app\n")

	require.NoError(t, Write(path, content, false))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	// No temporary file left behind.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

// TestWriteReplacesGenerated tests that errgen-owned files are rewritten
// without force.
func TestWriteReplacesGenerated(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app_errors.go")

	require.NoError(t, Write(path, []byte(Header+"\n\npackage app\n\n// old\n"), false))
	updated := []byte(Header + "\n\npackage app\n\n// new\n")
	require.NoError(t, Write(path, updated, false))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

// TestWriteRefusesHandWritten tests overwrite protection.
func TestWriteRefusesHandWritten(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app_errors.go")
	original := []byte("package app\n\n// hand-written\n")
	require.NoError(t, os.WriteFile(path, original, 0644))

	err := Write(path, []byte(Header+"\n\npackage app\n"), false)
	require.Error(t, err)

	var ee *EmitError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, EmitRefusedOverwrite, ee.Type)
	assert.Equal(t, path, ee.File)

	// Refusal must not touch the file.
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, got)

	// Force overrides the check.
	forced := []byte(Header + "\n\npackage app\n")
	require.NoError(t, Write(path, forced, true))
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, forced, got)
}

// TestIsGenerated tests header detection.
func TestIsGenerated(t *testing.T) {
	assert.True(t, IsGenerated([]byte(Header+"\n\npackage app\n")))
	assert.True(t, IsGenerated([]byte("// Code generated by something else. DO NOT EDIT.\n")))
	assert.False(t, IsGenerated([]byte("package app\n")))
	assert.False(t, IsGenerated(nil))
}
