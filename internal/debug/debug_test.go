package debug

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStderr runs fn and returns everything it wrote to stderr.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w

	fn()

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	return buf.String()
}

func TestSetDebug(t *testing.T) {
	SetDebug(false)
	assert.False(t, IsEnabled())

	SetDebug(true)
	assert.True(t, IsEnabled())

	SetDebug(false)
	assert.False(t, IsEnabled())
}

func TestDebugOutput(t *testing.T) {
	output := captureStderr(t, func() {
		SetDebug(true)
		SetNoColor(true)
		Debug("test message %s", "arg")
	})

	assert.Contains(t, output, "[DEBUG]")
	assert.Contains(t, output, "test message arg")
	assert.Contains(t, output, ":", "output should contain a timestamp")
}

func TestDebugDisabled(t *testing.T) {
	output := captureStderr(t, func() {
		SetDebug(false)
		Debug("this should not appear")
	})

	assert.Empty(t, output)
}

func TestDebugSection(t *testing.T) {
	output := captureStderr(t, func() {
		SetDebug(true)
		SetNoColor(true)
		DebugSection("Test Section")
	})

	assert.Contains(t, output, "[DEBUG]")
	assert.Contains(t, output, "=== Test Section ===")
}

func TestDebugValue(t *testing.T) {
	output := captureStderr(t, func() {
		SetDebug(true)
		SetNoColor(true)
		DebugValue("key", "value")
	})

	assert.Contains(t, output, "[DEBUG]")
	assert.Contains(t, output, "key = value")
}
