package gen

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cesbo/error-rules/internal/debug"
)

// IsGenerated reports whether content begins with the generated-code
// header, meaning errgen owns the file and may rewrite it.
func IsGenerated(content []byte) bool {
	return bytes.HasPrefix(content, []byte("// Code generated "))
}

// Write writes an emitted file to path. Parent directories are created as
// needed and the write is atomic: content lands in a temporary file that is
// renamed over the target, so a crash never leaves a half-written file.
//
// An existing file is only replaced when it carries the generated-code
// header; anything else looks hand-written and is refused unless force is
// set.
func Write(path string, content []byte, force bool) error {
	debug.Debug("[gen] Writing file: %s (size: %d bytes, force: %v)", path, len(content), force)

	if existing, err := os.ReadFile(path); err == nil {
		if !IsGenerated(existing) && !force {
			return newEmitError(EmitRefusedOverwrite,
				"refusing to overwrite a file without the generated-code header (use force to override)",
				path, nil)
		}
	} else if !os.IsNotExist(err) {
		return newEmitError(EmitWriteFailed, "failed to inspect existing file", path, err)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return newEmitError(EmitWriteFailed, "failed to create parent directory", path, err)
		}
	}

	tempFile := path + ".tmp"
	debug.Debug("[gen] Creating temporary file: %s", tempFile)
	f, err := os.OpenFile(tempFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return newEmitError(EmitWriteFailed, "failed to create temporary file", path, err)
	}

	_, err = f.Write(content)
	closeErr := f.Close()

	if err != nil {
		_ = os.Remove(tempFile)
		return newEmitError(EmitWriteFailed, "failed to write file content", path, err)
	}
	if closeErr != nil {
		_ = os.Remove(tempFile)
		return newEmitError(EmitWriteFailed, "failed to close file", path, closeErr)
	}

	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return newEmitError(EmitWriteFailed, "failed to rename temporary file", path, err)
	}

	debug.Debug("[gen] File written successfully: %s", path)
	return nil
}
