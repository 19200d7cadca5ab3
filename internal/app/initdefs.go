package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cesbo/error-rules/def"
	"github.com/cesbo/error-rules/internal/debug"
)

// InitDefsOptions holds options for definition scaffolding.
type InitDefsOptions struct {
	// Path is the definition file to create.
	Path string
	// Force overwrites an existing file.
	Force bool
	// Spec is the definition content, typically assembled from the
	// interactive prompts or DefaultSpec.
	Spec def.FileSpec
}

// DefaultSpec returns the starter definition scaffold. It demonstrates both
// placeholder styles, a source-wrapping variant, and a literal-only message.
func DefaultSpec() def.FileSpec {
	return def.FileSpec{
		Package: "app",
		Types: []def.TypeSpec{
			{
				Name:   "AppError",
				Prefix: "App",
				Variants: []def.VariantSpec{
					{
						Name:     "IO",
						Wraps:    "*io/fs.PathError",
						Template: "IO failed: {0}",
					},
					{
						Name:     "BadStatus",
						Fields:   []string{"int", "string"},
						Template: "status {}: {}",
						Refs:     []int{0, 1},
					},
					{
						Name:     "Canceled",
						Template: "operation canceled",
					},
				},
			},
		},
	}
}

// InitDefs writes a definition file scaffold. The definitions are validated
// through the full pipeline first so the written file is guaranteed to
// generate.
func InitDefs(ctx context.Context, opts InitDefsOptions) error {
	debug.DebugSection("[app] InitDefs workflow start")
	debug.DebugValue("[app] Target path", opts.Path)
	debug.DebugValue("[app] Force overwrite", opts.Force)

	if opts.Path == "" {
		return NewValidationError("definition file path cannot be empty", nil)
	}

	if _, err := os.Stat(opts.Path); err == nil && !opts.Force {
		return NewInitError(
			fmt.Sprintf("%s already exists (use --force to overwrite)", opts.Path), nil)
	}

	f, err := opts.Spec.Resolve()
	if err != nil {
		return NewValidationError("invalid definitions", err)
	}
	if err := def.Validate(f); err != nil {
		return NewValidationError("invalid definitions", err)
	}

	data, err := def.Encode(opts.Spec)
	if err != nil {
		return NewInitError("failed to encode definitions", err)
	}

	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return NewInitError("failed to create parent directory", err)
		}
	}
	if err := os.WriteFile(opts.Path, data, 0644); err != nil {
		return NewInitError("failed to write definition file", err)
	}

	debug.Debug("[app] InitDefs workflow completed successfully")
	return nil
}
