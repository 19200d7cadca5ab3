package app

import (
	"context"

	errorrules "github.com/cesbo/error-rules"
	"github.com/cesbo/error-rules/def"
	"github.com/cesbo/error-rules/gen"
	"github.com/cesbo/error-rules/internal/debug"
)

// VetOptions holds options for definition vetting.
type VetOptions struct {
	// DefsPath is the definition file to check.
	DefsPath string
}

// TypeReport is the vet outcome for a single error type definition.
type TypeReport struct {
	// Name is the error type name.
	Name string
	// Err is the validation failure, or nil when the definition is valid.
	Err error
}

// VetResult holds the result of vetting a definition file.
type VetResult struct {
	// Package is the target package name.
	Package string
	// Types is the per-type outcome, in declaration order.
	Types []TypeReport
	// FileErr is a file-level problem not attributable to a single type,
	// such as a duplicate type name or an import conflict.
	FileErr error
}

// Ok reports whether every definition passed.
func (r *VetResult) Ok() bool {
	if r.FileErr != nil {
		return false
	}
	for _, t := range r.Types {
		if t.Err != nil {
			return false
		}
	}
	return true
}

// Vet validates every error type in a definition file. Unlike Generate it
// does not stop at the first invalid definition: each type is checked
// independently so the caller can report all failures at once.
func Vet(ctx context.Context, opts VetOptions) (*VetResult, error) {
	debug.DebugSection("[app] Vet workflow start")
	debug.DebugValue("[app] Definition file", opts.DefsPath)

	f, err := def.Load(opts.DefsPath)
	if err != nil {
		return nil, NewLoadError("failed to load definitions", err)
	}

	result := &VetResult{Package: f.Package}
	valid := true
	for _, td := range f.Types {
		_, err := errorrules.Build(td)
		if err != nil {
			valid = false
		}
		result.Types = append(result.Types, TypeReport{Name: td.Name, Err: err})
	}

	// File-level checks (duplicate type names, colliding identifiers and
	// imports, package name) only make sense once every individual
	// definition builds.
	if valid {
		if _, err := gen.Emit(gen.File{Package: f.Package, Defs: f.Types}); err != nil {
			result.FileErr = err
		}
	}

	debug.DebugValue("[app] Definitions valid", result.Ok())
	return result, nil
}
