package app

import (
	"context"
	"path/filepath"

	"github.com/cesbo/error-rules/def"
	"github.com/cesbo/error-rules/gen"
	"github.com/cesbo/error-rules/internal/debug"
)

// GenerateOptions holds options for code generation.
type GenerateOptions struct {
	// DefsPath is the definition file to load.
	DefsPath string
	// OutputDir is the directory receiving the generated file.
	// Empty means the current directory.
	OutputDir string
	// Stdout skips the file write; the caller prints Content instead.
	Stdout bool
	// Force overwrites an existing output file that lacks the
	// generated-code header.
	Force bool
}

// GenerateResult holds the result of code generation.
type GenerateResult struct {
	// Package is the target package name.
	Package string
	// Types is the list of generated type names in declaration order.
	Types []string
	// OutputPath is the written file path. Empty when Stdout was set.
	OutputPath string
	// Content is the generated source.
	Content []byte
}

// Generate loads a definition file, emits Go source for every error type it
// declares, and writes the result to <package>_errors.go under the output
// directory.
func Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	debug.DebugSection("[app] Generate workflow start")
	debug.DebugValue("[app] Definition file", opts.DefsPath)
	debug.DebugValue("[app] Output dir", opts.OutputDir)
	debug.DebugValue("[app] Stdout", opts.Stdout)
	debug.DebugValue("[app] Force overwrite", opts.Force)

	f, err := def.Load(opts.DefsPath)
	if err != nil {
		return nil, NewLoadError("failed to load definitions", err)
	}

	content, err := gen.Emit(gen.File{Package: f.Package, Defs: f.Types})
	if err != nil {
		return nil, NewGenerateError("code generation failed", err)
	}

	result := &GenerateResult{
		Package: f.Package,
		Content: content,
	}
	for _, td := range f.Types {
		result.Types = append(result.Types, td.Name)
	}

	if opts.Stdout {
		debug.Debug("[app] Writing to stdout, skipping file output")
		return result, nil
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = "."
	}
	result.OutputPath = filepath.Join(outDir, f.Package+"_errors.go")
	debug.DebugValue("[app] Output path", result.OutputPath)

	if err := gen.Write(result.OutputPath, content, opts.Force); err != nil {
		return nil, NewGenerateError("failed to write generated file", err)
	}

	debug.Debug("[app] Generate workflow completed successfully")
	return result, nil
}
