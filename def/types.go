// Package def loads error-type definitions from YAML definition files.
//
// A definition file declares one package worth of error types:
//
//	package: app
//	types:
//	  - name: AppError
//	    prefix: App
//	    variants:
//	      - name: IO
//	        wraps: "*io/fs.PathError"
//	      - name: BadStatus
//	        fields: [int, string]
//	        template: "code:{} message:{}"
//	        refs: [0, 1]
//
// The loader checks the file shape only: definition semantics (template
// validity, field bounds, conversion unambiguity) are validated by
// errorrules.Build, so file-loaded and Go-declared definitions fail with
// identical messages. Types loaded from a file carry textual source
// references and are meant for code emission (package gen), not in-process
// compilation.
package def

import (
	errorrules "github.com/cesbo/error-rules"
)

// File is a loaded definition file: the target package name and the error
// type definitions it declares, in file order.
type File struct {
	// Package is the Go package the emitted source belongs to.
	Package string
	// Path is the file the definitions were loaded from ("" for Parse).
	Path string
	// Types lists the error type definitions in declaration order.
	Types []errorrules.TypeDef
}

// FileSpec is the on-disk schema of a definition file. Decoding is strict:
// unknown keys fail.
type FileSpec struct {
	Package string     `yaml:"package"`
	Types   []TypeSpec `yaml:"types"`
}

// TypeSpec declares one error type in a definition file.
type TypeSpec struct {
	Name     string        `yaml:"name"`
	Prefix   string        `yaml:"prefix,omitempty"`
	Variants []VariantSpec `yaml:"variants"`
}

// VariantSpec declares one variant. Wraps marks a source-wrapping variant
// with the given wrapped type; Fields lists a custom-kind variant's payload
// types. The two are mutually exclusive.
type VariantSpec struct {
	Name     string   `yaml:"name"`
	Wraps    string   `yaml:"wraps,omitempty"`
	Fields   []string `yaml:"fields,omitempty,flow"`
	Template string   `yaml:"template,omitempty"`
	Refs     []int    `yaml:"refs,omitempty,flow"`
}
