package def

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	errorrules "github.com/cesbo/error-rules"
	"github.com/cesbo/error-rules/internal/debug"
)

// Load loads a definition file from the specified path.
func Load(path string) (*File, error) {
	debug.Debug("[def] Loading definition file: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewDefFileErrorWithCause(DefFileNotFound, path, "definition file not found", err)
		}
		return nil, NewDefFileErrorWithCause(DefFileInvalid, path, "failed to read definition file", err)
	}

	f, err := parse(data, path)
	if err != nil {
		return nil, err
	}
	f.Path = path

	debug.Debug("[def] Loaded %d type definition(s) for package %q", len(f.Types), f.Package)
	return f, nil
}

// Parse parses definition file content. Unknown keys are rejected, so a
// misspelled field fails loudly instead of silently dropping a variant
// attribute.
func Parse(data []byte) (*File, error) {
	return parse(data, "")
}

func parse(data []byte, path string) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var spec FileSpec
	if err := dec.Decode(&spec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, NewDefFileError(DefFileValidationFailed, path, "definition file is empty")
		}
		return nil, NewDefFileErrorWithCause(DefFileInvalid, path, "invalid YAML syntax", err)
	}
	return resolve(spec, path)
}

// Resolve converts a schema value into a loaded file, checking the same
// file shape the loader checks.
func (s FileSpec) Resolve() (*File, error) {
	return resolve(s, "")
}

func resolve(spec FileSpec, path string) (*File, error) {
	if spec.Package == "" {
		return nil, NewDefFileErrorWithField(DefFileValidationFailed, path, "package", "package name is required")
	}
	if len(spec.Types) == 0 {
		return nil, NewDefFileErrorWithField(DefFileValidationFailed, path, "types", "at least one type definition is required")
	}

	f := &File{Package: spec.Package}
	for i, t := range spec.Types {
		def, err := typeDefFromSpec(t, i, path)
		if err != nil {
			return nil, err
		}
		f.Types = append(f.Types, def)
	}
	return f, nil
}

// typeDefFromSpec converts one file entry into a TypeDef. Only the file
// shape is checked here; definition semantics are left to errorrules.Build
// so both front-ends share one error taxonomy.
func typeDefFromSpec(t TypeSpec, index int, path string) (errorrules.TypeDef, error) {
	def := errorrules.TypeDef{Name: t.Name, Prefix: t.Prefix}

	for j, v := range t.Variants {
		vd := errorrules.VariantDef{
			Name:     v.Name,
			Fields:   v.Fields,
			Template: v.Template,
			Refs:     v.Refs,
		}
		if v.Wraps != "" {
			src, err := errorrules.ParseSource(v.Wraps)
			if err != nil {
				field := fmt.Sprintf("types[%d].variants[%d].wraps", index, j)
				return errorrules.TypeDef{}, NewDefFileErrorWithCause(DefFileValidationFailed, path,
					fmt.Sprintf("invalid source type for field %s", field), err)
			}
			vd.Source = src
		}
		def.Variants = append(def.Variants, vd)
	}
	return def, nil
}

// Encode renders a schema value as definition-file YAML, the inverse of
// Parse. Used by the init scaffold; hand-edited files remain the primary
// authoring surface.
func Encode(spec FileSpec) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(spec); err != nil {
		return nil, NewDefFileErrorWithCause(DefFileInvalid, "", "failed to encode definitions", err)
	}
	if err := enc.Close(); err != nil {
		return nil, NewDefFileErrorWithCause(DefFileInvalid, "", "failed to encode definitions", err)
	}
	return buf.Bytes(), nil
}

// Validate builds every type definition in the file, returning the first
// definition error. A file that validates emits without failures.
func Validate(f *File) error {
	if f == nil {
		return NewDefFileError(DefFileValidationFailed, "", "definition file cannot be nil")
	}
	for _, def := range f.Types {
		if _, err := errorrules.Build(def); err != nil {
			return err
		}
	}
	return nil
}
