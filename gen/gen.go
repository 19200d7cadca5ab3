// Package gen emits error-type definitions as plain Go source.
//
// It is the second synthesizer back-end: the same validated descriptors that
// drive in-process compilation (errorrules.Compile) can instead be rendered
// as a generated file containing a tagged-union error type per definition,
// with the display templates inlined into an Error method, cause exposure
// via Unwrap, and one typed conversion function per wrapped source type.
// Rendering happens entirely at generation time: the emitted code performs
// no template interpretation.
package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"path"
	"sort"
	"strconv"
	"strings"

	errorrules "github.com/cesbo/error-rules"
	"github.com/cesbo/error-rules/internal/debug"
)

// Header is the marker line opening every emitted file. The writer refuses
// to overwrite files that do not carry it.
const Header = "// Code generated by errgen. DO NOT EDIT."

// File describes one output file: the target package name and the error
// type definitions to emit, in order.
type File struct {
	// Package is the Go package the emitted source belongs to.
	Package string
	// Defs lists the error type definitions.
	Defs []errorrules.TypeDef
}

// Emit validates every definition and renders the generated source. The
// output is gofmt-formatted and deterministic: identical input produces
// identical bytes. Definition problems surface as *errorrules.DefError,
// exactly as the runtime back-end reports them; emission-specific problems
// (package name, identifier and import conflicts) surface as *EmitError.
func Emit(f File) ([]byte, error) {
	debug.Debug("[gen] Emitting %d type(s) into package %q", len(f.Defs), f.Package)

	if !token.IsIdentifier(f.Package) {
		return nil, newEmitError(EmitInvalidPackage,
			fmt.Sprintf("package name %q is not a valid Go identifier", f.Package), "", nil)
	}

	descs := make([]*errorrules.Descriptor, 0, len(f.Defs))
	seen := make(map[string]bool, len(f.Defs))
	for _, def := range f.Defs {
		desc, err := errorrules.Build(def)
		if err != nil {
			return nil, err
		}
		if seen[desc.Name()] {
			return nil, newEmitError(EmitDuplicateType,
				fmt.Sprintf("type %s is defined more than once", desc.Name()), "", nil)
		}
		seen[desc.Name()] = true
		descs = append(descs, desc)
	}

	imports, err := collectImports(descs)
	if err != nil {
		return nil, err
	}
	if err := checkIdentifiers(descs, imports); err != nil {
		return nil, err
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "%s\n\npackage %s\n\n", Header, f.Package)
	writeImports(&b, imports)
	for _, desc := range descs {
		emitType(&b, desc)
	}

	src, err := format.Source(b.Bytes())
	if err != nil {
		// Anything the builder accepts should format; keep the raw source
		// in the message for triage.
		return nil, newEmitError(EmitFormatFailed,
			fmt.Sprintf("generated source failed formatting:\n%s", b.String()), "", err)
	}
	debug.Debug("[gen] Emitted %d bytes", len(src))
	return src, nil
}

// collectImports gathers the import paths referenced by source and field
// types across all definitions, keyed by path with the package qualifier as
// value. Two paths competing for one qualifier is an emission error: the
// generated file could not name both types.
func collectImports(descs []*errorrules.Descriptor) (map[string]string, error) {
	imports := make(map[string]string)
	quals := make(map[string]string)

	add := func(ref errorrules.TypeRef) error {
		if err := checkExpr(ref); err != nil {
			return err
		}
		if ref.Import == "" {
			return nil
		}
		q := exprQualifier(ref.Expr)
		if prev, ok := quals[q]; ok && prev != ref.Import {
			return newEmitError(EmitImportConflict,
				fmt.Sprintf("imports %s and %s both want package name %s", prev, ref.Import, q), "", nil)
		}
		quals[q] = ref.Import
		imports[ref.Import] = q
		return nil
	}

	needFmt := false
	for _, d := range descs {
		for _, v := range d.Variants() {
			for _, ref := range v.Fields() {
				if err := add(ref); err != nil {
					return nil, err
				}
			}
			for _, seg := range v.Segments() {
				if seg.IsField() {
					needFmt = true
				}
			}
		}
	}
	if needFmt {
		if err := add(errorrules.TypeRef{Import: "fmt", Expr: "fmt.Sprintf"}); err != nil {
			return nil, err
		}
	}
	return imports, nil
}

// checkExpr rejects type expressions that cannot appear in a generated
// signature, such as reflect's rendering of unnamed types.
func checkExpr(ref errorrules.TypeRef) error {
	expr := strings.TrimLeft(ref.Expr, "*")
	qual, name, qualified := strings.Cut(expr, ".")
	if !qualified {
		name, qual = qual, ""
	}
	if (qual != "" && !token.IsIdentifier(qual)) || !token.IsIdentifier(name) {
		return newEmitError(EmitUnsupportedType,
			fmt.Sprintf("type expression %q cannot be used in generated code", ref.Expr), "", nil)
	}
	return nil
}

// exprQualifier extracts the package qualifier from a use-site expression,
// "" for predeclared and same-package types.
func exprQualifier(expr string) string {
	expr = strings.TrimLeft(expr, "*")
	if i := strings.IndexByte(expr, '.'); i >= 0 {
		return expr[:i]
	}
	return ""
}

// checkIdentifiers rejects collisions among the package-level identifiers
// the file will declare: import qualifiers, each type with its kind type and
// variant constants, and the typed entry points. Concatenating type and
// variant names can spell one identifier twice, and format.Source is
// syntax-only, so a redeclaration would pass through it. Predeclared names
// the generated code relies on are reserved outright.
func checkIdentifiers(descs []*errorrules.Descriptor, imports map[string]string) error {
	made := make(map[string]string)
	for _, pre := range []string{"any", "error", "int", "iota", "nil", "string"} {
		made[pre] = "predeclared " + pre
	}
	claim := func(ident, what string) error {
		if prev, ok := made[ident]; ok {
			return newEmitError(EmitIdentifierConflict,
				fmt.Sprintf("%s and %s collide on identifier %s", prev, what, ident), "", nil)
		}
		made[ident] = what
		return nil
	}

	paths := make([]string, 0, len(imports))
	for p := range imports {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		if err := claim(imports[p], "import "+p); err != nil {
			return err
		}
	}

	for _, d := range descs {
		name := d.Name()
		if err := claim(name, "type "+name); err != nil {
			return err
		}
		if err := claim(name+"Kind", "the kind type of "+name); err != nil {
			return err
		}
		for _, v := range d.Variants() {
			vn := name + "." + v.Name()
			if err := claim(name+v.Name(), "the constant of "+vn); err != nil {
				return err
			}
			if v.Kind() == errorrules.SourceWrap {
				if err := claim(name+"From"+v.Name(), "the conversion for "+vn); err != nil {
					return err
				}
				continue
			}
			if err := claim("New"+name+v.Name(), "the constructor for "+vn); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeImports(b *bytes.Buffer, imports map[string]string) {
	if len(imports) == 0 {
		return
	}
	paths := make([]string, 0, len(imports))
	for p := range imports {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	if len(paths) == 1 {
		fmt.Fprintf(b, "import %s\n\n", importLine(paths[0], imports[paths[0]]))
		return
	}
	b.WriteString("import (\n")
	for _, p := range paths {
		fmt.Fprintf(b, "\t%s\n", importLine(p, imports[p]))
	}
	b.WriteString(")\n\n")
}

// importLine renders one import spec, aliased whenever the package
// qualifier differs from the literal path base.
func importLine(p, qualifier string) string {
	if path.Base(p) == qualifier {
		return strconv.Quote(p)
	}
	return qualifier + " " + strconv.Quote(p)
}

// emitType renders one error type: the kind discriminant, the value struct,
// the three behaviors, and the typed entry points.
func emitType(b *bytes.Buffer, d *errorrules.Descriptor) {
	name := d.Name()
	kindType := name + "Kind"
	variants := d.Variants()
	debug.Debug("[gen] Emitting type %s (%d variants)", name, len(variants))

	fmt.Fprintf(b, "// %s discriminates the variants of %s.\n", kindType, name)
	fmt.Fprintf(b, "type %s int\n\n", kindType)
	b.WriteString("const (\n")
	for i, v := range variants {
		if i == 0 {
			fmt.Fprintf(b, "\t%s%s %s = iota\n", name, v.Name(), kindType)
		} else {
			fmt.Fprintf(b, "\t%s%s\n", name, v.Name())
		}
	}
	b.WriteString(")\n\n")

	b.WriteString("// String returns the variant name.\n")
	fmt.Fprintf(b, "func (k %s) String() string {\n\tswitch k {\n", kindType)
	for _, v := range variants {
		fmt.Fprintf(b, "\tcase %s%s:\n\t\treturn %q\n", name, v.Name(), v.Name())
	}
	fmt.Fprintf(b, "\tdefault:\n\t\treturn %q\n\t}\n}\n\n", "unknown")

	fmt.Fprintf(b, "// %s is a generated error type. Construct values through the New%s*\n", name, name)
	fmt.Fprintf(b, "// constructors and the %sFrom* conversion functions.\n", name)
	fmt.Fprintf(b, "type %s struct {\n\tkind %s\n\targs []any\n}\n\n", name, kindType)

	b.WriteString("// Kind returns the variant discriminant.\n")
	fmt.Fprintf(b, "func (e *%s) Kind() %s { return e.kind }\n\n", name, kindType)

	b.WriteString("// Error implements the error interface.\n")
	fmt.Fprintf(b, "func (e *%s) Error() string {\n\tswitch e.kind {\n", name)
	for _, v := range variants {
		fmt.Fprintf(b, "\tcase %s%s:\n\t\treturn %s\n", name, v.Name(), renderExpr(d.Prefix(), v))
	}
	b.WriteString("\tdefault:\n\t\treturn \"\"\n\t}\n}\n\n")

	var wrapCases []string
	for _, v := range variants {
		if v.Kind() == errorrules.SourceWrap {
			wrapCases = append(wrapCases, name+v.Name())
		}
	}
	b.WriteString("// Unwrap returns the wrapped source error, or nil for variants that do\n// not wrap one.\n")
	fmt.Fprintf(b, "func (e *%s) Unwrap() error {\n", name)
	if len(wrapCases) == 0 {
		b.WriteString("\treturn nil\n}\n\n")
	} else {
		// Comma-ok: a declared source type is not required to implement
		// error, and errors.Unwrap must not panic on such a value.
		fmt.Fprintf(b, "\tswitch e.kind {\n\tcase %s:\n\t\tif src, ok := e.args[0].(error); ok {\n\t\t\treturn src\n\t\t}\n\t}\n\treturn nil\n}\n\n",
			strings.Join(wrapCases, ", "))
	}

	for _, v := range variants {
		if v.Kind() == errorrules.SourceWrap {
			src := v.Source().TypeRef().Expr
			fmt.Fprintf(b, "// %sFrom%s converts a %s into the %s variant of %s.\n", name, v.Name(), src, v.Name(), name)
			fmt.Fprintf(b, "func %sFrom%s(src %s) *%s {\n", name, v.Name(), src, name)
			fmt.Fprintf(b, "\treturn &%s{kind: %s%s, args: []any{src}}\n}\n\n", name, name, v.Name())
			continue
		}
		params := make([]string, 0, v.Arity())
		args := make([]string, 0, v.Arity())
		for i, ref := range v.Fields() {
			params = append(params, fmt.Sprintf("a%d %s", i, ref.Expr))
			args = append(args, fmt.Sprintf("a%d", i))
		}
		fmt.Fprintf(b, "// New%s%s constructs the %s variant of %s.\n", name, v.Name(), v.Name(), name)
		fmt.Fprintf(b, "func New%s%s(%s) *%s {\n", name, v.Name(), strings.Join(params, ", "), name)
		if len(args) == 0 {
			fmt.Fprintf(b, "\treturn &%s{kind: %s%s}\n}\n\n", name, name, v.Name())
		} else {
			fmt.Fprintf(b, "\treturn &%s{kind: %s%s, args: []any{%s}}\n}\n\n", name, name, v.Name(), strings.Join(args, ", "))
		}
	}
}

// renderExpr builds the Go expression producing a variant's rendered
// message. Templates without field references become string constants;
// everything else becomes one fmt.Sprintf call, with "%v" standing in for
// each field so errors and Stringers render through their own methods.
func renderExpr(prefix string, v *errorrules.VariantDescriptor) string {
	var raw, formatStr strings.Builder
	var args []string
	if prefix != "" {
		raw.WriteString(prefix + ": ")
		formatStr.WriteString(escapePercent(prefix) + ": ")
	}
	for _, seg := range v.Segments() {
		if seg.IsField() {
			formatStr.WriteString("%v")
			args = append(args, fmt.Sprintf("e.args[%d]", seg.Field))
			continue
		}
		raw.WriteString(seg.Literal)
		formatStr.WriteString(escapePercent(seg.Literal))
	}
	if len(args) == 0 {
		return strconv.Quote(raw.String())
	}
	return fmt.Sprintf("fmt.Sprintf(%s, %s)", strconv.Quote(formatStr.String()), strings.Join(args, ", "))
}

func escapePercent(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
