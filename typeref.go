package errorrules

import (
	"fmt"
	"go/token"
	"path"
	"reflect"
	"strings"
	"unicode"
)

// TypeRef identifies a Go type by import path and in-package expression.
// It is the shared currency between definitions built in Go code and
// definitions loaded from a file.
type TypeRef struct {
	// Import is the import path of the package declaring the type, or ""
	// for predeclared types such as error, string, or int.
	Import string
	// Expr is the type expression as written at a use site, for example
	// "*fs.PathError" or "int". The package qualifier is the base name of
	// Import.
	Expr string
}

// String returns the use-site type expression.
func (r TypeRef) String() string {
	return r.Expr
}

// ParseTypeRef parses a textual type reference of the form
// "[*]import/path.Name" or a bare predeclared type such as "error" or "int".
// Pointer stars may be repeated. Composite type expressions (slices, maps,
// channels) are not supported.
//
// The package qualifier in the resulting Expr is derived from the import
// path with the usual conventions: a trailing major-version element ("/v2")
// is skipped, and a dotted base such as "yaml.v3" qualifies as "yaml".
func ParseTypeRef(s string) (TypeRef, error) {
	rest := strings.TrimSpace(s)
	var stars string
	for strings.HasPrefix(rest, "*") {
		stars += "*"
		rest = rest[1:]
	}
	if rest == "" {
		return TypeRef{}, fmt.Errorf("empty type reference %q", s)
	}
	if strings.ContainsAny(rest, " \t*[]{}()<>,") {
		return TypeRef{}, fmt.Errorf("unsupported type expression %q", s)
	}

	dot := strings.LastIndexByte(rest, '.')
	slash := strings.LastIndexByte(rest, '/')
	if dot < 0 {
		if slash >= 0 {
			return TypeRef{}, fmt.Errorf("type reference %q has an import path but no type name", s)
		}
		if !token.IsIdentifier(rest) {
			return TypeRef{}, fmt.Errorf("type name %q is not a valid Go identifier", rest)
		}
		return TypeRef{Expr: stars + rest}, nil
	}
	if dot < slash {
		return TypeRef{}, fmt.Errorf("type reference %q has an import path but no type name", s)
	}

	imp, name := rest[:dot], rest[dot+1:]
	if !token.IsIdentifier(name) {
		return TypeRef{}, fmt.Errorf("type name %q is not a valid Go identifier", name)
	}
	for _, elem := range strings.Split(imp, "/") {
		if elem == "" {
			return TypeRef{}, fmt.Errorf("import path %q has an empty element", imp)
		}
	}
	return TypeRef{Import: imp, Expr: stars + pkgBaseName(imp) + "." + name}, nil
}

// pkgBaseName guesses the package name for an import path: the last path
// element, skipping a major-version suffix, cutting a dotted base at the
// first dot, and dropping characters a package identifier cannot carry
// ("error-rules" guesses as "errorrules"). Emitted code aliases the import
// whenever the guess differs from the literal base, so a guess is always
// safe to qualify with.
func pkgBaseName(imp string) string {
	base := path.Base(imp)
	if isVersionElement(base) {
		if parent := path.Base(path.Dir(imp)); parent != "." && parent != "/" {
			base = parent
		}
	}
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	var b strings.Builder
	for _, r := range base {
		if r == '_' || unicode.IsLetter(r) || (b.Len() > 0 && unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "pkg"
	}
	return b.String()
}

func isVersionElement(elem string) bool {
	if len(elem) < 2 || elem[0] != 'v' {
		return false
	}
	for i := 1; i < len(elem); i++ {
		if elem[i] < '0' || elem[i] > '9' {
			return false
		}
	}
	return true
}

// typeRefOf derives a TypeRef from a runtime type.
func typeRefOf(rt reflect.Type) TypeRef {
	var stars string
	elem := rt
	for elem.Kind() == reflect.Pointer {
		stars += "*"
		elem = elem.Elem()
	}
	if elem.Name() == "" {
		// Unnamed type. reflect's notation is close enough to a use-site
		// expression for diagnostics; code emission rejects it later.
		return TypeRef{Expr: rt.String()}
	}
	imp := elem.PkgPath()
	if imp == "" {
		return TypeRef{Expr: stars + elem.Name()}
	}
	return TypeRef{Import: imp, Expr: stars + pkgBaseName(imp) + "." + elem.Name()}
}

// SourceRef names the wrapped source type of a source-wrapping variant.
// Construct one with Source (from Go code, carrying runtime type
// information), SourceType (wrapping another compiled type), or ParseSource
// (from a definition file, emission only).
type SourceRef struct {
	ref TypeRef
	rt  reflect.Type
	typ *Type
}

// Source captures T as a wrapped source type. The resulting reference
// carries T's runtime type, so definitions using it can be compiled
// in-process as well as emitted as code.
func Source[T error]() *SourceRef {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	return &SourceRef{ref: typeRefOf(rt), rt: rt}
}

// SourceType references another compiled error type as a wrap source. All
// compiled types share one Go value type, so layering them dispatches on the
// compiled type identity rather than the dynamic Go type:
//
//	var ModError = errorrules.MustCompile(...)
//	var AppError = errorrules.MustCompile(errorrules.TypeDef{
//		...
//		Variants: []errorrules.VariantDef{
//			errorrules.FromType("Mod", ModError, ""),
//		},
//	})
func SourceType(t *Type) *SourceRef {
	return &SourceRef{ref: TypeRef{Expr: "*" + t.Name()}, typ: t}
}

// ParseSource parses a textual source type reference, for example
// "*io/fs.PathError" or "error". References built this way carry no runtime
// type: they can be emitted as code but not compiled in-process.
func ParseSource(s string) (*SourceRef, error) {
	ref, err := ParseTypeRef(s)
	if err != nil {
		return nil, err
	}
	return &SourceRef{ref: ref}, nil
}

// TypeRef returns the source's type reference.
func (r *SourceRef) TypeRef() TypeRef {
	return r.ref
}

// RuntimeType returns the captured runtime type, or nil for references
// parsed from text and for compiled-type references.
func (r *SourceRef) RuntimeType() reflect.Type {
	return r.rt
}

// CompiledType returns the referenced compiled type, or nil unless the
// reference was built with SourceType.
func (r *SourceRef) CompiledType() *Type {
	return r.typ
}

// key is the identity used for ambiguous-conversion detection. References
// built from Go code and from text agree on it for the same type. Compiled
// types key by pointer, matching how TryLift tells them apart, so two
// distinct types sharing a name stay distinct sources.
func (r *SourceRef) key() string {
	if r.typ != nil {
		return fmt.Sprintf("compiled:%p", r.typ)
	}
	return r.ref.Import + "." + r.ref.Expr
}
