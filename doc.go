// Package errorrules compiles declarative error-type definitions into
// error types with chained display rendering and automatic conversion
// from wrapped source errors.
//
// A definition names the type, an optional display prefix, and a list of
// variants. Each variant either wraps a source error type or carries its
// own payload fields rendered through a display template. All validation
// happens when the definition is compiled: a type that compiles never
// fails to render at runtime.
//
// Define a type once at package scope and construct values at call sites:
//
//	var AppError = errorrules.MustCompile(errorrules.TypeDef{
//		Name:   "AppError",
//		Prefix: "App",
//		Variants: []errorrules.VariantDef{
//			errorrules.From[*fs.PathError]("IO", "{}", 0),
//			errorrules.Kind("BadStatus", []string{"int", "string"}, "code:{} message:{}", 0, 1),
//		},
//	})
//
//	if err := load(path); err != nil {
//		var pe *fs.PathError
//		if errors.As(err, &pe) {
//			return AppError.Lift(pe) // "App: open x.cfg: no such file or directory"
//		}
//	}
//	return AppError.Variant("BadStatus").New(404, "Not Found")
//
// Rendered messages begin with the type's prefix, so wrapping an error of
// one compiled type in another chains the prefixes:
//
//	Mod: No such file or directory
//	App: Mod: No such file or directory
//
// Source-wrapping variants expose their cause through Unwrap, so errors.Is
// and errors.As traverse the chain as usual. Variant.Match answers the
// common question directly:
//
//	if openFailed.Match(err) { ... }
//
// Definitions can also live in a YAML file (package def) and be emitted as
// plain Go source (package gen) instead of being compiled in-process; both
// front-ends feed the same validation pipeline and agree on every rendered
// message.
package errorrules
