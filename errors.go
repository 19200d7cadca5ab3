package errorrules

import "fmt"

// DefErrorKind classifies definition errors.
//
// Every kind is a generation-time failure: a malformed definition never
// produces a partial type definition, and a compiled type never reports any
// of these at runtime.
type DefErrorKind int

const (
	// KindMalformedTemplate indicates a display template whose placeholder
	// markers do not line up with the declared field references.
	KindMalformedTemplate DefErrorKind = iota
	// KindFieldIndexOutOfRange indicates a template that references a field
	// index at or beyond the variant's arity.
	KindFieldIndexOutOfRange
	// KindDuplicateVariant indicates two variants sharing a name within one
	// type definition.
	KindDuplicateVariant
	// KindAmbiguousConversion indicates two source-wrapping variants that
	// declare the same wrapped source type, leaving the conversion target
	// undecidable.
	KindAmbiguousConversion
	// KindInvalidKindArity indicates a variant whose field shape contradicts
	// its kind, for example a source-wrapping variant that also declares
	// custom fields, or a type definition with no variants at all.
	KindInvalidKindArity
	// KindInvalidName indicates a type, variant, or field type name that is
	// not usable as (or not resolvable to) a Go identifier.
	KindInvalidName
	// KindUnresolvedSource indicates a source-wrapping variant whose source
	// type carries no runtime type information. Definitions loaded from a
	// definition file can only be emitted as code, not compiled in-process.
	KindUnresolvedSource
)

// String returns the human-readable kind name.
func (k DefErrorKind) String() string {
	switch k {
	case KindMalformedTemplate:
		return "malformed template"
	case KindFieldIndexOutOfRange:
		return "field index out of range"
	case KindDuplicateVariant:
		return "duplicate variant"
	case KindAmbiguousConversion:
		return "ambiguous conversion"
	case KindInvalidKindArity:
		return "invalid kind arity"
	case KindInvalidName:
		return "invalid name"
	case KindUnresolvedSource:
		return "unresolved source type"
	default:
		return "unknown"
	}
}

// DefError reports a problem with an error-type definition. It identifies
// the offending type and, when the problem is variant-local, the variant.
type DefError struct {
	// Kind classifies the error.
	Kind DefErrorKind
	// Type is the error type name from the definition ("" if unknown yet).
	Type string
	// Variant is the offending variant name ("" for type-level problems).
	Variant string
	// Template is the offending display template, if the problem is
	// template-related.
	Template string
	// Detail is the error message.
	Detail string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *DefError) Error() string {
	where := e.Type
	if where == "" {
		where = "definition"
	}
	if e.Variant != "" {
		where = fmt.Sprintf("%s, variant %s", where, e.Variant)
	}
	msg := fmt.Sprintf("%s: %s: %s", where, e.Kind, e.Detail)
	if e.Template != "" {
		msg = fmt.Sprintf("%s (template: %q)", msg, e.Template)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *DefError) Unwrap() error {
	return e.Cause
}

// newDefError creates a DefError scoped to a type and optional variant.
func newDefError(kind DefErrorKind, typeName, variant, detail string) *DefError {
	return &DefError{
		Kind:    kind,
		Type:    typeName,
		Variant: variant,
		Detail:  detail,
	}
}

// newTemplateError creates a DefError that carries the offending template.
func newTemplateError(kind DefErrorKind, template, detail string) *DefError {
	return &DefError{
		Kind:     kind,
		Template: template,
		Detail:   detail,
	}
}
