package errorrules

import (
	"fmt"
	"go/token"
)

// VariantKind tells how a variant constructs and renders itself.
type VariantKind int

const (
	// CustomKind variants carry zero or more declared fields and render
	// through their own display template.
	CustomKind VariantKind = iota
	// SourceWrap variants wrap exactly one source error value. They accept
	// automatic conversion from the source type and expose it via Unwrap.
	SourceWrap
)

// String returns the kind name.
func (k VariantKind) String() string {
	switch k {
	case SourceWrap:
		return "source-wrap"
	default:
		return "custom-kind"
	}
}

// VariantDef declares one variant of an error type. Exactly one of Source
// and Fields describes the payload: setting Source makes the variant a
// source-wrapping one (arity 1, fields implied), while Fields lists the
// payload types of a custom-kind variant in positional order.
type VariantDef struct {
	// Name is the variant name, a valid Go identifier unique within the
	// owning type definition.
	Name string
	// Source is the wrapped source type for source-wrapping variants,
	// nil otherwise.
	Source *SourceRef
	// Fields lists the payload types of a custom-kind variant, as textual
	// type references (see ParseTypeRef).
	Fields []string
	// Template is the display template. Within one variant it either uses
	// "{}" markers consuming Refs in order, or inline "{N}" markers and no
	// Refs. Source-wrapping variants may leave it empty, which defaults to
	// "{0}": render as the wrapped source alone.
	Template string
	// Refs lists the field indexes consumed by "{}" markers.
	Refs []int
}

// From declares a source-wrapping variant for source type T. With an empty
// template the variant renders as the wrapped value alone.
func From[T error](name, template string, refs ...int) VariantDef {
	return VariantDef{Name: name, Source: Source[T](), Template: template, Refs: refs}
}

// FromType declares a source-wrapping variant for another compiled type,
// layering one error type over another.
func FromType(name string, t *Type, template string, refs ...int) VariantDef {
	return VariantDef{Name: name, Source: SourceType(t), Template: template, Refs: refs}
}

// Kind declares a custom-kind variant with the given payload field types.
func Kind(name string, fields []string, template string, refs ...int) VariantDef {
	return VariantDef{Name: name, Fields: fields, Template: template, Refs: refs}
}

// TypeDef declares a whole error type: its name, an optional display prefix
// shared by all variants, and the variant list in declaration order.
type TypeDef struct {
	// Name is the error type name, a valid Go identifier.
	Name string
	// Prefix, when non-empty, is prepended to every rendered message as
	// "Prefix: ".
	Prefix string
	// Variants lists the variant declarations. Order matters: conversion
	// dispatch prefers earlier variants when several interface sources
	// match.
	Variants []VariantDef
}

// VariantDescriptor is the validated form of one variant. All template and
// arity checking has already happened; consumers can render and emit without
// further validation.
type VariantDescriptor struct {
	name     string
	kind     VariantKind
	fields   []TypeRef
	source   *SourceRef
	template string
	segments []Segment
}

// Name returns the variant name.
func (d *VariantDescriptor) Name() string { return d.name }

// Kind returns the variant kind.
func (d *VariantDescriptor) Kind() VariantKind { return d.kind }

// Arity returns the number of payload fields. Source-wrapping variants
// always have arity 1.
func (d *VariantDescriptor) Arity() int { return len(d.fields) }

// Fields returns the payload field types in positional order. For a
// source-wrapping variant this is the single source type.
func (d *VariantDescriptor) Fields() []TypeRef {
	out := make([]TypeRef, len(d.fields))
	copy(out, d.fields)
	return out
}

// Source returns the wrapped source reference, or nil for custom kinds.
func (d *VariantDescriptor) Source() *SourceRef { return d.source }

// Template returns the display template after defaulting.
func (d *VariantDescriptor) Template() string { return d.template }

// Segments returns the parsed display template.
func (d *VariantDescriptor) Segments() []Segment {
	out := make([]Segment, len(d.segments))
	copy(out, d.segments)
	return out
}

// Descriptor is the validated form of a TypeDef. It is immutable and safe
// for concurrent use.
type Descriptor struct {
	name     string
	prefix   string
	variants []*VariantDescriptor
}

// Name returns the error type name.
func (d *Descriptor) Name() string { return d.name }

// Prefix returns the display prefix ("" when none was declared).
func (d *Descriptor) Prefix() string { return d.prefix }

// Variants returns the variant descriptors in declaration order.
func (d *Descriptor) Variants() []*VariantDescriptor {
	out := make([]*VariantDescriptor, len(d.variants))
	copy(out, d.variants)
	return out
}

// Build validates a type definition and assembles its descriptor. It
// applies the whole validation pipeline: names, kinds and arities, template
// parsing, field index bounds, variant uniqueness, and conversion
// unambiguity. A definition that passes Build renders and emits without
// runtime failures.
func Build(def TypeDef) (*Descriptor, error) {
	if !token.IsIdentifier(def.Name) {
		return nil, newDefError(KindInvalidName, def.Name, "",
			fmt.Sprintf("type name %q is not a valid Go identifier", def.Name))
	}
	if len(def.Variants) == 0 {
		return nil, newDefError(KindInvalidKindArity, def.Name, "",
			"type declares no variants")
	}

	seen := make(map[string]struct{}, len(def.Variants))
	sources := make(map[string]string)
	variants := make([]*VariantDescriptor, 0, len(def.Variants))

	for _, v := range def.Variants {
		if !token.IsIdentifier(v.Name) {
			return nil, newDefError(KindInvalidName, def.Name, v.Name,
				fmt.Sprintf("variant name %q is not a valid Go identifier", v.Name))
		}
		if _, dup := seen[v.Name]; dup {
			return nil, newDefError(KindDuplicateVariant, def.Name, v.Name,
				fmt.Sprintf("variant %s is declared more than once", v.Name))
		}
		seen[v.Name] = struct{}{}

		vd := &VariantDescriptor{name: v.Name}
		if v.Source != nil {
			if len(v.Fields) > 0 {
				return nil, newDefError(KindInvalidKindArity, def.Name, v.Name,
					"source-wrapping variant must not declare custom fields")
			}
			vd.kind = SourceWrap
			vd.source = v.Source
			vd.fields = []TypeRef{v.Source.ref}
		} else {
			vd.kind = CustomKind
			vd.fields = make([]TypeRef, 0, len(v.Fields))
			for i, tag := range v.Fields {
				ref, err := ParseTypeRef(tag)
				if err != nil {
					return nil, newDefError(KindInvalidName, def.Name, v.Name,
						fmt.Sprintf("field %d: %v", i, err))
				}
				vd.fields = append(vd.fields, ref)
			}
		}

		template := v.Template
		if template == "" {
			if vd.kind == SourceWrap && len(v.Refs) == 0 {
				// Render as the wrapped source alone.
				template = "{0}"
			} else if vd.kind == CustomKind {
				de := newDefError(KindMalformedTemplate, def.Name, v.Name,
					"variant requires a display template")
				return nil, de
			}
		}
		segments, err := parseTemplate(template, v.Refs)
		if err != nil {
			de := err.(*DefError)
			de.Type = def.Name
			de.Variant = v.Name
			return nil, de
		}
		arity := len(vd.fields)
		for _, seg := range segments {
			if seg.IsField() && seg.Field >= arity {
				de := newDefError(KindFieldIndexOutOfRange, def.Name, v.Name,
					fmt.Sprintf("template references field %d but the variant has %d field(s)", seg.Field, arity))
				de.Template = template
				return nil, de
			}
		}
		vd.template = template
		vd.segments = segments

		if vd.kind == SourceWrap {
			key := v.Source.key()
			if prev, ok := sources[key]; ok {
				return nil, newDefError(KindAmbiguousConversion, def.Name, v.Name,
					fmt.Sprintf("source type %s is already wrapped by variant %s", v.Source.ref.Expr, prev))
			}
			sources[key] = v.Name
		}
		variants = append(variants, vd)
	}

	return &Descriptor{name: def.Name, prefix: def.Prefix, variants: variants}, nil
}
