package errorrules

import (
	"fmt"
	"reflect"
)

// Type is a compiled error type. It is immutable after Compile and safe for
// concurrent use from any number of goroutines.
type Type struct {
	desc     *Descriptor
	variants []*Variant
	byName   map[string]*Variant
	exact    map[reflect.Type]*Variant
	byType   map[*Type]*Variant
	ifaces   []*Variant
}

// Compile validates a type definition and synthesizes its runtime behavior.
// Every source-wrapping variant must have been declared with Source or
// SourceType (so the wrapped type is known at runtime); definitions parsed
// from a file can only be emitted as code.
func Compile(def TypeDef) (*Type, error) {
	desc, err := Build(def)
	if err != nil {
		return nil, err
	}

	t := &Type{
		desc:   desc,
		byName: make(map[string]*Variant, len(desc.variants)),
		exact:  make(map[reflect.Type]*Variant, len(desc.variants)),
		byType: make(map[*Type]*Variant),
	}
	for _, vd := range desc.variants {
		v := &Variant{typ: t, desc: vd}
		t.variants = append(t.variants, v)
		t.byName[vd.name] = v
		if vd.kind != SourceWrap {
			continue
		}
		if ct := vd.source.CompiledType(); ct != nil {
			t.byType[ct] = v
			continue
		}
		rt := vd.source.RuntimeType()
		if rt == nil {
			return nil, newDefError(KindUnresolvedSource, desc.name, vd.name,
				fmt.Sprintf("source type %s carries no runtime type; declare it with Source[T] or SourceType", vd.source.ref.Expr))
		}
		if rt.Kind() == reflect.Interface {
			t.ifaces = append(t.ifaces, v)
		} else {
			t.exact[rt] = v
		}
	}
	return t, nil
}

// MustCompile is Compile that panics on a definition error. Use it for
// package-level declarations, where a bad definition should halt the program
// at init rather than surface later.
func MustCompile(def TypeDef) *Type {
	t, err := Compile(def)
	if err != nil {
		panic("errorrules: " + err.Error())
	}
	return t
}

// Name returns the error type name.
func (t *Type) Name() string { return t.desc.name }

// Prefix returns the display prefix ("" when none was declared).
func (t *Type) Prefix() string { return t.desc.prefix }

// Describe returns the underlying validated descriptor.
func (t *Type) Describe() *Descriptor { return t.desc }

// Variants returns the compiled variants in declaration order.
func (t *Type) Variants() []*Variant {
	out := make([]*Variant, len(t.variants))
	copy(out, t.variants)
	return out
}

// Variant returns the named variant. It panics if no variant with that name
// exists: variant names are static in the definition, so a miss is a
// programming error, not an input error.
func (t *Type) Variant(name string) *Variant {
	v, ok := t.byName[name]
	if !ok {
		panic(fmt.Sprintf("errorrules: type %s has no variant %s", t.desc.name, name))
	}
	return v
}

// TryLift converts src into this type via its source-wrapping variants.
// Dispatch is by the most specific declared source that accepts src: a
// variant wrapping src's compiled type, then an exact match on src's dynamic
// type, then the first declared interface source that src satisfies. It
// returns false when src is nil or no variant accepts it.
func (t *Type) TryLift(src error) (*Err, bool) {
	if src == nil {
		return nil, false
	}
	if e, ok := src.(*Err); ok {
		if v, ok := t.byType[e.variant.typ]; ok {
			return v.wrap(src), true
		}
	}
	rt := reflect.TypeOf(src)
	if v, ok := t.exact[rt]; ok {
		return v.wrap(src), true
	}
	for _, v := range t.ifaces {
		if rt.Implements(v.desc.source.RuntimeType()) {
			return v.wrap(src), true
		}
	}
	return nil, false
}

// Lift is TryLift that panics when no variant accepts src. A miss means the
// error flow reached a conversion the type never declared.
func (t *Type) Lift(src error) *Err {
	e, ok := t.TryLift(src)
	if !ok {
		panic(fmt.Sprintf("errorrules: type %s declares no source-wrapping variant for %T", t.desc.name, src))
	}
	return e
}

// Variant is one compiled variant of a Type. Values are created through New
// (custom kinds) or Wrap (source wraps).
type Variant struct {
	typ  *Type
	desc *VariantDescriptor
}

// Name returns the variant name.
func (v *Variant) Name() string { return v.desc.name }

// Kind returns the variant kind.
func (v *Variant) Kind() VariantKind { return v.desc.kind }

// Arity returns the number of payload fields.
func (v *Variant) Arity() int { return v.desc.Arity() }

// Type returns the owning compiled type.
func (v *Variant) Type() *Type { return v.typ }

// Describe returns the variant's validated descriptor.
func (v *Variant) Describe() *VariantDescriptor { return v.desc }

// New constructs an error value of this variant with the given payload
// fields. It panics when the field count does not match the variant's arity,
// or when a source-wrapping variant is given a non-error payload; both are
// call-site bugs, not runtime conditions.
func (v *Variant) New(fields ...any) *Err {
	if len(fields) != v.desc.Arity() {
		panic(fmt.Sprintf("errorrules: variant %s.%s takes %d field(s), got %d",
			v.typ.desc.name, v.desc.name, v.desc.Arity(), len(fields)))
	}
	if v.desc.kind == SourceWrap {
		src, ok := fields[0].(error)
		if !ok {
			panic(fmt.Sprintf("errorrules: variant %s.%s wraps an error, got %T",
				v.typ.desc.name, v.desc.name, fields[0]))
		}
		return v.Wrap(src)
	}
	own := make([]any, len(fields))
	copy(own, fields)
	return &Err{variant: v, fields: own}
}

// Wrap constructs an error value of this source-wrapping variant around src.
// It panics on custom-kind variants, on a nil src, and when the dynamic type
// of src is not the declared source type.
func (v *Variant) Wrap(src error) *Err {
	if v.desc.kind != SourceWrap {
		panic(fmt.Sprintf("errorrules: variant %s.%s is not source-wrapping",
			v.typ.desc.name, v.desc.name))
	}
	if src == nil {
		panic(fmt.Sprintf("errorrules: variant %s.%s cannot wrap a nil error",
			v.typ.desc.name, v.desc.name))
	}
	if !v.accepts(src) {
		panic(fmt.Sprintf("errorrules: variant %s.%s wraps %s, got %T",
			v.typ.desc.name, v.desc.name, v.desc.source.ref.Expr, src))
	}
	return v.wrap(src)
}

// accepts reports whether src satisfies the variant's declared source type.
func (v *Variant) accepts(src error) bool {
	if ct := v.desc.source.CompiledType(); ct != nil {
		e, ok := src.(*Err)
		return ok && e.variant.typ == ct
	}
	rt := reflect.TypeOf(src)
	want := v.desc.source.RuntimeType()
	if want.Kind() == reflect.Interface {
		return rt.Implements(want)
	}
	return rt == want
}

func (v *Variant) wrap(src error) *Err {
	return &Err{variant: v, fields: []any{src}}
}

// Match reports whether err, or any error in its Unwrap chain, is a value of
// this variant.
func (v *Variant) Match(err error) bool {
	for err != nil {
		if e, ok := err.(*Err); ok && e.variant == v {
			return true
		}
		err = unwrapOne(err)
	}
	return false
}
