package errorrules

import (
	"fmt"
	"strings"
)

// Err is an error value produced by a compiled Type. It renders through the
// variant's display template, participates in errors.Is/As chains via
// Unwrap, and is immutable: WithNote returns a copy.
type Err struct {
	variant *Variant
	fields  []any
	note    string
}

// Variant returns the variant that produced this error.
func (e *Err) Variant() *Variant { return e.variant }

// Fields returns a copy of the payload fields in positional order.
func (e *Err) Fields() []any {
	out := make([]any, len(e.fields))
	copy(out, e.fields)
	return out
}

// WithNote returns a copy of the error with note appended verbatim to the
// prefix (or, for a prefix-less type, to the rendered message). Notes mark
// which traversal of a shared error path produced the value:
//
//	err := openConfig.Wrap(cause).WithNote(" (user config)")
func (e *Err) WithNote(note string) *Err {
	clone := *e
	clone.note += note
	return &clone
}

// Error renders the message: the type prefix (with any notes), then the
// variant's template with field references replaced by their rendered
// values. Wrapped errors render through their own Error method, so chained
// types concatenate naturally:
//
//	App: Mod: No such file or directory
func (e *Err) Error() string {
	var b strings.Builder
	prefix := e.variant.typ.desc.prefix
	if prefix != "" {
		b.WriteString(prefix)
		b.WriteString(e.note)
		b.WriteString(": ")
	}
	for _, seg := range e.variant.desc.segments {
		if seg.IsField() {
			b.WriteString(renderField(e.fields[seg.Field]))
			continue
		}
		b.WriteString(seg.Literal)
	}
	if prefix == "" {
		b.WriteString(e.note)
	}
	return b.String()
}

// Unwrap returns the wrapped source error for source-wrapping variants and
// nil for custom kinds, making the cause chain visible to errors.Is and
// errors.As.
func (e *Err) Unwrap() error {
	if e.variant.desc.kind != SourceWrap {
		return nil
	}
	return e.fields[0].(error)
}

// renderField renders one payload value for display. Errors and Stringers
// render through their own methods; everything else goes through fmt.
func renderField(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

// unwrapOne steps one link down an error chain.
func unwrapOne(err error) error {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	return u.Unwrap()
}
