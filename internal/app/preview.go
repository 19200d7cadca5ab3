package app

import (
	"context"
	"fmt"
	"strings"

	errorrules "github.com/cesbo/error-rules"
	"github.com/cesbo/error-rules/def"
	"github.com/cesbo/error-rules/internal/debug"
)

// PreviewOptions holds options for message previewing.
type PreviewOptions struct {
	// DefsPath is the definition file to load.
	DefsPath string
	// Type restricts the preview to a single error type. Empty previews all.
	Type string
}

// VariantPreview is the rendered shape of one variant's display message.
type VariantPreview struct {
	// Name is the variant name.
	Name string
	// Kind is the variant kind.
	Kind errorrules.VariantKind
	// Sample is the display message with field placeholders.
	Sample string
}

// TypePreview groups the variant previews of one error type.
type TypePreview struct {
	// Name is the error type name.
	Name string
	// Prefix is the display prefix, if any.
	Prefix string
	// Variants is the per-variant preview, in declaration order.
	Variants []VariantPreview
}

// PreviewResult holds the result of previewing a definition file.
type PreviewResult struct {
	// Package is the target package name.
	Package string
	// Types is the per-type preview, in declaration order.
	Types []TypePreview
}

// Preview renders the display message of every variant in a definition file
// with placeholder field values, showing the message shape a real value
// would produce.
func Preview(ctx context.Context, opts PreviewOptions) (*PreviewResult, error) {
	debug.DebugSection("[app] Preview workflow start")
	debug.DebugValue("[app] Definition file", opts.DefsPath)
	debug.DebugValue("[app] Type filter", opts.Type)

	f, err := def.Load(opts.DefsPath)
	if err != nil {
		return nil, NewLoadError("failed to load definitions", err)
	}

	result := &PreviewResult{Package: f.Package}
	found := false
	for _, td := range f.Types {
		if opts.Type != "" && td.Name != opts.Type {
			continue
		}
		found = true

		desc, err := errorrules.Build(td)
		if err != nil {
			return nil, NewValidationError("invalid definition", err)
		}

		tp := TypePreview{Name: desc.Name(), Prefix: desc.Prefix()}
		for _, v := range desc.Variants() {
			tp.Variants = append(tp.Variants, VariantPreview{
				Name:   v.Name(),
				Kind:   v.Kind(),
				Sample: sampleMessage(desc.Prefix(), v),
			})
		}
		result.Types = append(result.Types, tp)
	}

	if opts.Type != "" && !found {
		return nil, NewValidationError(
			fmt.Sprintf("no type named %s in %s", opts.Type, opts.DefsPath), nil)
	}

	return result, nil
}

// sampleMessage renders a variant's display template with each field shown
// as its type expression in angle brackets, e.g. "App: IO: <*fs.PathError>".
func sampleMessage(prefix string, v *errorrules.VariantDescriptor) string {
	var b strings.Builder
	if prefix != "" {
		b.WriteString(prefix)
		b.WriteString(": ")
	}
	fields := v.Fields()
	for _, seg := range v.Segments() {
		if seg.IsField() {
			b.WriteString("<")
			b.WriteString(fields[seg.Field].String())
			b.WriteString(">")
			continue
		}
		b.WriteString(seg.Literal)
	}
	return b.String()
}
