package errorrules

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// status renders through fmt.Stringer.
type status int

func (s status) String() string { return fmt.Sprintf("HTTP %d", int(s)) }

// TestRenderScenarios pins the canonical rendered messages.
func TestRenderScenarios(t *testing.T) {
	app := MustCompile(TypeDef{
		Name:   "AppError",
		Prefix: "App",
		Variants: []VariantDef{
			Kind("E1", nil, "error without arguments"),
			Kind("E2", []string{"int", "string"}, "code:{} message:{}", 0, 1),
			From[enoent]("IO", ""),
		},
	})
	appIO := MustCompile(TypeDef{
		Name:     "IoError",
		Prefix:   "App IO",
		Variants: []VariantDef{From[enoent]("Any", "")},
	})
	mod := MustCompile(TypeDef{
		Name:     "ModError",
		Prefix:   "Mod",
		Variants: []VariantDef{From[enoent]("IO", "")},
	})
	layered := MustCompile(TypeDef{
		Name:     "TopError",
		Prefix:   "App",
		Variants: []VariantDef{FromType("Mod", mod, "")},
	})

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "variant without arguments",
			err:      app.Variant("E1").New(),
			expected: "App: error without arguments",
		},
		{
			name:     "variant with positional fields",
			err:      app.Variant("E2").New(404, "Not Found"),
			expected: "App: code:404 message:Not Found",
		},
		{
			name:     "dedicated wrapper type",
			err:      appIO.Lift(enoent{}),
			expected: "App IO: No such file or directory",
		},
		{
			name:     "wrapped source with default template",
			err:      app.Lift(enoent{}),
			expected: "App: No such file or directory",
		},
		{
			name:     "chained types chain their prefixes",
			err:      layered.Lift(mod.Lift(enoent{})),
			expected: "App: Mod: No such file or directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

// TestRenderFieldValues tests how payload values render inside templates.
func TestRenderFieldValues(t *testing.T) {
	typ := MustCompile(TypeDef{
		Name: "RenderError",
		Variants: []VariantDef{
			Kind("Any", []string{"any"}, "value={}", 0),
			Kind("Pair", []string{"any", "any"}, "{1} then {0}"),
			Kind("Twice", []string{"any"}, "{0} and {0}"),
		},
	})
	anyV := typ.Variant("Any")

	tests := []struct {
		name     string
		err      *Err
		expected string
	}{
		{name: "int", err: anyV.New(42), expected: "value=42"},
		{name: "string verbatim", err: anyV.New("hello {world}"), expected: "value=hello {world}"},
		{name: "bool", err: anyV.New(true), expected: "value=true"},
		{name: "nil", err: anyV.New(nil), expected: "value=<nil>"},
		{name: "error renders via Error", err: anyV.New(errors.New("boom")), expected: "value=boom"},
		{name: "stringer renders via String", err: anyV.New(status(502)), expected: "value=HTTP 502"},
		{name: "inline order reversed", err: typ.Variant("Pair").New("a", "b"), expected: "b then a"},
		{name: "field referenced twice", err: typ.Variant("Twice").New(7), expected: "7 and 7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

// TestChainDepth tests that rendering composes layer by layer: each type
// renders its own prefix once around the full text of the layer below.
func TestChainDepth(t *testing.T) {
	inner := MustCompile(TypeDef{
		Name:     "StoreError",
		Prefix:   "Store",
		Variants: []VariantDef{From[enoent]("IO", "")},
	})
	mid := MustCompile(TypeDef{
		Name:     "ModError",
		Prefix:   "Mod",
		Variants: []VariantDef{FromType("Store", inner, "")},
	})
	outer := MustCompile(TypeDef{
		Name:     "AppError",
		Prefix:   "App",
		Variants: []VariantDef{FromType("Mod", mid, "")},
	})

	e0 := inner.Lift(enoent{})
	e1 := mid.Lift(e0)
	e2 := outer.Lift(e1)

	assert.Equal(t, "Store: No such file or directory", e0.Error())
	assert.Equal(t, "Mod: "+e0.Error(), e1.Error())
	assert.Equal(t, "App: "+e1.Error(), e2.Error())
}

// TestRenderWithoutPrefix tests that a prefix-less type renders the template
// alone, so a pure wrapper is message-transparent.
func TestRenderWithoutPrefix(t *testing.T) {
	typ := MustCompile(TypeDef{
		Name:     "PassError",
		Variants: []VariantDef{From[enoent]("IO", "")},
	})
	src := enoent{}
	assert.Equal(t, src.Error(), typ.Lift(src).Error())
}

// TestRenderDeterminism tests that rendering is pure.
func TestRenderDeterminism(t *testing.T) {
	typ := MustCompile(TypeDef{
		Name:     "AppError",
		Prefix:   "App",
		Variants: []VariantDef{Kind("E2", []string{"int", "string"}, "code:{} message:{}", 0, 1)},
	})
	e := typ.Variant("E2").New(404, "Not Found")
	first := e.Error()
	for i := 0; i < 100; i++ {
		require.Equal(t, first, e.Error())
	}
}

// TestUnwrapChain tests cause exposure through errors.Is and errors.As.
func TestUnwrapChain(t *testing.T) {
	mod := MustCompile(TypeDef{
		Name:     "ModError",
		Prefix:   "Mod",
		Variants: []VariantDef{From[enoent]("IO", "")},
	})
	app := MustCompile(TypeDef{
		Name:     "AppError",
		Prefix:   "App",
		Variants: []VariantDef{FromType("Mod", mod, "")},
	})

	inner := mod.Lift(enoent{})
	outer := app.Lift(inner)

	assert.Same(t, inner, outer.Unwrap())
	assert.True(t, errors.Is(outer, inner))
	assert.True(t, errors.Is(outer, enoent{}))

	var src enoent
	assert.True(t, errors.As(outer, &src))

	custom := MustCompile(TypeDef{
		Name:     "LeafError",
		Variants: []VariantDef{Kind("E1", nil, "leaf")},
	})
	assert.Nil(t, custom.Variant("E1").New().Unwrap())
}

// TestMatch tests variant matching across chains, including through
// fmt.Errorf wrapping.
func TestMatch(t *testing.T) {
	mod := MustCompile(TypeDef{
		Name:     "ModError",
		Prefix:   "Mod",
		Variants: []VariantDef{From[enoent]("IO", "")},
	})
	app := MustCompile(TypeDef{
		Name:   "AppError",
		Prefix: "App",
		Variants: []VariantDef{
			FromType("Mod", mod, ""),
			Kind("E1", nil, "error without arguments"),
		},
	})

	modErr := mod.Lift(enoent{})
	appErr := app.Lift(modErr)

	assert.True(t, app.Variant("Mod").Match(appErr))
	assert.True(t, mod.Variant("IO").Match(appErr), "matches through the chain")
	assert.False(t, app.Variant("E1").Match(appErr))
	assert.False(t, app.Variant("Mod").Match(modErr))
	assert.False(t, app.Variant("Mod").Match(nil))
	assert.False(t, app.Variant("Mod").Match(errors.New("boom")))

	wrapped := fmt.Errorf("while starting: %w", appErr)
	assert.True(t, app.Variant("Mod").Match(wrapped))
	assert.True(t, mod.Variant("IO").Match(wrapped))
}

// TestWithNote tests traversal notes.
func TestWithNote(t *testing.T) {
	typ := MustCompile(TypeDef{
		Name:     "AppError",
		Prefix:   "App",
		Variants: []VariantDef{From[enoent]("IO", "")},
	})
	plain := typ.Lift(enoent{})

	noted := plain.WithNote(" (user config)")
	assert.Equal(t, "App (user config): No such file or directory", noted.Error())
	assert.Equal(t, "App: No such file or directory", plain.Error(), "original is unchanged")

	stacked := noted.WithNote(" (retry 2)")
	assert.Equal(t, "App (user config) (retry 2): No such file or directory", stacked.Error())

	bare := MustCompile(TypeDef{
		Name:     "BareError",
		Variants: []VariantDef{Kind("E1", nil, "stand-alone failure")},
	})
	assert.Equal(t, "stand-alone failure [job 7]",
		bare.Variant("E1").New().WithNote(" [job 7]").Error())

	assert.Equal(t, noted.Unwrap(), plain.Unwrap(), "note does not touch the cause")
}

// TestFieldsIsolation tests that payload accessors return copies.
func TestFieldsIsolation(t *testing.T) {
	typ := MustCompile(TypeDef{
		Name:     "AppError",
		Variants: []VariantDef{Kind("E2", []string{"int", "string"}, "code:{} message:{}", 0, 1)},
	})
	e := typ.Variant("E2").New(404, "Not Found")

	fields := e.Fields()
	fields[0] = 500
	assert.Equal(t, []any{404, "Not Found"}, e.Fields())
	assert.Equal(t, "code:404 message:Not Found", e.Error())
}
