package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errorrules "github.com/cesbo/error-rules"
	"github.com/cesbo/error-rules/def"
	"github.com/cesbo/error-rules/gen"
)

const appDefs = `package: app
types:
  - name: AppError
    prefix: App
    variants:
      - name: IO
        wraps: "*io/fs.PathError"
        template: "IO: {0}"
      - name: BadStatus
        fields: [int, string]
        template: "code:{} message:{}"
        refs: [0, 1]
`

// writeDefs writes a definition file into a fresh temp dir and returns its path.
func writeDefs(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "errors.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestGenerate(t *testing.T) {
	outDir := t.TempDir()
	result, err := Generate(context.Background(), GenerateOptions{
		DefsPath:  writeDefs(t, appDefs),
		OutputDir: outDir,
	})
	require.NoError(t, err)

	assert.Equal(t, "app", result.Package)
	assert.Equal(t, []string{"AppError"}, result.Types)
	assert.Equal(t, filepath.Join(outDir, "app_errors.go"), result.OutputPath)

	written, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, result.Content, written)
	assert.Contains(t, string(written), gen.Header)
	assert.Contains(t, string(written), "func NewAppErrorBadStatus(a0 int, a1 string) *AppError {")
}

func TestGenerateStdout(t *testing.T) {
	result, err := Generate(context.Background(), GenerateOptions{
		DefsPath: writeDefs(t, appDefs),
		Stdout:   true,
	})
	require.NoError(t, err)

	assert.Empty(t, result.OutputPath)
	assert.Contains(t, string(result.Content), "type AppError struct {")
}

func TestGenerateLoadFailure(t *testing.T) {
	_, err := Generate(context.Background(), GenerateOptions{
		DefsPath: filepath.Join(t.TempDir(), "missing.yaml"),
	})
	require.Error(t, err)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, LoadFailed, appErr.Type)
}

func TestGenerateEmitFailure(t *testing.T) {
	// The loader accepts any non-empty package name; the emitter rejects
	// names that are not Go identifiers.
	_, err := Generate(context.Background(), GenerateOptions{
		DefsPath: writeDefs(t, "package: 123bad\ntypes:\n  - name: E\n    variants:\n      - name: V\n        template: boom\n"),
		Stdout:   true,
	})
	require.Error(t, err)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, GenerateFailed, appErr.Type)
}

func TestGenerateRefusesHandWrittenOutput(t *testing.T) {
	outDir := t.TempDir()
	target := filepath.Join(outDir, "app_errors.go")
	require.NoError(t, os.WriteFile(target, []byte("package app\n\n// hand written\n"), 0644))

	opts := GenerateOptions{DefsPath: writeDefs(t, appDefs), OutputDir: outDir}
	_, err := Generate(context.Background(), opts)
	require.Error(t, err)

	var emitErr *gen.EmitError
	require.ErrorAs(t, err, &emitErr)
	assert.Equal(t, gen.EmitRefusedOverwrite, emitErr.Type)

	opts.Force = true
	result, err := Generate(context.Background(), opts)
	require.NoError(t, err)
	written, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(written), gen.Header)
}

func TestVet(t *testing.T) {
	result, err := Vet(context.Background(), VetOptions{DefsPath: writeDefs(t, appDefs)})
	require.NoError(t, err)

	assert.True(t, result.Ok())
	assert.Equal(t, "app", result.Package)
	require.Len(t, result.Types, 1)
	assert.Equal(t, "AppError", result.Types[0].Name)
	assert.NoError(t, result.Types[0].Err)
	assert.NoError(t, result.FileErr)
}

func TestVetReportsEveryType(t *testing.T) {
	defs := `package: app
types:
  - name: GoodError
    variants:
      - name: Plain
        template: all good
  - name: BadError
    variants:
      - name: Oops
        fields: [int]
        template: "value {3}"
`
	result, err := Vet(context.Background(), VetOptions{DefsPath: writeDefs(t, defs)})
	require.NoError(t, err)

	assert.False(t, result.Ok())
	require.Len(t, result.Types, 2)
	assert.NoError(t, result.Types[0].Err)
	require.Error(t, result.Types[1].Err)

	var defErr *errorrules.DefError
	require.ErrorAs(t, result.Types[1].Err, &defErr)
	assert.Equal(t, errorrules.KindFieldIndexOutOfRange, defErr.Kind)
}

func TestVetFileLevelFailure(t *testing.T) {
	defs := `package: app
types:
  - name: AppError
    variants:
      - name: Plain
        template: first
  - name: AppError
    variants:
      - name: Plain
        template: second
`
	result, err := Vet(context.Background(), VetOptions{DefsPath: writeDefs(t, defs)})
	require.NoError(t, err)

	assert.False(t, result.Ok())
	for _, tr := range result.Types {
		assert.NoError(t, tr.Err)
	}
	var emitErr *gen.EmitError
	require.ErrorAs(t, result.FileErr, &emitErr)
	assert.Equal(t, gen.EmitDuplicateType, emitErr.Type)
}

func TestVetLoadFailure(t *testing.T) {
	_, err := Vet(context.Background(), VetOptions{
		DefsPath: filepath.Join(t.TempDir(), "missing.yaml"),
	})
	require.Error(t, err)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, LoadFailed, appErr.Type)
}

func TestPreview(t *testing.T) {
	result, err := Preview(context.Background(), PreviewOptions{
		DefsPath: writeDefs(t, appDefs),
	})
	require.NoError(t, err)

	assert.Equal(t, "app", result.Package)
	require.Len(t, result.Types, 1)
	tp := result.Types[0]
	assert.Equal(t, "AppError", tp.Name)
	assert.Equal(t, "App", tp.Prefix)
	require.Len(t, tp.Variants, 2)

	assert.Equal(t, "IO", tp.Variants[0].Name)
	assert.Equal(t, errorrules.SourceWrap, tp.Variants[0].Kind)
	assert.Equal(t, "App: IO: <*fs.PathError>", tp.Variants[0].Sample)

	assert.Equal(t, "BadStatus", tp.Variants[1].Name)
	assert.Equal(t, errorrules.CustomKind, tp.Variants[1].Kind)
	assert.Equal(t, "App: code:<int> message:<string>", tp.Variants[1].Sample)
}

func TestPreviewTypeFilter(t *testing.T) {
	defs := appDefs + `  - name: ModError
    variants:
      - name: Any
        wraps: error
`
	path := writeDefs(t, defs)

	result, err := Preview(context.Background(), PreviewOptions{DefsPath: path, Type: "ModError"})
	require.NoError(t, err)
	require.Len(t, result.Types, 1)
	assert.Equal(t, "ModError", result.Types[0].Name)
	require.Len(t, result.Types[0].Variants, 1)
	assert.Equal(t, "<error>", result.Types[0].Variants[0].Sample)

	_, err = Preview(context.Background(), PreviewOptions{DefsPath: path, Type: "NoSuchError"})
	require.Error(t, err)
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ValidationFailed, appErr.Type)
}

func TestPreviewInvalidDefinition(t *testing.T) {
	defs := `package: app
types:
  - name: AppError
    variants:
      - name: Oops
        fields: [int]
        template: "value {3}"
`
	_, err := Preview(context.Background(), PreviewOptions{DefsPath: writeDefs(t, defs)})
	require.Error(t, err)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ValidationFailed, appErr.Type)
	assert.True(t, errors.As(err, new(*errorrules.DefError)))
}

func TestInitDefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defs", "errors.yaml")
	err := InitDefs(context.Background(), InitDefsOptions{Path: path, Spec: DefaultSpec()})
	require.NoError(t, err)

	// The scaffold must load and validate through the same pipeline.
	f, err := def.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "app", f.Package)
	require.NoError(t, def.Validate(f))
}

func TestInitDefsRefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keep me"), 0644))

	err := InitDefs(context.Background(), InitDefsOptions{Path: path, Spec: DefaultSpec()})
	require.Error(t, err)
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, InitFailed, appErr.Type)

	existing, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "keep me", string(existing))

	err = InitDefs(context.Background(), InitDefsOptions{Path: path, Force: true, Spec: DefaultSpec()})
	require.NoError(t, err)
	_, err = def.Load(path)
	require.NoError(t, err)
}

func TestInitDefsRejectsInvalidSpec(t *testing.T) {
	spec := def.FileSpec{
		Package: "app",
		Types: []def.TypeSpec{
			{Name: "AppError", Variants: []def.VariantSpec{{Name: "Bad", Wraps: "not a type"}}},
		},
	}
	err := InitDefs(context.Background(), InitDefsOptions{
		Path: filepath.Join(t.TempDir(), "errors.yaml"),
		Spec: spec,
	})
	require.Error(t, err)
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ValidationFailed, appErr.Type)
}

func TestInitDefsEmptyPath(t *testing.T) {
	err := InitDefs(context.Background(), InitDefsOptions{Spec: DefaultSpec()})
	require.Error(t, err)
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ValidationFailed, appErr.Type)
}
