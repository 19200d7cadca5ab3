// Command example demonstrates the runtime API: two declarative error
// types layered into a single chain, with conversion, matching, and notes.
//
// The same definitions, written as a YAML file, generate equivalent
// standalone types with "errgen generate".
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	errorrules "github.com/cesbo/error-rules"
)

// ModError covers the failures of a config-loading subsystem.
var ModError = errorrules.MustCompile(errorrules.TypeDef{
	Name:   "ModError",
	Prefix: "Mod",
	Variants: []errorrules.VariantDef{
		errorrules.From[*fs.PathError]("IO", ""),
		errorrules.Kind("Corrupt", []string{"string"}, "corrupt config: {0}"),
	},
})

// AppError is the application-facing type; its Mod variant layers ModError.
var AppError = errorrules.MustCompile(errorrules.TypeDef{
	Name:   "AppError",
	Prefix: "App",
	Variants: []errorrules.VariantDef{
		errorrules.FromType("Mod", ModError, ""),
		errorrules.Kind("BadStatus", []string{"int", "string"}, "code:{} message:{}", 0, 1),
	},
})

func loadConfig(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return ModError.Lift(err)
	}
	defer f.Close()
	return nil
}

func run() error {
	if err := loadConfig("/no/such/app.conf"); err != nil {
		return AppError.Lift(err)
	}
	return nil
}

func main() {
	err := run()

	// Each layer adds its own prefix; the innermost message comes from the
	// OS error:
	//
	//   App: Mod: open /no/such/app.conf: no such file or directory
	fmt.Println(err)

	// errors.Is and errors.As traverse the chain without knowing anything
	// about the templates.
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		fmt.Println("failing path:", pathErr.Path)
	}
	fmt.Println("is fs.ErrNotExist:", errors.Is(err, fs.ErrNotExist))

	// Variant predicates work through any number of layers.
	fmt.Println("is Mod.IO:", ModError.Variant("IO").Match(err))

	// Notes annotate one layer without touching the rest of the chain.
	if e, ok := err.(*errorrules.Err); ok {
		fmt.Println(e.WithNote(" (during startup)"))
	}

	// Custom-kind variants are plain constructors.
	fmt.Println(AppError.Variant("BadStatus").New(502, "bad gateway"))
}
