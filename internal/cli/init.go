package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cesbo/error-rules/internal/app"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a definition file",
	Long: `Create a starter definition file.

Without --defaults the definitions are assembled interactively: errgen
prompts for the package name, the error types, and each type's variants.
With --defaults a documented example scaffold is written instead.

The resulting file is validated through the full pipeline before it is
written, so it is guaranteed to generate.

Examples:
  errgen init
  errgen init internal/apperr/errors.yaml
  errgen init --defaults
  errgen init --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// Init command flags
var (
	initForce    bool
	initDefaults bool
)

func init() {
	// Flags for init
	initCmd.Flags().BoolVarP(&initForce, FlagForce, "f", false, "Overwrite an existing definition file")
	initCmd.Flags().BoolVar(&initDefaults, FlagDefaults, false, DescDefaults)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := "errors.yaml"
	if len(args) > 0 {
		path = args[0]
	}

	// Check if the definition file already exists
	if _, err := os.Stat(path); err == nil && !initForce {
		printInfo(fmt.Sprintf("Definition file already exists at %s", path))
		printInfo("(use --force to overwrite)")
		return nil
	}

	spec := app.DefaultSpec()
	if !initDefaults {
		var err error
		spec, err = promptForDefinitions()
		if err != nil {
			return err
		}
	}

	if initForce {
		printWarning("Force mode enabled - will overwrite existing file")
	}

	err := app.InitDefs(cmd.Context(), app.InitDefsOptions{
		Path:  path,
		Force: initForce,
		Spec:  spec,
	})
	if err != nil {
		printErrorMsg(fmt.Sprintf("Initialization failed: %v", err))
		return err
	}

	printSuccess(fmt.Sprintf("Created: %s", path))
	printInfo("")
	printInfo("Next steps:")
	printInfo(fmt.Sprintf("  1. Edit %s to declare your error types", path))
	printInfo(fmt.Sprintf("  2. Run: errgen generate -f %s", path))

	return nil
}
