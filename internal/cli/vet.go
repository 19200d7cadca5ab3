package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cesbo/error-rules/internal/app"
)

// vetCmd represents the vet command
var vetCmd = &cobra.Command{
	Use:   "vet",
	Short: "Check a definition file without generating code",
	Long: `Validate every error type in a definition file.

Each type is checked independently so a single broken definition does not
hide problems in the others. The exit code is non-zero when any definition
is invalid.

Examples:
  errgen vet
  errgen vet -f internal/apperr/errors.yaml`,
	RunE: runVet,
}

// Vet command flags
var vetDefs string

func init() {
	// Flags for vet
	vetCmd.Flags().StringVarP(&vetDefs, FlagDefs, "f", "errors.yaml", DescDefs)
}

func runVet(cmd *cobra.Command, args []string) error {
	if err := ValidateDefsPath(vetDefs); err != nil {
		return err
	}

	result, err := app.Vet(cmd.Context(), app.VetOptions{DefsPath: vetDefs})
	if err != nil {
		printErrorMsg(fmt.Sprintf("Vet failed: %v", err))
		return err
	}

	invalid := 0
	for _, tr := range result.Types {
		if tr.Err != nil {
			invalid++
			printFailure(fmt.Sprintf("%s: %v", tr.Name, tr.Err))
			continue
		}
		printSuccess(tr.Name)
	}
	if result.FileErr != nil {
		invalid++
		printFailure(fmt.Sprintf("definition file: %v", result.FileErr))
	}

	if invalid > 0 {
		return fmt.Errorf("found %d invalid definition(s)", invalid)
	}

	printInfo("")
	printSuccess(fmt.Sprintf("All definitions in %s are valid", vetDefs))
	return nil
}
