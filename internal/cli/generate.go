package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cesbo/error-rules/internal/app"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate Go source from a definition file",
	Long: `Compile a definition file into Go source.

The output file is named <package>_errors.go after the package declared in
the definitions and carries a generated-code header. errgen refuses to
overwrite a file that lacks the header unless --force is given.

Examples:
  errgen generate -f errors.yaml
  errgen generate -f errors.yaml -o internal/apperr
  errgen generate -f errors.yaml --stdout
  errgen generate -f errors.yaml --force`,
	RunE: runGenerate,
}

// Generate command flags
var (
	generateDefs   string
	generateOutput string
	generateStdout bool
	generateForce  bool
)

func init() {
	// Flags for generate
	generateCmd.Flags().StringVarP(&generateDefs, FlagDefs, "f", "errors.yaml", DescDefs)
	generateCmd.Flags().StringVarP(&generateOutput, FlagOutput, "o", ".", DescOutput)
	generateCmd.Flags().BoolVar(&generateStdout, FlagStdout, false, DescStdout)
	generateCmd.Flags().BoolVar(&generateForce, FlagForce, false, DescForce)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := ValidateDefsPath(generateDefs); err != nil {
		return err
	}
	if !generateStdout {
		if err := ValidateOutputPath(generateOutput); err != nil {
			return err
		}
		printProgress(fmt.Sprintf("Generating error types from %s", generateDefs))
	}

	result, err := app.Generate(cmd.Context(), app.GenerateOptions{
		DefsPath:  generateDefs,
		OutputDir: generateOutput,
		Stdout:    generateStdout,
		Force:     generateForce,
	})
	if err != nil {
		printErrorMsg(fmt.Sprintf("Generation failed: %v", err))
		return err
	}

	if generateStdout {
		fmt.Print(string(result.Content))
		return nil
	}

	printSuccess(fmt.Sprintf("Generated %s (%d type(s): %s)",
		result.OutputPath, len(result.Types), strings.Join(result.Types, ", ")))
	return nil
}
