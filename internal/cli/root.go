package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cesbo/error-rules/internal/debug"
	"github.com/cesbo/error-rules/internal/version"
)

// Alias version variables for compatibility
var (
	Version   = version.Version
	GitCommit = version.GitCommit
	BuildDate = version.BuildDate
)

// Global flags
var (
	globalNoColor bool
	globalQuiet   bool
	globalDebug   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "errgen",
	Short: "Generate Go error types from declarative definitions",
	Long: `errgen compiles declarative error-type definitions into Go source.

A definition file describes error types as a list of variants: each variant
either wraps a source error type (gaining automatic conversion and Unwrap
support) or carries its own payload fields, and declares how the error
message is rendered.

Use "errgen generate -f errors.yaml" to:
  1. Load and validate the definition file
  2. Emit one Go file with the error types, constructors, and conversions
  3. Write it next to your code as <package>_errors.go

The same definitions can be compiled at runtime with the library API; the
generated code and the runtime form render identical messages.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Set debug mode
		debug.SetDebug(globalDebug)
		debug.SetNoColor(globalNoColor)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().BoolVar(&globalDebug, FlagDebug, false, DescDebug)

	// Add subcommands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(vetCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// printError prints an error message to stderr
func printError(err error) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
