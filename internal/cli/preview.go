package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cesbo/error-rules/internal/app"
)

// previewCmd represents the preview command
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the display messages of defined error types",
	Long: `Render the display message of every variant with placeholder values.

Each field is shown as its type expression in angle brackets, so the
message shape can be reviewed before any code is generated:

  App: IO failed: <*fs.PathError>
  App: status <int>: <string>

Examples:
  errgen preview
  errgen preview -f errors.yaml --type AppError`,
	RunE: runPreview,
}

// Preview command flags
var (
	previewDefs string
	previewType string
)

func init() {
	// Flags for preview
	previewCmd.Flags().StringVarP(&previewDefs, FlagDefs, "f", "errors.yaml", DescDefs)
	previewCmd.Flags().StringVar(&previewType, FlagType, "", DescType)
}

func runPreview(cmd *cobra.Command, args []string) error {
	if err := ValidateDefsPath(previewDefs); err != nil {
		return err
	}
	if previewType != "" {
		if err := ValidateTypeName(previewType); err != nil {
			return err
		}
	}

	result, err := app.Preview(cmd.Context(), app.PreviewOptions{
		DefsPath: previewDefs,
		Type:     previewType,
	})
	if err != nil {
		printErrorMsg(fmt.Sprintf("Preview failed: %v", err))
		return err
	}

	printInfo(fmt.Sprintf("Package: %s", result.Package))

	variants := 0
	for _, tp := range result.Types {
		title := tp.Name
		if tp.Prefix != "" {
			title = fmt.Sprintf("%s (prefix %q)", tp.Name, tp.Prefix)
		}
		printHeader(title)
		for _, v := range tp.Variants {
			printInfo(fmt.Sprintf("  %-16s %-12s %s", v.Name, v.Kind, v.Sample))
			variants++
		}
	}

	printSeparator()
	printInfo(fmt.Sprintf("%d type(s), %d variant(s)", len(result.Types), variants))
	return nil
}
