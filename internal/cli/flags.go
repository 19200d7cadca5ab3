package cli

import (
	"fmt"
	"go/token"
	"regexp"
	"strings"
)

// Common flag names and descriptions
const (
	// Flag names
	FlagDefs     = "defs"
	FlagOutput   = "output"
	FlagStdout   = "stdout"
	FlagForce    = "force"
	FlagType     = "type"
	FlagDefaults = "defaults"
	FlagNoColor  = "no-color"
	FlagQuiet    = "quiet"
	FlagDebug    = "debug"

	// Flag descriptions
	DescDefs     = "Path to the definition file"
	DescOutput   = "Output directory for the generated file"
	DescStdout   = "Print the generated source to stdout instead of writing a file"
	DescForce    = "Overwrite files that were not generated by errgen"
	DescType     = "Restrict to a single error type"
	DescDefaults = "Write the default scaffold without prompting"
	DescNoColor  = "Disable colored output"
	DescQuiet    = "Suppress non-error output"
	DescDebug    = "Enable debug logging"
)

var pathTraversalPattern = regexp.MustCompile(`\.\.`)

// ValidateDefsPath validates a definition file path.
func ValidateDefsPath(path string) error {
	if path == "" {
		return fmt.Errorf("definition file path cannot be empty")
	}
	return nil
}

// ValidateOutputPath validates an output directory path.
func ValidateOutputPath(path string) error {
	if path == "" {
		return fmt.Errorf("output path cannot be empty")
	}

	// Check for path traversal attempts
	if pathTraversalPattern.MatchString(path) {
		return fmt.Errorf("output path contains invalid traversal: %s", path)
	}

	return nil
}

// ValidateTypeName validates an error type name given on the command line.
func ValidateTypeName(name string) error {
	if name == "" {
		return fmt.Errorf("type name cannot be empty")
	}
	if !token.IsIdentifier(name) {
		return fmt.Errorf("invalid type name: %s", name)
	}
	return nil
}

// splitFields parses a comma-separated list of field type expressions,
// e.g. "int, string" or "*io/fs.PathError". Empty input means no fields.
func splitFields(input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	var fields []string
	for _, f := range strings.Split(input, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
