package gen

import "fmt"

// EmitErrorType categorizes emission errors.
type EmitErrorType int

const (
	// EmitInvalidPackage indicates the target package name is not usable.
	EmitInvalidPackage EmitErrorType = iota
	// EmitDuplicateType indicates two definitions in one file share a type name.
	EmitDuplicateType
	// EmitIdentifierConflict indicates two generated declarations would share
	// one package-level identifier, such as a variant constant spelling the
	// same name as another type's kind type.
	EmitIdentifierConflict
	// EmitImportConflict indicates two source or field types need imports
	// with the same package qualifier but different import paths.
	EmitImportConflict
	// EmitUnsupportedType indicates a type expression that cannot appear in
	// a generated signature (an unnamed type).
	EmitUnsupportedType
	// EmitFormatFailed indicates the assembled source failed gofmt. This is
	// an emitter bug surfaced with the offending source attached.
	EmitFormatFailed
	// EmitWriteFailed indicates a file write operation failed.
	EmitWriteFailed
	// EmitRefusedOverwrite indicates the output path holds a file that was
	// not generated by errgen.
	EmitRefusedOverwrite
)

// EmitError represents an emission-specific error. Definition errors are not
// wrapped in it: they surface as *errorrules.DefError so both back-ends share
// one taxonomy.
type EmitError struct {
	// Type categorizes the error.
	Type EmitErrorType
	// Message is the error message.
	Message string
	// File is the file path related to the error (if applicable).
	File string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *EmitError) Error() string {
	if e.File != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s (file: %s): %v", e.Message, e.File, e.Cause)
		}
		return fmt.Sprintf("%s (file: %s)", e.Message, e.File)
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}

	return e.Message
}

// Unwrap returns the underlying cause error for error unwrapping.
func (e *EmitError) Unwrap() error {
	return e.Cause
}

// newEmitError creates a new EmitError.
func newEmitError(typ EmitErrorType, message, file string, cause error) *EmitError {
	return &EmitError{
		Type:    typ,
		Message: message,
		File:    file,
		Cause:   cause,
	}
}
