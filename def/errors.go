package def

import "fmt"

// DefFileErrorType represents the type of definition file error.
type DefFileErrorType int

const (
	// DefFileNotFound indicates the definition file was not found.
	DefFileNotFound DefFileErrorType = iota
	// DefFileInvalid indicates the definition file has invalid syntax or structure.
	DefFileInvalid
	// DefFileValidationFailed indicates the file shape is wrong (missing or
	// malformed fields).
	DefFileValidationFailed
)

// DefFileError represents a definition-file loading error.
type DefFileError struct {
	// Type is the error type.
	Type DefFileErrorType
	// Message is the error message.
	Message string
	// File is the definition file path.
	File string
	// Field is the definition field that caused the error.
	Field string
	// Cause is the underlying error if any.
	Cause error
}

// Error implements the error interface.
func (e *DefFileError) Error() string {
	where := e.File
	if where == "" {
		where = "definitions"
	}
	if e.Field != "" {
		if e.Cause != nil {
			return fmt.Sprintf("definition error in %s [field: %s]: %s: %v", where, e.Field, e.Message, e.Cause)
		}
		return fmt.Sprintf("definition error in %s [field: %s]: %s", where, e.Field, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("definition error in %s: %s: %v", where, e.Message, e.Cause)
	}
	return fmt.Sprintf("definition error in %s: %s", where, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *DefFileError) Unwrap() error {
	return e.Cause
}

// NewDefFileError creates a new DefFileError.
func NewDefFileError(typ DefFileErrorType, file, message string) *DefFileError {
	return &DefFileError{
		Type:    typ,
		File:    file,
		Message: message,
	}
}

// NewDefFileErrorWithField creates a new DefFileError with a field name.
func NewDefFileErrorWithField(typ DefFileErrorType, file, field, message string) *DefFileError {
	return &DefFileError{
		Type:    typ,
		File:    file,
		Field:   field,
		Message: message,
	}
}

// NewDefFileErrorWithCause creates a new DefFileError with a cause.
func NewDefFileErrorWithCause(typ DefFileErrorType, file, message string, cause error) *DefFileError {
	return &DefFileError{
		Type:    typ,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}
