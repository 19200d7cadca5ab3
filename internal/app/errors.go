package app

import "fmt"

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// LoadFailed indicates the definition file could not be loaded.
	LoadFailed AppErrorType = iota
	// ValidationFailed indicates the definitions are invalid.
	ValidationFailed
	// GenerateFailed indicates code generation failed.
	GenerateFailed
	// InitFailed indicates definition scaffolding failed.
	InitFailed
)

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewLoadError creates a definition load error.
func NewLoadError(message string, cause error) *AppError {
	return NewAppError(LoadFailed, message, cause)
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ValidationFailed, message, cause)
}

// NewGenerateError creates a code generation error.
func NewGenerateError(message string, cause error) *AppError {
	return NewAppError(GenerateFailed, message, cause)
}

// NewInitError creates a scaffolding error.
func NewInitError(message string, cause error) *AppError {
	return NewAppError(InitFailed, message, cause)
}
