package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
)

// ErrorType represents different types of errors that can occur
type ErrorType int

const (
	ErrorTypeIO ErrorType = iota
	ErrorTypePermissionDenied
	ErrorTypeNotFound
	ErrorTypeAlreadyExists
	ErrorTypeInvalidState
	ErrorTypeInvalidArgument
	ErrorTypeConfig
	ErrorTypeUI
)

// String returns a string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeIO:
		return "io"
	case ErrorTypePermissionDenied:
		return "permission denied"
	case ErrorTypeNotFound:
		return "not found"
	case ErrorTypeAlreadyExists:
		return "already exists"
	case ErrorTypeInvalidState:
		return "invalid state"
	case ErrorTypeInvalidArgument:
		return "invalid argument"
	case ErrorTypeConfig:
		return "config"
	case ErrorTypeUI:
		return "ui"
	default:
		return "unknown"
	}
}

// AppError represents a structured application error
type AppError struct {
	Type      ErrorType
	Operation string
	Path      string
	Message   string
	Err       error
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s error in %s [%s]: %s", e.Type, e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("%s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// FromOS classifies an error returned by a filesystem primitive.
// Errors that are already AppErrors keep their type and gain no extra layer.
func FromOS(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	t := ErrorTypeIO
	switch {
	case stderrors.Is(err, fs.ErrPermission):
		t = ErrorTypePermissionDenied
	case stderrors.Is(err, fs.ErrNotExist):
		t = ErrorTypeNotFound
	case stderrors.Is(err, fs.ErrExist):
		t = ErrorTypeAlreadyExists
	}
	return &AppError{
		Type:      t,
		Operation: operation,
		Path:      path,
		Message:   err.Error(),
		Err:       err,
	}
}

// TypeOf returns the type of the first AppError in err's chain.
// Unclassified errors report ErrorTypeIO.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeIO
}

// Is reports whether err carries an AppError of the given type.
func Is(err error, t ErrorType) bool {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return false
	}
	return appErr.Type == t
}

// NewFileSystemError creates a filesystem error of an explicit type
func NewFileSystemError(t ErrorType, operation, path, message string, err error) *AppError {
	return &AppError{
		Type:      t,
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// NewInvalidStateError reports an operation attempted in a state that forbids it
func NewInvalidStateError(operation, path, message string) *AppError {
	return &AppError{
		Type:      ErrorTypeInvalidState,
		Operation: operation,
		Path:      path,
		Message:   message,
	}
}

// NewInvalidArgumentError reports a rejected caller-supplied value
func NewInvalidArgumentError(operation, path, message string) *AppError {
	return &AppError{
		Type:      ErrorTypeInvalidArgument,
		Operation: operation,
		Path:      path,
		Message:   message,
	}
}

// NewConfigError creates a new configuration error
func NewConfigError(operation, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeConfig,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// NewUIError creates a new UI error
func NewUIError(operation, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeUI,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
