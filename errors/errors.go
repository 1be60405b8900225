package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies an error category across the API.
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeForbidden          ErrorCode = "FORBIDDEN"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
	ErrCodeEmailInUse         ErrorCode = "EMAIL_IN_USE"
	ErrCodeWeakPassword       ErrorCode = "WEAK_PASSWORD"
	ErrCodeProviderMismatch   ErrorCode = "PROVIDER_MISMATCH"

	// Lookup errors
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"

	// Checklist errors
	ErrCodeConflict          ErrorCode = "CONFLICT"
	ErrCodePhotoRequired     ErrorCode = "PHOTO_REQUIRED"
	ErrCodeInvalidTransition ErrorCode = "INVALID_TRANSITION"

	// Infrastructure errors
	ErrCodeDBError            ErrorCode = "DB_ERROR"
	ErrCodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"
	ErrCodeUpload             ErrorCode = "UPLOAD_FAILED"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// AppError is the error type every service returns to controllers.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError reports whether err wraps an AppError.
func IsAppError(err error) bool {
	return GetAppError(err) != nil
}

// GetAppError returns the first AppError in err's chain.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

func NotFound(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, nil)
}

func Forbidden(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, nil)
}

func Validation(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, nil)
}

func DB(message string, err error) *AppError {
	return NewAppError(ErrCodeDBError, message, err)
}
