package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing Redis key.
	RedisNotFoundMessage = "redis key not found"
)

// Kind classifies an AppError so callers can react without string matching.
type Kind string

const (
	KindInternal          Kind = "internal"
	KindNotFound          Kind = "not_found"
	KindValidation        Kind = "validation"
	KindDuplicateEmail    Kind = "duplicate_email"
	KindStorage           Kind = "storage"
	KindStorageCorruption Kind = "storage_corruption"
)

// AppError wraps an underlying error with an HTTP status, a kind and a safe message.
type AppError struct {
	Err     error
	Status  int
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether the target matches the underlying error, or is an AppError
// of the same kind and message.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if errors.As(target, &t) {
		return t.Kind == e.Kind && t.Message == e.Message
	}
	return errors.Is(e.Err, target)
}

// New creates a new AppError of kind internal.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Kind:    KindInternal,
		Message: message,
	}
}

// Validation reports a rejected input with a user-facing reason.
func Validation(reason string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Kind: KindValidation, Message: reason}
}

// DuplicateEmail reports a registration against an email that is already taken.
func DuplicateEmail(email string) *AppError {
	return &AppError{
		Err:     fmt.Errorf("email %q already registered", email),
		Status:  http.StatusConflict,
		Kind:    KindDuplicateEmail,
		Message: "an account with this email already exists",
	}
}

// NotFound reports an unknown product id or an out of range position.
func NotFound(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Kind: KindNotFound, Message: message}
}

// Corrupted reports a persisted value that could not be decoded.
func Corrupted(key string, err error) *AppError {
	return &AppError{
		Err:     err,
		Status:  http.StatusInternalServerError,
		Kind:    KindStorageCorruption,
		Message: fmt.Sprintf("stored value under %q is corrupted", key),
	}
}

// KindOf returns the kind of the first AppError in err's chain.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// StatusOf returns the HTTP status carried by err, defaulting to 500.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the user-facing message for err; non AppErrors are masked.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return SystemErrorMessage
}
