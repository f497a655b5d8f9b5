package core

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

type ErrorCode string

const (
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeBadRequest   ErrorCode = "BAD_REQUEST"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeInternal     ErrorCode = "INTERNAL_SERVER_ERROR"
)

// Error is a failure reported to the caller with a fixed, human-readable Message.
// Err keeps the underlying store or provider error, if any; it is never shown to the caller.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewNotFoundError(msg string) error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func NewBadRequestError(msg string) error {
	return &Error{Code: CodeBadRequest, Message: msg}
}

func NewUnauthorizedError(msg string) error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

func NewInternalError(err error, msg string) error {
	return &Error{Code: CodeInternal, Message: msg, Err: err}
}

// ErrorCodeOf returns the code of the first *Error in err's chain.
// Validation errors are BAD_REQUEST; anything else is INTERNAL_SERVER_ERROR.
func ErrorCodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return CodeBadRequest
	}
	var fldErrs validator.ValidationErrors
	if errors.As(err, &fldErrs) {
		return CodeBadRequest
	}
	return CodeInternal
}

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return "invalid input"
	}
	return err.Err.Error()
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
