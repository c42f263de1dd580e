package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the user-facing error carried from services up to the HTTP layer.
// Status is the HTTP status the handler should respond with, Code is the
// machine-readable taxonomy entry, Err holds the human-readable detail.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

const (
	CodeValidation       = "validation_error"
	CodeUnauthorized     = "unauthorized"
	CodeForbidden        = "forbidden"
	CodeNotFound         = "not_found"
	CodeConflict         = "conflict"
	CodeInvalidOperation = "invalid_operation"
	CodeChatNotActive    = "chat_not_active"
	CodeUpstreamFailure  = "upstream_failure"
	CodeNotImplemented   = "not_implemented"
)

func Validation(format string, args ...any) *Error {
	return New(http.StatusBadRequest, CodeValidation, fmt.Errorf(format, args...))
}

func Unauthorized(format string, args ...any) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, fmt.Errorf(format, args...))
}

func Forbidden(format string, args ...any) *Error {
	return New(http.StatusForbidden, CodeForbidden, fmt.Errorf(format, args...))
}

func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf(format, args...))
}

func Conflict(format string, args ...any) *Error {
	return New(http.StatusConflict, CodeConflict, fmt.Errorf(format, args...))
}

func InvalidOperation(format string, args ...any) *Error {
	return New(http.StatusBadRequest, CodeInvalidOperation, fmt.Errorf(format, args...))
}

func ChatNotActive(format string, args ...any) *Error {
	return New(http.StatusBadRequest, CodeChatNotActive, fmt.Errorf(format, args...))
}

func Upstream(format string, args ...any) *Error {
	return New(http.StatusInternalServerError, CodeUpstreamFailure, fmt.Errorf(format, args...))
}

func NotImplemented(format string, args ...any) *Error {
	return New(http.StatusNotImplemented, CodeNotImplemented, fmt.Errorf(format, args...))
}

// From extracts an *Error from err, or wraps err as an internal upstream
// failure so handlers never leak an unmapped status.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return New(http.StatusInternalServerError, CodeUpstreamFailure, err)
}
