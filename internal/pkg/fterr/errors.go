package fterr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeAuthRequired   = "AUTH_REQUIRED"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeNotFound       = "NOT_FOUND"
	CodeRemoteError    = "REMOTE_ERROR"
	CodeLocationDenied = "LOCATION_DENIED"
	CodeInternalError  = "INTERNAL_ERROR"
)

var (
	// ErrAuthRequired is returned by the login-required gate: the action is
	// withheld and the caller opens the login prompt instead.
	ErrAuthRequired = New(http.StatusUnauthorized, CodeAuthRequired, "sign in to continue")

	// ErrInvalidRequest is returned when a request is invalid.
	ErrInvalidRequest = New(http.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = New(http.StatusNotFound, CodeNotFound, "resource not found with given parameters")

	// ErrLocationDenied is the permission-denied variant of a failed
	// geolocation query, distinguished from all other failures.
	ErrLocationDenied = New(http.StatusForbidden, CodeLocationDenied, "location permission denied, please enable it in settings")

	// ErrInternalError is the generic fallback when the server supplies no
	// error text of its own.
	ErrInternalError = New(http.StatusInternalServerError, CodeInternalError, "something went wrong, please try again later")
)

type Extras map[string]interface{}

type Error struct {
	StatusCode int
	ErrorCode  string
	Message    string
	Extras     *Extras
}

func New(statusCode int, errorCode string, message string) *Error {
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewRemote wraps a server-provided error text verbatim.
func NewRemote(statusCode int, message string) *Error {
	return New(statusCode, CodeRemoteError, message)
}

func (e Error) Msg(format string, parts ...interface{}) *Error {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e Error) WithExtras(extras Extras) *Error {
	e.Extras = &extras
	return &e
}

// NewInvalidViolations carries a field-name-to-message mapping produced by
// client-side validation.
func NewInvalidViolations(violations interface{}) *Error {
	e := *ErrInvalidRequest
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}

// Code extracts the error code from err, unwrapping as needed, or
// CodeInternalError when no domain error is in the chain.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.ErrorCode
	}
	return CodeInternalError
}

// IsAuthRequired reports whether err is the login-required gate error.
func IsAuthRequired(err error) bool {
	return Code(err) == CodeAuthRequired
}
