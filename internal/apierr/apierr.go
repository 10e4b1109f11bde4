package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error carries an HTTP status and a stable machine code alongside the
// underlying cause. Handlers map it straight onto the response envelope.
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

// Validation: client-correctable input problems, never partially applied.
func Validation(code string, err error) *Error {
	return New(http.StatusBadRequest, code, err)
}

// NotFound: the addressed record does not exist.
func NotFound(code string, err error) *Error {
	return New(http.StatusNotFound, code, err)
}

// Conflict: store-detected referential conflict; caller must re-fetch and
// retry with corrected input.
func Conflict(code string, err error) *Error {
	return New(http.StatusConflict, code, err)
}

// Unavailable: transient store failure, safe for the caller to retry.
func Unavailable(err error) *Error {
	return New(http.StatusServiceUnavailable, "store_unavailable", err)
}

func StatusOf(err error) (int, string) {
	var ae *Error
	if errors.As(err, &ae) {
		status := ae.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return status, ae.Code
	}
	return http.StatusInternalServerError, "internal_error"
}
